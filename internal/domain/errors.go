package domain

import "errors"

var (
	ErrNoSessionAvailable = errors.New("no session available")
	ErrBadParameter       = errors.New("bad request parameter")
	ErrLoginFailed        = errors.New("campus login failed")
	ErrJoinRejected       = errors.New("join request rejected")
	ErrParsePage          = errors.New("unrecognized page structure")
)
