package application

import (
	"errors"

	"github.com/sit-kite/campus-agent/internal/codec"
	"github.com/sit-kite/campus-agent/internal/domain"
)

// Command names carried in the request frame.
const (
	CmdActivityList   = "activity_list"
	CmdActivityDetail = "activity_detail"
	CmdScScore        = "sc_score"
	CmdScActivity     = "sc_activity"
	CmdScJoin         = "sc_join"
)

// RequestFrame is the decoded payload of one inbound binary frame. Seq
// is echoed on the response so the host can correlate: dispatch is
// concurrent and responses complete out of arrival order.
type RequestFrame struct {
	Seq  uint64           `cbor:"seq"`
	Cmd  string           `cbor:"cmd"`
	Body codec.RawMessage `cbor:"body,omitempty"`
}

// ResponseFrame is the payload of one outbound binary frame. Code zero
// is success; anything else carries Msg and no body.
type ResponseFrame struct {
	Seq  uint64           `cbor:"seq"`
	Code int              `cbor:"code"`
	Msg  string           `cbor:"msg,omitempty"`
	Body codec.RawMessage `cbor:"body,omitempty"`
}

// Response codes. Every decoded request maps to exactly one of these.
const (
	CodeOK           = 0
	CodeBadRequest   = 1
	CodeNoSession    = 2
	CodeBadParameter = 3
	CodeLoginFailed  = 4
	CodeJoinRejected = 5
	CodeParseFailed  = 6
	CodeFetchFailed  = 7
)

// codeFor maps a dispatch error to its wire code. Anything that is not
// a recognized domain failure is a fetch-level failure: the request
// reached the campus service and died there.
func codeFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBadParameter):
		return CodeBadParameter
	case errors.Is(err, domain.ErrNoSessionAvailable):
		return CodeNoSession
	case errors.Is(err, domain.ErrLoginFailed):
		return CodeLoginFailed
	case errors.Is(err, domain.ErrJoinRejected):
		return CodeJoinRejected
	case errors.Is(err, domain.ErrParsePage):
		return CodeParseFailed
	default:
		return CodeFetchFailed
	}
}
