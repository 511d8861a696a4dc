package domain

import (
	"errors"
	"strings"
	"time"
)

// Credential is one student account as configured, before any login
// has happened for it.
type Credential struct {
	Account  string
	Password string
}

// Cookie is one stored campus cookie. Identity is the
// name/domain/path triple, matching how the sites scope their
// session cookies.
type Cookie struct {
	Name   string `cbor:"name"`
	Value  string `cbor:"value"`
	Domain string `cbor:"domain"`
	Path   string `cbor:"path"`
}

// Session is one authenticated student account and the cookies it has
// accumulated. Sessions move by value between the pool and the
// dispatch tasks; Clone keeps the cookie slices from being shared.
type Session struct {
	Account  string    `cbor:"account"`
	Password string    `cbor:"password"`
	Cookies  []Cookie  `cbor:"cookies"`
	LastUse  time.Time `cbor:"last_use"`
}

func (s Session) Validate() error {
	if strings.TrimSpace(s.Account) == "" {
		return errors.New("session account is empty")
	}
	if s.Password == "" {
		return errors.New("session password is empty")
	}

	return nil
}

// UpsertCookie replaces the cookie with the same name, domain and
// path, or appends it. An empty value deletes the stored cookie, the
// way an expiring Set-Cookie does.
func (s *Session) UpsertCookie(cookie Cookie) {
	for i, stored := range s.Cookies {
		if stored.Name != cookie.Name || stored.Domain != cookie.Domain || stored.Path != cookie.Path {
			continue
		}
		if cookie.Value == "" {
			s.Cookies = append(s.Cookies[:i], s.Cookies[i+1:]...)
			return
		}
		s.Cookies[i] = cookie
		return
	}

	if cookie.Value != "" {
		s.Cookies = append(s.Cookies, cookie)
	}
}

// Clone returns a deep copy whose cookie slice is independent of the
// receiver's.
func (s Session) Clone() Session {
	copied := s
	copied.Cookies = make([]Cookie, len(s.Cookies))
	copy(copied.Cookies, s.Cookies)

	return copied
}
