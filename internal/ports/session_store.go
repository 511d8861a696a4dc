package ports

import (
	"context"

	"github.com/sit-kite/campus-agent/internal/domain"
)

// SessionStore is the pool of authenticated campus sessions, keyed by
// account. Implementations must be safe for concurrent dispatch tasks;
// updates to the same account must never tear an entry.
type SessionStore interface {
	// ChooseRandomly picks any existing session, for operations with no
	// account affinity. Returns domain.ErrNoSessionAvailable when the
	// pool is empty.
	ChooseRandomly() (*domain.Session, error)

	// QueryOr returns the session for account, logging in with the
	// given password first when none exists. Concurrent callers for the
	// same unknown account share a single login.
	QueryOr(ctx context.Context, account, password string) (*domain.Session, error)

	// Insert upserts a session by account, persisting rotated cookies.
	Insert(session *domain.Session) error
}
