package ports

import (
	"context"

	"github.com/sit-kite/campus-agent/internal/domain"
)

// Authenticator performs the credential login against the campus SSO
// and produces a fresh session.
type Authenticator interface {
	Login(ctx context.Context, account, password string) (*domain.Session, error)
}
