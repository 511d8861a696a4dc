package campus

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sit-kite/campus-agent/internal/adapters/parse"
	"github.com/sit-kite/campus-agent/internal/domain"
	"github.com/sit-kite/campus-agent/internal/ports"
)

// SSOAuthenticator drives the authserver form login: fetch the login
// page, echo its hidden fields back with the credentials, and keep the
// cookies the redirect chain hands out. A successful login leaves the
// chain somewhere off the authserver; landing back on the form means
// the credentials were refused.
type SSOAuthenticator struct {
	loginURL string
	client   *http.Client
	clock    ports.Clock
}

var _ ports.Authenticator = (*SSOAuthenticator)(nil)

func NewSSOAuthenticator(loginURL string, client *http.Client) *SSOAuthenticator {
	return &SSOAuthenticator{
		loginURL: loginURL,
		client:   client,
		clock:    ports.SystemClock{},
	}
}

func (a *SSOAuthenticator) Login(ctx context.Context, account, password string) (*domain.Session, error) {
	session := &domain.Session{Account: account, Password: password}
	if err := session.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLoginFailed, err)
	}

	client := NewUserClient(session, a.client)

	html, err := client.Text(ctx, a.loginURL)
	if err != nil {
		return nil, fmt.Errorf("fetch login form: %w", err)
	}
	hidden, err := parse.LoginForm(html)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLoginFailed, err)
	}

	form := url.Values{}
	for name, value := range hidden {
		form.Set(name, value)
	}
	form.Set("username", account)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit login form: %w", err)
	}
	finalURL := resp.Request.URL.String()
	body, err := ReadBody(resp)
	if err != nil {
		return nil, err
	}

	if finalURL == a.loginURL {
		if msg := parse.LoginError(body); msg != "" {
			return nil, fmt.Errorf("%w: %s", domain.ErrLoginFailed, msg)
		}
		return nil, domain.ErrLoginFailed
	}

	session.LastUse = a.clock.Now()

	return session, nil
}
