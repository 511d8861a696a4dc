package campus

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sit-kite/campus-agent/internal/ports"
)

// Guard repairs an expired session in place. The site never answers
// 401/403: an expired session is a 200 redirect chain ending on the
// SSO login URL, so expiry is detected by comparing the final URL of
// the redirect chain against the login URL itself.
type Guard struct {
	Endpoints Endpoints
	Auth      ports.Authenticator
}

// MakeSureActive probes the authenticated landing URL and, when the
// probe lands back on the login form, re-authenticates with the
// session's own credentials and retries the probe once. Costs one
// round trip even when the session is already live.
func (g Guard) MakeSureActive(ctx context.Context, client *UserClient) error {
	resp, err := client.Get(ctx, g.Endpoints.SSORedirect)
	if err != nil {
		return fmt.Errorf("probe session state: %w", err)
	}
	finalURL := resp.Request.URL.String()
	Discard(resp)

	if finalURL != g.Endpoints.SSORedirect {
		return nil
	}

	fresh, err := g.Auth.Login(ctx, client.Session.Account, client.Session.Password)
	if err != nil {
		return fmt.Errorf("re-authenticate %q: %w", client.Session.Account, err)
	}
	client.Session.Cookies = fresh.Cookies

	resp, err = client.Get(ctx, g.Endpoints.SSORedirect)
	if err != nil {
		return fmt.Errorf("confirm re-authenticated session: %w", err)
	}
	Discard(resp)

	return nil
}

// FetchOrMakeSureActive fetches url directly and hands the response
// back when the service answered 200, paying nothing extra in the
// common case. An expired session surfaces as a redirect status here
// (the probe does not follow it): the response is dropped, the eager
// repair runs, and nil is returned so the caller retries the fetch
// once.
func (g Guard) FetchOrMakeSureActive(ctx context.Context, client *UserClient, url string) (*http.Response, error) {
	resp, err := client.GetNoRedirect(ctx, url)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusOK {
		return resp, nil
	}
	Discard(resp)

	if err := g.MakeSureActive(ctx, client); err != nil {
		return nil, err
	}

	return nil, nil
}
