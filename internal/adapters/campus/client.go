package campus

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sit-kite/campus-agent/internal/domain"
)

const (
	maxRedirects = 10
	// maxPageBytes bounds how much of a campus page is read into
	// memory. The heaviest pages are far below this.
	maxPageBytes = 4 << 20
)

// UserClient sends requests carrying one session's cookies and writes
// rotated cookies back into the session after every hop, including the
// intermediate responses of a redirect chain (the SSO sets cookies
// mid-chain). Per-request state lives in the session; the underlying
// http.Client is shared across dispatch tasks.
type UserClient struct {
	Session *domain.Session
	base    *http.Client
}

func NewUserClient(session *domain.Session, base *http.Client) *UserClient {
	if base == nil {
		base = http.DefaultClient
	}

	return &UserClient{Session: session, base: base}
}

// Do performs the request with the session's cookies attached. The
// final response of the redirect chain is returned; its body is the
// caller's to close.
func (c *UserClient) Do(req *http.Request) (*http.Response, error) {
	c.attachCookies(req)

	client := &http.Client{
		Transport: c.base.Transport,
		Timeout:   c.base.Timeout,
		CheckRedirect: func(next *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			if prev := next.Response; prev != nil {
				c.harvestCookies(prev)
			}
			c.attachCookies(next)
			return nil
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	c.harvestCookies(resp)

	return resp, nil
}

func (c *UserClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}

	return c.Do(req)
}

// GetNoRedirect fetches url without following redirects, so the
// caller can observe the redirect status itself. Cookies are still
// attached and harvested.
func (c *UserClient) GetNoRedirect(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	c.attachCookies(req)

	client := &http.Client{
		Transport: c.base.Transport,
		Timeout:   c.base.Timeout,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	c.harvestCookies(resp)

	return resp, nil
}

// Text fetches url and returns the response body as a string.
func (c *UserClient) Text(ctx context.Context, url string) (string, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}

	return ReadBody(resp)
}

// ReadBody drains and closes the response body, bounded by
// maxPageBytes.
func ReadBody(resp *http.Response) (string, error) {
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	return string(data), nil
}

// Discard drains and closes a response whose body the caller does not
// need, keeping the connection reusable.
func Discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxPageBytes))
	_ = resp.Body.Close()
}

// attachCookies replaces the request's Cookie header with the
// session's cookies matching the request host and path.
func (c *UserClient) attachCookies(req *http.Request) {
	req.Header.Del("Cookie")
	for _, cookie := range c.Session.Cookies {
		if !domainMatches(req.URL.Hostname(), cookie.Domain) {
			continue
		}
		if !pathMatches(req.URL.Path, cookie.Path) {
			continue
		}
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
}

// harvestCookies folds a response's Set-Cookie headers into the
// session.
func (c *UserClient) harvestCookies(resp *http.Response) {
	host := ""
	if resp.Request != nil && resp.Request.URL != nil {
		host = resp.Request.URL.Hostname()
	}

	for _, cookie := range resp.Cookies() {
		stored := domain.Cookie{
			Name:   cookie.Name,
			Value:  cookie.Value,
			Domain: cookie.Domain,
			Path:   cookie.Path,
		}
		if stored.Domain == "" {
			stored.Domain = host
		}
		if stored.Path == "" {
			stored.Path = "/"
		}
		if cookie.MaxAge < 0 {
			stored.Value = ""
		}
		c.Session.UpsertCookie(stored)
	}
}

func domainMatches(host, cookieDomain string) bool {
	if cookieDomain == "" || host == cookieDomain {
		return true
	}

	return strings.HasSuffix(host, "."+strings.TrimPrefix(cookieDomain, "."))
}

func pathMatches(requestPath, cookiePath string) bool {
	if cookiePath == "" || cookiePath == "/" {
		return true
	}
	if requestPath == "" {
		requestPath = "/"
	}

	return strings.HasPrefix(requestPath, cookiePath)
}
