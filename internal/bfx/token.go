// Package bfx talks to the Bitfinex web app: it reads the session token from the
// active page, writes settings presets to the backend and rewrites locale URLs.
package bfx

import (
	"context"
	"errors"
	"fmt"

	"github.com/kernel/devpanel/internal/browser"
)

// DefaultTokenCookie is the cookie carrying the session token.
const DefaultTokenCookie = "__bfx_token"

// ErrTokenNotFound matches any *TokenNotFoundError.
var ErrTokenNotFound = errors.New("auth token cookie not found")

// TokenNotFoundError reports that the active page has no token cookie.
type TokenNotFoundError struct {
	Cookie string
	URL    string
}

func (e *TokenNotFoundError) Error() string {
	return fmt.Sprintf("%s cookie not found for %s", e.Cookie, e.URL)
}

func (e *TokenNotFoundError) Is(target error) bool {
	return target == ErrTokenNotFound
}

// TokenProvider resolves the session token of the active page.
type TokenProvider struct {
	platform browser.Platform
	cookie   string
}

func NewTokenProvider(platform browser.Platform, cookie string) *TokenProvider {
	if cookie == "" {
		cookie = DefaultTokenCookie
	}
	return &TokenProvider{platform: platform, cookie: cookie}
}

// Token looks the cookie up fresh on every call; tokens are never cached.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	tab, err := p.platform.ActiveTab(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to resolve active tab: %w", err)
	}

	cookie, err := p.platform.Cookie(ctx, tab.URL, p.cookie)
	if errors.Is(err, browser.ErrCookieNotFound) || (err == nil && cookie.Value == "") {
		return "", &TokenNotFoundError{Cookie: p.cookie, URL: tab.URL}
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s cookie: %w", p.cookie, err)
	}
	return cookie.Value, nil
}
