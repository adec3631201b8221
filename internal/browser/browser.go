// Package browser exposes the handful of browser capabilities devpanel needs
// (active tab, navigation, reload, cookies and in-page evaluation) behind one
// interface, with a remote Kernel browser and a local Chrome implementation.
package browser

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoActiveTab is returned when the browser has no page to act on.
	ErrNoActiveTab = errors.New("no active tab")

	// ErrCookieNotFound is returned when no cookie with the requested name is scoped to the URL.
	ErrCookieNotFound = errors.New("cookie not found")
)

// Tab identifies a page in the browser.
type Tab struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Cookie is the subset of cookie fields devpanel reads.
type Cookie struct {
	Name    string  `json:"name"`
	Value   string  `json:"value"`
	Domain  string  `json:"domain"`
	Path    string  `json:"path"`
	Expires float64 `json:"expires"`
}

// Platform is the browser surface the flows run against.
type Platform interface {
	// ActiveTab returns the foreground page of the foreground window.
	ActiveTab(ctx context.Context) (Tab, error)
	// Navigate points tab at url.
	Navigate(ctx context.Context, tab Tab, url string) error
	// Reload reloads tab.
	Reload(ctx context.Context, tab Tab) error
	// Cookie looks up the cookie called name that would be sent to url.
	Cookie(ctx context.Context, url, name string) (*Cookie, error)
	// Evaluate runs expression in the page context of tab and decodes the
	// JSON-serializable result into out.
	Evaluate(ctx context.Context, tab Tab, expression string, out any) error
}

// ScriptError reports a script that ran in the browser but did not succeed.
type ScriptError struct {
	Script  string
	Message string
}

func (e *ScriptError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s script failed", e.Script)
	}
	return fmt.Sprintf("%s script failed: %s", e.Script, e.Message)
}
