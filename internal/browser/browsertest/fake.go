// Package browsertest provides an in-memory browser.Platform for tests.
package browsertest

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/kernel/devpanel/internal/browser"
)

// FakePlatform is a scriptable browser.Platform. Unset funcs fall back to the
// stored Tab, Cookies and EvalResult; every call is recorded in Calls.
type FakePlatform struct {
	Tab        browser.Tab
	Cookies    map[string]browser.Cookie
	EvalResult any

	ActiveTabFunc func(ctx context.Context) (browser.Tab, error)
	NavigateFunc  func(ctx context.Context, tab browser.Tab, url string) error
	ReloadFunc    func(ctx context.Context, tab browser.Tab) error
	CookieFunc    func(ctx context.Context, url, name string) (*browser.Cookie, error)
	EvaluateFunc  func(ctx context.Context, tab browser.Tab, expression string, out any) error

	mu    sync.Mutex
	Calls []string
}

func (f *FakePlatform) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

// CallsSnapshot returns a copy of the recorded calls.
func (f *FakePlatform) CallsSnapshot() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}

func (f *FakePlatform) ActiveTab(ctx context.Context) (browser.Tab, error) {
	f.record("ActiveTab")
	if f.ActiveTabFunc != nil {
		return f.ActiveTabFunc(ctx)
	}
	if f.Tab.ID == "" && f.Tab.URL == "" {
		return browser.Tab{}, browser.ErrNoActiveTab
	}
	return f.Tab, nil
}

func (f *FakePlatform) Navigate(ctx context.Context, tab browser.Tab, url string) error {
	f.record("Navigate " + url)
	if f.NavigateFunc != nil {
		return f.NavigateFunc(ctx, tab, url)
	}
	f.Tab.URL = url
	return nil
}

func (f *FakePlatform) Reload(ctx context.Context, tab browser.Tab) error {
	f.record("Reload")
	if f.ReloadFunc != nil {
		return f.ReloadFunc(ctx, tab)
	}
	return nil
}

func (f *FakePlatform) Cookie(ctx context.Context, url, name string) (*browser.Cookie, error) {
	f.record("Cookie " + name)
	if f.CookieFunc != nil {
		return f.CookieFunc(ctx, url, name)
	}
	c, ok := f.Cookies[name]
	if !ok {
		return nil, browser.ErrCookieNotFound
	}
	return &c, nil
}

func (f *FakePlatform) Evaluate(ctx context.Context, tab browser.Tab, expression string, out any) error {
	f.record("Evaluate")
	if f.EvaluateFunc != nil {
		return f.EvaluateFunc(ctx, tab, expression, out)
	}
	data, err := json.Marshal(f.EvalResult)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}
