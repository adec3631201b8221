package browser

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/target"
	"github.com/chromedp/chromedp"
)

// CDP drives Chrome over the DevTools protocol.
//
// All tab contexts share the one browser connection. They are derived from a
// context that is never cancelled: cancelling a chromedp tab context detaches
// from the target and closes it, and the tabs devpanel acts on belong to the
// operator. Close only drops the connection (or, for a launched Chrome, the
// process).
type CDP struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	browserCtx  context.Context

	// startURL is loaded into a blank first page of a launched Chrome.
	startURL     string
	startVisited bool

	mu   sync.Mutex
	tabs map[string]context.Context
}

// ConnectCDP attaches to an already running Chrome exposing the DevTools protocol at url
// (for example ws://127.0.0.1:9222/devtools/browser/<id> or http://127.0.0.1:9222).
func ConnectCDP(ctx context.Context, url string, opts ...chromedp.RemoteAllocatorOption) *CDP {
	allocCtx, cancel := chromedp.NewRemoteAllocator(ctx, url, opts...)
	return newCDP(allocCtx, cancel, "")
}

// LaunchCDP starts Chrome on the given profile of the user's Chrome data directory.
// Chrome refuses to share a profile with a running instance, so the user's own
// Chrome must be closed first. A fresh launch shows a blank page; startURL, when
// set, is loaded into it before the first command runs.
func LaunchCDP(ctx context.Context, profile string, headless bool, startURL string) (*CDP, error) {
	userDataDir, err := ChromeUserDataDir()
	if err != nil {
		return nil, err
	}
	if profile == "" {
		profile = "Default"
	}

	opts := []chromedp.ExecAllocatorOption{
		chromedp.UserDataDir(userDataDir),
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("profile-directory", profile),
		chromedp.Flag("headless", headless),
	}
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	return newCDP(allocCtx, cancel, startURL), nil
}

func newCDP(allocCtx context.Context, cancel context.CancelFunc, startURL string) *CDP {
	// No target is attached to browserCtx, so cancelling it closes no tab.
	browserCtx, _ := chromedp.NewContext(allocCtx)
	return &CDP{
		allocCtx:    allocCtx,
		allocCancel: cancel,
		browserCtx:  browserCtx,
		startURL:    startURL,
		tabs:        make(map[string]context.Context),
	}
}

// Close releases the DevTools connection. Tabs stay open; a Chrome started by
// LaunchCDP exits.
func (c *CDP) Close() {
	c.allocCancel()
}

func (c *CDP) ActiveTab(ctx context.Context) (Tab, error) {
	targets, err := chromedp.Targets(c.browserCtx)
	if err != nil {
		return Tab{}, fmt.Errorf("failed to list targets: %w", err)
	}

	info := pickActivePage(targets)
	if info == nil {
		return Tab{}, ErrNoActiveTab
	}
	tab := Tab{ID: string(info.TargetID), URL: info.URL}

	if c.needsStartURL(tab.URL) {
		c.startVisited = true
		if err := c.Navigate(ctx, tab, c.startURL); err != nil {
			return Tab{}, err
		}
		tab.URL = c.startURL
	}
	return tab, nil
}

func (c *CDP) needsStartURL(current string) bool {
	if c.startURL == "" || c.startVisited {
		return false
	}
	return current == "about:blank" || strings.HasPrefix(current, "chrome://newtab")
}

func (c *CDP) Navigate(ctx context.Context, tab Tab, url string) error {
	tabCtx, err := c.tabContext(tab.ID)
	if err != nil {
		return err
	}
	if err := chromedp.Run(tabCtx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("failed to navigate: %w", err)
	}
	return nil
}

func (c *CDP) Reload(ctx context.Context, tab Tab) error {
	tabCtx, err := c.tabContext(tab.ID)
	if err != nil {
		return err
	}
	if err := chromedp.Run(tabCtx, chromedp.Reload()); err != nil {
		return fmt.Errorf("failed to reload: %w", err)
	}
	return nil
}

func (c *CDP) Cookie(ctx context.Context, url, name string) (*Cookie, error) {
	tab, err := c.ActiveTab(ctx)
	if err != nil {
		return nil, err
	}
	tabCtx, err := c.tabContext(tab.ID)
	if err != nil {
		return nil, err
	}

	var cookies []*network.Cookie
	err = chromedp.Run(tabCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = network.GetCookies().WithURLs([]string{url}).Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to read cookies: %w", err)
	}

	for _, ck := range cookies {
		if ck.Name == name {
			return &Cookie{
				Name:    ck.Name,
				Value:   ck.Value,
				Domain:  ck.Domain,
				Path:    ck.Path,
				Expires: ck.Expires,
			}, nil
		}
	}
	return nil, ErrCookieNotFound
}

func (c *CDP) Evaluate(ctx context.Context, tab Tab, expression string, out any) error {
	tabCtx, err := c.tabContext(tab.ID)
	if err != nil {
		return err
	}
	if err := chromedp.Run(tabCtx, chromedp.Evaluate(expression, out)); err != nil {
		return &ScriptError{Script: "evaluate", Message: err.Error()}
	}
	return nil
}

// tabContext returns a context attached to the target with id, sharing the
// browser connection of browserCtx.
func (c *CDP) tabContext(id string) (context.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx, ok := c.tabs[id]; ok {
		return ctx, nil
	}

	// A tab context copies the parent's browser when it is created; without
	// one it would allocate a browser of its own.
	if cc := chromedp.FromContext(c.browserCtx); cc == nil || cc.Browser == nil {
		if _, err := chromedp.Targets(c.browserCtx); err != nil {
			return nil, fmt.Errorf("failed to connect to chrome: %w", err)
		}
	}

	ctx, _ := chromedp.NewContext(context.WithoutCancel(c.browserCtx), chromedp.WithTargetID(target.ID(id)))
	c.tabs[id] = ctx
	return ctx, nil
}

// pickActivePage returns the first regular web page; Chrome lists the most
// recently focused target first.
func pickActivePage(targets []*target.Info) *target.Info {
	for _, t := range targets {
		if t.Type != "page" {
			continue
		}
		if strings.HasPrefix(t.URL, "devtools://") || strings.HasPrefix(t.URL, "chrome-extension://") {
			continue
		}
		return t
	}
	return nil
}
