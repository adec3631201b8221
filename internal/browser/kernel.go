package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/kernel/kernel-go-sdk"
	"github.com/kernel/kernel-go-sdk/option"
)

// defaultScriptTimeoutSec bounds each Playwright execution on the Kernel side.
const defaultScriptTimeoutSec = 60

// PlaywrightService defines the subset of the Kernel SDK Playwright client that we use.
type PlaywrightService interface {
	Execute(ctx context.Context, id string, body kernel.BrowserPlaywrightExecuteParams, opts ...option.RequestOption) (*kernel.BrowserPlaywrightExecuteResponse, error)
}

// Kernel drives a remote Kernel browser session through Playwright scripts.
type Kernel struct {
	playwright PlaywrightService
	sessionID  string
	timeoutSec int64
}

// NewKernel returns a Platform bound to the Kernel browser session sessionID.
func NewKernel(client kernel.Client, sessionID string) *Kernel {
	svc := client.Browsers.Playwright
	return NewKernelWithService(&svc, sessionID)
}

// NewKernelWithService is NewKernel with an explicit Playwright service.
func NewKernelWithService(svc PlaywrightService, sessionID string) *Kernel {
	return &Kernel{
		playwright: svc,
		sessionID:  sessionID,
		timeoutSec: defaultScriptTimeoutSec,
	}
}

type activeTabResult struct {
	Found bool   `json:"found"`
	ID    string `json:"id"`
	URL   string `json:"url"`
}

func (k *Kernel) ActiveTab(ctx context.Context) (Tab, error) {
	var res activeTabResult
	if err := k.run(ctx, "active tab", activeTabScript, nil, &res); err != nil {
		return Tab{}, err
	}
	if !res.Found {
		return Tab{}, ErrNoActiveTab
	}
	return Tab{ID: res.ID, URL: res.URL}, nil
}

// tabResult is returned by scripts acting on a tab by index. Found is false
// when the tab has gone away since ActiveTab.
type tabResult struct {
	Found bool            `json:"found"`
	URL   string          `json:"url"`
	Value json.RawMessage `json:"value"`
}

func (k *Kernel) Navigate(ctx context.Context, tab Tab, url string) error {
	params := map[string]string{"tab": tab.ID, "url": url}
	_, err := k.runOnTab(ctx, "navigate", navigateScript, params)
	return err
}

func (k *Kernel) Reload(ctx context.Context, tab Tab) error {
	params := map[string]string{"tab": tab.ID}
	_, err := k.runOnTab(ctx, "reload", reloadScript, params)
	return err
}

type cookieResult struct {
	Found  bool    `json:"found"`
	Cookie *Cookie `json:"cookie"`
}

func (k *Kernel) Cookie(ctx context.Context, url, name string) (*Cookie, error) {
	params := map[string]string{"url": url, "name": name}
	var res cookieResult
	if err := k.run(ctx, "cookie", cookieScript, params, &res); err != nil {
		return nil, err
	}
	if !res.Found || res.Cookie == nil {
		return nil, ErrCookieNotFound
	}
	return res.Cookie, nil
}

func (k *Kernel) Evaluate(ctx context.Context, tab Tab, expression string, out any) error {
	params := map[string]string{"tab": tab.ID, "expression": expression}
	res, err := k.runOnTab(ctx, "evaluate", evaluateScript, params)
	if err != nil {
		return err
	}
	if out == nil || len(res.Value) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Value, out); err != nil {
		return fmt.Errorf("failed to decode evaluate result: %w", err)
	}
	return nil
}

func (k *Kernel) runOnTab(ctx context.Context, name, script string, params any) (tabResult, error) {
	var res tabResult
	if err := k.run(ctx, name, script, params, &res); err != nil {
		return tabResult{}, err
	}
	if !res.Found {
		return tabResult{}, ErrNoActiveTab
	}
	return res, nil
}

// run executes script with params bound to a `params` constant and decodes the
// script's return value into out when out is non-nil.
func (k *Kernel) run(ctx context.Context, name, script string, params any, out any) error {
	code := script
	if params != nil {
		encoded, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("failed to encode %s params: %w", name, err)
		}
		code = fmt.Sprintf("const params = %s;\n%s", encoded, script)
	}

	slog.DebugContext(ctx, "executing playwright script", "script", name, "session", k.sessionID)
	result, err := k.playwright.Execute(ctx, k.sessionID, kernel.BrowserPlaywrightExecuteParams{
		Code:       code,
		TimeoutSec: kernel.Opt(k.timeoutSec),
	})
	if err != nil {
		return fmt.Errorf("failed to execute %s script: %w", name, err)
	}
	if !result.Success {
		return &ScriptError{Script: name, Message: result.Error}
	}

	if out == nil || result.Result == nil {
		return nil
	}
	resultBytes, err := json.Marshal(result.Result)
	if err != nil {
		return fmt.Errorf("failed to parse %s result: %w", name, err)
	}
	if err := json.Unmarshal(resultBytes, out); err != nil {
		return fmt.Errorf("failed to decode %s result: %w", name, err)
	}
	return nil
}
