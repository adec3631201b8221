package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kernel/devpanel/internal/bfx"
	"github.com/kernel/devpanel/internal/browser"
	"github.com/kernel/devpanel/internal/config"
	"github.com/kernel/devpanel/internal/crowdin"
	"github.com/kernel/devpanel/internal/presenter"
	"github.com/kernel/devpanel/pkg/util"
	"github.com/kernel/kernel-go-sdk"
	"github.com/kernel/kernel-go-sdk/option"
	"github.com/spf13/cobra"
)

var errNoBrowserID = errors.New("the kernel driver needs a browser: pass --browser-id or set DEVPANEL_BROWSER_ID")

// app holds what one invocation needs: environment, config and the browser once
// it has been opened.
type app struct {
	env *config.Env
	cfg *config.File

	closers []func()
}

type appKey struct{}

func withApp(ctx context.Context, a *app) context.Context {
	return context.WithValue(ctx, appKey{}, a)
}

// appFrom returns the app attached by setupApp.
func appFrom(cmd *cobra.Command) *app {
	if a, ok := cmd.Context().Value(appKey{}).(*app); ok {
		return a
	}
	panic("devpanel: command run without setupApp")
}

// loadApp reads the environment, applies command line overrides and loads the config file.
func loadApp(cmd *cobra.Command) (*app, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	applyFlagOverrides(env, globalFlags)

	cfg, err := config.Load(env.ConfigFile)
	if err != nil {
		return nil, err
	}
	return &app{env: env, cfg: cfg}, nil
}

// applyFlagOverrides lets explicit flags win over the environment.
func applyFlagOverrides(env *config.Env, f *rootFlags) {
	if f.changed("driver") {
		env.Driver = string(f.driver)
	}
	if f.changed("browser-id") {
		env.BrowserID = f.browserID
	}
	if f.changed("cdp-url") {
		env.CDPURL = f.cdpURL
	}
	if f.changed("chrome-profile") {
		env.ChromeProfile = f.chromeProfile
	}
	if f.changed("start-url") {
		env.StartURL = f.startURL
	}
	if f.changed("config") {
		env.ConfigFile = f.configFile
	}
}

// Close releases the browser connection.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// Platform opens the browser selected by --driver.
func (a *app) Platform(ctx context.Context) (browser.Platform, error) {
	switch a.env.Driver {
	case driverCDP:
		return a.cdpPlatform(ctx)
	case driverKernel, "":
		return a.kernelPlatform(ctx)
	default:
		return nil, fmt.Errorf("unknown driver %q", a.env.Driver)
	}
}

func (a *app) cdpPlatform(ctx context.Context) (browser.Platform, error) {
	if a.env.CDPURL != "" {
		slog.DebugContext(ctx, "connecting to chrome", "url", a.env.CDPURL)
		c := browser.ConnectCDP(context.Background(), a.env.CDPURL)
		a.closers = append(a.closers, c.Close)
		return c, nil
	}
	slog.DebugContext(ctx, "launching chrome", "profile", a.env.ChromeProfile, "start_url", a.env.StartURL)
	c, err := browser.LaunchCDP(context.Background(), a.env.ChromeProfile, globalFlags.headless, a.env.StartURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, c.Close)
	return c, nil
}

func (a *app) kernelClient() (kernel.Client, error) {
	key, err := a.env.KernelAPIKeyOrKeyring()
	if err != nil {
		return kernel.Client{}, err
	}
	opts := []option.RequestOption{option.WithAPIKey(key)}
	if a.env.KernelBaseURL != "" {
		opts = append(opts, option.WithBaseURL(a.env.KernelBaseURL))
	}
	return kernel.NewClient(opts...), nil
}

func (a *app) kernelPlatform(ctx context.Context) (browser.Platform, error) {
	if a.env.BrowserID == "" {
		return nil, errNoBrowserID
	}
	client, err := a.kernelClient()
	if err != nil {
		return nil, err
	}
	b, err := client.Browsers.Get(ctx, a.env.BrowserID, kernel.BrowserGetParams{})
	if err != nil {
		return nil, util.CleanedUpSdkError{Err: err}
	}
	slog.DebugContext(ctx, "attached to kernel browser", "browser_id", a.env.BrowserID, "session_id", b.SessionID)
	return browser.NewKernel(client, b.SessionID), nil
}

func (a *app) presets() *bfx.Presets {
	return bfx.NewPresets(a.cfg.Presets)
}

func (a *app) locales() bfx.Locales {
	return bfx.Locales(a.cfg.Locales)
}

func (a *app) tokenProvider(platform browser.Platform) *bfx.TokenProvider {
	return bfx.NewTokenProvider(platform, a.cfg.Settings.TokenCookie)
}

func (a *app) settingsClient() *bfx.SettingsClient {
	var opts []bfx.SettingsClientOption
	if a.cfg.Settings.RequestTimeout > 0 {
		opts = append(opts, bfx.WithRequestTimeout(a.cfg.Settings.RequestTimeout))
	}
	return bfx.NewSettingsClient(a.cfg.Settings.Endpoints, opts...)
}

func (a *app) renderer() (*crowdin.Renderer, error) {
	return crowdin.NewRenderer(a.cfg.Crowdin.BaseURL, a.cfg.Crowdin.Languages)
}

// oneShotPresenter prints statuses line by line; used outside the panel.
func oneShotPresenter() *presenter.Presenter {
	return presenter.New(presenter.PrinterSurface{})
}
