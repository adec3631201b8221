package flow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kernel/devpanel/internal/bfx"
	"github.com/kernel/devpanel/internal/browser"
	"github.com/kernel/devpanel/internal/presenter"
)

// Settings applies a named preset for the user signed in on the active page.
type Settings struct {
	Platform  browser.Platform
	Tokens    TokenSource
	Writer    SettingsWriter
	Presets   *bfx.Presets
	Presenter Presenter
}

// Apply reads the token, writes the preset and reloads the active tab so the page
// picks the new settings up. Without a token nothing is sent and the tab is left
// alone; a rejected write still reloads.
func (s *Settings) Apply(ctx context.Context, presetName string) (*bfx.ApplyResult, error) {
	preset, err := s.Presets.Lookup(presetName)
	if err != nil {
		return nil, err
	}
	op := fmt.Sprintf("settings %s", preset.Name)

	token, err := s.Tokens.Token(ctx)
	if err != nil {
		return nil, fail(ctx, s.Presenter, op, err)
	}

	result, applyErr := s.Writer.Apply(ctx, token, preset.Payload)
	if applyErr != nil {
		applyErr = fail(ctx, s.Presenter, op, applyErr)
	} else {
		slog.DebugContext(ctx, "settings applied", "preset", preset.Name, "endpoint", result.Endpoint, "attempts", result.Attempts)
		s.Presenter.Notify(presenter.Done, "Done")
	}

	if err := s.reload(ctx); err != nil {
		slog.DebugContext(ctx, "reload after settings update failed", "error", err)
		if applyErr == nil {
			return result, &Error{Op: "reload", Err: err}
		}
	}
	return result, applyErr
}

func (s *Settings) reload(ctx context.Context) error {
	tab, err := s.Platform.ActiveTab(ctx)
	if err != nil {
		return err
	}
	return s.Platform.Reload(ctx, tab)
}
