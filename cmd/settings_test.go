package cmd

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kernel/devpanel/internal/bfx"
	"github.com/kernel/devpanel/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeSettingsApplier struct {
	ApplyFunc func(ctx context.Context, preset string) (*bfx.ApplyResult, error)
}

func (f *FakeSettingsApplier) Apply(ctx context.Context, preset string) (*bfx.ApplyResult, error) {
	if f.ApplyFunc != nil {
		return f.ApplyFunc(ctx, preset)
	}
	return &bfx.ApplyResult{Endpoint: "primary", Attempts: 1}, nil
}

func testPresets() *bfx.Presets {
	return bfx.NewPresets([]config.Preset{
		{Name: "dark-theme", Description: "Dark theme", Payload: `{"settings":{"api:theme":"bfx-dark-theme"}}`},
		{Name: "sat-mode", Payload: `{"settings":{"api:bitfinex_bitcoinViewMode":"SAT"}}`},
	})
}

func TestSettingsApply_PrintsEndpoint(t *testing.T) {
	setupStdoutCapture(t)

	c := SettingsCmd{applier: &FakeSettingsApplier{}, presets: testPresets()}
	require.NoError(t, c.Apply(context.Background(), SettingsApplyInput{Preset: "dark-theme"}))
	assert.Contains(t, outBuf.String(), "Applied dark-theme via primary")
}

func TestSettingsApply_PrintsFallback(t *testing.T) {
	setupStdoutCapture(t)

	fake := &FakeSettingsApplier{ApplyFunc: func(ctx context.Context, preset string) (*bfx.ApplyResult, error) {
		return &bfx.ApplyResult{Endpoint: "secondary", Attempts: 2}, nil
	}}
	c := SettingsCmd{applier: fake, presets: testPresets()}
	require.NoError(t, c.Apply(context.Background(), SettingsApplyInput{Preset: "sat-mode"}))
	assert.Contains(t, outBuf.String(), "Applied sat-mode via secondary after 2 attempts")
}

func TestSettingsApply_Error(t *testing.T) {
	setupStdoutCapture(t)

	fake := &FakeSettingsApplier{ApplyFunc: func(ctx context.Context, preset string) (*bfx.ApplyResult, error) {
		return nil, &bfx.UpdateFailedError{}
	}}
	c := SettingsCmd{applier: fake, presets: testPresets()}
	err := c.Apply(context.Background(), SettingsApplyInput{Preset: "sat-mode"})
	assert.ErrorIs(t, err, bfx.ErrSettingsUpdateFailed)
	assert.NotContains(t, outBuf.String(), "Applied")
}

func TestSettingsList_Table(t *testing.T) {
	setupStdoutCapture(t)

	c := SettingsCmd{presets: testPresets()}
	require.NoError(t, c.List(context.Background(), SettingsListInput{}))

	out := outBuf.String()
	assert.Contains(t, out, "dark-theme")
	assert.Contains(t, out, "Dark theme")
	assert.Contains(t, out, "sat-mode")
	assert.Contains(t, out, "api:bitfinex_bitcoinViewMode")
}

func TestSettingsList_JSON(t *testing.T) {
	c := SettingsCmd{presets: testPresets()}

	out := captureOSStdout(t, func() {
		require.NoError(t, c.List(context.Background(), SettingsListInput{Output: "json"}))
	})

	var views []presetView
	require.NoError(t, json.Unmarshal([]byte(out), &views))
	require.Len(t, views, 2)
	assert.Equal(t, "dark-theme", views[0].Name)
	assert.Equal(t, `{"settings":{"api:bitfinex_bitcoinViewMode":"SAT"}}`, views[1].Payload)
}

func TestSettingsList_RejectsUnknownOutput(t *testing.T) {
	c := SettingsCmd{presets: testPresets()}
	assert.Error(t, c.List(context.Background(), SettingsListInput{Output: "yaml"}))
}
