package cmd

import (
	"context"
	"testing"

	"github.com/kernel/devpanel/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverValue(t *testing.T) {
	var d driverValue
	require.NoError(t, d.Set("CDP"))
	assert.Equal(t, "cdp", d.String())
	require.NoError(t, d.Set("kernel"))
	assert.Equal(t, "kernel", d.String())
	assert.Error(t, d.Set("firefox"))
	assert.Equal(t, "driver", d.Type())
}

func TestApplyFlagOverrides(t *testing.T) {
	f := &rootFlags{}
	fs := f.flagSet()
	require.NoError(t, fs.Parse([]string{"--driver", "cdp", "--cdp-url", "http://127.0.0.1:9222", "--start-url", "https://app.example.com"}))

	env := &config.Env{Driver: "kernel", BrowserID: "from-env", CDPURL: "", ChromeProfile: "Default"}
	applyFlagOverrides(env, f)

	assert.Equal(t, "cdp", env.Driver)
	assert.Equal(t, "http://127.0.0.1:9222", env.CDPURL)
	assert.Equal(t, "from-env", env.BrowserID)
	assert.Equal(t, "Default", env.ChromeProfile)
	assert.Equal(t, "https://app.example.com", env.StartURL)
}

func TestKernelPlatformNeedsBrowserID(t *testing.T) {
	a := &app{env: &config.Env{Driver: "kernel"}}
	_, err := a.Platform(context.Background())
	assert.ErrorIs(t, err, errNoBrowserID)
}

func TestUnknownDriver(t *testing.T) {
	a := &app{env: &config.Env{Driver: "safari"}}
	_, err := a.Platform(context.Background())
	assert.Error(t, err)
}

func TestAppCloseRunsClosersInReverse(t *testing.T) {
	var order []int
	a := &app{closers: []func(){
		func() { order = append(order, 1) },
		func() { order = append(order, 2) },
	}}
	a.Close()
	a.Close()
	assert.Equal(t, []int{2, 1}, order)
}

func TestUpgradeArgs(t *testing.T) {
	assert.Equal(t, []string{"brew", "upgrade", "kernel/tap/devpanel"}, upgradeArgs("brew"))
	assert.Equal(t, []string{"go", "install", "github.com/kernel/devpanel@latest"}, upgradeArgs("go"))
	assert.Nil(t, upgradeArgs("unknown"))
}

func TestPrintTableNoPadTrimsTrailingSpace(t *testing.T) {
	setupStdoutCapture(t)

	PrintTableNoPad([][]string{{"Name", "Value"}, {"a", "longer value"}, {"bb", "x"}}, true)
	for _, line := range splitLines(outBuf.String()) {
		assert.Equal(t, line, trimRight(line))
	}
}
