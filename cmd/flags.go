package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	driverKernel = "kernel"
	driverCDP    = "cdp"
)

// driverValue restricts --driver to the supported browser drivers.
type driverValue string

func (d *driverValue) String() string { return string(*d) }

func (d *driverValue) Set(s string) error {
	switch s = strings.ToLower(strings.TrimSpace(s)); s {
	case driverKernel, driverCDP:
		*d = driverValue(s)
		return nil
	default:
		return fmt.Errorf("must be %q or %q", driverKernel, driverCDP)
	}
}

func (d *driverValue) Type() string { return "driver" }

type rootFlags struct {
	driver        driverValue
	browserID     string
	cdpURL        string
	chromeProfile string
	headless      bool
	startURL      string
	configFile    string
	debug         bool

	set *pflag.FlagSet
}

var globalFlags = &rootFlags{}

func (f *rootFlags) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.Var(&f.driver, "driver", "Browser driver: kernel or cdp (env DEVPANEL_DRIVER)")
	fs.StringVar(&f.browserID, "browser-id", "", "Kernel browser ID (env DEVPANEL_BROWSER_ID)")
	fs.StringVar(&f.cdpURL, "cdp-url", "", "DevTools URL of a running Chrome (env DEVPANEL_CDP_URL)")
	fs.StringVar(&f.chromeProfile, "chrome-profile", "", "Chrome profile directory to launch when no --cdp-url is given")
	fs.BoolVar(&f.headless, "headless", false, "Launch Chrome headless (cdp driver only)")
	fs.StringVar(&f.startURL, "start-url", "", "Page to open in a launched Chrome, e.g. https://app.bitfinex.com (env DEVPANEL_START_URL)")
	fs.StringVar(&f.configFile, "config", "", "Path to the config file (default $XDG_CONFIG_HOME/devpanel/config.yaml)")
	fs.BoolVar(&f.debug, "debug", false, "Enable debug logging")
	f.set = fs
	return fs
}

// changed reports whether the flag called name was given on the command line.
func (f *rootFlags) changed(name string) bool {
	if f.set == nil {
		return false
	}
	flag := f.set.Lookup(name)
	return flag != nil && flag.Changed
}
