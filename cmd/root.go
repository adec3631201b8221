// Package cmd implements the devpanel command line.
package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Metadata is stamped into the binary at build time.
type Metadata struct {
	Version string
	Commit  string
	Date    string
}

var metadata = Metadata{Version: "dev"}

var rootCmd = &cobra.Command{
	Use:   "devpanel",
	Short: "Developer panel for the Bitfinex web app",
	Long: `devpanel drives the active page of a browser session to switch the app locale,
push settings presets to the backend and turn a Crowdin task board into a
translation request report.

The browser is either a remote Kernel browser (--driver kernel --browser-id <id>)
or a local Chrome reached over the DevTools protocol (--driver cdp).`,
	SilenceUsage:      true,
	PersistentPreRunE: setupApp,
}

func init() {
	rootCmd.PersistentFlags().AddFlagSet(globalFlags.flagSet())

	rootCmd.AddCommand(localeCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(panelCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(upgradeCmd)
}

// setupApp loads configuration, configures logging and attaches the app to the
// command context.
func setupApp(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}
	configureLogging(a.env.SlogLevel(), globalFlags.debug)
	cmd.SetContext(withApp(cmd.Context(), a))
	return nil
}

func configureLogging(level slog.Level, debug bool) {
	if debug {
		level = slog.LevelDebug
	}
	logLevel := pterm.LogLevelInfo
	switch {
	case level <= slog.LevelDebug:
		logLevel = pterm.LogLevelDebug
		pterm.EnableDebugMessages()
	case level >= slog.LevelError:
		logLevel = pterm.LogLevelError
	case level >= slog.LevelWarn:
		logLevel = pterm.LogLevelWarn
	}
	logger := pterm.DefaultLogger.WithLevel(logLevel)
	slog.SetDefault(slog.New(pterm.NewSlogHandler(logger)))
}

// Execute runs the root command and exits non-zero on failure.
func Execute(m Metadata) {
	metadata = m

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion(m.Version),
		fang.WithCommit(m.Commit),
	); err != nil {
		stop()
		os.Exit(1)
	}
}
