package cmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/kernel/devpanel/pkg/update"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var dryRun bool

var upgradeCmd = &cobra.Command{
	Use:     "upgrade",
	Aliases: []string{"update"},
	Short:   "Upgrade devpanel to the latest version",
	Long: `Upgrade devpanel to the latest version.

Supported installation methods:
  - Homebrew (brew)
  - go install

If your installation method cannot be detected, manual upgrade instructions will be provided.`,
	Args: cobra.NoArgs,
	RunE: runUpgrade,
}

func init() {
	upgradeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be executed without running")
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	currentVersion := metadata.Version

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()

	pterm.Info.Println("Checking for updates...")

	latestTag, releaseURL, err := update.FetchLatest(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	isNewer, err := update.IsNewerVersion(currentVersion, latestTag)
	if err != nil {
		// dev builds have no comparable version
		pterm.Warning.Printf("Could not compare versions (%s vs %s): %v\n", currentVersion, latestTag, err)
		pterm.Info.Println("Proceeding with upgrade...")
	} else if !isNewer {
		pterm.Success.Printf("You are already on the latest version (%s)\n", strings.TrimPrefix(currentVersion, "v"))
		return nil
	} else {
		pterm.Info.Printf("New version available: %s → %s\n", strings.TrimPrefix(currentVersion, "v"), strings.TrimPrefix(latestTag, "v"))
		if releaseURL != "" {
			pterm.Info.Printf("Release notes: %s\n", releaseURL)
		}
	}

	method, binaryPath := update.DetectInstallMethod()

	if method == update.InstallMethodUnknown {
		printManualUpgradeInstructions(latestTag, binaryPath)
		return fmt.Errorf("could not detect installation method")
	}

	if dryRun {
		pterm.Info.Printf("Would run: %s\n", strings.Join(upgradeArgs(method), " "))
		return nil
	}

	pterm.Info.Printf("Upgrading via %s...\n", method)
	return executeUpgrade(cmd.Context(), method)
}

// upgradeArgs returns the command line that upgrades an installation made with method.
func upgradeArgs(method update.InstallMethod) []string {
	switch method {
	case update.InstallMethodBrew:
		return []string{"brew", "upgrade", "kernel/tap/devpanel"}
	case update.InstallMethodGo:
		return []string{"go", "install", "github.com/kernel/devpanel@latest"}
	default:
		return nil
	}
}

func executeUpgrade(ctx context.Context, method update.InstallMethod) error {
	argv := upgradeArgs(method)
	if len(argv) == 0 {
		return fmt.Errorf("unknown installation method")
	}

	c := exec.CommandContext(ctx, argv[0], argv[1:]...)
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Stdin = os.Stdin
	return c.Run()
}

func printManualUpgradeInstructions(version, binaryPath string) {
	version = strings.TrimPrefix(version, "v")

	downloadURL := fmt.Sprintf(
		"https://github.com/kernel/devpanel/releases/download/v%s/devpanel_%s_%s_%s.tar.gz",
		version, version, runtime.GOOS, runtime.GOARCH,
	)

	if binaryPath == "" {
		binaryPath = "/usr/local/bin/devpanel"
	}

	pterm.Warning.Println("Could not detect installation method.")
	pterm.Info.Println("To upgrade manually, run:")
	pterm.Println()
	pterm.Printf("  wget %s -O /tmp/devpanel.tar.gz\n", downloadURL)
	pterm.Printf("  tar -xzf /tmp/devpanel.tar.gz -C /tmp\n")
	pterm.Printf("  sudo cp /tmp/devpanel %s\n", binaryPath)
	pterm.Println()
}
