package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/kernel/devpanel/internal/bfx"
	"github.com/kernel/devpanel/internal/flow"
	"github.com/kernel/devpanel/pkg/util"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// SettingsApplier applies a named preset for the signed-in user.
type SettingsApplier interface {
	Apply(ctx context.Context, preset string) (*bfx.ApplyResult, error)
}

// SettingsCmd handles settings operations with injectable dependencies.
type SettingsCmd struct {
	applier SettingsApplier
	presets *bfx.Presets
}

type SettingsApplyInput struct {
	Preset string
}

type SettingsListInput struct {
	Output string
}

type presetView struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Payload     string `json:"payload"`
}

func (c SettingsCmd) Apply(ctx context.Context, in SettingsApplyInput) error {
	result, err := c.applier.Apply(ctx, in.Preset)
	if err != nil {
		return err
	}
	if result.Attempts > 1 {
		pterm.Info.Printf("Applied %s via %s after %d attempts\n", in.Preset, result.Endpoint, result.Attempts)
	} else {
		pterm.Info.Printf("Applied %s via %s\n", in.Preset, result.Endpoint)
	}
	return nil
}

func (c SettingsCmd) List(ctx context.Context, in SettingsListInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}
	items := c.presets.All()

	if in.Output == "json" {
		views := make([]presetView, 0, len(items))
		for _, p := range items {
			views = append(views, presetView{Name: p.Name, Description: p.Description, Payload: p.Payload})
		}
		return util.PrintPrettyJSON(os.Stdout, views)
	}

	if len(items) == 0 {
		pterm.Info.Println("No presets configured")
		return nil
	}
	rows := pterm.TableData{{"Name", "Description", "Payload"}}
	for _, p := range items {
		rows = append(rows, []string{p.Name, util.OrDash(p.Description), p.Payload})
	}
	PrintTableNoPad(rows, true)
	return nil
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Push settings presets for the user signed in on the active page",
}

var settingsApplyCmd = &cobra.Command{
	Use:   "apply <preset>",
	Short: "Apply a settings preset and reload the active page",
	Long: `Read the session token from the active page, write the preset to the settings
backend and reload the page.

Endpoints are tried in configured order; the next one is only tried after the
previous one failed. Only an HTTP 200 counts as success.`,
	Example: "  devpanel settings apply dark-theme",
	Args:    cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		a, err := loadApp(cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return a.presets().Names(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runSettingsApply,
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the configured settings presets",
	Args:  cobra.NoArgs,
	RunE:  runSettingsList,
}

func init() {
	settingsCmd.AddCommand(settingsApplyCmd)
	settingsCmd.AddCommand(settingsListCmd)

	settingsListCmd.Flags().StringP("output", "o", "", "Output format: json for raw JSON")
}

func runSettingsApply(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	defer a.Close()

	presets := a.presets()
	if _, err := presets.Lookup(args[0]); err != nil {
		return err
	}

	platform, err := a.Platform(cmd.Context())
	if err != nil {
		return err
	}
	p := oneShotPresenter()
	defer p.Close()

	c := SettingsCmd{
		applier: &flow.Settings{
			Platform:  platform,
			Tokens:    a.tokenProvider(platform),
			Writer:    a.settingsClient(),
			Presets:   presets,
			Presenter: p,
		},
		presets: presets,
	}
	return c.Apply(cmd.Context(), SettingsApplyInput{Preset: args[0]})
}

func runSettingsList(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	output, _ := cmd.Flags().GetString("output")

	c := SettingsCmd{presets: a.presets()}
	return c.List(cmd.Context(), SettingsListInput{Output: output})
}
