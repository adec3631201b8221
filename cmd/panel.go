package cmd

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/kernel/devpanel/internal/flow"
	"github.com/kernel/devpanel/internal/presenter"
	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

const (
	panelLocalePrefix   = "locale: "
	panelSettingsPrefix = "settings: "
	panelTasksReport    = "tasks: copy report"
	panelQuit           = "quit"
	panelPrompt         = "devpanel"
)

// Selector asks the operator to pick one of options under prompt.
type Selector func(prompt string, options []string) (string, error)

// StatusSource reports the status to show with the next prompt.
type StatusSource interface {
	Text() string
}

// PanelCmd runs every trigger from one interactive menu.
type PanelCmd struct {
	locale   LocaleSwitcher
	settings SettingsApplier
	tasks    TaskReporter
	locales  []string
	presets  []string
	selector Selector
	status   StatusSource
}

func (c PanelCmd) options() []string {
	opts := lo.Map(c.locales, func(l string, _ int) string { return panelLocalePrefix + l })
	opts = append(opts, lo.Map(c.presets, func(p string, _ int) string { return panelSettingsPrefix + p })...)
	return append(opts, panelTasksReport, panelQuit)
}

func (c PanelCmd) prompt() string {
	if c.status == nil {
		return panelPrompt
	}
	if text := c.status.Text(); text != "" {
		return panelPrompt + "  " + text
	}
	return panelPrompt
}

// Run shows the menu until the operator quits or the context ends. Failed actions
// leave the menu open; their status is shown with the next prompt.
func (c PanelCmd) Run(ctx context.Context) error {
	options := c.options()
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		choice, err := c.selector(c.prompt(), options)
		if err != nil {
			return err
		}
		if choice == panelQuit {
			return nil
		}
		if err := c.dispatch(ctx, choice); err != nil {
			slog.DebugContext(ctx, "panel action failed", "action", choice, "error", err)
			var flowErr *flow.Error
			if !errors.As(err, &flowErr) {
				pterm.Error.Println(err)
			}
		}
	}
}

func (c PanelCmd) dispatch(ctx context.Context, choice string) error {
	switch {
	case strings.HasPrefix(choice, panelLocalePrefix):
		_, err := c.locale.Switch(ctx, strings.TrimPrefix(choice, panelLocalePrefix))
		return err
	case strings.HasPrefix(choice, panelSettingsPrefix):
		_, err := c.settings.Apply(ctx, strings.TrimPrefix(choice, panelSettingsPrefix))
		return err
	case choice == panelTasksReport:
		report, err := c.tasks.Report(ctx)
		if err != nil {
			return err
		}
		if report != "" {
			pterm.Println(reportFrame.Render(report))
		}
		return nil
	default:
		return errors.New("unknown action " + choice)
	}
}

func interactiveSelect(prompt string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(prompt).
		WithMaxHeight(len(options)).
		Show()
}

var panelCmd = &cobra.Command{
	Use:   "panel",
	Short: "Interactive panel with every action in one menu",
	Args:  cobra.NoArgs,
	RunE:  runPanel,
}

func runPanel(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	defer a.Close()

	ctx := cmd.Context()
	platform, err := a.Platform(ctx)
	if err != nil {
		return err
	}
	renderer, err := a.renderer()
	if err != nil {
		return err
	}

	status := &presenter.StatusLine{}
	p := presenter.New(status)
	defer p.Close()

	presets := a.presets()
	c := PanelCmd{
		locale: &flow.Locale{Platform: platform, Locales: a.locales(), Presenter: p},
		settings: &flow.Settings{
			Platform:  platform,
			Tokens:    a.tokenProvider(platform),
			Writer:    a.settingsClient(),
			Presets:   presets,
			Presenter: p,
		},
		tasks:    &flow.Tasks{Platform: platform, Renderer: renderer, Presenter: p},
		locales:  a.cfg.Locales,
		presets:  presets.Names(),
		selector: interactiveSelect,
		status:   status,
	}
	return c.Run(ctx)
}
