package cmd

import (
	"context"

	"github.com/kernel/devpanel/internal/flow"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// LocaleSwitcher points the active page at another locale.
type LocaleSwitcher interface {
	Switch(ctx context.Context, locale string) (string, error)
}

// LocaleCmd handles locale switching with injectable dependencies.
type LocaleCmd struct {
	switcher LocaleSwitcher
}

type LocaleInput struct {
	Locale string
}

func (c LocaleCmd) Switch(ctx context.Context, in LocaleInput) error {
	target, err := c.switcher.Switch(ctx, in.Locale)
	if err != nil {
		return err
	}
	pterm.Info.Printf("Navigated to %s\n", target)
	return nil
}

var localeCmd = &cobra.Command{
	Use:   "locale <code>",
	Short: "Reload the active page in another locale",
	Long: `Reload the active page with its locale query parameter set to <code>.

Other query parameters are kept.`,
	Example: "  devpanel locale ru\n  devpanel locale pt-BR --driver cdp",
	Args:    cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		a, err := loadApp(cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return a.cfg.Locales, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: runLocale,
}

func runLocale(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	defer a.Close()

	if err := a.locales().Validate(args[0]); err != nil {
		return err
	}

	platform, err := a.Platform(cmd.Context())
	if err != nil {
		return err
	}
	p := oneShotPresenter()
	defer p.Close()

	c := LocaleCmd{switcher: &flow.Locale{Platform: platform, Locales: a.locales(), Presenter: p}}
	return c.Switch(cmd.Context(), LocaleInput{Locale: args[0]})
}
