package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/kernel/devpanel/internal/bfx"
	"github.com/kernel/devpanel/internal/browser"
	"github.com/kernel/devpanel/internal/config"
	"github.com/kernel/devpanel/pkg/util"
	pkgbrowser "github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// TokenSource yields the session token of the active page.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StatusCmd reports what devpanel would act on, with injectable dependencies.
type StatusCmd struct {
	platform  browser.Platform
	tokens    TokenSource
	driver    string
	cookie    string
	endpoints []config.Endpoint
	open      func(url string) error
	now       func() time.Time
}

type StatusInput struct {
	Output string
	Open   bool
}

type statusReport struct {
	Driver         string     `json:"driver"`
	ActiveTab      string     `json:"active_tab"`
	TokenCookie    string     `json:"token_cookie"`
	TokenPresent   bool       `json:"token_present"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
	Endpoints      []string   `json:"endpoints"`
}

func (c StatusCmd) Status(ctx context.Context, in StatusInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}

	tab, err := c.platform.ActiveTab(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve active tab: %w", err)
	}

	report := statusReport{
		Driver:      c.driver,
		ActiveTab:   tab.URL,
		TokenCookie: c.cookie,
		Endpoints:   lo.Map(c.endpoints, func(ep config.Endpoint, _ int) string { return ep.Name }),
	}

	token, err := c.tokens.Token(ctx)
	switch {
	case errors.Is(err, bfx.ErrTokenNotFound):
	case err != nil:
		return err
	default:
		report.TokenPresent = true
		if exp, ok := tokenExpiry(token); ok {
			report.TokenExpiresAt = &exp
		}
	}

	if in.Output == "json" {
		if err := util.PrintPrettyJSON(os.Stdout, report); err != nil {
			return err
		}
	} else {
		printStatusReport(report, c.now())
	}

	if in.Open {
		if err := c.open(tab.URL); err != nil {
			return fmt.Errorf("failed to open %s: %w", tab.URL, err)
		}
	}
	return nil
}

// tokenExpiry reads the exp claim of a JWT-shaped token without verifying it.
// Opaque tokens report no expiry.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func printStatusReport(r statusReport, now time.Time) {
	expires := "-"
	if r.TokenExpiresAt != nil {
		expires = util.FormatExpiry(*r.TokenExpiresAt, now)
	}
	rows := pterm.TableData{
		{"Property", "Value"},
		{"Driver", r.Driver},
		{"Active Tab", util.OrDash(r.ActiveTab)},
		{"Token Cookie", r.TokenCookie},
		{"Token Present", util.YesNo(r.TokenPresent)},
		{"Token Expires", expires},
		{"Endpoints", util.JoinOrDash(r.Endpoints...)},
	}
	PrintTableNoPad(rows, true)
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active page and whether it carries a session token",
	Long: `Show the page devpanel would act on, whether its session token cookie is present
and, for JWT-shaped tokens, when it expires. The token itself is never printed.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringP("output", "o", "", "Output format (json)")
	statusCmd.Flags().Bool("open", false, "Open the active page in the local default browser")
}

func runStatus(cmd *cobra.Command, args []string) error {
	a := appFrom(cmd)
	defer a.Close()

	output, _ := cmd.Flags().GetString("output")
	open, _ := cmd.Flags().GetBool("open")

	platform, err := a.Platform(cmd.Context())
	if err != nil {
		return err
	}

	c := StatusCmd{
		platform:  platform,
		tokens:    a.tokenProvider(platform),
		driver:    a.env.Driver,
		cookie:    a.cfg.Settings.TokenCookie,
		endpoints: a.cfg.Settings.Endpoints,
		open:      pkgbrowser.OpenURL,
		now:       time.Now,
	}
	return c.Status(cmd.Context(), StatusInput{Output: output, Open: open})
}
