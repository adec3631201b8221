package flow

import (
	"context"
	"fmt"

	"github.com/kernel/devpanel/internal/bfx"
	"github.com/kernel/devpanel/internal/browser"
	"github.com/kernel/devpanel/internal/presenter"
)

// Locale switches the active page to another locale.
type Locale struct {
	Platform  browser.Platform
	Locales   bfx.Locales
	Presenter Presenter
}

// Switch rewrites the locale parameter of the active tab's URL and navigates there.
// It returns the new URL.
func (l *Locale) Switch(ctx context.Context, locale string) (string, error) {
	if err := l.Locales.Validate(locale); err != nil {
		return "", err
	}
	op := fmt.Sprintf("locale %s", locale)

	tab, err := l.Platform.ActiveTab(ctx)
	if err != nil {
		return "", fail(ctx, l.Presenter, op, err)
	}
	target, err := bfx.WithLocale(tab.URL, locale)
	if err != nil {
		return "", fail(ctx, l.Presenter, op, err)
	}
	if err := l.Platform.Navigate(ctx, tab, target); err != nil {
		return "", fail(ctx, l.Presenter, op, err)
	}
	l.Presenter.Notify(presenter.Done, "Done")
	return target, nil
}
