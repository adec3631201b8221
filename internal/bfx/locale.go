package bfx

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// LocaleParam is the query parameter the web app reads its locale from.
const LocaleParam = "locale"

// ErrUnknownLocale is returned for locales outside the configured set.
var ErrUnknownLocale = errors.New("unknown locale")

// Locales is the set of locales the operator may switch to.
type Locales []string

// Validate reports whether locale is one of l.
func (l Locales) Validate(locale string) error {
	if !lo.Contains(l, locale) {
		return fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	return nil
}

// WithLocale returns rawURL with the locale parameter set, replacing any existing
// value in place. The other parameters keep their order and encoding; a missing
// locale parameter is appended.
func WithLocale(rawURL, locale string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid page url %q: %w", rawURL, err)
	}

	param := LocaleParam + "=" + url.QueryEscape(locale)
	var pairs []string
	replaced := false
	for _, pair := range strings.Split(u.RawQuery, "&") {
		if pair == "" {
			continue
		}
		if !isLocalePair(pair) {
			pairs = append(pairs, pair)
			continue
		}
		if !replaced {
			pairs = append(pairs, param)
			replaced = true
		}
	}
	if !replaced {
		pairs = append(pairs, param)
	}
	u.RawQuery = strings.Join(pairs, "&")
	return u.String(), nil
}

func isLocalePair(pair string) bool {
	key, _, _ := strings.Cut(pair, "=")
	if unescaped, err := url.QueryUnescape(key); err == nil {
		key = unescaped
	}
	return key == LocaleParam
}
