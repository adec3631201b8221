package util

import (
	"fmt"
	"strings"
	"time"
)

// OrDash returns the string if non-empty, otherwise returns "-".
func OrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// JoinOrDash joins the provided strings with ", " as separator.
// If no items are provided, it returns "-".
func JoinOrDash(items ...string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// YesNo renders a boolean for tables.
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// FormatExpiry renders an expiry time relative to now, e.g. "2026-01-02 15:04 (in 3h0m0s)".
// A zero time renders as "-".
func FormatExpiry(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	stamp := t.Local().Format("2006-01-02 15:04")
	d := t.Sub(now).Round(time.Second)
	if d <= 0 {
		return fmt.Sprintf("%s (expired %s ago)", stamp, -d)
	}
	return fmt.Sprintf("%s (in %s)", stamp, d)
}
