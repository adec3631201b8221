package browser

import (
	_ "embed"
)

// Playwright scripts executed through Kernel's Playwright execution API.
// Each one reads its arguments from a `params` object prepended by the caller.

//go:embed scripts/active_tab.js
var activeTabScript string

//go:embed scripts/navigate.js
var navigateScript string

//go:embed scripts/reload.js
var reloadScript string

//go:embed scripts/cookie.js
var cookieScript string

//go:embed scripts/evaluate.js
var evaluateScript string
