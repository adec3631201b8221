// Package update checks GitHub for newer devpanel releases and works out how the
// running binary was installed.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	latestReleaseURL = "https://api.github.com/repos/kernel/devpanel/releases/latest"
	modulePath       = "github.com/kernel/devpanel"
)

// InstallMethod is how the running binary was installed.
type InstallMethod string

const (
	InstallMethodBrew    InstallMethod = "brew"
	InstallMethodGo      InstallMethod = "go"
	InstallMethodUnknown InstallMethod = "unknown"
)

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// FetchLatest returns the tag and release page of the latest GitHub release.
func FetchLatest(ctx context.Context) (tag string, url string, err error) {
	return fetchLatestFrom(ctx, http.DefaultClient, latestReleaseURL)
}

func fetchLatestFrom(ctx context.Context, client *http.Client, endpoint string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("github releases: %s", resp.Status)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", "", fmt.Errorf("invalid release response: %w", err)
	}
	if rel.TagName == "" {
		return "", "", fmt.Errorf("release has no tag")
	}
	return rel.TagName, rel.HTMLURL, nil
}

// IsNewerVersion reports whether latest is a higher semantic version than current.
func IsNewerVersion(current, latest string) (bool, error) {
	cur, err := semver.NewVersion(strings.TrimPrefix(current, "v"))
	if err != nil {
		return false, fmt.Errorf("invalid current version %q: %w", current, err)
	}
	lat, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return false, fmt.Errorf("invalid latest version %q: %w", latest, err)
	}
	return lat.GreaterThan(cur), nil
}

type installMethodRule struct {
	method InstallMethod
	check  func(path string) bool
}

// installMethodRules are evaluated in order; the first match wins.
func installMethodRules() []installMethodRule {
	return []installMethodRule{
		{InstallMethodGo, pathMatchesGo},
		{InstallMethodBrew, pathMatchesHomebrew},
	}
}

// DetectInstallMethod inspects the path of the running binary.
func DetectInstallMethod() (InstallMethod, string) {
	exe, err := os.Executable()
	if err != nil {
		return InstallMethodUnknown, ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	for _, r := range installMethodRules() {
		if r.check(exe) {
			return r.method, exe
		}
	}
	return InstallMethodUnknown, exe
}

// SuggestUpgradeCommand returns the upgrade command for the running binary.
func SuggestUpgradeCommand() string {
	method, _ := DetectInstallMethod()
	return suggestUpgradeCommandForMethod(method)
}

func suggestUpgradeCommandForMethod(method InstallMethod) string {
	switch method {
	case InstallMethodGo:
		return "go install " + modulePath + "@latest"
	default:
		return "brew upgrade kernel/tap/devpanel"
	}
}

func pathMatchesHomebrew(path string) bool {
	p := filepath.ToSlash(path)
	return strings.Contains(p, "/Cellar/") ||
		strings.HasPrefix(p, "/opt/homebrew/") ||
		strings.Contains(p, "/.linuxbrew/")
}

func pathMatchesGo(path string) bool {
	p := filepath.ToSlash(path)
	if gobin := os.Getenv("GOBIN"); gobin != "" && strings.HasPrefix(p, filepath.ToSlash(gobin)+"/") {
		return true
	}
	return strings.Contains(p, "/go/bin/")
}
