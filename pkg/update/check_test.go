package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestUpgradeCommandForMethod(t *testing.T) {
	tests := []struct {
		method   InstallMethod
		expected string
	}{
		{InstallMethodBrew, "brew upgrade kernel/tap/devpanel"},
		{InstallMethodGo, "go install github.com/kernel/devpanel@latest"},
		{InstallMethodUnknown, "brew upgrade kernel/tap/devpanel"},
	}
	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestUpgradeCommandForMethod(tt.method))
		})
	}
}

func TestPathMatchesHomebrew(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/opt/homebrew/bin/devpanel", true},
		{"/usr/local/Cellar/devpanel/1.0/bin/devpanel", true},
		{"/home/linuxbrew/.linuxbrew/Cellar/devpanel/1.0/bin/devpanel", true},
		{"/home/user/go/bin/devpanel", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, pathMatchesHomebrew(tt.path))
		})
	}
}

func TestPathMatchesGo(t *testing.T) {
	t.Setenv("GOBIN", "/custom/gobin")
	tests := []struct {
		path     string
		expected bool
	}{
		{"/home/user/go/bin/devpanel", true},
		{"/custom/gobin/devpanel", true},
		{"/opt/homebrew/bin/devpanel", false},
		{"/usr/local/bin/devpanel", false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, pathMatchesGo(tt.path))
		})
	}
}

func TestInstallMethodRulesPathPrecedence(t *testing.T) {
	t.Setenv("GOBIN", "")
	rules := installMethodRules()

	detect := func(path string) InstallMethod {
		for _, r := range rules {
			if r.check(path) {
				return r.method
			}
		}
		return InstallMethodUnknown
	}

	assert.Equal(t, InstallMethodGo, detect("/home/user/go/bin/devpanel"))
	assert.Equal(t, InstallMethodBrew, detect("/opt/homebrew/bin/devpanel"))
	assert.Equal(t, InstallMethodUnknown, detect("/usr/local/bin/devpanel"))
}

func TestIsNewerVersion(t *testing.T) {
	newer, err := IsNewerVersion("v0.3.0", "v0.4.1")
	require.NoError(t, err)
	assert.True(t, newer)

	newer, err = IsNewerVersion("0.4.1", "v0.4.1")
	require.NoError(t, err)
	assert.False(t, newer)

	_, err = IsNewerVersion("dev", "v0.4.1")
	assert.Error(t, err)
}

func TestFetchLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"tag_name":"v0.5.0","html_url":"https://github.com/kernel/devpanel/releases/tag/v0.5.0"}`))
	}))
	defer srv.Close()

	tag, url, err := fetchLatestFrom(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "v0.5.0", tag)
	assert.Equal(t, "https://github.com/kernel/devpanel/releases/tag/v0.5.0", url)
}

func TestFetchLatestErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, _, err := fetchLatestFrom(context.Background(), srv.Client(), srv.URL)
	assert.Error(t, err)
}
