package browser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chromedp/cdproto/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChromeUserDataDirFor(t *testing.T) {
	tests := []struct {
		goos         string
		localAppData string
		expected     string
	}{
		{"darwin", "", filepath.Join("/home/u", "Library", "Application Support", "Google", "Chrome")},
		{"linux", "", filepath.Join("/home/u", ".config", "google-chrome")},
		{"windows", "", filepath.Join("/home/u", "AppData", "Local", "Google", "Chrome", "User Data")},
		{"windows", "/lad", filepath.Join("/lad", "Google", "Chrome", "User Data")},
	}
	for _, tt := range tests {
		t.Run(tt.goos+tt.localAppData, func(t *testing.T) {
			dir, err := chromeUserDataDirFor(tt.goos, "/home/u", tt.localAppData)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dir)
		})
	}

	_, err := chromeUserDataDirFor("plan9", "/home/u", "")
	assert.Error(t, err)
}

func TestListProfilesIn(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"Default", "Profile 1", "Profile 2", "System Profile", "Crashpad"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0755))
	}
	// Only directories with a Preferences file count as profiles.
	for _, name := range []string{"Default", "Profile 1", "System Profile"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name, "Preferences"), []byte("{}"), 0644))
	}

	profiles, err := listProfilesIn(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"Default", "Profile 1"}, profiles)
}

func TestPickActivePage(t *testing.T) {
	targets := []*target.Info{
		{TargetID: "sw", Type: "service_worker", URL: "https://app.example.com/sw.js"},
		{TargetID: "dt", Type: "page", URL: "devtools://devtools/bundled/inspector.html"},
		{TargetID: "p1", Type: "page", URL: "https://app.example.com/"},
		{TargetID: "p2", Type: "page", URL: "https://crowdin.com/"},
	}

	active := pickActivePage(targets)
	require.NotNil(t, active)
	assert.Equal(t, target.ID("p1"), active.TargetID)

	assert.Nil(t, pickActivePage(targets[:2]))
}
