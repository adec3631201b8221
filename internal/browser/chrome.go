package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ChromeUserDataDir returns the Chrome user data directory for the current OS.
func ChromeUserDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	userDataDir, err := chromeUserDataDirFor(runtime.GOOS, homeDir, os.Getenv("LOCALAPPDATA"))
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(userDataDir); os.IsNotExist(err) {
		return "", fmt.Errorf("Chrome user data directory not found at %s", userDataDir)
	}
	return userDataDir, nil
}

func chromeUserDataDirFor(goos, homeDir, localAppData string) (string, error) {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "Google", "Chrome"), nil
	case "linux":
		return filepath.Join(homeDir, ".config", "google-chrome"), nil
	case "windows":
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "Google", "Chrome", "User Data"), nil
	default:
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
}

// ListChromeProfiles returns the profiles found in the Chrome user data directory.
func ListChromeProfiles() ([]string, error) {
	userDataDir, err := ChromeUserDataDir()
	if err != nil {
		return nil, err
	}
	return listProfilesIn(userDataDir)
}

func listProfilesIn(userDataDir string) ([]string, error) {
	entries, err := os.ReadDir(userDataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read Chrome user data directory: %w", err)
	}

	var profiles []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		// Chrome profiles are named "Default", "Profile 1", "Profile 2", etc.
		if name == "Default" || (len(name) > 8 && name[:8] == "Profile ") {
			prefsPath := filepath.Join(userDataDir, name, "Preferences")
			if _, err := os.Stat(prefsPath); err == nil {
				profiles = append(profiles, name)
			}
		}
	}
	return profiles, nil
}
