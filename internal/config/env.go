package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// AppName is the configuration directory name.
	AppName = "devpanel"

	namespace = "DEVPANEL"
)

// Env holds settings read from the process environment.
type Env struct {
	Driver        string `envconfig:"DRIVER" default:"kernel"`
	BrowserID     string `envconfig:"BROWSER_ID"`
	CDPURL        string `envconfig:"CDP_URL"`
	ChromeProfile string `envconfig:"CHROME_PROFILE" default:"Default"`
	// StartURL is opened in a Chrome launched by the cdp driver.
	StartURL      string `envconfig:"START_URL"`
	ConfigFile    string `envconfig:"CONFIG"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	// KernelAPIKey falls back to the unprefixed KERNEL_API_KEY.
	KernelAPIKey  string `envconfig:"KERNEL_API_KEY"`
	KernelBaseURL string `envconfig:"KERNEL_BASE_URL"`
}

// LoadEnv loads a .env file from the working directory when present and then
// processes DEVPANEL_* variables.
func LoadEnv() (*Env, error) {
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	if env.ConfigFile == "" {
		env.ConfigFile = DefaultConfigPath()
	}
	return &env, nil
}

func (e *Env) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelInfo
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/devpanel/config.yaml, falling back to
// $HOME/.config.
func DefaultConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName, "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", AppName, "config.yaml")
	}
	return filepath.Join(home, ".config", AppName, "config.yaml")
}
