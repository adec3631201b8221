// Package config loads devpanel configuration: the YAML file describing endpoints,
// presets, locales and Crowdin language codes, and the environment that selects the
// browser driver.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Endpoint is a settings backend candidate. Order in the config is the order of attempts.
type Endpoint struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Preset is a named, pre-serialized settings payload.
type Preset struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Payload     string `yaml:"payload"`
}

type Settings struct {
	Endpoints      []Endpoint    `yaml:"endpoints"`
	TokenCookie    string        `yaml:"token_cookie"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type Crowdin struct {
	BaseURL   string            `yaml:"base_url"`
	Languages map[string]string `yaml:"languages"`
}

// File is the on-disk configuration. A user file is decoded on top of the embedded
// defaults: lists present in the user file replace the default lists, language codes
// are merged key by key.
type File struct {
	Settings Settings `yaml:"settings"`
	Presets  []Preset `yaml:"presets"`
	Locales  []string `yaml:"locales"`
	Crowdin  Crowdin  `yaml:"crowdin"`
}

// Defaults returns the embedded configuration.
func Defaults() (*File, error) {
	var f File
	if err := yaml.Unmarshal(defaultsYAML, &f); err != nil {
		return nil, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	return &f, nil
}

// Load returns the embedded defaults overlaid with the file at path.
// An empty path, or a path that does not exist, yields the defaults.
func Load(path string) (*File, error) {
	f, err := Defaults()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return f, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return f, nil
}

// Validate checks the invariants the flows rely on.
func (f *File) Validate() error {
	if len(f.Settings.Endpoints) == 0 {
		return errors.New("settings.endpoints must list at least one endpoint")
	}
	for i, ep := range f.Settings.Endpoints {
		if ep.URL == "" {
			return fmt.Errorf("settings.endpoints[%d] has no url", i)
		}
	}
	if f.Settings.TokenCookie == "" {
		return errors.New("settings.token_cookie must not be empty")
	}
	seen := make(map[string]bool, len(f.Presets))
	for _, p := range f.Presets {
		if p.Name == "" {
			return errors.New("presets entries need a name")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
	}
	return nil
}
