package bfx

import (
	"errors"
	"fmt"

	"github.com/kernel/devpanel/internal/config"
	"github.com/samber/lo"
)

// ErrUnknownPreset is returned by Presets.Lookup for names that are not configured.
var ErrUnknownPreset = errors.New("unknown settings preset")

// Presets is the fixed, ordered set of settings payloads an operator can push.
type Presets struct {
	items []config.Preset
}

func NewPresets(items []config.Preset) *Presets {
	return &Presets{items: items}
}

// All returns the presets in configuration order.
func (p *Presets) All() []config.Preset {
	return p.items
}

// Names returns the preset names in configuration order.
func (p *Presets) Names() []string {
	return lo.Map(p.items, func(item config.Preset, _ int) string { return item.Name })
}

// Lookup returns the preset called name.
func (p *Presets) Lookup(name string) (config.Preset, error) {
	preset, ok := lo.Find(p.items, func(item config.Preset) bool { return item.Name == name })
	if !ok {
		return config.Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return preset, nil
}
