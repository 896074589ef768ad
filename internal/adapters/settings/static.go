package settings

import (
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"

	"github.com/jsamuelsen/viewlink/internal/ports"
)

// StaticProvider serves settings from an in-memory map.
type StaticProvider struct {
	k   *koanf.Koanf
	err error
}

var _ ports.SettingsProvider = (*StaticProvider)(nil)

// NewStaticProvider creates a provider over values. Nested maps are addressed
// with "." separated keys. A nil map yields a provider with no settings.
func NewStaticProvider(values map[string]any) *StaticProvider {
	p := &StaticProvider{k: koanf.New(".")}

	if values == nil {
		return p
	}

	if err := p.k.Load(confmap.Provider(values, ""), nil); err != nil {
		p.err = err
	}

	return p
}

// Get returns the value stored under key, or nil. A provider whose map
// failed to load serves nothing.
func (p *StaticProvider) Get(key string) any {
	if p.err != nil {
		return nil
	}

	return p.k.Get(key)
}

// Err reports the error of loading the map, if any.
func (p *StaticProvider) Err() error {
	return p.err
}
