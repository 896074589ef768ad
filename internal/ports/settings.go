// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Both view link collaborators are synchronous and side-effect free, so unlike
// most ports they take no context.
package ports

// SettingsProvider looks up raw settings by key.
//
// The returned value is whatever the settings source holds under key, usually
// a map[string]any decoded from JSON or YAML. A nil return means "not found".
// Callers validate the shape; providers must not.
//
// Example implementation:
//
//	type staticSettings map[string]any
//
//	func (s staticSettings) Get(key string) any { return s[key] }
type SettingsProvider interface {
	Get(key string) any
}

// StageSource reports the current deployment stage (local, beta, qa, prod...).
// The boolean is false when the stage is not defined at all; an empty but
// defined stage returns ("", true).
type StageSource interface {
	Stage() (string, bool)
}

// SettingsProviderFunc adapts a plain function to SettingsProvider.
type SettingsProviderFunc func(key string) any

// Get calls f(key).
func (f SettingsProviderFunc) Get(key string) any {
	return f(key)
}

// StageSourceFunc adapts a plain function to StageSource.
type StageSourceFunc func() (string, bool)

// Stage calls f().
func (f StageSourceFunc) Stage() (string, bool) {
	return f()
}
