package app

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/spf13/cast"

	"github.com/jsamuelsen/viewlink/internal/domain"
	"github.com/jsamuelsen/viewlink/internal/platform/telemetry"
	"github.com/jsamuelsen/viewlink/internal/ports"
)

// DefaultSettingsKey is the settings key holding the view link configuration.
const DefaultSettingsKey = "view-link"

const hostsField = "hosts"

// Configuration messages.
const (
	msgConfigNotFound = "Invalid config: Not found."
	msgInvalidConfig  = "Invalid config: Should be an object."
	msgInvalidHosts   = "Invalid hosts in config: Should exist and must be an object."
	msgNoStageName    = "Unknown stage name"
)

// CacheConfig holds optional configuration for the cache.
type CacheConfig struct {
	// SettingsKey overrides DefaultSettingsKey.
	SettingsKey string
	Logger      *slog.Logger
	Metrics     *telemetry.Metrics
}

// ConfigCache lazily loads and memoizes the view link configuration and the
// host of the current stage. A failed resolution leaves nothing cached.
type ConfigCache struct {
	settings ports.SettingsProvider
	stages   ports.StageSource
	key      string
	logger   *slog.Logger
	metrics  *telemetry.Metrics

	mu     sync.Mutex
	config *domain.Configuration
	stage  string
	host   string
	ready  bool
}

// NewConfigCache creates an empty cache reading from settings and stages.
func NewConfigCache(settings ports.SettingsProvider, stages ports.StageSource, cfg *CacheConfig) *ConfigCache {
	c := &ConfigCache{
		settings: settings,
		stages:   stages,
		key:      DefaultSettingsKey,
		logger:   slog.Default(),
	}

	if cfg != nil {
		if cfg.SettingsKey != "" {
			c.key = cfg.SettingsKey
		}

		if cfg.Logger != nil {
			c.logger = cfg.Logger
		}

		c.metrics = cfg.Metrics
	}

	c.logger = c.logger.With(slog.String("component", "app.ConfigCache"))

	return c
}

// Config returns the cached configuration, loading it on first access.
func (c *ConfigCache) Config(ctx context.Context) (*domain.Configuration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadConfig(ctx)
}

// Host returns the host of the current stage, resolving it on first access.
// The stage is read before the configuration is loaded.
func (c *ConfigCache) Host(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ready {
		return c.host, nil
	}

	stage, ok := c.readStage()
	if !ok {
		return "", domain.NewError(domain.CodeNoStageName, msgNoStageName)
	}

	config, err := c.loadConfig(ctx)
	if err != nil {
		return "", err
	}

	host, ok := config.Host(stage)
	if !ok {
		return "", domain.NewError(domain.CodeHostNotFound,
			fmt.Sprintf("Host not found for stage '%s'. Check config file.", stage))
	}

	c.stage = stage
	c.host = host
	c.ready = true

	c.logger.DebugContext(ctx, "host resolved", slog.String("stage", stage), slog.String("host", host))

	return host, nil
}

// Stage returns the stage the cached host was resolved for.
func (c *ConfigCache) Stage() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.stage, c.ready
}

// Reset drops the cached configuration and host. Intended for tests.
func (c *ConfigCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.config = nil
	c.stage = ""
	c.host = ""
	c.ready = false
}

func (c *ConfigCache) readStage() (string, bool) {
	if c.stages == nil {
		return "", false
	}

	return c.stages.Stage()
}

// loadConfig must be called with c.mu held.
func (c *ConfigCache) loadConfig(ctx context.Context) (*domain.Configuration, error) {
	if c.config != nil {
		return c.config, nil
	}

	var raw any
	if c.settings != nil {
		raw = c.settings.Get(c.key)
	}

	config, err := ParseConfiguration(raw)
	if err != nil {
		c.metrics.ConfigLoaded(false)

		return nil, err
	}

	c.config = config
	c.metrics.ConfigLoaded(true)

	c.logger.DebugContext(ctx, "configuration loaded",
		slog.String("key", c.key),
		slog.Int("hosts", len(config.Hosts)),
	)

	return config, nil
}

// ParseConfiguration validates a raw settings value and decodes it.
func ParseConfiguration(raw any) (*domain.Configuration, error) {
	switch cfg := raw.(type) {
	case nil:
		return nil, domain.NewError(domain.CodeConfigNotFound, msgConfigNotFound)
	case *domain.Configuration:
		if cfg == nil {
			return nil, domain.NewError(domain.CodeConfigNotFound, msgConfigNotFound)
		}

		if cfg.Hosts == nil {
			return nil, domain.NewError(domain.CodeInvalidHostsInConfig, msgInvalidHosts)
		}

		return cfg, nil
	case domain.Configuration:
		return ParseConfiguration(&cfg)
	}

	root, ok := stringMap(raw)
	if !ok {
		if isNilValue(raw) {
			return nil, domain.NewError(domain.CodeConfigNotFound, msgConfigNotFound)
		}

		return nil, domain.NewError(domain.CodeInvalidConfig, msgInvalidConfig)
	}

	hostsRaw, ok := root[hostsField]
	if !ok || hostsRaw == nil {
		return nil, domain.NewError(domain.CodeInvalidHostsInConfig, msgInvalidHosts)
	}

	hostsMap, ok := stringMap(hostsRaw)
	if !ok {
		return nil, domain.NewError(domain.CodeInvalidHostsInConfig, msgInvalidHosts)
	}

	hosts := make(map[string]string, len(hostsMap))

	for stage, value := range hostsMap {
		if value == nil {
			continue
		}

		host, err := cast.ToStringE(value)
		if err != nil {
			return nil, domain.WrapError(domain.CodeInvalidHostsInConfig,
				fmt.Errorf("%s Host for stage '%s' is not a string: %w", msgInvalidHosts, stage, err))
		}

		hosts[stage] = host
	}

	return &domain.Configuration{Hosts: hosts}, nil
}

// stringMap returns v as a map[string]any when v is a non-nil map with string keys.
func stringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, m != nil
	case map[string]string:
		if m == nil {
			return nil, false
		}

		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}

		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String || rv.IsNil() {
		return nil, false
	}

	out := make(map[string]any, rv.Len())

	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}

	return out, true
}

func isNilValue(v any) bool {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Map, reflect.Pointer, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
