// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// EnvPrefix is the prefix of environment variable overrides.
	EnvPrefix = "VIEWLINK_"

	// DefaultConfigDir holds base.yaml and the profile files.
	DefaultConfigDir = "configs"

	// DefaultSettingsFile is the shared settings file holding the view link configuration.
	DefaultSettingsFile = ".janiscommercerc.json"

	// DefaultSettingsKey is the key of the view link configuration in the settings file.
	DefaultSettingsKey = "view-link"

	// DefaultStageVariable is the environment variable naming the current stage.
	DefaultStageVariable = "JANIS_ENV"

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Links     LinksConfig     `koanf:"links"     validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// LinksConfig tells the linker where its collaborators read from.
type LinksConfig struct {
	SettingsFile  string `koanf:"settings_file"  validate:"required"`
	SettingsKey   string `koanf:"settings_key"   validate:"required"`
	StageVariable string `koanf:"stage_variable" validate:"required"`
}

// TelemetryConfig contains tracing and metrics settings.
type TelemetryConfig struct {
	Tracing     bool   `koanf:"tracing"`
	Metrics     bool   `koanf:"metrics"`
	MetricsFile string `koanf:"metrics_file" validate:"required_if=Metrics true"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "viewlink",
		"app.version":     "dev",
		"app.environment": "local",

		"log.level":            "info",
		"log.format":           "pretty",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/viewlink.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"links.settings_file":  DefaultSettingsFile,
		"links.settings_key":   DefaultSettingsKey,
		"links.stage_variable": DefaultStageVariable,

		"telemetry.tracing":      false,
		"telemetry.metrics":      false,
		"telemetry.metrics_file": "viewlink.prom",
	}
}

// Load loads configuration from DefaultConfigDir.
func Load(profile string) (*Config, error) {
	return LoadFrom(DefaultConfigDir, profile)
}

// LoadFrom loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (VIEWLINK_ prefix, "__" between levels)
//  2. Profile config file ({dir}/{profile}.yaml)
//  3. Base config file ({dir}/base.yaml)
//  4. Default values
func LoadFrom(dir, profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, filepath.Join(dir, "base.yaml"))
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		err := loadFileIfExists(k, filepath.Join(dir, profile+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables. Keys use "_" inside names, so levels are split on "__".
	err = k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps VIEWLINK_LINKS__STAGE_VARIABLE to links.stage_variable.
func envKey(s string) string {
	return strings.ReplaceAll(
		strings.ToLower(strings.TrimPrefix(s, EnvPrefix)),
		"__",
		".",
	)
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
