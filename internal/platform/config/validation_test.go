package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validConfig returns a fully valid configuration for testing.
func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:        "viewlink",
			Version:     "1.0.0",
			Environment: "local",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Links: LinksConfig{
			SettingsFile:  DefaultSettingsFile,
			SettingsKey:   DefaultSettingsKey,
			StageVariable: DefaultStageVariable,
		},
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestConfig_Validate_AppConfig(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Name = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.name")
		assert.Contains(t, err.Error(), "required")
	})

	t.Run("missing version", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Version = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.version")
	})

	t.Run("invalid environment", func(t *testing.T) {
		cfg := validConfig()
		cfg.App.Environment = "invalid"

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "app.environment")
		assert.Contains(t, err.Error(), "must be one of")
	})
}

func TestConfig_Validate_ValidEnvironments(t *testing.T) {
	validEnvs := []string{"local", "dev", "qa", "prod", "test"}

	for _, env := range validEnvs {
		t.Run(env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = env

			err := cfg.Validate()
			assert.NoError(t, err)
		})
	}
}

func TestConfig_Validate_LogConfig(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr string
	}{
		{name: "trace level", level: "trace", format: "json"},
		{name: "pretty format", level: "info", format: "pretty"},
		{name: "text format", level: "debug", format: "text"},
		{name: "invalid level", level: "verbose", format: "json", wantErr: "log.level must be one of"},
		{name: "invalid format", level: "info", format: "xml", wantErr: "log.format must be one of"},
		{name: "missing level", level: "", format: "json", wantErr: "log.level is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Log.Level = tt.level
			cfg.Log.Format = tt.format

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_Validate_LogFileConfig(t *testing.T) {
	t.Run("enabled without path", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.File.Enabled = true

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.file.path is required when Enabled true")
	})

	t.Run("size out of range", func(t *testing.T) {
		cfg := validConfig()
		cfg.Log.File.MaxSizeMB = 2048

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "log.file.max_size must be at most 1024")
	})
}

func TestConfig_Validate_LinksConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LinksConfig)
		field  string
	}{
		{name: "settings file", mutate: func(l *LinksConfig) { l.SettingsFile = "" }, field: "links.settings_file"},
		{name: "settings key", mutate: func(l *LinksConfig) { l.SettingsKey = "" }, field: "links.settings_key"},
		{name: "stage variable", mutate: func(l *LinksConfig) { l.StageVariable = "" }, field: "links.stage_variable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg.Links)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field+" is required")
		})
	}
}

func TestConfig_Validate_TelemetryConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Telemetry.Metrics = true

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telemetry.metrics_file")

	cfg.Telemetry.MetricsFile = "viewlink.prom"
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate_MultipleErrors(t *testing.T) {
	cfg := &Config{
		App: AppConfig{
			Name:        "",
			Version:     "",
			Environment: "invalid",
		},
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "config validation failed")
	assert.Contains(t, errStr, "app.name")
	assert.Contains(t, errStr, "app.version")
	assert.Contains(t, errStr, "app.environment")
}

func TestFormatFieldPath(t *testing.T) {
	tests := []struct {
		namespace string
		expected  string
	}{
		{"Config.app.name", "app.name"},
		{"Config.links.settings_file", "links.settings_file"},
		{"Config.log.file.path", "log.file.path"},
		{"Config.Telemetry", "telemetry"},
		{"Config", "config"},
	}

	for _, tt := range tests {
		t.Run(tt.namespace, func(t *testing.T) {
			result := formatFieldPath(tt.namespace)
			assert.Equal(t, tt.expected, result)
		})
	}
}
