package settings

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonSettings = `{
  "view-link": {
    "hosts": {
      "local": "http://localhost:8080",
      "qa": "https://app.janisqa.in"
    }
  },
  "other-package": {"enabled": true}
}`

const yamlSettings = `
view-link:
  hosts:
    beta: https://app.janisdev.in
`

func writeSettings(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestFileProvider_JSON(t *testing.T) {
	path := writeSettings(t, ".janiscommercerc.json", jsonSettings)
	provider := NewFileProvider(path, nil)

	assert.Equal(t, path, provider.Path())
	assert.Equal(t, map[string]any{
		"hosts": map[string]any{
			"local": "http://localhost:8080",
			"qa":    "https://app.janisqa.in",
		},
	}, provider.Get("view-link"))
	assert.Nil(t, provider.Get("missing"))
}

func TestFileProvider_YAML(t *testing.T) {
	path := writeSettings(t, "settings.yaml", yamlSettings)
	provider := NewFileProvider(path, nil)

	assert.Equal(t, map[string]any{
		"hosts": map[string]any{"beta": "https://app.janisdev.in"},
	}, provider.Get("view-link"))
}

func TestFileProvider_NonObjectValues(t *testing.T) {
	path := writeSettings(t, "settings.json", `{"view-link": [1, 2], "empty": {}, "nothing": null}`)
	provider := NewFileProvider(path, nil)

	assert.Equal(t, []any{float64(1), float64(2)}, provider.Get("view-link"))
	assert.Equal(t, map[string]any{}, provider.Get("empty"))
	assert.Nil(t, provider.Get("nothing"))
}

func TestFileProvider_MissingFile(t *testing.T) {
	var logs bytes.Buffer
	provider := NewFileProvider(filepath.Join(t.TempDir(), "missing.json"), testLogger(&logs))

	assert.Nil(t, provider.Get("view-link"))
	assert.Contains(t, logs.String(), "settings file not found")
}

func TestFileProvider_InvalidFile(t *testing.T) {
	var logs bytes.Buffer
	path := writeSettings(t, "settings.json", `{"view-link": `)
	provider := NewFileProvider(path, testLogger(&logs))

	assert.Nil(t, provider.Get("view-link"))
	assert.Contains(t, logs.String(), "settings file could not be loaded")
}

func TestFileProvider_UnsupportedFormat(t *testing.T) {
	path := writeSettings(t, "settings.toml", `view-link = 1`)

	_, err := NewFileProvider(path, nil).Load()

	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestStaticProvider(t *testing.T) {
	provider := NewStaticProvider(map[string]any{
		"view-link": map[string]any{
			"hosts": map[string]any{"local": "http://localhost:8080"},
		},
		"number": 42,
	})

	assert.Equal(t, map[string]any{
		"hosts": map[string]any{"local": "http://localhost:8080"},
	}, provider.Get("view-link"))
	assert.Equal(t, "http://localhost:8080", provider.Get("view-link.hosts.local"))
	assert.Equal(t, 42, provider.Get("number"))
	assert.Nil(t, provider.Get("missing"))
}

func TestStaticProvider_Nil(t *testing.T) {
	provider := NewStaticProvider(nil)

	require.NoError(t, provider.Err())
	assert.Nil(t, provider.Get("view-link"))
}

func TestStaticProvider_Empty(t *testing.T) {
	provider := NewStaticProvider(map[string]any{})

	require.NoError(t, provider.Err())
	assert.Nil(t, provider.Get("view-link"))
}

func TestEnvStage(t *testing.T) {
	t.Setenv("VIEWLINK_TEST_STAGE", "qa")

	stage, ok := NewEnvStage("VIEWLINK_TEST_STAGE").Stage()
	assert.True(t, ok)
	assert.Equal(t, "qa", stage)

	_, ok = NewEnvStage("VIEWLINK_TEST_STAGE_UNSET").Stage()
	assert.False(t, ok)

	t.Setenv("VIEWLINK_TEST_STAGE", "")

	stage, ok = NewEnvStage("VIEWLINK_TEST_STAGE").Stage()
	assert.True(t, ok)
	assert.Empty(t, stage)
}

func TestFixedStage(t *testing.T) {
	stage, ok := FixedStage("prod").Stage()

	assert.True(t, ok)
	assert.Equal(t, "prod", stage)
}
