// Package settings provides the collaborators the view link cache reads from:
// settings providers backed by files or in-memory maps, and the stage reader.
package settings

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/jsamuelsen/viewlink/internal/ports"
)

// ErrUnsupportedFormat is returned for settings files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported settings format")

// FileProvider reads settings from a JSON or YAML file.
// The file is read on every Get; callers memoize.
type FileProvider struct {
	path   string
	logger *slog.Logger
}

var _ ports.SettingsProvider = (*FileProvider)(nil)

// NewFileProvider creates a provider for the file at path.
func NewFileProvider(path string, logger *slog.Logger) *FileProvider {
	if logger == nil {
		logger = slog.Default()
	}

	return &FileProvider{
		path:   path,
		logger: logger.With(slog.String("component", "settings.FileProvider"), slog.String("path", path)),
	}
}

// Path returns the settings file path.
func (p *FileProvider) Path() string {
	return p.path
}

// Get returns the raw value stored under key, or nil when the file is
// missing, unreadable or has no such key.
func (p *FileProvider) Get(key string) any {
	k, err := p.Load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			p.logger.Debug("settings file not found")
		} else {
			p.logger.Warn("settings file could not be loaded", slog.String("error", err.Error()))
		}

		return nil
	}

	return k.Get(key)
}

// Load parses the whole file.
func (p *FileProvider) Load() (*koanf.Koanf, error) {
	parser, err := parserFor(p.path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(p.path); err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(p.path), parser); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", p.path, err)
	}

	return k, nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	case ".json", "":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
