package sources

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jobsift/jobsift/app/normalize"
)

// Loader reads per-source overlay files from a directory.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// LoadAll loads every YAML overlay in the directory, keyed by platform.
// A missing directory is not an error: sources without overlays run on the
// canonical rules.
func (l *Loader) LoadAll() (Set, error) {
	set := make(Set)

	if _, err := os.Stat(l.dir); os.IsNotExist(err) {
		return set, nil
	}

	files, err := filepath.Glob(filepath.Join(l.dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}
	ymlFiles, err := filepath.Glob(filepath.Join(l.dir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	files = append(files, ymlFiles...)

	for _, file := range files {
		config, err := l.loadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		if err := l.validate(config); err != nil {
			return nil, fmt.Errorf("invalid config %s: %w", file, err)
		}

		set[strings.ToLower(config.Platform)] = config
		slog.Debug("Loaded source overlay", "file", file, "platform", config.Platform)
	}

	return set, nil
}

func (l *Loader) loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if config.Platform == "" {
		config.Platform = config.Name
	}

	return &config, nil
}

func (l *Loader) validate(config *Config) error {
	if config.Platform == "" {
		return fmt.Errorf("platform is required")
	}

	switch config.Defaults.RemoteOption {
	case "", normalize.RemoteOptionOnSite, normalize.RemoteOptionNotSpecified:
	default:
		return fmt.Errorf("invalid remote_option default: %s", config.Defaults.RemoteOption)
	}

	return nil
}

// Set maps lowercase platform names to their overlay.
type Set map[string]*Config

// RulesFor resolves the normalization rules for a platform. Platforms
// without an overlay get the canonical zero value.
func (s Set) RulesFor(platform string) normalize.Rules {
	config, ok := s[strings.ToLower(strings.TrimSpace(platform))]
	if !ok {
		return normalize.Rules{}
	}
	return normalize.Rules{
		RemoteFallback:     config.Defaults.RemoteOption,
		ExtraEntryKeywords: config.Rules.ExtraEntryKeywords,
	}
}
