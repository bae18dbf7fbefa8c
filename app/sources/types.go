package sources

// Per-source rule overlays. Classification rules drift slightly between job
// boards (one board's entry-level vocabulary includes "associate", another
// has no reliable on-site default); the drift lives here as data instead of
// being baked into the classifiers.

type Config struct {
	// Name is derived from the filename (without extension).
	Name string

	Platform string          `yaml:"platform"`
	Keyword  string          `yaml:"keyword"`
	Enabled  *bool           `yaml:"enabled"`
	Defaults ConfigDefaults  `yaml:"defaults"`
	Rules    ConfigSeniority `yaml:"seniority"`
}

type ConfigDefaults struct {
	// RemoteOption is the fallback when no work-arrangement signal is found.
	// Empty means the canonical On-site default.
	RemoteOption string `yaml:"remote_option"`
}

type ConfigSeniority struct {
	ExtraEntryKeywords []string `yaml:"extra_entry_keywords"`
}

// IsEnabled treats a missing enabled key as true.
func (c *Config) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}
