// Package config loads cmd/ark's optional .arkrc.yaml project file.
// Grounded on the teacher's CLI config-file convention, switched from its
// TOML-ish settings file to YAML via goccy/go-yaml, since Ark's own wire
// format is already JSON and a second JSON dialect for project settings
// reads worse than a YAML one alongside it.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is cmd/ark's project-level settings, loaded from .arkrc.yaml in
// the working directory (or a path given via --config).
type Config struct {
	MaxCallDepth int  `yaml:"maxCallDepth"`
	PrettyOutput bool `yaml:"prettyOutput"`
}

// Default returns the configuration used when no .arkrc.yaml is present.
func Default() *Config {
	return &Config{MaxCallDepth: 4096, PrettyOutput: false}
}

// Load reads and parses path, falling back to Default() if the file does
// not exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
