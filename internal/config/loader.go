package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultExclude lists directory names that are never walked during collection.
var DefaultExclude = []string{".git", "__pycache__", ".venv", "venv", ".tox", "node_modules", ".mypy_cache"}

// Load reads and parses a configuration from the given YAML file path.
// After parsing, it fills in defaults for anything left unset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault searches for a config in standard locations and loads the first
// one found. Search order: ./typegate.yaml, ~/.typegate/config.yaml.
// When none exists the built-in defaults are returned.
func LoadDefault() (*Config, error) {
	candidates := []string{"typegate.yaml"}

	home, err := os.UserHomeDir()
	if err == nil {
		candidates = append(candidates, filepath.Join(home, ".typegate", "config.yaml"))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}

	return Default(), nil
}

// Default returns a config with every default applied.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	c := &cfg.Checker
	if c.Preset == "" {
		c.Preset = "mypy"
	}
	if c.Command == "" {
		c.Command = c.Preset
		if c.Preset == "generic" {
			c.Command = ""
		}
	}

	if len(cfg.Collect.Extensions) == 0 {
		cfg.Collect.Extensions = []string{".py"}
	}
	if cfg.Report.Format == "" {
		cfg.Report.Format = "text"
	}
}
