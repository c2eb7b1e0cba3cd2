// Package config handles ambient CLI configuration loading from files,
// defaults, and environment variables. It does not touch PlanInput;
// that comes from the loader package and keeps its own JSON schema.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds ambient settings for the CLI: where output goes and how
// it's rendered.
type Config struct {
	Output OutputConfig `toml:"output"`
}

// OutputConfig controls how the rendered plan is written.
type OutputConfig struct {
	Color   bool   `toml:"color"`
	Verbose bool   `toml:"verbose"`
	Format  string `toml:"format"` // "table" or "json"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Color:   true,
			Verbose: false,
			Format:  "table",
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "examplan", "config.toml")
}

// Load loads configuration from the default path, merging with
// defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom starts with defaults, overlays file config if the file
// exists, then applies environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides; these take
// precedence over the file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("EXAMPLAN_COLOR"); v != "" {
		cfg.Output.Color = v != "false" && v != "0"
	}
	if v := os.Getenv("EXAMPLAN_VERBOSE"); v != "" {
		cfg.Output.Verbose = v != "false" && v != "0"
	}
	if v := os.Getenv("EXAMPLAN_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
}

// Validate checks the configuration is usable.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case "table", "json":
	default:
		return errors.New("output.format must be \"table\" or \"json\"")
	}
	return nil
}
