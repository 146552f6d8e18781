// Package config loads the optional TOML configuration file. Flags override
// config values, config values override defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the top-level application configuration.
type Config struct {
	Generator GeneratorConfig `toml:"generator"`
	Registry  RegistryConfig  `toml:"registry"`
}

// GeneratorConfig holds defaults for the generation flow.
type GeneratorConfig struct {
	Model   string `toml:"model"`
	BaseURL string `toml:"base_url"`
	Format  string `toml:"format"`
}

// RegistryConfig holds settings for the remote model registry.
type RegistryConfig struct {
	BaseURL string `toml:"base_url"`
}

// DefaultConfig returns a Config populated with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Generator: GeneratorConfig{
			Model:   "codellama",
			BaseURL: "http://localhost:11434",
			Format:  "json",
		},
		Registry: RegistryConfig{
			BaseURL: "https://registry.ollama.ai",
		},
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "testgen", "config.toml"), nil
}

// Load reads the config file at path, falling back to the default location
// when path is empty. A missing file yields the defaults; a malformed file is
// an error.
func Load(path string) (*Config, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = defaultPath
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}
