// Package config loads the docgen YAML configuration. A missing config
// file is not an error; defaults apply, then environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all docgen configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Paths to the store, template inputs and generated outputs
	Paths PathsConfig `yaml:"paths"`

	// Generation behavior
	Generation GenerationConfig `yaml:"generation"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// PathsConfig locates the files docgen reads and writes.
type PathsConfig struct {
	Database     string `yaml:"database"`
	Templates    string `yaml:"templates"`
	Output       string `yaml:"output"`
	ResponseBank string `yaml:"response_bank"`
}

// GenerationConfig tunes the resolution pipeline.
type GenerationConfig struct {
	// DerivedSeparator joins concatenated names in derived expressions.
	DerivedSeparator string `yaml:"derived_separator"`
}

// LoggingConfig configures the per-category file logger.
type LoggingConfig struct {
	DebugMode bool   `yaml:"debug_mode"`
	Dir       string `yaml:"dir"`
	Level     string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "docgen",
		Version: "1.0.0",

		Paths: PathsConfig{
			Database:     "data/docgen.db",
			Templates:    "templates",
			Output:       "output",
			ResponseBank: "dynamicpleadingresponses.xlsx",
		},

		Generation: GenerationConfig{
			DerivedSeparator: " ",
		},

		Logging: LoggingConfig{
			DebugMode: false,
			Dir:       "logs",
			Level:     "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file returns the
// defaults; environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies DOCGEN_* environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DOCGEN_DB"); v != "" {
		c.Paths.Database = v
	}
	if v := os.Getenv("DOCGEN_TEMPLATES"); v != "" {
		c.Paths.Templates = v
	}
	if v := os.Getenv("DOCGEN_OUTPUT"); v != "" {
		c.Paths.Output = v
	}
	if v := os.Getenv("DOCGEN_RESPONSE_BANK"); v != "" {
		c.Paths.ResponseBank = v
	}
	if v := os.Getenv("DOCGEN_LOG_DIR"); v != "" {
		c.Logging.Dir = v
	}
	if v := os.Getenv("DOCGEN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DOCGEN_DEBUG"); v == "1" || v == "true" {
		c.Logging.DebugMode = true
	}
}
