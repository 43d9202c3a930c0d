// Package config provides configuration loading and management for slicestack.
// It handles loading configuration from YAML files, applies SLICESTACK_*
// environment overrides and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"slicestack/internal/models"
)

// EnvPrefix is prepended to every environment override
const EnvPrefix = "SLICESTACK_"

// Config represents the application configuration loaded from YAML
type Config struct {
	// Volume assembly parameters
	Volume struct {
		// Policy is "strict" (reject mismatched frames) or "pad" (zero-fill to the largest frame)
		Policy string `yaml:"policy" env:"POLICY"`

		// Suffix is appended to the two-digit frame index
		Suffix string `yaml:"suffix" env:"SUFFIX"`

		// MaxFrames is the largest accepted frame count
		MaxFrames int `yaml:"maxFrames" env:"MAX_FRAMES"`
	} `yaml:"volume" envPrefix:"VOLUME_"`

	// Output parameters
	Output struct {
		// Comment is written into every generated PGM file
		Comment string `yaml:"comment" env:"COMMENT"`

		// PreviewScale is the upscale factor of PNG previews
		PreviewScale int `yaml:"previewScale" env:"PREVIEW_SCALE"`

		// Verbose enables debug logging
		Verbose bool `yaml:"verbose" env:"VERBOSE"`
	} `yaml:"output" envPrefix:"OUTPUT_"`

	// Log parameters
	Log struct {
		// Mode is "development" or "production"
		Mode string `yaml:"mode" env:"MODE"`
	} `yaml:"log" envPrefix:"LOG_"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Volume.Policy = string(models.PolicyStrict)
	cfg.Volume.Suffix = ".pgm"
	cfg.Volume.MaxFrames = 99

	cfg.Output.Comment = "Proyeccion 2D generada"
	cfg.Output.PreviewScale = 4
	cfg.Output.Verbose = false

	cfg.Log.Mode = "development"

	return cfg
}

// LoadConfig loads configuration from a YAML file and then applies
// environment overrides. If the file doesn't exist, the defaults are used.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("error reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("error parsing config file: %w", err)
			}
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and the policy name
func (c *Config) Validate() error {
	if _, err := models.ParsePolicy(c.Volume.Policy); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Volume.MaxFrames < 1 || c.Volume.MaxFrames > 99 {
		return fmt.Errorf("invalid config: maxFrames %d must be between 1 and 99: %w", c.Volume.MaxFrames, models.ErrRange)
	}
	if c.Output.PreviewScale < 1 {
		return fmt.Errorf("invalid config: previewScale %d must be positive: %w", c.Output.PreviewScale, models.ErrRange)
	}
	return nil
}

// DimensionPolicy returns the parsed volume policy
func (c *Config) DimensionPolicy() models.DimensionPolicy {
	p, err := models.ParsePolicy(c.Volume.Policy)
	if err != nil {
		return models.PolicyStrict
	}
	return p
}

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	cfg := DefaultConfig()
	return SaveConfig(cfg, configPath)
}
