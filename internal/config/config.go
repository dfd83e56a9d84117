// Package config loads specgate settings from the environment.
//
// Every setting has a matching command-line flag; flags win over the
// environment, the environment wins over the defaults below.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Output formats accepted by Format.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds settings shared by every command.
type Config struct {
	// Root is the project directory. Empty means: search upwards from the
	// working directory for the verify/ directory.
	Root string `env:"SPECGATE_ROOT"`

	// Timeout bounds each runtime command.
	Timeout time.Duration `env:"SPECGATE_TIMEOUT" envDefault:"120s"`

	// Format is "text" or "json".
	Format string `env:"SPECGATE_FORMAT" envDefault:"text"`

	Verbose bool `env:"SPECGATE_VERBOSE"`
}

// FromEnv parses the environment into a Config and validates it.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that the environment parser cannot.
func (c *Config) Validate() error {
	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("config error: invalid format %q: must be one of %s, %s", c.Format, FormatText, FormatJSON)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config error: timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
