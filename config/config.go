// Package config loads runtime settings from .env files and FASTSTRING_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix.
const Prefix = "FASTSTRING"

// Config holds settings shared by every command.
type Config struct {
	LogLevel  string `envconfig:"LOG_LEVEL" default:"warn"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
	// MaxCapacity caps every buffer allocation in bytes; 0 means unlimited.
	MaxCapacity int `envconfig:"MAX_CAPACITY" default:"0"`
	// NoColor also honours the unprefixed NO_COLOR convention.
	NoColor Presence `envconfig:"NO_COLOR"`
}

// Presence is a switch that is on whenever its variable holds any
// non-empty value, as NO_COLOR requires.
type Presence bool

// Decode implements envconfig.Decoder.
func (p *Presence) Decode(value string) error {
	*p = value != ""
	return nil
}

// Load reads the given .env files, skipping ones that do not exist, and
// then processes the environment. Variables already set in the
// environment win over .env values.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("processing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports settings that cannot be used.
func (c Config) Validate() error {
	if c.MaxCapacity < 0 {
		return fmt.Errorf("max capacity must not be negative, got %d", c.MaxCapacity)
	}
	return nil
}
