// Package config loads the optional trimshare configuration file.
// Built-in defaults apply when no file exists; command-line flags beat
// both.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// History configures trim-history recording.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Config holds the user-tunable defaults.
type Config struct {
	// Quality is the default vp9 CRF (0-63, lower is better).
	Quality int `toml:"quality"`

	// Height is the default output vertical resolution; 0 keeps the
	// source resolution.
	Height int `toml:"height"`

	History History `toml:"history"`
}

const (
	defaultQuality = 50

	minQuality = 0
	maxQuality = 63
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Quality: defaultQuality,
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath(),
		},
	}
}

// DefaultPath returns the standard config file location,
// <user config dir>/trimshare/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(dir, "trimshare", "config.toml"), nil
}

func defaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "trimshare", "history.db")
}

// Load reads the config file at path, or the standard location when
// path is empty. A missing file at the standard location yields the
// defaults; a missing explicitly-named file is an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return Config{}, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Quality < minQuality || c.Quality > maxQuality {
		return fmt.Errorf("quality %d out of range %d-%d", c.Quality, minQuality, maxQuality)
	}
	if c.Height < 0 {
		return fmt.Errorf("height %d is negative", c.Height)
	}
	if c.History.Enabled && c.History.Path == "" {
		return errors.New("history is enabled but has no path")
	}
	return nil
}
