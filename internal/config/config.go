// Package config handles imgattr's optional user configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/imgattr/config.toml by default:
//
//	# Format used when neither --format nor the output extension chooses one
//	format = "json"
//
//	# Set to false to never colourise output
//	color = true
//
//	# Always log at debug level
//	debug = false
//
// The IMGATTR_FORMAT and NO_COLOR environment variables take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"go.followtheprocess.codes/imgattr/internal/format"
)

// Environment variables that override the file.
const (
	EnvFormat  = "IMGATTR_FORMAT"
	EnvNoColor = "NO_COLOR"
)

// Config is imgattr's user configuration.
type Config struct {
	// Color enables coloured output, nil means enabled.
	Color *bool `toml:"color"`

	// Format is the name of the default export format, empty means none.
	Format string `toml:"format"`

	// Debug enables debug logging.
	Debug bool `toml:"debug"`
}

// Path returns the default location of the config file.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not locate user config directory: %w", err)
	}

	return filepath.Join(dir, "imgattr", "config.toml"), nil
}

// Load reads the config file at path, applies the environment on top and validates
// the result.
//
// A missing file is only an error if required is true, otherwise the defaults are used.
func Load(path string, required bool) (Config, error) {
	var cfg Config

	meta, err := toml.DecodeFile(path, &cfg)

	switch {
	case errors.Is(err, fs.ErrNotExist) && !required:
		cfg = Config{}
	case err != nil:
		return Config{}, fmt.Errorf("could not read config file %s: %w", path, err)
	default:
		if undecoded := meta.Undecoded(); len(undecoded) != 0 {
			return Config{}, fmt.Errorf("config file %s: unknown key %q", path, undecoded[0].String())
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	return cfg, nil
}

// Defaults returns the config used when there is no file at all, the environment
// applied on top of the zero config.
func Defaults() (Config, error) {
	var cfg Config

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}

	return cfg, nil
}

// Validate reports whether the config is valid, returning a non-nil error if it's not.
func (c Config) Validate() error {
	if c.Format == "" {
		return nil
	}

	if _, err := format.ByName(c.Format); err != nil {
		return fmt.Errorf("invalid default format: %w", err)
	}

	return nil
}

// ColorEnabled reports whether coloured output is allowed.
func (c Config) ColorEnabled() bool {
	if c.Color == nil {
		return true
	}

	return *c.Color
}

// applyEnv overrides the config with any set environment variables.
func (c *Config) applyEnv() {
	if name, ok := os.LookupEnv(EnvFormat); ok && name != "" {
		c.Format = name
	}

	// https://no-color.org, any non-empty value disables colour
	if value, ok := os.LookupEnv(EnvNoColor); ok && value != "" {
		disabled := false
		c.Color = &disabled
	}
}
