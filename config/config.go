// Package config holds the framework's configuration surface: input
// timing, color mode, poll cadence, and log rotation settings, loaded
// from a TOML file. Validation rejects out-of-range values with
// descriptive errors; nothing is clamped.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/cellforge/vista/event"
)

// LogConfig holds file logging settings. Logs never go to the
// terminal; the screen belongs to the compositor.
type LogConfig struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

// Config is the full configuration surface
type Config struct {
	EscTimeoutMS   int    `toml:"esc_timeout_ms"`
	DoubleClickMS  int    `toml:"double_click_ms"`
	PollIntervalMS int    `toml:"poll_interval_ms"`
	ColorMode      string `toml:"color_mode"` // "auto", "256", "truecolor"
	MouseEnabled   bool   `toml:"mouse_enabled"`

	Log LogConfig `toml:"log"`
}

// Default returns the stock configuration
func Default() Config {
	return Config{
		EscTimeoutMS:   int(event.DefaultEscTimeout / time.Millisecond),
		DoubleClickMS:  int(event.DefaultDoubleClickWindow / time.Millisecond),
		PollIntervalMS: 50,
		ColorMode:      "auto",
		MouseEnabled:   true,
		Log: LogConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// Load reads and validates a TOML config file. A missing file is not
// an error; defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every field against its documented range
func (c *Config) Validate() error {
	if err := checkRangeMS("esc_timeout_ms", c.EscTimeoutMS,
		event.MinEscTimeout, event.MaxEscTimeout); err != nil {
		return err
	}
	if err := checkRangeMS("double_click_ms", c.DoubleClickMS,
		event.MinDoubleClickWindow, event.MaxDoubleClickWindow); err != nil {
		return err
	}
	if c.PollIntervalMS < 10 || c.PollIntervalMS > 1000 {
		return fmt.Errorf("poll_interval_ms %d out of range [10, 1000]", c.PollIntervalMS)
	}
	switch c.ColorMode {
	case "auto", "256", "truecolor":
	default:
		return fmt.Errorf("color_mode %q: must be auto, 256, or truecolor", c.ColorMode)
	}
	if c.Log.File != "" {
		if c.Log.MaxSizeMB <= 0 {
			return fmt.Errorf("log.max_size_mb %d: must be positive", c.Log.MaxSizeMB)
		}
		if c.Log.MaxBackups < 0 {
			return fmt.Errorf("log.max_backups %d: must not be negative", c.Log.MaxBackups)
		}
		if c.Log.MaxAgeDays < 0 {
			return fmt.Errorf("log.max_age_days %d: must not be negative", c.Log.MaxAgeDays)
		}
	}
	return nil
}

func checkRangeMS(name string, v int, min, max time.Duration) error {
	d := time.Duration(v) * time.Millisecond
	if d < min || d > max {
		return fmt.Errorf("%s %d out of range [%d, %d]",
			name, v, min/time.Millisecond, max/time.Millisecond)
	}
	return nil
}

// EscTimeout returns the timeout as a duration
func (c *Config) EscTimeout() time.Duration {
	return time.Duration(c.EscTimeoutMS) * time.Millisecond
}

// DoubleClickWindow returns the window as a duration
func (c *Config) DoubleClickWindow() time.Duration {
	return time.Duration(c.DoubleClickMS) * time.Millisecond
}

// PollInterval returns the poll cadence as a duration
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}
