// Package config loads operator defaults and runtime settings from
// ~/.chainrig/config.yaml with environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/chainrig/internal/i18n"
	"github.com/ppiankov/chainrig/internal/model"
	"github.com/ppiankov/chainrig/internal/rig"
)

// Config holds every configurable setting.
type Config struct {
	Defaults rig.Params `yaml:"defaults"`
	Locale   string     `yaml:"locale" env:"CHAINRIG_LOCALE"`
	Journal  string     `yaml:"journal" env:"CHAINRIG_JOURNAL"`
	LogLevel string     `yaml:"log_level" env:"CHAINRIG_LOG_LEVEL"`
}

// Dir returns the per-user configuration directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "chainrig")
	}
	return filepath.Join(home, ".chainrig")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Defaults: rig.DefaultParams(),
		Locale:   i18n.BaseLocale,
		Journal:  filepath.Join(Dir(), "journal.jsonl"),
		LogLevel: "info",
	}
}

// LoadConfig loads configuration from a YAML file, then applies environment
// overrides. Empty path falls back to DefaultPath. A missing file yields
// defaults; invalid YAML or values are errors.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Defaults first; YAML overwrites only the fields it sets.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize clamps influences into [0,1] and rejects unknown axes, locales
// and log levels.
func (c *Config) Normalize() error {
	c.Defaults.Influence = rig.Clamp(c.Defaults.Influence)
	c.Defaults.StartInfluence = rig.Clamp(c.Defaults.StartInfluence)
	c.Defaults.EndInfluence = rig.Clamp(c.Defaults.EndInfluence)

	if c.Defaults.TrackAxis == "" {
		c.Defaults.TrackAxis = rig.DefaultTrackAxis
	}
	if !c.Defaults.TrackAxis.Valid() {
		return fmt.Errorf("invalid track_axis %q", c.Defaults.TrackAxis)
	}

	c.Locale = strings.TrimSpace(c.Locale)
	if c.Locale == "" {
		c.Locale = i18n.BaseLocale
	}
	bundle, err := i18n.Default()
	if err != nil {
		return fmt.Errorf("load message catalogs: %w", err)
	}
	if !bundle.HasLocale(c.Locale) {
		return fmt.Errorf("unsupported locale %q (available: %s)", c.Locale, strings.Join(bundle.Locales(), ", "))
	}

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// DefaultConfigYAML returns the default config as commented YAML for init.
func DefaultConfigYAML() string {
	d := rig.DefaultParams()
	return fmt.Sprintf(`# chainrig configuration
# Defaults for the influence dialogs. Influences are clamped to [0, 1].
defaults:
  influence: %.2f
  # One of TRACK_X, TRACK_Y, TRACK_Z, TRACK_NEGATIVE_X, TRACK_NEGATIVE_Y, TRACK_NEGATIVE_Z.
  track_axis: %s
  # Gradient: influence at the highest constrained bone.
  start_influence: %.2f
  # Gradient: influence at the lowest constrained bone.
  end_influence: %.2f

# Report language: en-US or zh-CN.
locale: %s

# Operation journal (hash-chained JSONL). Empty disables journaling.
journal: %s

# trace, debug, info, warn, error
log_level: info
`, d.Influence, d.TrackAxis, d.StartInfluence, d.EndInfluence, i18n.BaseLocale, filepath.Join(Dir(), "journal.jsonl"))
}

// Axis parses an axis flag value, falling back to def when s is empty.
func Axis(s string, def model.TrackAxis) (model.TrackAxis, error) {
	if strings.TrimSpace(s) == "" {
		return def, nil
	}
	return model.ParseTrackAxis(s)
}
