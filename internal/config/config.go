// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for parley.
//
// Configuration lives in a single TOML file with sensible defaults,
// environment variable overrides, and value clamping:
//
//   - ~/.parley/config.toml
//   - Built-in defaults
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete parley configuration.
type Config struct {
	Version string `toml:"version"`

	// Typing animation timing
	Typing TypingConfig `toml:"typing"`

	// UI configuration
	UI UIConfig `toml:"ui"`
}

// TypingConfig holds the timing parameters for the typing effect.
// All values are in milliseconds.
type TypingConfig struct {
	// RevealIntervalMs is the delay between character reveals.
	// Default 50 (20 characters per second). Clamped to 10..500.
	RevealIntervalMs int `toml:"reveal_interval_ms"`

	// ThinkingDelayMinMs and ThinkingDelayMaxMs bound the uniform-random
	// thinking pause before a reply. Defaults 1000 and 2000.
	ThinkingDelayMinMs int `toml:"thinking_delay_min_ms"`
	ThinkingDelayMaxMs int `toml:"thinking_delay_max_ms"`

	// PostTypingSettleMs is the pause between the last revealed
	// character and the commit. Default 300. Zero disables the pause.
	PostTypingSettleMs int `toml:"post_typing_settle_ms"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	// Theme selects the color theme: "auto", "dark", or "light".
	Theme string `toml:"theme"`

	// MaxInputLength caps the input bar length in runes. 0 = unlimited.
	MaxInputLength int `toml:"max_input_length"`

	// Markdown enables glamour rendering of assistant replies.
	Markdown bool `toml:"markdown"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Version: "1",
		Typing: TypingConfig{
			RevealIntervalMs:   50,
			ThinkingDelayMinMs: 1000,
			ThinkingDelayMaxMs: 2000,
			PostTypingSettleMs: 300,
		},
		UI: UIConfig{
			Theme:          "auto",
			MaxInputLength: 2000,
			Markdown:       true,
		},
	}
}

// =============================================================================
// DURATION ACCESSORS
// =============================================================================

// RevealInterval returns the reveal interval as a duration.
func (t TypingConfig) RevealInterval() time.Duration {
	return time.Duration(t.RevealIntervalMs) * time.Millisecond
}

// ThinkingDelayMin returns the minimum thinking delay as a duration.
func (t TypingConfig) ThinkingDelayMin() time.Duration {
	return time.Duration(t.ThinkingDelayMinMs) * time.Millisecond
}

// ThinkingDelayMax returns the maximum thinking delay as a duration.
func (t TypingConfig) ThinkingDelayMax() time.Duration {
	return time.Duration(t.ThinkingDelayMaxMs) * time.Millisecond
}

// PostTypingSettle returns the settle pause as a duration.
func (t TypingConfig) PostTypingSettle() time.Duration {
	return time.Duration(t.PostTypingSettleMs) * time.Millisecond
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the parley configuration directory (~/.parley).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".parley"), nil
}

// EnsureConfigDir creates the configuration directory if missing.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0700)
}

// ConfigPath returns the path of the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOADING AND SAVING
// =============================================================================

// Load reads the config file, applies environment overrides, and clamps
// values into their valid ranges. Missing files are not an error; the
// defaults are returned.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from the given TOML file path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.Clamp()
	return cfg, nil
}

// Save writes the configuration as TOML with owner-only permissions.
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the configuration to the given path.
func SaveTo(cfg *Config, path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies PARLEY_* environment variables on top of the
// loaded values.
func (c *Config) ApplyEnvOverrides() {
	if v, ok := envInt("PARLEY_REVEAL_INTERVAL_MS"); ok {
		c.Typing.RevealIntervalMs = v
	}
	if v, ok := envInt("PARLEY_THINKING_DELAY_MIN_MS"); ok {
		c.Typing.ThinkingDelayMinMs = v
	}
	if v, ok := envInt("PARLEY_THINKING_DELAY_MAX_MS"); ok {
		c.Typing.ThinkingDelayMaxMs = v
	}
	if v, ok := envInt("PARLEY_POST_TYPING_SETTLE_MS"); ok {
		c.Typing.PostTypingSettleMs = v
	}
	if theme := os.Getenv("PARLEY_THEME"); theme != "" {
		c.UI.Theme = theme
	}
}

// envInt reads an integer environment variable.
func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

// =============================================================================
// VALIDATION
// =============================================================================

// Clamp forces all values into their valid ranges. Out-of-range values
// are clamped rather than rejected so a hand-edited config never
// prevents startup.
func (c *Config) Clamp() {
	c.Typing.RevealIntervalMs = clampInt(c.Typing.RevealIntervalMs, 10, 500)
	c.Typing.ThinkingDelayMinMs = clampInt(c.Typing.ThinkingDelayMinMs, 0, 10000)
	c.Typing.ThinkingDelayMaxMs = clampInt(c.Typing.ThinkingDelayMaxMs, 0, 10000)
	if c.Typing.ThinkingDelayMaxMs < c.Typing.ThinkingDelayMinMs {
		c.Typing.ThinkingDelayMaxMs = c.Typing.ThinkingDelayMinMs
	}
	c.Typing.PostTypingSettleMs = clampInt(c.Typing.PostTypingSettleMs, 0, 5000)

	switch c.UI.Theme {
	case "auto", "dark", "light":
	default:
		c.UI.Theme = "auto"
	}
	if c.UI.MaxInputLength < 0 {
		c.UI.MaxInputLength = 0
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// =============================================================================
// GLOBAL ACCESS
// =============================================================================

var (
	globalMu     sync.RWMutex
	globalConfig *Config
)

// Global returns the global configuration, loading it on first access.
func Global() *Config {
	globalMu.RLock()
	if globalConfig != nil {
		defer globalMu.RUnlock()
		return globalConfig
	}
	globalMu.RUnlock()

	cfg, err := Load()
	if err != nil {
		cfg = Default()
	}
	SetGlobal(cfg)
	return cfg
}

// SetGlobal replaces the global configuration.
func SetGlobal(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}
