// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for parley.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// =============================================================================
// DEFAULTS TESTS
// =============================================================================

func TestDefault_ReferenceTimings(t *testing.T) {
	cfg := Default()

	if cfg.Typing.RevealIntervalMs != 50 {
		t.Errorf("RevealIntervalMs = %d, want 50", cfg.Typing.RevealIntervalMs)
	}
	if cfg.Typing.ThinkingDelayMinMs != 1000 {
		t.Errorf("ThinkingDelayMinMs = %d, want 1000", cfg.Typing.ThinkingDelayMinMs)
	}
	if cfg.Typing.ThinkingDelayMaxMs != 2000 {
		t.Errorf("ThinkingDelayMaxMs = %d, want 2000", cfg.Typing.ThinkingDelayMaxMs)
	}
	if cfg.Typing.PostTypingSettleMs != 300 {
		t.Errorf("PostTypingSettleMs = %d, want 300", cfg.Typing.PostTypingSettleMs)
	}
}

func TestTypingConfig_DurationAccessors(t *testing.T) {
	tc := TypingConfig{
		RevealIntervalMs:   50,
		ThinkingDelayMinMs: 1000,
		ThinkingDelayMaxMs: 2000,
		PostTypingSettleMs: 300,
	}

	if tc.RevealInterval() != 50*time.Millisecond {
		t.Errorf("RevealInterval = %v", tc.RevealInterval())
	}
	if tc.ThinkingDelayMin() != time.Second {
		t.Errorf("ThinkingDelayMin = %v", tc.ThinkingDelayMin())
	}
	if tc.ThinkingDelayMax() != 2*time.Second {
		t.Errorf("ThinkingDelayMax = %v", tc.ThinkingDelayMax())
	}
	if tc.PostTypingSettle() != 300*time.Millisecond {
		t.Errorf("PostTypingSettle = %v", tc.PostTypingSettle())
	}
}

// =============================================================================
// CLAMPING TESTS
// =============================================================================

func TestConfig_Clamp(t *testing.T) {
	tests := []struct {
		name string
		in   TypingConfig
		want TypingConfig
	}{
		{
			name: "valid values unchanged",
			in:   TypingConfig{RevealIntervalMs: 50, ThinkingDelayMinMs: 1000, ThinkingDelayMaxMs: 2000, PostTypingSettleMs: 300},
			want: TypingConfig{RevealIntervalMs: 50, ThinkingDelayMinMs: 1000, ThinkingDelayMaxMs: 2000, PostTypingSettleMs: 300},
		},
		{
			name: "reveal interval clamped up",
			in:   TypingConfig{RevealIntervalMs: 1, ThinkingDelayMinMs: 1000, ThinkingDelayMaxMs: 2000},
			want: TypingConfig{RevealIntervalMs: 10, ThinkingDelayMinMs: 1000, ThinkingDelayMaxMs: 2000},
		},
		{
			name: "reveal interval clamped down",
			in:   TypingConfig{RevealIntervalMs: 5000, ThinkingDelayMinMs: 1000, ThinkingDelayMaxMs: 2000},
			want: TypingConfig{RevealIntervalMs: 500, ThinkingDelayMinMs: 1000, ThinkingDelayMaxMs: 2000},
		},
		{
			name: "inverted thinking range repaired",
			in:   TypingConfig{RevealIntervalMs: 50, ThinkingDelayMinMs: 3000, ThinkingDelayMaxMs: 500},
			want: TypingConfig{RevealIntervalMs: 50, ThinkingDelayMinMs: 3000, ThinkingDelayMaxMs: 3000},
		},
		{
			name: "negative settle clamped to zero",
			in:   TypingConfig{RevealIntervalMs: 50, ThinkingDelayMinMs: 1000, ThinkingDelayMaxMs: 2000, PostTypingSettleMs: -5},
			want: TypingConfig{RevealIntervalMs: 50, ThinkingDelayMinMs: 1000, ThinkingDelayMaxMs: 2000, PostTypingSettleMs: 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.Typing = tc.in
			cfg.Clamp()
			if cfg.Typing != tc.want {
				t.Errorf("Clamp() = %+v, want %+v", cfg.Typing, tc.want)
			}
		})
	}
}

func TestConfig_ClampTheme(t *testing.T) {
	cfg := Default()
	cfg.UI.Theme = "neon"
	cfg.Clamp()

	if cfg.UI.Theme != "auto" {
		t.Errorf("Unknown theme should clamp to auto, got %q", cfg.UI.Theme)
	}
}

// =============================================================================
// LOAD/SAVE TESTS
// =============================================================================

func TestLoadFrom_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Typing.RevealIntervalMs != 50 {
		t.Errorf("Expected defaults for a missing file, got %+v", cfg.Typing)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg := Default()
	cfg.Typing.RevealIntervalMs = 25
	cfg.Typing.ThinkingDelayMinMs = 500
	cfg.Typing.ThinkingDelayMaxMs = 800
	cfg.UI.Theme = "dark"

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if loaded.Typing.RevealIntervalMs != 25 {
		t.Errorf("RevealIntervalMs = %d, want 25", loaded.Typing.RevealIntervalMs)
	}
	if loaded.Typing.ThinkingDelayMinMs != 500 || loaded.Typing.ThinkingDelayMaxMs != 800 {
		t.Errorf("Thinking range = %d..%d, want 500..800",
			loaded.Typing.ThinkingDelayMinMs, loaded.Typing.ThinkingDelayMaxMs)
	}
	if loaded.UI.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", loaded.UI.Theme)
	}
}

func TestLoadFrom_InvalidValuesAreClamped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	raw := "[typing]\nreveal_interval_ms = 99999\nthinking_delay_min_ms = -5\n"
	if err := os.WriteFile(path, []byte(raw), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Typing.RevealIntervalMs != 500 {
		t.Errorf("RevealIntervalMs = %d, want clamped 500", cfg.Typing.RevealIntervalMs)
	}
	if cfg.Typing.ThinkingDelayMinMs != 0 {
		t.Errorf("ThinkingDelayMinMs = %d, want clamped 0", cfg.Typing.ThinkingDelayMinMs)
	}
}

// =============================================================================
// ENVIRONMENT OVERRIDE TESTS
// =============================================================================

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("PARLEY_REVEAL_INTERVAL_MS", "75")
	t.Setenv("PARLEY_THEME", "light")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Typing.RevealIntervalMs != 75 {
		t.Errorf("RevealIntervalMs = %d, want 75", cfg.Typing.RevealIntervalMs)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.UI.Theme)
	}
}

func TestApplyEnvOverrides_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("PARLEY_REVEAL_INTERVAL_MS", "not-a-number")

	cfg := Default()
	cfg.ApplyEnvOverrides()

	if cfg.Typing.RevealIntervalMs != 50 {
		t.Errorf("Malformed override changed value: %d", cfg.Typing.RevealIntervalMs)
	}
}
