// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small string utilities for the parley TUI.
package util

import "testing"

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"truncated with ellipsis", "hello world", 8, "hello..."},
		{"unicode safe", "héllo wörld", 8, "héllo..."},
		{"zero budget", "hello", 0, ""},
		{"tiny budget no ellipsis", "hello", 2, "he"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateRunes(tc.in, tc.max); got != tc.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"fits unchanged", "abc", 5, "abc"},
		{"truncated", "abcdef", 3, "abc"},
		{"wide characters count double", "日本語", 4, "日本"},
		{"wide char does not split", "a日本", 2, "a"},
		{"zero width", "abc", 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateWidth(tc.in, tc.max); got != tc.want {
				t.Errorf("TruncateWidth(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"pads short string", "ab", 5, "ab   "},
		{"already wide enough", "abcdef", 3, "abcdef"},
		{"wide characters", "日本", 6, "日本  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PadRight(tc.in, tc.width); got != tc.want {
				t.Errorf("PadRight(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
			}
		})
	}
}
