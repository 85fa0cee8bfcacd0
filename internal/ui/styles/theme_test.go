// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "testing"

func TestNewThemeModes(t *testing.T) {
	tests := []struct {
		name     string
		mode     string
		wantDark *bool // nil means "terminal-dependent"
	}{
		{"dark forced", "dark", boolPtr(true)},
		{"light forced", "light", boolPtr(false)},
		{"auto follows terminal", "auto", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			th := NewTheme(tc.mode)
			if th == nil {
				t.Fatal("NewTheme returned nil")
			}
			if tc.wantDark != nil && th.IsDark != *tc.wantDark {
				t.Errorf("IsDark = %v, want %v", th.IsDark, *tc.wantDark)
			}
		})
	}
}

func TestSetSizeRebuildsStyles(t *testing.T) {
	th := NewTheme("dark")

	th.SetSize(120, 40)
	if th.Width != 120 || th.Height != 40 {
		t.Errorf("size = %dx%d, want 120x40", th.Width, th.Height)
	}
	if got := th.Header.GetWidth(); got != 120 {
		t.Errorf("header width = %d, want 120", got)
	}
}

func TestThemeStylesRender(t *testing.T) {
	th := NewTheme("dark")

	if th.UserLabel.Render("You") == "" {
		t.Error("UserLabel should render")
	}
	if th.AssistantLabel.Render("Parley") == "" {
		t.Error("AssistantLabel should render")
	}
}

func boolPtr(b bool) *bool { return &b }
