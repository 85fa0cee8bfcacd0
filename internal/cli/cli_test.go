// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strings"
	"testing"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		argv    []string
		wantCmd Command
		want    Args
	}{
		{"no args starts TUI", nil, CmdTUI, Args{}},
		{"chat command", []string{"chat"}, CmdChat, Args{}},
		{"version command", []string{"version"}, CmdVersion, Args{}},
		{"version flag", []string{"--version"}, CmdVersion, Args{}},
		{"help command", []string{"help"}, CmdHelp, Args{}},
		{"unknown command shows help", []string{"bogus"}, CmdHelp, Args{}},
		{"quiet flag", []string{"chat", "-q"}, CmdChat, Args{Quiet: true}},
		{"quiet long flag", []string{"--quiet"}, CmdTUI, Args{Quiet: true}},
		{"theme flag", []string{"--theme", "light"}, CmdTUI, Args{Theme: "light"}},
		{"theme flag missing value", []string{"--theme"}, CmdTUI, Args{}},
		{"help flag wins", []string{"chat", "-h"}, CmdHelp, Args{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cmd, args := parseArgs(tc.argv)
			if cmd != tc.wantCmd {
				t.Errorf("cmd = %v, want %v", cmd, tc.wantCmd)
			}
			if args.Quiet != tc.want.Quiet {
				t.Errorf("Quiet = %v, want %v", args.Quiet, tc.want.Quiet)
			}
			if args.Theme != tc.want.Theme {
				t.Errorf("Theme = %q, want %q", args.Theme, tc.want.Theme)
			}
		})
	}
}

func TestUsageMentionsCommands(t *testing.T) {
	usage := Usage()
	for _, want := range []string{"chat", "version", "help", "/quit"} {
		if !strings.Contains(usage, want) {
			t.Errorf("usage text missing %q", want)
		}
	}
}
