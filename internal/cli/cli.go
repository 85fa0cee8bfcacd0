// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli handles argument parsing and the plain-terminal REPL.
package cli

import (
	"os"
	"strings"
)

// =============================================================================
// COMMANDS
// =============================================================================

// Command identifies the top-level command.
type Command int

const (
	CmdTUI  Command = iota // Default: full-screen TUI
	CmdChat                // Plain REPL, no alternate screen
	CmdVersion
	CmdHelp
)

// Args holds parsed CLI arguments.
type Args struct {
	Quiet bool // Suppress the welcome banner
	Theme string

	// Raw args remaining after flag parsing
	Raw []string
}

const usageText = `parley - a small chat companion for the terminal

Usage:
  parley                 Start the full-screen TUI (default)
  parley chat            Interactive REPL in the current terminal
  parley version         Print version
  parley help            Show this help

Flags:
  -q, --quiet            Suppress the welcome banner
  --theme NAME           Color theme: auto, dark, light

Interactive commands (during chat):
  /help                  Show available commands
  /history               Show the transcript so far
  /quit                  Exit chat
  Ctrl+D                 Exit chat

Configuration:
  ~/.parley/config.toml  Timing and UI settings, hot-reloaded on change
  PARLEY_* env vars      Override individual settings
`

// Usage returns the top-level help text.
func Usage() string {
	return usageText
}

// =============================================================================
// PARSING
// =============================================================================

// Parse reads os.Args and returns the command and flags.
func Parse() (Command, Args) {
	return parseArgs(os.Args[1:])
}

// parseArgs is the testable core of Parse.
func parseArgs(argv []string) (Command, Args) {
	cmd := CmdTUI
	args := Args{Theme: ""}

	i := 0
	if len(argv) > 0 && !strings.HasPrefix(argv[0], "-") {
		switch strings.ToLower(argv[0]) {
		case "chat":
			cmd = CmdChat
		case "version", "--version", "-V":
			cmd = CmdVersion
		case "help":
			cmd = CmdHelp
		default:
			cmd = CmdHelp
		}
		i = 1
	}

	for ; i < len(argv); i++ {
		switch arg := argv[i]; arg {
		case "-q", "--quiet":
			args.Quiet = true
		case "--theme":
			if i+1 < len(argv) {
				i++
				args.Theme = argv[i]
			}
		case "-h", "--help":
			cmd = CmdHelp
		case "--version":
			cmd = CmdVersion
		default:
			args.Raw = append(args.Raw, arg)
		}
	}

	return cmd, args
}
