// parley - a small chat companion for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/cli"
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/conversation"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/respond"
	"github.com/jeranaias/parley-tui/internal/typing"
	"github.com/jeranaias/parley-tui/internal/ui/chat"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	cmd, args := cli.Parse()

	switch cmd {
	case cli.CmdTUI:
		if err := runTUI(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdChat:
		if err := runChat(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case cli.CmdVersion:
		fmt.Printf("parley %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	case cli.CmdHelp:
		fmt.Print(cli.Usage())
	}
}

// loadConfig loads the config file, applies CLI overrides, and installs
// the result as the global config.
func loadConfig(args cli.Args) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// A broken config file should not keep the app from starting.
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.Default()
	}
	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
		cfg.Clamp()
	}
	config.SetGlobal(cfg)
	return cfg
}

// buildController wires the transcript, typing engine, and response
// generator into a turn controller.
func buildController(cfg *config.Config) *conversation.Controller {
	transcript := model.NewTranscript()
	engine := typing.NewEngine(cfg.Typing.RevealInterval())
	gen := respond.NewScripted()

	return conversation.NewController(transcript, engine, gen, conversation.Options{
		RevealInterval:   cfg.Typing.RevealInterval(),
		ThinkingDelayMin: cfg.Typing.ThinkingDelayMin(),
		ThinkingDelayMax: cfg.Typing.ThinkingDelayMax(),
		PostTypingSettle: cfg.Typing.PostTypingSettle(),
	})
}

// =============================================================================
// TUI MODE
// =============================================================================

func runTUI(args cli.Args) error {
	cfg := loadConfig(args)
	controller := buildController(cfg)
	defer controller.Shutdown()

	m := chat.New(controller, cfg)

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	// Hot-reload config changes into the running program. The watcher is
	// best-effort: if it cannot be set up the app still runs with the
	// config loaded at startup.
	if path, err := config.ConfigPath(); err == nil && config.EnsureConfigDir() == nil {
		watcher, werr := config.NewWatcher(path, func(updated *config.Config) {
			p.Send(chat.ConfigReloadedMsg{Config: updated})
		})
		if werr == nil {
			if werr = watcher.Watch(); werr == nil {
				defer watcher.Close()
			}
		}
	}

	_, err := p.Run()
	return err
}

// =============================================================================
// REPL MODE
// =============================================================================

func runChat(args cli.Args) error {
	if !cli.IsTTY() {
		return fmt.Errorf("chat requires an interactive terminal")
	}

	cfg := loadConfig(args)
	controller := buildController(cfg)

	repl := cli.NewREPL(controller, args.Quiet)
	return repl.Run()
}
