// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// repl.go - Plain-terminal chat loop with input history.
//
// The REPL prints the reply character-reveal inline: each typing-progress
// event extends the current line by the newly revealed suffix, so the
// reply appears at the configured pace without a full-screen UI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/conversation"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// STYLES
// =============================================================================

var (
	promptStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	welcomeStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	infoStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary)

	labelStyle = lipgloss.NewStyle().
			Foreground(styles.Purple).
			Bold(true)

	commandStyle = lipgloss.NewStyle().
			Foreground(styles.Emerald)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.Rose).
			Bold(true)
)

// =============================================================================
// REPL
// =============================================================================

// REPL is the plain-terminal chat session.
type REPL struct {
	controller *conversation.Controller
	line       *liner.State
	history    string
	events     chan conversation.Event
	quiet      bool
}

// NewREPL creates a REPL over the given controller. Input history is
// persisted to the config directory across sessions.
func NewREPL(controller *conversation.Controller, quiet bool) *REPL {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	configDir, err := config.ConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}

	r := &REPL{
		controller: controller,
		line:       line,
		history:    filepath.Join(configDir, "input_history"),
		events:     make(chan conversation.Event, 512),
		quiet:      quiet,
	}
	r.loadHistory()

	controller.Notify(func(ev conversation.Event) {
		r.events <- ev
	})

	return r
}

// Run drives the prompt loop until the user exits.
func (r *REPL) Run() error {
	defer r.close()

	if !r.quiet {
		r.printWelcome()
	}

	for {
		input, err := r.line.Prompt(promptStyle.Render("you> "))
		if err != nil {
			// Ctrl+C, Ctrl+D, or a closed terminal all end the session.
			fmt.Println()
			fmt.Println(infoStyle.Render("Goodbye!"))
			return nil
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		r.line.AppendHistory(input)

		if strings.HasPrefix(input, "/") {
			if !r.handleCommand(input) {
				fmt.Println(infoStyle.Render("Goodbye!"))
				return nil
			}
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			fmt.Println(infoStyle.Render("Goodbye!"))
			return nil
		}

		if err := r.runTurn(input); err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorStyle.Render("[Error]"), err)
		}
	}
}

// runTurn submits the input and prints the reply as it is revealed,
// blocking until the turn commits.
func (r *REPL) runTurn(input string) error {
	if err := r.controller.Submit(input); err != nil {
		return err
	}

	printed := 0
	labeled := false

	for {
		select {
		case ev := <-r.events:
			switch ev.Kind {
			case conversation.EventTyping:
				fmt.Print("\n" + labelStyle.Render("Parley") + " ")
				labeled = true

			case conversation.EventTypingProgress:
				runes := []rune(ev.Visible)
				if len(runes) > printed {
					fmt.Print(string(runes[printed:]))
					printed = len(runes)
				}

			case conversation.EventTurnCommitted:
				// Replies short enough to finish instantly may skip
				// progress events entirely.
				if labeled && ev.Message != nil {
					full := []rune(ev.Message.Content)
					if len(full) > printed {
						fmt.Print(string(full[printed:]))
					}
				}
				fmt.Println()
				fmt.Println()
				return nil
			}

		case <-time.After(2 * time.Minute):
			return fmt.Errorf("timed out waiting for the reply")
		}
	}
}

// handleCommand processes slash commands. Returns false to exit.
func (r *REPL) handleCommand(cmd string) bool {
	switch strings.ToLower(strings.Fields(cmd)[0]) {
	case "/help", "/h", "/?":
		r.printHelp()
		return true

	case "/history":
		r.printTranscript()
		return true

	case "/quit", "/q", "/exit":
		return false

	default:
		fmt.Fprintf(os.Stderr, "%s unknown command: %s (type /help)\n",
			errorStyle.Render("[Error]"), cmd)
		return true
	}
}

// =============================================================================
// DISPLAY
// =============================================================================

func (r *REPL) printWelcome() {
	fmt.Println()
	fmt.Println(welcomeStyle.Render("parley chat"))
	fmt.Println(infoStyle.Render(strings.Repeat("─", 30)))
	fmt.Println(infoStyle.Render("Type your message and press Enter. Commands: /help, /quit"))
	fmt.Println()
}

func (r *REPL) printHelp() {
	fmt.Println()
	commands := []struct {
		cmd  string
		desc string
	}{
		{"/help", "Show this help"},
		{"/history", "Show the transcript so far"},
		{"/quit", "Exit chat"},
	}
	for _, c := range commands {
		fmt.Printf("  %s  %s\n",
			commandStyle.Render(fmt.Sprintf("%-12s", c.cmd)),
			infoStyle.Render(c.desc))
	}
	fmt.Println()
	fmt.Println(infoStyle.Render("Tip: Ctrl+D exits"))
	fmt.Println()
}

func (r *REPL) printTranscript() {
	messages := r.controller.Transcript().Messages()
	if len(messages) == 0 {
		fmt.Println(infoStyle.Render("[No messages yet]"))
		return
	}

	fmt.Println()
	for i, msg := range messages {
		// Pad before styling so the ANSI codes don't skew the column.
		role := util.PadRight(msg.Role.DisplayName(), 6)
		switch msg.Role {
		case model.RoleUser:
			role = lipgloss.NewStyle().Foreground(styles.Cyan).Render(role)
		case model.RoleAssistant:
			role = labelStyle.Render(role)
		}
		fmt.Printf("  %d. %s  %s\n", i+1, role, msg.Preview(100))
	}
	fmt.Println()
}

// =============================================================================
// HISTORY PERSISTENCE
// =============================================================================

func (r *REPL) loadHistory() {
	if f, err := os.Open(r.history); err == nil {
		r.line.ReadHistory(f)
		f.Close()
	}
}

func (r *REPL) saveHistory() {
	if err := config.EnsureConfigDir(); err != nil {
		return
	}
	f, err := os.OpenFile(r.history, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	r.line.WriteHistory(f)
}

func (r *REPL) close() {
	r.saveHistory()
	r.line.Close()
	r.controller.Shutdown()
}
