// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/conversation"
	"github.com/jeranaias/parley-tui/internal/ui/components"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// =============================================================================
// CHAT STATE
// =============================================================================

// State represents the current state of the chat view.
type State int

const (
	StateReady    State = iota // Ready for input
	StateThinking              // Waiting out the thinking delay
	StateTyping                // Reply is being revealed
)

// eventBuffer bounds the controller-to-view event channel. Reveal events
// arrive at most every few milliseconds, so the update loop keeps up
// easily; the buffer absorbs bursts around turn boundaries.
const eventBuffer = 512

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// State
	state State

	// Styling
	theme *styles.Theme

	// Dimensions
	width  int
	height int

	// Turn orchestration
	controller *conversation.Controller
	events     chan conversation.Event

	// UI components
	viewport *components.ChatViewport
	input    *components.InputArea
	thinking components.ThinkingIndicator

	// Transient status line
	statusMsg string

	quitting bool
}

// New creates the chat model over a controller and the loaded config.
func New(controller *conversation.Controller, cfg *config.Config) *Model {
	theme := styles.NewTheme(cfg.UI.Theme)

	vp := components.NewChatViewport(theme)
	input := components.NewInputArea(theme)
	input.SetMaxChars(cfg.UI.MaxInputLength)

	m := &Model{
		state:      StateReady,
		theme:      theme,
		width:      80,
		height:     24,
		controller: controller,
		events:     make(chan conversation.Event, eventBuffer),
		viewport:   vp,
		input:      input,
		thinking:   components.NewThinkingIndicator(),
	}
	m.viewport.SetMarkdown(cfg.UI.Markdown)

	controller.Notify(func(ev conversation.Event) {
		m.events <- ev
	})

	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.input.Focus(),
		m.waitForEvent(),
	)
}

// waitForEvent blocks until the controller publishes the next event and
// delivers it to the update loop.
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return nil
		}
		return ControllerEventMsg{Event: ev}
	}
}

// refreshTranscript re-renders the viewport from the transcript.
func (m *Model) refreshTranscript() {
	m.viewport.SetMessages(m.controller.Transcript().Messages())
}
