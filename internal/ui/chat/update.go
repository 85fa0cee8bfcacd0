// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/conversation"
)

// =============================================================================
// UPDATE LOOP
// =============================================================================

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.theme.SetSize(msg.Width, msg.Height)
		m.viewport.SetSize(msg.Width, m.viewportHeight())
		m.input.SetWidth(msg.Width)
		m.refreshTranscript()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case ControllerEventMsg:
		return m.handleControllerEvent(msg.Event)

	case ConfigReloadedMsg:
		m.controller.SetOptions(conversation.Options{
			RevealInterval:   msg.Config.Typing.RevealInterval(),
			ThinkingDelayMin: msg.Config.Typing.ThinkingDelayMin(),
			ThinkingDelayMax: msg.Config.Typing.ThinkingDelayMax(),
			PostTypingSettle: msg.Config.Typing.PostTypingSettle(),
		})
		m.input.SetMaxChars(msg.Config.UI.MaxInputLength)
		m.viewport.SetMarkdown(msg.Config.UI.Markdown)
		m.statusMsg = "config reloaded"
		return m, clearStatusAfter(2 * time.Second)

	case StatusMsg:
		m.statusMsg = msg.Text
		return m, clearStatusAfter(3 * time.Second)

	case ClearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	// Spinner ticks and anything else flow through the indicator.
	var cmd tea.Cmd
	m.thinking, cmd = m.thinking.Update(msg)
	return m, cmd
}

// =============================================================================
// KEY HANDLING
// =============================================================================

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		m.controller.Shutdown()
		return m, tea.Quit

	case "enter":
		return m.submitInput()

	case "up", "down", "pgup", "pgdn", "pgdown", "home", "end":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput hands the current input line to the controller. Rejections
// surface in the status bar; the input text is preserved when a turn is
// still in flight so nothing the user typed is lost.
func (m *Model) submitInput() (tea.Model, tea.Cmd) {
	text := m.input.Value()

	err := m.controller.Submit(text)
	switch {
	case err == nil:
		m.input.Reset()
		return m, nil
	case errors.Is(err, conversation.ErrEmptyInput):
		return m, nil
	case errors.Is(err, conversation.ErrTurnInFlight):
		m.statusMsg = "wait for the current reply to finish"
		return m, clearStatusAfter(2 * time.Second)
	default:
		m.statusMsg = err.Error()
		return m, clearStatusAfter(3 * time.Second)
	}
}

// =============================================================================
// CONTROLLER EVENTS
// =============================================================================

func (m *Model) handleControllerEvent(ev conversation.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.waitForEvent()}

	switch ev.Kind {
	case conversation.EventUserCommitted:
		m.refreshTranscript()

	case conversation.EventThinking:
		m.state = StateThinking
		cmds = append(cmds, m.thinking.Start())

	case conversation.EventTyping:
		m.state = StateTyping
		m.thinking.Stop()
		m.viewport.SetTypingText("")

	case conversation.EventTypingProgress:
		m.viewport.SetTypingText(ev.Visible)

	case conversation.EventTurnCommitted:
		m.state = StateReady
		m.thinking.Stop()
		m.viewport.ClearTyping()
		m.refreshTranscript()
	}

	return m, tea.Batch(cmds...)
}

// =============================================================================
// HELPERS
// =============================================================================

// viewportHeight is the window height minus header, input area, and
// status bar.
func (m *Model) viewportHeight() int {
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	return h
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
