// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/conversation"
	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/typing"
)

// staticGenerator replies with a fixed string.
type staticGenerator struct{ reply string }

func (g staticGenerator) Generate(string) string { return g.reply }

func newTestModel(t *testing.T) *Model {
	t.Helper()

	opts := conversation.Options{
		RevealInterval:   time.Millisecond,
		ThinkingDelayMin: time.Millisecond,
		ThinkingDelayMax: 2 * time.Millisecond,
		PostTypingSettle: time.Millisecond,
	}
	transcript := model.NewTranscript()
	engine := typing.NewEngine(opts.RevealInterval)
	controller := conversation.NewController(transcript, engine, staticGenerator{reply: "ok"}, opts)
	t.Cleanup(controller.Shutdown)

	cfg := config.Default()
	m := New(controller, cfg)
	m.width = 80
	m.height = 24
	m.viewport.SetSize(80, 16)
	return m
}

func TestModelStartsReady(t *testing.T) {
	m := newTestModel(t)

	if m.state != StateReady {
		t.Errorf("state = %v, want StateReady", m.state)
	}
	if m.Init() == nil {
		t.Error("Init() should return a command")
	}
}

func TestControllerEventsDriveState(t *testing.T) {
	m := newTestModel(t)

	m.handleControllerEvent(conversation.Event{Kind: conversation.EventThinking})
	if m.state != StateThinking {
		t.Errorf("after EventThinking state = %v, want StateThinking", m.state)
	}
	if !m.thinking.IsActive() {
		t.Error("thinking indicator should be active")
	}

	m.handleControllerEvent(conversation.Event{Kind: conversation.EventTyping})
	if m.state != StateTyping {
		t.Errorf("after EventTyping state = %v, want StateTyping", m.state)
	}
	if m.thinking.IsActive() {
		t.Error("thinking indicator should stop when typing starts")
	}

	m.handleControllerEvent(conversation.Event{Kind: conversation.EventTurnCommitted})
	if m.state != StateReady {
		t.Errorf("after EventTurnCommitted state = %v, want StateReady", m.state)
	}
}

func TestEnterWithEmptyInputIsNoOp(t *testing.T) {
	m := newTestModel(t)

	before := m.controller.Transcript().MessageCount()
	m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})

	if got := m.controller.Transcript().MessageCount(); got != before {
		t.Errorf("message count = %d, want unchanged %d", got, before)
	}
	if m.statusMsg != "" {
		t.Errorf("empty submit should not set a status, got %q", m.statusMsg)
	}
}

func TestQuitKeyShutsDownController(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.handleKey(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should return a quit command")
	}
	if !m.quitting {
		t.Error("quitting flag should be set")
	}
	if err := m.controller.Submit("hello"); err != conversation.ErrShutdown {
		t.Errorf("Submit after quit = %v, want ErrShutdown", err)
	}
}

func TestConfigReloadAppliesLimits(t *testing.T) {
	m := newTestModel(t)

	cfg := config.Default()
	cfg.UI.MaxInputLength = 500
	cfg.Typing.RevealIntervalMs = 80

	updated, _ := m.Update(ConfigReloadedMsg{Config: cfg})
	m = updated.(*Model)

	if m.statusMsg == "" {
		t.Error("config reload should surface a status message")
	}
}

func TestTypingProgressRendersInViewport(t *testing.T) {
	m := newTestModel(t)

	m.handleControllerEvent(conversation.Event{Kind: conversation.EventTyping})
	m.handleControllerEvent(conversation.Event{
		Kind:    conversation.EventTypingProgress,
		Visible: "partial text here",
	})

	view := m.viewport.View()
	if view == "" {
		t.Fatal("viewport should render content")
	}
}
