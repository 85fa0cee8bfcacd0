// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation orchestrates request/response turns.
package conversation

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/respond"
	"github.com/jeranaias/parley-tui/internal/typing"
)

// fastOptions keeps turns to a few milliseconds.
func fastOptions() Options {
	return Options{
		RevealInterval:   time.Millisecond,
		ThinkingDelayMin: time.Millisecond,
		ThinkingDelayMax: 2 * time.Millisecond,
		PostTypingSettle: time.Millisecond,
	}
}

// echoGenerator replies with a fixed transform of the input.
type echoGenerator struct{ prefix string }

func (g echoGenerator) Generate(input string) string {
	return g.prefix + input
}

// harness wires a controller with an event recorder.
type harness struct {
	controller *Controller
	transcript *model.Transcript

	mu     sync.Mutex
	events []Event

	committed chan *model.Message
}

func newHarness(t *testing.T, gen Generator, opts Options) *harness {
	t.Helper()

	h := &harness{
		transcript: model.NewTranscript(),
		committed:  make(chan *model.Message, 8),
	}
	engine := typing.NewEngine(opts.RevealInterval)
	h.controller = NewController(h.transcript, engine, gen, opts)
	h.controller.Notify(func(ev Event) {
		h.mu.Lock()
		h.events = append(h.events, ev)
		h.mu.Unlock()
		if ev.Kind == EventTurnCommitted {
			h.committed <- ev.Message
		}
	})
	t.Cleanup(h.controller.Shutdown)
	return h
}

// waitCommit blocks until a turn commits.
func (h *harness) waitCommit(t *testing.T) *model.Message {
	t.Helper()
	select {
	case msg := <-h.committed:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for turn commit")
		return nil
	}
}

func (h *harness) snapshotEvents() []Event {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Event, len(h.events))
	copy(out, h.events)
	return out
}

// =============================================================================
// INPUT VALIDATION TESTS
// =============================================================================

func TestController_RejectsEmptyInput(t *testing.T) {
	h := newHarness(t, echoGenerator{}, fastOptions())

	for _, input := range []string{"", "   ", "\t\n  "} {
		err := h.controller.Submit(input)
		assert.ErrorIs(t, err, ErrEmptyInput, "input %q", input)
	}

	assert.True(t, h.transcript.IsEmpty(), "transcript must be unchanged")
	assert.Equal(t, typing.PhaseIdle, h.controller.Engine().Phase())
	assert.False(t, h.controller.InFlight())
}

func TestController_TrimsSubmittedInput(t *testing.T) {
	h := newHarness(t, echoGenerator{prefix: "re: "}, fastOptions())

	require.NoError(t, h.controller.Submit("  hello  "))
	h.waitCommit(t)

	messages := h.transcript.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "hello", messages[0].Content)
}

// =============================================================================
// TURN LIFECYCLE TESTS
// =============================================================================

func TestController_TurnCommitOrdering(t *testing.T) {
	gen := echoGenerator{prefix: "re: "}
	h := newHarness(t, gen, fastOptions())

	require.NoError(t, h.controller.Submit("hello"))
	h.waitCommit(t)

	messages := h.transcript.Messages()
	require.Len(t, messages, 2, "exactly two messages per turn")

	assert.Equal(t, model.RoleUser, messages[0].Role)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, model.RoleAssistant, messages[1].Role)
	assert.Equal(t, gen.Generate("hello"), messages[1].Content)

	assert.Equal(t, typing.PhaseIdle, h.controller.Engine().Phase())
	assert.False(t, h.controller.InFlight())
}

func TestController_PhaseEventOrdering(t *testing.T) {
	h := newHarness(t, echoGenerator{prefix: "ok "}, fastOptions())

	require.NoError(t, h.controller.Submit("hi"))
	h.waitCommit(t)

	var kinds []EventKind
	for _, ev := range h.snapshotEvents() {
		switch ev.Kind {
		case EventUserCommitted, EventThinking, EventTyping, EventTurnCommitted:
			kinds = append(kinds, ev.Kind)
		}
	}

	require.Equal(t, []EventKind{
		EventUserCommitted,
		EventThinking,
		EventTyping,
		EventTurnCommitted,
	}, kinds)
}

func TestController_TypingProgressIsPrefixOfReply(t *testing.T) {
	gen := echoGenerator{prefix: "echo "}
	h := newHarness(t, gen, fastOptions())

	require.NoError(t, h.controller.Submit("abc"))
	reply := h.waitCommit(t).Content

	progress := 0
	for _, ev := range h.snapshotEvents() {
		if ev.Kind != EventTypingProgress {
			continue
		}
		progress++
		assert.True(t, strings.HasPrefix(reply, ev.Visible),
			"visible %q is not a prefix of %q", ev.Visible, reply)
	}
	assert.Equal(t, len([]rune(reply)), progress, "one progress event per character")
}

func TestController_SequentialTurns(t *testing.T) {
	h := newHarness(t, echoGenerator{prefix: "re: "}, fastOptions())

	require.NoError(t, h.controller.Submit("one"))
	h.waitCommit(t)
	require.NoError(t, h.controller.Submit("two"))
	h.waitCommit(t)

	messages := h.transcript.Messages()
	require.Len(t, messages, 4)
	assert.Equal(t, "one", messages[0].Content)
	assert.Equal(t, "re: one", messages[1].Content)
	assert.Equal(t, "two", messages[2].Content)
	assert.Equal(t, "re: two", messages[3].Content)
}

// =============================================================================
// CONCURRENT SUBMISSION TESTS
// =============================================================================

func TestController_RejectsSubmitWhileTurnInFlight(t *testing.T) {
	h := newHarness(t, echoGenerator{prefix: "re: "}, fastOptions())

	require.NoError(t, h.controller.Submit("first"))
	err := h.controller.Submit("second")
	assert.ErrorIs(t, err, ErrTurnInFlight)

	h.waitCommit(t)

	// Only the first turn's messages exist.
	messages := h.transcript.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)
}

// =============================================================================
// SHUTDOWN TESTS
// =============================================================================

func TestController_ShutdownCancelsPendingTurn(t *testing.T) {
	opts := fastOptions()
	opts.ThinkingDelayMin = 50 * time.Millisecond
	opts.ThinkingDelayMax = 60 * time.Millisecond

	h := newHarness(t, echoGenerator{prefix: "re: "}, opts)

	require.NoError(t, h.controller.Submit("hello"))
	// Tear down mid-thinking: the pending reply must never commit.
	h.controller.Shutdown()

	time.Sleep(150 * time.Millisecond)

	messages := h.transcript.Messages()
	require.Len(t, messages, 1, "only the user message may exist")
	assert.Equal(t, model.RoleUser, messages[0].Role)
	assert.Equal(t, typing.PhaseIdle, h.controller.Engine().Phase())
}

func TestController_ShutdownIsIdempotent(t *testing.T) {
	h := newHarness(t, echoGenerator{}, fastOptions())

	h.controller.Shutdown()
	h.controller.Shutdown()

	err := h.controller.Submit("hello")
	assert.ErrorIs(t, err, ErrShutdown)
	assert.True(t, h.transcript.IsEmpty())
}

// =============================================================================
// GENERATOR INTEGRATION TESTS
// =============================================================================

func TestController_WeatherScenario(t *testing.T) {
	gen := respond.NewScripted()
	h := newHarness(t, gen, fastOptions())

	const input = "What's the weather?"
	expected := gen.Generate(input)

	require.NoError(t, h.controller.Submit(input))
	reply := h.waitCommit(t)

	messages := h.transcript.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, input, messages[0].Content)
	assert.Equal(t, expected, messages[1].Content)
	assert.Equal(t, expected, reply.Content)

	for _, ev := range h.snapshotEvents() {
		if ev.Kind == EventTypingProgress {
			assert.True(t, strings.HasPrefix(expected, ev.Visible),
				"visible %q is not a prefix of the weather reply", ev.Visible)
		}
	}
}

func TestController_EmptyReplyStillCommits(t *testing.T) {
	h := newHarness(t, emptyGenerator{}, fastOptions())

	require.NoError(t, h.controller.Submit("anything"))
	reply := h.waitCommit(t)

	assert.Equal(t, "", reply.Content)
	assert.Equal(t, model.RoleAssistant, reply.Role)
	require.Len(t, h.transcript.Messages(), 2)
}

type emptyGenerator struct{}

func (emptyGenerator) Generate(string) string { return "" }

// =============================================================================
// OPTIONS TESTS
// =============================================================================

func TestOptions_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{
			name: "zero reveal interval uses default",
			in:   Options{ThinkingDelayMin: time.Millisecond, ThinkingDelayMax: time.Millisecond},
			want: Options{
				RevealInterval:   50 * time.Millisecond,
				ThinkingDelayMin: time.Millisecond,
				ThinkingDelayMax: time.Millisecond,
			},
		},
		{
			name: "inverted thinking range is swapped",
			in: Options{
				RevealInterval:   time.Millisecond,
				ThinkingDelayMin: 2 * time.Second,
				ThinkingDelayMax: time.Second,
			},
			want: Options{
				RevealInterval:   time.Millisecond,
				ThinkingDelayMin: time.Second,
				ThinkingDelayMax: 2 * time.Second,
			},
		},
		{
			name: "negative settle clamps to zero",
			in: Options{
				RevealInterval:   time.Millisecond,
				ThinkingDelayMin: time.Millisecond,
				ThinkingDelayMax: time.Millisecond,
				PostTypingSettle: -time.Second,
			},
			want: Options{
				RevealInterval:   time.Millisecond,
				ThinkingDelayMin: time.Millisecond,
				ThinkingDelayMax: time.Millisecond,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.normalize())
		})
	}
}

func TestThinkingDelay_WithinRange(t *testing.T) {
	opts := Options{
		ThinkingDelayMin: 10 * time.Millisecond,
		ThinkingDelayMax: 20 * time.Millisecond,
	}

	for i := 0; i < 100; i++ {
		d := thinkingDelay(opts)
		assert.GreaterOrEqual(t, d, opts.ThinkingDelayMin)
		assert.LessOrEqual(t, d, opts.ThinkingDelayMax)
	}
}
