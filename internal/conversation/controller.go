// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation orchestrates request/response turns.
package conversation

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/typing"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrEmptyInput is returned when the submitted text is empty or
	// whitespace-only. Nothing is appended and the engine stays idle.
	ErrEmptyInput = errors.New("empty input")

	// ErrTurnInFlight is returned when Submit is called while a prior
	// turn's thinking or typing is still pending. Concurrent submissions
	// are rejected, not queued.
	ErrTurnInFlight = errors.New("turn already in flight")

	// ErrShutdown is returned after the controller has been shut down.
	ErrShutdown = errors.New("controller is shut down")
)

// =============================================================================
// GENERATOR INTERFACE
// =============================================================================

// Generator produces an assistant reply for a user input. Implementations
// must be pure, synchronous, and total: always return a string, never
// fail.
type Generator interface {
	Generate(input string) string
}

// =============================================================================
// EVENTS
// =============================================================================

// EventKind identifies a controller event.
type EventKind int

const (
	// EventUserCommitted fires when the user message is appended.
	EventUserCommitted EventKind = iota

	// EventThinking fires when the engine enters the thinking phase.
	EventThinking

	// EventTyping fires when the engine enters the typing phase.
	EventTyping

	// EventTypingProgress fires on every character reveal.
	EventTypingProgress

	// EventTurnCommitted fires when the assistant message is appended
	// and the engine has been reset. The turn is complete.
	EventTurnCommitted
)

// Event describes one observable step of a turn.
type Event struct {
	Kind    EventKind
	Message *model.Message // set for EventUserCommitted and EventTurnCommitted
	Visible string         // set for EventTypingProgress
}

// =============================================================================
// OPTIONS
// =============================================================================

// Options holds the timing parameters for a turn.
type Options struct {
	// RevealInterval is the delay between character reveals.
	// Default: 50ms per character.
	RevealInterval time.Duration

	// ThinkingDelayMin and ThinkingDelayMax bound the uniform-random
	// thinking pause before the reply is generated. Defaults: 1s-2s.
	ThinkingDelayMin time.Duration
	ThinkingDelayMax time.Duration

	// PostTypingSettle is the pause between the last revealed character
	// and the assistant message commit. Default: 300ms. Zero is allowed
	// and commits on the next timer tick.
	PostTypingSettle time.Duration
}

// DefaultOptions returns the reference timing parameters.
func DefaultOptions() Options {
	return Options{
		RevealInterval:   50 * time.Millisecond,
		ThinkingDelayMin: 1 * time.Second,
		ThinkingDelayMax: 2 * time.Second,
		PostTypingSettle: 300 * time.Millisecond,
	}
}

// normalize fills zero fields with defaults and repairs an inverted
// thinking range.
func (o Options) normalize() Options {
	def := DefaultOptions()
	if o.RevealInterval <= 0 {
		o.RevealInterval = def.RevealInterval
	}
	if o.ThinkingDelayMin < 0 {
		o.ThinkingDelayMin = 0
	}
	if o.ThinkingDelayMax <= 0 {
		o.ThinkingDelayMax = o.ThinkingDelayMin
	}
	if o.ThinkingDelayMax < o.ThinkingDelayMin {
		o.ThinkingDelayMin, o.ThinkingDelayMax = o.ThinkingDelayMax, o.ThinkingDelayMin
	}
	if o.PostTypingSettle < 0 {
		o.PostTypingSettle = 0
	}
	return o
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller orchestrates one request/response turn at a time: validate
// input, append the user message, run the engine through thinking and
// typing, and commit the assistant reply.
//
// The controller is the transcript's sole writer. All pending timers
// (thinking delay, settle delay, reveal ticks) are cancelled by Shutdown
// so nothing can fire against a disposed controller.
type Controller struct {
	transcript *model.Transcript
	engine     *typing.Engine
	gen        Generator

	mu       sync.Mutex
	opts     Options
	inFlight bool
	closed   bool

	// Pending timers for the current turn. Guarded by mu; stopped on
	// shutdown and on commit.
	thinkTimer  *time.Timer
	settleTimer *time.Timer

	notify []func(Event)
}

// NewController creates a controller over the given transcript, engine,
// and generator. The engine's reveal interval is managed by the
// controller from opts.
func NewController(transcript *model.Transcript, engine *typing.Engine, gen Generator, opts Options) *Controller {
	c := &Controller{
		transcript: transcript,
		engine:     engine,
		gen:        gen,
		opts:       opts.normalize(),
	}
	engine.SetRevealInterval(c.opts.RevealInterval)
	engine.Subscribe(c)
	return c
}

// Transcript returns the conversation transcript.
func (c *Controller) Transcript() *model.Transcript {
	return c.transcript
}

// Engine returns the typing engine, for read-only observation by views.
func (c *Controller) Engine() *typing.Engine {
	return c.engine
}

// Notify registers an observer for turn events. Observers may be called
// from timer goroutines; they must be safe for that and must not block.
func (c *Controller) Notify(fn func(Event)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notify = append(c.notify, fn)
}

// SetOptions updates the timing parameters for subsequent turns. The
// in-flight turn, if any, keeps the parameters it started with.
func (c *Controller) SetOptions(opts Options) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.opts = opts.normalize()
}

// =============================================================================
// TURN LIFECYCLE
// =============================================================================

// Submit starts a turn for the given user input.
//
// Empty or whitespace-only input is rejected with ErrEmptyInput: the
// transcript is unchanged and the engine stays idle. A submission while
// a prior turn is pending is rejected with ErrTurnInFlight.
func (c *Controller) Submit(userText string) error {
	trimmed := strings.TrimSpace(userText)
	if trimmed == "" {
		return ErrEmptyInput
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrShutdown
	}
	if c.inFlight {
		c.mu.Unlock()
		return ErrTurnInFlight
	}
	c.inFlight = true
	opts := c.opts
	c.mu.Unlock()

	userMsg := model.NewUserMessage(trimmed)
	c.transcript.Append(userMsg)
	c.emit(Event{Kind: EventUserCommitted, Message: userMsg})

	c.engine.SetRevealInterval(opts.RevealInterval)
	c.engine.StartThinking()

	delay := thinkingDelay(opts)
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrShutdown
	}
	c.thinkTimer = time.AfterFunc(delay, func() {
		c.onThinkingDone(trimmed)
	})
	c.mu.Unlock()

	return nil
}

// onThinkingDone fires when the thinking delay elapses: generate the
// reply and start the typing reveal.
func (c *Controller) onThinkingDone(input string) {
	c.mu.Lock()
	if c.closed || !c.inFlight {
		c.mu.Unlock()
		return
	}
	c.thinkTimer = nil
	c.mu.Unlock()

	reply := c.gen.Generate(input)
	c.engine.StartTyping(reply)
}

// commit finalizes the turn: append the assistant message, reset the
// engine, and release the in-flight guard. The append happens-after the
// typing-finished signal and before any subsequent turn can start.
func (c *Controller) commit(reply string) {
	c.mu.Lock()
	if c.closed || !c.inFlight {
		c.mu.Unlock()
		return
	}
	c.settleTimer = nil
	c.mu.Unlock()

	assistantMsg := model.NewAssistantMessage(reply)
	c.transcript.Append(assistantMsg)
	c.engine.Reset()

	c.mu.Lock()
	c.inFlight = false
	c.mu.Unlock()

	c.emit(Event{Kind: EventTurnCommitted, Message: assistantMsg})
}

// InFlight reports whether a turn is currently pending.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Shutdown cancels all outstanding timers and permanently disposes the
// controller. No timer may fire against the transcript afterwards. Safe
// to call multiple times.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	if c.thinkTimer != nil {
		c.thinkTimer.Stop()
		c.thinkTimer = nil
	}
	if c.settleTimer != nil {
		c.settleTimer.Stop()
		c.settleTimer = nil
	}
	c.mu.Unlock()

	c.engine.Reset()
}

// =============================================================================
// ENGINE LISTENER
// =============================================================================

// PhaseChanged implements typing.Listener.
func (c *Controller) PhaseChanged(phase typing.Phase) {
	switch phase {
	case typing.PhaseThinking:
		c.emit(Event{Kind: EventThinking})
	case typing.PhaseTyping:
		c.emit(Event{Kind: EventTyping})
	}
}

// TextRevealed implements typing.Listener.
func (c *Controller) TextRevealed(visible string) {
	c.emit(Event{Kind: EventTypingProgress, Visible: visible})
}

// TypingFinished implements typing.Listener. The commit is deferred by
// the settle delay; a zero delay commits on the next timer tick.
func (c *Controller) TypingFinished(full string) {
	c.mu.Lock()
	if c.closed || !c.inFlight {
		c.mu.Unlock()
		return
	}
	settle := c.opts.PostTypingSettle
	c.settleTimer = time.AfterFunc(settle, func() {
		c.commit(full)
	})
	c.mu.Unlock()
}

// =============================================================================
// HELPERS
// =============================================================================

// emit delivers an event to all registered observers.
func (c *Controller) emit(ev Event) {
	c.mu.Lock()
	observers := make([]func(Event), len(c.notify))
	copy(observers, c.notify)
	c.mu.Unlock()

	for _, fn := range observers {
		fn(ev)
	}
}

// thinkingDelay draws a uniform-random duration from the configured
// thinking range.
func thinkingDelay(opts Options) time.Duration {
	if opts.ThinkingDelayMax <= opts.ThinkingDelayMin {
		return opts.ThinkingDelayMin
	}
	span := opts.ThinkingDelayMax - opts.ThinkingDelayMin
	return opts.ThinkingDelayMin + time.Duration(rand.Int63n(int64(span)+1))
}
