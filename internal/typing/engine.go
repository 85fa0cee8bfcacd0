// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package typing implements the thinking/typing animation state machine.
package typing

import (
	"context"
	"sync"
	"time"
)

// DefaultRevealInterval is the delay between character reveals when no
// interval is configured (20 characters per second).
const DefaultRevealInterval = 50 * time.Millisecond

// minRevealInterval bounds how fast the reveal ticker may run.
const minRevealInterval = time.Millisecond

// =============================================================================
// PHASE TYPE
// =============================================================================

// Phase is the engine's current state. Exactly one phase holds at any
// instant.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseThinking
	PhaseTyping
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseThinking:
		return "thinking"
	case PhaseTyping:
		return "typing"
	default:
		return "unknown"
	}
}

// =============================================================================
// LISTENER INTERFACE
// =============================================================================

// Listener observes engine state changes. Every mutation is delivered to
// all current listeners before the next mutation is applied; listeners
// must not call back into the engine from the notification path.
type Listener interface {
	// PhaseChanged reports a phase transition.
	PhaseChanged(phase Phase)

	// TextRevealed reports that one more character of the pending reply
	// is visible. visible is always a prefix of the full text.
	TextRevealed(visible string)

	// TypingFinished reports, exactly once per typing session, that the
	// full text has been revealed. It fires before the transition back
	// to PhaseIdle is reported.
	TypingFinished(full string)
}

// =============================================================================
// ENGINE
// =============================================================================

// Engine simulates an assistant composing a reply: an indeterminate
// thinking pause followed by a character-by-character reveal at a fixed
// interval.
//
// Each call to StartThinking, StartTyping, or Reset begins a new session
// and cancels the previous one. Reveal ticks carry their session number
// and ticks from a superseded session never mutate state, so a stale
// timer can never append characters from an old reply onto a new one.
type Engine struct {
	mu          sync.Mutex
	phase       Phase
	fullText    []rune
	revealIndex int
	interval    time.Duration
	session     uint64
	cancel      context.CancelFunc
	listeners   []Listener
}

// NewEngine creates an idle engine with the given reveal interval.
// A non-positive interval falls back to DefaultRevealInterval.
func NewEngine(interval time.Duration) *Engine {
	return &Engine{
		phase:    PhaseIdle,
		interval: clampInterval(interval),
	}
}

// Subscribe registers a listener for engine state changes.
func (e *Engine) Subscribe(l Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// SetRevealInterval updates the reveal interval for subsequent typing
// sessions. The in-flight session, if any, keeps its original pace.
func (e *Engine) SetRevealInterval(interval time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.interval = clampInterval(interval)
}

// =============================================================================
// OBSERVABLE STATE
// =============================================================================

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// VisibleText returns the revealed prefix of the pending reply. The text
// is retained after a session finishes so views can keep rendering it
// until Reset clears the engine.
func (e *Engine) VisibleText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.fullText[:e.revealIndex])
}

// FullText returns the complete pending reply, or "" outside a session.
func (e *Engine) FullText() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return string(e.fullText)
}

// =============================================================================
// COMMANDS
// =============================================================================

// StartThinking enters the thinking phase, clearing any prior state.
// It always succeeds and has no preconditions.
func (e *Engine) StartThinking() {
	e.mu.Lock()
	e.session++
	e.cancelLocked()
	e.fullText = nil
	e.revealIndex = 0
	e.phase = PhaseThinking
	listeners := e.listenersLocked()
	e.mu.Unlock()

	for _, l := range listeners {
		l.PhaseChanged(PhaseThinking)
	}
}

// StartTyping enters the typing phase with the given reply text. Calling
// it while already typing cancels the prior reveal sequence and starts
// fresh (last writer wins). An empty text reaches TypingFinished
// immediately with zero reveal steps.
func (e *Engine) StartTyping(text string) {
	e.mu.Lock()
	e.session++
	sid := e.session
	e.cancelLocked()
	e.fullText = []rune(text)
	e.revealIndex = 0
	e.phase = PhaseTyping
	interval := e.interval
	listeners := e.listenersLocked()

	if len(e.fullText) == 0 {
		e.mu.Unlock()
		for _, l := range listeners {
			l.PhaseChanged(PhaseTyping)
		}
		e.finish(sid)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.mu.Unlock()

	for _, l := range listeners {
		l.PhaseChanged(PhaseTyping)
	}

	go e.run(ctx, sid, interval)
}

// Reset cancels any pending reveal step and returns the engine to idle
// with all text state cleared. Safe to call from any phase and
// idempotent: a second Reset produces no observable change.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.session++
	e.cancelLocked()
	changed := e.phase != PhaseIdle || len(e.fullText) > 0 || e.revealIndex != 0
	e.phase = PhaseIdle
	e.fullText = nil
	e.revealIndex = 0
	listeners := e.listenersLocked()
	e.mu.Unlock()

	if !changed {
		return
	}
	for _, l := range listeners {
		l.PhaseChanged(PhaseIdle)
	}
}

// =============================================================================
// REVEAL LOOP
// =============================================================================

// run drives the reveal ticker for one typing session. It exits when the
// session completes, is superseded, or its context is cancelled.
func (e *Engine) run(ctx context.Context, sid uint64, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !e.step(sid) {
				return
			}
		}
	}
}

// step reveals one character for the given session. Returns false when
// the session is finished or no longer current.
func (e *Engine) step(sid uint64) bool {
	e.mu.Lock()
	if e.session != sid || e.phase != PhaseTyping {
		e.mu.Unlock()
		return false
	}
	if e.revealIndex >= len(e.fullText) {
		e.mu.Unlock()
		return false
	}
	e.revealIndex++
	visible := string(e.fullText[:e.revealIndex])
	done := e.revealIndex == len(e.fullText)
	listeners := e.listenersLocked()
	e.mu.Unlock()

	for _, l := range listeners {
		l.TextRevealed(visible)
	}

	if done {
		e.finish(sid)
		return false
	}
	return true
}

// finish completes a typing session: the typing-finished signal fires
// exactly once, then the phase returns to idle. Revealed text is kept
// until Reset.
func (e *Engine) finish(sid uint64) {
	e.mu.Lock()
	if e.session != sid || e.phase != PhaseTyping {
		e.mu.Unlock()
		return
	}
	full := string(e.fullText)
	e.phase = PhaseIdle
	listeners := e.listenersLocked()
	e.mu.Unlock()

	for _, l := range listeners {
		l.TypingFinished(full)
	}
	for _, l := range listeners {
		l.PhaseChanged(PhaseIdle)
	}
}

// =============================================================================
// HELPERS
// =============================================================================

// cancelLocked cancels the current session's reveal loop. Caller must
// hold e.mu.
func (e *Engine) cancelLocked() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// listenersLocked snapshots the listener slice. Caller must hold e.mu.
func (e *Engine) listenersLocked() []Listener {
	out := make([]Listener, len(e.listeners))
	copy(out, e.listeners)
	return out
}

func clampInterval(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultRevealInterval
	}
	if d < minRevealInterval {
		return minRevealInterval
	}
	return d
}
