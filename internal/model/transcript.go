// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation transcript.
package model

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// TRANSCRIPT TYPE
// =============================================================================

// Transcript is the append-only ordered log of committed messages for a
// single conversation. Insertion order is chronological order. Messages are
// never mutated or removed after being appended.
//
// The controller is the sole writer; views and other observers are
// read-only. Observers registered via Subscribe are notified of every
// append before the next append is applied.
type Transcript struct {
	mu        sync.RWMutex
	id        string
	title     string
	createdAt time.Time
	updatedAt time.Time
	messages  []*Message
	observers []func(*Message)
}

// NewTranscript creates an empty transcript with a generated ID.
func NewTranscript() *Transcript {
	now := time.Now()
	return &Transcript{
		id:        "conv_" + uuid.NewString(),
		createdAt: now,
		updatedAt: now,
		messages:  make([]*Message, 0),
	}
}

// =============================================================================
// APPEND AND READ
// =============================================================================

// Append adds a message to the end of the transcript and notifies all
// current observers. O(1) amortized.
func (t *Transcript) Append(msg *Message) {
	t.mu.Lock()
	t.messages = append(t.messages, msg)
	t.updatedAt = time.Now()
	if t.title == "" && msg.Role == RoleUser {
		t.title = msg.Preview(50)
	}
	observers := make([]func(*Message), len(t.observers))
	copy(observers, t.observers)
	t.mu.Unlock()

	// Appends are serialized by the single-writer contract, so observers
	// always see them in transcript order.
	for _, notify := range observers {
		notify(msg)
	}
}

// Messages returns a snapshot of the full ordered message sequence.
// The returned slice is a copy; the messages themselves are immutable.
func (t *Transcript) Messages() []*Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// LastMessage returns the most recent message, or nil if empty.
func (t *Transcript) LastMessage() *Message {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if len(t.messages) == 0 {
		return nil
	}
	return t.messages[len(t.messages)-1]
}

// MessageCount returns the number of messages.
func (t *Transcript) MessageCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.messages)
}

// IsEmpty returns true if there are no messages.
func (t *Transcript) IsEmpty() bool {
	return t.MessageCount() == 0
}

// =============================================================================
// OBSERVERS
// =============================================================================

// Subscribe registers an observer that is called for every subsequent
// append. Observers must not call back into the transcript's write path.
func (t *Transcript) Subscribe(fn func(*Message)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.observers = append(t.observers, fn)
}

// =============================================================================
// METADATA
// =============================================================================

// ID returns the transcript's unique identifier.
func (t *Transcript) ID() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.id
}

// Title returns the transcript title, auto-derived from the first user
// message, or a default for an empty conversation.
func (t *Transcript) Title() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.title != "" {
		return t.title
	}
	return "New Conversation"
}

// CreatedAt returns the transcript creation time.
func (t *Transcript) CreatedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.createdAt
}

// UpdatedAt returns the time of the most recent append.
func (t *Transcript) UpdatedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.updatedAt
}
