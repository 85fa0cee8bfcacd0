// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package respond provides the scripted keyword-matching reply generator.
package respond

import "strings"

// =============================================================================
// SCRIPTED GENERATOR
// =============================================================================

// rule maps a set of trigger keywords to a canned reply. The first rule
// with a matching keyword wins, so order matters.
type rule struct {
	keywords []string
	reply    string
}

// Scripted generates replies by case-insensitive substring matching
// against a fixed keyword table, with a generic fallback. Generation is
// pure, synchronous, and deterministic per input, and never returns an
// empty reply.
type Scripted struct {
	rules    []rule
	fallback string
}

// NewScripted creates a generator with the default keyword table.
func NewScripted() *Scripted {
	return &Scripted{
		rules: []rule{
			{
				keywords: []string{"hello", "hi", "hey", "good morning", "good evening"},
				reply:    "Hello! It's nice to hear from you. What's on your mind today?",
			},
			{
				keywords: []string{"weather"},
				reply: "I don't have a window to look out of, but I hear it's a fine day " +
					"to be a terminal application. If you need a real forecast, a weather " +
					"service will know better than I do.",
			},
			{
				keywords: []string{"time", "clock"},
				reply: "Time flies when you're chatting in a terminal. Your system clock " +
					"is the authority here - try the status bar.",
			},
			{
				keywords: []string{"your name", "who are you", "what are you"},
				reply: "I'm Parley, a scripted conversation partner. No network, no " +
					"neural net - just keywords and good intentions.",
			},
			{
				keywords: []string{"help", "what can you do"},
				reply: "I can chat about a few fixed topics: greetings, the weather, " +
					"the time, jokes, and myself. Type anything and I'll do my best.",
			},
			{
				keywords: []string{"joke", "funny"},
				reply: "Why do programmers prefer dark mode? Because light attracts " +
					"bugs.",
			},
			{
				keywords: []string{"thank", "thanks"},
				reply:    "You're very welcome. Anything else I can pretend to know?",
			},
			{
				keywords: []string{"bye", "goodbye", "see you", "farewell"},
				reply:    "Goodbye! It was a pleasure. Come back any time.",
			},
		},
		fallback: "That's interesting. I'm only a scripted assistant, so I don't have " +
			"much to say about that - but I'm happy to keep you company.",
	}
}

// Generate returns the reply for the first rule whose keyword appears in
// the input, or the fallback reply when nothing matches.
func (s *Scripted) Generate(input string) string {
	lowered := strings.ToLower(input)
	for _, r := range s.rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.reply
			}
		}
	}
	return s.fallback
}
