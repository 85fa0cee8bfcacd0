// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package typing implements the thinking/typing animation state machine.
//
// The Engine moves through three mutually exclusive phases:
//
//	idle -> thinking -> typing -> (typing finished) -> idle
//
// During typing, one character of the pending reply is revealed per tick
// at a fixed interval. The revealed text is always a strictly growing
// prefix of the full reply, and a completion signal fires exactly once
// per session when the last character is revealed.
//
// Superseding a session (StartTyping while typing, Reset, StartThinking)
// cancels its reveal timer; a stale tick never mutates engine state.
package typing
