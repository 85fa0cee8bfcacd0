// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for the conversation transcript.
//
// This package defines the core domain types used throughout the
// application for representing a chat conversation and its messages.
//
// # Key Types
//
//   - Transcript: Append-only ordered log of committed messages
//   - Message: Single immutable message with role, content, and timestamp
//   - Role: Message role enumeration (user, assistant, system)
//
// # Usage
//
// Create a transcript and append a message:
//
//	tr := model.NewTranscript()
//	tr.Append(model.NewUserMessage("Hello!"))
package model
