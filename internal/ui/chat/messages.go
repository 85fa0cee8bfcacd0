// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the chat view component for the TUI.
//
// This file defines the Bubble Tea message types used by the chat
// interface. Turn progress arrives as ControllerEventMsg values pumped
// from the conversation controller's observer callback.
package chat

import (
	"github.com/jeranaias/parley-tui/internal/config"
	"github.com/jeranaias/parley-tui/internal/conversation"
)

// =============================================================================
// CONTROLLER MESSAGES
// =============================================================================

// ControllerEventMsg wraps one conversation event for the update loop.
type ControllerEventMsg struct {
	Event conversation.Event
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg signals that the config file changed on disk and the
// new values should be applied.
type ConfigReloadedMsg struct {
	Config *config.Config
}

// =============================================================================
// STATUS MESSAGES
// =============================================================================

// StatusMsg displays a transient line in the status bar.
type StatusMsg struct {
	Text string
}

// ClearStatusMsg clears the transient status line.
type ClearStatusMsg struct{}
