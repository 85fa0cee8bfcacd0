// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package chat implements the Bubble Tea chat view.

The view is a thin shell over conversation.Controller. Turn progress is
published by the controller from timer goroutines, pumped through a
buffered channel, and re-enters the update loop as ControllerEventMsg
values, so all UI state changes happen on the Bubble Tea event loop.

# Key Types

Model - the tea.Model. Owns the viewport, input area, and thinking
indicator, and maps controller events onto them.

State - StateReady, StateThinking, StateTyping. Mirrors the engine's
phase for the view's purposes.

# Usage

	m := chat.New(controller, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
*/
package chat
