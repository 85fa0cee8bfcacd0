// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the parley TUI.

The components are built on Bubble Tea and Lip Gloss and share a common
*styles.Theme for consistent styling.

# Core Components

ChatViewport (viewport.go) - Scrollable chat area with auto-scroll that
disengages when the user scrolls up and re-engages at the bottom. Renders
the in-progress reply as a trailing typing line.

MessageList (message.go) - Labeled message blocks for the transcript,
with optional glamour markdown rendering of assistant replies.

InputArea (input.go) - Text input with a color-coded character counter.

Spinner / ThinkingIndicator (spinner.go) - ASCII-frame spinner with an
elapsed timer, used while a reply is being composed.

# Usage

	theme := styles.NewTheme("auto")
	vp := components.NewChatViewport(theme)
	vp.SetSize(80, 24)
	vp.SetMessages(transcript.Messages())
	view := vp.View()
*/
package components
