// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// =============================================================================
// MESSAGE LIST COMPONENT
// =============================================================================

// MessageList renders a transcript as labeled message blocks. Assistant
// messages can optionally be rendered as markdown via glamour.
type MessageList struct {
	Messages       []*model.Message
	Width          int
	ShowTimestamps bool
	Markdown       bool

	theme    *styles.Theme
	renderer *glamour.TermRenderer
	rendered map[string]string
}

// NewMessageList creates a new MessageList.
func NewMessageList(theme *styles.Theme) *MessageList {
	return &MessageList{
		Width:          80,
		ShowTimestamps: true,
		theme:          theme,
		rendered:       make(map[string]string),
	}
}

// SetMessages sets the messages to display.
func (ml *MessageList) SetMessages(messages []*model.Message) {
	ml.Messages = messages
}

// SetWidth sets the list width. Changing width invalidates the markdown
// render cache.
func (ml *MessageList) SetWidth(width int) {
	if width == ml.Width {
		return
	}
	ml.Width = width
	ml.renderer = nil
	ml.rendered = make(map[string]string)
}

// SetMarkdown toggles markdown rendering for assistant messages.
func (ml *MessageList) SetMarkdown(enabled bool) {
	ml.Markdown = enabled
}

// View renders all messages.
func (ml *MessageList) View() string {
	if len(ml.Messages) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Italic(true).
			Width(ml.Width).
			Align(lipgloss.Center).
			Padding(2, 0)

		return emptyStyle.Render("No messages yet. Say hello!")
	}

	blocks := make([]string, 0, len(ml.Messages))
	for _, msg := range ml.Messages {
		blocks = append(blocks, ml.renderMessage(msg))
	}

	return strings.Join(blocks, "\n")
}

// RenderTyping renders the partially revealed assistant reply with a
// trailing cursor block.
func (ml *MessageList) RenderTyping(visible string) string {
	header := ml.theme.AssistantLabel.Render(model.RoleAssistant.DisplayName())
	body := ml.theme.TypingText.Render(visible) + ml.theme.TypingCursor.Render("_")
	return header + "\n" + body
}

// renderMessage renders a single message block: label line, then body.
func (ml *MessageList) renderMessage(msg *model.Message) string {
	var label lipgloss.Style
	var body lipgloss.Style

	switch msg.Role {
	case model.RoleUser:
		label = ml.theme.UserLabel
		body = ml.theme.MessageBody
	case model.RoleAssistant:
		label = ml.theme.AssistantLabel
		body = ml.theme.MessageBody
	default:
		label = ml.theme.SystemLabel
		body = ml.theme.SystemBody
	}

	header := label.Render(msg.Role.DisplayName())
	if ml.ShowTimestamps {
		header += " " + ml.theme.Timestamp.Render(msg.Timestamp.Format("15:04"))
	}

	content := msg.Content
	if content == "" {
		content = "..."
	}

	if ml.Markdown && msg.Role == model.RoleAssistant {
		if md := ml.renderMarkdown(msg.ID, content); md != "" {
			return header + "\n" + md
		}
	}

	return header + "\n" + body.Render(content)
}

// renderMarkdown renders assistant content through glamour, caching by
// message ID. Returns "" when rendering is unavailable.
func (ml *MessageList) renderMarkdown(id, content string) string {
	if cached, ok := ml.rendered[id]; ok {
		return cached
	}

	if ml.renderer == nil {
		wrap := ml.Width
		if wrap > 100 {
			wrap = 100
		}
		if wrap < 20 {
			wrap = 20
		}
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		if err != nil {
			return ""
		}
		ml.renderer = r
	}

	out, err := ml.renderer.Render(content)
	if err != nil {
		return ""
	}
	out = strings.Trim(out, "\n")
	ml.rendered[id] = out
	return out
}
