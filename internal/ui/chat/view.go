// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/parley-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if status := m.renderActivity(); status != "" {
		b.WriteString(status)
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

// renderHeader renders the title line.
func (m *Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("parley")

	sub := m.controller.Transcript().Title()
	if sub != "" {
		maxTitle := m.width - 16
		if maxTitle < 10 {
			maxTitle = 10
		}
		sub = m.theme.StatusHint.Render("  " + util.TruncateWidth(sub, maxTitle))
	}

	return m.theme.Header.Render(title + sub)
}

// renderActivity renders the thinking indicator while a reply is being
// composed. The typing reveal itself lives inside the viewport.
func (m *Model) renderActivity() string {
	if m.state == StateThinking && m.thinking.IsActive() {
		return lipgloss.NewStyle().Padding(0, 1).Render(m.thinking.View())
	}
	return ""
}

// renderStatusBar renders key hints and the transient status message.
func (m *Model) renderStatusBar() string {
	var parts []string

	parts = append(parts,
		m.theme.StatusKey.Render("enter")+m.theme.StatusHint.Render(" send"),
		m.theme.StatusKey.Render("up/down")+m.theme.StatusHint.Render(" scroll"),
		m.theme.StatusKey.Render("esc")+m.theme.StatusHint.Render(" quit"),
	)

	bar := strings.Join(parts, m.theme.StatusHint.Render("  |  "))

	if m.statusMsg != "" {
		bar += m.theme.StatusHint.Render("  |  ") + m.theme.StatusBar.Inline(true).Render(m.statusMsg)
	}

	return m.theme.StatusBar.Render(bar)
}
