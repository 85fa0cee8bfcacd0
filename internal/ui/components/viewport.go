// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jeranaias/parley-tui/internal/model"
	"github.com/jeranaias/parley-tui/internal/ui/styles"
)

// =============================================================================
// CHAT VIEWPORT COMPONENT - Scrollable chat area with indicators
// =============================================================================

// ChatViewport is a scrollable chat area. While a reply is being revealed
// it renders the partial text as a trailing pseudo-message; once the turn
// commits the partial line is replaced by the real message.
type ChatViewport struct {
	viewport    viewport.Model
	messages    []*model.Message
	typingText  string
	showTyping  bool
	width       int
	height      int
	ready       bool
	autoScroll  bool
	theme       *styles.Theme
	messageList *MessageList

	scrollY    int
	maxScrollY int
}

// NewChatViewport creates a new ChatViewport.
func NewChatViewport(theme *styles.Theme) *ChatViewport {
	vp := viewport.New(80, 20)
	vp.Style = lipgloss.NewStyle()

	return &ChatViewport{
		viewport:    vp,
		width:       80,
		height:      20,
		autoScroll:  true,
		theme:       theme,
		messageList: NewMessageList(theme),
	}
}

// SetSize updates the viewport dimensions.
func (cv *ChatViewport) SetSize(width, height int) {
	cv.width = width
	cv.height = height
	cv.viewport.Width = width - 2
	cv.viewport.Height = height
	cv.messageList.SetWidth(width - 4)
	cv.ready = true

	cv.updateContent()
}

// SetMessages replaces the displayed transcript.
func (cv *ChatViewport) SetMessages(messages []*model.Message) {
	cv.messages = messages
	cv.messageList.SetMessages(messages)
	cv.updateContent()

	if cv.autoScroll {
		cv.ScrollToBottom()
	}
}

// SetMarkdown toggles markdown rendering for assistant messages.
func (cv *ChatViewport) SetMarkdown(enabled bool) {
	cv.messageList.SetMarkdown(enabled)
	cv.updateContent()
}

// SetTypingText shows the partially revealed reply below the transcript.
func (cv *ChatViewport) SetTypingText(visible string) {
	cv.typingText = visible
	cv.showTyping = true
	cv.updateContent()

	if cv.autoScroll {
		cv.ScrollToBottom()
	}
}

// ClearTyping removes the partial reply line.
func (cv *ChatViewport) ClearTyping() {
	cv.typingText = ""
	cv.showTyping = false
	cv.updateContent()
}

// updateContent re-renders the message content and updates scroll tracking.
func (cv *ChatViewport) updateContent() {
	content := cv.messageList.View()
	if cv.showTyping {
		partial := cv.messageList.RenderTyping(cv.typingText)
		if content != "" {
			content += "\n"
		}
		content += partial
	}

	wrapped := wrapContentForViewport(content, cv.width-2)
	cv.viewport.SetContent(wrapped)

	lines := strings.Count(wrapped, "\n") + 1
	cv.maxScrollY = maxInt(0, lines-cv.height)

	cv.scrollY = cv.viewport.YOffset
	if cv.scrollY > cv.maxScrollY {
		cv.scrollY = cv.maxScrollY
	}
	if cv.scrollY < 0 {
		cv.scrollY = 0
	}
}

// ScrollToBottom scrolls to the bottom and re-engages auto-scroll.
func (cv *ChatViewport) ScrollToBottom() {
	cv.viewport.GotoBottom()
	cv.scrollY = cv.maxScrollY
	cv.autoScroll = true
}

// ScrollToTop scrolls to the top and disengages auto-scroll.
func (cv *ChatViewport) ScrollToTop() {
	cv.viewport.GotoTop()
	cv.scrollY = 0
	cv.autoScroll = false
}

// ScrollUp scrolls up by the given number of lines. Manual upward
// scrolling disengages auto-scroll until the user returns to the bottom.
func (cv *ChatViewport) ScrollUp(lines int) {
	cv.autoScroll = false
	cv.scrollY = maxInt(0, cv.scrollY-lines)
	cv.viewport.SetYOffset(cv.scrollY)
}

// ScrollDown scrolls down by the given number of lines, re-engaging
// auto-scroll when the bottom is reached.
func (cv *ChatViewport) ScrollDown(lines int) {
	cv.scrollY = minInt(cv.maxScrollY, cv.scrollY+lines)
	cv.viewport.SetYOffset(cv.scrollY)

	if cv.scrollY >= cv.maxScrollY {
		cv.autoScroll = true
	}
}

// AtTop returns true if the viewport is at the top.
func (cv *ChatViewport) AtTop() bool {
	return cv.viewport.AtTop()
}

// AtBottom returns true if the viewport is at the bottom.
func (cv *ChatViewport) AtBottom() bool {
	return cv.viewport.AtBottom()
}

// AutoScroll reports whether auto-scroll is currently engaged.
func (cv *ChatViewport) AutoScroll() bool {
	return cv.autoScroll
}

// Update handles viewport updates with scroll tracking.
func (cv *ChatViewport) Update(msg tea.Msg) (*ChatViewport, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			cv.ScrollUp(1)
			return cv, nil
		case "down":
			cv.ScrollDown(1)
			return cv, nil
		case "pgup":
			cv.ScrollUp(cv.height)
			return cv, nil
		case "pgdn", "pgdown":
			cv.ScrollDown(cv.height)
			return cv, nil
		case "home":
			cv.ScrollToTop()
			return cv, nil
		case "end":
			cv.ScrollToBottom()
			return cv, nil
		}

	case tea.MouseMsg:
		switch msg.Type {
		case tea.MouseWheelUp:
			cv.ScrollUp(3)
			return cv, nil
		case tea.MouseWheelDown:
			cv.ScrollDown(3)
			return cv, nil
		}
	}

	cv.viewport, cmd = cv.viewport.Update(msg)
	cv.scrollY = cv.viewport.YOffset

	return cv, cmd
}

// View renders the viewport with scroll indicators.
func (cv *ChatViewport) View() string {
	if !cv.ready {
		return ""
	}

	var result strings.Builder

	if top := cv.renderTopIndicator(); top != "" {
		result.WriteString(top)
		result.WriteString("\n")
	}

	result.WriteString(cv.viewport.View())

	if bottom := cv.renderBottomIndicator(); bottom != "" {
		result.WriteString("\n")
		result.WriteString(bottom)
	}

	return result.String()
}

// ==========================================================================
// SCROLL INDICATORS
// ==========================================================================

// renderTopIndicator renders the "more above" indicator.
func (cv *ChatViewport) renderTopIndicator() string {
	if cv.AtTop() {
		return ""
	}

	indicatorStyle := lipgloss.NewStyle().
		Width(cv.width).
		Align(lipgloss.Center)

	arrowStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan)

	textStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	indicator := arrowStyle.Render("^") + " " +
		textStyle.Render("scroll up for more") + " " +
		arrowStyle.Render("^")

	return indicatorStyle.Render(indicator)
}

// renderBottomIndicator renders the "more below" indicator with position.
func (cv *ChatViewport) renderBottomIndicator() string {
	if cv.AtBottom() {
		return ""
	}

	indicatorStyle := lipgloss.NewStyle().
		Width(cv.width).
		Align(lipgloss.Center)

	arrowStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan)

	textStyle := lipgloss.NewStyle().
		Foreground(styles.TextMuted).
		Italic(true)

	posStyle := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Bold(true)

	scrollPos := ""
	if cv.maxScrollY > 0 {
		scrollPos = posStyle.Render(fmt.Sprintf(" [%d/%d] ", cv.scrollY+1, cv.maxScrollY+1))
	}

	indicator := arrowStyle.Render("v") + scrollPos +
		textStyle.Render("scroll down for more") + " " +
		arrowStyle.Render("v")

	return indicatorStyle.Render(indicator)
}

// =============================================================================
// CONTENT WRAPPING WITH RUNEWIDTH SUPPORT
// =============================================================================

// wrapContentForViewport wraps content to fit within the specified width,
// using go-runewidth so wide characters and emoji are measured correctly.
func wrapContentForViewport(content string, width int) string {
	if width <= 0 {
		return content
	}

	var wrapped strings.Builder
	for _, line := range strings.Split(content, "\n") {
		if wrapped.Len() > 0 {
			wrapped.WriteByte('\n')
		}
		if runewidth.StringWidth(line) <= width {
			wrapped.WriteString(line)
			continue
		}
		wrapped.WriteString(wordWrapWithRunewidth(line, width))
	}

	return wrapped.String()
}

// wordWrapWithRunewidth wraps a single line to the specified width,
// breaking at word boundaries when possible.
func wordWrapWithRunewidth(line string, width int) string {
	if width <= 0 {
		return line
	}

	var result strings.Builder
	var current strings.Builder
	currentWidth := 0

	flush := func() {
		if result.Len() > 0 {
			result.WriteByte('\n')
		}
		result.WriteString(strings.TrimRight(current.String(), " "))
		current.Reset()
		currentWidth = 0
	}

	for _, word := range strings.Split(line, " ") {
		wordWidth := runewidth.StringWidth(word)

		// Word alone exceeds the width: hard-break it by runes.
		if wordWidth > width {
			if currentWidth > 0 {
				flush()
			}
			for _, r := range word {
				rw := runewidth.RuneWidth(r)
				if currentWidth+rw > width {
					flush()
				}
				current.WriteRune(r)
				currentWidth += rw
			}
			current.WriteByte(' ')
			currentWidth++
			continue
		}

		sep := 0
		if currentWidth > 0 {
			sep = 1
		}
		if currentWidth+sep+wordWidth > width {
			flush()
		}
		if currentWidth > 0 {
			current.WriteByte(' ')
			currentWidth++
		}
		current.WriteString(word)
		currentWidth += wordWidth
	}

	if current.Len() > 0 {
		flush()
	}

	return result.String()
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
