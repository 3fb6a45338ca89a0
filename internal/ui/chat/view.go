// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/backend"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/model"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/components"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// View renders the complete chat layout:
// header (2 lines) + transcript viewport + input (3 lines) + status (1 line).
// Heights must add up to m.height; handleResize sizes the viewport to
// the remainder.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.renderHeader()

	var body string
	if m.snakeActive {
		body = lipgloss.Place(
			m.width, m.viewport.Height,
			lipgloss.Center, lipgloss.Center,
			m.snake.View(),
		)
	} else {
		body = m.viewport.View()
	}

	input := m.renderInput()

	status := components.StatusBar{
		ModelStatus: m.status,
		Streaming:   m.streaming,
		BackendHost: m.client.BaseURL(),
		Width:       m.width,
	}.Render(m.theme)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, input, status)
}

// renderHeader draws the one-line title bar plus a separator line.
func (m Model) renderHeader() string {
	title := m.theme.HeaderTitle.Render("hemonchat")

	var hint string
	switch {
	case m.snakeActive:
		hint = m.theme.HeaderHint.Render("snake: arrows steer, Tab returns to chat")
	case m.status != backend.StatusReady && m.snakeEnabled:
		hint = m.theme.HeaderHint.Render("Tab: snake while you wait")
	}

	line := title
	if hint != "" {
		line += "  " + hint
	}
	return m.theme.Header.Width(m.width).Render(line)
}

// renderInput draws the input box, or the warm-up notice while the
// model is not ready.
func (m Model) renderInput() string {
	width := m.width - 2

	if m.status != backend.StatusReady {
		notice := m.spin.View()
		if notice == "" {
			notice = "Waiting for the model to load..."
		}
		if m.status == backend.StatusError {
			notice += m.theme.HeaderHint.Render("  (C-r to re-check now)")
		}
		return m.theme.InputDisabled.Width(width).Render(notice)
	}

	if m.streaming {
		return m.theme.InputDisabled.Width(width).Render(m.spin.View())
	}

	return m.theme.InputContainer.Width(width).Render(m.input.View())
}

// =============================================================================
// TRANSCRIPT
// =============================================================================

// refreshViewport re-renders the transcript and pins the view to the
// bottom so streaming output stays visible.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	if m.conversation.IsEmpty() {
		return components.WelcomeBanner(m.theme, m.width, m.status == backend.StatusReady)
	}

	parts := make([]string, 0, m.conversation.Len())
	for _, msg := range m.conversation.Messages {
		parts = append(parts, m.renderMessage(msg))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderMessage(msg *model.Message) string {
	switch msg.Role {
	case model.RoleUser:
		label := m.theme.UserLabel.Render(msg.Role.DisplayName())
		return label + "\n" + m.theme.MessageBody.Render(msg.Content)

	case model.RoleAssistant:
		label := m.theme.AssistantLabel.Render(msg.Role.DisplayName())
		if msg.IsOpen() {
			// The in-flight message skips the markdown pass; fenced
			// code still gets highlighted.
			body := components.HighlightFences(msg.DisplayContent())
			return label + "\n" + body + m.theme.StreamCursor.Render("|")
		}
		return label + "\n" + m.renderMarkdown(msg.Content)

	case model.RoleSystem:
		return m.theme.SystemBubble.Render(msg.Content)

	default:
		return msg.Content
	}
}

// renderMarkdown renders a finalized assistant message through
// glamour, falling back to the raw text when rendering fails.
func (m Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return m.theme.MessageBody.Render(content)
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return m.theme.MessageBody.Render(content)
	}
	return strings.TrimRight(out, "\n")
}
