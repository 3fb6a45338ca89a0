// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the application.
// It detects the terminal's color capability and adjusts accordingly.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// HEADER STYLES
	// ==========================================================================

	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	HeaderHint  lipgloss.Style

	// ==========================================================================
	// MESSAGE BUBBLE STYLES
	// ==========================================================================

	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	SystemBubble   lipgloss.Style
	MessageBody    lipgloss.Style
	StreamCursor   lipgloss.Style

	// ==========================================================================
	// INPUT AREA STYLES
	// ==========================================================================

	InputContainer lipgloss.Style
	InputDisabled  lipgloss.Style

	// ==========================================================================
	// STATUS BAR STYLES
	// ==========================================================================

	StatusBar     lipgloss.Style
	StatusReady   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusError   lipgloss.Style
	ShortcutKey   lipgloss.Style
	ShortcutDesc  lipgloss.Style

	// ==========================================================================
	// SNAKE OVERLAY STYLES
	// ==========================================================================

	SnakeBorder lipgloss.Style
	SnakeBody   lipgloss.Style
	SnakeFood   lipgloss.Style
	SnakeScore  lipgloss.Style
	SnakeOver   lipgloss.Style
}

// NewTheme builds a theme for the given name ("dark" or "light"),
// detecting the terminal color profile via termenv.
func NewTheme(name string) *Theme {
	isDark := name != "light"
	profile := termenv.ColorProfile()

	t := &Theme{
		IsDark:       isDark,
		ColorProfile: profile,
	}

	textColor := ColorText
	if !isDark {
		textColor = lipgloss.Color("236")
	}

	t.Header = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(ColorBorder)
	t.HeaderTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
	t.HeaderHint = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	t.UserLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)
	t.AssistantLabel = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)
	t.SystemBubble = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)
	t.MessageBody = lipgloss.NewStyle().
		Foreground(textColor)
	t.StreamCursor = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Blink(true)

	t.InputContainer = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	// Same box as InputContainer so the layout holds steady when the
	// input unlocks.
	t.InputDisabled = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Foreground(ColorTextMuted).
		Italic(true)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(ColorTextMuted)
	t.StatusReady = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSuccess)
	t.StatusLoading = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorWarning)
	t.StatusError = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorError)
	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(textColor)
	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	t.SnakeBorder = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)
	t.SnakeBody = lipgloss.NewStyle().
		Foreground(ColorSnakeBody)
	t.SnakeFood = lipgloss.NewStyle().
		Foreground(ColorSnakeFood).
		Bold(true)
	t.SnakeScore = lipgloss.NewStyle().
		Foreground(ColorTextMuted)
	t.SnakeOver = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorError)

	return t
}

// StatusStyle returns the style matching a readiness state string
// ("ready", "loading", "error").
func (t *Theme) StatusStyle(status string) lipgloss.Style {
	switch status {
	case "ready":
		return t.StatusReady
	case "error":
		return t.StatusError
	default:
		return t.StatusLoading
	}
}
