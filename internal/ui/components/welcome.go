// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/styles"
)

// WelcomeBanner renders the empty-transcript greeting.
func WelcomeBanner(theme *styles.Theme, width int, ready bool) string {
	title := theme.HeaderTitle.Render("hemonchat")
	var lines []string
	lines = append(lines, title)
	lines = append(lines, "")

	if ready {
		lines = append(lines,
			theme.HeaderHint.Render("The model is ready. Type a question and press Enter."))
	} else {
		lines = append(lines,
			theme.HeaderHint.Render("The model is warming up; chat unlocks when it's ready."),
			theme.HeaderHint.Render("Press Tab to pass the time with a round of snake."))
	}

	banner := strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Render(banner)
}
