// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/backend"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/styles"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/util"
)

// =============================================================================
// STATUS BAR COMPONENT
// =============================================================================

// StatusBar is the bottom status bar: model readiness on the left,
// backend host in the middle, key hints on the right.
type StatusBar struct {
	ModelStatus backend.ModelStatus
	Streaming   bool
	BackendHost string
	Width       int
}

// statusIcon returns the ASCII indicator for the current readiness state.
func (b StatusBar) statusIcon() string {
	switch {
	case b.Streaming:
		return "~"
	case b.ModelStatus == backend.StatusReady:
		return styles.StatusIndicators.Success
	case b.ModelStatus == backend.StatusError:
		return styles.StatusIndicators.Error
	default:
		return styles.StatusIndicators.Pending
	}
}

// statusText returns the readable state label.
func (b StatusBar) statusText() string {
	if b.Streaming {
		return "streaming"
	}
	return b.ModelStatus.String()
}

// Render draws the status bar at the given theme and width.
func (b StatusBar) Render(theme *styles.Theme) string {
	status := theme.StatusStyle(b.ModelStatus.String()).
		Render(b.statusIcon() + " " + b.statusText())

	host := theme.StatusBar.Render(util.TruncateWidth(b.BackendHost, 40))

	hints := []string{
		theme.ShortcutKey.Render("Enter") + theme.ShortcutDesc.Render(" send"),
		theme.ShortcutKey.Render("C-l") + theme.ShortcutDesc.Render(" clear"),
		theme.ShortcutKey.Render("C-c") + theme.ShortcutDesc.Render(" quit"),
	}
	right := strings.Join(hints, theme.ShortcutDesc.Render("  "))

	left := status + theme.StatusBar.Render("  ") + host

	gap := b.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
