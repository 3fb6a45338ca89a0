// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/styles"
)

// Shared lipgloss styles for CLI output. Kept minimal; most output is
// plain text so it pipes cleanly.
var (
	promptStyle  = lipgloss.NewStyle().Foreground(styles.ColorPrimary).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(styles.ColorError).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(styles.ColorWarning)
	successStyle = lipgloss.NewStyle().Foreground(styles.ColorSuccess)
	mutedStyle   = lipgloss.NewStyle().Foreground(styles.ColorTextMuted)
)
