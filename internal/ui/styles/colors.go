// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// COLOR PALETTE
// =============================================================================

// ANSI-256 palette. Chosen to degrade acceptably on 16-color terminals.
var (
	ColorPrimary   = lipgloss.Color("39")  // Cyan - headers, accents
	ColorSecondary = lipgloss.Color("213") // Pink - user accent
	ColorSuccess   = lipgloss.Color("42")  // Green - ready status
	ColorWarning   = lipgloss.Color("214") // Orange - loading status
	ColorError     = lipgloss.Color("196") // Red - error status
	ColorText      = lipgloss.Color("252") // Near-white body text
	ColorTextMuted = lipgloss.Color("241") // Gray - hints, timestamps
	ColorBorder    = lipgloss.Color("238") // Dark gray borders

	// Snake board colors.
	ColorSnakeBody = lipgloss.Color("42")
	ColorSnakeFood = lipgloss.Color("203")
)

// =============================================================================
// STATUS INDICATORS
// =============================================================================

// StatusIndicators are ASCII-safe status glyphs.
// ACCESSIBILITY: distinct shapes alongside colors for colorblind users.
var StatusIndicators = struct {
	Success string
	Error   string
	Pending string
}{
	Success: "[+]",
	Error:   "[x]",
	Pending: "[ ]",
}
