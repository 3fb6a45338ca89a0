// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package styles provides the visual styling system for the hemonchat TUI.
//
// A Theme bundles every lipgloss style the views need, built once at
// startup from the configured theme name and the terminal's detected
// color capability.
package styles
