// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the hemonchat client.
//
// It contains rune- and width-aware string truncation used by the TUI
// transcript and status bar, and an atomic file writer used by the
// config package.
package util
