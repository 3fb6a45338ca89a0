// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements the non-TUI command surface.
//
// Commands mirror the TUI's capabilities for scripted and quick use:
//
//	hemonchat              start the TUI (default)
//	hemonchat ask "..."    one question, streamed to stdout
//	hemonchat chat         line-based REPL
//	hemonchat status       one-shot model readiness check
//	hemonchat config       show or edit configuration
//
// Parsing is hand-rolled: the flag surface is small and stable, and
// subcommand help reads better when the usage text is written by hand.
package cli
