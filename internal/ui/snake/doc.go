// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package snake implements the warm-up minigame overlay.
//
// The game is purely decorative: a fixed-tick snake on a small grid,
// reset to a fresh board every time the overlay opens. Nothing is
// persisted between rounds or sessions.
package snake
