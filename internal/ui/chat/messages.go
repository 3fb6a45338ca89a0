// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/backend"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/config"
)

// =============================================================================
// READINESS MESSAGES
// =============================================================================

// ModelStatusMsg reports the outcome of one readiness check.
// Seq identifies the timer generation that produced it; results from a
// superseded generation are dropped by Update.
type ModelStatusMsg struct {
	Seq    int
	Result backend.CheckResult
}

// StatusTickMsg fires when the scheduled re-check interval elapses.
type StatusTickMsg struct {
	Seq int
}

// =============================================================================
// STREAMING MESSAGES
// =============================================================================

// StreamCompleteMsg signals that the response stream ended.
// Err is nil on a clean finish, context.Canceled when the user
// cancelled, and a backend error otherwise.
type StreamCompleteMsg struct {
	Err error
}

// StreamTickMsg is sent at the render frame rate while a response
// streams, draining the delta buffer into the conversation.
type StreamTickMsg struct {
	Time time.Time
}

// =============================================================================
// CONFIG MESSAGES
// =============================================================================

// ConfigReloadedMsg delivers a hot-reloaded configuration.
type ConfigReloadedMsg struct {
	Config *config.Config
}
