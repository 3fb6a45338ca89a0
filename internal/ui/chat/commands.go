// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/backend"
)

// =============================================================================
// COMMAND CREATORS
// =============================================================================

// checkStatusTimeout bounds a single readiness probe. The client has
// its own request timeout; this is a belt for a misconfigured one.
const checkStatusTimeout = 30 * time.Second

// checkStatusCmd runs one readiness check and reports the result
// tagged with its timer generation.
func checkStatusCmd(poller *backend.StatusPoller, seq int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), checkStatusTimeout)
		defer cancel()

		return ModelStatusMsg{Seq: seq, Result: poller.Check(ctx)}
	}
}

// scheduleStatusCheck arms the single pending re-check timer.
func scheduleStatusCheck(interval time.Duration, seq int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return StatusTickMsg{Seq: seq}
	})
}

// startStreamCmd runs the chat stream in its own goroutine. Deltas go
// into the buffer as they arrive; the update loop drains them on
// stream ticks. The command resolves with the terminal outcome.
func startStreamCmd(ctx context.Context, client *backend.Client, messages []backend.ChatMessage, buf *StreamingBuffer) tea.Cmd {
	return func() tea.Msg {
		err := client.ChatStream(ctx, messages, func(delta string) {
			buf.Write(delta)
		})
		return StreamCompleteMsg{Err: err}
	}
}
