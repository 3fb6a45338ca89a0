// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat implements the Bubble Tea chat view.
//
// The view owns the conversation, the readiness poller, and the
// streaming pipeline. All state mutation happens inside Update, so
// deltas and status transitions always apply to the latest state:
//
//   - Readiness: checks run as commands; results carry a generation
//     number so a superseded timer chain is ignored, keeping exactly
//     one pending re-check alive.
//   - Streaming: the backend goroutine writes deltas into a batching
//     buffer; a frame tick flushes the buffer into the open assistant
//     message at a capped rate.
//
// Input stays disabled until the model reports ready. While the model
// warms up, a snake minigame can be toggled over the transcript.
package chat
