// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package backend provides the HTTP client for the hemonchat API.
//
// The backend exposes two endpoints this client consumes:
//
//   - GET  {base}/model-status — JSON {"status": bool}; true means the
//     hosted model finished warming up and is ready for chat.
//   - POST {base}/chat — body {"messages": [{role, content}...]};
//     response is a chunked text stream of blank-line-delimited records,
//     each data record carrying a "data: " prefix and a JSON object with
//     a "content" delta. Non-2xx responses carry JSON {"detail": string}.
//
// # Key Types
//
//   - Client: HTTP client for both endpoints
//   - Assembler: reassembles content deltas from the chunked record feed
//   - StatusPoller: readiness state machine with a fixed re-check cadence
//
// # Streaming
//
//	client := backend.NewClient(nil)
//	err := client.ChatStream(ctx, messages, func(delta string) {
//	    fmt.Print(delta)
//	})
//
// Deltas are delivered strictly in arrival order; the callback runs on
// the goroutine driving the stream, one chunk at a time.
package backend
