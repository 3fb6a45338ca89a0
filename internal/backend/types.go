// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

// ChatMessage is the wire format for one message in a chat request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the body of POST /chat.
type chatRequest struct {
	Messages []ChatMessage `json:"messages"`
}

// statusResponse is the body of GET /model-status.
// Extra fields in the payload are ignored.
type statusResponse struct {
	Status bool `json:"status"`
}

// errorResponse is the JSON body carried by non-2xx responses.
type errorResponse struct {
	Detail string `json:"detail"`
}

// streamRecord is the JSON payload of one data record in the chat stream.
type streamRecord struct {
	Content string `json:"content"`
}
