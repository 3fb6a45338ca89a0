// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// ROLE TYPE
// =============================================================================

// Role represents the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// DisplayName returns a human-readable name for the role.
func (r Role) DisplayName() string {
	switch r {
	case RoleUser:
		return "You"
	case RoleAssistant:
		return "Assistant"
	case RoleSystem:
		return "System"
	default:
		return string(r)
	}
}

// =============================================================================
// MESSAGE TYPE
// =============================================================================

// Message represents a single message in a conversation.
type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Timestamp time.Time `json:"timestamp"`

	Content string `json:"content"`

	// Streaming state. While open, deltas accumulate in streamContent and
	// are merged into Content when the message closes.
	// PERFORMANCE: strings.Builder avoids quadratic allocations
	open          bool
	streamContent strings.Builder
}

// NewMessage creates a new message with a generated ID.
func NewMessage(role Role, content string) *Message {
	return &Message{
		ID:        generateID(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	}
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) *Message {
	return NewMessage(RoleUser, content)
}

// NewAssistantMessage creates a new empty assistant message in the open
// (streaming) state.
func NewAssistantMessage() *Message {
	return &Message{
		ID:        generateID(),
		Role:      RoleAssistant,
		Timestamp: time.Now(),
		open:      true,
	}
}

// =============================================================================
// MESSAGE METHODS
// =============================================================================

// IsOpen reports whether the message is still receiving streamed deltas.
func (m *Message) IsOpen() bool {
	return m.open
}

// AppendDelta appends a streamed content fragment to an open message.
// Appending to a closed message is a no-op.
func (m *Message) AppendDelta(delta string) {
	if m.open {
		m.streamContent.WriteString(delta)
	}
}

// Close merges streamed content into Content and closes the message.
func (m *Message) Close() {
	if !m.open {
		return
	}
	m.Content = m.streamContent.String()
	m.streamContent.Reset()
	m.open = false
}

// Fail discards any streamed content, replaces it with the given text,
// and closes the message. Used when a stream dies mid-response.
func (m *Message) Fail(replacement string) {
	m.streamContent.Reset()
	m.Content = replacement
	m.open = false
}

// DisplayContent returns the content to render, whether the message is
// still streaming or already closed.
func (m *Message) DisplayContent() string {
	if m.open {
		return m.streamContent.String()
	}
	return m.Content
}

// IsEmpty returns true if the message has no content yet.
func (m *Message) IsEmpty() bool {
	return len(m.Content) == 0 && m.streamContent.Len() == 0
}

// Preview returns a truncated single-line preview of the message.
func (m *Message) Preview(maxLen int) string {
	content := m.DisplayContent()
	runes := []rune(content)
	if len(runes) <= maxLen {
		return content
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// generateID creates a unique message ID.
func generateID() string {
	return "msg_" + uuid.NewString()
}
