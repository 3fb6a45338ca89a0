// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/google/uuid"
)

// MaxMessages is the maximum number of messages to keep in a conversation.
// When exceeded, the oldest closed messages are pruned to prevent
// unbounded memory growth over a long session.
const MaxMessages = 1000

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation holds the in-memory message sequence for one session.
// It is the single source of truth for the transcript: streamed deltas
// are always applied through the conversation, never to a copied slice,
// so every delta sees the latest in-flight state.
//
// Conversation is not safe for concurrent use. All mutation happens on
// the UI update loop; streaming goroutines hand deltas to that loop.
type Conversation struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Messages  []*Message `json:"messages"`
}

// NewConversation creates an empty conversation with a generated ID.
func NewConversation() *Conversation {
	return &Conversation{
		ID:        "conv_" + uuid.NewString(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Messages:  make([]*Message, 0),
	}
}

// =============================================================================
// MESSAGE MANAGEMENT
// =============================================================================

// AppendUser appends a user message and returns it.
func (c *Conversation) AppendUser(content string) *Message {
	msg := NewUserMessage(content)
	c.append(msg)
	return msg
}

// AppendSystem appends a system message and returns it.
func (c *Conversation) AppendSystem(content string) *Message {
	msg := NewSystemMessage(content)
	c.append(msg)
	return msg
}

// OpenAssistant appends an empty assistant message in the streaming state
// and returns it. Any previously open message is closed first, so at most
// one assistant message is ever open.
func (c *Conversation) OpenAssistant() *Message {
	if open := c.Open(); open != nil {
		open.Close()
	}
	msg := NewAssistantMessage()
	c.append(msg)
	return msg
}

// Open returns the currently open assistant message, or nil. Only the
// most recently appended message can be open.
func (c *Conversation) Open() *Message {
	last := c.Last()
	if last != nil && last.IsOpen() {
		return last
	}
	return nil
}

// AppendDelta applies a streamed content fragment to the open assistant
// message. Deltas arriving after the message closed (a late flush from a
// failed stream) are dropped.
func (c *Conversation) AppendDelta(delta string) bool {
	open := c.Open()
	if open == nil {
		return false
	}
	open.AppendDelta(delta)
	c.UpdatedAt = time.Now()
	return true
}

// CloseOpen finalizes the open assistant message, if any.
func (c *Conversation) CloseOpen() {
	if open := c.Open(); open != nil {
		open.Close()
		c.UpdatedAt = time.Now()
	}
}

// FailOpen replaces the open assistant message's content with the given
// text and closes it. Used when the stream dies before completion.
func (c *Conversation) FailOpen(replacement string) {
	if open := c.Open(); open != nil {
		open.Fail(replacement)
		c.UpdatedAt = time.Now()
	}
}

// Last returns the most recent message, or nil if empty.
func (c *Conversation) Last() *Message {
	if len(c.Messages) == 0 {
		return nil
	}
	return c.Messages[len(c.Messages)-1]
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	return len(c.Messages)
}

// IsEmpty returns true if the conversation has no messages.
func (c *Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Clear resets the conversation to an empty message list.
func (c *Conversation) Clear() {
	c.Messages = c.Messages[:0]
	c.UpdatedAt = time.Now()
}

// append adds a message and prunes history beyond MaxMessages.
func (c *Conversation) append(msg *Message) {
	c.Messages = append(c.Messages, msg)
	c.UpdatedAt = time.Now()

	if len(c.Messages) > MaxMessages {
		c.Messages = c.Messages[len(c.Messages)-MaxMessages:]
	}
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) *Message {
	return NewMessage(RoleSystem, content)
}
