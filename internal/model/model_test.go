// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"strings"
	"testing"
)

// =============================================================================
// MESSAGE TESTS
// =============================================================================

func TestNewUserMessage(t *testing.T) {
	msg := NewUserMessage("hello")

	if msg.Role != RoleUser {
		t.Errorf("Role = %v, want user", msg.Role)
	}
	if msg.Content != "hello" {
		t.Errorf("Content = %q, want hello", msg.Content)
	}
	if msg.IsOpen() {
		t.Error("user message should not be open")
	}
	if !strings.HasPrefix(msg.ID, "msg_") {
		t.Errorf("ID = %q, want msg_ prefix", msg.ID)
	}
}

func TestAssistantMessageStreaming(t *testing.T) {
	msg := NewAssistantMessage()

	if !msg.IsOpen() {
		t.Fatal("new assistant message should be open")
	}
	if !msg.IsEmpty() {
		t.Error("new assistant message should be empty")
	}

	msg.AppendDelta("Hel")
	msg.AppendDelta("lo")

	if got := msg.DisplayContent(); got != "Hello" {
		t.Errorf("DisplayContent while open = %q, want Hello", got)
	}
	if msg.Content != "" {
		t.Errorf("Content should stay empty until closed, got %q", msg.Content)
	}

	msg.Close()

	if msg.IsOpen() {
		t.Error("message should be closed")
	}
	if msg.Content != "Hello" {
		t.Errorf("Content after close = %q, want Hello", msg.Content)
	}

	// Appending after close is a no-op.
	msg.AppendDelta(" world")
	if msg.DisplayContent() != "Hello" {
		t.Error("append after close should be ignored")
	}
}

func TestMessageFail(t *testing.T) {
	msg := NewAssistantMessage()
	msg.AppendDelta("partial resp")
	msg.Fail("sorry")

	if msg.IsOpen() {
		t.Error("failed message should be closed")
	}
	if msg.Content != "sorry" {
		t.Errorf("Content = %q, want sorry", msg.Content)
	}
}

func TestMessagePreview(t *testing.T) {
	msg := NewUserMessage("this is a long message for preview")
	if got := msg.Preview(10); got != "this is..." {
		t.Errorf("Preview = %q", got)
	}
	if got := msg.Preview(100); got != msg.Content {
		t.Errorf("Preview short = %q", got)
	}
}

// =============================================================================
// CONVERSATION TESTS
// =============================================================================

func TestConversationOpenInvariant(t *testing.T) {
	conv := NewConversation()
	conv.AppendUser("question one")
	first := conv.OpenAssistant()

	if conv.Open() != first {
		t.Fatal("expected first assistant message to be open")
	}

	// Opening a second assistant message closes the first.
	conv.AppendUser("question two")
	second := conv.OpenAssistant()

	if first.IsOpen() {
		t.Error("first message should have been closed by second open")
	}
	if conv.Open() != second {
		t.Error("second message should be the open one")
	}
}

func TestConversationAppendDelta(t *testing.T) {
	conv := NewConversation()
	conv.AppendUser("hi")

	// No open message yet: delta is dropped.
	if conv.AppendDelta("stray") {
		t.Error("AppendDelta without open message should report false")
	}

	conv.OpenAssistant()
	if !conv.AppendDelta("Hel") || !conv.AppendDelta("lo") {
		t.Fatal("AppendDelta to open message should succeed")
	}

	conv.CloseOpen()
	if got := conv.Last().Content; got != "Hello" {
		t.Errorf("final content = %q, want Hello", got)
	}

	// Closed: further deltas dropped.
	if conv.AppendDelta("late") {
		t.Error("AppendDelta after close should report false")
	}
}

func TestConversationFailOpen(t *testing.T) {
	conv := NewConversation()
	conv.AppendUser("hi")
	conv.OpenAssistant()
	conv.AppendDelta("partial")

	conv.FailOpen("apology")

	last := conv.Last()
	if last.IsOpen() {
		t.Error("failed message should be closed")
	}
	if last.Content != "apology" {
		t.Errorf("Content = %q, want apology", last.Content)
	}
}

func TestConversationClear(t *testing.T) {
	conv := NewConversation()
	conv.AppendUser("one")
	conv.OpenAssistant()
	conv.Clear()

	if !conv.IsEmpty() {
		t.Error("conversation should be empty after Clear")
	}
	if conv.Open() != nil {
		t.Error("no message should be open after Clear")
	}
}

func TestConversationPruning(t *testing.T) {
	conv := NewConversation()
	for i := 0; i < MaxMessages+10; i++ {
		conv.AppendUser("m")
	}
	if conv.Len() != MaxMessages {
		t.Errorf("Len = %d, want %d", conv.Len(), MaxMessages)
	}
}
