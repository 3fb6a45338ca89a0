// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/backend"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/config"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/model"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/snake"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	client := backend.NewClient(backend.DefaultConfig())
	return New(client, config.DefaultConfig())
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	got, cmd := m.Update(msg)
	next, ok := got.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want chat.Model", got)
	}
	return next, cmd
}

// =============================================================================
// READINESS
// =============================================================================

func TestStatusReadyIsTerminal(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, ModelStatusMsg{
		Seq:    0,
		Result: backend.CheckResult{Status: backend.StatusReady, Performed: true},
	})

	if m.status != backend.StatusReady {
		t.Errorf("status = %v, want ready", m.status)
	}
	if cmd != nil {
		t.Error("ready must not schedule another check")
	}
}

func TestStatusLoadingSchedulesRecheck(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, ModelStatusMsg{
		Seq:    0,
		Result: backend.CheckResult{Status: backend.StatusLoading, Performed: true, Reschedule: true},
	})

	if m.status != backend.StatusLoading {
		t.Errorf("status = %v, want loading", m.status)
	}
	if cmd == nil {
		t.Error("loading must keep one re-check pending")
	}
}

func TestStaleStatusResultIgnored(t *testing.T) {
	m := newTestModel(t)
	m.pollSeq = 2

	m, cmd := update(t, m, ModelStatusMsg{
		Seq:    1,
		Result: backend.CheckResult{Status: backend.StatusError, Performed: true, Reschedule: true},
	})

	if m.status != backend.StatusLoading {
		t.Errorf("stale result changed status to %v", m.status)
	}
	if cmd != nil {
		t.Error("stale result must not schedule anything")
	}
}

func TestStaleStatusTickIgnored(t *testing.T) {
	m := newTestModel(t)
	m.pollSeq = 3

	_, cmd := update(t, m, StatusTickMsg{Seq: 2})
	if cmd != nil {
		t.Error("a superseded timer tick must not trigger a check")
	}
}

func TestRetryReplacesTimerGeneration(t *testing.T) {
	m := newTestModel(t)
	m.status = backend.StatusError

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.pollSeq != 1 {
		t.Errorf("pollSeq = %d, want 1", m.pollSeq)
	}
	if cmd == nil {
		t.Error("retry should issue an immediate check")
	}

	// The old generation's tick is now a no-op.
	_, cmd = update(t, m, StatusTickMsg{Seq: 0})
	if cmd != nil {
		t.Error("old generation must be dead after retry")
	}
}

func TestRetryIgnoredOnceReady(t *testing.T) {
	m := newTestModel(t)
	m.status = backend.StatusReady

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if m.pollSeq != 0 || cmd != nil {
		t.Error("retry is pointless once ready")
	}
}

// =============================================================================
// SUBMISSION
// =============================================================================

func TestSubmitGatedUntilReady(t *testing.T) {
	m := newTestModel(t)
	m.input.SetValue("hello?")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.conversation.IsEmpty() {
		t.Error("submit before ready must not touch the conversation")
	}
	if m.streaming || cmd != nil {
		t.Error("submit before ready must not start a stream")
	}
}

func TestSubmitStartsStream(t *testing.T) {
	m := newTestModel(t)
	m.status = backend.StatusReady
	m.input.SetValue("  what is lipgloss?  ")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.conversation.Len() != 2 {
		t.Fatalf("conversation length = %d, want user + open assistant", m.conversation.Len())
	}
	if got := m.conversation.Messages[0].Content; got != "what is lipgloss?" {
		t.Errorf("user content = %q, want trimmed text", got)
	}
	if open := m.conversation.Open(); open == nil {
		t.Error("submit must open an assistant message")
	}
	if !m.streaming {
		t.Error("model should be streaming after submit")
	}
	if cmd == nil {
		t.Error("submit should return the stream commands")
	}
	if m.input.Value() != "" {
		t.Error("input should be cleared on submit")
	}
}

func TestEmptySubmitIgnored(t *testing.T) {
	m := newTestModel(t)
	m.status = backend.StatusReady
	m.input.SetValue("   ")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.conversation.IsEmpty() {
		t.Error("whitespace-only submit must be ignored")
	}
}

func TestSubmitBlockedWhileStreaming(t *testing.T) {
	m := newTestModel(t)
	m.status = backend.StatusReady
	m.streaming = true
	m.input.SetValue("second question")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.conversation.IsEmpty() {
		t.Error("submit during an active stream must be ignored")
	}
}

// =============================================================================
// STREAM LIFECYCLE
// =============================================================================

// startStream puts the model into a mid-stream state without touching
// the network.
func startStream(m Model) Model {
	m.status = backend.StatusReady
	m.conversation.AppendUser("question")
	m.conversation.OpenAssistant()
	m.streamBuf.Reset()
	m.streaming = true
	m.cancelStream = func() {}
	return m
}

func TestStreamTickAppliesBufferedDeltas(t *testing.T) {
	m := startStream(newTestModel(t))
	m.streamBuf.Write("partial ")
	m.streamBuf.Write("answer")
	time.Sleep(40 * time.Millisecond) // pass the frame interval

	m, cmd := update(t, m, StreamTickMsg{Time: time.Now()})

	open := m.conversation.Open()
	if open == nil {
		t.Fatal("message should still be open mid-stream")
	}
	if got := open.DisplayContent(); got != "partial answer" {
		t.Errorf("streamed content = %q, want %q", got, "partial answer")
	}
	if cmd == nil {
		t.Error("mid-stream tick should schedule the next frame")
	}
}

func TestStreamTickAfterCompletionStops(t *testing.T) {
	m := newTestModel(t)

	_, cmd := update(t, m, StreamTickMsg{Time: time.Now()})
	if cmd != nil {
		t.Error("tick with no active stream must not reschedule")
	}
}

func TestStreamCompleteFinalizesMessage(t *testing.T) {
	m := startStream(newTestModel(t))
	m.conversation.AppendDelta("Hello, ")
	m.streamBuf.Write("world.")

	m, _ = update(t, m, StreamCompleteMsg{})

	if m.streaming {
		t.Error("streaming flag should drop on completion")
	}
	if m.conversation.Open() != nil {
		t.Error("completion must close the open message")
	}
	last := m.conversation.Last()
	if last.Content != "Hello, world." {
		t.Errorf("final content = %q, buffered tail was lost", last.Content)
	}
}

func TestStreamFailureReplacesWithApology(t *testing.T) {
	m := startStream(newTestModel(t))
	m.conversation.AppendDelta("half an ans")

	m, _ = update(t, m, StreamCompleteMsg{Err: errors.New("connection reset")})

	if m.conversation.Open() != nil {
		t.Error("failure must close the open message")
	}
	last := m.conversation.Last()
	if last.Content != apologyText {
		t.Errorf("failed message content = %q, want the apology", last.Content)
	}
	if strings.Contains(last.Content, "half an ans") {
		t.Error("partial content must be replaced, not kept")
	}
}

func TestStreamCancelKeepsPartialContent(t *testing.T) {
	m := startStream(newTestModel(t))
	m.conversation.AppendDelta("partial thought")

	m, _ = update(t, m, StreamCompleteMsg{Err: context.Canceled})

	if m.conversation.Open() != nil {
		t.Error("cancel must close the open message")
	}

	// Partial answer survives, followed by a cancellation notice.
	msgs := m.conversation.Messages
	assistant := msgs[len(msgs)-2]
	if assistant.Content != "partial thought" {
		t.Errorf("cancelled content = %q, want the partial answer kept", assistant.Content)
	}
	if m.conversation.Last().Role != model.RoleSystem {
		t.Error("cancel should append a system notice")
	}
}

func TestStrayCompletionIgnored(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AppendUser("q")

	m, _ = update(t, m, StreamCompleteMsg{Err: errors.New("late failure")})
	if m.conversation.Last().Content == apologyText {
		t.Error("a completion with no active stream must not rewrite history")
	}
}

// =============================================================================
// KEYS AND OVERLAY
// =============================================================================

func TestClearResetsConversation(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AppendUser("old question")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if !m.conversation.IsEmpty() {
		t.Error("ctrl+l should clear the session")
	}
}

func TestClearBlockedWhileStreaming(t *testing.T) {
	m := startStream(newTestModel(t))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if m.conversation.IsEmpty() {
		t.Error("clear must not fire mid-stream")
	}
}

func TestSnakeToggle(t *testing.T) {
	m := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.snakeActive {
		t.Fatal("tab should open the snake overlay")
	}
	if cmd == nil {
		t.Error("opening snake should start its tick")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.snakeActive {
		t.Error("tab should close the overlay again")
	}
}

func TestSnakeBlockedWhileStreaming(t *testing.T) {
	m := startStream(newTestModel(t))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.snakeActive {
		t.Error("snake must not open mid-stream")
	}
}

func TestSnakeResetsEachOpen(t *testing.T) {
	m := newTestModel(t)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m.snake.Update(snake.TickMsg{})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.snake.Score() != 0 || m.snake.Over() {
		t.Error("each overlay open must start a fresh round")
	}
}

// =============================================================================
// HISTORY
// =============================================================================

func TestChatHistoryExcludesOpenAndSystem(t *testing.T) {
	m := newTestModel(t)
	m.conversation.AppendUser("q1")
	a := m.conversation.OpenAssistant()
	a.AppendDelta("a1")
	m.conversation.CloseOpen()
	m.conversation.AppendSystem("Response cancelled.")
	m.conversation.AppendUser("q2")
	m.conversation.OpenAssistant()

	history := m.chatHistory()
	want := []backend.ChatMessage{
		{Role: "user", Content: "q1"},
		{Role: "assistant", Content: "a1"},
		{Role: "user", Content: "q2"},
	}
	if len(history) != len(want) {
		t.Fatalf("history length = %d, want %d", len(history), len(want))
	}
	for i := range want {
		if history[i] != want[i] {
			t.Errorf("history[%d] = %+v, want %+v", i, history[i], want[i])
		}
	}
}
