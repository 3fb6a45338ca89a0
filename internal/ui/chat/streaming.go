// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// =============================================================================
// STREAMING BUFFER
// =============================================================================

// StreamingBuffer batches response deltas between render frames.
// The backend goroutine writes deltas as they arrive off the wire; the
// update loop drains the buffer on each StreamTickMsg. Flushing is
// gated on a delta-count threshold or a minimum frame interval, so a
// fast stream cannot force a repaint per delta.
//
// Writes and flushes race across goroutines, hence the mutex.
type StreamingBuffer struct {
	mu         sync.Mutex
	buf        strings.Builder
	deltaCount int
	lastFlush  time.Time

	batchSize int
	minFlush  time.Duration
}

const (
	defaultBatchSize = 15
	defaultMaxFPS    = 30
)

// NewStreamingBuffer creates a buffer with the default batch size and
// a 30fps flush cap.
func NewStreamingBuffer() *StreamingBuffer {
	return newStreamingBuffer(defaultBatchSize, defaultMaxFPS)
}

func newStreamingBuffer(batchSize, maxFPS int) *StreamingBuffer {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if maxFPS <= 0 || maxFPS > 60 {
		maxFPS = defaultMaxFPS
	}
	return &StreamingBuffer{
		batchSize: batchSize,
		minFlush:  time.Duration(1000/maxFPS) * time.Millisecond,
		lastFlush: time.Now(),
	}
}

// Write appends one delta. Called from the streaming goroutine.
func (sb *StreamingBuffer) Write(delta string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.buf.WriteString(delta)
	sb.deltaCount++
}

// Flush returns the accumulated deltas when either threshold is met.
// Returns ("", false) when the buffer is empty or neither the batch
// size nor the frame interval has been reached.
func (sb *StreamingBuffer) Flush() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.buf.Len() == 0 {
		return "", false
	}
	if sb.deltaCount < sb.batchSize && time.Since(sb.lastFlush) < sb.minFlush {
		return "", false
	}
	return sb.drainLocked(), true
}

// ForceFlush drains the buffer regardless of thresholds. Called when a
// stream completes so the tail of the response is never lost.
func (sb *StreamingBuffer) ForceFlush() (string, bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	if sb.buf.Len() == 0 {
		return "", false
	}
	return sb.drainLocked(), true
}

// Reset discards buffered deltas. Called before a new stream starts.
func (sb *StreamingBuffer) Reset() {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.buf.Reset()
	sb.deltaCount = 0
	sb.lastFlush = time.Now()
}

// Pending returns the number of unflushed deltas.
func (sb *StreamingBuffer) Pending() int {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return sb.deltaCount
}

func (sb *StreamingBuffer) drainLocked() string {
	content := sb.buf.String()
	sb.buf.Reset()
	sb.deltaCount = 0
	sb.lastFlush = time.Now()
	return content
}

// =============================================================================
// STREAM TICK
// =============================================================================

// streamTickCmd drives the flush loop at roughly 30fps while a
// response is streaming.
func streamTickCmd() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg {
		return StreamTickMsg{Time: t}
	})
}
