// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"sync"
	"testing"
	"time"
)

func TestStreamingBufferBatchThreshold(t *testing.T) {
	sb := newStreamingBuffer(3, 30)

	sb.Write("a")
	sb.Write("b")
	if content, ok := sb.Flush(); ok {
		t.Errorf("under batch size should not flush, got %q", content)
	}

	sb.Write("c")
	content, ok := sb.Flush()
	if !ok {
		t.Fatal("batch size reached, expected flush")
	}
	if content != "abc" {
		t.Errorf("content = %q, want %q", content, "abc")
	}
	if sb.Pending() != 0 {
		t.Errorf("pending after flush = %d, want 0", sb.Pending())
	}
}

func TestStreamingBufferTimeThreshold(t *testing.T) {
	sb := newStreamingBuffer(100, 30)

	sb.Write("slow stream")
	if _, ok := sb.Flush(); ok {
		t.Error("fresh delta under both thresholds should not flush")
	}

	time.Sleep(40 * time.Millisecond)
	content, ok := sb.Flush()
	if !ok {
		t.Fatal("frame interval elapsed, expected flush")
	}
	if content != "slow stream" {
		t.Errorf("content = %q", content)
	}
}

func TestStreamingBufferForceFlush(t *testing.T) {
	sb := NewStreamingBuffer()

	if _, ok := sb.ForceFlush(); ok {
		t.Error("empty buffer should not force-flush")
	}

	sb.Write("tail")
	content, ok := sb.ForceFlush()
	if !ok || content != "tail" {
		t.Errorf("ForceFlush = %q, %v", content, ok)
	}
}

func TestStreamingBufferPreservesOrder(t *testing.T) {
	sb := NewStreamingBuffer()
	for _, d := range []string{"The ", "quick ", "brown ", "fox"} {
		sb.Write(d)
	}

	content, ok := sb.ForceFlush()
	if !ok {
		t.Fatal("expected content")
	}
	if content != "The quick brown fox" {
		t.Errorf("content = %q, deltas must concatenate in write order", content)
	}
}

func TestStreamingBufferReset(t *testing.T) {
	sb := NewStreamingBuffer()
	sb.Write("stale")
	sb.Reset()

	if sb.Pending() != 0 {
		t.Errorf("pending after reset = %d, want 0", sb.Pending())
	}
	if _, ok := sb.ForceFlush(); ok {
		t.Error("reset buffer should be empty")
	}
}

func TestStreamingBufferConcurrentWrites(t *testing.T) {
	sb := newStreamingBuffer(1, 60)

	var wg sync.WaitGroup
	done := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			sb.Write("x")
		}
		close(done)
	}()

	total := 0
	for {
		if content, ok := sb.ForceFlush(); ok {
			total += len(content)
		}
		select {
		case <-done:
			wg.Wait()
			if content, ok := sb.ForceFlush(); ok {
				total += len(content)
			}
			if total != 500 {
				t.Errorf("drained %d bytes, want 500", total)
			}
			return
		default:
		}
	}
}
