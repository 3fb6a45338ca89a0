// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
)

// =============================================================================
// STREAM PROTOCOL CONSTANTS
// =============================================================================

const (
	// dataPrefix marks a data record in the chat stream.
	dataPrefix = "data: "

	// recordSeparator terminates each record. A separator may land
	// anywhere relative to chunk boundaries, including split across two
	// chunks; the assembler's rolling buffer handles that.
	recordSeparator = "\n\n"

	// doneSentinel is an optional explicit end-of-stream record. The
	// protocol does not require one; plain EOF also ends the stream.
	doneSentinel = "[DONE]"

	// maxRecordSize bounds the rolling buffer (64KB). A stream that
	// never produces a separator cannot grow the buffer without limit.
	maxRecordSize = 64 * 1024
)

// StreamCallback is invoked for each content delta, in arrival order.
type StreamCallback func(delta string)

// =============================================================================
// ASSEMBLER
// =============================================================================

// Assembler reassembles discrete records from an incremental chunked
// feed and applies their content deltas through a callback.
//
// The algorithm: each chunk is appended to a rolling text buffer; the
// buffer is split on the record separator; every complete segment is
// processed as a record and the final (possibly incomplete) segment is
// retained as the new buffer. Feeding the same byte sequence in any
// chunking produces the same deltas.
type Assembler struct {
	buf   strings.Builder
	apply StreamCallback
	done  bool
}

// NewAssembler creates an assembler that applies deltas via apply.
func NewAssembler(apply StreamCallback) *Assembler {
	return &Assembler{apply: apply}
}

// Write feeds one chunk of the stream into the assembler. It returns an
// error only when the rolling buffer exceeds maxRecordSize; malformed
// records are logged and skipped, never fatal.
func (a *Assembler) Write(chunk []byte) error {
	if a.done {
		return nil
	}

	a.buf.Write(chunk)
	if a.buf.Len() > maxRecordSize {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "stream record exceeds size limit"}
	}

	text := a.buf.String()
	segments := strings.Split(text, recordSeparator)

	// All but the last segment are complete records; the tail goes back
	// into the buffer to be completed by a later chunk.
	a.buf.Reset()
	a.buf.WriteString(segments[len(segments)-1])

	for _, record := range segments[:len(segments)-1] {
		a.processRecord(record)
		if a.done {
			return nil
		}
	}
	return nil
}

// Finish flushes the assembler at end of stream. A trailing record that
// the source closed without a final separator is still processed.
func (a *Assembler) Finish() {
	if a.done {
		return
	}
	if tail := a.buf.String(); tail != "" {
		a.processRecord(tail)
	}
	a.buf.Reset()
	a.done = true
}

// Done reports whether the assembler saw an explicit end sentinel.
func (a *Assembler) Done() bool {
	return a.done
}

// processRecord handles one complete record. Records without the data
// prefix (comments, keep-alives) are ignored. A record whose JSON does
// not parse is logged and discarded; the rest of the stream continues.
func (a *Assembler) processRecord(record string) {
	record = strings.TrimRight(record, "\r\n")
	if !strings.HasPrefix(record, dataPrefix) {
		return
	}

	payload := record[len(dataPrefix):]
	if payload == doneSentinel {
		a.done = true
		return
	}

	var rec streamRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		log.Printf("backend: skipping malformed stream record: %v", err)
		return
	}

	if rec.Content != "" {
		a.apply(rec.Content)
	}
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// readBufferSize is the chunk size for reading the response body.
const readBufferSize = 4 * 1024

// ChatStream performs a streaming chat completion request. The callback
// is invoked for each content delta, strictly in order: the next chunk
// is not read until the previous one is fully processed. Supports
// context cancellation.
//
// Any error — transport failure, non-2xx response, oversized record —
// aborts the stream; deltas already applied are not rolled back. The
// caller decides how to surface the failure (the TUI replaces the open
// message with an apology).
func (c *Client) ChatStream(ctx context.Context, messages []ChatMessage, callback StreamCallback) error {
	body, err := json.Marshal(chatRequest{Messages: messages})
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeUnreachable, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return ctx.Err()
		}
		return &ClientError{Type: ErrTypeUnreachable, Message: "chat request failed", Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.readAPIError(resp)
	}

	return processStream(ctx, resp.Body, callback)
}

// processStream drives the assembler over the response body, one chunk
// at a time. Reads are awaited sequentially, so chunk N+1 is never
// processed before chunk N's records are extracted.
func processStream(ctx context.Context, body io.Reader, callback StreamCallback) error {
	assembler := NewAssembler(callback)
	buf := make([]byte, readBufferSize)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := body.Read(buf)
		if n > 0 {
			if werr := assembler.Write(buf[:n]); werr != nil {
				return werr
			}
			if assembler.Done() {
				return nil
			}
		}
		if err != nil {
			if err == io.EOF {
				assembler.Finish()
				return nil
			}
			return &ClientError{Type: ErrTypeUnreachable, Message: "stream read failed", Cause: err}
		}
	}
}

// ChatStreamAccumulate performs a streaming chat but returns the full
// response at the end. Used by the one-shot ask command when stdout is
// not a terminal.
func (c *Client) ChatStreamAccumulate(ctx context.Context, messages []ChatMessage) (string, error) {
	var accumulated strings.Builder

	err := c.ChatStream(ctx, messages, func(delta string) {
		accumulated.WriteString(delta)
	})

	return accumulated.String(), err
}
