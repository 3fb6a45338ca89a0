// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"strings"
	"testing"
)

// collect returns an assembler that appends every delta to out.
func collect(out *strings.Builder) *Assembler {
	return NewAssembler(func(delta string) {
		out.WriteString(delta)
	})
}

func feed(t *testing.T, a *Assembler, chunks ...string) {
	t.Helper()
	for _, chunk := range chunks {
		if err := a.Write([]byte(chunk)); err != nil {
			t.Fatalf("Write(%q): %v", chunk, err)
		}
	}
	a.Finish()
}

func TestAssemblerSingleChunk(t *testing.T) {
	var out strings.Builder
	feed(t, collect(&out),
		"data: {\"content\":\"Hello\"}\n\ndata: {\"content\":\" world\"}\n\n")

	if out.String() != "Hello world" {
		t.Errorf("content = %q, want %q", out.String(), "Hello world")
	}
}

func TestAssemblerSeparatorAcrossChunks(t *testing.T) {
	// The example from the protocol contract: a record split mid-JSON,
	// with the separator arriving in the second chunk.
	var out strings.Builder
	feed(t, collect(&out), "data: {\"content\":\"Hel", "lo\"}\n\n")

	if out.String() != "Hello" {
		t.Errorf("content = %q, want Hello", out.String())
	}
}

func TestAssemblerChunkSplitInvariance(t *testing.T) {
	stream := "data: {\"content\":\"one \"}\n\n" +
		"data: {\"content\":\"two \"}\n\n" +
		"data: {\"content\":\"three\"}\n\n"
	const want = "one two three"

	// Whatever the chunk boundaries, the reassembled content must match
	// the result of feeding the concatenation as one chunk.
	splits := []struct {
		name   string
		chunks []string
	}{
		{"one chunk", []string{stream}},
		// "data: {\"content\":\"one \"}" is 24 bytes; the separator is
		// stream[24:26]. Splitting at 25 lands the boundary between the
		// two newlines of the separator.
		{"separator split between chunks", []string{
			stream[:25], stream[25:],
		}},
		{"mid-prefix split", []string{stream[:3], stream[3:]}},
	}

	for _, tt := range splits {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			feed(t, collect(&out), tt.chunks...)
			if out.String() != want {
				t.Errorf("content = %q, want %q", out.String(), want)
			}
		})
	}

	t.Run("byte by byte", func(t *testing.T) {
		var out strings.Builder
		a := collect(&out)
		for i := 0; i < len(stream); i++ {
			if err := a.Write([]byte{stream[i]}); err != nil {
				t.Fatalf("Write byte %d: %v", i, err)
			}
		}
		a.Finish()
		if out.String() != want {
			t.Errorf("content = %q, want %q", out.String(), want)
		}
	})
}

func TestAssemblerMalformedRecordSkipped(t *testing.T) {
	var out strings.Builder
	feed(t, collect(&out),
		"data: {\"content\":\"before\"}\n\n",
		"data: {not json}\n\n",
		"data: {\"content\":\"after\"}\n\n")

	// The malformed record is dropped; records after it still apply.
	if out.String() != "beforeafter" {
		t.Errorf("content = %q, want beforeafter", out.String())
	}
}

func TestAssemblerIgnoresNonDataRecords(t *testing.T) {
	var out strings.Builder
	feed(t, collect(&out),
		": keep-alive\n\n",
		"event: ping\n\n",
		"data: {\"content\":\"ok\"}\n\n")

	if out.String() != "ok" {
		t.Errorf("content = %q, want ok", out.String())
	}
}

func TestAssemblerDoneSentinel(t *testing.T) {
	var out strings.Builder
	a := collect(&out)
	feed(t, a,
		"data: {\"content\":\"kept\"}\n\n",
		"data: [DONE]\n\n",
		"data: {\"content\":\"dropped\"}\n\n")

	if !a.Done() {
		t.Error("assembler should report done after sentinel")
	}
	if out.String() != "kept" {
		t.Errorf("content = %q, want kept", out.String())
	}
}

func TestAssemblerTrailingRecordWithoutSeparator(t *testing.T) {
	// EOF without a final separator still delivers the last record.
	var out strings.Builder
	feed(t, collect(&out), "data: {\"content\":\"tail\"}")

	if out.String() != "tail" {
		t.Errorf("content = %q, want tail", out.String())
	}
}

func TestAssemblerEmptyContentField(t *testing.T) {
	calls := 0
	a := NewAssembler(func(string) { calls++ })
	feed(t, a, "data: {\"content\":\"\"}\n\n", "data: {\"other\":1}\n\n")

	if calls != 0 {
		t.Errorf("empty or absent content should not invoke callback, got %d calls", calls)
	}
}

func TestAssemblerOversizedRecord(t *testing.T) {
	a := NewAssembler(func(string) {})
	huge := strings.Repeat("x", maxRecordSize+1)

	if err := a.Write([]byte(huge)); err == nil {
		t.Fatal("expected error for oversized record")
	}
}
