// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/backend"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/styles"
)

func TestStatusBarStates(t *testing.T) {
	theme := styles.NewTheme("dark")

	tests := []struct {
		name string
		bar  StatusBar
		want string
	}{
		{"loading", StatusBar{ModelStatus: backend.StatusLoading, Width: 80}, "loading"},
		{"ready", StatusBar{ModelStatus: backend.StatusReady, Width: 80}, "ready"},
		{"error", StatusBar{ModelStatus: backend.StatusError, Width: 80}, "error"},
		{"streaming wins", StatusBar{ModelStatus: backend.StatusReady, Streaming: true, Width: 80}, "streaming"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.bar.Render(theme)
			if !strings.Contains(out, tt.want) {
				t.Errorf("status bar %q missing %q", out, tt.want)
			}
		})
	}
}

func TestStatusBarNarrowWidth(t *testing.T) {
	theme := styles.NewTheme("dark")
	bar := StatusBar{ModelStatus: backend.StatusReady, BackendHost: "localhost:8000", Width: 10}

	// Narrow widths drop the hints instead of overflowing.
	out := bar.Render(theme)
	if strings.Contains(out, "quit") {
		t.Error("hints should be dropped at narrow width")
	}
}

func TestHighlightFencesPlainTextPassthrough(t *testing.T) {
	in := "no code here, just prose"
	if got := HighlightFences(in); got != in {
		t.Errorf("plain text should pass through unchanged, got %q", got)
	}
}

func TestHighlightFencesKeepsSurroundingText(t *testing.T) {
	in := "before\n```go\nfmt.Println(1)\n```\nafter"
	out := HighlightFences(in)

	if !strings.Contains(out, "before") || !strings.Contains(out, "after") {
		t.Error("prose around the fence should survive")
	}
	if strings.Contains(out, "```") {
		t.Error("fence markers should be consumed")
	}
	if !strings.Contains(out, "Println") {
		t.Error("code content should survive highlighting")
	}
}

func TestHighlightFencesUnterminated(t *testing.T) {
	// Mid-stream a fence is often still open.
	in := "look:\n```python\nprint(42)"
	out := HighlightFences(in)
	if !strings.Contains(out, "print") {
		t.Error("unterminated fence content should still render")
	}
}

func TestSpinnerLifecycle(t *testing.T) {
	s := NewSpinner()
	if s.Active() {
		t.Error("spinner should start inactive")
	}

	cmd := s.Start("Warming up")
	if cmd == nil {
		t.Error("Start should return a tick command")
	}
	if !s.Active() {
		t.Error("spinner should be active after Start")
	}
	if !strings.Contains(s.View(), "Warming up") {
		t.Errorf("View = %q, missing message", s.View())
	}

	s.Stop()
	if s.Active() || s.View() != "" {
		t.Error("stopped spinner should render nothing")
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{5, "5s"}, {59, "59s"}, {60, "1m00s"}, {125, "2m05s"},
	}
	for _, tt := range tests {
		if got := formatSeconds(tt.secs); got != tt.want {
			t.Errorf("formatSeconds(%d) = %q, want %q", tt.secs, got, tt.want)
		}
	}
}
