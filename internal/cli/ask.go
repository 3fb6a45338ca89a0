// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - Single question command.
//
// Sends one question to the backend and streams the answer to stdout.
// On a terminal the finished answer is re-rendered as markdown; when
// piped (or with --plain) the raw text streams through untouched.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/backend"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/config"
)

// waitReadyTimeout caps how long ask/chat block on a warming model.
const waitReadyTimeout = 10 * time.Minute

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the glamour renderer for terminal output, nil
// when initialization fails (output falls back to plain text).
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		markdownRenderer = nil
	}
}

// stdoutIsTerminal reports whether stdout is a TTY. Markdown and
// styling are only applied when a human is watching.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// renderMarkdown renders content for terminal display, falling back
// to the raw text.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	out, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(out, "\n") + "\n"
}

// =============================================================================
// ASK COMMAND
// =============================================================================

// HandleAsk runs the ask command.
func HandleAsk(args Args) {
	if args.Query == "" {
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), "ask requires a question")
		fmt.Fprintln(os.Stderr, `usage: hemonchat ask "your question"`)
		os.Exit(1)
	}

	client, err := newClient(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), waitReadyTimeout)
	defer cancel()

	if err := waitForModel(ctx, client, args.Quiet); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), err)
		os.Exit(1)
	}

	messages := []backend.ChatMessage{{Role: "user", Content: args.Query}}

	if err := streamAnswer(ctx, client, messages, args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), err)
		os.Exit(1)
	}
}

// newClient builds a backend client from config plus CLI overrides.
func newClient(args Args) (*backend.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	bc := backend.DefaultConfig()
	bc.BaseURL = cfg.API.BaseURL
	bc.Timeout = time.Duration(cfg.API.TimeoutSecs) * time.Second
	if args.APIURL != "" {
		bc.BaseURL = args.APIURL
	}
	return backend.NewClient(bc), nil
}

// waitForModel blocks until the backend reports the model ready. A
// quick first probe avoids printing anything when the model is
// already up.
func waitForModel(ctx context.Context, client *backend.Client, quiet bool) error {
	ready, err := client.ModelReady(ctx)
	if err == nil && ready {
		return nil
	}

	if !quiet {
		fmt.Fprintln(os.Stderr, mutedStyle.Render("Model is warming up, waiting..."))
	}

	// Short interval here: a human is blocked on the answer, and the
	// CLI exits after one question, so the TUI's 60s cadence would
	// feel broken.
	poller := backend.NewStatusPollerWithInterval(client, 3*time.Second)
	if err := poller.WaitReady(ctx); err != nil {
		return fmt.Errorf("model did not become ready: %w", err)
	}
	return nil
}

// streamAnswer writes a response to stdout. Piped or --plain output
// streams raw deltas as they arrive; on a TTY the answer is
// accumulated and rendered as markdown once complete, so ANSI styling
// never corrupts a partial line.
func streamAnswer(ctx context.Context, client *backend.Client, messages []backend.ChatMessage, args Args) error {
	if args.Plain || !stdoutIsTerminal() {
		err := client.ChatStream(ctx, messages, func(delta string) {
			fmt.Print(delta)
		})
		if err != nil {
			return err
		}
		fmt.Println()
		return nil
	}

	full, err := client.ChatStreamAccumulate(ctx, messages)
	if err != nil {
		return err
	}
	fmt.Print(renderMarkdown(full))
	return nil
}
