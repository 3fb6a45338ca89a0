// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Interactive line-based chat.
//
// A liner-backed REPL for people who want multi-turn chat without the
// full TUI, e.g. over a slow SSH session. Conversation context lives
// in memory only and dies with the process.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/backend"
)

// =============================================================================
// INPUT
// =============================================================================

// ChatCLI wraps liner for input history and line editing. History is
// in-memory only; nothing is written to disk.
type ChatCLI struct {
	line *liner.State
}

// NewChatCLI creates the line editor.
func NewChatCLI() *ChatCLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &ChatCLI{line: line}
}

// ReadInput reads one line, recording non-empty input in the session
// history for arrow-key recall.
func (c *ChatCLI) ReadInput(prompt string) (string, error) {
	input, err := c.line.Prompt(prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		c.line.AppendHistory(input)
	}
	return input, nil
}

// Close restores the terminal state.
func (c *ChatCLI) Close() {
	c.line.Close()
}

// =============================================================================
// SESSION
// =============================================================================

// chatSession holds the in-memory state of one REPL run.
type chatSession struct {
	client   *backend.Client
	input    *ChatCLI
	history  []backend.ChatMessage
	quiet    bool
	plain    bool
	turns    int
	cancelFn context.CancelFunc
}

// HandleChat runs the interactive chat REPL.
func HandleChat(args Args) {
	client, err := newClient(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), waitReadyTimeout)
	if err := waitForModel(ctx, client, args.Quiet); err != nil {
		cancel()
		fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), err)
		os.Exit(1)
	}
	cancel()

	session := &chatSession{
		client: client,
		input:  NewChatCLI(),
		quiet:  args.Quiet,
		plain:  args.Plain,
	}
	defer session.input.Close()

	if !session.quiet {
		printWelcome(client)
	}

	// First Ctrl+C during a response cancels it instead of killing
	// the process.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		for range sigChan {
			if session.cancelFn != nil {
				session.cancelFn()
				session.cancelFn = nil
				fmt.Fprintln(os.Stderr, "\n"+warningStyle.Render("[Cancelled]"))
			}
		}
	}()

	for {
		input, err := session.input.ReadInput(promptStyle.Render("you> "))
		if err != nil {
			// Ctrl+C at the prompt or EOF both end the session.
			fmt.Println()
			session.printExitSummary()
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			if !session.handleSlashCommand(input) {
				session.printExitSummary()
				return
			}
			continue
		}
		if strings.EqualFold(input, "exit") || strings.EqualFold(input, "quit") {
			session.printExitSummary()
			return
		}

		if err := session.processMessage(input); err != nil {
			fmt.Fprintln(os.Stderr, errorStyle.Render("[Error]"), err)
		}
	}
}

// =============================================================================
// MESSAGE PROCESSING
// =============================================================================

// processMessage sends the full history plus the new turn and streams
// the reply. A failed turn is rolled back so a retry does not send
// the question twice.
func (s *chatSession) processMessage(input string) error {
	s.history = append(s.history, backend.ChatMessage{Role: "user", Content: input})

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelFn = cancel
	defer func() {
		cancel()
		s.cancelFn = nil
	}()

	pretty := stdoutIsTerminal() && !s.plain

	var full strings.Builder
	err := s.client.ChatStream(ctx, s.history, func(delta string) {
		full.WriteString(delta)
		if !pretty {
			fmt.Print(delta)
		}
	})

	switch {
	case err == nil:
	case ctx.Err() == context.Canceled && full.Len() > 0:
		// Cancelled mid-answer: keep the partial turn in history.
	default:
		s.history = s.history[:len(s.history)-1]
		return err
	}

	answer := full.String()
	s.history = append(s.history, backend.ChatMessage{Role: "assistant", Content: answer})
	s.turns++

	if pretty {
		fmt.Print(renderMarkdown(answer))
	} else {
		fmt.Println()
	}
	return nil
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand executes a /command. Returns false when the
// session should end.
func (s *chatSession) handleSlashCommand(input string) bool {
	cmd := strings.ToLower(strings.Fields(input)[0])

	switch cmd {
	case "/quit", "/exit", "/q":
		return false

	case "/clear", "/new":
		s.history = nil
		fmt.Println(mutedStyle.Render("Conversation cleared."))
		return true

	case "/status":
		ctx, cancel := context.WithTimeout(context.Background(), statusTimeout)
		defer cancel()
		printStatus(ctx, s.client, false)
		return true

	case "/help", "/?":
		fmt.Println(mutedStyle.Render(`Commands:
  /clear    Forget the conversation so far
  /status   Check model readiness
  /quit     Exit (also: exit, quit, Ctrl+D)`))
		return true

	default:
		fmt.Fprintln(os.Stderr, warningStyle.Render("Unknown command: "+cmd))
		return true
	}
}

// =============================================================================
// OUTPUT HELPERS
// =============================================================================

func printWelcome(client *backend.Client) {
	fmt.Println(promptStyle.Render("hemonchat") + mutedStyle.Render("  "+client.BaseURL()))
	fmt.Println(mutedStyle.Render("Type a question, /help for commands, /quit to exit."))
	fmt.Println()
}

func (s *chatSession) printExitSummary() {
	if s.quiet {
		return
	}
	word := "turns"
	if s.turns == 1 {
		word = "turn"
	}
	fmt.Println(mutedStyle.Render(fmt.Sprintf("Goodbye. %d %s this session.", s.turns, word)))
}
