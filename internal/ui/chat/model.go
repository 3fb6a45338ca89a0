// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/backend"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/config"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/model"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/components"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/snake"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/styles"
)

// =============================================================================
// CHAT MODEL
// =============================================================================

// apologyText replaces an in-progress assistant message when its
// stream fails. The wording is deliberately generic; the session
// stays usable and the user can resubmit.
const apologyText = "Sorry, something went wrong while generating a response. Please try again."

// Layout constants for handleResize. Keep in sync with View.
const (
	headerHeight = 2
	inputHeight  = 3
	statusHeight = 1
)

// Model is the Bubble Tea model for the chat view.
type Model struct {
	// Styling
	theme     *styles.Theme
	themeName string
	keys      KeyMap

	// Dimensions
	width  int
	height int
	ready  bool // first WindowSizeMsg received

	// Conversation state. Mutated only inside Update, so every delta
	// and status transition applies to the latest state.
	conversation *model.Conversation

	// Backend
	client  *backend.Client
	poller  *backend.StatusPoller
	pollSeq int // readiness timer generation; bumping it cancels the pending chain
	status  backend.ModelStatus

	// Streaming
	streaming    bool
	streamBuf    *StreamingBuffer
	cancelStream context.CancelFunc

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spin     components.Spinner

	// Markdown rendering for finalized assistant messages
	renderer      *glamour.TermRenderer
	markdownWidth int

	// Snake overlay
	snakeEnabled bool
	snakeActive  bool
	snake        snake.Model
}

// New creates the chat model from a backend client and configuration.
func New(client *backend.Client, cfg *config.Config) Model {
	theme := styles.NewTheme(cfg.UI.Theme)

	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = "Waiting for the model to load..."
	input.CharLimit = 4000
	input.Focus()

	interval := time.Duration(cfg.API.PollIntervalSecs) * time.Second
	poller := backend.NewStatusPollerWithInterval(client, interval)

	spin := components.NewSpinner()
	spin.Start("Warming up the model")

	m := Model{
		theme:         theme,
		themeName:     cfg.UI.Theme,
		keys:          DefaultKeyMap(),
		conversation:  model.NewConversation(),
		client:        client,
		poller:        poller,
		status:        backend.StatusLoading,
		streamBuf:     NewStreamingBuffer(),
		input:         input,
		spin:          spin,
		markdownWidth: cfg.UI.MarkdownWidth,
		snakeEnabled:  cfg.UI.SnakeEnabled,
	}
	return m
}

// Init kicks off the cursor blink, the warm-up spinner, and the first
// readiness check.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spin.TickCmd(),
		checkStatusCmd(m.poller, m.pollSeq),
	)
}

// Status returns the current model readiness as seen by the view.
func (m Model) Status() backend.ModelStatus {
	return m.status
}

// Streaming reports whether a response is currently being assembled.
func (m Model) Streaming() bool {
	return m.streaming
}

// setRenderer rebuilds the markdown renderer for the current width.
func (m *Model) setRenderer() {
	width := m.markdownWidth
	if m.width > 0 && m.width-2 < width {
		width = m.width - 2
	}
	if width < 20 {
		width = 20
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(m.themeName),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Plain text fallback; View checks for nil.
		m.renderer = nil
		return
	}
	m.renderer = r
}

// chatHistory flattens the conversation into the wire form: finalized
// user and assistant turns, oldest first. The open assistant message
// and local system notices are not part of the prompt.
func (m Model) chatHistory() []backend.ChatMessage {
	out := make([]backend.ChatMessage, 0, len(m.conversation.Messages))
	for _, msg := range m.conversation.Messages {
		if msg.IsOpen() || msg.Role == model.RoleSystem || msg.Content == "" {
			continue
		}
		out = append(out, backend.ChatMessage{
			Role:    msg.Role.String(),
			Content: msg.Content,
		})
	}
	return out
}
