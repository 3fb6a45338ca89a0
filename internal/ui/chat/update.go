// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/backend"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/snake"
	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/styles"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update is the single place where conversation and readiness state
// change.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ModelStatusMsg:
		return m.handleStatus(msg)

	case StatusTickMsg:
		// A bumped generation means this timer chain was replaced.
		if msg.Seq != m.pollSeq {
			return m, nil
		}
		return m, checkStatusCmd(m.poller, m.pollSeq)

	case StreamTickMsg:
		return m.handleStreamTick()

	case StreamCompleteMsg:
		return m.handleStreamComplete(msg)

	case snake.TickMsg:
		if !m.snakeActive {
			return m, nil
		}
		var cmd tea.Cmd
		m.snake, cmd = m.snake.Update(msg)
		return m, cmd

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg), nil

	case spinner.TickMsg:
		return m, m.spin.Update(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// =============================================================================
// READINESS
// =============================================================================

func (m Model) handleStatus(msg ModelStatusMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.pollSeq {
		return m, nil
	}

	m.status = msg.Result.Status
	if m.status == backend.StatusReady {
		// Ready is terminal for the session: stop polling, unlock input.
		m.spin.Stop()
		m.input.Placeholder = "Ask anything..."
		m.refreshViewport()
		return m, nil
	}

	if m.status == backend.StatusError {
		m.spin.Start("Backend unreachable, retrying")
	} else {
		m.spin.Start("Warming up the model")
	}
	m.refreshViewport()

	// Exactly one pending re-check: stale generations are dropped on
	// arrival, so this is the only live timer.
	return m, scheduleStatusCheck(m.poller.Interval(), m.pollSeq)
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		if m.cancelStream != nil {
			m.cancelStream()
		}
		return m, tea.Quit
	}

	if m.snakeActive {
		if key.Matches(msg, m.keys.Snake) {
			m.snakeActive = false
			return m, nil
		}
		var cmd tea.Cmd
		m.snake, cmd = m.snake.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Snake):
		if m.snakeEnabled && !m.streaming {
			// Fresh board every time the overlay opens.
			m.snake = snake.New(m.theme)
			m.snakeActive = true
			return m, m.snake.Init()
		}
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.handleSubmit()

	case key.Matches(msg, m.keys.Cancel):
		if m.streaming && m.cancelStream != nil {
			m.cancelStream()
		}
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		if !m.streaming {
			m.conversation.Clear()
			m.refreshViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		if !m.streaming && m.status != backend.StatusReady {
			// Replace the pending timer chain with an immediate check.
			// The poller's own throttle turns a too-early probe into a
			// no-op, so hammering the key cannot flood the backend.
			m.pollSeq++
			return m, checkStatusCmd(m.poller, m.pollSeq)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keys.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keys.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// =============================================================================
// STREAMING
// =============================================================================

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.streaming || m.status != backend.StatusReady {
		return m, nil
	}
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}

	m.conversation.AppendUser(text)
	m.input.Reset()

	// The prompt includes the user turn just appended but never the
	// assistant message about to open.
	history := m.chatHistory()
	m.conversation.OpenAssistant()

	m.streamBuf.Reset()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelStream = cancel
	m.streaming = true
	m.refreshViewport()

	return m, tea.Batch(
		startStreamCmd(ctx, m.client, history, m.streamBuf),
		streamTickCmd(),
		m.spin.Start("Thinking"),
	)
}

func (m Model) handleStreamTick() (tea.Model, tea.Cmd) {
	if !m.streaming {
		return m, nil
	}
	if content, ok := m.streamBuf.Flush(); ok {
		m.conversation.AppendDelta(content)
		m.refreshViewport()
	}
	return m, streamTickCmd()
}

func (m Model) handleStreamComplete(msg StreamCompleteMsg) (tea.Model, tea.Cmd) {
	if !m.streaming {
		return m, nil
	}

	// Drain whatever the last frame missed before deciding the outcome.
	if tail, ok := m.streamBuf.ForceFlush(); ok {
		m.conversation.AppendDelta(tail)
	}

	m.streaming = false
	if m.cancelStream != nil {
		m.cancelStream()
		m.cancelStream = nil
	}
	m.spin.Stop()

	switch {
	case msg.Err == nil:
		m.conversation.CloseOpen()
	case errors.Is(msg.Err, context.Canceled):
		// User cancel keeps the partial response.
		m.conversation.CloseOpen()
		m.conversation.AppendSystem("Response cancelled.")
	default:
		log.Printf("chat: stream failed: %v", msg.Err)
		m.conversation.FailOpen(apologyText)
	}

	m.refreshViewport()
	return m, nil
}

// =============================================================================
// RESIZE AND CONFIG
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	vh := m.height - headerHeight - inputHeight - statusHeight
	if vh < 1 {
		vh = 1
	}

	if !m.ready {
		m.viewport = viewport.New(m.width, vh)
		m.ready = true
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = vh
	}

	m.input.Width = m.width - 6
	m.setRenderer()
	m.refreshViewport()
	return m
}

func (m Model) handleConfigReload(msg ConfigReloadedMsg) Model {
	cfg := msg.Config
	if cfg == nil {
		return m
	}

	m.theme = styles.NewTheme(cfg.UI.Theme)
	m.themeName = cfg.UI.Theme
	m.markdownWidth = cfg.UI.MarkdownWidth
	m.snakeEnabled = cfg.UI.SnakeEnabled
	if !m.snakeEnabled {
		m.snakeActive = false
	}
	m.client.SetBaseURL(cfg.API.BaseURL)

	m.setRenderer()
	m.refreshViewport()
	return m
}
