// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/styles"
)

// =============================================================================
// SPINNER MODEL
// =============================================================================

// Spinner is a loading spinner with a message and an optional elapsed
// timer, shown while the model warms up or a response streams.
type Spinner struct {
	spinner   spinner.Model
	message   string
	startTime time.Time
	isActive  bool
	showTimer bool
}

// NewSpinner creates a new spinner with ASCII-safe frames.
func NewSpinner() Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: styles.LineSpinner.Frames,
		FPS:    styles.LineSpinner.Duration(),
	}
	s.Style = lipgloss.NewStyle().Foreground(styles.ColorPrimary)

	return Spinner{
		spinner:   s,
		message:   "Loading",
		showTimer: true,
	}
}

// Start activates the spinner with a message and resets the timer.
func (s *Spinner) Start(message string) tea.Cmd {
	s.message = message
	s.startTime = time.Now()
	s.isActive = true
	return s.spinner.Tick
}

// TickCmd returns the animation tick command for an already-running
// spinner, for use from Init where Start's mutation would be lost.
func (s *Spinner) TickCmd() tea.Cmd {
	return s.spinner.Tick
}

// Stop deactivates the spinner.
func (s *Spinner) Stop() {
	s.isActive = false
}

// Active reports whether the spinner is running.
func (s *Spinner) Active() bool {
	return s.isActive
}

// Update advances the spinner animation.
func (s *Spinner) Update(msg tea.Msg) tea.Cmd {
	if !s.isActive {
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

// View renders the spinner line, e.g. "| Warming up the model... (12s)".
func (s *Spinner) View() string {
	if !s.isActive {
		return ""
	}

	out := s.spinner.View() + " " + s.message
	if s.showTimer {
		elapsed := int(time.Since(s.startTime).Seconds())
		if elapsed > 0 {
			out += lipgloss.NewStyle().
				Foreground(styles.ColorTextMuted).
				Render(" (" + formatSeconds(elapsed) + ")")
		}
	}
	return out
}

// formatSeconds renders an elapsed time like "45s" or "2m05s".
func formatSeconds(secs int) string {
	if secs < 60 {
		return itoa(secs) + "s"
	}
	m, s := secs/60, secs%60
	pad := ""
	if s < 10 {
		pad = "0"
	}
	return itoa(m) + "m" + pad + itoa(s) + "s"
}

// itoa converts a small non-negative int without fmt.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
