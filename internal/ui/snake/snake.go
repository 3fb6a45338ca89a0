// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package snake

import (
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/PerifanosPrometheus/hemonchat-tui/internal/ui/styles"
)

// =============================================================================
// GAME MODEL
// =============================================================================

const (
	// GridWidth and GridHeight are the playfield dimensions in cells.
	GridWidth  = 24
	GridHeight = 12

	// tickInterval is the fixed step cadence. The game advances exactly
	// one cell per tick regardless of render rate.
	tickInterval = 120 * time.Millisecond

	initialLength = 3
)

type point struct {
	x, y int
}

// TickMsg advances the game by one step.
type TickMsg struct {
	Time time.Time
}

// Model is the Bubble Tea model for one round of snake.
type Model struct {
	theme *styles.Theme

	width  int
	height int

	// body is head-first. Movement pushes a new head and pops the tail
	// unless food was eaten this step.
	body []point
	dir  point
	next point

	food  point
	score int
	over  bool

	rng *rand.Rand
}

// New creates a fresh game. Every overlay open starts from scratch.
func New(theme *styles.Theme) Model {
	return newGame(theme, GridWidth, GridHeight, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newGame(theme *styles.Theme, width, height int, rng *rand.Rand) Model {
	midY := height / 2
	body := make([]point, 0, initialLength)
	for i := 0; i < initialLength; i++ {
		body = append(body, point{x: width/2 - i, y: midY})
	}

	m := Model{
		theme:  theme,
		width:  width,
		height: height,
		body:   body,
		dir:    point{x: 1},
		next:   point{x: 1},
		rng:    rng,
	}
	m.placeFood()
	return m
}

// Score returns the number of food items eaten this round.
func (m Model) Score() int {
	return m.score
}

// Over reports whether the round has ended.
func (m Model) Over() bool {
	return m.over
}

// Init starts the step timer.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// =============================================================================
// UPDATE
// =============================================================================

// Update handles steering keys and step ticks.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.over {
			return m, nil
		}
		m.step()
		return m, tickCmd()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.over {
		// Any steering key starts a new round.
		switch msg.String() {
		case "up", "down", "left", "right", "w", "a", "s", "d", "enter", "r":
			fresh := newGame(m.theme, m.width, m.height, m.rng)
			return fresh, tickCmd()
		}
		return m, nil
	}

	var want point
	switch msg.String() {
	case "up", "w":
		want = point{y: -1}
	case "down", "s":
		want = point{y: 1}
	case "left", "a":
		want = point{x: -1}
	case "right", "d":
		want = point{x: 1}
	default:
		return m, nil
	}

	// A reversal into the neck is ignored, not fatal.
	if want.x == -m.dir.x && want.y == -m.dir.y {
		return m, nil
	}
	m.next = want
	return m, nil
}

// step advances the snake one cell, handling food, walls, and self
// collision.
func (m *Model) step() {
	m.dir = m.next
	head := point{x: m.body[0].x + m.dir.x, y: m.body[0].y + m.dir.y}

	if head.x < 0 || head.x >= m.width || head.y < 0 || head.y >= m.height {
		m.over = true
		return
	}

	ate := head == m.food

	// The tail cell vacates this step unless the snake grows, so moving
	// into it is legal.
	occupied := m.body
	if !ate {
		occupied = m.body[:len(m.body)-1]
	}
	for _, p := range occupied {
		if head == p {
			m.over = true
			return
		}
	}

	m.body = append([]point{head}, m.body...)
	if ate {
		m.score++
		m.placeFood()
	} else {
		m.body = m.body[:len(m.body)-1]
	}
}

// placeFood picks a random free cell. When the snake fills the board
// the round ends as a win.
func (m *Model) placeFood() {
	free := make([]point, 0, m.width*m.height-len(m.body))
	taken := make(map[point]bool, len(m.body))
	for _, p := range m.body {
		taken[p] = true
	}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			p := point{x: x, y: y}
			if !taken[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		m.over = true
		return
	}
	m.food = free[m.rng.Intn(len(free))]
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the playfield with the score line underneath.
func (m Model) View() string {
	cells := make(map[point]string, len(m.body)+1)
	cells[m.food] = m.theme.SnakeFood.Render("*")
	for i, p := range m.body {
		ch := "o"
		if i == 0 {
			ch = "O"
		}
		cells[p] = m.theme.SnakeBody.Render(ch)
	}

	var rows []string
	for y := 0; y < m.height; y++ {
		var row strings.Builder
		for x := 0; x < m.width; x++ {
			if c, ok := cells[point{x: x, y: y}]; ok {
				row.WriteString(c)
			} else {
				row.WriteString(" ")
			}
		}
		rows = append(rows, row.String())
	}

	board := m.theme.SnakeBorder.Render(strings.Join(rows, "\n"))

	status := m.theme.SnakeScore.Render("score: " + itoa(m.score))
	if m.over {
		status += "  " + m.theme.SnakeOver.Render("game over. Any arrow key restarts, Tab returns to chat.")
	} else {
		status += m.theme.SnakeScore.Render("  (arrows steer, Tab returns to chat)")
	}

	return lipgloss.JoinVertical(lipgloss.Left, board, status)
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
