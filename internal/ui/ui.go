// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-transits/internal/astro"
	"github.com/litescript/ls-transits/internal/tracker"
	"github.com/litescript/ls-transits/internal/version"
)

// Query describes what the board is tracking.
type Query struct {
	Name   string
	Letter string
	Site   *astro.Observer
	Count  int // Upcoming candidates to list
}

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates (countdown, spinner).
	TickMsg time.Time

	// ResultMsg carries a completed tracker query.
	ResultMsg struct {
		Result   tracker.Result
		Upcoming []tracker.Upcoming
		At       time.Time
	}

	// ErrMsg signals a failed tracker query.
	ErrMsg struct {
		Err error
	}
)

// Model is the root Bubble Tea model: a single transit board.
type Model struct {
	tracker *tracker.Tracker
	query   Query

	width   int
	height  int
	ready   bool
	loading bool
	tick    int

	result    tracker.Result
	upcoming  []tracker.Upcoming
	fetchedAt time.Time
	lastErr   error
}

// New creates the root UI model. The first fetch starts on Init.
func New(tr *tracker.Tracker, q Query) Model {
	if q.Count <= 0 {
		q.Count = 5
	}
	return Model{
		tracker: tr,
		query:   q,
		loading: true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), m.fetchCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				return m, m.fetchCmd()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		m.tick++
		return m, tickCmd()

	case ResultMsg:
		m.loading = false
		m.lastErr = nil
		m.result = msg.Result
		m.upcoming = msg.Upcoming
		m.fetchedAt = msg.At

	case ErrMsg:
		m.loading = false
		m.lastErr = msg.Err
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	return m.renderHeader() + "\n" + m.renderBoard() + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9D4EDD"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var b string
	b += "\n  " + title.Render("ls-transits") + muted.Render(" · Exoplanet Transit Board") + "\n"
	b += muted.Render(fmt.Sprintf("  (c) 2026 litescript.net | v%s", version.Version)) + "\n"
	return b
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.tick%len(spinnerFrames)]

	var status string
	switch {
	case m.lastErr != nil:
		status = errorStyle.Render("ERROR: " + m.lastErr.Error())
	case m.loading:
		status = accentStyle.Render(spinner) + dimStyle.Render(" querying...")
	default:
		status = dimStyle.Render("fetched " + m.fetchedAt.UTC().Format("15:04:05") + " UTC")
	}

	help := dimStyle.Render("r: refresh | q: quit")
	return "\n  " + status + "  " + dimStyle.Render("|") + "  " + help
}

// fetchCmd runs the tracker query off the UI loop.
func (m Model) fetchCmd() tea.Cmd {
	tr := m.tracker
	q := m.query
	return func() tea.Msg {
		now := time.Now()
		res, err := tr.NextTransit(context.Background(), q.Name, q.Letter, q.Site, now)
		if err != nil {
			return ErrMsg{Err: err}
		}
		up := tr.UpcomingTransits(res.Ephemeris, res.Target, q.Site, now, q.Count)
		return ResultMsg{Result: res, Upcoming: up, At: now}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
