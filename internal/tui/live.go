// Package tui is a live bubbletea view of an in-progress ensemble run: it
// tracks how many of a Heap's particles have finished while the batch runs
// in the background, then shows the completed/escaped/timed-out/failed
// breakdown.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/dexter/internal/heap"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

const barWidth = 36

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model drives one Heap's ensemble run and renders its live progress. run
// is whichever of the Heap's routines (Integrate, Poincare,
// CalculateFrequencies) the caller's config selected; the view itself only
// watches Progress and Stats, so it doesn't need to know which one is
// running.
type Model struct {
	h        *heap.Heap
	run      func(context.Context)
	started  bool
	finished bool
	start    time.Time
	cancel   context.CancelFunc
}

// NewModel builds a live view over h that drives it with run once the
// program starts.
func NewModel(h *heap.Heap, run func(context.Context)) Model {
	return Model{h: h, run: run}
}

func (m Model) Init() tea.Cmd { return tick() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit
		}
		return m, nil
	case tickMsg:
		if !m.started {
			m.started = true
			m.start = time.Now()
			ctx, cancel := context.WithCancel(context.Background())
			m.cancel = cancel
			go m.run(ctx)
		}
		done, total := m.h.Progress()
		if total > 0 && done >= total {
			m.finished = true
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString("\n  " + cyan.Render("dexter ensemble") + "\n")
	b.WriteString(dimmer.Render("  "+strings.Repeat("─", barWidth+20)) + "\n\n")

	done, total := m.h.Progress()
	progress := 0.0
	if total > 0 {
		progress = float64(done) / float64(total)
	}
	filled := int(progress * barWidth)
	bar := green.Render(strings.Repeat("━", filled)) + dimmer.Render(strings.Repeat("─", barWidth-filled))
	b.WriteString(fmt.Sprintf("  %s  %s\n\n", bar, dim.Render(fmt.Sprintf("%d/%d particles", done, total))))

	elapsed := time.Duration(0)
	if !m.start.IsZero() {
		elapsed = time.Since(m.start)
	}
	b.WriteString(dim.Render(fmt.Sprintf("  elapsed %v", elapsed.Round(time.Millisecond))) + "\n")

	if m.finished {
		b.WriteString("\n  " + white.Render("completed: ") + fmt.Sprintf("%d", m.h.Stats.Completed))
		b.WriteString("  " + white.Render("escaped: ") + fmt.Sprintf("%d", m.h.Stats.Escaped))
		b.WriteString("  " + white.Render("timed out: ") + fmt.Sprintf("%d", m.h.Stats.TimedOut))
		b.WriteString("  " + white.Render("failed: ") + fmt.Sprintf("%d\n", m.h.Stats.Failed))
	}

	b.WriteString("\n" + dim.Render("  q quit") + "\n")
	return b.String()
}
