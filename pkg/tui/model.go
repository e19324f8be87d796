// Package tui is the display loop: a bubbletea model that pulls frames
// from the prefetch queue on a fixed cadence and renders them, showing a
// placeholder while the queue runs dry.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/will-marella/ascii-dream/pkg/dream"
	"github.com/will-marella/ascii-dream/pkg/render"
)

// FrameSource is the consumer-side view of the prefetch queue. TryNext
// must never block.
type FrameSource interface {
	TryNext() (dream.Frame, bool)
}

// tickMsg drives the frame cadence.
type tickMsg time.Time

// Model is the bubbletea model for the dream display.
type Model struct {
	source  FrameSource
	conv    *render.Converter
	refresh time.Duration
	spin    spinner.Model

	last     *dream.Frame
	shown    int
	width    int
	height   int
	paused   bool
	quitting bool
}

// New creates the display model. refresh is the time each frame stays on
// screen; conv is retargeted on terminal resize.
func New(source FrameSource, conv *render.Converter, refresh time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor)

	return Model{
		source:  source,
		conv:    conv,
		refresh: refresh,
		spin:    sp,
	}
}

// Init starts the spinner and the frame ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tick(m.refresh))
}

// tick schedules the next frame pull.
func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles ticks, keys, resizes, and spinner animation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		// Pull at most one frame per tick. An empty queue keeps the
		// last frame on screen rather than blanking it. Pausing holds
		// the current frame; prefetching continues underneath.
		if !m.paused {
			if f, ok := m.source.TryNext(); ok {
				m.last = &f
				m.shown++
			}
		}
		return m, tick(m.refresh)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.conv != nil {
			m.conv.SetWidth(render.AutoWidth(msg.Width))
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Shown returns how many frames have been displayed.
func (m Model) Shown() int {
	return m.shown
}

// Paused reports whether frame advance is currently held.
func (m Model) Paused() bool {
	return m.paused
}
