package monitor

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/bwstat/internal/errors"
	"github.com/rileyhilliard/bwstat/internal/plot"
	"github.com/rileyhilliard/bwstat/internal/watch"
)

// Layout rows outside the scrolling viewport.
const (
	headerHeight = 2
	footerHeight = 2
)

// Model is the Bubble Tea model for the live bandwidth view.
type Model struct {
	ctx      context.Context
	cycle    *watch.Cycle
	interval time.Duration
	host     string

	series     []plot.Series
	cycles     int
	lastUpdate time.Time
	fetchErr   string
	err        error
	refreshing bool
	tickGen    int

	viewport viewport.Model
	ready    bool
	width    int
	height   int
	quitting bool
	showHelp bool
}

// tickMsg signals that the refresh interval elapsed. Ticks from an earlier
// schedule are dropped by generation.
type tickMsg struct {
	gen int
}

// cycleMsg carries the outcome of one fetch and parse cycle.
type cycleMsg struct {
	res watch.Result
	err error
}

// NewModel creates the model. The first cycle starts from Init.
func NewModel(ctx context.Context, cycle *watch.Cycle, interval time.Duration, host string) Model {
	return Model{
		ctx:        ctx,
		cycle:      cycle,
		interval:   interval,
		host:       host,
		refreshing: true,
	}
}

// Init runs the first cycle immediately.
func (m Model) Init() tea.Cmd {
	return m.cycleCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := m.height - headerHeight - footerHeight
		if h < 1 {
			h = 1
		}
		if !m.ready {
			m.viewport = viewport.New(m.width, h)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = h
		}
		m.viewport.SetContent(m.renderPanels())
		return m, nil

	case tickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		cmd := m.startCycle()
		return m, cmd

	case cycleMsg:
		return m.applyCycle(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// Err returns the error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

func (m *Model) applyCycle(msg cycleMsg) (tea.Model, tea.Cmd) {
	m.refreshing = false

	err := msg.err
	var series []plot.Series
	if err == nil {
		series, err = plot.GridSeries(msg.res.Columns)
	}

	switch {
	case err == nil:
		m.series = series
		m.cycles = msg.res.Cycle
		m.lastUpdate = msg.res.At
		m.fetchErr = ""
		if msg.res.FetchErr != nil {
			m.fetchErr = "fetch failed, showing previous file"
		}
	case errors.IsCode(err, errors.ErrFetch):
		m.fetchErr = "no sample file yet: " + errorMessage(err)
	default:
		m.err = err
		m.quitting = true
		return *m, tea.Quit
	}

	if m.ready {
		m.viewport.SetContent(m.renderPanels())
	}
	cmd := m.tickCmd()
	return *m, cmd
}

// startCycle begins a cycle unless one is already running.
func (m *Model) startCycle() tea.Cmd {
	if m.refreshing {
		return nil
	}
	m.refreshing = true
	return m.cycleCmd()
}

func (m Model) cycleCmd() tea.Cmd {
	ctx, cycle := m.ctx, m.cycle
	return func() tea.Msg {
		res, err := cycle.Run(ctx)
		return cycleMsg{res: res, err: err}
	}
}

// tickCmd schedules the next cycle and invalidates earlier ticks.
func (m *Model) tickCmd() tea.Cmd {
	m.tickGen++
	gen := m.tickGen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

// SecondsSinceUpdate returns how many seconds have passed since the last
// successful cycle.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

func errorMessage(err error) string {
	var e *errors.Error
	if stderrors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// Run shows the live view until the user quits or ctx is cancelled.
func Run(ctx context.Context, cycle *watch.Cycle, interval time.Duration, host string) error {
	p := tea.NewProgram(
		NewModel(ctx, cycle, interval, host),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	if m, ok := final.(Model); ok {
		return m.Err()
	}
	return nil
}
