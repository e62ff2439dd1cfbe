package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model renders a live console UI using Bubble Tea.
type Model struct {
	state        State
	table        table.Model
	columns      int
	events       <-chan Event
	tickInterval time.Duration
	now          time.Time
	noColor      bool
}

// Options configures the live UI model.
type Options struct {
	NoColor      bool
	TickInterval time.Duration
	Title        string
	Sizes        []int
	Repeats      int
}

// NewModel constructs a live UI model for an event stream.
func NewModel(events <-chan Event, opts Options) Model {
	tickInterval := opts.TickInterval
	if tickInterval <= 0 {
		tickInterval = 200 * time.Millisecond
	}
	columns := defaultColumns()
	state := NewState(opts.Title, opts.Sizes, opts.Repeats)
	state.StartedAt = time.Now()
	now := state.StartedAt
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rowsForState(state, now, opts.NoColor, len(columns))),
		table.WithFocused(false),
		table.WithHeight(max(len(state.Rows)+3, 4)),
	)
	t.SetStyles(tableStyles(opts.NoColor))
	return Model{
		state:        state,
		table:        t,
		columns:      len(columns),
		events:       events,
		tickInterval: tickInterval,
		now:          now,
		noColor:      opts.NoColor,
	}
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

// Init starts ticking and waits for the first event.
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.events), tick(m.tickInterval))
}

// Update consumes UI events and timer ticks.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m, nil
	case tea.WindowSizeMsg:
		columns := columnsForWidth(typed.Width)
		m.columns = len(columns)
		m.table.SetRows(nil)
		m.table.SetColumns(columns)
		m.table.SetWidth(typed.Width)
		m.table.SetHeight(max(typed.Height-4, 1))
		m.table.SetRows(rowsForState(m.state, m.now, m.noColor, m.columns))
		return m, nil
	case EventMsg:
		m = applyEvent(m, typed.Event)
		if typed.Event.Kind == EventDone {
			return m, tea.Quit
		}
		return m, waitForEvent(m.events)
	case tickMsg:
		m.now = time.Time(typed)
		m.table.SetRows(rowsForState(m.state, m.now, m.noColor, m.columns))
		return m, tick(m.tickInterval)
	}
	return m, nil
}

// View renders the live UI.
func (m Model) View() string {
	header := renderHeader(m.state, m.now, m.noColor)
	summary := renderSummary(m.state, m.noColor)
	tableView := m.table.View()
	footer := renderFooter(m.state, m.noColor)
	return lipgloss.JoinVertical(lipgloss.Left, header, summary, tableView, footer) + "\n"
}

// EventMsg wraps a UI event for Bubble Tea.
type EventMsg struct {
	Event Event
}

// tickMsg carries a clock tick for updates.
type tickMsg time.Time

// waitForEvent blocks until a UI event is available.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}

// tick emits a periodic tick message.
func tick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// applyEvent mutates model state based on a UI event.
func applyEvent(model Model, event Event) Model {
	if !event.EmittedAt.IsZero() {
		model.now = event.EmittedAt
	}
	model.state = Reduce(model.state, event)
	model.table.SetRows(rowsForState(model.state, model.now, model.noColor, model.columns))
	return model
}
