package live

import (
	"io"
	"os"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"lulog/internal/speedup"
)

// Controller runs the live UI and implements speedup.Observer.
type Controller struct {
	events    chan Event
	program   *tea.Program
	done      chan struct{}
	closeOnce sync.Once
	final     State
	now       func() time.Time
}

// Start launches a live UI controller that writes to stdout.
func Start(stdout io.Writer, opts Options) *Controller {
	if stdout == nil {
		stdout = os.Stdout
	}
	events := make(chan Event, 256)
	model := NewModel(events, opts)
	program := tea.NewProgram(model, tea.WithOutput(stdout), tea.WithInput(nil))
	controller := &Controller{
		events:  events,
		program: program,
		done:    make(chan struct{}),
		now:     time.Now,
	}
	go func() {
		finalModel, err := program.Run()
		if err == nil {
			if typed, ok := finalModel.(Model); ok {
				controller.final = typed.State()
			}
		}
		close(controller.done)
	}()
	return controller
}

// Close signals the UI to stop.
func (c *Controller) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.events)
	})
}

// Wait blocks until the UI has exited and returns its final state.
func (c *Controller) Wait() State {
	if c == nil {
		return State{}
	}
	<-c.done
	return c.final
}

// OnSizeStart forwards size start events to the UI.
func (c *Controller) OnSizeStart(size, index, total int) {
	c.send(Event{Kind: EventSizeStart, Size: size, Index: index, Total: total})
}

// OnRunFinish forwards per-binary metrics to the UI.
func (c *Controller) OnRunFinish(size int, target speedup.Target, repeat int, metrics speedup.Metrics) {
	c.send(Event{Kind: EventRunFinish, Size: size, Target: target, Repeat: repeat, Metrics: metrics})
}

// OnSizeFinish forwards averaged rows to the UI.
func (c *Controller) OnSizeFinish(row speedup.Row) {
	c.send(Event{Kind: EventSizeFinish, Size: row.Size, Row: row})
}

// OnDone forwards completion to the UI and closes it.
func (c *Controller) OnDone(rows []speedup.Row, err error) {
	event := Event{Kind: EventDone}
	if err != nil {
		event.Error = err.Error()
	}
	c.send(event)
	c.Close()
}

// send enqueues an event without blocking the caller.
func (c *Controller) send(event Event) {
	if c == nil {
		return
	}
	if event.EmittedAt.IsZero() {
		event.EmittedAt = c.now()
	}
	select {
	case c.events <- event:
	default:
	}
}
