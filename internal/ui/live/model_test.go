package live

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"lulog/internal/speedup"
)

// TestModelAppliesEvents verifies events reach the rendered table.
func TestModelAppliesEvents(t *testing.T) {
	model := NewModel(nil, Options{NoColor: true, Title: "lulesh", Sizes: []int{30}, Repeats: 1})
	updated, cmd := model.Update(EventMsg{Event: Event{Kind: EventSizeStart, Size: 30, Total: 1}})
	if cmd == nil {
		t.Fatalf("expected follow-up command")
	}
	model = updated.(Model)
	updated, _ = model.Update(EventMsg{Event: Event{Kind: EventSizeFinish, Row: speedup.Row{
		Size: 30, CPUElapsed: 8, GPUElapsed: 2, SpeedupTime: 4, SpeedupFOM: 3.5,
	}}})
	model = updated.(Model)

	view := model.View()
	for _, want := range []string{"Speedup lulesh", "Done: 1", "done", "3.5"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

// TestModelQuitsOnDone verifies the program stops after the final event.
func TestModelQuitsOnDone(t *testing.T) {
	model := NewModel(nil, Options{NoColor: true})
	updated, cmd := model.Update(EventMsg{Event: Event{Kind: EventDone}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected quit message")
	}
	if !updated.(Model).State().Finished {
		t.Fatalf("expected finished state")
	}
}

// TestColumnsForWidth verifies narrow terminals drop trailing columns.
func TestColumnsForWidth(t *testing.T) {
	if got := len(columnsForWidth(0)); got != len(defaultColumns()) {
		t.Fatalf("expected all columns, got %d", got)
	}
	narrow := columnsForWidth(30)
	if len(narrow) >= len(defaultColumns()) || len(narrow) < 2 {
		t.Fatalf("expected trimmed columns, got %d", len(narrow))
	}
	model := NewModel(nil, Options{NoColor: true, Sizes: []int{30}})
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if updated.(Model).columns != len(narrow) {
		t.Fatalf("expected model to track narrow columns")
	}
}

// TestControllerNilSafe verifies a nil controller ignores events.
func TestControllerNilSafe(t *testing.T) {
	var c *Controller
	c.OnSizeStart(1, 0, 1)
	c.OnDone(nil, nil)
	c.Close()
	if state := c.Wait(); state.Finished {
		t.Fatalf("expected zero state")
	}
}
