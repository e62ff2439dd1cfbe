package live

import (
	"fmt"

	"lulog/internal/speedup"
)

// Reduce applies a speedup event to the UI state.
func Reduce(state State, event Event) State {
	switch event.Kind {
	case EventSizeStart:
		state = ensureRows(state, event)
		if row := findRow(state, event.Size); row >= 0 {
			state.Rows[row].Status = SizeRunning
			state.Rows[row].StartedAt = event.EmittedAt
		}
	case EventRunFinish:
		if row := findRow(state, event.Size); row >= 0 {
			current := state.Rows[row]
			switch event.Target {
			case speedup.TargetCPU:
				current.CPURuns++
			case speedup.TargetGPU:
				current.GPURuns++
			}
			current.Last = event.Metrics
			current.LastTarget = event.Target
			state.Rows[row] = current
		}
	case EventSizeFinish:
		if row := findRow(state, event.Row.Size); row >= 0 {
			state.Rows[row].Status = SizeDone
			state.Rows[row].Row = event.Row
			state.Rows[row].FinishedAt = event.EmittedAt
		}
	case EventDone:
		state.Finished = true
		state.Error = event.Error
		if event.Error != "" {
			for i := range state.Rows {
				if state.Rows[i].Status == SizeRunning {
					state.Rows[i].Status = SizeFailed
					state.Rows[i].FinishedAt = event.EmittedAt
				}
			}
		}
	}
	state.Counts = recount(state.Rows)
	if message := formatLastEvent(event); message != "" {
		state.LastEvent = message
	}
	return state
}

// ensureRows appends a row for a size the state has not seen.
func ensureRows(state State, event Event) State {
	if findRow(state, event.Size) >= 0 {
		return state
	}
	state.Rows = append(state.Rows, SizeRow{Size: event.Size, Status: SizePending})
	return state
}

// findRow returns the index of the row for size, or -1.
func findRow(state State, size int) int {
	for i, row := range state.Rows {
		if row.Size == size {
			return i
		}
	}
	return -1
}

// recount recomputes status counts for the current rows.
func recount(rows []SizeRow) StatusCounts {
	var counts StatusCounts
	for _, row := range rows {
		switch row.Status {
		case SizePending:
			counts.Pending++
		case SizeRunning:
			counts.Running++
		case SizeDone:
			counts.Done++
		case SizeFailed:
			counts.Failed++
		}
	}
	return counts
}

// formatLastEvent creates a short footer message for the event.
func formatLastEvent(event Event) string {
	switch event.Kind {
	case EventSizeStart:
		return fmt.Sprintf("size %d started (%d/%d)", event.Size, event.Index+1, event.Total)
	case EventRunFinish:
		return fmt.Sprintf("size %d %s run %d: %s s, FOM %s", event.Size, event.Target, event.Repeat+1,
			formatNumber(event.Metrics.Elapsed), formatNumber(event.Metrics.FOM))
	case EventSizeFinish:
		return fmt.Sprintf("size %d speedup %sx", event.Row.Size, formatNumber(event.Row.SpeedupTime))
	case EventDone:
		if event.Error != "" {
			return "failed: " + event.Error
		}
		return "finished"
	}
	return ""
}
