package live

import (
	"time"

	"lulog/internal/speedup"
)

// SizeStatus is the progress of one problem size.
type SizeStatus string

const (
	// SizePending marks a size not yet started.
	SizePending SizeStatus = "pending"
	// SizeRunning marks a size with benchmarks in flight.
	SizeRunning SizeStatus = "running"
	// SizeDone marks a size with an averaged row.
	SizeDone SizeStatus = "done"
	// SizeFailed marks a size aborted by an error.
	SizeFailed SizeStatus = "failed"
)

// SizeRow holds UI state for a single problem size.
type SizeRow struct {
	Size       int
	Status     SizeStatus
	CPURuns    int
	GPURuns    int
	Last       speedup.Metrics
	LastTarget speedup.Target
	Row        speedup.Row
	StartedAt  time.Time
	FinishedAt time.Time
}

// StatusCounts aggregates counts by status bucket.
type StatusCounts struct {
	Pending int
	Running int
	Done    int
	Failed  int
}

// State captures the live UI state for a speedup run.
type State struct {
	Title     string
	Repeats   int
	StartedAt time.Time
	Finished  bool
	Error     string
	LastEvent string
	Rows      []SizeRow
	Counts    StatusCounts
}

// NewState seeds pending rows for the planned sizes.
func NewState(title string, sizes []int, repeats int) State {
	state := State{Title: title, Repeats: repeats}
	for _, size := range sizes {
		state.Rows = append(state.Rows, SizeRow{Size: size, Status: SizePending})
	}
	state.Counts = recount(state.Rows)
	return state
}
