package live

import (
	"time"

	"lulog/internal/speedup"
)

// EventKind identifies the type of live UI event.
type EventKind int

const (
	// EventSizeStart signals the start of a problem size.
	EventSizeStart EventKind = iota
	// EventRunFinish delivers metrics of one binary invocation.
	EventRunFinish
	// EventSizeFinish delivers the averaged row for a size.
	EventSizeFinish
	// EventDone signals the end of the benchmark.
	EventDone
)

// Event carries a UI update payload.
type Event struct {
	Kind      EventKind
	Size      int
	Index     int
	Total     int
	Target    speedup.Target
	Repeat    int
	Metrics   speedup.Metrics
	Row       speedup.Row
	Error     string
	EmittedAt time.Time
}
