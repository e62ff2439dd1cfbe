package logdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Run is a row of the runs table.
type Run struct {
	RunID      string
	Label      string
	Root       string
	IngestedAt time.Time
}

// FieldDiff is the largest absolute difference of one field in one step
// between two runs, over the indices both runs share.
type FieldDiff struct {
	Step   string
	Kind   string
	Field  string
	Paired int64
	MaxAbs float64
}

const listRunsSQL = `SELECT CAST(run_id AS VARCHAR), label, root, ingested_at
FROM runs
ORDER BY ingested_at, label`

const fieldDiffsSQL = `SELECT b.step, b.kind, b.field, COUNT(*) AS paired, MAX(ABS(b.value - h.value)) AS max_abs
FROM dump_values b
JOIN dump_values h
  ON b.step = h.step AND b.kind = h.kind AND b.field = h.field AND b.idx = h.idx
WHERE b.run_id = CAST(? AS UUID) AND h.run_id = CAST(? AS UUID)
GROUP BY b.step, b.kind, b.field
ORDER BY b.step, b.kind, b.field`

// ListRuns returns every ingested run, oldest first.
func ListRuns(ctx context.Context, db *sql.DB) ([]Run, error) {
	rows, err := db.QueryContext(ctx, listRunsSQL)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.RunID, &run.Label, &run.Root, &run.IngestedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// FieldDiffs compares two ingested runs field by field.
func FieldDiffs(ctx context.Context, db *sql.DB, baseRunID, headRunID string) ([]FieldDiff, error) {
	rows, err := db.QueryContext(ctx, fieldDiffsSQL, baseRunID, headRunID)
	if err != nil {
		return nil, fmt.Errorf("field diffs: %w", err)
	}
	defer rows.Close()

	var diffs []FieldDiff
	for rows.Next() {
		var diff FieldDiff
		var maxAbs sql.NullFloat64
		if err := rows.Scan(&diff.Step, &diff.Kind, &diff.Field, &diff.Paired, &maxAbs); err != nil {
			return nil, err
		}
		diff.MaxAbs = maxAbs.Float64
		diffs = append(diffs, diff)
	}
	return diffs, rows.Err()
}

// CountValues returns the number of values stored for a run.
func CountValues(ctx context.Context, db *sql.DB, runID string) (int64, error) {
	var count int64
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM dump_values WHERE run_id = CAST(? AS UUID)", runID).Scan(&count)
	return count, err
}
