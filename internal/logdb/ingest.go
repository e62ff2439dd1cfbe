package logdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	duckdb "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lulog/internal/compare"
	"lulog/internal/logdir"
)

// Dump kinds, matching the subdirectories of a step directory.
const (
	KindMatrix = "matrix"
	KindInfo   = "info"
)

// IngestResult describes one ingested tree.
type IngestResult struct {
	RunID  string
	Steps  int
	Files  int
	Values int64
}

// IngestTree loads every matrix and info dump under root as a new run.
func IngestTree(ctx context.Context, db *sql.DB, root, label string, logger *zap.Logger) (IngestResult, error) {
	if ctx == nil {
		return IngestResult{}, errors.New("logdb: context is nil")
	}
	if db == nil {
		return IngestResult{}, errors.New("logdb: db is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	steps, err := logdir.FindStepDirs(root, nil)
	if err != nil {
		return IngestResult{}, err
	}
	if len(steps) == 0 {
		return IngestResult{}, fmt.Errorf("no step directories under %s", root)
	}
	if label == "" {
		label = root
	}

	runID := uuid.New()
	result := IngestResult{RunID: runID.String(), Steps: len(steps)}

	conn, err := db.Conn(ctx)
	if err != nil {
		return IngestResult{}, err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN TRANSACTION"); err != nil {
		return IngestResult{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
		}
	}()

	if _, err := conn.ExecContext(ctx,
		"INSERT INTO runs (run_id, label, root, ingested_at) VALUES (CAST(? AS UUID), ?, ?, ?)",
		result.RunID, label, root, time.Now().UTC(),
	); err != nil {
		return IngestResult{}, fmt.Errorf("insert run: %w", err)
	}

	appender, err := newValueAppender(conn)
	if err != nil {
		return IngestResult{}, err
	}
	defer func() {
		if appender != nil {
			_ = appender.Close()
		}
	}()

	runUUID := duckdb.UUID(runID)
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return IngestResult{}, err
		}
		cycle := int32(logdir.ParseCycle(step))
		stepDir := logdir.JoinPath(root, step)
		for _, kind := range []string{KindMatrix, KindInfo} {
			dir := logdir.JoinPath(stepDir, kind)
			if !logdir.IsDir(dir) {
				continue
			}
			fields, err := logdir.ListFields(dir)
			if err != nil {
				return IngestResult{}, err
			}
			for _, field := range fields {
				values, err := compare.ReadValues(logdir.JoinPath(dir, field+logdir.CSVExt))
				if err != nil {
					return IngestResult{}, err
				}
				for i, value := range values {
					if err := appender.AppendRow(runUUID, step, cycle, kind, field, int64(i), value); err != nil {
						return IngestResult{}, fmt.Errorf("append %s/%s: %w", step, field, err)
					}
				}
				result.Files++
				result.Values += int64(len(values))
				logger.Debug("ingested", zap.String("step", step), zap.String("kind", kind), zap.String("field", field), zap.Int("values", len(values)))
			}
		}
	}

	if err := appender.Close(); err != nil {
		return IngestResult{}, fmt.Errorf("flush appender: %w", err)
	}
	appender = nil
	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return IngestResult{}, err
	}
	committed = true
	return result, nil
}

// newValueAppender creates a DuckDB appender for bulk value inserts.
func newValueAppender(conn *sql.Conn) (*duckdb.Appender, error) {
	var appender *duckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		rawConn, ok := driverConn.(driver.Conn)
		if !ok {
			return fmt.Errorf("duckdb driver connection unavailable (got %T)", driverConn)
		}
		var err error
		appender, err = duckdb.NewAppenderFromConn(rawConn, "", "dump_values")
		return err
	}); err != nil {
		return nil, err
	}
	if appender == nil {
		return nil, fmt.Errorf("duckdb appender initialization failed")
	}
	return appender, nil
}
