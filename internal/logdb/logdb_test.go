package logdb

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lulog/internal/csvdump"
	"lulog/internal/logdir"
	"lulog/internal/testutil"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := testutil.Context(t, 0)
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestEnsureSchemaIdempotent verifies the DDL can be applied repeatedly.
func TestEnsureSchemaIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := testutil.Context(t, 0)
	require.NoError(t, EnsureSchema(ctx, db))
	require.NoError(t, EnsureSchema(ctx, db))
	require.Contains(t, SchemaDDL(), "dump_values")
}

// TestIngestTreeCountsValues verifies matrix and info dumps are loaded.
func TestIngestTreeCountsValues(t *testing.T) {
	db := openTestDB(t)
	ctx := testutil.Context(t, 0)
	root := t.TempDir()
	testutil.WriteLogTree(t, root, testutil.LogTree{
		"step_cycle1_rank0": {"x": {1, 2, 3}, "y": {4}},
		"step_cycle2_rank0": {"x": {5, 6}},
	})
	info := logdir.JoinPath(logdir.JoinPath(root, "step_cycle1_rank0"), "info")
	require.True(t, logdir.EnsureDir(info))
	require.True(t, csvdump.WriteScalar(filepath.Join(info, "dt.csv"), 0.5))

	result, err := IngestTree(ctx, db, root, "cpu", nil)
	require.NoError(t, err)
	require.Equal(t, 2, result.Steps)
	require.Equal(t, 4, result.Files)
	require.Equal(t, int64(7), result.Values)

	count, err := CountValues(ctx, db, result.RunID)
	require.NoError(t, err)
	require.Equal(t, int64(7), count)

	runs, err := ListRuns(ctx, db)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, "cpu", runs[0].Label)
	require.Equal(t, result.RunID, runs[0].RunID)
}

// TestIngestTreeEmptyRoot verifies a tree without step directories is rejected.
func TestIngestTreeEmptyRoot(t *testing.T) {
	db := openTestDB(t)
	ctx := testutil.Context(t, 0)
	_, err := IngestTree(ctx, db, t.TempDir(), "empty", nil)
	require.Error(t, err)

	runs, err := ListRuns(ctx, db)
	require.NoError(t, err)
	require.Empty(t, runs)
}

// TestFieldDiffs verifies per-field maxima over shared indices.
func TestFieldDiffs(t *testing.T) {
	db := openTestDB(t)
	ctx := testutil.Context(t, 0)

	cpuRoot := t.TempDir()
	gpuRoot := t.TempDir()
	testutil.WriteLogTree(t, cpuRoot, testutil.LogTree{
		"step_cycle1_rank0": {"e": {1, 2, 3}, "p": {10}},
	})
	testutil.WriteLogTree(t, gpuRoot, testutil.LogTree{
		"step_cycle1_rank0": {"e": {1, 2.5}, "p": {7}},
	})

	base, err := IngestTree(ctx, db, cpuRoot, "cpu", nil)
	require.NoError(t, err)
	head, err := IngestTree(ctx, db, gpuRoot, "gpu", nil)
	require.NoError(t, err)

	diffs, err := FieldDiffs(ctx, db, base.RunID, head.RunID)
	require.NoError(t, err)
	require.Equal(t, []FieldDiff{
		{Step: "step_cycle1_rank0", Kind: KindMatrix, Field: "e", Paired: 2, MaxAbs: 0.5},
		{Step: "step_cycle1_rank0", Kind: KindMatrix, Field: "p", Paired: 1, MaxAbs: 3},
	}, diffs)
}
