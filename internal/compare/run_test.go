package compare

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lulog/internal/testutil"
)

func writeTrees(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	cpu := filepath.Join(root, "cpu")
	gpu := filepath.Join(root, "gpu")
	testutil.WriteLogTree(t, cpu, testutil.LogTree{
		"step_cycle1_rank0": {"e": {1, 2, 3}, "p": {0.5, 0.25}},
		"step_cycle2_rank0": {"e": {4, 5, 6}, "v": {1}},
		"init_rank0":        {"e": {9}},
	})
	testutil.WriteLogTree(t, gpu, testutil.LogTree{
		"step_cycle1_rank0": {"e": {1, 2, 3}, "p": {0.5, 0.25}},
		"step_cycle2_rank0": {"e": {4, 5, 7}},
	})
	return cpu, gpu
}

func TestRunReportsFailuresAndMissing(t *testing.T) {
	cpu, gpu := writeTrees(t)
	ctx := testutil.Context(t, 0)

	report, err := Run(ctx, Options{
		CPURoot:   cpu,
		GPURoot:   gpu,
		Tolerance: DefaultTolerance(PrecisionDouble),
	})
	require.NoError(t, err)
	require.Equal(t, 3, report.Compared())
	require.Equal(t, 1, report.Failures)
	require.Len(t, report.Missing, 1)
	require.Contains(t, report.Missing[0], filepath.Join("step_cycle2_rank0", "matrix", "v.csv"))
	require.Equal(t, 1, report.ExitCode(false))
	require.Equal(t, 1, report.ExitCode(true))

	failed := report.Files[1]
	require.Equal(t, "step_cycle1_rank0", report.Files[0].Step)
	require.Equal(t, "p", failed.Field)
	require.False(t, failed.Failed())

	last := report.Files[2]
	require.Equal(t, "step_cycle2_rank0", last.Step)
	require.Equal(t, 1, last.OOB)
	require.InDelta(t, 1.0, last.MaxAbs, 1e-12)
}

func TestRunFilters(t *testing.T) {
	cpu, gpu := writeTrees(t)
	report, err := Run(context.Background(), Options{
		CPURoot:   cpu,
		GPURoot:   gpu,
		Tolerance: DefaultTolerance(PrecisionDouble),
		Steps:     []string{"step_cycle1_rank0"},
		Fields:    []string{"e"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Compared())
	require.Zero(t, report.Failures)
	require.Empty(t, report.Missing)
	require.Equal(t, 0, report.ExitCode(false))
}

func TestRunMissingGPUStep(t *testing.T) {
	cpu, gpu := writeTrees(t)
	require.NoError(t, os.RemoveAll(filepath.Join(gpu, "step_cycle2_rank0")))

	report, err := Run(context.Background(), Options{
		CPURoot:      cpu,
		GPURoot:      gpu,
		Tolerance:    DefaultTolerance(PrecisionDouble),
		AllowMissing: true,
	})
	require.NoError(t, err)
	require.Equal(t, 2, report.Compared())
	require.Len(t, report.Missing, 1)
	require.Equal(t, 0, report.ExitCode(true))
	require.Equal(t, 1, report.ExitCode(false))
}

func TestRunReadError(t *testing.T) {
	cpu, gpu := writeTrees(t)
	bad := filepath.Join(gpu, "step_cycle1_rank0", "matrix", "e.csv")
	require.NoError(t, os.WriteFile(bad, []byte("not-a-number"), 0o644))

	report, err := Run(context.Background(), Options{
		CPURoot:   cpu,
		GPURoot:   gpu,
		Tolerance: DefaultTolerance(PrecisionDouble),
		Steps:     []string{"step_cycle1_rank0"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, report.Failures)
	require.Error(t, report.Files[0].Err)
}

func TestRunNoSteps(t *testing.T) {
	_, err := Run(context.Background(), Options{CPURoot: t.TempDir(), GPURoot: t.TempDir()})
	require.ErrorIs(t, err, ErrNoSteps)
}

func TestRunCanceled(t *testing.T) {
	cpu, gpu := writeTrees(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, Options{CPURoot: cpu, GPURoot: gpu})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunCopiedTreeMatches(t *testing.T) {
	cpu, _ := writeTrees(t)
	gpu := testutil.CopyTree(t, cpu)

	report, err := Run(testutil.Context(t, 0), Options{
		CPURoot:   cpu,
		GPURoot:   gpu,
		Tolerance: DefaultTolerance(PrecisionFloat),
	})
	require.NoError(t, err)
	require.Equal(t, 4, report.Compared())
	require.Zero(t, report.Failures)
	require.Empty(t, report.Missing)
	require.Equal(t, 0, report.ExitCode(false))
}
