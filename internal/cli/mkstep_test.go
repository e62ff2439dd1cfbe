package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"lulog/internal/logdir"
)

// TestMkstepCreatesLayout verifies the step directory and children exist.
func TestMkstepCreatesLayout(t *testing.T) {
	dir := isolate(t)
	base := filepath.Join(dir, "logs")

	code, out, errOut := runCLI(t, "mkstep", "--base", base, "--step", "step_cycle3", "--rank", "2")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut)
	}
	matrix := filepath.Join(base, "step_cycle3_rank2", "matrix")
	info := filepath.Join(base, "step_cycle3_rank2", "info")
	if !logdir.IsDir(matrix) || !logdir.IsDir(info) {
		t.Fatalf("expected matrix and info dirs")
	}
	if !strings.Contains(out, matrix) {
		t.Fatalf("expected matrix path in output, got %q", out)
	}
}

// TestMkstepDefaultRoot verifies the default log root is used without a config.
func TestMkstepDefaultRoot(t *testing.T) {
	isolate(t)
	code, _, errOut := runCLI(t, "mkstep", "--step", "step_init")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut)
	}
	if !logdir.IsDir(filepath.Join("benchmarks", "logs", "step_init_rank0", "matrix")) {
		t.Fatalf("expected default layout under benchmarks/logs")
	}
}

// TestMkstepUsageErrors verifies invalid arguments exit with usage.
func TestMkstepUsageErrors(t *testing.T) {
	isolate(t)
	if code, _, _ := runCLI(t, "mkstep"); code != ExitUsage {
		t.Fatalf("expected usage exit for missing step, got %d", code)
	}
	if code, _, _ := runCLI(t, "mkstep", "--step", "a/b"); code != ExitUsage {
		t.Fatalf("expected usage exit for nested step, got %d", code)
	}
	if code, _, _ := runCLI(t, "mkstep", "--step", "s", "--rank", "-1"); code != ExitUsage {
		t.Fatalf("expected usage exit for negative rank, got %d", code)
	}
}
