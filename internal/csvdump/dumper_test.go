package csvdump

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// TestDumperLayout verifies fields land in matrix and info directories.
func TestDumperLayout(t *testing.T) {
	base := t.TempDir()
	dumper, err := NewDumper(base, "step_cycle1", 0, nil)
	if err != nil {
		t.Fatalf("new dumper: %v", err)
	}
	if !dumper.Ready() {
		t.Fatalf("expected step directory to be ready")
	}
	if !DumpMatrix(dumper, "e", []float64{1, 2}, 1) {
		t.Fatalf("expected DumpMatrix to succeed")
	}
	if !DumpMatrix3(dumper, "xyz", []int{1}, []int{2}, []int{3}) {
		t.Fatalf("expected DumpMatrix3 to succeed")
	}
	if !DumpInfo(dumper, "numElem", 27) {
		t.Fatalf("expected DumpInfo to succeed")
	}

	stepDir := filepath.Join(base, "step_cycle1_rank0")
	for _, rel := range []string{"matrix/e.csv", "matrix/xyz.csv", "info/numElem.csv"} {
		if _, err := os.Stat(filepath.Join(stepDir, rel)); err != nil {
			t.Fatalf("missing %s: %v", rel, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(stepDir, "matrix", "xyz.csv"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "1,2,3" {
		t.Fatalf("unexpected content: %q", data)
	}
}

// TestDumperLogsFailures verifies failed writes are logged at debug level.
func TestDumperLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	dumper, err := NewDumper(t.TempDir(), "loop", 1, zap.New(core))
	if err != nil {
		t.Fatalf("new dumper: %v", err)
	}
	if DumpMatrix(dumper, "empty", []float64{}, 1) {
		t.Fatalf("expected empty dump to fail")
	}
	failed := logs.FilterMessage("dump failed").All()
	if len(failed) != 1 {
		t.Fatalf("expected one failure log, got %d", len(failed))
	}
	if failed[0].ContextMap()["field"] != "empty" {
		t.Fatalf("unexpected log context: %v", failed[0].ContextMap())
	}
}

// TestNewDumperRejectsBadStep verifies step validation.
func TestNewDumperRejectsBadStep(t *testing.T) {
	if _, err := NewDumper(t.TempDir(), "", 0, nil); err == nil {
		t.Fatalf("expected error for empty step")
	}
}
