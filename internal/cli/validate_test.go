package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lulog/internal/config"
)

// TestValidateCommandSuccess verifies a scaffolded config validates.
func TestValidateCommandSuccess(t *testing.T) {
	dir := isolate(t)
	if err := config.Scaffold(config.ConfigPath(dir)); err != nil {
		t.Fatalf("scaffold: %v", err)
	}

	code, out, errOut := runCLI(t, "validate")
	if code != ExitOK {
		t.Fatalf("expected exit %d, got %d (%s)", ExitOK, code, errOut)
	}
	if !strings.Contains(out, "Config OK") {
		t.Fatalf("expected success output, got %q", out)
	}
	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}
	for _, want := range []string{
		"cpu dumps: " + filepath.Join(root, "benchmarks", "logs", "cpu"),
		"gpu dumps: " + filepath.Join(root, "benchmarks", "logs", "gpu"),
		"precision: double",
		filepath.Join(root, "benchmarks", "logs.duckdb"),
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

// TestValidateCommandReportsIssues verifies validation errors name the field.
func TestValidateCommandReportsIssues(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yml")
	body := "version: 1\ncompare:\n  precision: half\nspeedup:\n  sizes: [30, -1]\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	code, _, errOut := runCLI(t, "validate", "--config", path)
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	for _, want := range []string{"compare.precision", "speedup.sizes[1]"} {
		if !strings.Contains(errOut, want) {
			t.Fatalf("expected %q in %q", want, errOut)
		}
	}
}

// TestValidateCommandMissingConfig verifies discovery failures are reported.
func TestValidateCommandMissingConfig(t *testing.T) {
	isolate(t)
	code, _, errOut := runCLI(t, "validate")
	if code != ExitError {
		t.Fatalf("expected exit %d, got %d", ExitError, code)
	}
	if !strings.Contains(errOut, "Validation failed") {
		t.Fatalf("expected failure output, got %q", errOut)
	}
}

// TestValidateCommandRejectsArgs verifies positional arguments are usage errors.
func TestValidateCommandRejectsArgs(t *testing.T) {
	isolate(t)
	code, _, _ := runCLI(t, "validate", "extra")
	if code != ExitUsage {
		t.Fatalf("expected exit %d, got %d", ExitUsage, code)
	}
}
