package config

import (
	"fmt"
	"strings"

	"lulog/internal/compare"
)

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

// Validate checks a normalized config for correctness.
func Validate(cfg *Config) error {
	var issues []Issue
	add := func(field, message string) {
		issues = append(issues, Issue{Field: field, Message: message})
	}

	if cfg.Version == 0 {
		add("version", "is required")
	} else if cfg.Version != 1 {
		add("version", fmt.Sprintf("unsupported version %d", cfg.Version))
	}

	if _, err := compare.ParsePrecision(cfg.Compare.Precision); err != nil {
		add("compare.precision", fmt.Sprintf("unsupported precision %q (expected float|double)", cfg.Compare.Precision))
	}
	if cfg.Compare.AbsTol != nil && *cfg.Compare.AbsTol < 0 {
		add("compare.abs_tol", "must be >= 0")
	}
	if cfg.Compare.RelTol != nil && *cfg.Compare.RelTol < 0 {
		add("compare.rel_tol", "must be >= 0")
	}
	checkNames(add, "compare.steps", cfg.Compare.Steps)
	checkNames(add, "compare.fields", cfg.Compare.Fields)

	if strings.TrimSpace(cfg.Logs.CPURoot) == strings.TrimSpace(cfg.Logs.GPURoot) {
		add("logs.gpu_root", "must differ from logs.cpu_root")
	}

	for i, size := range cfg.Speedup.Sizes {
		if size <= 0 {
			add(fmt.Sprintf("speedup.sizes[%d]", i), "must be > 0")
		}
	}
	if cfg.Speedup.Iterations < 0 {
		add("speedup.iterations", "must be > 0")
	}
	if cfg.Speedup.CPUThreads < 0 {
		add("speedup.cpu_threads", "must be > 0")
	}
	if cfg.Speedup.Repeats < 0 {
		add("speedup.repeats", "must be > 0")
	}

	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

// checkNames flags empty and duplicate entries in a name filter list.
func checkNames(add func(field, message string), field string, names []string) {
	seen := map[string]struct{}{}
	for i, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			add(fmt.Sprintf("%s[%d]", field, i), "is required")
			continue
		}
		if _, exists := seen[name]; exists {
			add(field, fmt.Sprintf("duplicate entry %q", name))
			continue
		}
		seen[name] = struct{}{}
	}
}
