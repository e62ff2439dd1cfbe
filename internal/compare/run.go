package compare

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"lulog/internal/logdir"
)

// ErrNoSteps is returned when the CPU root holds no step directories.
var ErrNoSteps = errors.New("no step directories found under CPU root")

const matrixDirName = "matrix"

// Options configures a tree comparison.
type Options struct {
	CPURoot      string
	GPURoot      string
	Tolerance    Tolerance
	Steps        []string
	Fields       []string
	AllowMissing bool
	Logger       *zap.Logger
}

// FileResult is the comparison outcome for one dump file.
type FileResult struct {
	Step  string
	Field string
	ArrayResult
	Err error
}

// Failed reports whether the file counts as a failure.
func (r FileResult) Failed() bool {
	return r.Err != nil || r.ArrayResult.Failed()
}

// Report aggregates a tree comparison.
type Report struct {
	Files    []FileResult
	Missing  []string
	Failures int
}

// Compared returns the number of files that had a counterpart.
func (r Report) Compared() int {
	return len(r.Files)
}

// ExitCode maps the report to a process exit status.
func (r Report) ExitCode(allowMissing bool) int {
	if r.Failures > 0 || (len(r.Missing) > 0 && !allowMissing) {
		return 1
	}
	return 0
}

// Run compares every matrix dump under the CPU root with the GPU root.
func Run(ctx context.Context, opts Options) (Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.CPURoot == "" || opts.GPURoot == "" {
		return Report{}, fmt.Errorf("cpu and gpu roots are required")
	}

	steps, err := logdir.FindStepDirs(opts.CPURoot, opts.Steps)
	if err != nil {
		return Report{}, err
	}
	if len(steps) == 0 {
		return Report{}, ErrNoSteps
	}

	fieldFilter := make(map[string]struct{}, len(opts.Fields))
	for _, field := range opts.Fields {
		fieldFilter[field] = struct{}{}
	}

	var report Report
	missing := func(kind, path string) {
		logger.Warn("missing "+kind, zap.String("path", path))
		report.Missing = append(report.Missing, path)
	}

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		cpuMatrix := logdir.JoinPath(logdir.JoinPath(opts.CPURoot, step), matrixDirName)
		gpuMatrix := logdir.JoinPath(logdir.JoinPath(opts.GPURoot, step), matrixDirName)

		cpuOK := logdir.IsDir(cpuMatrix)
		if !cpuOK {
			missing("cpu matrix dir", cpuMatrix)
			if !opts.AllowMissing {
				continue
			}
		}
		gpuOK := logdir.IsDir(gpuMatrix)
		if !gpuOK {
			missing("gpu matrix dir", gpuMatrix)
		}
		if !cpuOK || !gpuOK {
			continue
		}

		fields, err := logdir.ListFields(cpuMatrix)
		if err != nil {
			return report, fmt.Errorf("list %s: %w", cpuMatrix, err)
		}
		for _, field := range fields {
			if len(fieldFilter) > 0 {
				if _, ok := fieldFilter[field]; !ok {
					continue
				}
			}
			name := field + logdir.CSVExt
			gpuPath := logdir.JoinPath(gpuMatrix, name)
			if _, err := os.Stat(gpuPath); err != nil {
				missing("gpu file", gpuPath)
				continue
			}
			result := compareFile(step, field, logdir.JoinPath(cpuMatrix, name), gpuPath, opts.Tolerance)
			if result.Err != nil {
				logger.Warn("read dump", zap.String("step", step), zap.String("field", field), zap.Error(result.Err))
			} else {
				logger.Debug("compared",
					zap.String("step", step),
					zap.String("field", field),
					zap.Int("count", result.Count),
					zap.Float64("max_abs", result.MaxAbs),
					zap.Float64("max_rel", result.MaxRel),
					zap.Int("oob", result.OOB),
				)
			}
			if result.Failed() {
				report.Failures++
			}
			report.Files = append(report.Files, result)
		}
	}
	return report, nil
}

func compareFile(step, field, cpuPath, gpuPath string, tol Tolerance) FileResult {
	result := FileResult{Step: step, Field: field}
	cpuVals, err := ReadValues(cpuPath)
	if err != nil {
		result.Err = err
		return result
	}
	gpuVals, err := ReadValues(gpuPath)
	if err != nil {
		result.Err = err
		return result
	}
	result.ArrayResult = CompareArrays(cpuVals, gpuVals, tol)
	return result
}
