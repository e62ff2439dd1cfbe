// Package speedup runs the CPU and GPU benchmark binaries across problem
// sizes and reports elapsed time and figure-of-merit speedups.
package speedup

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LogEnvPrefix marks environment variables that enable array dumps.
const LogEnvPrefix = "LULESH_LOG_"

// ErrMetricsMissing reports output without an elapsed time or FOM line.
var ErrMetricsMissing = errors.New("failed to parse elapsed time/FOM from output")

var (
	elapsedPattern = regexp.MustCompile(`Elapsed time\s*=\s*([0-9.]+)`)
	fomPattern     = regexp.MustCompile(`FOM\s*=\s*([0-9.eE+-]+)`)
)

// Metrics holds the figures reported by one benchmark run.
type Metrics struct {
	Elapsed float64
	FOM     float64
}

// ParseSizes parses a comma separated list of problem sizes, skipping
// empty entries.
func ParseSizes(value string) ([]int, error) {
	var sizes []int
	for _, part := range strings.Split(value, ",") {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		size, err := strconv.Atoi(token)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q", token)
		}
		if size <= 0 {
			return nil, fmt.Errorf("size must be positive: %d", size)
		}
		sizes = append(sizes, size)
	}
	return sizes, nil
}

// CleanEnv returns env without dump-enabling variables.
func CleanEnv(env []string) []string {
	cleaned := make([]string, 0, len(env))
	for _, entry := range env {
		if strings.HasPrefix(entry, LogEnvPrefix) {
			continue
		}
		cleaned = append(cleaned, entry)
	}
	return cleaned
}

// WithEnv returns env with key set to value, replacing any earlier entry.
func WithEnv(env []string, key, value string) []string {
	prefix := key + "="
	out := make([]string, 0, len(env)+1)
	for _, entry := range env {
		if strings.HasPrefix(entry, prefix) {
			continue
		}
		out = append(out, entry)
	}
	return append(out, prefix+value)
}

// ParseMetrics extracts the last elapsed time and FOM reported in output.
func ParseMetrics(output string) (Metrics, error) {
	var metrics Metrics
	var haveElapsed, haveFOM bool
	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if match := elapsedPattern.FindStringSubmatch(line); match != nil {
			value, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				return Metrics{}, fmt.Errorf("parse elapsed time %q: %w", match[1], err)
			}
			metrics.Elapsed = value
			haveElapsed = true
		}
		if match := fomPattern.FindStringSubmatch(line); match != nil {
			value, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				return Metrics{}, fmt.Errorf("parse FOM %q: %w", match[1], err)
			}
			metrics.FOM = value
			haveFOM = true
		}
	}
	if err := scanner.Err(); err != nil {
		return Metrics{}, err
	}
	if !haveElapsed || !haveFOM {
		return Metrics{}, ErrMetricsMissing
	}
	return metrics, nil
}
