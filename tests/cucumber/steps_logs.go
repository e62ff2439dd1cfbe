//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"lulog/internal/csvdump"
	"lulog/internal/logdir"
)

// theDumpHolds writes one matrix field under the configured cpu or gpu root.
func (s *featureState) theDumpHolds(target, step, field, values string) error {
	if err := s.aGitRepositoryWithValidConfig(); err != nil {
		return err
	}
	var parsed []float64
	for _, part := range strings.Split(values, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return fmt.Errorf("parse value %q: %w", part, err)
		}
		parsed = append(parsed, value)
	}
	matrix := filepath.Join(s.repoDir, "benchmarks", "logs", target, step, "matrix")
	if !logdir.EnsureDir(matrix) {
		return fmt.Errorf("create %s", matrix)
	}
	path := filepath.Join(matrix, field+logdir.CSVExt)
	if !csvdump.WriteArray(path, parsed, 1) {
		return fmt.Errorf("write %s", path)
	}
	return nil
}
