package testutil

import (
	"path/filepath"
	"testing"

	"lulog/internal/csvdump"
	"lulog/internal/logdir"
)

// LogTree maps step directory names to matrix fields and their values.
type LogTree map[string]map[string][]float64

// WriteLogTree writes a dump tree under root using the standard layout.
func WriteLogTree(t testing.TB, root string, tree LogTree) {
	t.Helper()
	for step, fields := range tree {
		matrix := filepath.Join(root, step, "matrix")
		if !logdir.EnsureDir(matrix) {
			t.Fatalf("create %s", matrix)
		}
		for field, values := range fields {
			path := filepath.Join(matrix, field+logdir.CSVExt)
			if !csvdump.WriteArray(path, values, 1) {
				t.Fatalf("write %s", path)
			}
		}
	}
}
