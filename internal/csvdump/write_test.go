package csvdump

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// TestWriteScalarRoundTrip verifies a scalar file parses back to the value.
func TestWriteScalarRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dt.csv")
	value := 1.0 / 7.0
	if !WriteScalar(path, value) {
		t.Fatalf("expected WriteScalar to succeed")
	}
	content := readFile(t, path)
	if !strings.HasSuffix(content, "\n") || strings.Count(content, "\n") != 1 {
		t.Fatalf("expected one trailing newline, got %q", content)
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(content), 64)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed != value {
		t.Fatalf("round trip mismatch: %v != %v", parsed, value)
	}
}

// TestWriteScalarInteger verifies integers are written plainly.
func TestWriteScalarInteger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cycle.csv")
	if !WriteScalar(path, 12) {
		t.Fatalf("expected WriteScalar to succeed")
	}
	if got := readFile(t, path); got != "12\n" {
		t.Fatalf("unexpected content: %q", got)
	}
}

// TestWriteScalarOpenFailure verifies a missing directory reports false.
func TestWriteScalarOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dt.csv")
	if WriteScalar(path, 1.0) {
		t.Fatalf("expected WriteScalar to fail")
	}
}

// TestWriteArrayStride verifies every stride-th element is written.
func TestWriteArrayStride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.csv")
	if !WriteArray(path, []int{0, 1, 2, 3, 4, 5}, 2) {
		t.Fatalf("expected WriteArray to succeed")
	}
	if got := readFile(t, path); got != "0\n2\n4" {
		t.Fatalf("unexpected content: %q", got)
	}
}

// TestWriteArrayStrideOne verifies lines carry no trailing newline.
func TestWriteArrayStrideOne(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.csv")
	if !WriteArray(path, []float32{1, 2}, 1) {
		t.Fatalf("expected WriteArray to succeed")
	}
	if got := readFile(t, path); got != "1.000000000e+00\n2.000000000e+00" {
		t.Fatalf("unexpected content: %q", got)
	}
}

// TestWriteArrayHugeStride verifies a stride past the data writes only the first element.
func TestWriteArrayHugeStride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.csv")
	if !WriteArray(path, []int{7, 8, 9}, math.MaxInt) {
		t.Fatalf("expected WriteArray to succeed")
	}
	if got := readFile(t, path); got != "7" {
		t.Fatalf("unexpected content: %q", got)
	}
	if !WriteArrayN(path, []int{7, 8, 9}, 3, math.MaxInt-1) {
		t.Fatalf("expected WriteArrayN to succeed")
	}
	if got := readFile(t, path); got != "7" {
		t.Fatalf("unexpected content: %q", got)
	}
}

// TestWriteArrayNCount verifies only the first count elements are considered.
func TestWriteArrayNCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.csv")
	if !WriteArrayN(path, []int{0, 1, 2, 3, 4, 5}, 5, 3) {
		t.Fatalf("expected WriteArrayN to succeed")
	}
	if got := readFile(t, path); got != "0\n3" {
		t.Fatalf("unexpected content: %q", got)
	}
}

// TestWriteArrayInvalid verifies invalid arguments fail without creating a file.
func TestWriteArrayInvalid(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name   string
		data   []float64
		count  int
		stride int
	}{
		{name: "nil", data: nil, count: 1, stride: 1},
		{name: "zero-count", data: []float64{1}, count: 0, stride: 1},
		{name: "zero-stride", data: []float64{1}, count: 1, stride: 0},
		{name: "negative-stride", data: []float64{1}, count: 1, stride: -1},
		{name: "over-read", data: []float64{1, 2}, count: 3, stride: 1},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, tc.name+".csv")
		if WriteArrayN(path, tc.data, tc.count, tc.stride) {
			t.Fatalf("expected %s to fail", tc.name)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("expected no file for %s", tc.name)
		}
	}
	if WriteArray(filepath.Join(dir, "empty.csv"), []float64{}, 1) {
		t.Fatalf("expected empty slice to fail")
	}
}

// TestWriteArrayTruncates verifies an existing file is overwritten.
func TestWriteArrayTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.csv")
	if err := os.WriteFile(path, []byte(strings.Repeat("old\n", 10)), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if !WriteArray(path, []int{7}, 1) {
		t.Fatalf("expected WriteArray to succeed")
	}
	if got := readFile(t, path); got != "7" {
		t.Fatalf("unexpected content: %q", got)
	}
}

// TestWriteArray3 verifies comma-joined rows without a trailing newline.
func TestWriteArray3(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xyz.csv")
	if !WriteArray3(path, []int{1, 2, 3}, []int{4, 5, 6}, []int{7, 8, 9}) {
		t.Fatalf("expected WriteArray3 to succeed")
	}
	if got := readFile(t, path); got != "1,4,7\n2,5,8\n3,6,9" {
		t.Fatalf("unexpected content: %q", got)
	}
}

// TestWriteArray3Invalid verifies nil, empty and short columns are rejected.
func TestWriteArray3Invalid(t *testing.T) {
	dir := t.TempDir()
	full := []float64{1, 2, 3}
	if WriteArray3(filepath.Join(dir, "a.csv"), nil, full, full) {
		t.Fatalf("expected nil column to fail")
	}
	if WriteArray3(filepath.Join(dir, "b.csv"), full, full[:2], full) {
		t.Fatalf("expected short column to fail")
	}
	if WriteArray3(filepath.Join(dir, "c.csv"), []float64{}, full, full) {
		t.Fatalf("expected empty column to fail")
	}
	if WriteArray3N(filepath.Join(dir, "d.csv"), full, full, full, 0) {
		t.Fatalf("expected zero count to fail")
	}
	if !WriteArray3N(filepath.Join(dir, "e.csv"), full, full, full, 2) {
		t.Fatalf("expected count within bounds to succeed")
	}
	if got := readFile(t, filepath.Join(dir, "e.csv")); strings.Count(got, "\n") != 1 {
		t.Fatalf("expected two rows, got %q", got)
	}
}

// TestEncodeArrayError verifies the encoder reports ErrInvalidArgument.
func TestEncodeArrayError(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeArray(&buf, []float64{math.Pi}, 0)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected nothing written, got %q", buf.String())
	}
}
