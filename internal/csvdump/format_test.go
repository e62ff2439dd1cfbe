package csvdump

import (
	"math"
	"strconv"
	"testing"
)

type realT float64

// TestFormatValueFloat64 verifies scientific notation at 17 digits.
func TestFormatValueFloat64(t *testing.T) {
	cases := map[float64]string{
		1:    "1.00000000000000000e+00",
		-2.5: "-2.50000000000000000e+00",
		0:    "0.00000000000000000e+00",
	}
	for value, want := range cases {
		if got := FormatValue(value); got != want {
			t.Fatalf("FormatValue(%v) = %q, want %q", value, got, want)
		}
	}
}

// TestFormatValueFloat32 verifies scientific notation at 9 digits.
func TestFormatValueFloat32(t *testing.T) {
	if got := FormatValue(float32(0.1)); got != "1.000000015e-01" {
		t.Fatalf("unexpected float32 format: %q", got)
	}
}

// TestFormatValueIntegers verifies integers keep default formatting.
func TestFormatValueIntegers(t *testing.T) {
	if got := FormatValue(42); got != "42" {
		t.Fatalf("unexpected int format: %q", got)
	}
	if got := FormatValue(int8(-7)); got != "-7" {
		t.Fatalf("unexpected int8 format: %q", got)
	}
	if got := FormatValue(uint64(math.MaxUint64)); got != "18446744073709551615" {
		t.Fatalf("unexpected uint64 format: %q", got)
	}
}

// TestFormatValueNamedType verifies named float types format as floats.
func TestFormatValueNamedType(t *testing.T) {
	if got := FormatValue(realT(3)); got != "3.00000000000000000e+00" {
		t.Fatalf("unexpected named float format: %q", got)
	}
	if !IsFloat[realT]() || IsFloat[int32]() {
		t.Fatalf("unexpected IsFloat result")
	}
}

// TestFormatValueNonFinite verifies nan and inf spellings.
func TestFormatValueNonFinite(t *testing.T) {
	if got := FormatValue(math.NaN()); got != "nan" {
		t.Fatalf("unexpected nan: %q", got)
	}
	if got := FormatValue(math.Inf(1)); got != "inf" {
		t.Fatalf("unexpected inf: %q", got)
	}
	if got := FormatValue(float32(math.Inf(-1))); got != "-inf" {
		t.Fatalf("unexpected -inf: %q", got)
	}
}

// TestFormatValueRoundTrip verifies parsed output reproduces the value.
func TestFormatValueRoundTrip(t *testing.T) {
	values64 := []float64{math.Pi, 1.0 / 3.0, 6.02214076e23, -math.SmallestNonzeroFloat64, math.MaxFloat64}
	for _, v := range values64 {
		parsed, err := strconv.ParseFloat(FormatValue(v), 64)
		if err != nil {
			t.Fatalf("parse %v: %v", v, err)
		}
		if parsed != v {
			t.Fatalf("round trip mismatch: %v != %v", parsed, v)
		}
	}
	values32 := []float32{math.Pi, 1.0 / 3.0, math.MaxFloat32, math.SmallestNonzeroFloat32}
	for _, v := range values32 {
		parsed, err := strconv.ParseFloat(FormatValue(v), 32)
		if err != nil {
			t.Fatalf("parse %v: %v", v, err)
		}
		if float32(parsed) != v {
			t.Fatalf("round trip mismatch: %v != %v", parsed, v)
		}
	}
}
