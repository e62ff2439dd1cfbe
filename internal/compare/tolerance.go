package compare

import (
	"fmt"
	"strings"
)

// Precision names the floating-point width a simulation was built with.
type Precision string

const (
	PrecisionDouble Precision = "double"
	PrecisionFloat  Precision = "float"
)

// ParsePrecision accepts "double" or "float"; empty means double.
func ParsePrecision(value string) (Precision, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(PrecisionDouble):
		return PrecisionDouble, nil
	case string(PrecisionFloat):
		return PrecisionFloat, nil
	default:
		return "", fmt.Errorf("invalid precision %q (expected double|float)", value)
	}
}

// Tolerance bounds the accepted difference between two values. A pair is
// out of bounds only when it exceeds both Abs and Rel.
type Tolerance struct {
	Abs float64
	Rel float64
}

// DefaultTolerance returns the bounds used for a precision.
func DefaultTolerance(p Precision) Tolerance {
	if p == PrecisionFloat {
		return Tolerance{Abs: 1e-5, Rel: 1e-4}
	}
	return Tolerance{Abs: 1e-12, Rel: 1e-9}
}

// WithOverrides replaces bounds that are set.
func (t Tolerance) WithOverrides(abs, rel *float64) Tolerance {
	if abs != nil {
		t.Abs = *abs
	}
	if rel != nil {
		t.Rel = *rel
	}
	return t
}
