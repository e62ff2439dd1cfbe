package compare

import "math"

// tiny keeps the relative difference finite when both values are zero.
const tiny = 1e-30

// ArrayResult summarizes the difference between two value sequences.
type ArrayResult struct {
	Count          int
	MaxAbs         float64
	MaxRel         float64
	OOB            int
	LengthMismatch bool
}

// Failed reports whether the arrays disagree beyond tolerance.
func (r ArrayResult) Failed() bool {
	return r.LengthMismatch || r.OOB > 0
}

// CompareArrays compares cpu and gpu element-wise.
func CompareArrays(cpu, gpu []float64, tol Tolerance) ArrayResult {
	if len(cpu) != len(gpu) {
		return ArrayResult{
			Count:          min(len(cpu), len(gpu)),
			MaxAbs:         math.Inf(1),
			MaxRel:         math.Inf(1),
			OOB:            max(len(cpu), len(gpu)),
			LengthMismatch: true,
		}
	}

	result := ArrayResult{Count: len(cpu)}
	for i, a := range cpu {
		b := gpu[i]
		if !isFinite(a) || !isFinite(b) {
			result.OOB++
			result.MaxAbs = math.Inf(1)
			result.MaxRel = math.Inf(1)
			continue
		}
		diff := math.Abs(a - b)
		rel := diff / max(math.Abs(a), math.Abs(b), tiny)
		if diff > result.MaxAbs {
			result.MaxAbs = diff
		}
		if rel > result.MaxRel {
			result.MaxRel = rel
		}
		if diff > tol.Abs && rel > tol.Rel {
			result.OOB++
		}
	}
	return result
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
