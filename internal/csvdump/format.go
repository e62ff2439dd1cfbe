// Package csvdump writes simulation values to small delimited text files.
//
// Floating-point values are printed in scientific notation with enough
// digits to round-trip (9 for float32, 17 for float64). Integers use their
// plain decimal form.
package csvdump

import (
	"math"
	"reflect"
	"strconv"
)

// Integer lists the integer kinds accepted by the writers.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Float lists the floating-point kinds accepted by the writers.
type Float interface {
	~float32 | ~float64
}

// Number is any value the writers know how to format.
type Number interface {
	Integer | Float
}

// Max round-trip decimal digits per float width.
const (
	Float32Digits = 9
	Float64Digits = 17
)

// appendFunc appends the textual form of a value to dst.
type appendFunc[T Number] func(dst []byte, v T) []byte

// formatterFor picks the formatting for T once per call instead of per value.
func formatterFor[T Number]() appendFunc[T] {
	var zero T
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Float32:
		return func(dst []byte, v T) []byte {
			return appendFloat(dst, float64(v), Float32Digits, 32)
		}
	case reflect.Float64:
		return func(dst []byte, v T) []byte {
			return appendFloat(dst, float64(v), Float64Digits, 64)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return func(dst []byte, v T) []byte {
			return strconv.AppendInt(dst, int64(v), 10)
		}
	default:
		return func(dst []byte, v T) []byte {
			return strconv.AppendUint(dst, uint64(v), 10)
		}
	}
}

// IsFloat reports whether T is a floating-point kind.
func IsFloat[T Number]() bool {
	var zero T
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// FormatValue returns the text written for a single value.
func FormatValue[T Number](v T) string {
	return string(formatterFor[T]()(nil, v))
}

func appendFloat(dst []byte, v float64, digits, bitSize int) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "nan"...)
	case math.IsInf(v, 1):
		return append(dst, "inf"...)
	case math.IsInf(v, -1):
		return append(dst, "-inf"...)
	}
	return strconv.AppendFloat(dst, v, 'e', digits, bitSize)
}
