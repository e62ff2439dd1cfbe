package csvdump

import (
	"errors"
	"fmt"
	"io"
)

// ErrInvalidArgument is returned for empty inputs, a zero count or a zero stride.
var ErrInvalidArgument = errors.New("csvdump: invalid argument")

const (
	lineSep  = '\n'
	fieldSep = ','
)

// EncodeScalar writes "<value>\n".
func EncodeScalar[T Number](w io.Writer, value T) error {
	buf := formatterFor[T]()(nil, value)
	buf = append(buf, lineSep)
	_, err := w.Write(buf)
	return err
}

// EncodeArray writes every stride-th element of data, one per line.
func EncodeArray[T Number](w io.Writer, data []T, stride int) error {
	return EncodeArrayN(w, data, len(data), stride)
}

// EncodeArrayN writes every stride-th element among the first count
// elements of data. The last line has no trailing newline.
func EncodeArrayN[T Number](w io.Writer, data []T, count, stride int) error {
	if err := checkArray(len(data), count, stride); err != nil {
		return err
	}
	format := formatterFor[T]()
	// count+stride may overflow for large strides.
	samples := (count-1)/stride + 1
	buf := make([]byte, 0, 32*samples)
	for k := 0; k < samples; k++ {
		if k > 0 {
			buf = append(buf, lineSep)
		}
		buf = format(buf, data[k*stride])
	}
	_, err := w.Write(buf)
	return err
}

// EncodeArray3 writes rows "a[i],b[i],c[i]" for every index of a.
func EncodeArray3[T Number](w io.Writer, a, b, c []T) error {
	return EncodeArray3N(w, a, b, c, len(a))
}

// EncodeArray3N writes count rows "a[i],b[i],c[i]". The last row has no
// trailing newline.
func EncodeArray3N[T Number](w io.Writer, a, b, c []T, count int) error {
	if err := checkArray3(a, b, c, count); err != nil {
		return err
	}
	format := formatterFor[T]()
	buf := make([]byte, 0, 96*count)
	for i := 0; i < count; i++ {
		buf = format(buf, a[i])
		buf = append(buf, fieldSep)
		buf = format(buf, b[i])
		buf = append(buf, fieldSep)
		buf = format(buf, c[i])
		if i+1 < count {
			buf = append(buf, lineSep)
		}
	}
	_, err := w.Write(buf)
	return err
}

func checkArray(length, count, stride int) error {
	switch {
	case length == 0:
		return fmt.Errorf("%w: empty data", ErrInvalidArgument)
	case count <= 0:
		return fmt.Errorf("%w: count must be > 0", ErrInvalidArgument)
	case stride <= 0:
		return fmt.Errorf("%w: stride must be > 0", ErrInvalidArgument)
	case count > length:
		return fmt.Errorf("%w: count %d exceeds data length %d", ErrInvalidArgument, count, length)
	}
	return nil
}

func checkArray3[T Number](a, b, c []T, count int) error {
	if a == nil || b == nil || c == nil {
		return fmt.Errorf("%w: nil column", ErrInvalidArgument)
	}
	if count <= 0 {
		return fmt.Errorf("%w: count must be > 0", ErrInvalidArgument)
	}
	if len(a) < count || len(b) < count || len(c) < count {
		return fmt.Errorf("%w: columns shorter than count %d", ErrInvalidArgument, count)
	}
	return nil
}
