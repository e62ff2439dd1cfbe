package csvdump

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// FilePerm is the mode for files created by the writers.
const FilePerm os.FileMode = 0o644

// WriteScalar overwrites path with a single value followed by a newline.
func WriteScalar[T Number](path string, value T) bool {
	return writeScalar(path, value) == nil
}

// WriteArray overwrites path with every stride-th element of data, one per
// line and without a trailing newline. It returns false for empty data or a
// stride below one.
func WriteArray[T Number](path string, data []T, stride int) bool {
	return writeArray(path, data, len(data), stride) == nil
}

// WriteArrayN is WriteArray restricted to the first count elements.
// A count larger than len(data) is rejected instead of over-reading.
func WriteArrayN[T Number](path string, data []T, count, stride int) bool {
	return writeArray(path, data, count, stride) == nil
}

// WriteArray3 overwrites path with one "a,b,c" row per element of a.
// It returns false if any column is nil, a is empty, or b or c is shorter
// than a.
func WriteArray3[T Number](path string, a, b, c []T) bool {
	return writeArray3(path, a, b, c, len(a)) == nil
}

// WriteArray3N is WriteArray3 restricted to the first count rows.
func WriteArray3N[T Number](path string, a, b, c []T, count int) bool {
	return writeArray3(path, a, b, c, count) == nil
}

func writeScalar[T Number](path string, value T) error {
	return writeFile(path, func(w io.Writer) error {
		return EncodeScalar(w, value)
	})
}

func writeArray[T Number](path string, data []T, count, stride int) error {
	if err := checkArray(len(data), count, stride); err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		return EncodeArrayN(w, data, count, stride)
	})
}

func writeArray3[T Number](path string, a, b, c []T, count int) error {
	if err := checkArray3(a, b, c, count); err != nil {
		return err
	}
	return writeFile(path, func(w io.Writer) error {
		return EncodeArray3N(w, a, b, c, count)
	})
}

// writeFile truncates path and runs encode against a buffered writer.
func writeFile(path string, encode func(io.Writer) error) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePerm)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := encode(bw); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
