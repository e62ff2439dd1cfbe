package speedup

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Header is the column order of the speedup CSV.
var Header = []string{"size", "cpu_elapsed_s", "gpu_elapsed_s", "cpu_fom", "gpu_fom", "speedup_time", "speedup_fom"}

// Records converts rows to CSV records without the header.
func Records(rows []Row) [][]string {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, []string{
			strconv.Itoa(row.Size),
			formatFloat(row.CPUElapsed),
			formatFloat(row.GPUElapsed),
			formatFloat(row.CPUFOM),
			formatFloat(row.GPUFOM),
			formatFloat(row.SpeedupTime),
			formatFloat(row.SpeedupFOM),
		})
	}
	return records
}

// EncodeCSV writes the header and rows to w.
func EncodeCSV(w io.Writer, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(Header); err != nil {
		return err
	}
	if err := writer.WriteAll(Records(rows)); err != nil {
		return err
	}
	return writer.Error()
}

// WriteCSV writes the speedup table to path.
func WriteCSV(path string, rows []Row) error {
	if len(rows) == 0 {
		return errors.New("no rows to write")
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeCSV(file, rows); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return file.Close()
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
