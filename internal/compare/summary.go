package compare

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"lulog/internal/logdir"
)

// StepSummary aggregates the files of one step directory.
type StepSummary struct {
	Step          string
	Cycle         int
	MaxAbs        float64
	MaxRel        float64
	OOB           int
	FilesCompared int
}

// CycleSummary aggregates every step that belongs to one cycle.
type CycleSummary struct {
	Cycle         int
	MaxAbs        float64
	MaxRel        float64
	OOB           int
	FilesCompared int
}

// Summary holds per-step rows in walk order and per-cycle rows sorted by cycle.
type Summary struct {
	Steps  []StepSummary
	Cycles []CycleSummary
}

// Summarize folds file results into step and cycle rows. Files that could
// not be read are not counted; steps without readable files are omitted.
func Summarize(report Report) Summary {
	var summary Summary
	stepIndex := map[string]int{}
	for _, file := range report.Files {
		if file.Err != nil {
			continue
		}
		idx, ok := stepIndex[file.Step]
		if !ok {
			idx = len(summary.Steps)
			stepIndex[file.Step] = idx
			summary.Steps = append(summary.Steps, StepSummary{
				Step:  file.Step,
				Cycle: logdir.ParseCycle(file.Step),
			})
		}
		row := &summary.Steps[idx]
		row.FilesCompared++
		row.OOB += file.OOB
		row.MaxAbs = math.Max(row.MaxAbs, file.MaxAbs)
		row.MaxRel = math.Max(row.MaxRel, file.MaxRel)
	}

	cycles := map[int]*CycleSummary{}
	for _, step := range summary.Steps {
		entry, ok := cycles[step.Cycle]
		if !ok {
			entry = &CycleSummary{Cycle: step.Cycle}
			cycles[step.Cycle] = entry
		}
		entry.MaxAbs = math.Max(entry.MaxAbs, step.MaxAbs)
		entry.MaxRel = math.Max(entry.MaxRel, step.MaxRel)
		entry.OOB += step.OOB
		entry.FilesCompared += step.FilesCompared
	}
	for _, entry := range cycles {
		summary.Cycles = append(summary.Cycles, *entry)
	}
	sort.Slice(summary.Cycles, func(i, j int) bool {
		return summary.Cycles[i].Cycle < summary.Cycles[j].Cycle
	})
	return summary
}

// CycleHeader and StepHeader are the column names of the summary CSVs.
var (
	CycleHeader = []string{"cycle", "max_abs", "max_rel", "oob", "files_compared"}
	StepHeader  = []string{"step", "cycle", "max_abs", "max_rel", "oob", "files_compared"}
)

// CycleRecords renders cycle rows as CSV records without the header.
func (s Summary) CycleRecords() [][]string {
	records := make([][]string, 0, len(s.Cycles))
	for _, c := range s.Cycles {
		records = append(records, []string{
			strconv.Itoa(c.Cycle),
			FormatFloat(c.MaxAbs),
			FormatFloat(c.MaxRel),
			strconv.Itoa(c.OOB),
			strconv.Itoa(c.FilesCompared),
		})
	}
	return records
}

// StepRecords renders step rows as CSV records without the header.
func (s Summary) StepRecords() [][]string {
	records := make([][]string, 0, len(s.Steps))
	for _, st := range s.Steps {
		records = append(records, []string{
			st.Step,
			strconv.Itoa(st.Cycle),
			FormatFloat(st.MaxAbs),
			FormatFloat(st.MaxRel),
			strconv.Itoa(st.OOB),
			strconv.Itoa(st.FilesCompared),
		})
	}
	return records
}

// WriteCycleCSV writes the per-cycle summary with a header row.
func WriteCycleCSV(path string, s Summary) error {
	return writeCSV(path, CycleHeader, s.CycleRecords())
}

// WriteStepCSV writes the per-step summary with a header row.
func WriteStepCSV(path string, s Summary) error {
	return writeCSV(path, StepHeader, s.StepRecords())
}

// FormatFloat renders v as Python's repr does, so summary CSVs read the same
// as those written by plot_correctness.py. Integral values keep ".0" and
// magnitudes outside [1e-4, 1e16) switch to exponent form.
func FormatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case math.IsNaN(v):
		return "nan"
	}
	if v == 0 {
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return sci
	}
	text := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}

func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(records); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
