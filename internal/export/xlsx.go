// Package export writes correctness summaries to spreadsheet files.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"lulog/internal/compare"
)

const (
	cyclesSheet = "cycles"
	stepsSheet  = "steps"
)

func colName(n int) string {
	// 1-indexed: 1 -> A, 26 -> Z, 27 -> AA
	if n <= 0 {
		return ""
	}
	out := ""
	for n > 0 {
		n--
		out = string(rune('A'+(n%26))) + out
		n /= 26
	}
	return out
}

func cell(col, row int) string {
	return fmt.Sprintf("%s%d", colName(col), row)
}

// WriteSummaryXLSX writes cycle and step summaries to two sheets.
func WriteSummaryXLSX(path string, summary compare.Summary) error {
	if path == "" {
		return fmt.Errorf("xlsx path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create xlsx dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", cyclesSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(stepsSheet); err != nil {
		return err
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}

	cycleRows := make([][]any, 0, len(summary.Cycles))
	for _, c := range summary.Cycles {
		cycleRows = append(cycleRows, []any{c.Cycle, sheetFloat(c.MaxAbs), sheetFloat(c.MaxRel), c.OOB, c.FilesCompared})
	}
	if err := writeSheet(f, cyclesSheet, compare.CycleHeader, cycleRows, headerStyleID); err != nil {
		return err
	}

	stepRows := make([][]any, 0, len(summary.Steps))
	for _, s := range summary.Steps {
		stepRows = append(stepRows, []any{s.Step, s.Cycle, sheetFloat(s.MaxAbs), sheetFloat(s.MaxRel), s.OOB, s.FilesCompared})
	}
	if err := writeSheet(f, stepsSheet, compare.StepHeader, stepRows, headerStyleID); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any, headerStyleID int) error {
	for i, name := range header {
		if err := f.SetCellValue(sheet, cell(i+1, 1), name); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", cell(len(header), 1), headerStyleID); err != nil {
		return err
	}
	for r, row := range rows {
		if err := f.SetSheetRow(sheet, cell(1, r+2), &row); err != nil {
			return err
		}
	}
	// Freeze the header row.
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// sheetFloat keeps infinities readable; spreadsheets have no infinity value.
func sheetFloat(v float64) any {
	formatted := compare.FormatFloat(v)
	switch formatted {
	case "inf", "-inf", "nan":
		return formatted
	}
	return v
}
