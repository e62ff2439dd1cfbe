package live

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// defaultColumns returns the table layout for wide terminals.
func defaultColumns() []table.Column {
	return []table.Column{
		{Title: "Size", Width: 6},
		{Title: "Status", Width: 10},
		{Title: "CPU", Width: 5},
		{Title: "GPU", Width: 5},
		{Title: "CPU s", Width: 10},
		{Title: "GPU s", Width: 10},
		{Title: "Speedup", Width: 9},
		{Title: "FOM x", Width: 9},
		{Title: "Time", Width: 8},
	}
}

// columnsForWidth drops trailing columns that do not fit.
func columnsForWidth(width int) []table.Column {
	columns := defaultColumns()
	if width <= 0 {
		return columns
	}
	used := 0
	for i, column := range columns {
		used += column.Width + 2
		if used > width && i > 1 {
			return columns[:i]
		}
	}
	return columns
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	if noColor {
		return table.DefaultStyles()
	}
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// rowsForState converts UI state into table rows sized to columns.
func rowsForState(state State, now time.Time, noColor bool, columns int) []table.Row {
	rows := make([]table.Row, 0, len(state.Rows))
	for _, row := range state.Rows {
		cells := table.Row{
			fmtInt(row.Size),
			stylizeStatus(row.Status, noColor),
			formatRuns(row.CPURuns, state.Repeats),
			formatRuns(row.GPURuns, state.Repeats),
			formatMetric(row, row.Row.CPUElapsed),
			formatMetric(row, row.Row.GPUElapsed),
			formatMetric(row, row.Row.SpeedupTime),
			formatMetric(row, row.Row.SpeedupFOM),
			formatRowDuration(row, now),
		}
		if columns > 0 && columns < len(cells) {
			cells = cells[:columns]
		}
		rows = append(rows, cells)
	}
	return rows
}
