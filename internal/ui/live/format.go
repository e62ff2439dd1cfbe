package live

import (
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// fmtInt converts an int to string.
func fmtInt(value int) string {
	return strconv.Itoa(value)
}

// formatNumber renders a metric with four significant digits.
func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'g', 4, 64)
}

// formatRuns renders completed runs against the planned repeats.
func formatRuns(done, repeats int) string {
	if repeats <= 0 {
		return fmtInt(done)
	}
	return fmtInt(done) + "/" + fmtInt(repeats)
}

// formatMetric renders a metric only once the size has an averaged row.
func formatMetric(row SizeRow, value float64) string {
	if row.Status != SizeDone {
		return ""
	}
	return formatNumber(value)
}

// formatRowDuration returns elapsed or total time for a row.
func formatRowDuration(row SizeRow, now time.Time) string {
	if !row.FinishedAt.IsZero() && !row.StartedAt.IsZero() {
		return formatDuration(row.FinishedAt.Sub(row.StartedAt))
	}
	if !row.StartedAt.IsZero() {
		return formatDuration(now.Sub(row.StartedAt))
	}
	return ""
}

// formatDuration renders a rounded duration for display.
func formatDuration(duration time.Duration) string {
	if duration <= 0 {
		return "0s"
	}
	return duration.Round(100 * time.Millisecond).String()
}

// stylizeStatus applies status coloring when enabled.
func stylizeStatus(status SizeStatus, noColor bool) string {
	return stylize(string(status), noColor, statusColor(status))
}

// statusColor selects a color for a given status.
func statusColor(status SizeStatus) lipgloss.Color {
	switch status {
	case SizeDone:
		return lipgloss.Color("42")
	case SizeFailed:
		return lipgloss.Color("196")
	case SizeRunning:
		return lipgloss.Color("33")
	default:
		return lipgloss.Color("246")
	}
}
