package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"lulog/internal/logging"
)

// defaultLogLevel keeps the CLI quiet unless LOG_LEVEL asks for more.
const defaultLogLevel = "error"

// newLogger builds the CLI logger on stderr.
var newLogger = func(stderr io.Writer) *zap.Logger {
	return logging.FromEnv(stderr, defaultLogLevel)
}

// parseCommandFlags parses args and reports usage problems. The bool is
// false when the caller should return the exit code.
func parseCommandFlags(cmd *Command, flags *flag.FlagSet, args []string, stdout, stderr io.Writer) (int, bool) {
	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			printCommandUsage(cmd, stdout)
			return ExitOK, false
		}
		fmt.Fprintf(stderr, "invalid arguments: %v\n", err)
		printCommandUsage(cmd, stderr)
		return ExitUsage, false
	}
	return ExitOK, true
}

// rejectExtraArgs fails when positional arguments remain.
func rejectExtraArgs(cmd *Command, flags *flag.FlagSet, stderr io.Writer) bool {
	if flags.NArg() == 0 {
		return false
	}
	fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
	printCommandUsage(cmd, stderr)
	return true
}

// splitList parses a comma separated list, dropping empty entries.
func splitList(value string) []string {
	var items []string
	for _, part := range strings.Split(value, ",") {
		if item := strings.TrimSpace(part); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// optionalFloat is a float flag that records whether it was set.
type optionalFloat struct {
	value *float64
}

func (f *optionalFloat) String() string {
	if f == nil || f.value == nil {
		return ""
	}
	return strconv.FormatFloat(*f.value, 'g', -1, 64)
}

func (f *optionalFloat) Set(raw string) error {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", raw)
	}
	f.value = &parsed
	return nil
}

// orDefault returns the flag value when set, otherwise fallback.
func (f *optionalFloat) orDefault(fallback *float64) *float64 {
	if f.value != nil {
		return f.value
	}
	return fallback
}

// useColor reports whether styled output is appropriate for stdout.
func useColor(stdout io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isTerminal(stdout)
}

// painter colors status words when enabled.
type painter struct {
	enabled bool
}

func (p painter) paint(text string, color lipgloss.Color) string {
	if !p.enabled {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func (p painter) ok(text string) string   { return p.paint(text, lipgloss.Color("42")) }
func (p painter) fail(text string) string { return p.paint(text, lipgloss.Color("196")) }
func (p painter) warn(text string) string { return p.paint(text, lipgloss.Color("220")) }
