package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	uiAuto  = "auto"
	uiLive  = "live"
	uiPlain = "plain"
)

const liveFallbackWarning = "Live speedup table requested but stdout is not a TTY; printing one line per run instead."

// uiModeDecision says how speedup reports progress.
type uiModeDecision struct {
	useLive bool
	warning string
}

// isTerminal reports whether a writer is a TTY. Tests replace it.
var isTerminal = defaultIsTerminal

// resolveUIMode picks between the live speedup table and plain per-run lines.
// --verbose always wins and forces plain lines.
func resolveUIMode(mode string, verbose bool, stdout io.Writer) (uiModeDecision, error) {
	if verbose {
		return uiModeDecision{}, nil
	}
	normalized := strings.ToLower(strings.TrimSpace(mode))
	switch normalized {
	case "", uiAuto:
		return uiModeDecision{useLive: isTerminal(stdout)}, nil
	case uiLive:
		if isTerminal(stdout) {
			return uiModeDecision{useLive: true}, nil
		}
		return uiModeDecision{warning: liveFallbackWarning}, nil
	case uiPlain:
		return uiModeDecision{}, nil
	default:
		return uiModeDecision{}, fmt.Errorf("invalid --ui value %q (expected %s|%s|%s)", mode, uiAuto, uiLive, uiPlain)
	}
}

func defaultIsTerminal(stdout io.Writer) bool {
	switch w := stdout.(type) {
	case nil:
		return false
	case *os.File:
		return term.IsTerminal(int(w.Fd()))
	case interface{ Fd() uintptr }:
		return term.IsTerminal(int(w.Fd()))
	}
	return false
}
