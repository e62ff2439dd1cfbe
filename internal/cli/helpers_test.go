package cli

import (
	"bytes"
	"io"
	"testing"
)

// runCLI executes the CLI and returns exit code, stdout, and stderr.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

// isolate runs the test from an empty working directory without a TTY or git.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	origTerminal := isTerminal
	origGitRoot := discoverGitRoot
	origDescribe := describeCheckout
	isTerminal = func(io.Writer) bool { return false }
	discoverGitRoot = func(string) string { return "" }
	t.Cleanup(func() {
		isTerminal = origTerminal
		discoverGitRoot = origGitRoot
		describeCheckout = origDescribe
	})
	return dir
}
