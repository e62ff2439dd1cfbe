package speedup

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner defines how benchmark binaries are executed.
type CommandRunner interface {
	Run(ctx context.Context, dir string, env []string, name string, args ...string) (string, error)
}

// ExecRunner executes binaries with os/exec, merging stdout and stderr.
type ExecRunner struct{}

// Run executes name and returns its combined output. A non-zero exit is an
// error carrying the output.
func (ExecRunner) Run(ctx context.Context, dir string, env []string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = env
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	if err := cmd.Run(); err != nil {
		command := strings.Join(append([]string{name}, args...), " ")
		return output.String(), fmt.Errorf("command failed: %s: %w\n%s", command, err, output.String())
	}
	return output.String(), nil
}
