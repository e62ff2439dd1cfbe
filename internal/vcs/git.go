// Package vcs reads the git state of the LULESH checkout that produced a
// dump tree, so index runs can be labeled by branch and commit.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// shortCommit is the commit prefix length used in run labels.
const shortCommit = 12

// Checkout is the git state of a working tree.
type Checkout struct {
	Root   string
	Commit string
	// Branch is "HEAD" when detached.
	Branch string
	// Dirty means tracked files differ from HEAD. Untracked dumps do not count.
	Dirty bool
}

// gitRunner runs one git command in dir and returns its trimmed stdout.
type gitRunner interface {
	Run(ctx context.Context, dir string, args ...string) (string, error)
}

type execGitRunner struct{}

func (execGitRunner) Run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Client runs git through a replaceable runner.
type Client struct {
	runner gitRunner
}

// NewClient returns a Client using runner, or the git binary when nil.
func NewClient(runner gitRunner) Client {
	if runner == nil {
		runner = execGitRunner{}
	}
	return Client{runner: runner}
}

var defaultClient = NewClient(nil)

// DiscoverRepoRoot returns the top level of the work tree containing startDir.
func DiscoverRepoRoot(ctx context.Context, startDir string) (string, error) {
	return defaultClient.DiscoverRepoRoot(ctx, startDir)
}

// DescribeCheckout returns the run label for the checkout containing dir.
func DescribeCheckout(ctx context.Context, dir string) (string, error) {
	checkout, err := defaultClient.Describe(ctx, dir)
	if err != nil {
		return "", err
	}
	return checkout.Label(), nil
}

// DiscoverRepoRoot returns the top level of the work tree containing startDir,
// defaulting to the working directory.
func (c Client) DiscoverRepoRoot(ctx context.Context, startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}
	root, err := c.runner.Run(ctx, startDir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("discover git root: %w", err)
	}
	return root, nil
}

// Describe reads HEAD, the branch name and the dirty flag of the checkout
// containing dir.
func (c Client) Describe(ctx context.Context, dir string) (Checkout, error) {
	root, err := c.DiscoverRepoRoot(ctx, dir)
	if err != nil {
		return Checkout{}, err
	}
	head, err := c.runner.Run(ctx, root, "rev-parse", "HEAD", "--abbrev-ref", "HEAD")
	if err != nil {
		return Checkout{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, branch, ok := strings.Cut(head, "\n")
	if !ok || commit == "" {
		return Checkout{}, fmt.Errorf("resolve HEAD: unexpected output %q", head)
	}
	status, err := c.runner.Run(ctx, root, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return Checkout{}, fmt.Errorf("check dirty state: %w", err)
	}
	return Checkout{
		Root:   root,
		Commit: strings.TrimSpace(commit),
		Branch: strings.TrimSpace(branch),
		Dirty:  status != "",
	}, nil
}

// Label renders "<branch>@<short commit>", or the short commit alone when
// detached, with "+dirty" appended for uncommitted changes.
func (c Checkout) Label() string {
	label := c.Commit
	if len(label) > shortCommit {
		label = label[:shortCommit]
	}
	if c.Branch != "" && c.Branch != "HEAD" {
		label = c.Branch + "@" + label
	}
	if c.Dirty {
		label += "+dirty"
	}
	return label
}
