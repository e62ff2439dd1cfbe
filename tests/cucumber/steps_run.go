//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"lulog/internal/cli"
	"lulog/internal/config"
	"lulog/internal/logdir"
)

// iRunCommand runs a lulog command line in-process from the fixture repo.
func (s *featureState) iRunCommand(line string) error {
	args := strings.Fields(line)
	if len(args) > 0 && args[0] == "lulog" {
		args = args[1:]
	}
	if len(args) == 0 {
		return fmt.Errorf("no lulog command in %q", line)
	}
	s.lastCommand = line
	s.stdout.Reset()
	s.stderr.Reset()
	s.exitCode = cli.Run(args, &s.stdout, &s.stderr)
	return nil
}

// initGitRepo turns dir into a LULESH-style checkout with one commit, so
// index add can record a commit hash. Dumps and the index stay untracked.
func (s *featureState) initGitRepo(dir string) error {
	if err := s.runGit(dir, "-c", "init.defaultBranch=main", "init", "--quiet"); err != nil {
		return err
	}
	files := map[string]string{
		"Makefile":   "lulesh2.0:\n\t$(CXX) -O3 -o $@ lulesh.cc\n",
		".gitignore": logdir.DefaultLogRoot() + "/\n" + config.DefaultDatabase + "\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := s.runGit(dir, "add", "Makefile", ".gitignore", config.ConfigDirName); err != nil {
		return err
	}
	return s.runGit(dir, "commit", "--quiet", "-m", "lulesh fixture")
}

// runGit runs git in dir, ignoring the host's global and system config.
func (s *featureState) runGit(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_CONFIG_NOSYSTEM=1",
		"GIT_CONFIG_GLOBAL="+os.DevNull,
		"GIT_AUTHOR_NAME=lulog fixture",
		"GIT_AUTHOR_EMAIL=fixture@lulog.invalid",
		"GIT_COMMITTER_NAME=lulog fixture",
		"GIT_COMMITTER_EMAIL=fixture@lulog.invalid",
	)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w (%s)", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}
