package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lulog/internal/config"
	"lulog/internal/logdir"
	"lulog/internal/vcs"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: <repo>/.lulog/config.yml)")
		assumeYes := flags.Bool("yes", false, "Answer yes to every prompt")
		if code, ok := parseCommandFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectExtraArgs(cmd, flags, stderr) {
			return ExitUsage
		}

		in := initInput
		if in == nil {
			in = os.Stdin
		}
		reader := bufio.NewReader(in)

		var targetPath string
		var repoRoot string

		configValue := strings.TrimSpace(*configPath)
		if configValue == "" {
			repoRoot = discoverGitRoot("")
			baseDir := repoRoot
			if baseDir == "" {
				wd, err := os.Getwd()
				if err != nil {
					fmt.Fprintf(stderr, "Init failed: %v\n", err)
					return ExitError
				}
				baseDir = wd
			}
			targetPath = config.ConfigPath(baseDir)
		} else {
			abs, err := filepath.Abs(configValue)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			targetPath = abs
			repoRoot = discoverGitRoot(config.RepoRootFromConfigPath(targetPath))
		}
		configDir := filepath.Dir(targetPath)

		if info, err := os.Stat(configDir); err == nil && !info.IsDir() {
			fmt.Fprintf(stderr, "Init failed: config directory %q is not a directory\n", configDir)
			return ExitError
		}
		if info, err := os.Stat(targetPath); err == nil {
			if info.IsDir() {
				fmt.Fprintf(stderr, "Init failed: config path %q is a directory\n", targetPath)
				return ExitError
			}
			fmt.Fprintf(stderr, "Init failed: config file already exists at %q\n", targetPath)
			return ExitError
		} else if !os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Init failed: stat config file: %v\n", err)
			return ExitError
		}

		if !*assumeYes {
			proceed, err := confirm(reader, stdout, fmt.Sprintf("Initialize lulog config in %s?", configDir), true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			if !proceed {
				fmt.Fprintln(stderr, "Init cancelled.")
				return ExitError
			}
		}

		addGitignore := false
		if repoRoot != "" {
			addGitignore = *assumeYes
			if !*assumeYes {
				answer, err := confirm(reader, stdout, "Add dump logs and index to .gitignore?", true)
				if err != nil {
					fmt.Fprintf(stderr, "Init failed: %v\n", err)
					return ExitError
				}
				addGitignore = answer
			}
		}

		if err := config.Scaffold(targetPath); err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", targetPath)

		if addGitignore {
			added, err := ignoreOutputs(repoRoot, logdir.DefaultLogRoot(), config.DefaultDatabase)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
				return ExitError
			}
			if len(added) > 0 {
				fmt.Fprintf(stdout, "Updated %s (%s)\n", filepath.Join(repoRoot, ".gitignore"), strings.Join(added, ", "))
			}
		}
		return ExitOK
	}
}

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

// discoverGitRoot returns the git root or empty when not found.
var discoverGitRoot = func(startDir string) string {
	root, err := vcs.DiscoverRepoRoot(context.Background(), startDir)
	if err != nil {
		return ""
	}
	return root
}
