package cli

import (
	"fmt"
	"io"
)

const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

type Command struct {
	Name    string
	Summary string
	Usage   []string
	Run     func(args []string, stdout, stderr io.Writer) int
}

func Run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stdout)
		return ExitUsage
	}
	if isHelpArg(args[0]) {
		printUsage(stdout)
		return ExitOK
	}

	cmd := findCommand(args[0])
	if cmd == nil {
		fmt.Fprintf(stderr, "Unknown command: %s\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	return cmd.Run(args[1:], stdout, stderr)
}

func findCommand(name string) *Command {
	for _, cmd := range commands {
		if cmd.Name == name {
			return cmd
		}
	}
	return nil
}

func isHelpArg(arg string) bool {
	switch arg {
	case "-h", "--help", "help":
		return true
	default:
		return false
	}
}

func wantsHelp(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "-h", "--help":
			return true
		}
	}
	return false
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  lulog <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintln(w, "\nUse \"lulog <command> --help\" for more information.")
}

func printCommandUsage(cmd *Command, w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	for _, line := range cmd.Usage {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if cmd.Summary != "" {
		fmt.Fprintf(w, "\n%s\n", cmd.Summary)
	}
}

func command(name, summary string, usage []string, runner func(cmd *Command) func(args []string, stdout, stderr io.Writer) int) *Command {
	cmd := &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
	}
	cmd.Run = runner(cmd)
	return cmd
}

var commands = []*Command{
	command("init", "Scaffold .lulog/config.yml", []string{
		"lulog init [--config <path>] [--yes]",
	}, runInit),
	command("validate", "Validate .lulog/config.yml", []string{
		"lulog validate [--config <path>]",
	}, runValidate),
	command("mkstep", "Create a step dump directory with matrix and info", []string{
		"lulog mkstep --step <name> [--rank <n>] [--base <dir>]",
	}, runMkstep),
	command("compare", "Compare CPU and GPU dump trees", []string{
		"lulog compare [--cpu <dir>] [--gpu <dir>] [--precision double|float] [--abs-tol <v>] [--rel-tol <v>]",
		"lulog compare [--steps a,b] [--fields x,y] [--allow-missing] [--quiet] [--no-color]",
	}, runCompare),
	command("summary", "Write per-cycle and per-step correctness CSVs", []string{
		"lulog summary [--cpu <dir>] [--gpu <dir>] [--out-csv <path>] [--out-steps-csv <path>] [--xlsx <path>]",
	}, runSummary),
	command("index", "Load dump trees into DuckDB and diff runs", []string{
		"lulog index add [--db <path>] [--label <name>] <root>",
		"lulog index runs [--db <path>]",
		"lulog index diff [--db <path>] <base-run-id> <head-run-id>",
	}, runIndex),
	command("speedup", "Benchmark CPU and GPU binaries across problem sizes", []string{
		"lulog speedup [--sizes 30,50] [--iterations <n>] [--cpu-threads <n>] [--repeats <n>] [--out <path>]",
		"lulog speedup [--cpu-bin <path>] [--gpu-bin <path>] [--ui auto|live|plain] [--no-color]",
	}, runSpeedup),
}
