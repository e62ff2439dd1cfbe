package cli

import (
	"flag"
	"fmt"
	"io"

	"lulog/internal/logdir"
)

// runMkstep builds the handler for the mkstep command.
func runMkstep(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		base := flags.String("base", "", "Log root (default: logs.root from config or benchmarks/logs)")
		step := flags.String("step", "", "Step name, e.g. step_cycle10")
		rank := flags.Int("rank", 0, "Rank suffix")
		configPath := flags.String("config", "", "Path to config file (default: search for .lulog/config.yml)")
		if code, ok := parseCommandFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectExtraArgs(cmd, flags, stderr) {
			return ExitUsage
		}
		if *step == "" {
			fmt.Fprintln(stderr, "Missing --step")
			printCommandUsage(cmd, stderr)
			return ExitUsage
		}

		baseDir := *base
		if baseDir == "" {
			cfg, err := loadConfigOrDefaults(*configPath)
			if err != nil {
				fmt.Fprintf(stderr, "Config error:\n%v\n", err)
				return ExitError
			}
			baseDir = cfg.resolve(cfg.Logs.Root)
		}

		dir, err := logdir.NewStepDir(baseDir, *step, *rank)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid step: %v\n", err)
			return ExitUsage
		}
		if !dir.Ensure() {
			fmt.Fprintf(stderr, "Failed to create %s\n", dir.Path())
			return ExitError
		}
		fmt.Fprintln(stdout, dir.MatrixDir())
		fmt.Fprintln(stdout, dir.InfoDir())
		return ExitOK
	}
}
