package cli

import (
	"flag"
	"fmt"
	"io"

	"lulog/internal/config"
)

// runValidate checks the config and prints the dump roots and index it resolves to.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .lulog/config.yml)")
		if code, ok := parseCommandFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectExtraArgs(cmd, flags, stderr) {
			return ExitUsage
		}

		resolved, err := resolveConfigPath(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}

		cfg, err := config.Load(resolved)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%v\n", err)
			return ExitError
		}

		root := config.RepoRootFromConfigPath(resolved)
		fmt.Fprintf(stdout, "Config OK (%s)\n", resolved)
		fmt.Fprintf(stdout, "  cpu dumps: %s\n", config.ResolvePath(root, cfg.Logs.CPURoot))
		fmt.Fprintf(stdout, "  gpu dumps: %s\n", config.ResolvePath(root, cfg.Logs.GPURoot))
		fmt.Fprintf(stdout, "  precision: %s\n", cfg.Compare.Precision)
		fmt.Fprintf(stdout, "  index:     %s\n", config.ResolvePath(root, cfg.Index.Database))
		return ExitOK
	}
}
