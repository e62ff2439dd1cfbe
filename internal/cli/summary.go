package cli

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"lulog/internal/compare"
	"lulog/internal/config"
	"lulog/internal/export"
	"lulog/internal/logdir"
)

// Default summary file names under summary.out_dir.
const (
	cycleCSVName = "correctness.csv"
	stepCSVName  = "correctness_steps.csv"
	xlsxName     = "correctness.xlsx"
)

// runSummary builds the handler for the summary command.
func runSummary(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		cf := registerCompareFlags(flags)
		outCSV := flags.String("out-csv", "", "Per-cycle CSV (default: <summary.out_dir>/correctness.csv)")
		outStepsCSV := flags.String("out-steps-csv", "", "Per-step CSV (default: <summary.out_dir>/correctness_steps.csv)")
		xlsxPath := flags.String("xlsx", "", "Also write an XLSX workbook to this path")
		if code, ok := parseCommandFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectExtraArgs(cmd, flags, stderr) {
			return ExitUsage
		}

		cfg, ok := cf.loadConfig(stderr)
		if !ok {
			return ExitError
		}
		paths := summaryPaths(cfg, *outCSV, *outStepsCSV, *xlsxPath)

		report, opts, code, ok := runTreeComparison(cf, cfg, stderr)
		if !ok {
			return code
		}
		summary := compare.Summarize(report)

		for _, dir := range paths.dirs() {
			if !logdir.EnsureDir(filepath.ToSlash(dir)) {
				fmt.Fprintf(stderr, "Failed to create %s\n", dir)
				return ExitError
			}
		}
		if err := compare.WriteCycleCSV(paths.cycles, summary); err != nil {
			fmt.Fprintf(stderr, "Write failed: %v\n", err)
			return ExitError
		}
		if err := compare.WriteStepCSV(paths.steps, summary); err != nil {
			fmt.Fprintf(stderr, "Write failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote CSV: %s\n", paths.cycles)
		fmt.Fprintf(stdout, "Wrote step CSV: %s\n", paths.steps)

		if paths.xlsx != "" {
			if err := export.WriteSummaryXLSX(paths.xlsx, summary); err != nil {
				fmt.Fprintf(stderr, "Write failed: %v\n", err)
				return ExitError
			}
			fmt.Fprintf(stdout, "Wrote XLSX: %s\n", paths.xlsx)
		}
		return report.ExitCode(opts.AllowMissing)
	}
}

// summaryOutputs holds the resolved output paths of the summary command.
type summaryOutputs struct {
	cycles string
	steps  string
	xlsx   string
}

// summaryPaths applies config defaults to unset output flags.
func summaryPaths(cfg loadedConfig, cycles, steps, xlsx string) summaryOutputs {
	outDir := cfg.resolve(cfg.Summary.OutDir)
	if outDir == "" {
		outDir = config.DefaultOutputDir
	}
	out := summaryOutputs{cycles: cycles, steps: steps, xlsx: xlsx}
	if out.cycles == "" {
		out.cycles = filepath.Join(outDir, cycleCSVName)
	}
	if out.steps == "" {
		out.steps = filepath.Join(outDir, stepCSVName)
	}
	if out.xlsx == "" && cfg.Summary.XLSX {
		out.xlsx = filepath.Join(outDir, xlsxName)
	}
	return out
}

// dirs returns the parent directories of every output.
func (o summaryOutputs) dirs() []string {
	seen := map[string]struct{}{}
	var dirs []string
	for _, path := range []string{o.cycles, o.steps, o.xlsx} {
		if path == "" {
			continue
		}
		dir := filepath.Dir(path)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}
