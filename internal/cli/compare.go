package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"

	"lulog/internal/compare"
)

// compareFlags are shared by compare and summary.
type compareFlags struct {
	cpu          *string
	gpu          *string
	precision    *string
	absTol       optionalFloat
	relTol       optionalFloat
	steps        *string
	fields       *string
	allowMissing *bool
	configPath   *string
}

// registerCompareFlags adds tree comparison flags to flags.
func registerCompareFlags(flags *flag.FlagSet) *compareFlags {
	cf := &compareFlags{}
	cf.cpu = flags.String("cpu", "", "CPU log root (default: logs.cpu_root)")
	cf.gpu = flags.String("gpu", "", "GPU log root (default: logs.gpu_root)")
	cf.precision = flags.String("precision", "", "double|float (default: compare.precision)")
	flags.Var(&cf.absTol, "abs-tol", "Absolute tolerance override")
	flags.Var(&cf.relTol, "rel-tol", "Relative tolerance override")
	cf.steps = flags.String("steps", "", "Comma-separated step directories")
	cf.fields = flags.String("fields", "", "Comma-separated CSV basenames")
	cf.allowMissing = flags.Bool("allow-missing", false, "Do not fail on missing directories or files")
	cf.configPath = flags.String("config", "", "Path to config file (default: search for .lulog/config.yml)")
	return cf
}

// options merges flags over the config into compare options.
func (cf *compareFlags) options(cfg loadedConfig, logger *zap.Logger) (compare.Options, error) {
	precisionValue := *cf.precision
	if precisionValue == "" {
		precisionValue = cfg.Compare.Precision
	}
	precision, err := compare.ParsePrecision(precisionValue)
	if err != nil {
		return compare.Options{}, err
	}
	tolerance := compare.DefaultTolerance(precision).WithOverrides(
		cf.absTol.orDefault(cfg.Compare.AbsTol),
		cf.relTol.orDefault(cfg.Compare.RelTol),
	)

	opts := compare.Options{
		CPURoot:      *cf.cpu,
		GPURoot:      *cf.gpu,
		Tolerance:    tolerance,
		Steps:        splitList(*cf.steps),
		Fields:       splitList(*cf.fields),
		AllowMissing: *cf.allowMissing || cfg.Compare.AllowMissing,
		Logger:       logger,
	}
	if opts.CPURoot == "" {
		opts.CPURoot = cfg.resolve(cfg.Logs.CPURoot)
	}
	if opts.GPURoot == "" {
		opts.GPURoot = cfg.resolve(cfg.Logs.GPURoot)
	}
	if len(opts.Steps) == 0 {
		opts.Steps = cfg.Compare.Steps
	}
	if len(opts.Fields) == 0 {
		opts.Fields = cfg.Compare.Fields
	}
	return opts, nil
}

// loadConfig loads the config named by --config, or the discovered one.
func (cf *compareFlags) loadConfig(stderr io.Writer) (loadedConfig, bool) {
	cfg, err := loadConfigOrDefaults(*cf.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Config error:\n%v\n", err)
		return loadedConfig{}, false
	}
	return cfg, true
}

// runTreeComparison runs compare.Run and maps setup failures to exit codes.
func runTreeComparison(cf *compareFlags, cfg loadedConfig, stderr io.Writer) (compare.Report, compare.Options, int, bool) {
	logger := newLogger(stderr)
	defer func() { _ = logger.Sync() }()

	opts, err := cf.options(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Config error:\n%v\n", err)
		return compare.Report{}, opts, ExitError, false
	}
	report, err := compare.Run(context.Background(), opts)
	if err != nil {
		if errors.Is(err, compare.ErrNoSteps) {
			fmt.Fprintln(stderr, "No step directories found under CPU root.")
			return report, opts, ExitUsage, false
		}
		fmt.Fprintf(stderr, "Compare failed: %v\n", err)
		return report, opts, ExitError, false
	}
	return report, opts, ExitOK, true
}

// runCompare builds the handler for the compare command.
func runCompare(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		cf := registerCompareFlags(flags)
		quiet := flags.Bool("quiet", false, "Only report problems")
		noColor := flags.Bool("no-color", false, "Disable colored output")
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
		report, opts, code, ok := runTreeComparison(cf, cfg, stderr)
		if !ok {
			return code
		}
		paint := painter{enabled: useColor(stdout, *noColor)}
		printReport(stdout, stderr, report, *quiet, paint)
		return report.ExitCode(opts.AllowMissing)
	}
}

// printReport writes per-file lines to stdout and problems to stderr.
func printReport(stdout, stderr io.Writer, report compare.Report, quiet bool, paint painter) {
	for _, path := range report.Missing {
		fmt.Fprintf(stderr, "%s %s\n", paint.warn("Missing:"), path)
	}
	for _, file := range report.Files {
		name := file.Step + "/" + file.Field + ".csv"
		if file.Err != nil {
			fmt.Fprintf(stderr, "%s %s %v\n", paint.fail("Error reading CSV:"), name, file.Err)
			continue
		}
		if quiet {
			continue
		}
		line := fmt.Sprintf("%s: count=%d max_abs=%s max_rel=%s oob=%d",
			name, file.Count, formatSci(file.MaxAbs), formatSci(file.MaxRel), file.OOB)
		if file.Failed() {
			line = paint.fail(line)
		}
		fmt.Fprintln(stdout, line)
	}
	if quiet {
		return
	}
	summary := fmt.Sprintf("Compared %d files (missing=%d, failures=%d).", report.Compared(), len(report.Missing), report.Failures)
	if report.Failures > 0 {
		summary = paint.fail(summary)
	} else {
		summary = paint.ok(summary)
	}
	fmt.Fprintln(stdout, summary)
}

// formatSci renders a value with three decimals of scientific notation.
func formatSci(value float64) string {
	switch {
	case math.IsNaN(value):
		return "nan"
	case math.IsInf(value, 1):
		return "inf"
	case math.IsInf(value, -1):
		return "-inf"
	}
	return fmt.Sprintf("%.3e", value)
}
