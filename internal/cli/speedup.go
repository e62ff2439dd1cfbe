package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"path/filepath"
	"syscall"

	"lulog/internal/logdir"
	"lulog/internal/speedup"
	"lulog/internal/ui/live"
)

// speedupRunner is a test seam for the command runner used by speedup.
var speedupRunner speedup.CommandRunner = speedup.ExecRunner{}

// runSpeedup builds the handler for the speedup command.
func runSpeedup(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}
		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		flags.SetOutput(stderr)
		configPath := flags.String("config", "", "Path to config file (default: search for .lulog/config.yml)")
		sizes := flags.String("sizes", "", "Comma-separated problem sizes (default: speedup.sizes)")
		iterations := flags.Int("iterations", 0, "Iterations per run (default: speedup.iterations)")
		cpuThreads := flags.Int("cpu-threads", 0, "OMP_NUM_THREADS for the CPU run (default: speedup.cpu_threads)")
		repeats := flags.Int("repeats", 0, "Runs averaged per size (default: speedup.repeats)")
		cpuBin := flags.String("cpu-bin", "", "CPU binary (default: speedup.cpu_bin)")
		gpuBin := flags.String("gpu-bin", "", "GPU binary (default: speedup.gpu_bin)")
		out := flags.String("out", "", "Output CSV (default: speedup.out)")
		uiMode := flags.String("ui", "auto", "auto|live|plain")
		verbose := flags.Bool("verbose", false, "Print every run; disables the live UI")
		noColor := flags.Bool("no-color", false, "Disable colored output")
		if code, ok := parseCommandFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if rejectExtraArgs(cmd, flags, stderr) {
			return ExitUsage
		}

		decision, err := resolveUIMode(*uiMode, *verbose, stdout)
		if err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return ExitUsage
		}
		if decision.warning != "" {
			fmt.Fprintln(stderr, decision.warning)
		}

		cfg, err := loadConfigOrDefaults(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		sizeList := cfg.Speedup.Sizes
		if *sizes != "" {
			sizeList, err = speedup.ParseSizes(*sizes)
			if err != nil {
				fmt.Fprintf(stderr, "Invalid --sizes: %v\n", err)
				return ExitUsage
			}
		}
		if len(sizeList) == 0 {
			fmt.Fprintln(stderr, "No sizes specified.")
			return ExitUsage
		}

		opts := speedup.Options{
			CPUBin:     pick(binaryPath(*cpuBin), cfg.resolve(cfg.Speedup.CPUBin)),
			GPUBin:     pick(binaryPath(*gpuBin), cfg.resolve(cfg.Speedup.GPUBin)),
			Dir:        cfg.Root,
			Sizes:      sizeList,
			Iterations: pickInt(*iterations, cfg.Speedup.Iterations),
			CPUThreads: pickInt(*cpuThreads, cfg.Speedup.CPUThreads),
			Repeats:    pickInt(*repeats, cfg.Speedup.Repeats),
			Runner:     speedupRunner,
		}
		outPath := pick(*out, cfg.resolve(cfg.Speedup.Out))

		logger := newLogger(stderr)
		defer func() { _ = logger.Sync() }()
		opts.Logger = logger

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var observer speedup.Observer
		var controller *live.Controller
		if decision.useLive {
			controller = live.Start(stdout, live.Options{
				NoColor: !useColor(stdout, *noColor),
				Title:   filepath.Base(opts.GPUBin),
				Sizes:   sizeList,
				Repeats: opts.Repeats,
			})
			observer = controller
		} else {
			observer = plainObserver{out: stdout, verbose: *verbose}
		}

		rows, runErr := speedup.Run(ctx, opts, observer)
		if controller != nil {
			controller.Wait()
		}
		if runErr != nil {
			fmt.Fprintf(stderr, "Speedup failed: %v\n", runErr)
			return ExitError
		}

		if dir := filepath.Dir(outPath); !logdir.EnsureDir(filepath.ToSlash(dir)) {
			fmt.Fprintf(stderr, "Failed to create %s\n", dir)
			return ExitError
		}
		if err := speedup.WriteCSV(outPath, rows); err != nil {
			fmt.Fprintf(stderr, "Write failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote CSV: %s\n", outPath)
		return ExitOK
	}
}

// plainObserver prints speedup progress as lines.
type plainObserver struct {
	out     io.Writer
	verbose bool
}

func (p plainObserver) OnSizeStart(size, index, total int) {
	fmt.Fprintf(p.out, "[%d/%d] size %d\n", index+1, total, size)
}

func (p plainObserver) OnRunFinish(size int, target speedup.Target, repeat int, metrics speedup.Metrics) {
	if !p.verbose {
		return
	}
	fmt.Fprintf(p.out, "  %s run %d: elapsed=%g s fom=%g\n", target, repeat+1, metrics.Elapsed, metrics.FOM)
}

func (p plainObserver) OnSizeFinish(row speedup.Row) {
	fmt.Fprintf(p.out, "  cpu=%gs gpu=%gs speedup_time=%.3f speedup_fom=%.3f\n",
		row.CPUElapsed, row.GPUElapsed, row.SpeedupTime, row.SpeedupFOM)
}

func (p plainObserver) OnDone(rows []speedup.Row, err error) {}

// binaryPath makes a relative binary path absolute so it survives the
// change of working directory; bare names are left for PATH lookup.
func binaryPath(value string) string {
	if value == "" || filepath.IsAbs(value) || filepath.Base(value) == value {
		return value
	}
	if abs, err := filepath.Abs(value); err == nil {
		return abs
	}
	return value
}

func pick(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func pickInt(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}
