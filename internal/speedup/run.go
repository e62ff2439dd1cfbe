package speedup

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
)

// Defaults applied by Normalize.
const (
	DefaultSizes      = "30,50,70,90,110"
	DefaultIterations = 100
	DefaultCPUThreads = 24
	DefaultRepeats    = 1
)

// Target names the binary being run.
type Target string

const (
	// TargetCPU is the OpenMP build.
	TargetCPU Target = "cpu"
	// TargetGPU is the CUDA build.
	TargetGPU Target = "gpu"
)

// Row is one size of the speedup table.
type Row struct {
	Size        int
	CPUElapsed  float64
	GPUElapsed  float64
	CPUFOM      float64
	GPUFOM      float64
	SpeedupTime float64
	SpeedupFOM  float64
}

// Options configures a speedup run.
type Options struct {
	CPUBin     string
	GPUBin     string
	Dir        string
	Sizes      []int
	Iterations int
	CPUThreads int
	Repeats    int
	// Env is the base environment; nil means os.Environ().
	Env    []string
	Runner CommandRunner
	Logger *zap.Logger
}

// Observer receives progress events from Run.
type Observer interface {
	// OnSizeStart signals the start of a problem size.
	OnSizeStart(size, index, total int)
	// OnRunFinish delivers the metrics of one binary invocation.
	OnRunFinish(size int, target Target, repeat int, metrics Metrics)
	// OnSizeFinish delivers the averaged row for a size.
	OnSizeFinish(row Row)
	// OnDone signals the end of the run.
	OnDone(rows []Row, err error)
}

// Normalize fills defaults for unset numeric options.
func (o Options) Normalize() Options {
	if o.Iterations <= 0 {
		o.Iterations = DefaultIterations
	}
	if o.CPUThreads <= 0 {
		o.CPUThreads = DefaultCPUThreads
	}
	if o.Repeats <= 0 {
		o.Repeats = DefaultRepeats
	}
	if o.Runner == nil {
		o.Runner = ExecRunner{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Run benchmarks every size, CPU then GPU for each repeat, and returns the
// averaged rows.
func Run(ctx context.Context, opts Options, observer Observer) (rows []Row, err error) {
	if ctx == nil {
		return nil, errors.New("context is nil")
	}
	opts = opts.Normalize()
	if observer != nil {
		defer func() { observer.OnDone(rows, err) }()
	}
	if len(opts.Sizes) == 0 {
		return nil, errors.New("no sizes specified")
	}
	if opts.CPUBin == "" || opts.GPUBin == "" {
		return nil, errors.New("cpu and gpu binaries are required")
	}

	base := opts.Env
	if base == nil {
		base = os.Environ()
	}
	gpuEnv := CleanEnv(base)
	cpuEnv := WithEnv(CleanEnv(base), "OMP_NUM_THREADS", strconv.Itoa(opts.CPUThreads))

	for index, size := range opts.Sizes {
		if observer != nil {
			observer.OnSizeStart(size, index, len(opts.Sizes))
		}
		var cpu, gpu []Metrics
		for repeat := 0; repeat < opts.Repeats; repeat++ {
			metrics, err := runOnce(ctx, opts, TargetCPU, opts.CPUBin, cpuEnv, size)
			if err != nil {
				return rows, err
			}
			cpu = append(cpu, metrics)
			if observer != nil {
				observer.OnRunFinish(size, TargetCPU, repeat, metrics)
			}

			metrics, err = runOnce(ctx, opts, TargetGPU, opts.GPUBin, gpuEnv, size)
			if err != nil {
				return rows, err
			}
			gpu = append(gpu, metrics)
			if observer != nil {
				observer.OnRunFinish(size, TargetGPU, repeat, metrics)
			}
		}
		row := buildRow(size, cpu, gpu)
		opts.Logger.Info("size finished",
			zap.Int("size", size),
			zap.Float64("speedup_time", row.SpeedupTime),
			zap.Float64("speedup_fom", row.SpeedupFOM),
		)
		rows = append(rows, row)
		if observer != nil {
			observer.OnSizeFinish(row)
		}
	}
	return rows, nil
}

// runOnce runs one binary at one size and parses its metrics.
func runOnce(ctx context.Context, opts Options, target Target, bin string, env []string, size int) (Metrics, error) {
	if err := ctx.Err(); err != nil {
		return Metrics{}, err
	}
	args := []string{"-s", strconv.Itoa(size), "-i", strconv.Itoa(opts.Iterations)}
	opts.Logger.Debug("run benchmark", zap.String("target", string(target)), zap.String("bin", bin), zap.Strings("args", args))
	output, err := opts.Runner.Run(ctx, opts.Dir, env, bin, args...)
	if err != nil {
		return Metrics{}, err
	}
	metrics, err := ParseMetrics(output)
	if err != nil {
		return Metrics{}, fmt.Errorf("%s size %d: %w", target, size, err)
	}
	return metrics, nil
}

// buildRow averages repeats and computes both speedups.
func buildRow(size int, cpu, gpu []Metrics) Row {
	row := Row{Size: size}
	row.CPUElapsed, row.CPUFOM = average(cpu)
	row.GPUElapsed, row.GPUFOM = average(gpu)
	if row.GPUElapsed != 0 {
		row.SpeedupTime = row.CPUElapsed / row.GPUElapsed
	}
	if row.CPUFOM != 0 {
		row.SpeedupFOM = row.GPUFOM / row.CPUFOM
	}
	return row
}

func average(values []Metrics) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var elapsed, fom float64
	for _, value := range values {
		elapsed += value.Elapsed
		fom += value.FOM
	}
	n := float64(len(values))
	return elapsed / n, fom / n
}
