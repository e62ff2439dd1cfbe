package config

import (
	"strings"

	"lulog/internal/compare"
	"lulog/internal/logdir"
	"lulog/internal/speedup"
)

// Default values filled by Normalize.
const (
	DefaultDatabase   = "benchmarks/logs.duckdb"
	DefaultSpeedupOut = "benchmarks/speedup.csv"
	DefaultCPUBin     = "lulesh2.0"
	DefaultGPUBin     = "lulesh-gpu-opt/lulesh-cuda/lulesh_gpu"
)

// DefaultSizes mirrors speedup.DefaultSizes as a list.
var DefaultSizes = []int{30, 50, 70, 90, 110}

// Normalize fills defaults for unset fields.
func Normalize(cfg *Config) {
	if strings.TrimSpace(cfg.Logs.Root) == "" {
		cfg.Logs.Root = logdir.DefaultLogRoot()
	}
	if cfg.Logs.CPURoot == "" {
		cfg.Logs.CPURoot = logdir.JoinPath(cfg.Logs.Root, "cpu")
	}
	if cfg.Logs.GPURoot == "" {
		cfg.Logs.GPURoot = logdir.JoinPath(cfg.Logs.Root, "gpu")
	}
	cfg.Compare.Precision = strings.ToLower(strings.TrimSpace(cfg.Compare.Precision))
	if cfg.Compare.Precision == "" {
		cfg.Compare.Precision = string(compare.PrecisionDouble)
	}
	if cfg.Summary.OutDir == "" {
		cfg.Summary.OutDir = DefaultOutputDir
	}
	if cfg.Index.Database == "" {
		cfg.Index.Database = DefaultDatabase
	}
	if cfg.Speedup.CPUBin == "" {
		cfg.Speedup.CPUBin = DefaultCPUBin
	}
	if cfg.Speedup.GPUBin == "" {
		cfg.Speedup.GPUBin = DefaultGPUBin
	}
	if len(cfg.Speedup.Sizes) == 0 {
		cfg.Speedup.Sizes = append([]int(nil), DefaultSizes...)
	}
	if cfg.Speedup.Iterations == 0 {
		cfg.Speedup.Iterations = speedup.DefaultIterations
	}
	if cfg.Speedup.CPUThreads == 0 {
		cfg.Speedup.CPUThreads = speedup.DefaultCPUThreads
	}
	if cfg.Speedup.Repeats == 0 {
		cfg.Speedup.Repeats = speedup.DefaultRepeats
	}
	if cfg.Speedup.Out == "" {
		cfg.Speedup.Out = DefaultSpeedupOut
	}
}
