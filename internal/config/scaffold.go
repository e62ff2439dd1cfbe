package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1
logs:
  root: "benchmarks/logs"
  cpu_root: "benchmarks/logs/cpu"
  gpu_root: "benchmarks/logs/gpu"

compare:
  precision: double
  allow_missing: false
  # abs_tol: 1.0e-12
  # rel_tol: 1.0e-9
  # steps: ["step_cycle10"]
  # fields: ["e", "p", "q"]

summary:
  out_dir: "benchmarks"
  xlsx: false

index:
  database: "benchmarks/logs.duckdb"

speedup:
  cpu_bin: "lulesh2.0"
  gpu_bin: "lulesh-gpu-opt/lulesh-cuda/lulesh_gpu"
  sizes: [30, 50, 70, 90, 110]
  iterations: 100
  cpu_threads: 24
  repeats: 1
  out: "benchmarks/speedup.csv"
`

// DefaultConfigYAML returns the scaffolded config contents.
func DefaultConfigYAML() string {
	return defaultConfig
}

// Scaffold writes the default config to configPath, refusing to overwrite.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
