package config

// Config is the parsed .lulog/config.yml.
type Config struct {
	Version int           `yaml:"version"`
	Logs    LogsConfig    `yaml:"logs"`
	Compare CompareConfig `yaml:"compare"`
	Summary SummaryConfig `yaml:"summary"`
	Index   IndexConfig   `yaml:"index"`
	Speedup SpeedupConfig `yaml:"speedup"`
}

// LogsConfig locates the dump trees.
type LogsConfig struct {
	Root    string `yaml:"root"`
	CPURoot string `yaml:"cpu_root"`
	GPURoot string `yaml:"gpu_root"`
}

// CompareConfig holds comparison defaults.
type CompareConfig struct {
	Precision    string   `yaml:"precision"`
	AbsTol       *float64 `yaml:"abs_tol"`
	RelTol       *float64 `yaml:"rel_tol"`
	AllowMissing bool     `yaml:"allow_missing"`
	Steps        []string `yaml:"steps"`
	Fields       []string `yaml:"fields"`
}

// SummaryConfig names correctness summary outputs.
type SummaryConfig struct {
	OutDir string `yaml:"out_dir"`
	XLSX   bool   `yaml:"xlsx"`
}

// IndexConfig locates the DuckDB index.
type IndexConfig struct {
	Database string `yaml:"database"`
}

// SpeedupConfig configures the speedup benchmark driver.
type SpeedupConfig struct {
	CPUBin     string `yaml:"cpu_bin"`
	GPUBin     string `yaml:"gpu_bin"`
	Sizes      []int  `yaml:"sizes"`
	Iterations int    `yaml:"iterations"`
	CPUThreads int    `yaml:"cpu_threads"`
	Repeats    int    `yaml:"repeats"`
	Out        string `yaml:"out"`
}
