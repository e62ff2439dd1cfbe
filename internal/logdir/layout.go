package logdir

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// StepPrefix marks directories that hold per-step dumps.
const StepPrefix = "step"

// CSVExt is the extension of every dump file.
const CSVExt = ".csv"

var cyclePattern = regexp.MustCompile(`_cycle(\d+)`)

// StepDir describes the dump location for one step and rank.
type StepDir struct {
	Base string
	Step string
	Rank int
}

// NewStepDir validates and constructs a step directory description.
func NewStepDir(base, step string, rank int) (StepDir, error) {
	if strings.TrimSpace(step) == "" {
		return StepDir{}, fmt.Errorf("step name is empty")
	}
	if strings.Contains(step, Separator) {
		return StepDir{}, fmt.Errorf("step name %q contains %q", step, Separator)
	}
	if rank < 0 {
		return StepDir{}, fmt.Errorf("rank must be >= 0, got %d", rank)
	}
	if base == "" {
		base = DefaultLogRoot()
	}
	return StepDir{Base: base, Step: step, Rank: rank}, nil
}

// Name returns the directory name "<step>_rank<rank>".
func (s StepDir) Name() string {
	return StepDirName(s.Step, s.Rank)
}

// Path returns the step directory path.
func (s StepDir) Path() string {
	return JoinPath(s.Base, s.Name())
}

// MatrixDir returns the path for array dumps.
func (s StepDir) MatrixDir() string {
	return JoinPath(s.Path(), matrixDirName)
}

// InfoDir returns the path for scalar dumps.
func (s StepDir) InfoDir() string {
	return JoinPath(s.Path(), infoDirName)
}

// MatrixFile returns the CSV path for an array field.
func (s StepDir) MatrixFile(field string) string {
	return JoinPath(s.MatrixDir(), field+CSVExt)
}

// InfoFile returns the CSV path for a scalar field.
func (s StepDir) InfoFile(field string) string {
	return JoinPath(s.InfoDir(), field+CSVExt)
}

// Ensure creates the step directory with its matrix and info children.
func (s StepDir) Ensure() bool {
	ok := EnsureDir(s.Path())
	ok = MakeDir(s.MatrixDir()) && ok
	ok = MakeDir(s.InfoDir()) && ok
	return ok
}

// ParseStepDirName splits "<step>_rank<rank>" into its parts.
func ParseStepDirName(name string) (string, int, error) {
	idx := strings.LastIndex(name, rankInfix)
	if idx <= 0 {
		return "", 0, fmt.Errorf("step dir %q has no %s suffix", name, rankInfix)
	}
	rank, err := strconv.Atoi(name[idx+len(rankInfix):])
	if err != nil {
		return "", 0, fmt.Errorf("step dir %q: invalid rank: %w", name, err)
	}
	return name[:idx], rank, nil
}

// ParseCycle extracts N from a "_cycleN" marker in a step name, or 0.
func ParseCycle(stepName string) int {
	match := cyclePattern.FindStringSubmatch(stepName)
	if match == nil {
		return 0
	}
	cycle, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return cycle
}

// FindStepDirs lists directories under root whose names start with
// StepPrefix, sorted by name. A non-empty filter keeps only listed names.
// A missing root yields no directories.
func FindStepDirs(root string, filter []string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read log root: %w", err)
	}
	allowed := make(map[string]struct{}, len(filter))
	for _, name := range filter {
		allowed[name] = struct{}{}
	}

	var dirs []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, StepPrefix) {
			continue
		}
		if len(allowed) > 0 {
			if _, ok := allowed[name]; !ok {
				continue
			}
		}
		if !isDirEntry(root, entry) {
			continue
		}
		dirs = append(dirs, name)
	}
	sort.Strings(dirs)
	return dirs, nil
}

// ListFields returns the sorted basenames of CSV files in dir.
func ListFields(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var fields []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, CSVExt) {
			continue
		}
		fields = append(fields, strings.TrimSuffix(name, CSVExt))
	}
	sort.Strings(fields)
	return fields, nil
}

// IsDir reports whether path names an existing directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isDirEntry(root string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	return IsDir(filepath.Join(root, entry.Name()))
}
