// Package logdir builds and creates the directory layout used for
// per-step, per-rank simulation dumps.
//
// The helpers report success as a boolean and never surface the underlying
// error: dumps are best-effort instrumentation and callers are expected to
// keep running when a directory cannot be created.
package logdir

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// Separator is the path separator used by every helper in this package.
const Separator = "/"

// DirPerm is the mode for directories created by MakeDir.
const DirPerm os.FileMode = 0o755

const (
	defaultLogRoot = "benchmarks/logs"
	matrixDirName  = "matrix"
	infoDirName    = "info"
	rankInfix      = "_rank"
)

// JoinPath concatenates two segments with exactly one separator between them.
// When either side is empty the other side is returned unchanged.
func JoinPath(left, right string) string {
	if left == "" {
		return right
	}
	if right == "" {
		return left
	}
	if strings.HasSuffix(left, Separator) {
		return left + right
	}
	return left + Separator + right
}

// MakeDir creates a single directory level. It reports true when the
// directory exists after the call, including when it already existed.
func MakeDir(path string) bool {
	if path == "" {
		return false
	}
	err := os.Mkdir(path, DirPerm)
	if err == nil {
		return true
	}
	if !errors.Is(err, fs.ErrExist) {
		return false
	}
	info, statErr := os.Stat(path)
	return statErr == nil && info.IsDir()
}

// EnsureDir creates every directory along path, one prefix at a time.
// A leading separator keeps the path absolute. It stops at the first
// prefix that cannot be created.
func EnsureDir(path string) bool {
	if path == "" {
		return false
	}

	current := ""
	rest := path
	if strings.HasPrefix(path, Separator) {
		current = Separator
		rest = path[len(Separator):]
	}

	for _, part := range strings.Split(rest, Separator) {
		if part == "" {
			continue
		}
		current = JoinPath(current, part)
		if !MakeDir(current) {
			return false
		}
	}
	return true
}

// DefaultLogRoot returns the relative root used when no log directory is given.
func DefaultLogRoot() string {
	return defaultLogRoot
}

// StepDirName returns "<step>_rank<rank>".
func StepDirName(stepName string, rank int) string {
	return stepName + rankInfix + strconv.Itoa(rank)
}

// MakeStepDir ensures <baseDir>/<stepName>_rank<rank> and returns it even if
// creation failed.
func MakeStepDir(baseDir, stepName string, rank int) string {
	dir := JoinPath(baseDir, StepDirName(stepName, rank))
	EnsureDir(dir)
	return dir
}

// MakeMatrixDir ensures the matrix subdirectory of a step directory.
func MakeMatrixDir(stepDir string) string {
	dir := JoinPath(stepDir, matrixDirName)
	EnsureDir(dir)
	return dir
}

// MakeInfoDir ensures the info subdirectory of a step directory.
func MakeInfoDir(stepDir string) string {
	dir := JoinPath(stepDir, infoDirName)
	EnsureDir(dir)
	return dir
}
