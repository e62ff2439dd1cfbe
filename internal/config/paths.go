package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Layout of the lulog config inside a LULESH checkout.
const (
	ConfigDirName    = ".lulog"
	ConfigFileName   = "config.yml"
	DefaultOutputDir = "benchmarks"
)

// ErrNotFound means no directory from the start up to / holds a .lulog dir.
var ErrNotFound = errors.New("no " + ConfigDirName + "/" + ConfigFileName + " found")

// ConfigDir returns root/.lulog.
func ConfigDir(root string) string {
	return filepath.Join(root, ConfigDirName)
}

// ConfigPath returns root/.lulog/config.yml.
func ConfigPath(root string) string {
	return filepath.Join(ConfigDir(root), ConfigFileName)
}

// RepoRootFromConfigPath returns the directory config-relative paths resolve
// against: the parent of .lulog, or the file's own directory for a config
// kept elsewhere.
func RepoRootFromConfigPath(configPath string) string {
	dir := filepath.Dir(configPath)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir)
	}
	return dir
}

// FindConfigPath walks up from startDir (the working directory when empty)
// to the nearest .lulog directory and returns its config.yml. A .lulog
// without config.yml stops the walk with an error rather than ErrNotFound.
func FindConfigPath(startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}
	start, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}

	for dir := start; ; dir = filepath.Dir(dir) {
		info, err := os.Stat(ConfigDir(dir))
		switch {
		case err == nil && info.IsDir():
			return configFileIn(dir)
		case err != nil && !os.IsNotExist(err):
			return "", fmt.Errorf("stat %s: %w", ConfigDir(dir), err)
		}
		if filepath.Dir(dir) == dir {
			return "", fmt.Errorf("%w in %s or any parent", ErrNotFound, start)
		}
	}
}

func configFileIn(root string) (string, error) {
	path := ConfigPath(root)
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return "", fmt.Errorf("%s exists but %s is missing (run lulog init)", ConfigDir(root), ConfigFileName)
	case err != nil:
		return "", fmt.Errorf("stat %s: %w", path, err)
	case info.IsDir():
		return "", fmt.Errorf("config path %s is a directory", path)
	}
	return path, nil
}

// ResolvePath joins a config-relative path onto root. Absolute and empty
// paths pass through.
func ResolvePath(root, path string) string {
	if path == "" || root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
