package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lulog/internal/config"
)

// resolveConfigPath normalizes a config path or finds it from CWD.
func resolveConfigPath(configPath string) (string, error) {
	if strings.TrimSpace(configPath) == "" {
		return config.FindConfigPath("")
	}
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolve config path: %w", err)
	}
	return abs, nil
}

// loadedConfig is a normalized config with the root relative paths resolve against.
type loadedConfig struct {
	config.Config
	Root string
	Path string
}

// resolve joins a config path onto the root.
func (c loadedConfig) resolve(path string) string {
	return config.ResolvePath(c.Root, path)
}

// loadConfigOrDefaults loads an explicit or discovered config. Without one,
// defaults apply relative to the working directory.
func loadConfigOrDefaults(configPath string) (loadedConfig, error) {
	if strings.TrimSpace(configPath) != "" {
		path, err := resolveConfigPath(configPath)
		if err != nil {
			return loadedConfig{}, err
		}
		cfg, err := config.Load(path)
		if err != nil {
			return loadedConfig{}, err
		}
		return loadedConfig{Config: cfg, Root: config.RepoRootFromConfigPath(path), Path: path}, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return loadedConfig{}, fmt.Errorf("get working directory: %w", err)
	}
	path, findErr := config.FindConfigPath(wd)
	if findErr == nil {
		cfg, err := config.Load(path)
		if err != nil {
			return loadedConfig{}, err
		}
		return loadedConfig{Config: cfg, Root: config.RepoRootFromConfigPath(path), Path: path}, nil
	}
	if !errors.Is(findErr, config.ErrNotFound) {
		return loadedConfig{}, findErr
	}

	cfg := config.Config{Version: 1}
	config.Normalize(&cfg)
	return loadedConfig{Config: cfg, Root: wd}, nil
}
