//go:build cucumber
// +build cucumber

package cucumber

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lulog/internal/config"
)

// aGitRepositoryWithValidConfig sets up a temp repo with the scaffolded config.
func (s *featureState) aGitRepositoryWithValidConfig() error {
	if s.initialized {
		return nil
	}
	dir, err := os.MkdirTemp("", "lulog-feature-*")
	if err != nil {
		return fmt.Errorf("create temp repo: %w", err)
	}
	s.repoDir = dir
	s.configPath = filepath.Join(dir, config.ConfigDirName, config.ConfigFileName)
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := s.writeConfig(config.DefaultConfigYAML()); err != nil {
		return err
	}
	if err := s.initGitRepo(dir); err != nil {
		return err
	}
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	s.initialized = true
	return nil
}

// theConfigIsInvalid replaces the config with an unsupported version.
func (s *featureState) theConfigIsInvalid() error {
	if err := s.aGitRepositoryWithValidConfig(); err != nil {
		return err
	}
	return s.writeConfig(strings.Replace(config.DefaultConfigYAML(), "version: 1", "version: 2", 1))
}

// writeConfig persists configuration content to the repo config path.
func (s *featureState) writeConfig(contents string) error {
	if s.configPath == "" {
		return fmt.Errorf("config path is not set")
	}
	if err := os.WriteFile(s.configPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
