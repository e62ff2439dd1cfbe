package config

import (
	"fmt"
	"os"
)

// Load reads path and returns the normalized, validated config. Errors name
// the file so validate and the other commands can print them as is.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err == nil {
		Normalize(&cfg)
		err = Validate(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
