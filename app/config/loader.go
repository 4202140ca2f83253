package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const defaultWindowFallbackDays = 10

// Load reads and validates the watch configuration file.
func Load(path string) (*WatchConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read watch config: %w", err)
	}

	var cfg WatchConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse watch config: %w", err)
	}

	if cfg.WindowFallbackDays == 0 {
		cfg.WindowFallbackDays = defaultWindowFallbackDays
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid watch config %s: %w", path, err)
	}

	return &cfg, nil
}
