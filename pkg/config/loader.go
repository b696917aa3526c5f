package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Parse reads and parses a YAML config file, fills unset fields with stock
// defaults, and validates the result. Callers own the returned config; there
// is no package-level cache.
func Parse(configPath string) (*EngineConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &EngineConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyDefaults()

	if err := validateConfigStructure(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
