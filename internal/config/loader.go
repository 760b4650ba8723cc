package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Load builds an OracleConfig from defaults, the YAML file at path (skipped
// when path is empty) and the environment.
func Load(path string) (*OracleConfig, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}

		// Expand ${VAR} environment variables
		expanded := os.ExpandEnv(string(data))

		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.normalize()
	return &cfg, nil
}

// LoadAndValidate loads config and validates it.
func LoadAndValidate(path string) (*OracleConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadProbe builds a ProbeConfig from defaults and the environment.
func LoadProbe() (*ProbeConfig, error) {
	cfg := ProbeDefaults()
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate probe config: %w", err)
	}
	return &cfg, nil
}
