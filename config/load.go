// Package config loads and validates the simulator's YAML configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"mm-sim-go/infrastructure/logger"
	"mm-sim-go/strategy/asmm"
)

// SimConfig holds the full runtime configuration.
type SimConfig struct {
	Env     string           `yaml:"env"`
	Model   asmm.ModelParams `yaml:"model"`
	Run     RunConfig        `yaml:"run"`
	Log     logger.Config    `yaml:"log"`
	Metrics MetricsConfig    `yaml:"metrics"`
	Store   StoreConfig      `yaml:"store"`
}

// RunConfig controls seeding, batch size and horizon policy.
type RunConfig struct {
	PriceSeed int64 `yaml:"priceSeed"` // seed for the price stream
	FillSeed  int64 `yaml:"fillSeed"`  // seed for the fill-decision stream
	Runs      int   `yaml:"runs"`      // Monte Carlo repetitions
	Workers   int   `yaml:"workers"`   // parallel runs; 0 = sequential

	LiquidateAtHorizon bool `yaml:"liquidateAtHorizon"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // e.g. ":9100"; empty disables the server
}

// StoreConfig controls price-path persistence.
type StoreConfig struct {
	Path string `yaml:"path"` // sqlite DSN; empty disables the store
}

// Default returns a runnable configuration around the reference parameter
// set.
func Default() SimConfig {
	return SimConfig{
		Env:   "sim",
		Model: asmm.DefaultParams(),
		Run: RunConfig{
			PriceSeed: 1,
			FillSeed:  2,
			Runs:      1,
		},
		Log: logger.DefaultConfig(),
	}
}

// Load reads YAML config from path and applies validation.
func Load(path string) (SimConfig, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadWithEnvOverrides loads config then overrides the seeds from env vars
// if present, so batch jobs can vary runs without editing files.
func LoadWithEnvOverrides(path string) (SimConfig, error) {
	cfg, err := Load(path)
	if err != nil {
		return cfg, err
	}
	if v := os.Getenv("MM_SIM_PRICE_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("parse MM_SIM_PRICE_SEED: %w", err)
		}
		cfg.Run.PriceSeed = seed
	}
	if v := os.Getenv("MM_SIM_FILL_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return cfg, fmt.Errorf("parse MM_SIM_FILL_SEED: %w", err)
		}
		cfg.Run.FillSeed = seed
	}
	return cfg, Validate(cfg)
}
