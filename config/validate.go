package config

import (
	"errors"
	"fmt"
)

// Validate ensures required fields are present and in-domain. Model
// parameters carry their own domain checks; everything else is checked
// here.
func Validate(cfg SimConfig) error {
	if cfg.Env == "" {
		return errors.New("env is required")
	}
	if err := cfg.Model.Validate(); err != nil {
		return fmt.Errorf("model: %w", err)
	}
	if cfg.Run.Runs <= 0 {
		return fmt.Errorf("run.runs must be > 0, got %d", cfg.Run.Runs)
	}
	if cfg.Run.Workers < 0 {
		return fmt.Errorf("run.workers must be >= 0, got %d", cfg.Run.Workers)
	}
	if cfg.Log.Level == "" {
		return errors.New("log.level is required")
	}
	return nil
}
