// Package asmm implements the Avellaneda–Stoikov optimal market-making
// model: inventory-adjusted reservation price and closed-form optimal
// spread over a finite trading horizon.
package asmm

import (
	"fmt"

	"mm-sim-go/market"
)

// ModelParams holds the model configuration. Loaded once at simulation
// start, read-only thereafter.
type ModelParams struct {
	Gamma      float64 `yaml:"gamma"`      // risk aversion
	Sigma      float64 `yaml:"sigma"`      // mid-price volatility
	Kappa      float64 `yaml:"kappa"`      // order-arrival decay
	IntensityA float64 `yaml:"intensityA"` // order-arrival intensity scale
	Mu         float64 `yaml:"mu"`         // mid-price drift
	Horizon    float64 `yaml:"horizon"`    // terminal time T
	StepSize   float64 `yaml:"stepSize"`   // dt
	OrderSize  float64 `yaml:"orderSize"`  // fixed size per fill

	InitialMid       float64 `yaml:"initialMid"`
	InitialCash      float64 `yaml:"initialCash"`
	InitialInventory float64 `yaml:"initialInventory"`
}

// DefaultParams returns the reference parameter set from the base model.
func DefaultParams() ModelParams {
	return ModelParams{
		Gamma:      0.1,
		Sigma:      2,
		Kappa:      1.5,
		IntensityA: 140,
		Mu:         0,
		Horizon:    1,
		StepSize:   0.005,
		OrderSize:  1,
		InitialMid: 100,
	}
}

// Steps derives the number of simulation increments from the horizon and
// step size. Rounded to the nearest integer to absorb floating-point drift
// in T/dt.
func (p ModelParams) Steps() int {
	return int(p.Horizon/p.StepSize + 0.5)
}

// Validate checks every parameter that later appears as a divisor, an
// exponent base or a square root argument.
func (p ModelParams) Validate() error {
	if p.Gamma <= 0 {
		return fmt.Errorf("%w: gamma must be > 0, got %v", market.ErrInvalidParameter, p.Gamma)
	}
	if p.Sigma <= 0 {
		return fmt.Errorf("%w: sigma must be > 0, got %v", market.ErrInvalidParameter, p.Sigma)
	}
	if p.Kappa <= 0 {
		return fmt.Errorf("%w: kappa must be > 0, got %v", market.ErrInvalidParameter, p.Kappa)
	}
	if p.IntensityA <= 0 {
		return fmt.Errorf("%w: intensityA must be > 0, got %v", market.ErrInvalidParameter, p.IntensityA)
	}
	if p.Horizon <= 0 {
		return fmt.Errorf("%w: horizon must be > 0, got %v", market.ErrInvalidParameter, p.Horizon)
	}
	if p.StepSize <= 0 {
		return fmt.Errorf("%w: stepSize must be > 0, got %v", market.ErrInvalidParameter, p.StepSize)
	}
	if p.StepSize > p.Horizon {
		return fmt.Errorf("%w: stepSize %v exceeds horizon %v", market.ErrInvalidParameter, p.StepSize, p.Horizon)
	}
	if p.OrderSize <= 0 {
		return fmt.Errorf("%w: orderSize must be > 0, got %v", market.ErrInvalidParameter, p.OrderSize)
	}
	if p.InitialMid <= 0 {
		return fmt.Errorf("%w: initialMid must be > 0, got %v", market.ErrInvalidParameter, p.InitialMid)
	}
	return nil
}
