// Package execution decides which quoted orders execute against the
// simulated market-order flow.
package execution

import (
	"fmt"
	"math"

	"mm-sim-go/market"
	"mm-sim-go/metrics"
	"mm-sim-go/process"
	"mm-sim-go/strategy/asmm"
)

// FillSimulator maps quote distance to execution probability through the
// exponential arrival-intensity model:
//
//	lambda(d) = A * exp(-kappa * d)
//	p(fill over dt) = 1 - exp(-lambda(d) * dt)
//
// Bid and ask decisions are independent draws from a uniform stream that is
// separate from the price stream, so the two can be seeded and tested
// independently. Fill size is a fixed constant, one unit in the base model.
type FillSimulator struct {
	a     float64
	kappa float64
	dt    float64
	size  float64
	rng   process.UniformSource
}

// NewFillSimulator validates the intensity parameters and binds the uniform
// source used for fill decisions.
func NewFillSimulator(p asmm.ModelParams, rng process.UniformSource) (*FillSimulator, error) {
	if p.IntensityA <= 0 {
		return nil, fmt.Errorf("%w: intensityA must be > 0, got %v", market.ErrInvalidParameter, p.IntensityA)
	}
	if p.Kappa <= 0 {
		return nil, fmt.Errorf("%w: kappa must be > 0, got %v", market.ErrInvalidParameter, p.Kappa)
	}
	if p.StepSize <= 0 {
		return nil, fmt.Errorf("%w: stepSize must be > 0, got %v", market.ErrInvalidParameter, p.StepSize)
	}
	if p.OrderSize <= 0 {
		return nil, fmt.Errorf("%w: orderSize must be > 0, got %v", market.ErrInvalidParameter, p.OrderSize)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil uniform source", market.ErrInvalidParameter)
	}
	return &FillSimulator{
		a:     p.IntensityA,
		kappa: p.Kappa,
		dt:    p.StepSize,
		size:  p.OrderSize,
		rng:   rng,
	}, nil
}

// FillProbability returns the probability that a quote at the given
// distance from the mid executes within one step. Monotonically
// non-increasing in distance.
func (f *FillSimulator) FillProbability(distance float64) (float64, error) {
	lambda := f.a * math.Exp(-f.kappa*distance)
	p := 1 - math.Exp(-lambda*f.dt)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0, fmt.Errorf("%w: non-finite fill probability (distance=%v)", market.ErrNumericalInstability, distance)
	}
	return p, nil
}

// SimulateFills draws both sides for one step. Returns zero, one or two
// fills, at most one per side. The bid draw always happens before the ask
// draw so a fixed seed reproduces the same fill sequence.
func (f *FillSimulator) SimulateFills(quote market.QuotePair, mid float64) ([]market.Fill, error) {
	var fills []market.Fill

	bidProb, err := f.FillProbability(math.Abs(mid - quote.Bid))
	if err != nil {
		return nil, err
	}
	if f.rng.Float64() < bidProb {
		fills = append(fills, market.Fill{Step: quote.Step, Side: market.Bid, Price: quote.Bid, Size: f.size})
		metrics.IncrementFills(string(market.Bid))
	}

	askProb, err := f.FillProbability(math.Abs(quote.Ask - mid))
	if err != nil {
		return nil, err
	}
	if f.rng.Float64() < askProb {
		fills = append(fills, market.Fill{Step: quote.Step, Side: market.Ask, Price: quote.Ask, Size: f.size})
		metrics.IncrementFills(string(market.Ask))
	}

	return fills, nil
}
