package process

import (
	"fmt"
	"math"

	"mm-sim-go/market"
)

// BrownianMotion generates an arithmetic Brownian mid-price path:
//
//	s(t+dt) = s(t) + mu*dt + sigma*sqrt(dt)*eps,  eps ~ N(0,1)
//
// The sequence is lazy, finite and non-restartable: the first point is the
// configured initial price and Next yields Steps further points, then
// reports exhaustion.
type BrownianMotion struct {
	s0    float64
	mu    float64
	sigma float64
	dt    float64
	steps int

	rng  NormalSource
	step int
	last float64
	done bool
}

// NewBrownianMotion validates the process parameters and binds the normal
// source. Steps is the number of increments after the initial point, so the
// full sequence has steps+1 elements.
func NewBrownianMotion(s0, mu, sigma, dt float64, steps int, rng NormalSource) (*BrownianMotion, error) {
	if s0 <= 0 {
		return nil, fmt.Errorf("%w: initial price must be > 0, got %v", market.ErrInvalidParameter, s0)
	}
	if sigma <= 0 {
		return nil, fmt.Errorf("%w: volatility must be > 0, got %v", market.ErrInvalidParameter, sigma)
	}
	if dt <= 0 {
		return nil, fmt.Errorf("%w: step size must be > 0, got %v", market.ErrInvalidParameter, dt)
	}
	if steps <= 0 {
		return nil, fmt.Errorf("%w: steps must be > 0, got %d", market.ErrInvalidParameter, steps)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil normal source", market.ErrInvalidParameter)
	}
	return &BrownianMotion{s0: s0, mu: mu, sigma: sigma, dt: dt, steps: steps, rng: rng}, nil
}

// Next advances the process by one step. The second return value is false
// once the sequence is exhausted.
func (b *BrownianMotion) Next() (market.PricePoint, bool) {
	if b.done {
		return market.PricePoint{}, false
	}
	if b.step == 0 {
		b.last = b.s0
	} else {
		eps := b.rng.NormFloat64()
		b.last += b.mu*b.dt + b.sigma*math.Sqrt(b.dt)*eps
	}
	pt := market.PricePoint{Step: b.step, Mid: b.last}
	b.step++
	if b.step > b.steps {
		b.done = true
	}
	return pt, true
}

// Len reports the total sequence length, steps+1.
func (b *BrownianMotion) Len() int { return b.steps + 1 }

// GeneratePath drains the process into a Path. Only valid on a fresh
// process; the process is exhausted afterwards.
func (b *BrownianMotion) GeneratePath() Path {
	mids := make([]float64, 0, b.Len())
	for {
		pt, ok := b.Next()
		if !ok {
			break
		}
		mids = append(mids, pt.Mid)
	}
	return Path{S0: b.s0, Mu: b.mu, Sigma: b.sigma, Dt: b.dt, Mids: mids}
}
