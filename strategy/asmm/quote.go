package asmm

import (
	"fmt"
	"math"

	"mm-sim-go/market"
	"mm-sim-go/metrics"
)

// QuoteCalculator computes the closed-form Avellaneda–Stoikov quotes:
//
//	r     = mid - q*gamma*sigma^2*tau
//	delta = gamma*sigma^2*tau + (2/gamma)*ln(1 + gamma/kappa)
//	bid   = r - delta/2,  ask = r + delta/2
//
// where tau is the time remaining to the horizon. The calculator is
// stateless after construction; ComputeQuotes is a pure function of its
// inputs.
type QuoteCalculator struct {
	gamma  float64
	sigma2 float64
	// spreadFloor is the arrival-intensity term (2/gamma)*ln(1+gamma/kappa),
	// constant over the run. At tau=0 the spread degenerates to exactly
	// this value.
	spreadFloor float64
}

// NewQuoteCalculator validates the parameters and precomputes the constant
// intensity term of the spread.
func NewQuoteCalculator(p ModelParams) (*QuoteCalculator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	floor := (2 / p.Gamma) * math.Log(1+p.Gamma/p.Kappa)
	if !isFinite(floor) {
		return nil, fmt.Errorf("%w: intensity spread term is not finite (gamma=%v kappa=%v)",
			market.ErrNumericalInstability, p.Gamma, p.Kappa)
	}
	return &QuoteCalculator{
		gamma:       p.Gamma,
		sigma2:      p.Sigma * p.Sigma,
		spreadFloor: floor,
	}, nil
}

// ComputeQuotes returns the quote pair for one step. timeRemaining is
// clamped to zero so floating-point drift at the final step cannot flip the
// sign of the risk term; at the horizon the reservation price equals the
// mid and only the intensity term remains. That terminal behavior is part
// of the model, not an edge case to paper over.
func (c *QuoteCalculator) ComputeQuotes(step int, mid, inventory, timeRemaining float64) (market.QuotePair, error) {
	tau := timeRemaining
	if tau < 0 {
		tau = 0
	}

	risk := c.gamma * c.sigma2 * tau
	reservation := mid - inventory*risk
	spread := risk + c.spreadFloor
	half := spread / 2

	q := market.QuotePair{
		Step:        step,
		Bid:         reservation - half,
		Ask:         reservation + half,
		Reservation: reservation,
		Spread:      spread,
	}
	if !isFinite(q.Bid) || !isFinite(q.Ask) || !isFinite(q.Reservation) {
		return market.QuotePair{}, fmt.Errorf("%w: non-finite quote at step %d (mid=%v q=%v tau=%v)",
			market.ErrNumericalInstability, step, mid, inventory, tau)
	}

	metrics.UpdateQuoteMetrics(q.Reservation, q.Spread)
	metrics.IncrementQuotesGenerated(string(market.Bid))
	metrics.IncrementQuotesGenerated(string(market.Ask))
	return q, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
