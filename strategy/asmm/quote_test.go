package asmm

import (
	"errors"
	"math"
	"testing"

	"mm-sim-go/market"
)

func TestNewQuoteCalculatorRejectsInvalidParams(t *testing.T) {
	p := DefaultParams()
	p.Gamma = 0
	if _, err := NewQuoteCalculator(p); !errors.Is(err, market.ErrInvalidParameter) {
		t.Fatalf("gamma=0 must fail with ErrInvalidParameter, got %v", err)
	}
	p = DefaultParams()
	p.Kappa = -1.5
	if _, err := NewQuoteCalculator(p); !errors.Is(err, market.ErrInvalidParameter) {
		t.Fatalf("kappa<0 must fail with ErrInvalidParameter, got %v", err)
	}
}

func TestComputeQuotesInvariants(t *testing.T) {
	calc, err := NewQuoteCalculator(DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name      string
		mid       float64
		inventory float64
		tau       float64
	}{
		{"flat book", 100, 0, 1},
		{"long inventory", 100, 5, 1},
		{"short inventory", 100, -5, 1},
		{"mid horizon", 100, 3, 0.5},
		{"near horizon", 100, -3, 0.005},
		{"at horizon", 100, 7, 0},
		{"large inventory", 100, 250, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := calc.ComputeQuotes(0, tt.mid, tt.inventory, tt.tau)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if q.Bid > q.Reservation || q.Reservation > q.Ask {
				t.Fatalf("invariant bid <= r <= ask violated: bid=%f r=%f ask=%f", q.Bid, q.Reservation, q.Ask)
			}
			if q.Spread < 0 {
				t.Fatalf("negative spread %f", q.Spread)
			}
			if got := q.Ask - q.Bid; math.Abs(got-q.Spread) > 1e-12 {
				t.Fatalf("spread %f does not match ask-bid %f", q.Spread, got)
			}
		})
	}
}

func TestComputeQuotesTerminalBehavior(t *testing.T) {
	calc, err := NewQuoteCalculator(DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// at tau=0 the inventory skew vanishes; r == mid whatever the position
	for _, inv := range []float64{-10, -1, 0, 1, 10} {
		q, err := calc.ComputeQuotes(200, 100, inv, 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if math.Abs(q.Reservation-100) > 1e-12 {
			t.Fatalf("inventory %f: reservation %f, want mid 100", inv, q.Reservation)
		}
		// only the arrival-intensity term remains
		p := DefaultParams()
		wantSpread := (2 / p.Gamma) * math.Log(1+p.Gamma/p.Kappa)
		if math.Abs(q.Spread-wantSpread) > 1e-12 {
			t.Fatalf("terminal spread %f, want %f", q.Spread, wantSpread)
		}
	}

	// negative tau from floating-point drift is clamped, not sign-flipped
	qNeg, err := calc.ComputeQuotes(201, 100, 5, -1e-9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	qZero, _ := calc.ComputeQuotes(201, 100, 5, 0)
	if qNeg != qZero {
		t.Fatalf("negative tau must clamp to zero: %+v vs %+v", qNeg, qZero)
	}
}

func TestComputeQuotesSpreadFormula(t *testing.T) {
	p := DefaultParams() // gamma=0.1 sigma=2 kappa=1.5
	calc, err := NewQuoteCalculator(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q, err := calc.ComputeQuotes(0, 100, 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	risk := p.Gamma * p.Sigma * p.Sigma * 1.0
	wantR := 100 - 2*risk
	wantSpread := risk + (2/p.Gamma)*math.Log(1+p.Gamma/p.Kappa)
	if math.Abs(q.Reservation-wantR) > 1e-12 {
		t.Fatalf("reservation %f, want %f", q.Reservation, wantR)
	}
	if math.Abs(q.Spread-wantSpread) > 1e-12 {
		t.Fatalf("spread %f, want %f", q.Spread, wantSpread)
	}
}

func TestComputeQuotesIsPure(t *testing.T) {
	calc, err := NewQuoteCalculator(DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, err := calc.ComputeQuotes(10, 101.25, -4, 0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := calc.ComputeQuotes(10, 101.25, -4, 0.95)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a != b {
		t.Fatalf("same inputs must give identical quotes: %+v vs %+v", a, b)
	}
}

func TestComputeQuotesNumericalInstability(t *testing.T) {
	calc, err := NewQuoteCalculator(DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// reservation overflows: mid - q*gamma*sigma^2*tau with q = -MaxFloat64
	_, err = calc.ComputeQuotes(0, math.MaxFloat64, -math.MaxFloat64, 1)
	if !errors.Is(err, market.ErrNumericalInstability) {
		t.Fatalf("expected ErrNumericalInstability, got %v", err)
	}
}
