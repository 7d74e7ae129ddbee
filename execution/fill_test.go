package execution

import (
	"errors"
	"testing"

	"mm-sim-go/market"
	"mm-sim-go/process"
	"mm-sim-go/strategy/asmm"
)

// seqUniform replays a fixed sequence of uniform draws.
type seqUniform struct {
	vals []float64
	i    int
}

func (s *seqUniform) Float64() float64 {
	if s.i >= len(s.vals) {
		return 0.999999
	}
	v := s.vals[s.i]
	s.i++
	return v
}

func TestNewFillSimulatorValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*asmm.ModelParams)
	}{
		{"zero intensity", func(p *asmm.ModelParams) { p.IntensityA = 0 }},
		{"zero kappa", func(p *asmm.ModelParams) { p.Kappa = 0 }},
		{"zero step size", func(p *asmm.ModelParams) { p.StepSize = 0 }},
		{"zero order size", func(p *asmm.ModelParams) { p.OrderSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := asmm.DefaultParams()
			tt.mutate(&p)
			_, err := NewFillSimulator(p, process.NewSeededSource(1))
			if !errors.Is(err, market.ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}

	if _, err := NewFillSimulator(asmm.DefaultParams(), nil); !errors.Is(err, market.ErrInvalidParameter) {
		t.Fatalf("nil source must fail, got %v", err)
	}
}

func TestFillProbabilityMonotonicity(t *testing.T) {
	f, err := NewFillSimulator(asmm.DefaultParams(), process.NewSeededSource(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	distances := []float64{0, 0.1, 0.5, 1, 2, 5, 10, 50}
	prev := 1.1
	for _, d := range distances {
		p, err := f.FillProbability(d)
		if err != nil {
			t.Fatalf("distance %f: unexpected error: %v", d, err)
		}
		if p < 0 || p > 1 {
			t.Fatalf("distance %f: probability %f out of [0,1]", d, p)
		}
		if p > prev {
			t.Fatalf("probability must not increase with distance: p(%f)=%f > %f", d, p, prev)
		}
		prev = p
	}
}

func TestSimulateFillsBothSidesIndependent(t *testing.T) {
	quote := market.QuotePair{Step: 3, Bid: 99, Ask: 101, Reservation: 100, Spread: 2}

	// draws below any positive probability: both sides fill
	f, err := NewFillSimulator(asmm.DefaultParams(), &seqUniform{vals: []float64{0, 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fills, err := f.SimulateFills(quote, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fills) != 2 {
		t.Fatalf("expected both sides to fill, got %d", len(fills))
	}
	if fills[0].Side != market.Bid || fills[1].Side != market.Ask {
		t.Fatalf("expected bid then ask, got %s then %s", fills[0].Side, fills[1].Side)
	}
	if fills[0].Price != quote.Bid || fills[1].Price != quote.Ask {
		t.Fatalf("fills must execute at the quoted prices: %+v", fills)
	}
	if fills[0].Size != 1 || fills[1].Size != 1 {
		t.Fatalf("unit size expected, got %+v", fills)
	}
	if fills[0].Step != 3 || fills[1].Step != 3 {
		t.Fatalf("fills must carry the quote step, got %+v", fills)
	}

	// draws above the step probability: nothing fills
	f2, err := NewFillSimulator(asmm.DefaultParams(), &seqUniform{vals: []float64{0.999999, 0.999999}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fills2, err := f2.SimulateFills(quote, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fills2) != 0 {
		t.Fatalf("expected no fills, got %d", len(fills2))
	}

	// one-sided: bid draw low, ask draw high
	f3, err := NewFillSimulator(asmm.DefaultParams(), &seqUniform{vals: []float64{0, 0.999999}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fills3, err := f3.SimulateFills(quote, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fills3) != 1 || fills3[0].Side != market.Bid {
		t.Fatalf("expected a single bid fill, got %+v", fills3)
	}
}

func TestSimulateFillsDeterminism(t *testing.T) {
	quote := market.QuotePair{Step: 0, Bid: 99.4, Ask: 100.6, Reservation: 100, Spread: 1.2}

	run := func(seed int64) []market.Fill {
		f, err := NewFillSimulator(asmm.DefaultParams(), process.NewSeededSource(seed))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var all []market.Fill
		for i := 0; i < 100; i++ {
			fills, err := f.SimulateFills(quote, 100)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			all = append(all, fills...)
		}
		return all
	}

	a := run(11)
	b := run(11)
	if len(a) != len(b) {
		t.Fatalf("same seed must give same fill count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("fill %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
	if len(a) == 0 {
		t.Fatal("expected some fills over 100 steps at this distance")
	}
}
