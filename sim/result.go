package sim

import (
	"mm-sim-go/inventory"
	"mm-sim-go/market"
)

// Result is the full aligned time series of a run: one entry per tick in
// each slice, with Fills sparse (nil when nothing filled that tick).
// Consumers must treat it as read-only.
type Result struct {
	Prices []market.PricePoint
	Quotes []market.QuotePair
	Fills  [][]market.Fill
	States []inventory.State

	// LiquidationFill is set when the horizon-liquidation policy closed an
	// open position at the final mid. It is a policy action, not a model
	// fill, so it is kept out of the per-tick Fills series.
	LiquidationFill *market.Fill
}

func newResult(capacity int) *Result {
	return &Result{
		Prices: make([]market.PricePoint, 0, capacity),
		Quotes: make([]market.QuotePair, 0, capacity),
		Fills:  make([][]market.Fill, 0, capacity),
		States: make([]inventory.State, 0, capacity),
	}
}

func (r *Result) append(pt market.PricePoint, q market.QuotePair, fills []market.Fill, st inventory.State) {
	r.Prices = append(r.Prices, pt)
	r.Quotes = append(r.Quotes, q)
	r.Fills = append(r.Fills, fills)
	r.States = append(r.States, st)
}

// Steps reports how many ticks the run produced.
func (r *Result) Steps() int { return len(r.Prices) }

// TerminalState returns the final inventory snapshot.
func (r *Result) TerminalState() inventory.State {
	if len(r.States) == 0 {
		return inventory.State{}
	}
	return r.States[len(r.States)-1]
}

// TerminalMid returns the final mid price.
func (r *Result) TerminalMid() float64 {
	if len(r.Prices) == 0 {
		return 0
	}
	return r.Prices[len(r.Prices)-1].Mid
}

// PnLSeries extracts the mark-to-market PnL at each tick.
func (r *Result) PnLSeries() []float64 {
	out := make([]float64, len(r.States))
	for i, st := range r.States {
		out[i] = st.PnL
	}
	return out
}

// InventorySeries extracts the net position at each tick.
func (r *Result) InventorySeries() []float64 {
	out := make([]float64, len(r.States))
	for i, st := range r.States {
		out[i] = st.Position
	}
	return out
}

// FillCount reports the total number of model fills in the run.
func (r *Result) FillCount() int {
	n := 0
	for _, fs := range r.Fills {
		n += len(fs)
	}
	return n
}
