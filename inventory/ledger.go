// Package inventory tracks the market maker's position, cash and
// mark-to-market PnL as fills occur.
package inventory

import (
	"sync"

	"mm-sim-go/market"
	"mm-sim-go/metrics"
)

// State is the ledger snapshot after a step. It is the only piece of state
// carried from one tick to the next.
type State struct {
	Step     int
	Position float64
	Cash     float64
	PnL      float64 // cash + position * latest mid
}

// Ledger owns the running inventory state. All mutation goes through
// ApplyFills; callers only ever see value snapshots.
type Ledger struct {
	mu sync.RWMutex
	st State
}

// NewLedger starts a ledger from the configured position and cash.
func NewLedger(position, cash float64) *Ledger {
	return &Ledger{st: State{Step: 0, Position: position, Cash: cash}}
}

// ApplyFills applies the step's fills and re-marks the book at the latest
// mid, whether or not anything filled. Cash and position move together per
// fill: a bid fill buys (position up, cash down), an ask fill sells.
// Returns the updated snapshot.
func (l *Ledger) ApplyFills(step int, fills []market.Fill, mid float64) State {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, f := range fills {
		l.st.Position += f.SignedSize()
		l.st.Cash -= f.SignedSize() * f.Price
	}
	l.st.Step = step
	l.st.PnL = l.st.Cash + l.st.Position*mid
	metrics.UpdateTickMetrics(mid, l.st.Position, l.st.PnL)
	return l.st
}

// State returns the current snapshot.
func (l *Ledger) State() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.st
}

// Valuation re-marks the current position at the given mid without
// mutating the ledger.
func (l *Ledger) Valuation(mid float64) (position, pnl float64) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.st.Position, l.st.Cash + l.st.Position*mid
}
