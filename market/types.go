// Package market holds the value types shared across the simulation
// pipeline: price observations, quote pairs and fills.
package market

// Side represents order side.
type Side string

const (
	Bid Side = "bid"
	Ask Side = "ask"
)

// PricePoint is a single mid-price observation at a discrete step.
// Immutable after creation.
type PricePoint struct {
	Step int
	Mid  float64
}

// QuotePair is the two-sided quote decision for one step.
// Invariant: Bid <= Reservation <= Ask and Spread = Ask - Bid >= 0.
type QuotePair struct {
	Step        int
	Bid         float64
	Ask         float64
	Reservation float64
	Spread      float64
}

// Fill records one simulated execution. At most one fill per side per step.
type Fill struct {
	Step  int
	Side  Side
	Price float64
	Size  float64
}

// SignedSize returns the position delta the fill implies: a bid fill buys
// (+size), an ask fill sells (-size).
func (f Fill) SignedSize() float64 {
	if f.Side == Bid {
		return f.Size
	}
	return -f.Size
}
