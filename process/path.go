package process

import (
	"encoding/json"
	"fmt"

	"mm-sim-go/market"
)

// Path is a fully realized price path together with the parameters that
// produced it, suitable for persistence and later replay.
type Path struct {
	S0    float64   `json:"s0"`
	Mu    float64   `json:"mu"`
	Sigma float64   `json:"sigma"`
	Dt    float64   `json:"dt"`
	Mids  []float64 `json:"mids"`
}

// Encode serializes the path for storage.
func (p Path) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// DecodePath reconstructs a Path from its serialized form.
func DecodePath(raw []byte) (Path, error) {
	var p Path
	if err := json.Unmarshal(raw, &p); err != nil {
		return Path{}, fmt.Errorf("decode path: %w", err)
	}
	if len(p.Mids) == 0 {
		return Path{}, fmt.Errorf("%w: empty path", market.ErrInvalidParameter)
	}
	return p, nil
}

// Replay walks a stored path as a price source, so a persisted Brownian
// motion can drive a simulation exactly like a live generator.
type Replay struct {
	path Path
	step int
}

// NewReplay wraps a path in a non-restartable price source.
func NewReplay(p Path) (*Replay, error) {
	if len(p.Mids) == 0 {
		return nil, fmt.Errorf("%w: empty path", market.ErrInvalidParameter)
	}
	return &Replay{path: p}, nil
}

// Next yields the stored points in order.
func (r *Replay) Next() (market.PricePoint, bool) {
	if r.step >= len(r.path.Mids) {
		return market.PricePoint{}, false
	}
	pt := market.PricePoint{Step: r.step, Mid: r.path.Mids[r.step]}
	r.step++
	return pt, true
}

// Len reports the stored sequence length.
func (r *Replay) Len() int { return len(r.path.Mids) }
