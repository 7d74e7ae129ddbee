// Package process generates the simulated mid-price path.
package process

import "math/rand"

// NormalSource draws from a standard normal distribution. Injected so the
// caller controls seeding and test reproducibility.
type NormalSource interface {
	NormFloat64() float64
}

// UniformSource draws from the uniform distribution on [0, 1).
type UniformSource interface {
	Float64() float64
}

// NewSeededSource returns a deterministic source usable both as a
// NormalSource and a UniformSource. Same seed, same draw sequence.
func NewSeededSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
