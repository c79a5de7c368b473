// Package random wraps a seedable generator so the whole simulation can be
// replayed from one seed.
package random

import (
	"math"
	"math/rand/v2"
	"time"
)

// Source is the set of draws the simulation needs.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// PRNG is a seeded PCG generator.
type PRNG struct {
	rng  *rand.Rand
	seed int64
}

// New creates a generator for seed. A zero seed is replaced by the current
// time.
func New(seed int64) *PRNG {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := uint64(seed)
	return &PRNG{
		rng:  rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15)),
		seed: seed,
	}
}

// Seed returns the effective seed.
func (p *PRNG) Seed() int64 {
	return p.seed
}

// Float64 returns a value in [0.0, 1.0).
func (p *PRNG) Float64() float64 {
	return p.rng.Float64()
}

// IntN returns a value in [0, n). It panics if n <= 0.
func (p *PRNG) IntN(n int) int {
	return p.rng.IntN(n)
}

// Range returns a value uniformly drawn from [lo, hi).
func Range(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Angle returns a uniformly drawn angle in [0, 2π).
func Angle(src Source) float64 {
	return src.Float64() * 2 * math.Pi
}
