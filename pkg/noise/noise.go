// Package noise provides coherent one-dimensional noise fields used to steer
// the agent smoothly.
package noise

import (
	"math"

	perlin "github.com/aquilax/go-perlin"
)

// Perlin tuning: alpha is the weight divisor between octaves, beta the
// frequency multiplier, octaves the number of summed layers.
const (
	defaultAlpha   = 2.0
	defaultBeta    = 2.0
	defaultOctaves = 3
)

// upper is the largest float64 below 1, so sampled values stay in [0, 1).
var upper = math.Nextafter(1, 0)

// Field is a deterministic, continuous function of a scalar phase.
// Implementations return values in [0, 1).
type Field interface {
	At(phase float64) float64
}

// Perlin samples gradient noise from github.com/aquilax/go-perlin and maps it
// from its signed range onto [0, 1).
type Perlin struct {
	gen *perlin.Perlin
}

// NewPerlin creates a seeded Perlin field. Equal seeds give equal fields.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{
		gen: perlin.NewPerlin(defaultAlpha, defaultBeta, defaultOctaves, seed),
	}
}

// At implements Field.
func (p *Perlin) At(phase float64) float64 {
	return clampUnit((p.gen.Noise1D(phase) + 1) / 2)
}

// Constant is a flat field, handy for tests and for pinning a heading.
type Constant float64

// At implements Field.
func (c Constant) At(float64) float64 {
	return clampUnit(float64(c))
}

func clampUnit(v float64) float64 {
	switch {
	case v < 0, math.IsNaN(v):
		return 0
	case v > upper:
		return upper
	default:
		return v
	}
}
