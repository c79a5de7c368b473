// pkg/entity/trail.go
package entity

import (
	"github.com/opd-ai/go-wanderer/pkg/physics"
)

// TrailSample is a past agent position.
type TrailSample struct {
	X, Y float64
}

// Trail is a bounded FIFO of agent positions, oldest first.
type Trail struct {
	samples  []TrailSample
	capacity int
}

// NewTrail creates an empty trail holding at most capacity samples.
func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{
		samples:  make([]TrailSample, 0, capacity+1),
		capacity: capacity,
	}
}

// Push appends p and evicts the oldest samples past capacity.
func (t *Trail) Push(p physics.Vector2D) {
	t.samples = append(t.samples, TrailSample{X: p.X, Y: p.Y})
	if over := len(t.samples) - t.capacity; over > 0 {
		t.samples = append(t.samples[:0], t.samples[over:]...)
	}
}

// Samples returns the retained samples, oldest first. The slice is owned by
// the trail and is only valid until the next Push.
func (t *Trail) Samples() []TrailSample {
	return t.samples
}

// Len returns the number of retained samples.
func (t *Trail) Len() int {
	return len(t.samples)
}

// Clone returns an independent copy.
func (t *Trail) Clone() *Trail {
	c := NewTrail(t.capacity)
	c.samples = append(c.samples, t.samples...)
	return c
}
