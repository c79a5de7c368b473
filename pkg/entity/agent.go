// pkg/entity/agent.go
package entity

import (
	"math"

	"github.com/opd-ai/go-wanderer/pkg/physics"
)

// Agent is the wandering ship. It is steered by a noise field and never
// destroyed.
type Agent struct {
	Position physics.Vector2D
	Velocity physics.Vector2D
	// NoisePhase is the monotonic input to the steering noise field.
	NoisePhase float64
}

// NewAgent creates a stationary agent at position.
func NewAgent(position physics.Vector2D) *Agent {
	return &Agent{Position: position}
}

// SteeringAngle maps a noise sample in [0,1) to a heading spanning
// turns full revolutions.
func SteeringAngle(sample, turns float64) float64 {
	return sample * 2 * math.Pi * turns
}

// Steer applies one frame of motion: the force is added to the velocity, the
// velocity to the position, and the velocity is then damped. The noise phase
// advances by step.
func (a *Agent) Steer(force physics.Vector2D, damping, step float64) {
	a.Velocity = a.Velocity.Add(force)
	a.Position = a.Position.Add(a.Velocity)
	a.Velocity = a.Velocity.Scale(damping)
	a.NoisePhase += step
}

// Heading returns the direction of travel in radians.
func (a *Agent) Heading() float64 {
	return a.Velocity.Heading()
}
