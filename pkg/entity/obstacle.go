// pkg/entity/obstacle.go
package entity

import (
	"math"

	"github.com/opd-ai/go-wanderer/pkg/physics"
)

// Edge is a side of the screen an obstacle can enter from.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// EdgeCount is the number of screen edges.
const EdgeCount = 4

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeRight:
		return "right"
	case EdgeBottom:
		return "bottom"
	case EdgeLeft:
		return "left"
	default:
		return "unknown"
	}
}

// EdgePosition returns a point margin units outside edge e of bounds. The
// coordinate along the edge is u times the edge length, u in [0,1).
func EdgePosition(e Edge, bounds physics.Bounds, u, margin float64) physics.Vector2D {
	switch e {
	case EdgeTop:
		return physics.Vector2D{X: u * bounds.Width, Y: -margin}
	case EdgeRight:
		return physics.Vector2D{X: bounds.Width + margin, Y: u * bounds.Height}
	case EdgeBottom:
		return physics.Vector2D{X: u * bounds.Width, Y: bounds.Height + margin}
	default:
		return physics.Vector2D{X: -margin, Y: u * bounds.Height}
	}
}

// Obstacle is a regular polygon drifting toward the agent. It is only
// destroyed by a bullet.
type Obstacle struct {
	ID          ID
	Position    physics.Vector2D
	Size        float64
	VertexCount int
}

// Collider returns the hit circle, whose diameter is Size.
func (o *Obstacle) Collider() physics.Circle {
	return physics.Circle{Center: o.Position, Radius: o.Size / 2}
}

// MoveToward advances the obstacle speed units toward target. An obstacle
// already at target stays put.
func (o *Obstacle) MoveToward(target physics.Vector2D, speed float64) {
	o.Position = o.Position.Add(target.Sub(o.Position).WithMagnitude(speed))
}

// Vertices returns the outline points in local coordinates, evenly spaced on
// a circle of radius Size starting at angle 0.
func (o *Obstacle) Vertices() []physics.Vector2D {
	if o.VertexCount <= 0 {
		return nil
	}
	points := make([]physics.Vector2D, o.VertexCount)
	step := 2 * math.Pi / float64(o.VertexCount)
	for i := range points {
		points[i] = physics.FromAngle(step*float64(i), o.Size)
	}
	return points
}
