// pkg/entity/entity.go
package entity

import (
	"github.com/opd-ai/go-wanderer/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Entity is anything a Renderer can draw: the agent, its trail and every
// pooled object.
type Entity interface {
	Render(r Renderer)
}

// BaseEntity contains the kinematic state shared by moving entities.
type BaseEntity struct {
	ID       ID
	Position physics.Vector2D
	Velocity physics.Vector2D
}

// Advance moves the entity by one frame of velocity.
func (e *BaseEntity) Advance() {
	e.Position = e.Position.Add(e.Velocity)
}

// IDSource hands out increasing entity IDs starting at 1. The zero value is
// ready to use. It is owned by a single simulation and is not safe for
// concurrent use.
type IDSource struct {
	last ID
}

// Next returns the next unused ID.
func (s *IDSource) Next() ID {
	s.last++
	return s.last
}

// Render methods route each entity to the matching Renderer call.

func (a *Agent) Render(r Renderer) {
	r.RenderAgent(a)
}

func (o *Obstacle) Render(r Renderer) {
	r.RenderObstacle(o)
}

func (b *Bullet) Render(r Renderer) {
	r.RenderBullet(b)
}

func (p *Particle) Render(r Renderer) {
	r.RenderParticle(p)
}

func (t *Trail) Render(r Renderer) {
	r.RenderTrail(t.Samples())
}
