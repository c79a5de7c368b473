// pkg/entity/weapon.go
package entity

import (
	"github.com/opd-ai/go-wanderer/pkg/physics"
)

// Blaster is the agent's auto-firing gun. Its cooldown is counted in frames
// and shared across all targets.
type Blaster struct {
	Speed    float64
	Range    float64
	Cooldown uint64
	// LastShot is the frame of the most recent shot, initially 0.
	LastShot uint64
}

// NewBlaster creates a blaster that has never fired.
func NewBlaster(speed, rng float64, cooldown uint64) *Blaster {
	return &Blaster{
		Speed:    speed,
		Range:    rng,
		Cooldown: cooldown,
	}
}

// Ready reports whether more than Cooldown frames have passed since the
// last shot.
func (b *Blaster) Ready(frame uint64) bool {
	return frame > b.LastShot && frame-b.LastShot > b.Cooldown
}

// InRange reports whether target is strictly closer than Range to origin.
func (b *Blaster) InRange(origin, target physics.Vector2D) bool {
	return origin.Distance(target) < b.Range
}

// Fire creates a bullet at origin heading toward target and records frame
// as the last shot.
func (b *Blaster) Fire(id ID, origin, target physics.Vector2D, frame uint64) Bullet {
	heading := target.Sub(origin).Heading()
	b.LastShot = frame
	return Bullet{
		BaseEntity: BaseEntity{
			ID:       id,
			Position: origin,
			Velocity: physics.FromAngle(heading, b.Speed),
		},
		Heading: heading,
	}
}

// Bullet travels in a straight line from where it was fired. Its velocity
// is fixed at fire time.
type Bullet struct {
	BaseEntity
	Heading float64
}

// Collider returns the hit circle for a bullet of the given radius.
func (b *Bullet) Collider(radius float64) physics.Circle {
	return physics.Circle{Center: b.Position, Radius: radius}
}

// Tail returns the point one frame behind the bullet.
func (b *Bullet) Tail() physics.Vector2D {
	return b.Position.Sub(b.Velocity)
}
