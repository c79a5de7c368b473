// pkg/entity/particle.go
package entity

import (
	"github.com/opd-ai/go-wanderer/pkg/physics"
)

// Particle is an explosion fragment that fades out over its lifespan.
type Particle struct {
	BaseEntity
	Lifespan int
}

// NewParticle creates a particle at origin moving with velocity.
func NewParticle(origin, velocity physics.Vector2D, lifespan int) Particle {
	return Particle{
		BaseEntity: BaseEntity{Position: origin, Velocity: velocity},
		Lifespan:   lifespan,
	}
}

// Update moves the particle one frame and reduces its lifespan by decay.
func (p *Particle) Update(decay int) {
	p.Advance()
	p.Lifespan -= decay
}

// Done reports whether the particle has faded out.
func (p *Particle) Done() bool {
	return p.Lifespan <= 0
}

// Alpha returns the lifespan as an opacity in [0, 255].
func (p *Particle) Alpha() uint8 {
	switch {
	case p.Lifespan <= 0:
		return 0
	case p.Lifespan >= 255:
		return 255
	default:
		return uint8(p.Lifespan)
	}
}
