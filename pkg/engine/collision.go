// pkg/engine/collision.go
package engine

import (
	"github.com/opd-ai/go-wanderer/pkg/entity"
	"github.com/opd-ai/go-wanderer/pkg/event"
	"github.com/opd-ai/go-wanderer/pkg/physics"
	"github.com/opd-ai/go-wanderer/pkg/random"
)

// resolveCollisions removes each obstacle hit by a bullet together with the
// lowest-indexed bullet that hit it, and explodes the obstacle. A bullet is
// spent on the first obstacle it hits.
func (s *Simulation) resolveCollisions() {
	if len(s.Obstacles) == 0 || len(s.Bullets) == 0 {
		return
	}

	stray := s.populateCollisionIndex()
	spent := make([]bool, len(s.Bullets))
	destroyed := make([]bool, len(s.Obstacles))

	for i := range s.Obstacles {
		obstacle := &s.Obstacles[i]
		hit := s.firstHit(obstacle, stray, spent)
		if hit < 0 {
			continue
		}
		spent[hit] = true
		destroyed[i] = true
		s.handleHit(obstacle, &s.Bullets[hit])
	}

	s.Obstacles = retainIndexed(s.Obstacles, destroyed)
	s.Bullets = retainIndexed(s.Bullets, spent)
}

// populateCollisionIndex rebuilds the broad phase from the bullet pool. It
// returns the indices of bullets that fell outside the index boundary; they
// are checked against every obstacle.
func (s *Simulation) populateCollisionIndex() []int {
	s.index.Clear()
	var stray []int
	for i := range s.Bullets {
		if !s.index.Insert(s.Bullets[i].Position, i) {
			stray = append(stray, i)
		}
	}
	return stray
}

// firstHit returns the index of the first unspent bullet, in pool order,
// that overlaps obstacle, or -1.
func (s *Simulation) firstHit(obstacle *entity.Obstacle, stray []int, spent []bool) int {
	collider := obstacle.Collider()
	collider.Radius += s.Config.BulletRadius
	candidates := append(s.index.Query(physics.RectAround(collider)), stray...)

	best := -1
	for _, i := range candidates {
		if spent[i] || (best >= 0 && i > best) {
			continue
		}
		if s.Bullets[i].Collider(s.Config.BulletRadius).Collides(obstacle.Collider()) {
			best = i
		}
	}
	return best
}

func (s *Simulation) handleHit(obstacle *entity.Obstacle, bullet *entity.Bullet) {
	s.explode(obstacle.Position)

	s.EventBus.Publish(event.NewCollisionEvent(s, uint64(obstacle.ID), uint64(bullet.ID), obstacle.Position, s.FrameCount))
	if s.logger.DebugEnabled(s.ctx) {
		s.logger.Debug(s.ctx, "obstacle destroyed",
			"frame", s.FrameCount,
			"obstacle_id", obstacle.ID,
			"bullet_id", bullet.ID,
		)
	}
}

// explode emits a burst of particles at origin in random directions.
func (s *Simulation) explode(origin physics.Vector2D) {
	for i := 0; i < s.Config.ParticleCount; i++ {
		speed := random.Range(s.rng, s.Config.ParticleMinSpeed, s.Config.ParticleMaxSpeed)
		velocity := physics.FromAngle(random.Angle(s.rng), speed)
		s.Particles = append(s.Particles, entity.NewParticle(origin, velocity, s.Config.ParticleLifespan))
	}
}
