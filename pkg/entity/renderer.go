package entity

// Renderer draws simulation entities. A frame is Clear, then every entity
// in back-to-front order, then Present.
type Renderer interface {
	Clear()
	RenderObstacle(obstacle *Obstacle)
	RenderParticle(particle *Particle)
	RenderBullet(bullet *Bullet)
	RenderTrail(samples []TrailSample)
	RenderAgent(agent *Agent)
	Present()
}
