// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-wanderer/pkg/entity"
	"github.com/opd-ai/go-wanderer/pkg/logging"
)

// FrameTally counts what one frame drew.
type FrameTally struct {
	Obstacles    int
	Particles    int
	Bullets      int
	TrailSamples int
	Agents       int
}

// NullRenderer is an entity.Renderer that draws nothing and logs each call
// at debug level. It backs headless runs.
type NullRenderer struct {
	logger  *logging.Logger
	ctx     context.Context
	frames  uint64
	current FrameTally
	last    FrameTally
}

// NewNullRenderer creates a NullRenderer logging through logger. A nil
// logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger,
		ctx:    context.Background(),
	}
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.current = FrameTally{}
	d.logger.Debug(d.ctx, "Clear called", "frame", d.frames)
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.last = d.current
	d.frames++
	d.logger.Debug(d.ctx, "Present called",
		"frame", d.frames,
		"obstacles", d.last.Obstacles,
		"particles", d.last.Particles,
		"bullets", d.last.Bullets,
		"trail", d.last.TrailSamples,
	)
}

// RenderObstacle implements entity.Renderer.
func (d *NullRenderer) RenderObstacle(obstacle *entity.Obstacle) {
	if obstacle == nil {
		d.logger.Debug(d.ctx, "RenderObstacle called with nil obstacle")
		return
	}
	d.current.Obstacles++
	d.logger.Debug(d.ctx, "RenderObstacle called",
		"obstacle_id", obstacle.ID,
		"x", obstacle.Position.X,
		"y", obstacle.Position.Y,
	)
}

// RenderParticle implements entity.Renderer.
func (d *NullRenderer) RenderParticle(particle *entity.Particle) {
	if particle == nil {
		d.logger.Debug(d.ctx, "RenderParticle called with nil particle")
		return
	}
	d.current.Particles++
}

// RenderBullet implements entity.Renderer.
func (d *NullRenderer) RenderBullet(bullet *entity.Bullet) {
	if bullet == nil {
		d.logger.Debug(d.ctx, "RenderBullet called with nil bullet")
		return
	}
	d.current.Bullets++
	d.logger.Debug(d.ctx, "RenderBullet called",
		"bullet_id", bullet.ID,
		"heading", bullet.Heading,
	)
}

// RenderTrail implements entity.Renderer.
func (d *NullRenderer) RenderTrail(samples []entity.TrailSample) {
	d.current.TrailSamples += len(samples)
}

// RenderAgent implements entity.Renderer.
func (d *NullRenderer) RenderAgent(agent *entity.Agent) {
	if agent == nil {
		d.logger.Debug(d.ctx, "RenderAgent called with nil agent")
		return
	}
	d.current.Agents++
	d.logger.Debug(d.ctx, "RenderAgent called",
		"x", agent.Position.X,
		"y", agent.Position.Y,
		"heading", agent.Heading(),
	)
}

// Frames returns how many frames have been presented.
func (d *NullRenderer) Frames() uint64 {
	return d.frames
}

// LastFrame returns the tally of the most recently presented frame.
func (d *NullRenderer) LastFrame() FrameTally {
	return d.last
}
