// pkg/render/painter.go
package render

import (
	"image/color"

	"github.com/opd-ai/go-wanderer/pkg/entity"
)

// Scene colours and sizes.
var (
	Ink   = color.NRGBA{A: 255}
	Paper = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	// Veil is laid over the previous frame instead of clearing it, so moving
	// shapes leave fading streaks.
	Veil = color.NRGBA{R: 255, G: 255, B: 255, A: 99}
)

const (
	particleDiameter   = 3
	bulletWeight       = 2
	trailOuterDiameter = 10
	trailInnerDiameter = 5
)

// Painter draws simulation entities onto a Canvas.
type Painter struct {
	canvas *Canvas
}

// NewPainter creates a painter for canvas.
func NewPainter(canvas *Canvas) *Painter {
	return &Painter{canvas: canvas}
}

// Canvas returns the surface the painter draws on.
func (p *Painter) Canvas() *Canvas {
	return p.canvas
}

// Clear starts a frame by veiling the whole surface.
func (p *Painter) Clear() {
	p.canvas.Begin()
	w, h := p.canvas.Size()
	p.canvas.Rect(0, 0, w, h, Veil)
}

// RenderObstacle draws the obstacle outline as a filled polygon.
func (p *Painter) RenderObstacle(o *entity.Obstacle) {
	if o == nil {
		return
	}
	p.canvas.Push()
	p.canvas.Translate(o.Position.X, o.Position.Y)
	p.canvas.Polygon(o.Vertices(), Ink)
	p.canvas.Pop()
}

// RenderParticle draws a small dot that fades with the particle's lifespan.
func (p *Painter) RenderParticle(pt *entity.Particle) {
	if pt == nil {
		return
	}
	c := Ink
	c.A = pt.Alpha()
	p.canvas.Ellipse(pt.Position.X, pt.Position.Y, particleDiameter, particleDiameter, c)
}

// RenderBullet draws the bullet as a streak covering its last step.
func (p *Painter) RenderBullet(b *entity.Bullet) {
	if b == nil {
		return
	}
	tail := b.Tail()
	p.canvas.Line(tail.X, tail.Y, b.Position.X, b.Position.Y, bulletWeight, Ink)
}

// RenderTrail draws the samples oldest first, each more opaque than the last.
func (p *Painter) RenderTrail(samples []entity.TrailSample) {
	n := len(samples)
	for i, s := range samples {
		alpha := uint8(i * 255 / n)
		outer, inner := Ink, Paper
		outer.A, inner.A = alpha, alpha
		p.canvas.Ellipse(s.X, s.Y, trailOuterDiameter, trailOuterDiameter, outer)
		p.canvas.Ellipse(s.X, s.Y, trailInnerDiameter, trailInnerDiameter, inner)
	}
}

// RenderAgent draws the ship glyph pointing along its velocity.
func (p *Painter) RenderAgent(a *entity.Agent) {
	if a == nil {
		return
	}
	p.canvas.Push()
	p.canvas.Translate(a.Position.X, a.Position.Y)
	p.canvas.Rotate(a.Heading())
	p.canvas.Triangle(-15, -7.5, -15, 7.5, 15, 0, Ink)
	p.canvas.Triangle(-7.5, -15, -7.5, 15, 3.75, 0, Ink)
	p.canvas.Pop()
}

// Present finishes the frame.
func (p *Painter) Present() {
	p.canvas.End()
}
