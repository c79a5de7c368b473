// pkg/render/engo/renderer.go
package engo

import (
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-wanderer/pkg/physics"
)

// shapeAdder is the part of common.RenderSystem the backend needs.
type shapeAdder interface {
	Add(basic *ecs.BasicEntity, render *common.RenderComponent, space *common.SpaceComponent)
}

// shapeSlot is one pooled render entity. Slot i always carries the i-th
// primitive of a frame, so its fixed z-index keeps painter order.
type shapeSlot struct {
	basic  ecs.BasicEntity
	render common.RenderComponent
	space  common.SpaceComponent
}

// EngoRenderer implements render.Backend on top of Engo's shape drawables.
type EngoRenderer struct {
	renderSystem shapeAdder
	slots        []*shapeSlot
	used         int
}

// NewEngoRenderer creates a backend adding its entities to renderSystem.
func NewEngoRenderer(renderSystem shapeAdder) *EngoRenderer {
	return &EngoRenderer{renderSystem: renderSystem}
}

// BeginFrame implements render.Backend.
func (r *EngoRenderer) BeginFrame() {
	r.used = 0
}

// EndFrame implements render.Backend. Slots not drawn this frame are hidden.
func (r *EngoRenderer) EndFrame() {
	for _, slot := range r.slots[r.used:] {
		slot.render.Hidden = true
	}
}

// FillEllipse implements render.Backend.
func (r *EngoRenderer) FillEllipse(center physics.Vector2D, rx, ry float64, c color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	slot := r.nextSlot()
	slot.render.Drawable = common.Circle{}
	slot.render.Color = c
	slot.space.Position = engo.Point{X: float32(center.X - rx), Y: float32(center.Y - ry)}
	slot.space.Width = float32(2 * rx)
	slot.space.Height = float32(2 * ry)
}

// FillPolygon implements render.Backend. Polygons are fanned from their
// first vertex, which is exact for the convex shapes the scene draws.
func (r *EngoRenderer) FillPolygon(points []physics.Vector2D, c color.NRGBA) {
	if len(points) < 3 {
		return
	}
	triangles := make([]physics.Vector2D, 0, 3*(len(points)-2))
	for i := 1; i+1 < len(points); i++ {
		triangles = append(triangles, points[0], points[i], points[i+1])
	}
	r.fillTriangles(triangles, c)
}

// StrokeLine implements render.Backend as a quad of the requested width.
func (r *EngoRenderer) StrokeLine(from, to physics.Vector2D, width float64, c color.NRGBA) {
	dir := to.Sub(from).Normalize()
	if dir == (physics.Vector2D{}) {
		return
	}
	n := physics.Vector2D{X: -dir.Y, Y: dir.X}.Scale(width / 2)
	a, b := from.Add(n), from.Sub(n)
	d, e := to.Add(n), to.Sub(n)
	r.fillTriangles([]physics.Vector2D{a, b, e, a, e, d}, c)
}

// fillTriangles draws a triangle list. Engo expects the points scaled to
// [0,1] within the entity's space.
func (r *EngoRenderer) fillTriangles(triangles []physics.Vector2D, c color.NRGBA) {
	lo, hi := triangles[0], triangles[0]
	for _, p := range triangles[1:] {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	w, h := hi.X-lo.X, hi.Y-lo.Y
	if w <= 0 || h <= 0 {
		return
	}

	normalized := make([]engo.Point, len(triangles))
	for i, p := range triangles {
		normalized[i] = engo.Point{X: float32((p.X - lo.X) / w), Y: float32((p.Y - lo.Y) / h)}
	}

	slot := r.nextSlot()
	slot.render.Drawable = common.ComplexTriangles{Points: normalized}
	slot.render.Color = c
	slot.space.Position = engo.Point{X: float32(lo.X), Y: float32(lo.Y)}
	slot.space.Width = float32(w)
	slot.space.Height = float32(h)
}

// nextSlot returns the slot for the next primitive, creating one when the
// frame draws more than any frame before.
func (r *EngoRenderer) nextSlot() *shapeSlot {
	if r.used == len(r.slots) {
		slot := &shapeSlot{basic: ecs.NewBasic()}
		slot.render.StartZIndex = float32(len(r.slots))
		r.slots = append(r.slots, slot)
		r.renderSystem.Add(&slot.basic, &slot.render, &slot.space)
	}
	slot := r.slots[r.used]
	r.used++
	slot.render.Hidden = false
	return slot
}

// Visible returns how many shapes the last frame drew.
func (r *EngoRenderer) Visible() int {
	return r.used
}
