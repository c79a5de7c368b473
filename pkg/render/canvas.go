// pkg/render/canvas.go
package render

import (
	"image/color"
	"math"

	"github.com/opd-ai/go-wanderer/pkg/physics"
)

// ellipseSegments is the outline resolution used when a rotated ellipse has
// to be turned into a polygon.
const ellipseSegments = 24

// Backend receives screen-space primitives. A frame starts with BeginFrame
// and ends with EndFrame; backends that keep pixels between frames must not
// erase them in BeginFrame.
type Backend interface {
	BeginFrame()
	FillEllipse(center physics.Vector2D, rx, ry float64, c color.NRGBA)
	FillPolygon(points []physics.Vector2D, c color.NRGBA)
	StrokeLine(from, to physics.Vector2D, width float64, c color.NRGBA)
	EndFrame()
}

// affine is a 2x3 transform matrix: x' = a*x + c*y + tx, y' = b*x + d*y + ty.
type affine struct {
	a, b, c, d float64
	tx, ty     float64
}

var identity = affine{a: 1, d: 1}

func (m affine) apply(p physics.Vector2D) physics.Vector2D {
	return physics.Vector2D{
		X: m.a*p.X + m.c*p.Y + m.tx,
		Y: m.b*p.X + m.d*p.Y + m.ty,
	}
}

// then returns m followed by n in local space, i.e. m * n.
func (m affine) then(n affine) affine {
	return affine{
		a:  m.a*n.a + m.c*n.b,
		b:  m.b*n.a + m.d*n.b,
		c:  m.a*n.c + m.c*n.d,
		d:  m.b*n.c + m.d*n.d,
		tx: m.a*n.tx + m.c*n.ty + m.tx,
		ty: m.b*n.tx + m.d*n.ty + m.ty,
	}
}

func (m affine) rotated() bool {
	return m.b != 0 || m.c != 0
}

// Canvas is an immediate-mode drawing surface with a transform stack. Shapes
// are given in local coordinates and reach the backend in screen space.
type Canvas struct {
	backend Backend
	width   float64
	height  float64
	current affine
	stack   []affine
}

// NewCanvas creates a canvas of the given size drawing to backend.
func NewCanvas(backend Backend, width, height float64) *Canvas {
	return &Canvas{
		backend: backend,
		width:   width,
		height:  height,
		current: identity,
	}
}

// Size returns the surface dimensions.
func (c *Canvas) Size() (width, height float64) {
	return c.width, c.height
}

// Resize changes the surface dimensions used by full-surface fills.
func (c *Canvas) Resize(width, height float64) {
	c.width = width
	c.height = height
}

// Begin starts a frame with an empty transform stack.
func (c *Canvas) Begin() {
	c.current = identity
	c.stack = c.stack[:0]
	c.backend.BeginFrame()
}

// End finishes the frame.
func (c *Canvas) End() {
	c.backend.EndFrame()
}

// Push saves the current transform.
func (c *Canvas) Push() {
	c.stack = append(c.stack, c.current)
}

// Pop restores the most recently pushed transform. Popping an empty stack
// resets to the identity.
func (c *Canvas) Pop() {
	if len(c.stack) == 0 {
		c.current = identity
		return
	}
	c.current = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Translate moves the origin by (x, y) in local coordinates.
func (c *Canvas) Translate(x, y float64) {
	c.current = c.current.then(affine{a: 1, d: 1, tx: x, ty: y})
}

// Rotate turns the local axes by theta radians.
func (c *Canvas) Rotate(theta float64) {
	sin, cos := math.Sincos(theta)
	c.current = c.current.then(affine{a: cos, b: sin, c: -sin, d: cos})
}

// Ellipse fills an ellipse centred on (x, y) with diameters w and h.
func (c *Canvas) Ellipse(x, y, w, h float64, col color.NRGBA) {
	rx, ry := w/2, h/2
	if c.current.rotated() && rx != ry {
		c.backend.FillPolygon(c.transform(ellipseOutline(x, y, rx, ry)), col)
		return
	}
	c.backend.FillEllipse(c.current.apply(physics.Vector2D{X: x, Y: y}), rx, ry, col)
}

// Polygon fills the closed polygon through points.
func (c *Canvas) Polygon(points []physics.Vector2D, col color.NRGBA) {
	if len(points) < 3 {
		return
	}
	c.backend.FillPolygon(c.transform(points), col)
}

// Triangle fills the triangle (x1,y1) (x2,y2) (x3,y3).
func (c *Canvas) Triangle(x1, y1, x2, y2, x3, y3 float64, col color.NRGBA) {
	c.Polygon([]physics.Vector2D{{X: x1, Y: y1}, {X: x2, Y: y2}, {X: x3, Y: y3}}, col)
}

// Line strokes a segment weight units wide.
func (c *Canvas) Line(x1, y1, x2, y2, weight float64, col color.NRGBA) {
	from := c.current.apply(physics.Vector2D{X: x1, Y: y1})
	to := c.current.apply(physics.Vector2D{X: x2, Y: y2})
	c.backend.StrokeLine(from, to, weight, col)
}

// Rect fills the axis-aligned rectangle with top-left corner (x, y).
func (c *Canvas) Rect(x, y, w, h float64, col color.NRGBA) {
	c.Polygon([]physics.Vector2D{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
	}, col)
}

func (c *Canvas) transform(points []physics.Vector2D) []physics.Vector2D {
	out := make([]physics.Vector2D, len(points))
	for i, p := range points {
		out[i] = c.current.apply(p)
	}
	return out
}

func ellipseOutline(x, y, rx, ry float64) []physics.Vector2D {
	points := make([]physics.Vector2D, ellipseSegments)
	for i := range points {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / ellipseSegments)
		points[i] = physics.Vector2D{X: x + rx*cos, Y: y + ry*sin}
	}
	return points
}
