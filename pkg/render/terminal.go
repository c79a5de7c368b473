package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-wanderer/pkg/physics"
)

// halfBlock draws the upper pixel of a cell in the foreground colour and the
// lower pixel in the background colour.
const halfBlock = '▀'

// pixel is a straight RGB value in [0,1].
type pixel struct {
	r, g, b float64
}

var white = pixel{1, 1, 1}

// TerminalBackend rasterises primitives into a colour buffer and shows it on
// a tcell screen. Every terminal cell holds two square pixels stacked
// vertically. The buffer persists between frames so veils accumulate.
type TerminalBackend struct {
	screen tcell.Screen
	width  int // pixels across, equal to screen columns
	height int // pixels down, twice the screen rows
	buffer [][]pixel
	scale  float64 // world units per pixel
}

// NewTerminalBackend creates a backend covering the whole screen, with scale
// world units per pixel.
func NewTerminalBackend(screen tcell.Screen, scale float64) *TerminalBackend {
	if scale <= 0 {
		scale = 1
	}
	r := &TerminalBackend{screen: screen, scale: scale}
	r.Resize()
	return r
}

// Resize reallocates the buffer to the current screen size and blanks it.
func (r *TerminalBackend) Resize() {
	cols, rows := r.screen.Size()
	r.width = max(cols, 0)
	r.height = max(rows*2, 0)
	r.buffer = make([][]pixel, r.height)
	for i := range r.buffer {
		r.buffer[i] = make([]pixel, r.width)
		for x := range r.buffer[i] {
			r.buffer[i][x] = white
		}
	}
}

// WorldSize returns the world dimensions the screen covers.
func (r *TerminalBackend) WorldSize() (width, height int) {
	return int(float64(r.width) * r.scale), int(float64(r.height) * r.scale)
}

// worldToScreen converts world coordinates to pixel coordinates
func (r *TerminalBackend) worldToScreen(pos physics.Vector2D) (int, int) {
	return int(math.Floor(pos.X / r.scale)), int(math.Floor(pos.Y / r.scale))
}

// pixelCenter returns the world position of the middle of pixel (x, y).
func (r *TerminalBackend) pixelCenter(x, y int) physics.Vector2D {
	return physics.Vector2D{X: (float64(x) + 0.5) * r.scale, Y: (float64(y) + 0.5) * r.scale}
}

// BeginFrame implements Backend. Pixels from the previous frame are kept.
func (r *TerminalBackend) BeginFrame() {}

// EndFrame implements Backend.
func (r *TerminalBackend) EndFrame() {
	for row := 0; row*2+1 < r.height; row++ {
		top, bottom := r.buffer[row*2], r.buffer[row*2+1]
		for x := 0; x < r.width; x++ {
			style := tcell.StyleDefault.
				Foreground(top[x].color()).
				Background(bottom[x].color())
			r.screen.SetContent(x, row, halfBlock, nil, style)
		}
	}
	r.screen.Show()
}

// FillEllipse implements Backend. An ellipse smaller than a pixel still
// marks the pixel under its centre.
func (r *TerminalBackend) FillEllipse(center physics.Vector2D, rx, ry float64, c color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	x0, y0 := r.worldToScreen(physics.Vector2D{X: center.X - rx, Y: center.Y - ry})
	x1, y1 := r.worldToScreen(physics.Vector2D{X: center.X + rx, Y: center.Y + ry})
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, r.width-1), min(y1, r.height-1)

	hit := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			p := r.pixelCenter(x, y)
			dx, dy := (p.X-center.X)/rx, (p.Y-center.Y)/ry
			if dx*dx+dy*dy <= 1 {
				r.blend(x, y, c)
				hit = true
			}
		}
	}
	if !hit {
		x, y := r.worldToScreen(center)
		r.blend(x, y, c)
	}
}

// FillPolygon implements Backend using an even-odd test on pixel centres.
func (r *TerminalBackend) FillPolygon(points []physics.Vector2D, c color.NRGBA) {
	if len(points) < 3 {
		return
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	x0, y0 := r.worldToScreen(lo)
	x1, y1 := r.worldToScreen(hi)
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, r.width-1), min(y1, r.height-1)

	hit := false
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if insidePolygon(points, r.pixelCenter(x, y)) {
				r.blend(x, y, c)
				hit = true
			}
		}
	}
	if !hit {
		x, y := r.worldToScreen(lo.Add(hi).Scale(0.5))
		r.blend(x, y, c)
	}
}

// StrokeLine implements Backend. Lines are one pixel wide whatever the
// requested width.
func (r *TerminalBackend) StrokeLine(from, to physics.Vector2D, _ float64, c color.NRGBA) {
	delta := to.Sub(from)
	steps := int(math.Ceil(math.Max(math.Abs(delta.X), math.Abs(delta.Y)) / r.scale))
	lastX, lastY := math.MinInt, math.MinInt
	for i := 0; i <= steps; i++ {
		t := 0.0
		if steps > 0 {
			t = float64(i) / float64(steps)
		}
		x, y := r.worldToScreen(from.Add(delta.Scale(t)))
		if x == lastX && y == lastY {
			continue
		}
		r.blend(x, y, c)
		lastX, lastY = x, y
	}
}

// blend composites c over pixel (x, y). Out of range pixels are ignored.
func (r *TerminalBackend) blend(x, y int, c color.NRGBA) {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return
	}
	a := float64(c.A) / 255
	p := &r.buffer[y][x]
	p.r = float64(c.R)/255*a + p.r*(1-a)
	p.g = float64(c.G)/255*a + p.g*(1-a)
	p.b = float64(c.B)/255*a + p.b*(1-a)
}

func (p pixel) color() tcell.Color {
	return tcell.NewRGBColor(channel(p.r), channel(p.g), channel(p.b))
}

func channel(v float64) int32 {
	return int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

func insidePolygon(points []physics.Vector2D, p physics.Vector2D) bool {
	inside := false
	j := len(points) - 1
	for i := range points {
		a, b := points[i], points[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
		j = i
	}
	return inside
}
