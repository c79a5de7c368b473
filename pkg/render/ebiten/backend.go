// pkg/render/ebiten/backend.go
package ebiten

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/opd-ai/go-wanderer/pkg/physics"
)

const ellipseSegments = 24

// Backend implements render.Backend by tessellating paths and drawing them
// onto an ebiten image.
type Backend struct {
	target    *ebiten.Image
	fillImg   *ebiten.Image
	vs        []ebiten.Vertex
	is        []uint16
	antiAlias bool
}

// NewBackend creates a backend. Images are allocated on first use, so it is
// safe to call before the game loop starts.
func NewBackend(antiAlias bool) *Backend {
	return &Backend{
		vs:        make([]ebiten.Vertex, 0, 64),
		is:        make([]uint16, 0, 96),
		antiAlias: antiAlias,
	}
}

// SetTarget selects the image subsequent frames are drawn on.
func (b *Backend) SetTarget(target *ebiten.Image) {
	b.target = target
	if b.fillImg == nil {
		b.fillImg = ebiten.NewImage(1, 1)
		b.fillImg.Fill(color.White)
	}
}

// BeginFrame implements render.Backend. The target keeps its previous
// contents.
func (b *Backend) BeginFrame() {}

// EndFrame implements render.Backend. Ebiten presents the screen itself.
func (b *Backend) EndFrame() {}

// FillEllipse implements render.Backend.
func (b *Backend) FillEllipse(center physics.Vector2D, rx, ry float64, c color.NRGBA) {
	if rx <= 0 || ry <= 0 {
		return
	}
	var path vector.Path
	if rx == ry {
		path.Arc(float32(center.X), float32(center.Y), float32(rx), 0, 2*math.Pi, vector.Clockwise)
	} else {
		for i := 0; i < ellipseSegments; i++ {
			sin, cos := math.Sincos(2 * math.Pi * float64(i) / ellipseSegments)
			x, y := float32(center.X+rx*cos), float32(center.Y+ry*sin)
			if i == 0 {
				path.MoveTo(x, y)
			} else {
				path.LineTo(x, y)
			}
		}
	}
	path.Close()
	b.fill(&path, c)
}

// FillPolygon implements render.Backend.
func (b *Backend) FillPolygon(points []physics.Vector2D, c color.NRGBA) {
	if len(points) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()
	b.fill(&path, c)
}

// StrokeLine implements render.Backend.
func (b *Backend) StrokeLine(from, to physics.Vector2D, width float64, c color.NRGBA) {
	if b.target == nil {
		return
	}
	var path vector.Path
	path.MoveTo(float32(from.X), float32(from.Y))
	path.LineTo(float32(to.X), float32(to.Y))

	b.vs, b.is = path.AppendVerticesAndIndicesForStroke(b.vs[:0], b.is[:0], &vector.StrokeOptions{
		Width:   float32(width),
		LineCap: vector.LineCapRound,
	})
	colorize(b.vs, c)
	b.target.DrawTriangles(b.vs, b.is, b.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: b.antiAlias,
	})
}

func (b *Backend) fill(path *vector.Path, c color.NRGBA) {
	if b.target == nil {
		return
	}
	b.vs, b.is = path.AppendVerticesAndIndicesForFilling(b.vs[:0], b.is[:0])
	colorize(b.vs, c)
	b.target.DrawTriangles(b.vs, b.is, b.fillImg, &ebiten.DrawTrianglesOptions{
		AntiAlias: b.antiAlias,
	})
}

// colorize paints every vertex with the straight-alpha colour c.
func colorize(vs []ebiten.Vertex, c color.NRGBA) {
	for i := range vs {
		vs[i].SrcX = 0
		vs[i].SrcY = 0
		vs[i].ColorR = float32(c.R) / 255
		vs[i].ColorG = float32(c.G) / 255
		vs[i].ColorB = float32(c.B) / 255
		vs[i].ColorA = float32(c.A) / 255
	}
}
