// pkg/render/ebiten/game.go
package ebiten

import (
	"context"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/opd-ai/go-wanderer/pkg/engine"
	"github.com/opd-ai/go-wanderer/pkg/logging"
	"github.com/opd-ai/go-wanderer/pkg/render"
)

const (
	overlayWidth      = 220
	overlayLineHeight = 15
	overlayMargin     = 8
)

var overlayFace = text.NewGoXFace(basicfont.Face7x13)

// Game runs a simulation inside an ebiten window. It implements ebiten.Game.
type Game struct {
	sim       *engine.Simulation
	backend   *Backend
	painter   *render.Painter
	logger    *logging.Logger
	ctx       context.Context
	width     int
	height    int
	maxFrames uint64
	paused    bool
	overlay   bool
}

// NewGame wraps sim. maxFrames stops the game after that many ticks; zero
// runs until the window is closed. ctx is attached to every log record.
func NewGame(ctx context.Context, sim *engine.Simulation, logger *logging.Logger, maxFrames uint64) *Game {
	if logger == nil {
		logger = logging.Discard()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	w, h := int(sim.Bounds.Width), int(sim.Bounds.Height)
	backend := NewBackend(true)
	return &Game{
		sim:       sim,
		backend:   backend,
		painter:   render.NewPainter(render.NewCanvas(backend, sim.Bounds.Width, sim.Bounds.Height)),
		logger:    logger,
		ctx:       ctx,
		width:     w,
		height:    h,
		maxFrames: maxFrames,
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.logger.Info(g.ctx, "quit requested", "frame", g.sim.FrameCount)
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay = !g.overlay
	}
	return g.step()
}

// step advances the simulation unless paused.
func (g *Game) step() error {
	if g.paused {
		return nil
	}
	if g.maxFrames > 0 && g.sim.FrameCount >= g.maxFrames {
		g.logger.Info(g.ctx, "frame limit reached", "frames", g.sim.FrameCount)
		return ebiten.Termination
	}
	g.sim.Update()
	return nil
}

// TogglePause stops or resumes the simulation.
func (g *Game) TogglePause() {
	g.paused = !g.paused
	g.logger.Info(g.ctx, "pause toggled", "paused", g.paused, "frame", g.sim.FrameCount)
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// SetOverlay shows or hides the frame counters. F1 toggles it at runtime.
func (g *Game) SetOverlay(on bool) {
	g.overlay = on
}

// Draw implements ebiten.Game. The screen is not cleared between frames.
func (g *Game) Draw(screen *ebiten.Image) {
	g.backend.SetTarget(screen)
	g.sim.Render(g.painter)
	if !g.overlay {
		return
	}

	lines := g.overlayLines()
	vector.DrawFilledRect(screen, 0, 0, overlayWidth, float32(overlayMargin+len(lines)*overlayLineHeight), color.White, false)
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(overlayMargin, float64(overlayMargin/2+i*overlayLineHeight))
		op.ColorScale.ScaleWithColor(color.Black)
		text.Draw(screen, line, overlayFace, op)
	}
}

func (g *Game) overlayLines() []string {
	c := g.sim.Counts()
	lines := []string{
		fmt.Sprintf("frame %d  tps %.0f", g.sim.FrameCount, ebiten.ActualTPS()),
		fmt.Sprintf("obstacles %d  bullets %d", c.Obstacles, c.Bullets),
		fmt.Sprintf("particles %d  trail %d", c.Particles, c.Trail),
	}
	if g.paused {
		lines = append(lines, "paused")
	}
	return lines
}

// Layout implements ebiten.Game. The logical screen always matches the
// simulation bounds.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

// Run opens a window and blocks until the game ends.
func Run(g *Game, title string, tps int) error {
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(tps)
	ebiten.SetScreenClearedEveryFrame(false)

	g.logger.Info(g.ctx, "starting ebiten host", "width", g.width, "height", g.height, "tps", tps)
	if err := ebiten.RunGame(g); err != nil {
		return logging.WrapError(err, "ebiten host")
	}
	return nil
}
