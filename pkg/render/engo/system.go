// pkg/render/engo/system.go
package engo

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-wanderer/pkg/engine"
	"github.com/opd-ai/go-wanderer/pkg/entity"
	"github.com/opd-ai/go-wanderer/pkg/logging"
)

// maxCatchUp bounds how many ticks one slow frame may run.
const maxCatchUp = 5

// SimulationSystem advances a simulation at a fixed tick rate and draws it
// once per engo frame.
type SimulationSystem struct {
	sim       *engine.Simulation
	renderer  entity.Renderer
	logger    *logging.Logger
	ctx       context.Context
	step      float32
	elapsed   float32
	paused    bool
	maxFrames uint64
	exit      func()
}

// NewSimulationSystem creates a system ticking sim tps times a second and
// drawing with renderer. maxFrames stops the game after that many ticks;
// zero runs forever.
func NewSimulationSystem(ctx context.Context, sim *engine.Simulation, renderer entity.Renderer, tps int, maxFrames uint64, logger *logging.Logger) *SimulationSystem {
	if tps <= 0 {
		tps = 60
	}
	if logger == nil {
		logger = logging.Discard()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &SimulationSystem{
		sim:       sim,
		renderer:  renderer,
		logger:    logger,
		ctx:       ctx,
		step:      1 / float32(tps),
		maxFrames: maxFrames,
		exit:      engo.Exit,
	}
}

// Remove satisfies the ecs.System interface
func (s *SimulationSystem) Remove(basic ecs.BasicEntity) {}

// Update runs the ticks due after dt seconds, then renders.
func (s *SimulationSystem) Update(dt float32) {
	if !s.paused {
		s.elapsed += dt
		for ticks := 0; s.elapsed >= s.step && ticks < maxCatchUp; ticks++ {
			if s.maxFrames > 0 && s.sim.FrameCount >= s.maxFrames {
				s.logger.Info(s.ctx, "frame limit reached", "frames", s.sim.FrameCount)
				s.exit()
				return
			}
			s.sim.Update()
			s.elapsed -= s.step
		}
		if s.elapsed > s.step {
			s.elapsed = 0
		}
	}
	s.sim.Render(s.renderer)
}

// TogglePause stops or resumes ticking. Rendering continues while paused.
func (s *SimulationSystem) TogglePause() {
	s.paused = !s.paused
	s.elapsed = 0
	s.logger.Info(s.ctx, "pause toggled", "paused", s.paused, "frame", s.sim.FrameCount)
}

// Paused reports whether ticking is stopped.
func (s *SimulationSystem) Paused() bool {
	return s.paused
}
