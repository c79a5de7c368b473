// cmd/wanderer/host.go
package main

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-wanderer/pkg/config"
	"github.com/opd-ai/go-wanderer/pkg/engine"
	"github.com/opd-ai/go-wanderer/pkg/health"
	"github.com/opd-ai/go-wanderer/pkg/logging"
	"github.com/opd-ai/go-wanderer/pkg/render"
	ebitenrender "github.com/opd-ai/go-wanderer/pkg/render/ebiten"
)

const (
	healthInterval = 5 * time.Second
	maxEntities    = 20000
	maxMemoryMB    = 512
)

func newSimulation(ctx context.Context, cfg *config.Config, width, height int, logger *logging.Logger) (*engine.Simulation, error) {
	sim, err := engine.NewSimulation(width, height, &cfg.Simulation,
		engine.WithSeed(cfg.Seed),
		engine.WithLogger(logger),
		engine.WithContext(ctx),
	)
	if err != nil {
		return nil, logging.WrapError(err, "create simulation")
	}
	return sim, nil
}

// newMonitor registers the host checks for sim. paused may be nil.
func newMonitor(sim *engine.Simulation, paused func() bool) *health.HealthChecker {
	hc := health.NewHealthChecker()
	hc.AddCheck(health.NewSimulationHealthCheck(func() uint64 { return sim.FrameCount }, paused))
	hc.AddCheck(health.NewEntityBudgetHealthCheck(maxEntities, func() int {
		c := sim.Counts()
		return c.Obstacles + c.Bullets + c.Particles
	}))
	hc.AddCheck(health.NewMemoryHealthCheck(maxMemoryMB, nil))
	return hc
}

// runNull ticks a headless simulation as fast as possible. With frames set
// to zero it runs until ctx is cancelled.
func runNull(ctx context.Context, cfg *config.Config, frames uint64, logger *logging.Logger) (*render.NullRenderer, error) {
	sim, err := newSimulation(ctx, cfg, cfg.Display.Width, cfg.Display.Height, logger)
	if err != nil {
		return nil, err
	}
	drawn := render.NewNullRenderer(logger)
	monitor := newMonitor(sim, nil)
	lastCheck := time.Now()

	for frames == 0 || sim.FrameCount < frames {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "null host interrupted", "frame", sim.FrameCount)
			return drawn, nil
		default:
		}

		sim.Update()
		sim.Render(drawn)

		if time.Since(lastCheck) >= healthInterval {
			monitor.Report(ctx, logger)
			lastCheck = time.Now()
		}
	}

	tally := drawn.LastFrame()
	logger.Info(ctx, "null host finished",
		"frames", sim.FrameCount,
		"obstacles", tally.Obstacles,
		"bullets", tally.Bullets,
		"particles", tally.Particles,
		"trail", tally.TrailSamples,
	)
	return drawn, nil
}

func runEbiten(ctx context.Context, cfg *config.Config, frames uint64, logger *logging.Logger) error {
	sim, err := newSimulation(ctx, cfg, cfg.Display.Width, cfg.Display.Height, logger)
	if err != nil {
		return err
	}
	game := ebitenrender.NewGame(ctx, sim, logger, frames)
	game.SetOverlay(cfg.Display.Debug)
	return ebitenrender.Run(game, cfg.Display.Title, cfg.Display.TargetFPS)
}

func runTerminal(ctx context.Context, cfg *config.Config, frames uint64, logger *logging.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "initialize terminal screen")
	}
	defer screen.Fini()

	host, err := newTerminalHost(ctx, screen, cfg, logger)
	if err != nil {
		return err
	}
	return host.run(ctx, frames)
}

// terminalHost drives a simulation sized to the terminal. Input and resize
// events arrive on a channel and are handled between ticks.
type terminalHost struct {
	screen  tcell.Screen
	backend *render.TerminalBackend
	painter *render.Painter
	sim     *engine.Simulation
	monitor *health.HealthChecker
	logger  *logging.Logger
	fps     int
	paused  bool
}

func newTerminalHost(ctx context.Context, screen tcell.Screen, cfg *config.Config, logger *logging.Logger) (*terminalHost, error) {
	screen.HideCursor()
	backend := render.NewTerminalBackend(screen, cfg.Display.CellScale)
	w, h := backend.WorldSize()
	sim, err := newSimulation(ctx, cfg, w, h, logger)
	if err != nil {
		return nil, err
	}

	host := &terminalHost{
		screen:  screen,
		backend: backend,
		painter: render.NewPainter(render.NewCanvas(backend, float64(w), float64(h))),
		sim:     sim,
		logger:  logger,
		fps:     cfg.Display.TargetFPS,
	}
	host.monitor = newMonitor(sim, func() bool { return host.paused })
	return host, nil
}

func (h *terminalHost) run(ctx context.Context, frames uint64) error {
	ticker := time.NewTicker(time.Second / time.Duration(h.fps))
	defer ticker.Stop()
	healthTicker := time.NewTicker(healthInterval)
	defer healthTicker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			h.logger.Info(ctx, "terminal host interrupted", "frame", h.sim.FrameCount)
			return nil

		case ev := <-events:
			if !h.handleEvent(ctx, ev) {
				h.logger.Info(ctx, "quit requested", "frame", h.sim.FrameCount)
				return nil
			}

		case <-healthTicker.C:
			h.monitor.Report(ctx, h.logger)

		case <-ticker.C:
			if !h.paused {
				h.sim.Update()
			}
			h.sim.Render(h.painter)
			if frames > 0 && h.sim.FrameCount >= frames {
				h.logger.Info(ctx, "frame limit reached", "frames", h.sim.FrameCount)
				return nil
			}
		}
	}
}

// handleEvent reacts to one input event and reports whether the host
// should keep running.
func (h *terminalHost) handleEvent(ctx context.Context, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case 'p':
				h.paused = !h.paused
				h.logger.Info(ctx, "pause toggled", "paused", h.paused, "frame", h.sim.FrameCount)
			}
		}

	case *tcell.EventResize:
		h.resize(ctx)
	}
	return true
}

func (h *terminalHost) resize(ctx context.Context) {
	h.backend.Resize()
	w, height := h.backend.WorldSize()
	if err := h.sim.Resize(w, height); err != nil {
		h.logger.Warn(ctx, "ignoring resize", "error", err)
		return
	}
	h.painter.Canvas().Resize(float64(w), float64(height))
	h.screen.Sync()
}
