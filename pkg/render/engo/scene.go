// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-wanderer/pkg/config"
	"github.com/opd-ai/go-wanderer/pkg/engine"
	"github.com/opd-ai/go-wanderer/pkg/event"
	"github.com/opd-ai/go-wanderer/pkg/logging"
	"github.com/opd-ai/go-wanderer/pkg/render"
)

// SimulationScene hosts a simulation in an Engo window
type SimulationScene struct {
	world *ecs.World

	sim     *engine.Simulation
	display config.DisplayConfig
	frames  uint64
	logger  *logging.Logger
	ctx     context.Context

	backend *EngoRenderer
	system  *SimulationSystem
	input   *InputSystem

	subscriptions []*event.Subscription
	destroyed     int
}

// NewSimulationScene creates a scene for sim. maxFrames is passed on to the
// simulation system.
func NewSimulationScene(ctx context.Context, sim *engine.Simulation, display config.DisplayConfig, maxFrames uint64, logger *logging.Logger) *SimulationScene {
	if logger == nil {
		logger = logging.Discard()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return &SimulationScene{
		world:   &ecs.World{},
		sim:     sim,
		display: display,
		frames:  maxFrames,
		logger:  logger,
		ctx:     ctx,
	}
}

// Type returns the scene type (required by Engo)
func (scene *SimulationScene) Type() string {
	return "SimulationScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *SimulationScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *SimulationScene) Setup(u engo.Updater) {
	if world, ok := u.(*ecs.World); ok {
		scene.world = world
	}
	common.SetBackground(color.White)

	renderSystem := &common.RenderSystem{}
	scene.world.AddSystem(renderSystem)

	scene.install(renderSystem)
	scene.world.AddSystem(scene.system)
	scene.world.AddSystem(scene.input)

	SetupInputBindings()
	scene.subscribeToEvents()

	scene.logger.Info(scene.ctx, "engo scene ready",
		"width", scene.sim.Bounds.Width,
		"height", scene.sim.Bounds.Height,
		"fps", scene.display.TargetFPS,
	)
}

// install wires the drawing and simulation systems onto renderSystem.
func (scene *SimulationScene) install(renderSystem shapeAdder) {
	scene.backend = NewEngoRenderer(renderSystem)
	painter := render.NewPainter(render.NewCanvas(scene.backend, scene.sim.Bounds.Width, scene.sim.Bounds.Height))
	scene.system = NewSimulationSystem(scene.ctx, scene.sim, painter, scene.display.TargetFPS, scene.frames, scene.logger)
	scene.input = NewInputSystem(scene.system)
}

// subscribeToEvents sets up event handlers
func (scene *SimulationScene) subscribeToEvents() {
	sub := scene.sim.EventBus.Subscribe(event.ObstacleDestroyed, func(e event.Event) {
		scene.destroyed++
		if hit, ok := e.(*event.CollisionEvent); ok {
			scene.logger.Debug(scene.ctx, "obstacle destroyed",
				"obstacle_id", hit.ObstacleID,
				"total", scene.destroyed,
			)
		}
	})
	scene.subscriptions = append(scene.subscriptions, sub)
}

// Destroyed returns how many obstacles were shot down while the scene ran.
func (scene *SimulationScene) Destroyed() int {
	return scene.destroyed
}

// Exit is called when the scene is exiting (required by Engo)
func (scene *SimulationScene) Exit() {
	for _, sub := range scene.subscriptions {
		sub.Cancel()
	}
	scene.subscriptions = nil
	scene.logger.Info(scene.ctx, "engo scene closed",
		"frames", scene.sim.FrameCount,
		"destroyed", scene.destroyed,
	)
}

// Run opens the window and blocks until the scene exits.
func Run(scene *SimulationScene) {
	engo.Run(engo.RunOptions{
		Title:        scene.display.Title,
		Width:        int(scene.sim.Bounds.Width),
		Height:       int(scene.sim.Bounds.Height),
		FPSLimit:     scene.display.TargetFPS,
		NotResizable: true,
	}, scene)
}
