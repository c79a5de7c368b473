// pkg/engine/simulation.go
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/opd-ai/go-wanderer/pkg/config"
	"github.com/opd-ai/go-wanderer/pkg/entity"
	"github.com/opd-ai/go-wanderer/pkg/event"
	"github.com/opd-ai/go-wanderer/pkg/logging"
	"github.com/opd-ai/go-wanderer/pkg/noise"
	"github.com/opd-ai/go-wanderer/pkg/physics"
	"github.com/opd-ai/go-wanderer/pkg/random"
)

// ErrInvalidDimensions is returned when the drawing surface has no area.
var ErrInvalidDimensions = errors.New("invalid simulation dimensions")

// indexPadding extends the collision index past the screen so bullets that
// stepped just outside during motion are still indexed.
const indexPadding = 50

// indexCapacity is the number of bullets a quadtree node holds before it
// subdivides.
const indexCapacity = 8

// Simulation holds the whole world: the agent, the four entity pools and the
// frame timers. It is owned by one goroutine; Update and Render must not be
// called concurrently.
type Simulation struct {
	Config     config.SimulationConfig
	Bounds     physics.Bounds
	FrameCount uint64

	Agent     entity.Agent
	Blaster   *entity.Blaster
	Obstacles []entity.Obstacle
	Bullets   []entity.Bullet
	Particles []entity.Particle
	Trail     *entity.Trail

	EventBus *event.Bus

	seed   int64
	rng    random.Source
	noise  noise.Field
	ids    entity.IDSource
	index  *physics.QuadTree[int]
	logger *logging.Logger
	ctx    context.Context
}

// Option customises a Simulation at construction time.
type Option func(*Simulation)

// WithSeed makes randomness and steering noise reproducible.
func WithSeed(seed int64) Option {
	return func(s *Simulation) {
		s.seed = seed
	}
}

// WithRandom replaces the random source used for spawning and explosions.
func WithRandom(src random.Source) Option {
	return func(s *Simulation) {
		s.rng = src
	}
}

// WithNoise replaces the field that steers the agent.
func WithNoise(field noise.Field) Option {
	return func(s *Simulation) {
		s.noise = field
	}
}

// WithEventBus publishes simulation events on bus instead of a private one.
func WithEventBus(bus *event.Bus) Option {
	return func(s *Simulation) {
		s.EventBus = bus
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Simulation) {
		s.logger = logger
	}
}

// WithContext sets the context carried into log records, typically one
// holding a correlation ID.
func WithContext(ctx context.Context) Option {
	return func(s *Simulation) {
		s.ctx = ctx
	}
}

// NewSimulation creates a simulation for a width by height surface with the
// agent at rest in the centre. A nil cfg selects the default tuning.
func NewSimulation(width, height int, cfg *config.SimulationConfig, opts ...Option) (*Simulation, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	tuning := config.DefaultSimulationConfig()
	if cfg != nil {
		tuning = *cfg
	}
	if err := tuning.Validate(); err != nil {
		return nil, logging.WrapError(err, "simulation config")
	}

	bounds := physics.Bounds{Width: float64(width), Height: float64(height)}
	s := &Simulation{
		Config: tuning,
		Bounds: bounds,
		Agent:  *entity.NewAgent(physics.Vector2D{X: bounds.Width / 2, Y: bounds.Height / 2}),
		Blaster: entity.NewBlaster(
			tuning.BulletSpeed,
			tuning.TargetRange,
			uint64(tuning.ShootRate),
		),
		Trail: entity.NewTrail(tuning.TrailLength),
	}

	for _, opt := range opts {
		opt(s)
	}
	s.applyDefaults()
	s.index = newCollisionIndex(bounds)

	s.EventBus.Publish(&event.BaseEvent{EventType: event.SimulationStarted, Source: s})
	s.logger.Info(s.ctx, "simulation created",
		"width", width,
		"height", height,
		"seed", s.seed,
		"max_obstacles", tuning.MaxObstacles,
	)

	return s, nil
}

func (s *Simulation) applyDefaults() {
	if s.rng == nil {
		prng := random.New(s.seed)
		s.seed = prng.Seed()
		s.rng = prng
	}
	if s.noise == nil {
		s.noise = noise.NewPerlin(s.seed)
	}
	if s.EventBus == nil {
		s.EventBus = event.NewEventBus()
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}
}

func newCollisionIndex(bounds physics.Bounds) *physics.QuadTree[int] {
	return physics.NewQuadTree[int](physics.Rect{
		Center: physics.Vector2D{X: bounds.Width / 2, Y: bounds.Height / 2},
		Width:  bounds.Width + 2*indexPadding,
		Height: bounds.Height + 2*indexPadding,
	}, indexCapacity)
}

// Update advances the world by one frame. The phases always run in the same
// order: spawn, move, collide, fire, prune, trail, wrap.
func (s *Simulation) Update() {
	s.maybeSpawnObstacle()
	s.integrateMotion()
	s.resolveCollisions()
	s.evaluateTargeting()
	s.pruneEntities()
	s.Trail.Push(s.Agent.Position)
	s.Agent.Position = s.Bounds.Wrap(s.Agent.Position)
	s.FrameCount++
}

// Resize changes the surface size. Entities keep their positions and are
// wrapped or pruned against the new bounds on the next Update.
func (s *Simulation) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	s.Bounds = physics.Bounds{Width: float64(width), Height: float64(height)}
	s.index = newCollisionIndex(s.Bounds)
	s.logger.Debug(s.ctx, "simulation resized", "width", width, "height", height)
	return nil
}

// Seed returns the seed that drives the default random source and noise
// field.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// LastShotFrame returns the frame of the most recent shot, or 0.
func (s *Simulation) LastShotFrame() uint64 {
	return s.Blaster.LastShot
}

// Render draws the current state without copying it.
func (s *Simulation) Render(r entity.Renderer) {
	s.view().Render(r)
}
