// Package engine provides unit tests for the simulation tick.
package engine

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/opd-ai/go-wanderer/pkg/config"
	"github.com/opd-ai/go-wanderer/pkg/entity"
	"github.com/opd-ai/go-wanderer/pkg/event"
	"github.com/opd-ai/go-wanderer/pkg/logging"
	"github.com/opd-ai/go-wanderer/pkg/noise"
	"github.com/opd-ai/go-wanderer/pkg/physics"
	"github.com/opd-ai/go-wanderer/pkg/random"
)

// stationaryConfig pins the agent in place so tests control every position.
func stationaryConfig() *config.SimulationConfig {
	cfg := config.DefaultSimulationConfig()
	cfg.SteeringForce = 0
	return &cfg
}

func newTestSimulation(t *testing.T, width, height int, cfg *config.SimulationConfig, opts ...Option) *Simulation {
	t.Helper()
	opts = append([]Option{WithSeed(42), WithNoise(noise.Constant(0))}, opts...)
	sim, err := NewSimulation(width, height, cfg, opts...)
	if err != nil {
		t.Fatalf("NewSimulation() error = %v", err)
	}
	return sim
}

// eventLog collects the events of one type published on a bus.
type eventLog struct {
	events []event.Event
}

func subscribe(bus *event.Bus, typ event.Type) *eventLog {
	log := &eventLog{}
	bus.Subscribe(typ, func(e event.Event) {
		log.events = append(log.events, e)
	})
	return log
}

func TestNewSimulation_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 600},
		{"zero height", 800, 0},
		{"negative both", -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, err := NewSimulation(tt.width, tt.height, nil)
			if !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("NewSimulation(%d, %d) error = %v, want ErrInvalidDimensions", tt.width, tt.height, err)
			}
			if sim != nil {
				t.Error("expected nil simulation on error")
			}
		})
	}
}

func TestNewSimulation_InvalidConfig(t *testing.T) {
	cfg := config.DefaultSimulationConfig()
	cfg.ObstacleRate = 0

	_, err := NewSimulation(800, 600, &cfg)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestNewSimulation_InitialState(t *testing.T) {
	bus := event.NewEventBus()
	started := subscribe(bus, event.SimulationStarted)

	sim := newTestSimulation(t, 800, 600, nil, WithEventBus(bus))

	if sim.Agent.Position != (physics.Vector2D{X: 400, Y: 300}) {
		t.Errorf("agent position = %v, want centre (400, 300)", sim.Agent.Position)
	}
	if sim.Agent.Velocity != (physics.Vector2D{}) || sim.Agent.NoisePhase != 0 {
		t.Errorf("agent should start at rest with phase 0, got %+v", sim.Agent)
	}
	if sim.FrameCount != 0 || sim.LastShotFrame() != 0 {
		t.Errorf("timers = (%d, %d), want (0, 0)", sim.FrameCount, sim.LastShotFrame())
	}
	if c := sim.Counts(); c != (Counts{}) {
		t.Errorf("Counts() = %+v, want all zero", c)
	}
	if sim.Seed() != 42 {
		t.Errorf("Seed() = %d, want 42", sim.Seed())
	}
	if len(started.events) != 1 {
		t.Errorf("got %d simulation_started events, want 1", len(started.events))
	}
}

func TestNewSimulation_NilConfigUsesDefaults(t *testing.T) {
	sim := newTestSimulation(t, 100, 100, nil)
	if sim.Config != config.DefaultSimulationConfig() {
		t.Errorf("Config = %+v, want defaults", sim.Config)
	}
}

func TestNewSimulation_RandomSeedRecorded(t *testing.T) {
	sim, err := NewSimulation(100, 100, nil)
	if err != nil {
		t.Fatalf("NewSimulation() error = %v", err)
	}
	if sim.Seed() == 0 {
		t.Error("unseeded simulation should record the generated seed")
	}
}

func TestUpdate_SpawnCadence(t *testing.T) {
	cfg := stationaryConfig()
	cfg.TargetRange = 0
	sim := newTestSimulation(t, 800, 600, cfg)
	spawned := subscribe(sim.EventBus, event.ObstacleSpawned)

	for i := 0; i < 100; i++ {
		sim.Update()
	}
	if len(spawned.events) != 1 {
		t.Fatalf("frames 0..99 spawned %d obstacles, want 1", len(spawned.events))
	}
	if first := spawned.events[0].(*event.ObstacleEvent); first.Frame != 0 {
		t.Errorf("first spawn at frame %d, want 0", first.Frame)
	}

	sim.Update()
	if len(spawned.events) != 2 {
		t.Fatalf("frame 100 should spawn the second obstacle, have %d", len(spawned.events))
	}
	if second := spawned.events[1].(*event.ObstacleEvent); second.Frame != 100 {
		t.Errorf("second spawn at frame %d, want 100", second.Frame)
	}
}

func TestUpdate_SpawnPositionsOutsideEdges(t *testing.T) {
	cfg := stationaryConfig()
	cfg.ObstacleRate = 1
	cfg.TargetRange = 0
	sim := newTestSimulation(t, 800, 600, cfg)
	spawned := subscribe(sim.EventBus, event.ObstacleSpawned)

	for i := 0; i < 200; i++ {
		sim.Update()
	}

	for _, e := range spawned.events {
		o := e.(*event.ObstacleEvent)
		p := o.Position
		onEdge := (p.Y == -10 && p.X >= 0 && p.X < 800) ||
			(p.X == 810 && p.Y >= 0 && p.Y < 600) ||
			(p.Y == 610 && p.X >= 0 && p.X < 800) ||
			(p.X == -10 && p.Y >= 0 && p.Y < 600)
		if !onEdge {
			t.Errorf("obstacle %d spawned at %v, not 10 units outside an edge", o.ObstacleID, p)
		}
		if o.Size < 10 || o.Size >= 15 {
			t.Errorf("obstacle %d size %v outside [10, 15)", o.ObstacleID, o.Size)
		}
	}

	for _, o := range sim.Obstacles {
		if o.VertexCount < 6 || o.VertexCount > 10 {
			t.Errorf("obstacle %d has %d vertices, want 6..10", o.ID, o.VertexCount)
		}
	}
}

func TestUpdate_MaxObstaclesCap(t *testing.T) {
	cfg := stationaryConfig()
	cfg.ObstacleRate = 1
	cfg.TargetRange = 0
	cfg.MaxObstacles = 2
	sim := newTestSimulation(t, 800, 600, cfg)

	for i := 0; i < 10; i++ {
		sim.Update()
	}
	if len(sim.Obstacles) != 2 {
		t.Errorf("len(Obstacles) = %d, want cap of 2", len(sim.Obstacles))
	}
}

func TestUpdate_DebugRecordsFollowLogLevel(t *testing.T) {
	tests := []struct {
		level       string
		wantRecords bool
	}{
		{"DEBUG", true},
		{"INFO", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Setenv(logging.LevelEnvVar, tt.level)
			var buf bytes.Buffer
			sim := newTestSimulation(t, 800, 600, stationaryConfig(), WithLogger(logging.NewLoggerWithWriter(&buf)))

			sim.Obstacles = []entity.Obstacle{obstacleAt(90, 200, 200, 12)}
			sim.Bullets = []entity.Bullet{bulletAt(91, 200, 200)}
			sim.Update()

			output := buf.String()
			for _, msg := range []string{"obstacle spawned", "obstacle destroyed"} {
				if strings.Contains(output, msg) != tt.wantRecords {
					t.Errorf("%q logged = %v at %s, want %v", msg, !tt.wantRecords, tt.level, tt.wantRecords)
				}
			}
			if !strings.Contains(output, "simulation created") {
				t.Errorf("info record missing at %s: %s", tt.level, output)
			}
		})
	}
}

func TestUpdate_FireRateGate(t *testing.T) {
	cfg := stationaryConfig()
	cfg.MaxObstacles = 1
	sim := newTestSimulation(t, 100, 100, cfg)
	fired := subscribe(sim.EventBus, event.BulletFired)

	// 490 units above the agent; it drifts closer but bullets leave the
	// screen long before reaching it.
	sim.Obstacles = append(sim.Obstacles, entity.Obstacle{
		ID:          sim.ids.Next(),
		Position:    physics.Vector2D{X: 50, Y: -440},
		Size:        15,
		VertexCount: 6,
	})

	for i := 0; i < 200; i++ {
		sim.Update()
	}

	want := []uint64{31, 62, 93, 124, 155, 186}
	if len(fired.events) != len(want) {
		t.Fatalf("fired %d bullets in 200 frames, want %d", len(fired.events), len(want))
	}
	for i, e := range fired.events {
		shot := e.(*event.ShotEvent)
		if shot.Frame != want[i] {
			t.Errorf("shot %d at frame %d, want %d", i, shot.Frame, want[i])
		}
	}
	if sim.LastShotFrame() != 186 {
		t.Errorf("LastShotFrame() = %d, want 186", sim.LastShotFrame())
	}
	if len(sim.Obstacles) != 1 {
		t.Errorf("target should survive, have %d obstacles", len(sim.Obstacles))
	}
}

func TestUpdate_ParticleDecay(t *testing.T) {
	cfg := stationaryConfig()
	cfg.TargetRange = 0
	sim := newTestSimulation(t, 800, 600, cfg)
	sim.Particles = append(sim.Particles, entity.NewParticle(physics.Vector2D{X: 100, Y: 100}, physics.Vector2D{}, 255))

	for i := 1; i <= 25; i++ {
		sim.Update()
		if len(sim.Particles) != 1 {
			t.Fatalf("particle removed after %d frames, want it to survive 25", i)
		}
	}
	if sim.Particles[0].Lifespan != 5 {
		t.Errorf("lifespan after 25 frames = %d, want 5", sim.Particles[0].Lifespan)
	}

	sim.Update()
	if len(sim.Particles) != 0 {
		t.Errorf("particle should be removed on frame 26, lifespan %d", sim.Particles[0].Lifespan)
	}
}

func TestUpdate_TrailBound(t *testing.T) {
	cfg := config.DefaultSimulationConfig()
	cfg.TargetRange = 0
	// Constant noise gives a fixed heading, so the agent moves every frame.
	sim := newTestSimulation(t, 800, 600, &cfg)

	positions := make([]physics.Vector2D, 16)
	for frame := 1; frame <= 15; frame++ {
		sim.Update()
		positions[frame] = sim.Agent.Position
	}

	samples := sim.Trail.Samples()
	if len(samples) != 10 {
		t.Fatalf("trail holds %d samples, want 10", len(samples))
	}
	oldest := entity.TrailSample{X: positions[6].X, Y: positions[6].Y}
	if samples[0] != oldest {
		t.Errorf("oldest sample = %v, want position after frame 6 %v", samples[0], oldest)
	}
	newest := entity.TrailSample{X: positions[15].X, Y: positions[15].Y}
	if samples[9] != newest {
		t.Errorf("newest sample = %v, want %v", samples[9], newest)
	}
	if positions[6] == positions[7] {
		t.Error("agent did not move; trail order is untested")
	}
}

func TestUpdate_AgentWraps(t *testing.T) {
	tests := []struct {
		name     string
		start    physics.Vector2D
		expected physics.Vector2D
	}{
		{"past_right", physics.Vector2D{X: 801, Y: 300}, physics.Vector2D{X: 0, Y: 300}},
		{"past_left", physics.Vector2D{X: -1, Y: 300}, physics.Vector2D{X: 800, Y: 300}},
		{"past_bottom", physics.Vector2D{X: 400, Y: 601}, physics.Vector2D{X: 400, Y: 0}},
		{"past_top", physics.Vector2D{X: 400, Y: -1}, physics.Vector2D{X: 400, Y: 600}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := stationaryConfig()
			cfg.TargetRange = 0
			sim := newTestSimulation(t, 800, 600, cfg)
			sim.Agent.Position = tt.start

			sim.Update()

			if sim.Agent.Position != tt.expected {
				t.Errorf("agent at %v after wrap, want %v", sim.Agent.Position, tt.expected)
			}
			// The trail records the position before wrapping.
			last := sim.Trail.Samples()[sim.Trail.Len()-1]
			if last != (entity.TrailSample{X: tt.start.X, Y: tt.start.Y}) {
				t.Errorf("trail sample = %v, want pre-wrap %v", last, tt.start)
			}
		})
	}
}

func TestUpdate_BulletPruning(t *testing.T) {
	cfg := stationaryConfig()
	cfg.TargetRange = 0
	cfg.MaxObstacles = 1
	sim := newTestSimulation(t, 100, 100, cfg)
	// A distant obstacle fills the cap so no spawn lands near the bullets.
	sim.Obstacles = []entity.Obstacle{{ID: 99, Position: physics.Vector2D{X: -900, Y: -900}, Size: 12, VertexCount: 6}}

	sim.Bullets = []entity.Bullet{
		{BaseEntity: entity.BaseEntity{ID: 1, Position: physics.Vector2D{X: 5, Y: 50}, Velocity: physics.Vector2D{X: -5}}},
		{BaseEntity: entity.BaseEntity{ID: 2, Position: physics.Vector2D{X: 50, Y: 50}, Velocity: physics.Vector2D{X: 1}}},
		{BaseEntity: entity.BaseEntity{ID: 3, Position: physics.Vector2D{X: 50, Y: 97}, Velocity: physics.Vector2D{Y: 5}}},
	}

	sim.Update()

	if len(sim.Bullets) != 1 || sim.Bullets[0].ID != 2 {
		t.Fatalf("bullets after prune = %+v, want only ID 2", sim.Bullets)
	}
	if sim.Bullets[0].Position != (physics.Vector2D{X: 51, Y: 50}) {
		t.Errorf("surviving bullet at %v, want (51, 50)", sim.Bullets[0].Position)
	}
}

func TestUpdate_ObstaclesNeverPruned(t *testing.T) {
	cfg := stationaryConfig()
	cfg.TargetRange = 0
	cfg.MaxObstacles = 1
	sim := newTestSimulation(t, 100, 100, cfg)
	start := physics.Vector2D{X: -5000, Y: -5000}
	sim.Obstacles = []entity.Obstacle{{ID: 1, Position: start, Size: 12, VertexCount: 6}}

	for i := 0; i < 10; i++ {
		sim.Update()
	}
	if len(sim.Obstacles) != 1 {
		t.Fatalf("far obstacle was pruned")
	}
	if sim.Obstacles[0].Position.Distance(sim.Agent.Position) >= start.Distance(sim.Agent.Position) {
		t.Error("obstacle did not approach the agent")
	}
}

func TestUpdate_Deterministic(t *testing.T) {
	run := func() *Snapshot {
		sim, err := NewSimulation(640, 480, nil, WithSeed(1234))
		if err != nil {
			t.Fatalf("NewSimulation() error = %v", err)
		}
		for i := 0; i < 600; i++ {
			sim.Update()
		}
		return sim.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with the same seed diverged")
	}
	if a.Frame != 600 {
		t.Errorf("Frame = %d, want 600", a.Frame)
	}
}

func TestUpdate_InjectedRandomSource(t *testing.T) {
	cfg := stationaryConfig()
	cfg.TargetRange = 0
	sim := newTestSimulation(t, 800, 600, cfg, WithRandom(random.New(7)))
	sim.Update()
	if len(sim.Obstacles) != 1 {
		t.Errorf("expected one obstacle from injected source, got %d", len(sim.Obstacles))
	}
}

func TestUpdate_Invariants(t *testing.T) {
	sim, err := NewSimulation(400, 300, nil, WithSeed(99))
	if err != nil {
		t.Fatalf("NewSimulation() error = %v", err)
	}

	for i := 0; i < 3000; i++ {
		sim.Update()

		if sim.Trail.Len() > 10 {
			t.Fatalf("frame %d: trail length %d", sim.FrameCount, sim.Trail.Len())
		}
		for _, p := range sim.Particles {
			if p.Lifespan <= 0 || p.Lifespan > 255 {
				t.Fatalf("frame %d: particle lifespan %d", sim.FrameCount, p.Lifespan)
			}
		}
		for _, o := range sim.Obstacles {
			if o.Size < 10 || o.Size > 15 {
				t.Fatalf("frame %d: obstacle size %v", sim.FrameCount, o.Size)
			}
		}
		for _, b := range sim.Bullets {
			if !sim.Bounds.ContainsStrict(b.Position) {
				t.Fatalf("frame %d: bullet %d outside screen at %v", sim.FrameCount, b.ID, b.Position)
			}
		}
		p := sim.Agent.Position
		if p.X < 0 || p.X > 400 || p.Y < 0 || p.Y > 300 {
			t.Fatalf("frame %d: agent outside screen at %v", sim.FrameCount, p)
		}
	}
}

func TestResize(t *testing.T) {
	sim := newTestSimulation(t, 100, 100, stationaryConfig())

	if err := sim.Resize(0, 10); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Resize(0, 10) error = %v, want ErrInvalidDimensions", err)
	}
	if err := sim.Resize(320, 200); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if sim.Bounds != (physics.Bounds{Width: 320, Height: 200}) {
		t.Errorf("Bounds = %+v, want 320x200", sim.Bounds)
	}
}
