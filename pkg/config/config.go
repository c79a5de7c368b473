// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Renderer names accepted by the hosts.
const (
	RendererTerminal = "terminal"
	RendererEbiten   = "ebiten"
	RendererNull     = "null"
)

// Config is the top-level configuration file.
type Config struct {
	Seed       int64            `json:"seed"`
	Display    DisplayConfig    `json:"display"`
	Simulation SimulationConfig `json:"simulation"`
}

// DisplayConfig describes the host window or terminal.
type DisplayConfig struct {
	Title     string  `json:"title"`
	Renderer  string  `json:"renderer"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	TargetFPS int     `json:"targetFPS"`
	CellScale float64 `json:"cellScale"` // screen units per terminal column
	Debug     bool    `json:"debug"`
}

// SimulationConfig holds the tuning constants of the tick. Rates are in
// frames, speeds in screen units per frame.
type SimulationConfig struct {
	ObstacleRate         int     `json:"obstacleRate"`
	ObstacleSpeed        float64 `json:"obstacleSpeed"`
	ObstacleMinSize      float64 `json:"obstacleMinSize"`
	ObstacleMaxSize      float64 `json:"obstacleMaxSize"`
	ObstacleMinVertices  int     `json:"obstacleMinVertices"`
	ObstacleVertexSpread int     `json:"obstacleVertexSpread"`
	SpawnMargin          float64 `json:"spawnMargin"`
	MaxObstacles         int     `json:"maxObstacles"` // 0 means unbounded

	ShootRate    int     `json:"shootRate"`
	TargetRange  float64 `json:"targetRange"`
	BulletSpeed  float64 `json:"bulletSpeed"`
	BulletRadius float64 `json:"bulletRadius"`

	SteeringForce float64 `json:"steeringForce"`
	Damping       float64 `json:"damping"`
	NoiseStep     float64 `json:"noiseStep"`
	HeadingTurns  float64 `json:"headingTurns"`

	ParticleCount    int     `json:"particleCount"`
	ParticleLifespan int     `json:"particleLifespan"`
	ParticleDecay    int     `json:"particleDecay"`
	ParticleMinSpeed float64 `json:"particleMinSpeed"`
	ParticleMaxSpeed float64 `json:"particleMaxSpeed"`

	TrailLength int `json:"trailLength"`
}

// DefaultSimulationConfig returns the reference tuning.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		ObstacleRate:         100,
		ObstacleSpeed:        2,
		ObstacleMinSize:      10,
		ObstacleMaxSize:      15,
		ObstacleMinVertices:  6,
		ObstacleVertexSpread: 5,
		SpawnMargin:          10,
		MaxObstacles:         0,

		ShootRate:    30,
		TargetRange:  500,
		BulletSpeed:  5,
		BulletRadius: 2.5,

		SteeringForce: 0.2,
		Damping:       0.95,
		NoiseStep:     0.01,
		HeadingTurns:  2,

		ParticleCount:    10,
		ParticleLifespan: 255,
		ParticleDecay:    10,
		ParticleMinSpeed: 1,
		ParticleMaxSpeed: 2,

		TrailLength: 10,
	}
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Seed: 0,
		Display: DisplayConfig{
			Title:     "Wanderer",
			Renderer:  RendererTerminal,
			Width:     800,
			Height:    600,
			TargetFPS: 60,
			CellScale: 10,
		},
		Simulation: DefaultSimulationConfig(),
	}
}

// LoadConfig loads a configuration from a file. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *Config, path string) error {
	if config == nil {
		return fmt.Errorf("cannot save nil config: %w", ErrInvalidConfig)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.Display.Validate(); err != nil {
		return err
	}
	return c.Simulation.Validate()
}

// Validate checks display settings.
func (d *DisplayConfig) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return invalid("display size must be positive, got %dx%d", d.Width, d.Height)
	}
	if d.TargetFPS <= 0 {
		return invalid("targetFPS must be positive, got %d", d.TargetFPS)
	}
	if !finite(d.CellScale) || d.CellScale <= 0 {
		return invalid("cellScale must be positive, got %v", d.CellScale)
	}
	switch d.Renderer {
	case RendererTerminal, RendererEbiten, RendererNull:
	default:
		return invalid("unknown renderer %q", d.Renderer)
	}
	return nil
}

// Validate checks that rates, counts and ranges can drive a tick.
func (s *SimulationConfig) Validate() error {
	positiveInts := []struct {
		name  string
		value int
	}{
		{"obstacleRate", s.ObstacleRate},
		{"obstacleMinVertices", s.ObstacleMinVertices},
		{"obstacleVertexSpread", s.ObstacleVertexSpread},
		{"particleDecay", s.ParticleDecay},
		{"trailLength", s.TrailLength},
	}
	for _, f := range positiveInts {
		if f.value <= 0 {
			return invalid("%s must be positive, got %d", f.name, f.value)
		}
	}

	nonNegativeInts := []struct {
		name  string
		value int
	}{
		{"shootRate", s.ShootRate},
		{"maxObstacles", s.MaxObstacles},
		{"particleCount", s.ParticleCount},
		{"particleLifespan", s.ParticleLifespan},
	}
	for _, f := range nonNegativeInts {
		if f.value < 0 {
			return invalid("%s must not be negative, got %d", f.name, f.value)
		}
	}

	nonNegativeFloats := []struct {
		name  string
		value float64
	}{
		{"obstacleSpeed", s.ObstacleSpeed},
		{"spawnMargin", s.SpawnMargin},
		{"targetRange", s.TargetRange},
		{"bulletSpeed", s.BulletSpeed},
		{"bulletRadius", s.BulletRadius},
		{"steeringForce", s.SteeringForce},
		{"noiseStep", s.NoiseStep},
		{"headingTurns", s.HeadingTurns},
		{"particleMinSpeed", s.ParticleMinSpeed},
		{"particleMaxSpeed", s.ParticleMaxSpeed},
		{"obstacleMinSize", s.ObstacleMinSize},
		{"obstacleMaxSize", s.ObstacleMaxSize},
		{"damping", s.Damping},
	}
	for _, f := range nonNegativeFloats {
		if !finite(f.value) {
			return invalid("%s must be a finite number, got %v", f.name, f.value)
		}
		if f.value < 0 {
			return invalid("%s must not be negative, got %v", f.name, f.value)
		}
	}

	if s.ObstacleMinSize <= 0 || s.ObstacleMaxSize < s.ObstacleMinSize {
		return invalid("obstacle size range [%v, %v] is invalid", s.ObstacleMinSize, s.ObstacleMaxSize)
	}
	if s.ParticleMaxSpeed < s.ParticleMinSpeed {
		return invalid("particle speed range [%v, %v] is invalid", s.ParticleMinSpeed, s.ParticleMaxSpeed)
	}
	if s.Damping < 0 || s.Damping > 1 {
		return invalid("damping must be within [0, 1], got %v", s.Damping)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
