package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config == nil {
		t.Fatal("DefaultConfig returned nil")
	}
	if err := config.Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate, got %v", err)
	}

	if config.Display.Width != 800 || config.Display.Height != 600 {
		t.Errorf("Expected 800x600 display, got %dx%d", config.Display.Width, config.Display.Height)
	}
	if config.Display.Renderer != RendererTerminal {
		t.Errorf("Expected renderer %q, got %q", RendererTerminal, config.Display.Renderer)
	}
	if config.Display.TargetFPS != 60 {
		t.Errorf("Expected TargetFPS 60, got %d", config.Display.TargetFPS)
	}
}

func TestDefaultSimulationConfig(t *testing.T) {
	s := DefaultSimulationConfig()

	tests := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"ObstacleRate", float64(s.ObstacleRate), 100},
		{"ShootRate", float64(s.ShootRate), 30},
		{"TargetRange", s.TargetRange, 500},
		{"BulletSpeed", s.BulletSpeed, 5},
		{"BulletRadius", s.BulletRadius, 2.5},
		{"ObstacleSpeed", s.ObstacleSpeed, 2},
		{"ObstacleMinSize", s.ObstacleMinSize, 10},
		{"ObstacleMaxSize", s.ObstacleMaxSize, 15},
		{"ObstacleMinVertices", float64(s.ObstacleMinVertices), 6},
		{"ObstacleVertexSpread", float64(s.ObstacleVertexSpread), 5},
		{"SpawnMargin", s.SpawnMargin, 10},
		{"SteeringForce", s.SteeringForce, 0.2},
		{"Damping", s.Damping, 0.95},
		{"NoiseStep", s.NoiseStep, 0.01},
		{"HeadingTurns", s.HeadingTurns, 2},
		{"ParticleCount", float64(s.ParticleCount), 10},
		{"ParticleLifespan", float64(s.ParticleLifespan), 255},
		{"ParticleDecay", float64(s.ParticleDecay), 10},
		{"ParticleMinSpeed", s.ParticleMinSpeed, 1},
		{"ParticleMaxSpeed", s.ParticleMaxSpeed, 2},
		{"TrailLength", float64(s.TrailLength), 10},
		{"MaxObstacles", float64(s.MaxObstacles), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("Expected %s %v, got %v", tt.name, tt.expected, tt.got)
			}
		})
	}
}

func TestLoadConfig_Success(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.json")

	data := `{
		"seed": 42,
		"display": {"width": 320, "height": 200, "renderer": "null"},
		"simulation": {"obstacleRate": 50, "maxObstacles": 25}
	}`
	if err := os.WriteFile(configPath, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if config.Seed != 42 {
		t.Errorf("Expected Seed 42, got %d", config.Seed)
	}
	if config.Display.Width != 320 || config.Display.Height != 200 {
		t.Errorf("Expected 320x200, got %dx%d", config.Display.Width, config.Display.Height)
	}
	if config.Display.Renderer != RendererNull {
		t.Errorf("Expected renderer null, got %q", config.Display.Renderer)
	}
	if config.Simulation.ObstacleRate != 50 {
		t.Errorf("Expected ObstacleRate 50, got %d", config.Simulation.ObstacleRate)
	}
	if config.Simulation.MaxObstacles != 25 {
		t.Errorf("Expected MaxObstacles 25, got %d", config.Simulation.MaxObstacles)
	}

	// Fields absent from the file keep their defaults.
	if config.Simulation.ShootRate != 30 {
		t.Errorf("Expected default ShootRate 30, got %d", config.Simulation.ShootRate)
	}
	if config.Display.TargetFPS != 60 {
		t.Errorf("Expected default TargetFPS 60, got %d", config.Display.TargetFPS)
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	config, err := LoadConfig("/path/that/does/not/exist/config.json")

	if err == nil {
		t.Error("Expected error when loading non-existent file, got nil")
	}
	if config != nil {
		t.Error("Expected nil config when file not found, got non-nil")
	}
	if err != nil && !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("Unexpected error message: %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected error to wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid_config.json")

	if err := os.WriteFile(configPath, []byte(`{"seed": 1, invalid json}`), 0o644); err != nil {
		t.Fatalf("Failed to write invalid JSON file: %v", err)
	}

	config, err := LoadConfig(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid JSON, got nil")
	}
	if config != nil {
		t.Error("Expected nil config when JSON is invalid, got non-nil")
	}
	if err != nil && !strings.Contains(err.Error(), "failed to parse config file") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	original := DefaultConfig()
	original.Seed = 7
	original.Display.Renderer = RendererEbiten
	original.Simulation.TargetRange = 250

	configPath := filepath.Join(t.TempDir(), "save_test_config.json")
	if err := SaveConfig(original, configPath); err != nil {
		t.Fatalf("SaveConfig failed: %v", err)
	}

	loaded, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load saved config: %v", err)
	}
	if *loaded != *original {
		t.Errorf("Loaded config differs:\n got %+v\nwant %+v", *loaded, *original)
	}
}

func TestSaveConfig_InvalidPath(t *testing.T) {
	err := SaveConfig(DefaultConfig(), filepath.Join(t.TempDir(), "missing", "dir", "config.json"))
	if err == nil {
		t.Fatal("Expected error when saving to invalid path, got nil")
	}
	if !strings.Contains(err.Error(), "failed to write config file") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestSaveConfig_NilConfig(t *testing.T) {
	err := SaveConfig(nil, filepath.Join(t.TempDir(), "nil_config.json"))
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Expected ErrInvalidConfig, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"zero width", func(c *Config) { c.Display.Width = 0 }, true},
		{"negative height", func(c *Config) { c.Display.Height = -5 }, true},
		{"zero fps", func(c *Config) { c.Display.TargetFPS = 0 }, true},
		{"zero cell scale", func(c *Config) { c.Display.CellScale = 0 }, true},
		{"unknown renderer", func(c *Config) { c.Display.Renderer = "opengl" }, true},
		{"zero obstacle rate", func(c *Config) { c.Simulation.ObstacleRate = 0 }, true},
		{"zero shoot rate allowed", func(c *Config) { c.Simulation.ShootRate = 0 }, false},
		{"negative shoot rate", func(c *Config) { c.Simulation.ShootRate = -1 }, true},
		{"negative max obstacles", func(c *Config) { c.Simulation.MaxObstacles = -1 }, true},
		{"zero trail", func(c *Config) { c.Simulation.TrailLength = 0 }, true},
		{"zero particle decay", func(c *Config) { c.Simulation.ParticleDecay = 0 }, true},
		{"inverted size range", func(c *Config) { c.Simulation.ObstacleMaxSize = 5 }, true},
		{"inverted particle speeds", func(c *Config) { c.Simulation.ParticleMaxSpeed = 0.5 }, true},
		{"damping above one", func(c *Config) { c.Simulation.Damping = 1.5 }, true},
		{"negative range", func(c *Config) { c.Simulation.TargetRange = -1 }, true},
		{"stationary agent allowed", func(c *Config) { c.Simulation.SteeringForce = 0 }, false},
		{"NaN steering force", func(c *Config) { c.Simulation.SteeringForce = math.NaN() }, true},
		{"NaN target range", func(c *Config) { c.Simulation.TargetRange = math.NaN() }, true},
		{"infinite bullet speed", func(c *Config) { c.Simulation.BulletSpeed = math.Inf(1) }, true},
		{"NaN damping", func(c *Config) { c.Simulation.Damping = math.NaN() }, true},
		{"NaN obstacle size", func(c *Config) { c.Simulation.ObstacleMaxSize = math.NaN() }, true},
		{"NaN cell scale", func(c *Config) { c.Display.CellScale = math.NaN() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}
