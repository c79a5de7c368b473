// pkg/config/env_config.go
package config

import (
	"os"
	"strconv"
)

// Environment variables read by ApplyEnvironmentOverrides.
const (
	EnvSeed          = "WANDERER_SEED"
	EnvRenderer      = "WANDERER_RENDERER"
	EnvWidth         = "WANDERER_WIDTH"
	EnvHeight        = "WANDERER_HEIGHT"
	EnvTargetFPS     = "WANDERER_FPS"
	EnvCellScale     = "WANDERER_CELL_SCALE"
	EnvDebug         = "WANDERER_DEBUG"
	EnvObstacleRate  = "WANDERER_OBSTACLE_RATE"
	EnvShootRate     = "WANDERER_SHOOT_RATE"
	EnvTargetRange   = "WANDERER_TARGET_RANGE"
	EnvMaxObstacles  = "WANDERER_MAX_OBSTACLES"
	EnvSteeringForce = "WANDERER_STEERING_FORCE"
)

// ApplyEnvironmentOverrides replaces fields of config with any WANDERER_*
// variables that are set, then validates the result. Unparseable values are
// ignored and the existing field is kept.
func ApplyEnvironmentOverrides(config *Config) error {
	if config == nil {
		return invalid("cannot apply overrides to nil config")
	}

	config.Seed = getEnvAsInt64OrDefault(EnvSeed, config.Seed)

	d := &config.Display
	d.Renderer = getEnvOrDefault(EnvRenderer, d.Renderer)
	d.Width = getEnvAsIntOrDefault(EnvWidth, d.Width)
	d.Height = getEnvAsIntOrDefault(EnvHeight, d.Height)
	d.TargetFPS = getEnvAsIntOrDefault(EnvTargetFPS, d.TargetFPS)
	d.CellScale = getEnvAsFloatOrDefault(EnvCellScale, d.CellScale)
	d.Debug = getEnvAsBoolOrDefault(EnvDebug, d.Debug)

	s := &config.Simulation
	s.ObstacleRate = getEnvAsIntOrDefault(EnvObstacleRate, s.ObstacleRate)
	s.ShootRate = getEnvAsIntOrDefault(EnvShootRate, s.ShootRate)
	s.TargetRange = getEnvAsFloatOrDefault(EnvTargetRange, s.TargetRange)
	s.MaxObstacles = getEnvAsIntOrDefault(EnvMaxObstacles, s.MaxObstacles)
	s.SteeringForce = getEnvAsFloatOrDefault(EnvSteeringForce, s.SteeringForce)

	return config.Validate()
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns environment variable as int or default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBoolOrDefault returns environment variable as bool or default
func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsFloatOrDefault returns environment variable as float64 or default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
