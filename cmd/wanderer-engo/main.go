// cmd/wanderer-engo/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/opd-ai/go-wanderer/pkg/config"
	"github.com/opd-ai/go-wanderer/pkg/engine"
	"github.com/opd-ai/go-wanderer/pkg/logging"
	engorender "github.com/opd-ai/go-wanderer/pkg/render/engo"
)

func main() {
	configPath := flag.String("config", "wanderer.json", "Path to configuration file")
	seed := flag.Int64("seed", 0, "Random seed, 0 picks one or uses the config file")
	frames := flag.Uint64("frames", 0, "Stop after this many frames, 0 runs until the window closes")
	flag.Parse()

	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), "")

	cfg := config.DefaultConfig()
	if _, err := os.Stat(*configPath); err == nil {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "failed to load config", err, "path", *configPath)
			os.Exit(1)
		}
		cfg = loaded
	} else {
		fmt.Printf("Config file %s not found, using defaults\n", *configPath)
	}
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		logger.Error(ctx, "invalid configuration", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	sim, err := engine.NewSimulation(cfg.Display.Width, cfg.Display.Height, &cfg.Simulation,
		engine.WithSeed(cfg.Seed),
		engine.WithLogger(logger),
		engine.WithContext(ctx),
	)
	if err != nil {
		logger.Error(ctx, "failed to create simulation", err)
		os.Exit(1)
	}

	logger.Info(ctx, "starting engo host", "seed", sim.Seed(), "frames", *frames)
	engorender.Run(engorender.NewSimulationScene(ctx, sim, cfg.Display, *frames, logger))
}
