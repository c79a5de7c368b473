// cmd/wanderer/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/opd-ai/go-wanderer/pkg/config"
	"github.com/opd-ai/go-wanderer/pkg/logging"
)

// options holds the command line. Zero values mean "not given" except for
// the booleans.
type options struct {
	configPath   string
	writeDefault bool
	renderer     string
	width        int
	height       int
	seed         int64
	fps          int
	frames       uint64
	logPath      string
	debug        bool
	set          map[string]bool
}

func parseFlags(args []string) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("wanderer", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "wanderer.json", "Path to configuration file")
	fs.BoolVar(&opts.writeDefault, "default", false, "Write a default configuration file and exit")
	fs.StringVar(&opts.renderer, "renderer", "", "Renderer: terminal, ebiten or null")
	fs.IntVar(&opts.width, "width", 0, "Surface width (ebiten and null renderers)")
	fs.IntVar(&opts.height, "height", 0, "Surface height (ebiten and null renderers)")
	fs.Int64Var(&opts.seed, "seed", 0, "Random seed, 0 picks one")
	fs.IntVar(&opts.fps, "fps", 0, "Target ticks per second")
	fs.Uint64Var(&opts.frames, "frames", 0, "Stop after this many frames, 0 runs forever")
	fs.StringVar(&opts.logPath, "log", "", "Write logs to this file instead of stderr")
	fs.BoolVar(&opts.debug, "debug", false, "Show the debug overlay")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	return opts, nil
}

// loadConfig reads the file named by -config, falling back to defaults when
// it does not exist, then layers environment variables and flags on top.
func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if _, err := os.Stat(opts.configPath); err == nil {
		loaded, err := config.LoadConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if opts.set["config"] {
		return nil, logging.WrapError(err, "config file %s", opts.configPath)
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, logging.WrapError(err, "environment overrides")
	}

	d := &cfg.Display
	if opts.set["renderer"] {
		d.Renderer = opts.renderer
	}
	if opts.set["width"] {
		d.Width = opts.width
	}
	if opts.set["height"] {
		d.Height = opts.height
	}
	if opts.set["fps"] {
		d.TargetFPS = opts.fps
	}
	if opts.set["debug"] {
		d.Debug = opts.debug
	}
	if opts.set["seed"] {
		cfg.Seed = opts.seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLog picks the log destination. The terminal renderer owns the screen,
// so without -log its logs are discarded.
func openLog(opts *options, renderer string) (io.Writer, func(), error) {
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, logging.WrapError(err, "open log file")
		}
		return f, func() { f.Close() }, nil
	}
	if renderer == config.RendererTerminal {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	if opts.writeDefault {
		if err := config.SaveConfig(config.DefaultConfig(), opts.configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save default config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Default configuration saved to %s\n", opts.configPath)
		return
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	out, closeLog, err := openLog(opts, cfg.Display.Renderer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	logger := logging.NewLoggerWithWriter(out)
	ctx := logging.WithCorrelationID(context.Background(), "")
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "starting wanderer",
		"renderer", cfg.Display.Renderer,
		"seed", cfg.Seed,
		"fps", cfg.Display.TargetFPS,
		"frames", opts.frames,
	)

	if err := run(ctx, cfg, opts.frames, logger); err != nil {
		logger.Error(ctx, "wanderer stopped with error", err)
		closeLog()
		os.Exit(1)
	}
	logger.Info(ctx, "wanderer stopped")
}

func run(ctx context.Context, cfg *config.Config, frames uint64, logger *logging.Logger) error {
	switch cfg.Display.Renderer {
	case config.RendererTerminal:
		return runTerminal(ctx, cfg, frames, logger)
	case config.RendererEbiten:
		return runEbiten(ctx, cfg, frames, logger)
	case config.RendererNull:
		_, err := runNull(ctx, cfg, frames, logger)
		return err
	default:
		return fmt.Errorf("unknown renderer %q", cfg.Display.Renderer)
	}
}
