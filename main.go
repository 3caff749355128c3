package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/petrikm/driftfield/config"
	"github.com/petrikm/driftfield/effect"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run the simulation without graphics")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := effect.Options{
		Seed:      rngSeed,
		Headless:  *headless,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	}

	if *outputDir != "" {
		if err := os.MkdirAll(*outputDir, 0755); err != nil {
			slog.Error("failed to create output directory", "error", err)
			os.Exit(1)
		}
		if err := cfg.WriteYAML(filepath.Join(*outputDir, "config.yaml")); err != nil {
			slog.Warn("could not snapshot config", "error", err)
		}
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		e, err := effect.New(cfg, opts)
		if err != nil {
			slog.Error("failed to initialize effect", "error", err)
			os.Exit(1)
		}
		defer e.Unload()

		slog.Info("starting headless run", "seed", rngSeed, "max_ticks", *maxTicks)

		for {
			e.UpdateHeadless()

			if *maxTicks > 0 && e.TickCount() >= *maxTicks {
				slog.Info("max ticks reached", "tick", e.TickCount())
				return
			}
		}
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Driftfield")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	e, err := effect.New(cfg, opts)
	if err != nil {
		slog.Error("failed to initialize effect", "error", err)
		os.Exit(1)
	}
	defer e.Unload()

	for !rl.WindowShouldClose() {
		e.Update()
		e.Draw()

		if *maxTicks > 0 && e.TickCount() >= *maxTicks {
			break
		}
	}
}
