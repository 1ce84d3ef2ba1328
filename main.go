package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/oasdflkjo/raylib-toy/config"
	"github.com/oasdflkjo/raylib-toy/game"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (embedded defaults if empty)")
	headless := flag.Bool("headless", false, "run without a window")
	maxFrames := flag.Int64("max-frames", 0, "stop after this many frames (0 = unlimited, headless only)")
	seed := flag.Int64("seed", 0, "particle spawn seed (0 = time-based)")
	workers := flag.Int("workers", 0, "worker pool size override (0 = config value)")
	outputDir := flag.String("output-dir", "", "directory for CSV telemetry output")
	logStats := flag.Bool("log-stats", false, "log frame statistics periodically")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := config.Init(*configPath); err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:      *seed,
		Workers:   *workers,
		OutputDir: *outputDir,
		LogStats:  *logStats,
		Headless:  *headless,
	}

	if *headless {
		runHeadless(cfg, opts, *maxFrames)
		return
	}
	runWindowed(cfg, opts)
}

// runHeadless drives the pipeline without a window, for benchmarking.
func runHeadless(cfg *config.Config, opts game.Options, maxFrames int64) {
	g, err := game.New(cfg, opts)
	if err != nil {
		slog.Error("initializing game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	slog.Info("headless run started", "max_frames", maxFrames)
	for maxFrames == 0 || g.Frame() < maxFrames {
		g.UpdateHeadless()
	}
	slog.Info("headless run finished", "frames", g.Frame())
}

// runWindowed drives the interactive window loop.
func runWindowed(cfg *config.Config, opts game.Options) {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Particle Swarm")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.New(cfg, opts)
	if err != nil {
		slog.Error("initializing game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()
	g.InitView()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}
