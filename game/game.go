// Package game wires the simulation pipeline to the window, input, and
// telemetry, and owns the per-frame driver loop.
package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/oasdflkjo/raylib-toy/config"
	"github.com/oasdflkjo/raylib-toy/raster"
	"github.com/oasdflkjo/raylib-toy/renderer"
	"github.com/oasdflkjo/raylib-toy/sim"
	"github.com/oasdflkjo/raylib-toy/telemetry"
	"github.com/oasdflkjo/raylib-toy/ui"
)

// Options are the command line overrides applied on top of the config file.
type Options struct {
	Seed      int64
	Workers   int // 0 = config value
	OutputDir string
	LogStats  bool
	Headless  bool
}

// Game owns every long-lived piece of the application and drives one frame
// at a time. All methods run on the main goroutine; workers only ever see
// the chunks the pipeline hands them.
type Game struct {
	cfg  *config.Config
	opts Options

	pool *sim.Pool
	pipe *sim.Pipeline
	comp *raster.Compositor

	view  *renderer.View
	panel *ui.TuningPanel

	perf   *telemetry.PerfCollector
	stats  *telemetry.StatsCollector
	output *telemetry.OutputManager

	params sim.Params
	tuning ui.Tuning
	pixels []color.RGBA
	rng    *rand.Rand
	spawn  string

	targetX   float32
	targetY   float32
	paused    bool
	frame     int64
	frameOpen bool // a perf frame started in step() awaits EndFrame in Draw
}

// New builds the full pipeline from the loaded config. The window does not
// need to exist yet; GPU resources are created later by InitView.
func New(cfg *config.Config, opts Options) (*Game, error) {
	rng := rand.New(rand.NewSource(opts.Seed))

	store, err := sim.NewStore(cfg.Particles.Count, cfg.Derived.Width32, cfg.Derived.Height32, cfg.Particles.Spawn, rng)
	if err != nil {
		return nil, err
	}

	workers := cfg.Derived.WorkerCount
	if opts.Workers > 0 {
		workers = opts.Workers
	}
	pool := sim.NewPool(workers)

	mode, err := raster.ParseMode(cfg.Render.Mode)
	if err != nil {
		pool.Stop()
		return nil, err
	}
	comp, err := raster.NewCompositor(
		cfg.Screen.Width, cfg.Screen.Height,
		mode, cfg.Derived.MaxDensity,
		rgba(cfg.Render.Background), rgba(cfg.Render.Particle),
	)
	if err != nil {
		pool.Stop()
		return nil, err
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	pipe, err := sim.NewPipeline(store, pool, cfg.Screen.Width, cfg.Screen.Height, comp, perf)
	if err != nil {
		pool.Stop()
		return nil, err
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		pool.Stop()
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		pool.Stop()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:    cfg,
		opts:   opts,
		pool:   pool,
		pipe:   pipe,
		comp:   comp,
		view:   renderer.NewView(),
		panel:  ui.NewTuningPanel(20, 20, 240),
		perf:   perf,
		stats:  telemetry.NewStatsCollector(cfg.Telemetry.StatsWindow),
		output: output,
		params: sim.Params{
			Attraction:     cfg.Derived.Attraction,
			Friction:       cfg.Derived.Friction,
			InverseFalloff: cfg.Physics.InverseFalloff,
			Wrap:           cfg.Physics.Wrap,
			Width:          cfg.Derived.Width32,
			Height:         cfg.Derived.Height32,
		},
		tuning: ui.Tuning{
			Attraction: cfg.Derived.Attraction,
			Friction:   cfg.Derived.Friction,
			MaxDensity: cfg.Derived.MaxDensity,
		},
		rng:     rng,
		spawn:   cfg.Particles.Spawn,
		targetX: cfg.Derived.Width32 / 2,
		targetY: cfg.Derived.Height32 / 2,
	}

	slog.Info("game initialized",
		"particles", store.Count,
		"workers", pool.Workers(),
		"spawn", g.spawn,
		"screen", fmt.Sprintf("%dx%d", cfg.Screen.Width, cfg.Screen.Height),
		"headless", opts.Headless)

	return g, nil
}

// InitView creates GPU resources. Must run after the raylib window exists.
func (g *Game) InitView() {
	g.view.Init(g.cfg.Screen.Width, g.cfg.Screen.Height)
}

// Update runs input handling and one pipeline step.
func (g *Game) Update() {
	g.handleInput()
	g.applyTuning()

	if g.paused {
		return
	}
	g.step()
}

// UpdateHeadless runs one pipeline step with a synthetic target orbiting the
// screen center, for benchmark runs without a window.
func (g *Game) UpdateHeadless() {
	const angularStep = 0.02
	angle := float64(g.frame) * angularStep
	radius := float64(g.cfg.Derived.Width32) / 4
	g.targetX = g.cfg.Derived.Width32/2 + float32(radius*math.Cos(angle))
	g.targetY = g.cfg.Derived.Height32/2 + float32(radius*math.Sin(angle))

	g.step()
	g.flushTelemetry()
}

// step executes one simulation frame and records its timing.
func (g *Game) step() {
	start := time.Now()
	g.perf.StartFrame()

	pixels, err := g.pipe.Step(g.targetX, g.targetY, g.params)
	if err != nil {
		// The frame is lost but the store is intact; keep showing the
		// previous pixels and try again next frame.
		slog.Error("frame step failed", "frame", g.frame, "error", err)
		g.perf.EndFrame()
		return
	}
	g.pixels = pixels

	if g.opts.Headless {
		g.perf.EndFrame()
	} else {
		g.frameOpen = true
	}
	g.stats.RecordFrame(time.Since(start))
	g.frame++
}

// applyTuning snapshots the panel values into the kernel params. Runs once
// per frame before any work is submitted, so a whole frame sees one setting.
func (g *Game) applyTuning() {
	g.params.Attraction = g.tuning.Attraction
	g.params.Friction = g.tuning.Friction
	g.comp.SetMaxDensity(g.tuning.MaxDensity)
}

// Draw uploads the composited frame and renders the HUD.
func (g *Game) Draw() {
	if g.frameOpen {
		g.perf.StartPhase(telemetry.PhaseUpload)
		g.view.Upload(g.pixels)
		g.perf.EndFrame()
		g.frameOpen = false
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	g.view.Draw(g.cfg.Derived.Width32, g.cfg.Derived.Height32)
	g.drawHUD()
	g.panel.Draw(&g.tuning)
	rl.EndDrawing()

	g.perf.RecordPresent()
	g.flushTelemetry()
}

// drawHUD renders the corner status text.
func (g *Game) drawHUD() {
	s := g.perf.Stats()
	text := fmt.Sprintf("%d particles  %.0f fps  %.1f ms", g.cfg.Particles.Count, s.FPS, s.AvgFrame.Seconds()*1000)
	if g.paused {
		text += "  [paused]"
	}
	rl.DrawText(text, 10, int32(g.cfg.Screen.Height)-24, 18, rl.Gray)
}

// flushTelemetry emits one stats window when it closes.
func (g *Game) flushTelemetry() {
	if !g.stats.WindowReady() {
		return
	}

	ws := g.stats.Flush(g.frame, g.cfg.Particles.Count)
	ps := g.perf.Stats()

	if g.opts.LogStats {
		slog.Info("frame stats", "window", ws, "perf", ps)
	}
	if err := g.output.WriteStats(ws); err != nil {
		slog.Error("writing frame stats", "error", err)
	}
	if err := g.output.WritePerf(ps, g.frame); err != nil {
		slog.Error("writing perf stats", "error", err)
	}
}

// Frame returns the number of completed simulation frames.
func (g *Game) Frame() int64 {
	return g.frame
}

// Unload releases everything in reverse construction order.
func (g *Game) Unload() {
	if err := g.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
	g.pool.Stop()
	g.view.Unload()
}

// rgba converts a config color to the image/color form used downstream.
func rgba(c config.ColorConfig) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
