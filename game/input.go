package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/oasdflkjo/raylib-toy/sim"
)

// handleInput updates the attraction target from the mouse and processes
// hotkeys. The target is sampled once here and stays fixed for the whole
// frame.
func (g *Game) handleInput() {
	mouse := rl.GetMousePosition()
	g.targetX = clamp(mouse.X, 0, g.cfg.Derived.Width32)
	g.targetY = clamp(mouse.Y, 0, g.cfg.Derived.Height32)

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.panel.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		if g.spawn == sim.SpawnScanline {
			g.spawn = sim.SpawnRandom
		} else {
			g.spawn = sim.SpawnScanline
		}
		g.respawn()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.respawn()
	}
}

// respawn reinitializes the particle population. Safe here: input runs on the
// frame goroutine between pipeline rounds, so no worker holds the store.
func (g *Game) respawn() {
	err := g.pipe.Store().Respawn(g.cfg.Derived.Width32, g.cfg.Derived.Height32, g.spawn, g.rng)
	if err != nil {
		slog.Error("respawn failed", "spawn", g.spawn, "error", err)
		return
	}
	slog.Info("respawned particles", "spawn", g.spawn)
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
