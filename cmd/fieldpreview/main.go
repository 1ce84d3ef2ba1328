// Attraction field preview tool - interactive visualization with sliders.
//
// For every grid cell it simulates a test particle released at rest and
// colors the cell by how many steps the particle needs to settle on the
// target at the center. Useful for tuning attraction, friction and the
// falloff mode before committing them to a config file.
//
// Usage: go run ./cmd/fieldpreview
package main

import (
	"fmt"
	"image/color"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/oasdflkjo/raylib-toy/sim"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30

	gridSize = 256
	maxSteps = 240
)

// FieldParams holds the physics tunables under preview.
type FieldParams struct {
	Attraction     float32
	Friction       float32
	InverseFalloff bool
}

func defaultParams() FieldParams {
	return FieldParams{
		Attraction:     1.0,
		Friction:       0.99,
		InverseFalloff: true,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Attraction Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()

	stepsGrid := make([]float32, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			generateConvergenceMap(stepsGrid, gridSize, params)
			updateTexture(texture, stepsGrid)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: gridSize, Height: gridSize},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		// Stats over the map
		var total float32
		var maxVal float32
		diverged := 0
		for _, v := range stepsGrid {
			total += v
			if v > maxVal {
				maxVal = v
			}
			if v >= maxSteps {
				diverged++
			}
		}
		avg := total / float32(len(stepsGrid))

		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Avg: %.0f steps  Max: %.0f  Unsettled: %d cells", avg, maxVal, diverged), 15, statsY, 16, rl.DarkGray)
		rl.DrawText("dark = settles fast, bright = settles slow, white = never settles", 15, statsY+20, 16, rl.Gray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Attraction Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Attraction (pull per step)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newAttraction := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.1", "8.0",
			params.Attraction, 0.1, 8.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Attraction), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newAttraction != params.Attraction {
			params.Attraction = newAttraction
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Friction (velocity damping)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newFriction := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.80", "1.00",
			params.Friction, 0.80, 1.00,
		)
		rl.DrawText(fmt.Sprintf("%.3f", params.Friction), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newFriction != params.Friction {
			params.Friction = newFriction
			needsRegen = true
		}
		panelY += 35

		newFalloff := gui.CheckBox(
			rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20},
			"Inverse falloff (1/distance)",
			params.InverseFalloff,
		)
		if newFalloff != params.InverseFalloff {
			params.InverseFalloff = newFalloff
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRegen = true
		}
		panelY += 55

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			"physics:",
			fmt.Sprintf("  attraction: %.2f", params.Attraction),
			fmt.Sprintf("  friction: %.3f", params.Friction),
			fmt.Sprintf("  inverse_falloff: %t", params.InverseFalloff),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)

		if rl.IsKeyPressed(rl.KeyC) {
			yaml := fmt.Sprintf(`physics:
  attraction: %.2f
  friction: %.3f
  inverse_falloff: %t`,
				params.Attraction, params.Friction, params.InverseFalloff)
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// generateConvergenceMap fills grid[y*size+x] with the number of update steps
// a particle released at rest in cell (x, y) needs to settle within one cell
// of the target at the center, capped at maxSteps. Cells are simulated one
// lane at a time through the real update kernel.
func generateConvergenceMap(grid []float32, size int, params FieldParams) {
	store := &sim.Store{
		PosX:  make([]float32, sim.LaneWidth),
		PosY:  make([]float32, sim.LaneWidth),
		VelX:  make([]float32, sim.LaneWidth),
		VelY:  make([]float32, sim.LaneWidth),
		Count: sim.LaneWidth,
	}
	chunk := sim.Chunk{
		Start:   0,
		End:     sim.LaneWidth,
		TargetX: float32(size) / 2,
		TargetY: float32(size) / 2,
		Params: sim.Params{
			Attraction:     params.Attraction,
			Friction:       params.Friction,
			InverseFalloff: params.InverseFalloff,
		},
	}

	var steps [sim.LaneWidth]int
	for base := 0; base < size*size; base += sim.LaneWidth {
		for l := 0; l < sim.LaneWidth; l++ {
			cell := base + l
			store.PosX[l] = float32(cell%size) + 0.5
			store.PosY[l] = float32(cell/size) + 0.5
			store.VelX[l] = 0
			store.VelY[l] = 0
			steps[l] = maxSteps
		}

		for step := 1; step <= maxSteps; step++ {
			sim.Update(store, chunk)

			settled := 0
			for l := 0; l < sim.LaneWidth; l++ {
				if steps[l] < maxSteps {
					settled++
					continue
				}
				dx := chunk.TargetX - store.PosX[l]
				dy := chunk.TargetY - store.PosY[l]
				speed2 := store.VelX[l]*store.VelX[l] + store.VelY[l]*store.VelY[l]
				if dx*dx+dy*dy <= 1 && speed2 <= 0.01 {
					steps[l] = step
					settled++
				}
			}
			if settled == sim.LaneWidth {
				break
			}
		}

		for l := 0; l < sim.LaneWidth; l++ {
			grid[base+l] = float32(steps[l])
		}
	}
}

// updateTexture maps step counts through a dark blue -> cyan -> yellow ->
// white gradient and uploads them.
func updateTexture(texture rl.Texture2D, grid []float32) {
	pixels := make([]color.RGBA, len(grid))
	for i, steps := range grid {
		v := float32(math.Sqrt(float64(steps / maxSteps)))
		var r, g, b uint8
		switch {
		case v < 0.25:
			t := v / 0.25
			r = uint8(10 + t*30)
			g = uint8(20 + t*60)
			b = uint8(60 + t*100)
		case v < 0.5:
			t := (v - 0.25) / 0.25
			r = uint8(40 + t*20)
			g = uint8(80 + t*120)
			b = uint8(160 + t*40)
		case v < 0.75:
			t := (v - 0.5) / 0.25
			r = uint8(60 + t*140)
			g = uint8(200 - t*40)
			b = uint8(200 - t*150)
		default:
			t := (v - 0.75) / 0.25
			r = uint8(200 + t*55)
			g = uint8(160 + t*95)
			b = uint8(50 + t*205)
		}
		pixels[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}
