// Package renderer uploads composited pixel buffers to a GPU texture and
// draws them to the screen. It owns all GPU-side resources; the core
// simulation packages never import raylib.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// View owns the screen-sized texture the composited frame is presented with.
type View struct {
	tex         rl.Texture2D
	gridW       int
	gridH       int
	initialized bool
}

// NewView creates an uninitialized view; Init must run after the raylib
// window exists.
func NewView() *View {
	return &View{}
}

// Init creates the GPU texture matching the raster grid.
func (v *View) Init(gridW, gridH int) {
	if v.initialized {
		return
	}
	v.gridW = gridW
	v.gridH = gridH

	img := rl.GenImageColor(gridW, gridH, rl.Black)
	v.tex = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	// Point sampling: one grid cell is exactly one screen pixel.
	rl.SetTextureFilter(v.tex, rl.FilterPoint)

	v.initialized = true
}

// Upload pushes one composited frame to the texture.
func (v *View) Upload(pixels []color.RGBA) {
	if !v.initialized || len(pixels) != v.gridW*v.gridH {
		return
	}
	rl.UpdateTexture(v.tex, pixels)
}

// Draw stretches the texture over the given screen area.
func (v *View) Draw(screenW, screenH float32) {
	if !v.initialized {
		return
	}
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(v.gridW), Height: float32(v.gridH)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: screenW, Height: screenH}
	rl.DrawTexturePro(v.tex, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload frees GPU resources.
func (v *View) Unload() {
	if !v.initialized {
		return
	}
	rl.UnloadTexture(v.tex)
	v.initialized = false
}
