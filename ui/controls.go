// Package ui draws the runtime tuning panel.
package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuning holds the live values the panel edits. The frame driver snapshots
// them into the kernel params once per frame, so slider changes apply between
// frames and never race an in-flight round.
type Tuning struct {
	Attraction float32
	Friction   float32
	MaxDensity float32
}

// TuningPanel renders sliders for the physics tunables.
type TuningPanel struct {
	x, y  float32
	width float32

	visible bool
}

// NewTuningPanel creates a hidden panel anchored at (x, y).
func NewTuningPanel(x, y, width float32) *TuningPanel {
	return &TuningPanel{x: x, y: y, width: width}
}

// Toggle switches panel visibility and returns the new state.
func (p *TuningPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// IsVisible returns whether the panel is shown.
func (p *TuningPanel) IsVisible() bool {
	return p.visible
}

// Draw renders the sliders and writes edited values back into t.
func (p *TuningPanel) Draw(t *Tuning) {
	if !p.visible {
		return
	}

	const lineHeight = 42
	sliderW := p.width - 70
	y := p.y

	rl.DrawRectangle(int32(p.x)-10, int32(p.y)-10, int32(p.width)+10, lineHeight*3+30, rl.Color{R: 0, G: 0, B: 0, A: 140})
	rl.DrawText("Tuning", int32(p.x), int32(y), 16, rl.White)
	y += 24

	t.Attraction = p.slider(y, sliderW, "attraction", t.Attraction, 0, 4, "%.2f")
	y += lineHeight
	t.Friction = p.slider(y, sliderW, "friction", t.Friction, 0.80, 1.0, "%.3f")
	y += lineHeight
	t.MaxDensity = p.slider(y, sliderW, "max density", t.MaxDensity, 1, 32, "%.0f")
}

// slider draws one labeled slider row and returns the (possibly new) value.
func (p *TuningPanel) slider(y, width float32, label string, value, min, max float32, format string) float32 {
	rl.DrawText(label, int32(p.x), int32(y), 12, rl.LightGray)
	v := gui.SliderBar(
		rl.Rectangle{X: p.x, Y: y + 14, Width: width, Height: 18},
		"", "",
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, v), int32(p.x+width+8), int32(y+16), 14, rl.White)
	return v
}
