package raster

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/blas/blas32"
)

// Mode selects how merged cells map to pixels.
type Mode int

const (
	// ModeDensity ramps brightness with the particle count per cell, capped
	// at the configured maximum.
	ModeDensity Mode = iota
	// ModeOccupancy paints any occupied cell with the full particle color.
	// Summing the private grids and testing for nonzero is the elementwise
	// OR of their occupancy.
	ModeOccupancy
)

// ParseMode parses a config mode string.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "density", "":
		return ModeDensity, nil
	case "occupancy":
		return ModeOccupancy, nil
	default:
		return 0, fmt.Errorf("raster: unknown render mode %q", s)
	}
}

// Compositor merges per-worker grids into one accumulator and maps cells to
// pixels. It owns its accumulator and pixel buffer and overwrites them in
// place every frame; it keeps no other state between frames.
type Compositor struct {
	mode       Mode
	maxDensity float32
	background color.RGBA
	particle   color.RGBA

	acc    *Grid
	pixels []color.RGBA
}

// NewCompositor allocates a compositor for the given grid shape.
func NewCompositor(width, height int, mode Mode, maxDensity float32, background, particle color.RGBA) (*Compositor, error) {
	if maxDensity <= 0 {
		return nil, fmt.Errorf("raster: max density %g must be positive", maxDensity)
	}
	acc, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	return &Compositor{
		mode:       mode,
		maxDensity: maxDensity,
		background: background,
		particle:   particle,
		acc:        acc,
		pixels:     make([]color.RGBA, width*height),
	}, nil
}

// Composite sums the private grids into the accumulator and converts it to
// pixels. The returned buffer is owned by the compositor and valid until the
// next call.
func (c *Compositor) Composite(grids []*Grid) []color.RGBA {
	c.acc.Clear()

	dst := blas32.Vector{N: len(c.acc.Cells), Inc: 1, Data: c.acc.Cells}
	for _, g := range grids {
		src := blas32.Vector{N: len(g.Cells), Inc: 1, Data: g.Cells}
		blas32.Axpy(1, src, dst)
	}

	switch c.mode {
	case ModeOccupancy:
		for i, v := range c.acc.Cells {
			if v > 0 {
				c.pixels[i] = c.particle
			} else {
				c.pixels[i] = c.background
			}
		}
	default:
		inv := 1 / c.maxDensity
		for i, v := range c.acc.Cells {
			t := v * inv
			if t > 1 {
				t = 1
			}
			c.pixels[i] = lerpRGBA(c.background, c.particle, t)
		}
	}
	return c.pixels
}

// SetMaxDensity retunes the density ramp. Non-positive values are ignored.
func (c *Compositor) SetMaxDensity(v float32) {
	if v > 0 {
		c.maxDensity = v
	}
}

// Pixels returns the last composited buffer.
func (c *Compositor) Pixels() []color.RGBA {
	return c.pixels
}

// lerpRGBA blends a toward b by t in [0,1], per channel.
func lerpRGBA(a, b color.RGBA, t float32) color.RGBA {
	return color.RGBA{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: uint8(float32(a.A) + (float32(b.A)-float32(a.A))*t),
	}
}
