// Package raster converts particle positions into per-worker density grids
// and composites them into one displayable RGBA pixel buffer.
package raster

import "fmt"

// Grid is a 2D density buffer, one cell per screen pixel. Each worker owns a
// private full-size grid, so concurrent rasterization of disjoint particle
// ranges needs no locks; the compositor merges the private grids afterwards.
// Cells are float32 counters so the merge can run through BLAS routines.
type Grid struct {
	Width  int
	Height int
	Cells  []float32
}

// NewGrid allocates a cleared grid.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: grid size %dx%d is invalid", width, height)
	}
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]float32, width*height),
	}, nil
}

// Clear zeroes every cell. Must run before each frame's accumulation.
func (g *Grid) Clear() {
	clear(g.Cells)
}

// Rasterize accumulates one count per particle in [start, end) whose position
// lands inside the grid. Out-of-bounds particles are skipped silently; that
// is expected behavior, not an error.
func (g *Grid) Rasterize(posX, posY []float32, start, end int) {
	w := float32(g.Width)
	h := float32(g.Height)
	for i := start; i < end; i++ {
		x := posX[i]
		y := posY[i]
		if x < 0 || x >= w || y < 0 || y >= h {
			continue
		}
		g.Cells[int(y)*g.Width+int(x)]++
	}
}

// Sum returns the total accumulated density, mostly for tests and stats.
func (g *Grid) Sum() float32 {
	var total float32
	for _, v := range g.Cells {
		total += v
	}
	return total
}
