package sim

import "math"

// minDist is the floor applied to the target distance before dividing by it.
// A particle sitting exactly on the target gets zero acceleration instead of
// a NaN position; particles within half a cell get a proportionally weaker
// pull and fizzle out around the target.
const minDist = 0.5

// Params are the update tunables, snapshotted by value into every chunk once
// per frame. Workers only ever see the snapshot, so adjusting the live values
// between frames is safe.
type Params struct {
	Attraction     float32
	Friction       float32
	InverseFalloff bool // scale attraction by 1/distance, like a point gravity well
	Wrap           bool // wrap positions toroidally at the bounds
	Width          float32
	Height         float32
}

// Chunk describes one unit of kernel work: a half-open index range into the
// shared store plus the frame's target point and tunables. Ranges produced by
// Partition are pairwise disjoint and cover the store exactly, which is what
// makes lock-free concurrent updates safe.
type Chunk struct {
	Start   int
	End     int
	TargetX float32
	TargetY float32
	Params  Params
}

// Update advances every particle in c's range by one step: accelerate toward
// the target, damp, integrate. The range is processed in LaneWidth groups;
// the scalar tail runs the identical math, so results do not depend on how
// the range is partitioned. The kernel reads and writes nothing outside
// [Start, End).
func Update(s *Store, c Chunk) {
	i := c.Start
	for ; i+LaneWidth <= c.End; i += LaneWidth {
		updateLanes(s, i, &c)
	}
	for ; i < c.End; i++ {
		updateOne(s, i, &c)
	}
}

// updateLanes advances the LaneWidth particles starting at index i. Loads and
// stores go through full-lane subslices and every inner loop has a fixed lane
// count, keeping the generated code branch-free across the group.
func updateLanes(s *Store, i int, c *Chunk) {
	px := s.PosX[i : i+LaneWidth : i+LaneWidth]
	py := s.PosY[i : i+LaneWidth : i+LaneWidth]
	vx := s.VelX[i : i+LaneWidth : i+LaneWidth]
	vy := s.VelY[i : i+LaneWidth : i+LaneWidth]

	var dx, dy, dist [LaneWidth]float32

	for l := 0; l < LaneWidth; l++ {
		dx[l] = c.TargetX - px[l]
		dy[l] = c.TargetY - py[l]
	}
	for l := 0; l < LaneWidth; l++ {
		dist[l] = float32(math.Sqrt(float64(dx[l]*dx[l] + dy[l]*dy[l])))
		if dist[l] < minDist {
			dist[l] = minDist
		}
	}

	if c.Params.InverseFalloff {
		for l := 0; l < LaneWidth; l++ {
			scale := c.Params.Attraction / (dist[l] * dist[l])
			vx[l] = (vx[l] + dx[l]*scale) * c.Params.Friction
			vy[l] = (vy[l] + dy[l]*scale) * c.Params.Friction
		}
	} else {
		for l := 0; l < LaneWidth; l++ {
			scale := c.Params.Attraction / dist[l]
			vx[l] = (vx[l] + dx[l]*scale) * c.Params.Friction
			vy[l] = (vy[l] + dy[l]*scale) * c.Params.Friction
		}
	}

	for l := 0; l < LaneWidth; l++ {
		px[l] += vx[l]
		py[l] += vy[l]
	}

	if c.Params.Wrap {
		for l := 0; l < LaneWidth; l++ {
			px[l] = wrap(px[l], c.Params.Width)
			py[l] = wrap(py[l], c.Params.Height)
		}
	}
}

// updateOne is the scalar tail. It must stay operation-for-operation
// identical to updateLanes so partitioning never changes results.
func updateOne(s *Store, i int, c *Chunk) {
	dx := c.TargetX - s.PosX[i]
	dy := c.TargetY - s.PosY[i]
	dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
	if dist < minDist {
		dist = minDist
	}

	var scale float32
	if c.Params.InverseFalloff {
		scale = c.Params.Attraction / (dist * dist)
	} else {
		scale = c.Params.Attraction / dist
	}
	s.VelX[i] = (s.VelX[i] + dx*scale) * c.Params.Friction
	s.VelY[i] = (s.VelY[i] + dy*scale) * c.Params.Friction

	s.PosX[i] += s.VelX[i]
	s.PosY[i] += s.VelY[i]

	if c.Params.Wrap {
		s.PosX[i] = wrap(s.PosX[i], c.Params.Width)
		s.PosY[i] = wrap(s.PosY[i], c.Params.Height)
	}
}

// wrap folds v into [0, bound) assuming at most one bound of overshoot per
// step, which holds for any sane velocity.
func wrap(v, bound float32) float32 {
	if v < 0 {
		return v + bound
	}
	if v >= bound {
		return v - bound
	}
	return v
}
