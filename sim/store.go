// Package sim implements the particle simulation core: the structure-of-arrays
// particle store, the lane-grouped update kernel, the work partitioner, and
// the fork-join worker pool that drives every frame.
package sim

import (
	"fmt"
	"math/rand"
	"unsafe"
)

// LaneWidth is the number of float32 values processed per vector group.
// Eight 32-bit lanes fill one 256-bit register.
const LaneWidth = 8

// laneBytes is the register width in bytes; buffers are aligned to it so
// grouped loads and stores never straddle a register boundary.
const laneBytes = LaneWidth * 4

// Spawn modes for initial particle placement.
const (
	// SpawnRandom places particles uniformly at random with small random
	// velocities.
	SpawnRandom = "random"
	// SpawnScanline places particle i at cell (i mod W, (i/W) mod H) with
	// zero velocity, so the index maps predictably to a screen cell.
	SpawnScanline = "scanline"
)

// Store holds per-particle state as four equal-length flat arrays.
// The update kernel mutates disjoint index ranges of these arrays from
// multiple workers; no other code writes to them during a frame.
type Store struct {
	PosX []float32
	PosY []float32
	VelX []float32
	VelY []float32

	Count int
}

// alignedFloat32 returns a length-n float32 slice whose backing memory starts
// on a laneBytes boundary. Go's allocator only guarantees element alignment,
// so over-allocate by one lane and re-slice at the boundary.
func alignedFloat32(n int) []float32 {
	buf := make([]float32, n+LaneWidth)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	off := 0
	if rem := addr % laneBytes; rem != 0 {
		off = int(laneBytes-rem) / 4
	}
	return buf[off : off+n : off+n]
}

// NewStore allocates a store of count particles spawned inside
// [0,width) x [0,height). The count must be a positive multiple of LaneWidth;
// violating that is a startup error, never a silent truncation.
func NewStore(count int, width, height float32, spawn string, rng *rand.Rand) (*Store, error) {
	if count <= 0 {
		return nil, fmt.Errorf("sim: particle count must be positive, got %d", count)
	}
	if count%LaneWidth != 0 {
		return nil, fmt.Errorf("sim: particle count %d is not a multiple of the lane width %d", count, LaneWidth)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("sim: spawn bounds %gx%g are invalid", width, height)
	}

	s := &Store{
		PosX:  alignedFloat32(count),
		PosY:  alignedFloat32(count),
		VelX:  alignedFloat32(count),
		VelY:  alignedFloat32(count),
		Count: count,
	}
	if err := s.Respawn(width, height, spawn, rng); err != nil {
		return nil, err
	}
	return s, nil
}

// Respawn reinitializes every particle in place per the spawn mode. Must not
// run while an update round is in flight.
func (s *Store) Respawn(width, height float32, spawn string, rng *rand.Rand) error {
	switch spawn {
	case SpawnScanline:
		w := int(width)
		h := int(height)
		for i := 0; i < s.Count; i++ {
			s.PosX[i] = float32(i % w)
			s.PosY[i] = float32((i / w) % h)
			s.VelX[i] = 0
			s.VelY[i] = 0
		}

	case SpawnRandom, "":
		for i := 0; i < s.Count; i++ {
			s.PosX[i] = rng.Float32() * width
			s.PosY[i] = rng.Float32() * height
			s.VelX[i] = rng.Float32()*2 - 1
			s.VelY[i] = rng.Float32()*2 - 1
		}

	default:
		return fmt.Errorf("sim: unknown spawn mode %q", spawn)
	}
	return nil
}
