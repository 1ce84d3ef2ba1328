package sim

import (
	"fmt"
	"image/color"

	"github.com/oasdflkjo/raylib-toy/raster"
	"github.com/oasdflkjo/raylib-toy/telemetry"
)

// Pipeline drives one simulation frame: a fork-join update round over the
// particle store, a fork-join rasterize round into per-worker grids, and a
// composite step that merges the grids into pixels. Stage ordering is
// enforced by the pool's barrier; chunks within a stage may finish in any
// order because their ranges are disjoint.
type Pipeline struct {
	store  *Store
	pool   *Pool
	chunks []Chunk
	grids  []*raster.Grid
	comp   *raster.Compositor
	perf   *telemetry.PerfCollector
}

// NewPipeline partitions the store across the pool and allocates one private
// full-size grid per chunk.
func NewPipeline(store *Store, pool *Pool, gridWidth, gridHeight int, comp *raster.Compositor, perf *telemetry.PerfCollector) (*Pipeline, error) {
	chunks := Partition(store.Count, pool.Workers())
	if len(chunks) == 0 {
		return nil, fmt.Errorf("sim: cannot partition %d particles", store.Count)
	}

	grids := make([]*raster.Grid, len(chunks))
	for i := range grids {
		g, err := raster.NewGrid(gridWidth, gridHeight)
		if err != nil {
			return nil, err
		}
		grids[i] = g
	}

	return &Pipeline{
		store:  store,
		pool:   pool,
		chunks: chunks,
		grids:  grids,
		comp:   comp,
		perf:   perf,
	}, nil
}

// Store returns the shared particle store.
func (p *Pipeline) Store() *Store {
	return p.store
}

// Step advances the simulation by one frame toward the given target and
// returns the composited pixels. The params snapshot is stamped into every
// chunk before submission, so mid-frame tuning changes never reach a worker.
// A submit failure aborts the frame loudly after draining whatever was
// already in flight; the store itself stays consistent because every
// completed chunk covered only its own range.
func (p *Pipeline) Step(targetX, targetY float32, params Params) ([]color.RGBA, error) {
	p.perf.StartPhase(telemetry.PhaseUpdate)
	for i := range p.chunks {
		p.chunks[i].TargetX = targetX
		p.chunks[i].TargetY = targetY
		p.chunks[i].Params = params

		c := p.chunks[i]
		if err := p.pool.Submit(func() { Update(p.store, c) }); err != nil {
			p.pool.Join()
			return nil, fmt.Errorf("sim: update round chunk %d: %w", i, err)
		}
	}
	p.pool.Join()

	p.perf.StartPhase(telemetry.PhaseRaster)
	for i := range p.chunks {
		c := p.chunks[i]
		g := p.grids[i]
		if err := p.pool.Submit(func() {
			g.Clear()
			g.Rasterize(p.store.PosX, p.store.PosY, c.Start, c.End)
		}); err != nil {
			p.pool.Join()
			return nil, fmt.Errorf("sim: raster round chunk %d: %w", i, err)
		}
	}
	p.pool.Join()

	p.perf.StartPhase(telemetry.PhaseComposite)
	return p.comp.Composite(p.grids), nil
}
