package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// WindowStats summarizes frame durations over one stats window.
type WindowStats struct {
	WindowEnd int64   `csv:"window_end"` // frame number at window close
	Frames    int     `csv:"frames"`
	Particles int     `csv:"particles"`
	MeanMS    float64 `csv:"mean_ms"`
	StdMS     float64 `csv:"std_ms"`
	P50MS     float64 `csv:"p50_ms"`
	P99MS     float64 `csv:"p99_ms"`
	MaxMS     float64 `csv:"max_ms"`
	FPS       float64 `csv:"fps"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_end", s.WindowEnd),
		slog.Int("frames", s.Frames),
		slog.Int("particles", s.Particles),
		slog.Float64("mean_ms", s.MeanMS),
		slog.Float64("std_ms", s.StdMS),
		slog.Float64("p50_ms", s.P50MS),
		slog.Float64("p99_ms", s.P99MS),
		slog.Float64("max_ms", s.MaxMS),
		slog.Float64("fps", s.FPS),
	)
}

// StatsCollector accumulates frame durations and flushes a summary once per
// wall-clock window.
type StatsCollector struct {
	window      time.Duration
	samplesMS   []float64
	windowStart time.Time
}

// NewStatsCollector creates a collector with the given window in seconds.
func NewStatsCollector(windowSec float64) *StatsCollector {
	if windowSec <= 0 {
		windowSec = 5
	}
	return &StatsCollector{
		window:    time.Duration(windowSec * float64(time.Second)),
		samplesMS: make([]float64, 0, 1024),
	}
}

// RecordFrame adds one frame duration to the current window.
func (c *StatsCollector) RecordFrame(d time.Duration) {
	if c.windowStart.IsZero() {
		c.windowStart = time.Now()
	}
	c.samplesMS = append(c.samplesMS, float64(d)/float64(time.Millisecond))
}

// WindowReady reports whether the current window has elapsed and holds data.
func (c *StatsCollector) WindowReady() bool {
	return len(c.samplesMS) > 0 && !c.windowStart.IsZero() && time.Since(c.windowStart) >= c.window
}

// Flush summarizes the window and resets it.
func (c *StatsCollector) Flush(windowEnd int64, particles int) WindowStats {
	elapsed := time.Since(c.windowStart).Seconds()
	n := len(c.samplesMS)

	sort.Float64s(c.samplesMS)
	s := WindowStats{
		WindowEnd: windowEnd,
		Frames:    n,
		Particles: particles,
	}
	if n > 0 {
		s.MeanMS = stat.Mean(c.samplesMS, nil)
		s.StdMS = stat.StdDev(c.samplesMS, nil)
		s.P50MS = stat.Quantile(0.5, stat.Empirical, c.samplesMS, nil)
		s.P99MS = stat.Quantile(0.99, stat.Empirical, c.samplesMS, nil)
		s.MaxMS = c.samplesMS[n-1]
	}
	if elapsed > 0 {
		s.FPS = float64(n) / elapsed
	}

	c.samplesMS = c.samplesMS[:0]
	c.windowStart = time.Now()
	return s
}
