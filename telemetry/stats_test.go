package telemetry

import (
	"testing"
	"time"
)

func TestStatsCollector_FlushSummarizesWindow(t *testing.T) {
	c := NewStatsCollector(5)

	durations := []time.Duration{
		10 * time.Millisecond,
		20 * time.Millisecond,
		30 * time.Millisecond,
		40 * time.Millisecond,
	}
	for _, d := range durations {
		c.RecordFrame(d)
	}

	ws := c.Flush(100, 100000)

	if ws.WindowEnd != 100 {
		t.Errorf("window_end = %d, want 100", ws.WindowEnd)
	}
	if ws.Frames != 4 {
		t.Errorf("frames = %d, want 4", ws.Frames)
	}
	if ws.Particles != 100000 {
		t.Errorf("particles = %d, want 100000", ws.Particles)
	}
	if ws.MeanMS != 25 {
		t.Errorf("mean = %v ms, want 25", ws.MeanMS)
	}
	if ws.MaxMS != 40 {
		t.Errorf("max = %v ms, want 40", ws.MaxMS)
	}
	if ws.P50MS < 10 || ws.P50MS > 30 {
		t.Errorf("p50 = %v ms, expected within [10,30]", ws.P50MS)
	}
	if ws.P99MS < ws.P50MS {
		t.Errorf("p99 (%v) below p50 (%v)", ws.P99MS, ws.P50MS)
	}
}

func TestStatsCollector_FlushResetsWindow(t *testing.T) {
	c := NewStatsCollector(5)
	c.RecordFrame(10 * time.Millisecond)
	c.Flush(1, 8)

	ws := c.Flush(2, 8)
	if ws.Frames != 0 {
		t.Errorf("frames after reset = %d, want 0", ws.Frames)
	}
}

func TestStatsCollector_WindowReady(t *testing.T) {
	c := NewStatsCollector(0.001) // 1ms window

	if c.WindowReady() {
		t.Error("empty collector should not be ready")
	}

	c.RecordFrame(time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	if !c.WindowReady() {
		t.Error("expected window to be ready after it elapsed with data")
	}
}

func TestNewStatsCollector_DefaultsBadWindow(t *testing.T) {
	c := NewStatsCollector(-1)
	if c.window != 5*time.Second {
		t.Errorf("window = %v, want 5s default", c.window)
	}
}
