package sim

import "testing"

func TestPartition_CoversExactly(t *testing.T) {
	counts := []int{8, 16, 64, 100000, 99992}
	for _, count := range counts {
		for workers := 1; workers <= 256; workers++ {
			chunks := Partition(count, workers)
			if len(chunks) == 0 {
				t.Fatalf("count=%d workers=%d: no chunks", count, workers)
			}

			// Contiguous, disjoint, full coverage
			if chunks[0].Start != 0 {
				t.Errorf("count=%d workers=%d: first chunk starts at %d", count, workers, chunks[0].Start)
			}
			for i := 1; i < len(chunks); i++ {
				if chunks[i].Start != chunks[i-1].End {
					t.Errorf("count=%d workers=%d: gap between chunk %d and %d", count, workers, i-1, i)
				}
			}
			if last := chunks[len(chunks)-1]; last.End != count {
				t.Errorf("count=%d workers=%d: last chunk ends at %d, want %d", count, workers, last.End, count)
			}
		}
	}
}

func TestPartition_LaneAlignedStarts(t *testing.T) {
	chunks := Partition(100000, 12)
	for i, c := range chunks {
		if c.Start%LaneWidth != 0 {
			t.Errorf("chunk %d starts at %d, not a lane multiple", i, c.Start)
		}
		if i < len(chunks)-1 && (c.End-c.Start)%LaneWidth != 0 {
			t.Errorf("chunk %d has size %d, not a lane multiple", i, c.End-c.Start)
		}
	}
}

func TestPartition_LastChunkAbsorbsRemainder(t *testing.T) {
	// 100 = 12*8 + 4: with 3 workers chunkSize is 32, last chunk takes 36.
	chunks := Partition(100, 3)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	if chunks[2].End-chunks[2].Start != 36 {
		t.Errorf("expected last chunk size 36, got %d", chunks[2].End-chunks[2].Start)
	}
}

func TestPartition_MoreWorkersThanLanes(t *testing.T) {
	// 16 particles = 2 lanes; asking for 8 workers must clamp to 2 chunks.
	chunks := Partition(16, 8)
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.End-c.Start != 8 {
			t.Errorf("chunk %d size %d, want 8", i, c.End-c.Start)
		}
	}
}

func TestPartition_TinyCount(t *testing.T) {
	// Fewer particles than one lane still yields a single covering chunk.
	chunks := Partition(3, 16)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Start != 0 || chunks[0].End != 3 {
		t.Errorf("chunk covers [%d,%d), want [0,3)", chunks[0].Start, chunks[0].End)
	}
}

func TestPartition_ZeroCount(t *testing.T) {
	if chunks := Partition(0, 4); chunks != nil {
		t.Errorf("expected nil for zero count, got %d chunks", len(chunks))
	}
}
