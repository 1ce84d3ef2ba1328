package sim

// Partition splits [0, count) into at most workers contiguous chunks whose
// ranges are pairwise disjoint and together cover the range exactly. Chunk
// sizes round down to a lane multiple and the last chunk absorbs whatever
// remains, so no particle is ever dropped when count does not divide evenly.
// Target and Params are left zero; the frame driver stamps them per frame.
func Partition(count, workers int) []Chunk {
	if count <= 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	// A chunk shorter than one lane is pure overhead; cap the chunk count so
	// every non-final chunk holds at least one full lane.
	if maxChunks := count / LaneWidth; workers > maxChunks {
		workers = maxChunks
		if workers < 1 {
			workers = 1
		}
	}

	chunkSize := count / workers
	chunkSize -= chunkSize % LaneWidth

	chunks := make([]Chunk, workers)
	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if w == workers-1 {
			end = count
		}
		chunks[w] = Chunk{Start: start, End: end}
	}
	return chunks
}
