package delta

import (
	"sort"
)

// Chunk represents the recovered state of one baseline chunk in the target.
type Chunk struct {
	// Index is the baseline chunk index.
	Index int
	// Start is the byte offset of the chunk on the baseline grid.
	Start uint64
	// End is the byte offset one past the chunk on the baseline grid. It always
	// assumes a full chunk, even for a short final baseline chunk.
	End uint64
	// Present indicates whether or not a window matching the chunk was found in
	// the target.
	Present bool
	// ProblemBytes are the target bytes immediately preceding the match that
	// could not themselves be aligned to any chunk. It is empty for absent
	// chunks and for matches that occurred immediately.
	ProblemBytes []byte
}

// newChunk creates a new chunk for the specified baseline index.
func newChunk(index int, chunkSize uint64, present bool, problemBytes []byte) *Chunk {
	start := uint64(index) * chunkSize
	return &Chunk{
		Index:        index,
		Start:        start,
		End:          start + chunkSize,
		Present:      present,
		ProblemBytes: problemBytes,
	}
}

// Span returns the chunk's byte range clamped to the specified target length.
func (c *Chunk) Span(targetSize uint64) (uint64, uint64) {
	start, end := c.Start, c.End
	if end > targetSize {
		end = targetSize
	}
	if start > end {
		start = end
	}
	return start, end
}

// DeltaMap maps baseline chunk indices to chunk states. It is sparse while
// alignment is in progress and total once gaps have been filled.
type DeltaMap map[int]*Chunk

// Indices returns the indices in the map in ascending order.
func (d DeltaMap) Indices() []int {
	result := make([]int, 0, len(d))
	for index := range d {
		result = append(result, index)
	}
	sort.Ints(result)
	return result
}

// Present returns the number of chunks that were located in the target.
func (d DeltaMap) Present() int {
	var result int
	for _, c := range d {
		if c.Present {
			result++
		}
	}
	return result
}

// Absent returns the number of chunks that weren't located in the target.
func (d DeltaMap) Absent() int {
	return len(d) - d.Present()
}

// ProblemByteCount returns the total number of problem bytes recorded in the
// map along with the number of chunks carrying them.
func (d DeltaMap) ProblemByteCount() (bytes, chunks int) {
	for _, c := range d {
		if len(c.ProblemBytes) > 0 {
			bytes += len(c.ProblemBytes)
			chunks++
		}
	}
	return
}

// FillGaps inserts an absent chunk for every index in [0, count) that doesn't
// already have an entry. It is idempotent.
func FillGaps(chunks DeltaMap, count int, chunkSize uint64) {
	for i := 0; i < count; i++ {
		if _, ok := chunks[i]; !ok {
			chunks[i] = newChunk(i, chunkSize, false, nil)
		}
	}
}

// Delta is the result of a delta computation.
type Delta struct {
	// ChunkSize is the chunk size of the fingerprint list used.
	ChunkSize uint64
	// TargetSize is the number of target bytes scanned.
	TargetSize uint64
	// Chunks is the total map of baseline chunk states.
	Chunks DeltaMap
}
