package report

import (
	"github.com/mutagen-io/chunkdiff/pkg/delta"
	"github.com/mutagen-io/chunkdiff/pkg/encoding"
	"github.com/mutagen-io/chunkdiff/pkg/logging"
)

// exportedChunk is the YAML representation of a chunk.
type exportedChunk struct {
	Index   int    `yaml:"index"`
	Start   uint64 `yaml:"start"`
	End     uint64 `yaml:"end"`
	Present bool   `yaml:"present"`
	// ProblemBytes is encoded as a string. Non-UTF-8 content is emitted as a
	// base64 !!binary scalar by the YAML encoder.
	ProblemBytes string `yaml:"problemBytes,omitempty"`
}

// exportedDelta is the YAML representation of a delta.
type exportedDelta struct {
	ChunkSize  uint64          `yaml:"chunkSize"`
	TargetSize uint64          `yaml:"targetSize"`
	Chunks     []exportedChunk `yaml:"chunks"`
}

// Export writes a delta to the specified path as YAML, with chunks in index
// order and chunk ends clamped to the target size. The file is written
// atomically.
func Export(path string, result *delta.Delta, logger *logging.Logger) error {
	exported := exportedDelta{
		ChunkSize:  result.ChunkSize,
		TargetSize: result.TargetSize,
		Chunks:     make([]exportedChunk, 0, len(result.Chunks)),
	}
	for _, index := range result.Chunks.Indices() {
		chunk := result.Chunks[index]
		start, end := chunk.Span(result.TargetSize)
		exported.Chunks = append(exported.Chunks, exportedChunk{
			Index:        index,
			Start:        start,
			End:          end,
			Present:      chunk.Present,
			ProblemBytes: string(chunk.ProblemBytes),
		})
	}
	return encoding.MarshalAndSaveYAML(path, exported, logger)
}
