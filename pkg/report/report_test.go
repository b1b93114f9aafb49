package report

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/mutagen-io/chunkdiff/pkg/delta"
	"github.com/mutagen-io/chunkdiff/pkg/encoding"
)

// computeDelta computes the delta between an in-memory baseline and target.
func computeDelta(t *testing.T, baseline, target string, chunkSize uint64) *delta.Delta {
	engine := delta.NewEngine(chunkSize, nil)
	list, err := engine.BytesFingerprints([]byte(baseline))
	if err != nil {
		t.Fatal("unable to compute fingerprints:", err)
	}
	result, err := engine.DeltaBytes(list, []byte(target))
	if err != nil {
		t.Fatal("unable to compute delta:", err)
	}
	return result
}

// renderTestCase describes a rendering test.
type renderTestCase struct {
	baseline  string
	target    string
	chunkSize uint64
	expected  string
}

func (c renderTestCase) run(t *testing.T) {
	result := computeDelta(t, c.baseline, c.target, c.chunkSize)
	output := &bytes.Buffer{}
	if err := Render(output, result, bytes.NewReader([]byte(c.target)), Options{}); err != nil {
		t.Fatal("unable to render delta:", err)
	}
	if output.String() != c.expected {
		t.Errorf("unexpected output: %q != %q", output.String(), c.expected)
	}
}

func TestRenderNoChange(t *testing.T) {
	renderTestCase{"AAABBBCCC", "AAABBBCCC", 3, "\nNo change detected!.\n"}.run(t)
}

func TestRenderPrefixedGarbage(t *testing.T) {
	renderTestCase{"AAABBBCCC", "XAAABBBCCC", 3, "\n+X+\n\n-XAA-\n"}.run(t)
}

func TestRenderResynchronized(t *testing.T) {
	// Chunk 0 matches immediately and chunk 1 matches after the problem bytes
	// "XYZW", so only chunk 1 is printed with its grid span [3, 6).
	renderTestCase{"AAABBBC", "AAAXYZWBBB", 3, "\n+XYZW+\n\n-XYZ-\n"}.run(t)
}

func TestRenderClampedSpan(t *testing.T) {
	// Chunk 2 spans [6, 9) on the grid but the target is only 7 bytes long.
	renderTestCase{"AAABBBCCC", "BBXCCCC", 3, "\n+BBX+\n\n-C-\n"}.run(t)
}

func TestRenderInvalidUTF8(t *testing.T) {
	renderTestCase{"AAABBBCCC", "\xffAAABBBCCC", 3, "\n+\uFFFD+\n\n-\uFFFDAA-\n"}.run(t)
}

func TestSummarize(t *testing.T) {
	result := computeDelta(t, "AAABBBCCC", "XAAABBBCCC", 3)
	output := &bytes.Buffer{}
	if err := Summarize(output, result); err != nil {
		t.Fatal("unable to summarize delta:", err)
	}
	expected := "3 chunks of 3 B: 3 present, 0 absent, 1 B of problem bytes in 1 chunks (target 10 B)\n"
	if output.String() != expected {
		t.Errorf("unexpected summary: %q != %q", output.String(), expected)
	}
}

func TestExport(t *testing.T) {
	// Compute a delta with one absent chunk and export it.
	result := computeDelta(t, "AAABBBCCC", "XAAACCC", 3)
	path := filepath.Join(t.TempDir(), "delta.yml")
	if err := Export(path, result, nil); err != nil {
		t.Fatal("unable to export delta:", err)
	}

	// Load the export back.
	loaded := &exportedDelta{}
	if err := encoding.LoadAndUnmarshalYAML(path, loaded); err != nil {
		t.Fatal("unable to load exported delta:", err)
	}

	// Verify the contents.
	if loaded.ChunkSize != 3 || loaded.TargetSize != 7 {
		t.Fatal("unexpected export header:", loaded.ChunkSize, loaded.TargetSize)
	} else if len(loaded.Chunks) != 3 {
		t.Fatal("unexpected exported chunk count:", len(loaded.Chunks))
	}
	expected := []exportedChunk{
		{Index: 0, Start: 0, End: 3, Present: true, ProblemBytes: "X"},
		{Index: 1, Start: 3, End: 6, Present: false},
		{Index: 2, Start: 6, End: 7, Present: true},
	}
	for i, chunk := range loaded.Chunks {
		if chunk != expected[i] {
			t.Errorf("exported chunk %d mismatch: %+v != %+v", i, chunk, expected[i])
		}
	}
}
