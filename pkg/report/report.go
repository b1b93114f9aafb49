// Package report provides console rendering and export of computed deltas.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/pkg/errors"

	"github.com/mutagen-io/chunkdiff/pkg/delta"
)

// noChangeMessage is printed when no chunk carries problem bytes.
const noChangeMessage = "No change detected!."

// Options controls rendering.
type Options struct {
	// Color indicates whether or not output should be colorized.
	Color bool
}

// lossy renders bytes as text, replacing invalid UTF-8 sequences.
func lossy(data []byte) string {
	return strings.ToValidUTF8(string(data), "\uFFFD")
}

// Render prints the problem bytes of each chunk on the target's chunk grid
// followed by the target bytes occupying that chunk's span, or a notice if no
// chunk carries problem bytes. Spans are read from target and clamped to the
// target size.
func Render(writer io.Writer, result *delta.Delta, target io.ReaderAt, options Options) error {
	// Set up colorizers.
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)
	if options.Color {
		added.EnableColor()
		removed.EnableColor()
	} else {
		added.DisableColor()
		removed.DisableColor()
	}

	// Compute the number of chunks on the target grid.
	count := result.TargetSize / result.ChunkSize
	if result.TargetSize%result.ChunkSize != 0 {
		count++
	}

	// Print each chunk carrying problem bytes.
	var problems int
	for i := uint64(0); i < count; i++ {
		chunk, ok := result.Chunks[int(i)]
		if !ok || len(chunk.ProblemBytes) == 0 {
			continue
		}
		problems++

		// Read the target span.
		start, end := chunk.Span(result.TargetSize)
		span := make([]byte, end-start)
		if n, err := target.ReadAt(span, int64(start)); err != nil && !(err == io.EOF && n == len(span)) {
			return errors.Wrapf(err, "unable to read target span for chunk %d", chunk.Index)
		}

		// Print.
		if _, err := fmt.Fprintf(writer, "\n%s\n", added.Sprintf("+%s+", lossy(chunk.ProblemBytes))); err != nil {
			return errors.Wrap(err, "unable to write report")
		}
		if _, err := fmt.Fprintf(writer, "\n%s\n", removed.Sprintf("-%s-", lossy(span))); err != nil {
			return errors.Wrap(err, "unable to write report")
		}
	}

	// If nothing was printed, then say so.
	if problems == 0 {
		if _, err := fmt.Fprintf(writer, "\n%s\n", noChangeMessage); err != nil {
			return errors.Wrap(err, "unable to write report")
		}
	}

	// Success.
	return nil
}

// Summarize prints a one-line summary of a delta.
func Summarize(writer io.Writer, result *delta.Delta) error {
	total := len(result.Chunks)
	present, absent := result.Chunks.Present(), result.Chunks.Absent()
	problemBytes, problemChunks := result.Chunks.ProblemByteCount()
	_, err := fmt.Fprintf(writer,
		"%s chunks of %s: %s present, %s absent, %s of problem bytes in %s chunks (target %s)\n",
		humanize.Comma(int64(total)),
		humanize.IBytes(result.ChunkSize),
		humanize.Comma(int64(present)),
		humanize.Comma(int64(absent)),
		humanize.IBytes(uint64(problemBytes)),
		humanize.Comma(int64(problemChunks)),
		humanize.IBytes(result.TargetSize),
	)
	if err != nil {
		return errors.Wrap(err, "unable to write summary")
	}
	return nil
}
