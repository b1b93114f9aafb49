package delta

import (
	"bufio"
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/mutagen-io/chunkdiff/pkg/logging"
	"github.com/mutagen-io/chunkdiff/pkg/must"
)

// DefaultChunkSize is the chunk size used when none is specified.
const DefaultChunkSize = 3

// dualModeReader unifies the io.Reader and io.ByteReader interfaces. It is used
// in delta operations to ensure that bytes can be efficiently extracted from
// targets.
type dualModeReader interface {
	io.Reader
	io.ByteReader
}

// Engine provides fingerprinting and alignment for a fixed chunk size. It is
// designed to be re-used to avoid heavy buffer allocation, but it is not safe
// for concurrent usage.
type Engine struct {
	// chunkSize is the chunk size used for fingerprinting.
	chunkSize uint64
	// logger is the underlying logger. It may be nil.
	logger *logging.Logger
	// buffer is a re-usable buffer that will be used for reading chunks.
	buffer []byte
	// targetReader is a re-usable bufio.Reader that will be used for delta
	// operations.
	targetReader *bufio.Reader
}

// NewEngine creates a new engine using the specified chunk size. The logger may
// be nil.
func NewEngine(chunkSize uint64, logger *logging.Logger) *Engine {
	return &Engine{
		chunkSize:    chunkSize,
		logger:       logger,
		targetReader: bufio.NewReader(nil),
	}
}

// ChunkSize returns the engine's chunk size.
func (e *Engine) ChunkSize() uint64 {
	return e.chunkSize
}

// bufferWithSize lazily allocates the engine's internal buffer, ensuring that
// it is the required size. The capacity of the internal buffer is retained
// between calls to avoid allocations if possible.
func (e *Engine) bufferWithSize(size uint64) []byte {
	if uint64(cap(e.buffer)) >= size {
		return e.buffer[:size]
	}
	e.buffer = make([]byte, size)
	return e.buffer
}

// openSized opens a file and computes its size. The caller is responsible for
// closing the file if no error is returned.
func (e *Engine) openSized(path string) (*os.File, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, &IOError{Op: "open", Path: path, Err: err}
	}
	metadata, err := file.Stat()
	if err != nil {
		must.Close(file, e.logger)
		return nil, 0, &IOError{Op: "stat", Path: path, Err: err}
	}
	return file, metadata.Size(), nil
}

// FingerprintFile computes the fingerprint list for the file at the specified
// path. The file is closed before this method returns.
func (e *Engine) FingerprintFile(path string) (FingerprintList, error) {
	// Open the baseline and defer its closure.
	file, size, err := e.openSized(path)
	if err != nil {
		return FingerprintList{}, err
	}
	defer must.Close(file, e.logger)

	// Perform fingerprinting.
	return e.fingerprints(file, size, path)
}

// Fingerprints computes the fingerprint list for a baseline of the specified
// size.
func (e *Engine) Fingerprints(baseline io.Reader, size int64) (FingerprintList, error) {
	return e.fingerprints(baseline, size, "")
}

// BytesFingerprints computes the fingerprint list for an in-memory baseline.
func (e *Engine) BytesFingerprints(baseline []byte) (FingerprintList, error) {
	return e.fingerprints(bytes.NewReader(baseline), int64(len(baseline)), "")
}

func (e *Engine) fingerprints(baseline io.Reader, size int64, path string) (FingerprintList, error) {
	// Verify that the chunk size is sane and that the baseline is large enough.
	if e.chunkSize == 0 {
		return FingerprintList{}, errors.New("chunk size must be non-zero")
	} else if err := ensureTwoChunks(size, e.chunkSize, path); err != nil {
		return FingerprintList{}, err
	}

	// Create the result.
	chunkCount := uint64(size) / e.chunkSize
	if uint64(size)%e.chunkSize != 0 {
		chunkCount++
	}
	result := FingerprintList{
		ChunkSize:    e.chunkSize,
		Fingerprints: make([]Fingerprint, 0, chunkCount),
		weak:         make([]uint32, 0, chunkCount),
	}

	// Create a buffer with which to read chunks.
	buffer := e.bufferWithSize(e.chunkSize)

	// Read chunks and append their hashes until we reach EOF. If we receive
	// io.EOF, then nothing was read and the baseline was a multiple of the
	// chunk size, so there's no trailing chunk. If we receive
	// io.ErrUnexpectedEOF, then a short final chunk was read and needs to be
	// hashed.
	eof := false
	for !eof {
		n, err := io.ReadFull(baseline, buffer)
		if err == io.EOF {
			result.LastChunkSize = e.chunkSize
			break
		} else if err == io.ErrUnexpectedEOF {
			result.LastChunkSize = uint64(n)
			eof = true
		} else if err != nil {
			return FingerprintList{}, &IOError{Op: "read", Path: path, Err: err}
		}

		// Hash the chunk. Short chunks still use the full chunk size for the
		// weak hash so that it remains consistent with the alignment scan.
		weak, _, _ := weakHash(buffer[:n], e.chunkSize)
		result.Fingerprints = append(result.Fingerprints, fingerprint(buffer[:n]))
		result.weak = append(result.weak, weak)
	}

	// If the reader delivered less data than promised, then we may not have
	// anything to show for it.
	if len(result.Fingerprints) == 0 {
		return FingerprintList{}, &IOError{Op: "read", Path: path, Err: io.ErrUnexpectedEOF}
	}

	// Log.
	e.logger.Debugf("Computed %d fingerprints (chunk size %d, last chunk size %d)",
		len(result.Fingerprints), result.ChunkSize, result.LastChunkSize,
	)

	// Success.
	return result, nil
}

// DeltaFile computes the delta of the file at the specified path against the
// specified baseline fingerprint list. The file is closed before this method
// returns.
func (e *Engine) DeltaFile(list FingerprintList, path string) (*Delta, error) {
	// Open the target and defer its closure.
	file, size, err := e.openSized(path)
	if err != nil {
		return nil, err
	}
	defer must.Close(file, e.logger)

	// Perform alignment.
	return e.delta(list, file, size, path)
}

// Delta computes the delta of a target of the specified size against the
// specified baseline fingerprint list.
func (e *Engine) Delta(list FingerprintList, target io.Reader, size int64) (*Delta, error) {
	return e.delta(list, target, size, "")
}

// DeltaBytes computes the delta of an in-memory target against the specified
// baseline fingerprint list.
func (e *Engine) DeltaBytes(list FingerprintList, target []byte) (*Delta, error) {
	return e.delta(list, bytes.NewReader(target), int64(len(target)), "")
}

func (e *Engine) delta(list FingerprintList, target io.Reader, size int64, path string) (*Delta, error) {
	// Verify that the fingerprint list is sane. We don't necessarily control
	// its value, and if its invariants are broken it can cause this method to
	// behave strangely. Then verify that the target is large enough, using the
	// list's chunk size rather than our own.
	if err := list.EnsureValid(); err != nil {
		return nil, errors.Wrap(err, "invalid fingerprint list")
	} else if err = ensureTwoChunks(size, list.ChunkSize, path); err != nil {
		return nil, err
	}
	chunkSize := list.ChunkSize

	// Ensure that the target implements io.Reader and io.ByteReader. If it
	// can't do this natively, wrap it in our re-usable buffered reader, but
	// ensure that it is released when we're done so that we don't retain it
	// indefinitely.
	bufferedTarget, ok := target.(dualModeReader)
	if !ok {
		e.targetReader.Reset(target)
		bufferedTarget = e.targetReader
		defer func() {
			e.targetReader.Reset(nil)
		}()
	}

	// Create lookup tables. The weak filter lets us skip fingerprinting for
	// windows that can't possibly match. It's nil for lists that weren't
	// computed by an engine.
	positions := NewPositionIndex(list)
	filter := weakFilter(list)

	// Create the scan state. The window holds at most one chunk's worth of
	// data, problem bytes accumulate the bytes evicted from the window since
	// the last match, and the weak hash tracks the window contents once it's
	// full.
	window := make([]byte, 0, chunkSize)
	var problemBytes []byte
	var weak, r1, r2 uint32
	var scanned uint64
	chunks := make(DeltaMap)

	// Loop over the contents of the target one byte at a time.
	for {
		// Read the next byte.
		b, err := bufferedTarget.ReadByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, &IOError{Op: "read", Path: path, Err: err}
		}
		scanned++

		// If the window isn't full, then append the byte and only proceed once
		// it becomes full. Otherwise slide the window forward by one byte,
		// evicting the oldest byte into the problem bytes.
		if uint64(len(window)) < chunkSize {
			window = append(window, b)
			if uint64(len(window)) < chunkSize {
				continue
			}
			weak, r1, r2 = weakHash(window, chunkSize)
		} else {
			out := window[0]
			problemBytes = append(problemBytes, out)
			copy(window, window[1:])
			window[chunkSize-1] = b
			weak, r1, r2 = rollWeakHash(r1, r2, out, b, chunkSize)
		}

		// Look for a chunk matching the window.
		if filter != nil && !filter[weak] {
			continue
		}
		index, ok := positions[fingerprint(window)]
		if !ok {
			continue
		}

		// Record the match, overwriting any previous match for the same index,
		// and start a fresh alignment attempt.
		var snapshot []byte
		if len(problemBytes) > 0 {
			snapshot = make([]byte, len(problemBytes))
			copy(snapshot, problemBytes)
		}
		if _, exists := chunks[index]; exists {
			e.logger.Tracef("Chunk %d matched again at offset %d, overwriting", index, scanned-chunkSize)
		}
		chunks[index] = newChunk(index, chunkSize, true, snapshot)
		e.logger.Tracef("Chunk %d matched at offset %d after %d problem bytes",
			index, scanned-chunkSize, len(snapshot),
		)
		window = window[:0]
		problemBytes = problemBytes[:0]
	}

	// Any bytes left over at the end of the stream are discarded.
	if leftover := len(window) + len(problemBytes); leftover > 0 {
		e.logger.Debugf("Discarding %d unmatched trailing bytes", leftover)
	}

	// Ensure that every baseline chunk has an entry.
	matched := len(chunks)
	FillGaps(chunks, list.Len(), chunkSize)
	e.logger.Debugf("Located %d of %d chunks in %d target bytes", matched, list.Len(), scanned)

	// Success.
	return &Delta{
		ChunkSize:  chunkSize,
		TargetSize: scanned,
		Chunks:     chunks,
	}, nil
}

// BuildFingerprints computes the fingerprint list for the file at the specified
// path using the specified chunk size.
func BuildFingerprints(path string, chunkSize uint64) (FingerprintList, error) {
	return NewEngine(chunkSize, nil).FingerprintFile(path)
}

// ComputeDelta computes the delta of the file at the specified path against the
// specified baseline fingerprint list.
func ComputeDelta(list FingerprintList, path string) (*Delta, error) {
	return NewEngine(list.ChunkSize, nil).DeltaFile(list, path)
}
