package delta

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInsufficientData indicates that a file is too small to contain at least
// two (possibly partial) chunks, i.e. that it's not at least one byte larger
// than the chunk size.
var ErrInsufficientData = errors.New("insufficient data for two chunks")

// IOError indicates that a file could not be opened or read. It carries the
// underlying operating system error.
type IOError struct {
	// Op is the operation that failed, e.g. "open" or "read".
	Op string
	// Path is the path of the file being processed. It may be empty if data
	// was provided through a reader.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements error.Error.
func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("unable to %s data: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("unable to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Cause returns the underlying error for github.com/pkg/errors.Cause.
func (e *IOError) Cause() error {
	return e.Err
}

// ensureTwoChunks verifies that a file of the specified size contains at least
// two chunks of the specified size (the second of which may be partial).
func ensureTwoChunks(size int64, chunkSize uint64, path string) error {
	if size < 1 || uint64(size)-1 < chunkSize {
		if path == "" {
			return errors.Wrapf(ErrInsufficientData, "%d bytes with chunk size %d", size, chunkSize)
		}
		return errors.Wrapf(ErrInsufficientData, "file %s (%d bytes) with chunk size %d", path, size, chunkSize)
	}
	return nil
}
