// Package filesystem provides atomic file writes and the locations of files
// used by chunkdiff.
package filesystem
