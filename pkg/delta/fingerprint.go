package delta

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/zeebo/xxh3"
)

// fingerprintSeed is the seed used for XXH3 fingerprint computation. It must
// never change, otherwise fingerprint lists computed by different versions
// won't be comparable.
const fingerprintSeed = 0

// Fingerprint is a 128-bit XXH3 digest of a chunk's contents. Fingerprint
// equality is treated as chunk content equality.
type Fingerprint struct {
	// Hi is the high 64 bits of the digest.
	Hi uint64
	// Lo is the low 64 bits of the digest.
	Lo uint64
}

// fingerprint computes the fingerprint of the specified data.
func fingerprint(data []byte) Fingerprint {
	return Fingerprint(xxh3.Hash128Seed(data, fingerprintSeed))
}

// String provides a hexadecimal representation of the fingerprint.
func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x%016x", f.Hi, f.Lo)
}

// FingerprintList is the ordered list of chunk fingerprints for a baseline
// file, one per chunk in file order. The final chunk may be shorter than the
// chunk size, in which case its fingerprint covers only the remaining bytes
// (recorded by LastChunkSize), even though chunk offsets elsewhere are always
// computed assuming a uniform chunk size.
type FingerprintList struct {
	// ChunkSize is the chunk size used to compute the list.
	ChunkSize uint64
	// LastChunkSize is the size of the last chunk in the list.
	LastChunkSize uint64
	// Fingerprints are the fingerprints of the chunks in the baseline.
	Fingerprints []Fingerprint
	// weak are the rolling checksums of the chunks, parallel to Fingerprints.
	// They're only populated by Engine and only used to filter candidate
	// windows. Lists constructed elsewhere are aligned without filtering.
	weak []uint32
}

// Len returns the number of chunks in the list.
func (l FingerprintList) Len() int {
	return len(l.Fingerprints)
}

// EnsureValid verifies that fingerprint list invariants are respected.
func (l FingerprintList) EnsureValid() error {
	if l.ChunkSize == 0 {
		return errors.New("fingerprint list with chunk size of 0")
	} else if len(l.Fingerprints) == 0 {
		return errors.New("fingerprint list with no chunk hashes")
	} else if l.LastChunkSize == 0 {
		return errors.New("fingerprint list with last chunk size of 0")
	} else if l.LastChunkSize > l.ChunkSize {
		return errors.New("last chunk size greater than chunk size")
	}
	return nil
}

// PositionIndex maps fingerprints to baseline chunk indices. If several chunks
// share a fingerprint, only the last of them is reachable.
type PositionIndex map[Fingerprint]int

// NewPositionIndex builds a position index from a fingerprint list. Insertion
// is unconditional, so the last chunk with a given fingerprint wins.
func NewPositionIndex(list FingerprintList) PositionIndex {
	result := make(PositionIndex, len(list.Fingerprints))
	for i, f := range list.Fingerprints {
		result[f] = i
	}
	return result
}

// weakFilter returns the set of weak hashes present in a fingerprint list. It
// returns nil if the list doesn't carry a weak hash for every fingerprint, in
// which case every window must be fingerprinted.
func weakFilter(list FingerprintList) map[uint32]bool {
	if len(list.weak) != len(list.Fingerprints) {
		return nil
	}
	result := make(map[uint32]bool, len(list.weak))
	for _, w := range list.weak {
		result[w] = true
	}
	return result
}
