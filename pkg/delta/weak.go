package delta

const (
	// m is the weak hash modulus. It must be a power of two for rolling updates
	// using wrapping uint32 arithmetic to agree with full recomputation.
	m = 1 << 16
)

// weakHash computes the rsync rolling checksum (see page 55 of Andrew
// Tridgell's thesis) for a window of data. It returns the hash along with its
// two components, which are required for rolling updates.
func weakHash(data []byte, chunkSize uint64) (uint32, uint32, uint32) {
	// Compute hash components.
	var r1, r2 uint32
	for i, b := range data {
		r1 += uint32(b)
		r2 += (uint32(chunkSize) - uint32(i)) * uint32(b)
	}
	r1 = r1 % m
	r2 = r2 % m

	// Done.
	return r1 + m*r2, r1, r2
}

// rollWeakHash updates a checksum computed by weakHash by removing the oldest
// byte of the window and appending a new one.
func rollWeakHash(r1, r2 uint32, out, in byte, chunkSize uint64) (uint32, uint32, uint32) {
	// Update components.
	r1 = (r1 - uint32(out) + uint32(in)) % m
	r2 = (r2 - uint32(chunkSize)*uint32(out) + r1) % m

	// Done.
	return r1 + m*r2, r1, r2
}
