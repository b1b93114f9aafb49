// Package delta computes content-based deltas between a baseline and a target
// file. The baseline is partitioned into fixed-size chunks and fingerprinted,
// and the target is then scanned byte-by-byte, testing the trailing window at
// every offset against the baseline fingerprints in order to recover chunk
// alignment. The result is a total map from baseline chunk index to the state
// of that chunk in the target, including any unmatched bytes that preceded
// each recovered match. Delta functionality is provided by the Engine type.
package delta
