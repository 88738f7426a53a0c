// Package testutil provides deterministic payload patterns for allocator
// tests: every block is filled from a seed and can be re-derived later to
// prove the allocator never corrupted it.
package testutil

import "github.com/cespare/xxhash/v2"

// next advances an xorshift64* state. Deterministic, cheap, and good enough
// to make byte-level corruption visible.
func next(s uint64) uint64 {
	s ^= s >> 12
	s ^= s << 25
	s ^= s >> 27
	return s * 0x2545F4914F6CDD1D
}

// Fill writes the pseudo-random byte sequence for seed into b.
func Fill(b []byte, seed uint64) {
	s := seed | 1
	for i := range b {
		s = next(s)
		b[i] = byte(s)
	}
}

// Matches reports whether b still holds the sequence Fill wrote for seed.
func Matches(b []byte, seed uint64) bool {
	s := seed | 1
	for i := range b {
		s = next(s)
		if b[i] != byte(s) {
			return false
		}
	}
	return true
}

// Fingerprint condenses b into a 64-bit content hash for cheap identity
// assertions across relocations.
func Fingerprint(b []byte) uint64 {
	return xxhash.Sum64(b)
}
