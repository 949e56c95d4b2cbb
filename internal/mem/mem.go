// Package mem provides small buffer helpers shared by the catfish packages.
package mem

// XORInPlace sets dst[i] ^= src[i] for each i. Panics if len(src) < len(dst).
//
// Adapted from the teacher's generic (non-assembly) fallback: Catfish's
// per-digest state is a single N/8-byte buffer, far too small to justify the
// teacher's per-architecture AVX/NEON variants.
func XORInPlace(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// Zero overwrites b with zeros. Used to scrub secret-dependent scratch state
// (the memory vector V and the working state x) before it is released.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// SliceForAppend takes a slice and a requested number of bytes. It returns a
// slice with the contents of the given slice followed by that many bytes and
// a second slice that aliases the tail of the first, ready to be written
// into — the same dst-reuse idiom thyrse.go uses for Derive/Seal.
func SliceForAppend(in []byte, n int) (head, tail []byte) {
	if total := len(in) + n; cap(in) >= total {
		head = in[:total]
	} else {
		head = make([]byte, total)
		copy(head, in)
	}
	tail = head[len(in):]
	return
}
