// Package keccak implements a Keccak[r,c] sponge with an arbitrary
// rate/capacity split and an arbitrary squeeze length, over the standard
// 24-round Keccak-f[1600] permutation.
//
// spec.md §4.2 calls for Keccak with rate r = 1024 bits (128 bytes) and
// capacity c = 576 bits (72 bytes) — a parameterization none of the published
// Go Keccak/SHA-3 packages expose (they fix rate to one of the NIST SHA-3/
// SHAKE values, or to TurboSHAKE's 168-byte rate over the reduced 12-round
// Keccak-p[1600,12]). This package supplies the standard, full 24-round
// permutation instead and a sponge construction generic over rate, modeled on
// the teacher's github.com/codahale/thyrse/hazmat/turboshake.Hasher (absorb
// via Write, finalize-and-squeeze via Read) but with the plain Keccak
// pad10*1 domain separator (0x01) the original submission — and the
// catfish.py reference this module is grounded on — uses, rather than
// SHA-3's 0x06 or TurboSHAKE's customizable byte.
package keccak

import "encoding/binary"

// MaxRate is the exclusive upper bound on the rate: the full 200-byte state.
// A legal rate is at most MaxRate-1 bytes, leaving a non-empty capacity.
const MaxRate = 200

// Sponge is an incremental Keccak[r, 1600-8r] instance. Writes absorb data;
// the first Read finalizes absorption (pad10*1 with the given domain
// separator) and every Read squeezes further output.
type Sponge struct {
	state     [200]byte
	rate      int
	pos       int
	ds        byte
	squeezing bool
}

// NewSponge returns a Sponge with the given rate (in bytes) and domain
// separation byte. rateBytes must be in [1, MaxRate).
func NewSponge(rateBytes int, ds byte) *Sponge {
	if rateBytes <= 0 || rateBytes >= MaxRate {
		panic("keccak: rate out of range")
	}
	return &Sponge{rate: rateBytes, ds: ds}
}

// Write absorbs p into the sponge. It must not be called after Read.
func (s *Sponge) Write(p []byte) (int, error) {
	if s.squeezing {
		panic("keccak: Write after Read")
	}
	n := len(p)
	for len(p) > 0 {
		w := min(s.rate-s.pos, len(p))
		for i := 0; i < w; i++ {
			s.state[s.pos+i] ^= p[i]
		}
		s.pos += w
		p = p[w:]
		if s.pos == s.rate {
			permute(&s.state)
			s.pos = 0
		}
	}
	return n, nil
}

// Read squeezes len(p) bytes of output. The first call finalizes absorption.
func (s *Sponge) Read(p []byte) (int, error) {
	if !s.squeezing {
		s.state[s.pos] ^= s.ds
		s.state[s.rate-1] ^= 0x80
		permute(&s.state)
		s.pos = 0
		s.squeezing = true
	}
	n := len(p)
	for len(p) > 0 {
		if s.pos == s.rate {
			permute(&s.state)
			s.pos = 0
		}
		r := copy(p, s.state[s.pos:s.rate])
		s.pos += r
		p = p[r:]
	}
	return n, nil
}

// dsKeccak is the plain Keccak pad10*1 domain separator (as opposed to
// SHA-3's 0x06 or SHAKE's 0x1F) — the separator the catfish.py reference's
// bundled Keccak implementation uses.
const dsKeccak = 0x01

// Sum computes Keccak[rateBytes, 1600-8*rateBytes](msg) and returns outBytes
// bytes of output, absorbing the full message in one call (the core never
// streams its Keccak input — spec.md §4.2).
func Sum(msg []byte, rateBytes, outBytes int) []byte {
	s := NewSponge(rateBytes, dsKeccak)
	_, _ = s.Write(msg)
	out := make([]byte, outBytes)
	_, _ = s.Read(out)
	return out
}

// permute applies the standard 24-round Keccak-f[1600] permutation to the
// 200-byte state, encoded as 25 little-endian 64-bit lanes in row-major
// (x + 5y) order.
func permute(state *[200]byte) {
	var a [25]uint64
	for i := range a {
		a[i] = binary.LittleEndian.Uint64(state[i*8:])
	}

	keccakF1600(&a)

	for i := range a {
		binary.LittleEndian.PutUint64(state[i*8:], a[i])
	}
}

func keccakF1600(a *[25]uint64) {
	var c, d [5]uint64
	var b [25]uint64

	for round := 0; round < 24; round++ {
		// θ
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d[x] = c[(x+4)%5] ^ rotl(c[(x+1)%5], 1)
		}
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] ^= d[x]
			}
		}

		// ρ and π
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				b[y+5*((2*x+3*y)%5)] = rotl(a[x+5*y], rotationOffsets[x][y])
			}
		}

		// χ
		for x := 0; x < 5; x++ {
			for y := 0; y < 5; y++ {
				a[x+5*y] = b[x+5*y] ^ (^b[(x+1)%5+5*y] & b[(x+2)%5+5*y])
			}
		}

		// ι
		a[0] ^= roundConstants[round]
	}
}

func rotl(x uint64, n uint) uint64 {
	return (x << n) | (x >> (64 - n))
}

// rotationOffsets[x][y] is the standard Keccak rho-offset table.
var rotationOffsets = [5][5]uint{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

// roundConstants are the 24 Keccak-f[1600] round constants.
var roundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}
