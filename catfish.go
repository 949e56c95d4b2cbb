// Package catfish implements the Catfish memory-hard password-hashing
// function: a sponge-based mixing step layered with modular exponentiation
// in a large multiplicative group, tunable along time (tcost) and memory
// (mcost) cost axes.
//
// The package's surface is deliberately narrow — Params, New, and the
// Engine's Digest/HexDigest methods — mirroring the teacher's
// github.com/codahale/thyrse/schemes/basic/mhf package: a pure function of
// (parameters, salt, password) with no on-disk state, no streaming, and no
// parameter generation of its own. Parameter loading, salt sourcing, and
// test-vector I/O live in sibling packages (paramfile, testvectors) and the
// cmd/catfish driver.
package catfish

import (
	"fmt"
	"math/big"

	"github.com/bsdphk/PHC/hazmat/expmod"
	"github.com/bsdphk/PHC/hazmat/keccak"
	"github.com/bsdphk/PHC/internal/codec"
	"github.com/bsdphk/PHC/internal/mem"
)

const (
	// keccakRateBytes/keccakCapBytes fix the rate=1024/capacity=576-bit
	// Keccak parameterization every Engine uses, independent of the working
	// block width N.
	keccakRateBytes = 128
	keccakCapBytes  = 72

	saltLen        = 16
	maxPasswordLen = 128
	lengthFieldLen = 16 // le_u128(bitlen(password))

	defaultTCost = 1
	defaultMCost = 1024
	defaultHSize = 256
	minHSize     = 96
)

// Params is the immutable, construction-time parameter set for an Engine.
// Zero-valued TCost, MCost, and HSize are replaced with their documented
// defaults (1, 1024, 256 respectively) by New.
type Params struct {
	// G is the group generator; must satisfy 1 < G < Modulus.
	G *big.Int
	// Modulus is the group modulus n; bitlen(Modulus) must not exceed
	// BlockBits.
	Modulus *big.Int
	// BlockBits is the working block width N, in bits; must be a multiple
	// of 8 and at least bitlen(Modulus).
	BlockBits int
	// TCost is the number of outer rounds. Default 1.
	TCost int
	// MCost is the length of the per-round memory vector. Default 1024.
	MCost int
	// HSize is the output tag size, in bits. Default 256, minimum 96.
	HSize int
	// P, Q are the optional prime factors of Modulus. When both are set
	// and P*Q == Modulus, the Engine uses the CRT fast exponentiation
	// path instead of direct modular exponentiation.
	P, Q *big.Int
}

// Engine is a validated, immutable Catfish instance. An Engine holds no
// mutable state and is safe for concurrent use by multiple goroutines
// running independent digests.
type Engine struct {
	g          *big.Int
	blockBits  int
	blockBytes int
	tcost      int
	mcost      int
	hsize      int
	tagBytes   int
	exp        *expmod.Exponentiator
}

// New validates p and returns a ready-to-use Engine, or a parameter error if
// any precondition in p is violated.
func New(p Params) (*Engine, error) {
	if p.G == nil || p.Modulus == nil {
		return nil, fmt.Errorf("catfish: G and Modulus are required")
	}
	if p.G.Cmp(big.NewInt(1)) <= 0 || p.G.Cmp(p.Modulus) >= 0 {
		return nil, fmt.Errorf("catfish: G must satisfy 1 < G < Modulus")
	}
	if p.BlockBits <= 0 || p.BlockBits%8 != 0 {
		return nil, fmt.Errorf("catfish: BlockBits must be a positive multiple of 8")
	}
	if p.Modulus.BitLen() > p.BlockBits {
		return nil, fmt.Errorf("catfish: bitlen(Modulus) exceeds BlockBits")
	}

	tcost := p.TCost
	if tcost == 0 {
		tcost = defaultTCost
	}
	if tcost <= 0 {
		return nil, fmt.Errorf("catfish: TCost must be > 0")
	}

	mcost := p.MCost
	if mcost == 0 {
		mcost = defaultMCost
	}
	if mcost <= 0 {
		return nil, fmt.Errorf("catfish: MCost must be > 0")
	}

	hsize := p.HSize
	if hsize == 0 {
		hsize = defaultHSize
	}
	if hsize < minHSize {
		return nil, fmt.Errorf("catfish: HSize must be >= %d", minHSize)
	}

	var exp *expmod.Exponentiator
	if p.P != nil && p.Q != nil {
		n := new(big.Int).Mul(p.P, p.Q)
		if n.Cmp(p.Modulus) != 0 {
			return nil, fmt.Errorf("catfish: P*Q != Modulus")
		}
		exp = expmod.NewCRT(p.P, p.Q)
	} else {
		exp = expmod.New(p.Modulus)
	}

	return &Engine{
		g:          new(big.Int).Set(p.G),
		blockBits:  p.BlockBits,
		blockBytes: p.BlockBits / 8,
		tcost:      tcost,
		mcost:      mcost,
		hsize:      hsize,
		tagBytes:   (hsize + 7) / 8,
		exp:        exp,
	}, nil
}

// HasCRT reports whether e uses the Chinese Remainder Theorem fast
// exponentiation path.
func (e *Engine) HasCRT() bool {
	return e.exp.HasCRT()
}

// Digest computes the Catfish tag for (salt, password) and appends it to
// dst, returning the resulting slice. salt must be exactly 16 bytes;
// password must be at most 128 bytes.
func (e *Engine) Digest(dst, salt, password []byte) ([]byte, error) {
	if len(salt) != saltLen {
		return nil, fmt.Errorf("catfish: salt must be %d bytes, got %d", saltLen, len(salt))
	}
	if len(password) > maxPasswordLen {
		return nil, fmt.Errorf("catfish: password must be at most %d bytes, got %d", maxPasswordLen, len(password))
	}

	x := e.initialState(salt, password)
	ctr := uint64(0)

	// step replaces x with H(x), scrubbing the buffer it replaces.
	step := func() {
		next := e.h(x)
		mem.Zero(x)
		x = next
	}

	for round := 0; round < e.tcost; round++ {
		step()

		v := make([][]byte, e.mcost)

		// Fill pass: write V sequentially.
		for j := 0; j < e.mcost; j++ {
			v[j] = append([]byte(nil), x...)
			ctr++
			e.xorCounter(x, ctr)
			step()
		}

		// Mix pass: read V at a data-dependent index derived from x.
		for j := 0; j < e.mcost; j++ {
			k := int(new(big.Int).Mod(codec.BytesToInt(x), big.NewInt(int64(e.mcost))).Int64())
			mem.XORInPlace(x, v[k])
			ctr++
			e.xorCounter(x, ctr)
			step()
		}

		for _, vj := range v {
			mem.Zero(vj)
		}
		ctr++ // separator increment between outer rounds
	}

	e.xorCounter(x, ctr)
	tag := keccak.Sum(x, keccakRateBytes, e.tagBytes)
	mem.Zero(x)

	head, tail := mem.SliceForAppend(dst, len(tag))
	copy(tail, tag)
	return head, nil
}

// HexDigest is Digest, hex-encoded.
func (e *Engine) HexDigest(salt, password []byte) (string, error) {
	tag, err := e.Digest(nil, salt, password)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", tag), nil
}

// initialState builds the 16-byte-salt ∥ 16-byte-password-bitlen ∥
// 128-byte-padded-password buffer spec.md §4.5 describes, zero-padded on the
// right to e.blockBytes when that exceeds the natural 160-byte layout.
//
// Per the reference's own documented ambiguity (spec.md §9): when
// e.blockBytes is smaller than 160 (e.g. the reference's N=1024, giving 128
// bytes), this 160-byte buffer is still the literal input to the first H
// call — H's internal Keccak absorbs input of any length — and only H's
// *output* is constrained to e.blockBytes. The len(x) == N/8 invariant holds
// from that first H call onward, not before it.
func (e *Engine) initialState(salt, password []byte) []byte {
	total := saltLen + lengthFieldLen + maxPasswordLen
	if e.blockBytes > total {
		total = e.blockBytes
	}

	x := make([]byte, total)
	copy(x, salt)

	bitlen, err := codec.IntToBytes(big.NewInt(int64(len(password)*8)), lengthFieldLen)
	if err != nil {
		panic(fmt.Sprintf("catfish: password bit length does not fit %d bytes: %v", lengthFieldLen, err))
	}
	copy(x[saltLen:], bitlen)

	copy(x[saltLen+lengthFieldLen:], password)
	return x
}

// xorCounter XORs the little-endian encoding of ctr (padded to e.blockBytes)
// into x in place.
func (e *Engine) xorCounter(x []byte, ctr uint64) {
	enc, err := codec.IntToBytes(new(big.Int).SetUint64(ctr), e.blockBytes)
	if err != nil {
		panic(fmt.Sprintf("catfish: counter %d overflowed block width: %v", ctr, err))
	}
	mem.XORInPlace(x, enc)
}

// h is the mixing function of spec.md §4.4: one Keccak absorb/squeeze
// followed by one modular exponentiation. It is the cost center of the
// whole construction — every call performs exactly one expmod.Exponentiator.Exp.
func (e *Engine) h(state []byte) []byte {
	digest := keccak.Sum(state, keccakRateBytes, e.blockBytes)
	k := codec.BytesToInt(digest)
	y := e.exp.Exp(e.g, k)

	out, err := codec.IntToBytes(y, e.blockBytes)
	if err != nil {
		// y = g^k mod Modulus < Modulus, and bitlen(Modulus) <= BlockBits was
		// checked at construction, so this can only happen if the
		// exponentiator's modulus and e.blockBytes have gone out of sync —
		// an internal arithmetic inconsistency, not a recoverable input error.
		panic(fmt.Sprintf("catfish: H produced an out-of-range value: %v", err))
	}
	return out
}
