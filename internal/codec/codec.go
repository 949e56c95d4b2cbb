// Package codec converts between unsigned integers and fixed-width
// little-endian byte strings, as spec.md §4.1 requires.
package codec

import (
	"fmt"
	"math/big"
)

// IntToBytes encodes v as exactly width bytes, little-endian. It fails if v
// is negative or v >= 2^(8*width) — the value would not fit in width bytes
// without truncation.
func IntToBytes(v *big.Int, width int) ([]byte, error) {
	if v.Sign() < 0 {
		return nil, fmt.Errorf("codec: value %s is negative", v)
	}

	limit := new(big.Int).Lsh(big.NewInt(1), uint(8*width))
	if v.Cmp(limit) >= 0 {
		return nil, fmt.Errorf("codec: value %s does not fit in %d bytes", v, width)
	}

	be := v.FillBytes(make([]byte, width))
	reverse(be)
	return be, nil
}

// BytesToInt interprets buf as a little-endian unsigned integer.
func BytesToInt(buf []byte) *big.Int {
	le := make([]byte, len(buf))
	copy(le, buf)
	reverse(le)
	return new(big.Int).SetBytes(le)
}

// reverse reverses b in place.
func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
