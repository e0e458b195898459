// Package tests provides tools to generate arbitrary random value trees for
// fuzz testing the parser and encoder.
package tests

import (
	"math/big"

	"lukechampine.com/frand"

	"bencode.lol/value"
)

// NewRNG is a deterministic source, so a failing tree can be reproduced from
// the seed.
func NewRNG(seed string) *frand.RNG {
	s := make([]byte, 32)
	copy(s, seed)
	return frand.NewCustom(s, 1024, 12)
}

// GenerateTree creates a random value nested at most maxDepth lists or
// dictionaries deep. Byte strings are arbitrary binary, integers cover the
// int64 range and occasionally go beyond it.
func GenerateTree(src *frand.RNG, maxDepth int) value.V {
	k := src.Intn(4)
	if maxDepth <= 0 {
		k %= 2
	}
	switch k {
	case 0:
		return GenerateInt(src)
	case 1:
		return value.NewBytes(src.Bytes(src.Intn(32)))
	case 2:
		n := src.Intn(6)
		l := value.NewListWithCap(n)
		for range n {
			l.Append(GenerateTree(src, maxDepth-1))
		}
		return l
	default:
		n := src.Intn(6)
		d := value.NewDict()
		for range n {
			d.SetBytes(src.Bytes(src.Intn(8)), GenerateTree(src, maxDepth-1))
		}
		return d
	}
}

// GenerateInt creates a random integer, one in sixteen outside the int64
// range.
func GenerateInt(src *frand.RNG) *value.Int {
	n := int64(src.Uint64n(1<<63)) - int64(src.Uint64n(1<<63))
	if src.Intn(16) == 0 {
		b := new(big.Int).SetInt64(n)
		b.Mul(b, big.NewInt(1<<62))
		b.Mul(b, big.NewInt(1<<62))
		return value.NewBigInt(b)
	}
	return value.NewInt(n)
}
