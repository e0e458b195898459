// Package ints is an optimised codec for signed decimal integers in ASCII
// form, as used in bencode integers and byte string length prefixes. It is
// faster than strconv in part because it encodes with a base of 10000 and a
// lookup table, and it decodes straight from a byte slice without the string
// conversion strconv needs.
package ints

import (
	_ "embed"
	"errors"
	"math"

	"golang.org/x/exp/constraints"
)

// run this from the package directory to regenerate the base 10 array of 4
// places per entry
//go:generate go run ./gen/.

//go:embed base10k.txt
var base10k []byte

var (
	// ErrNoDigits is returned when a number has no decimal digits.
	ErrNoDigits = errors.New("no digits in number")
	// ErrOverflow is returned when the magnitude does not fit in 64 bits.
	ErrOverflow = errors.New("number overflows 64 bits")
)

// T is a signed decimal integer stored as a magnitude and a sign, so that the
// full uint64 range is representable as well as the negative int64 range.
type T struct {
	N   uint64
	Neg bool
}

// New creates an ints.T from any integer type.
func New[V constraints.Integer](n V) *T {
	if n < 0 {
		// two's complement negation of the widened value is exact for the
		// minimum of every signed type
		return &T{N: uint64(-int64(n)), Neg: true}
	}
	return &T{N: uint64(n)}
}

// Uint64 returns the magnitude.
func (n *T) Uint64() uint64 { return n.N }

// Int64 returns the value as an int64 and whether it fits.
func (n *T) Int64() (i int64, ok bool) {
	if n.Neg {
		if n.N > math.MaxInt64+1 {
			return 0, false
		}
		return -int64(n.N), true
	}
	if n.N > math.MaxInt64 {
		return 0, false
	}
	return int64(n.N), true
}

var powers = []uint64{
	1,
	1_0000,
	1_0000_0000,
	1_0000_0000_0000,
	1_0000_0000_0000_0000,
}

const zero = '0'
const nine = '9'

// Marshal appends the decimal form of n to dst. Zero is always rendered
// without a sign.
func (n *T) Marshal(dst []byte) (b []byte) {
	b = dst
	if n.N == 0 {
		b = append(b, zero)
		return
	}
	if n.Neg {
		b = append(b, '-')
	}
	rem := n.N
	var trimmed bool
	for k := len(powers) - 1; k >= 0; k-- {
		q := rem / powers[k]
		if !trimmed && q == 0 {
			continue
		}
		offset := q * 4
		bb := base10k[offset : offset+4]
		if !trimmed {
			for i := range bb {
				if bb[i] != zero {
					bb = bb[i:]
					break
				}
			}
			trimmed = true
		}
		b = append(b, bb...)
		rem -= q * powers[k]
	}
	return
}

// IsDigit reports whether c is an ASCII decimal digit.
func IsDigit(c byte) bool { return c >= zero && c <= nine }

// Unmarshal reads an optional minus sign followed by a run of decimal digits
// from the start of b and returns whatever follows the digits. Leading zeros
// are accepted here, the caller decides whether they are canonical.
//
// ErrOverflow is returned if the magnitude exceeds math.MaxUint64, in which
// case n is left unchanged and the caller can fall back to math/big.
func (n *T) Unmarshal(b []byte) (r []byte, err error) {
	var neg bool
	if len(b) > 0 && b[0] == '-' {
		neg = true
		b = b[1:]
	}
	var sLen int
	for ; sLen < len(b) && IsDigit(b[sLen]); sLen++ {
	}
	if sLen == 0 {
		err = ErrNoDigits
		return
	}
	var v uint64
	for _, ch := range b[:sLen] {
		d := uint64(ch - zero)
		if v > (math.MaxUint64-d)/10 {
			err = ErrOverflow
			return
		}
		v = v*10 + d
	}
	n.N, n.Neg = v, neg && v != 0
	r = b[sLen:]
	return
}
