// Package hex renders binary byte strings as hexadecimal for display, using a
// SIMD accelerated codec for the bulk work.
package hex

import (
	"encoding/hex"

	"github.com/templexxx/xhex"

	"bencode.lol/berr"
)

// Enc is the hexadecimal string of b.
func Enc(b []byte) string { return string(EncAppend(nil, b)) }

// EncAppend appends the hexadecimal form of src to dst.
func EncAppend(dst, src []byte) (b []byte) {
	l := len(dst)
	b = append(dst, make([]byte, len(src)*2)...)
	xhex.Encode(b[l:], src)
	return
}

// DecAppend appends the bytes encoded by the hexadecimal src to dst.
func DecAppend(dst, src []byte) (b []byte, err error) {
	if len(src)%2 != 0 {
		err = berr.Argumentf("odd length hex %q", src)
		return
	}
	l := len(dst)
	b = append(dst, make([]byte, len(src)/2)...)
	if err = xhex.Decode(b[l:], src); err != nil {
		// xhex does not say where, the standard library does
		_, err = hex.Decode(b[l:], src)
		err = berr.Argumentf("invalid hex: %s", err)
		b = b[:l]
	}
	return
}
