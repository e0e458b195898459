// Package encoder writes value trees in canonical bencode: integers in
// minimal decimal form, byte strings with their exact length, and
// dictionaries with keys in ascending raw byte order whatever order they were
// inserted in. Equal trees always encode to identical bytes.
package encoder

import (
	"io"

	"golang.org/x/crypto/blake2b"

	"bencode.lol/value"
)

// Encode returns the canonical encoding of v.
func Encode(v value.V) []byte { return Append(nil, v) }

// Append appends the canonical encoding of v to dst.
func Append(dst []byte, v value.V) []byte {
	if v == nil {
		panic("bencode: encoding a nil value")
	}
	return v.Marshal(dst)
}

// Write writes the canonical encoding of v to w. The only possible error is
// one from w.
func Write(w io.Writer, v value.V) (err error) {
	_, err = w.Write(Encode(v))
	return
}

// T writes a sequence of values to one writer, reusing its buffer.
type T struct {
	w   io.Writer
	buf []byte
}

// New makes an encoder writing to w.
func New(w io.Writer) *T { return &T{w: w} }

// Encode writes the canonical encoding of v.
func (e *T) Encode(v value.V) (err error) {
	e.buf = Append(e.buf[:0], v)
	_, err = e.w.Write(e.buf)
	return
}

// HashSize is the size of a Hash.
const HashSize = blake2b.Size256

// Hash is the BLAKE2b-256 digest of the canonical encoding of v. Values that
// are Equal have the same hash.
func Hash(v value.V) [HashSize]byte { return blake2b.Sum256(Encode(v)) }
