package value

import (
	"bytes"

	"bencode.lol/ints"
	"bencode.lol/textenc"
)

// Bytes is a bencode byte string. The content is opaque and need not be valid
// text in any encoding; its length is always len(Bytes.B).
type Bytes struct {
	B []byte
}

// NewBytes makes a Bytes from a string or byte slice. A byte slice is copied
// so the caller can keep using it.
func NewBytes[S string | []byte](s S) *Bytes {
	return &Bytes{B: append([]byte(nil), s...)}
}

// NewText makes a Bytes holding text converted into the given encoding.
func NewText(s string, enc *textenc.T) (b *Bytes, err error) {
	if enc == nil {
		enc = textenc.UTF8
	}
	var raw []byte
	if raw, err = enc.Strict(s); err != nil {
		return
	}
	b = &Bytes{B: raw}
	return
}

func (s *Bytes) Kind() Kind { return BytesKind }
func (s *Bytes) sealed()    {}

// Len is the length of the byte string in bytes.
func (s *Bytes) Len() int { return len(s.B) }

func (s *Bytes) Equal(o V) bool {
	ob, ok := o.(*Bytes)
	return ok && bytes.Equal(s.B, ob.B)
}

func (s *Bytes) Marshal(dst []byte) (b []byte) {
	b = ints.New(len(s.B)).Marshal(dst)
	b = append(b, ':')
	b = append(b, s.B...)
	return
}

func (s *Bytes) Clone() V { return NewBytes(s.B) }

// Text renders the byte string for display in the given encoding, nil meaning
// UTF-8. It fails if the bytes are not valid text in that encoding.
func (s *Bytes) Text(enc *textenc.T) (string, error) {
	if enc == nil {
		enc = textenc.UTF8
	}
	return enc.Decode(s.B)
}

// String is the raw bytes as a Go string, without any decoding.
func (s *Bytes) String() string { return string(s.B) }

// Compare orders byte strings by raw byte value, as dictionary keys are
// ordered.
func (s *Bytes) Compare(o *Bytes) int { return bytes.Compare(s.B, o.B) }
