// Package value is the in-memory form of bencode data: a closed set of four
// variants, Int, Bytes, List and Dict, all satisfying V.
//
// A tree built by the parser is never mutated by later decoding. Trees built
// by hand stay mutable until they are handed to the encoder; each List and
// Dict owns its children exclusively, there is no sharing and no cycles.
package value

import (
	"fmt"
)

// Kind names the variant of a V.
type Kind byte

const (
	IntKind Kind = iota + 1
	BytesKind
	ListKind
	DictKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "integer"
	case BytesKind:
		return "byte string"
	case ListKind:
		return "list"
	case DictKind:
		return "dictionary"
	}
	return fmt.Sprintf("kind(%d)", byte(k))
}

// V is any bencode value. The set of implementations is closed, it is
// exactly *Int, *Bytes, *List and *Dict.
type V interface {
	// Kind returns which of the four variants this is.
	Kind() Kind
	// Equal compares structurally: lists are order sensitive, dictionaries
	// are not.
	Equal(o V) bool
	// Marshal appends the canonical bencode form to dst.
	Marshal(dst []byte) (b []byte)
	// Clone makes a deep copy.
	Clone() V

	sealed()
}

// Variant is the constraint satisfied by the four concrete pointer types,
// for the generic narrowing helpers.
type Variant interface {
	*Int | *Bytes | *List | *Dict
	V
}

// Equal compares two values that may be nil.
func Equal(a, b V) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}
