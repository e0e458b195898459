// Package textenc resolves named text encodings used to render bencode byte
// strings for display. Byte strings are always stored raw, an encoding only
// ever affects how they are shown, or how display text is turned into bytes
// when a caller builds a value from text.
package textenc

import (
	"strings"
	"unicode/utf8"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"bencode.lol/berr"
)

// T is a resolved text encoding.
type T struct {
	name string
	enc  encoding.Encoding
	// utf8 decoders in x/text substitute U+FFFD for invalid input, so for
	// UTF-8 validity is checked separately to report undecodable bytes.
	utf8 bool
}

// UTF8 is the default display encoding.
var UTF8 = &T{name: "utf-8", enc: unicode.UTF8, utf8: true}

var cache = xsync.NewMapOf[string, *T]()

func init() { cache.Store(UTF8.name, UTF8) }

// Lookup returns the encoding with the given WHATWG name or label, such as
// "utf-8", "latin1", "windows-1252" or "shift_jis". An empty name is UTF-8.
func Lookup(name string) (t *T, err error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return UTF8, nil
	}
	var ok bool
	if t, ok = cache.Load(key); ok {
		return
	}
	var enc encoding.Encoding
	if enc, err = htmlindex.Get(key); err != nil {
		err = berr.Argumentf("unknown text encoding %q", name)
		return
	}
	canonical, _ := htmlindex.Name(enc)
	t = &T{name: canonical, enc: enc, utf8: canonical == "utf-8"}
	if t.utf8 {
		t = UTF8
	}
	t, _ = cache.LoadOrStore(key, t)
	return
}

// Must is Lookup that panics on an unknown name, for package level variables.
func Must(name string) *T {
	t, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Name is the canonical WHATWG name of the encoding.
func (t *T) Name() string { return t.name }

func (t *T) String() string { return t.name }

// Decode renders raw bytes as text. It fails if the bytes are not valid in
// the encoding; the bytes are never modified.
func (t *T) Decode(b []byte) (s string, err error) {
	if t.utf8 {
		if !utf8.Valid(b) {
			err = berr.Castf("byte string is not valid %s", t.name)
			return
		}
		return string(b), nil
	}
	var out []byte
	if out, err = t.enc.NewDecoder().Bytes(b); err != nil {
		err = berr.Castf("byte string is not valid %s: %s", t.name, err)
		return
	}
	s = string(out)
	return
}

// Encode converts display text into raw bytes in this encoding. Runes the
// encoding has no form for are replaced.
func (t *T) Encode(s string) (b []byte, err error) {
	if t.utf8 {
		return []byte(s), nil
	}
	if b, err = encoding.ReplaceUnsupported(t.enc.NewEncoder()).Bytes([]byte(s)); err != nil {
		err = berr.Argumentf("text cannot be encoded as %s: %s", t.name, err)
	}
	return
}

// Strict is Encode, except that runes the encoding cannot represent are an
// error rather than being substituted.
func (t *T) Strict(s string) (b []byte, err error) {
	if t.utf8 {
		if !utf8.ValidString(s) {
			err = berr.Argumentf("text is not valid utf-8")
			return
		}
		return []byte(s), nil
	}
	if b, err = t.enc.NewEncoder().Bytes([]byte(s)); err != nil {
		err = berr.Argumentf("text cannot be encoded as %s: %s", t.name, err)
	}
	return
}
