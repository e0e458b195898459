package value

import (
	"bencode.lol/berr"
	"bencode.lol/textenc"
)

// NullPolicy decides what a typed lookup of a missing dictionary key does.
type NullPolicy int

const (
	// NullAbsent returns the zero value and no error for a missing key.
	NullAbsent NullPolicy = iota
	// NullFail makes a missing key an invalid cast.
	NullFail
)

func kindOf[T Variant]() Kind {
	var t T
	return t.Kind()
}

func describe(v V) string {
	if v == nil {
		return "nothing"
	}
	return v.Kind().String()
}

// As narrows v to one of the four concrete variants.
func As[T Variant](v V) (t T, err error) {
	var ok bool
	if t, ok = v.(T); !ok {
		err = berr.Castf("want %s, got %s", kindOf[T](), describe(v))
	}
	return
}

// Lookup returns the value under key narrowed to T. A present value of the
// wrong variant is always an error; a missing key is governed by policy.
func Lookup[T Variant](d *Dict, key string, policy NullPolicy) (t T, err error) {
	v, ok := d.Get(key)
	if !ok {
		if policy == NullFail {
			err = berr.Castf("missing key %q, want %s", key, kindOf[T]())
		}
		return
	}
	if t, err = As[T](v); err != nil {
		err = berr.Wrap(err, "key "+key)
	}
	return
}

// At returns element i of l narrowed to T.
func At[T Variant](l *List, i int) (t T, err error) {
	if i < 0 || i >= l.Len() {
		err = berr.Argumentf("index %d out of range for list of %d", i, l.Len())
		return
	}
	return As[T](l.elems[i])
}

// Homogeneous converts a whole list to a slice of one variant, failing on the
// first element of another.
func Homogeneous[T Variant](l *List) (s []T, err error) {
	s = make([]T, l.Len())
	for i := range s {
		if s[i], err = As[T](l.elems[i]); err != nil {
			err = berr.Castf("element %d: want %s, got %s", i, kindOf[T](), describe(l.elems[i]))
			s = nil
			return
		}
	}
	return
}

// ListOf narrows v to a list whose elements are all T.
func ListOf[T Variant](v V) (s []T, err error) {
	var l *List
	if l, err = As[*List](v); err != nil {
		return
	}
	return Homogeneous[T](l)
}

// DictOf narrows v to a dictionary whose values are all T, keyed by the raw
// key bytes.
func DictOf[T Variant](v V) (m map[string]T, err error) {
	var d *Dict
	if d, err = As[*Dict](v); err != nil {
		return
	}
	m = make(map[string]T, d.Len())
	if d == nil {
		return
	}
	for _, e := range d.entries {
		var t T
		if t, err = As[T](e.Value); err != nil {
			err = berr.Castf("key %q: want %s, got %s", e.Key, kindOf[T](), describe(e.Value))
			m = nil
			return
		}
		m[string(e.Key)] = t
	}
	return
}

// Int64 narrows v to an integer that fits in an int64.
func Int64(v V) (n int64, err error) {
	var i *Int
	if i, err = As[*Int](v); err != nil {
		return
	}
	if !i.IsInt64() {
		err = berr.Castf("integer %s does not fit in int64", i)
		return
	}
	return i.Int64(), nil
}

// Text narrows v to a byte string and renders it in enc, nil meaning UTF-8.
func Text(v V, enc *textenc.T) (s string, err error) {
	var b *Bytes
	if b, err = As[*Bytes](v); err != nil {
		return
	}
	return b.Text(enc)
}

func (p NullPolicy) String() string {
	if p == NullFail {
		return "fail"
	}
	return "absent"
}

// UnmarshalText reads "absent" or "fail", for configuration loading.
func (p *NullPolicy) UnmarshalText(b []byte) error {
	switch string(b) {
	case "absent", "":
		*p = NullAbsent
	case "fail":
		*p = NullFail
	default:
		return berr.Argumentf("unknown null policy %q, want absent or fail", b)
	}
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (p NullPolicy) MarshalText() ([]byte, error) { return []byte(p.String()), nil }
