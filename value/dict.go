package value

import (
	"bytes"
	"slices"

	"bencode.lol/berr"
)

// Entry is one key/value pair of a Dict.
type Entry struct {
	Key   []byte
	Value V
}

// Dict maps byte string keys to values. Keys are unique: setting an existing
// key replaces its value in place. The dictionary remembers insertion order
// for the caller's benefit, but encodes in ascending raw byte order of keys.
type Dict struct {
	entries []Entry
	index   map[string]int
}

// NewDict makes an empty Dict.
func NewDict() *Dict { return &Dict{index: make(map[string]int)} }

func (d *Dict) Kind() Kind { return DictKind }
func (d *Dict) sealed()    {}

// Len returns the number of entries.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Set stores v under key, replacing any previous value. A nil value is a
// programming error and panics.
func (d *Dict) Set(key string, v V) *Dict { return d.SetBytes([]byte(key), v) }

// SetBytes is Set with a byte slice key, which is copied.
func (d *Dict) SetBytes(key []byte, v V) *Dict {
	if v == nil {
		panic(berr.Argumentf("nil value for dictionary key %q", key))
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	if i, ok := d.index[string(key)]; ok {
		d.entries[i].Value = v
		return d
	}
	d.index[string(key)] = len(d.entries)
	d.entries = append(d.entries, Entry{Key: append([]byte(nil), key...), Value: v})
	return d
}

// Has reports whether key is present.
func (d *Dict) Has(key string) (ok bool) {
	if d == nil {
		return
	}
	_, ok = d.index[key]
	return
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (v V, ok bool) {
	if d == nil {
		return
	}
	var i int
	if i, ok = d.index[key]; ok {
		v = d.entries[i].Value
	}
	return
}

// Delete removes key, reporting whether it was present. The order of the
// remaining entries is unchanged.
func (d *Dict) Delete(key string) bool {
	i, ok := d.index[key]
	if !ok {
		return false
	}
	d.entries = slices.Delete(d.entries, i, i+1)
	delete(d.index, key)
	for j := i; j < len(d.entries); j++ {
		d.index[string(d.entries[j].Key)] = j
	}
	return true
}

// Entries returns the entries in insertion order. The slice and the keys are
// copies, the values are shared.
func (d *Dict) Entries() (s []Entry) {
	if d == nil {
		return
	}
	s = make([]Entry, len(d.entries))
	for i, e := range d.entries {
		s[i] = Entry{Key: bytes.Clone(e.Key), Value: e.Value}
	}
	return
}

// Sorted returns the entries in ascending raw byte order of key, the order
// they are encoded in. The dictionary itself is not reordered.
func (d *Dict) Sorted() (s []Entry) {
	s = d.Entries()
	slices.SortFunc(s, func(a, b Entry) int { return bytes.Compare(a.Key, b.Key) })
	return
}

// sorted is Sorted without copying the keys, for encoding.
func (d *Dict) sorted() (s []Entry) {
	s = slices.Clone(d.entries)
	slices.SortFunc(s, func(a, b Entry) int { return bytes.Compare(a.Key, b.Key) })
	return
}

// Keys returns copies of the keys in insertion order.
func (d *Dict) Keys() (k [][]byte) {
	if d == nil {
		return
	}
	k = make([][]byte, len(d.entries))
	for i := range d.entries {
		k[i] = bytes.Clone(d.entries[i].Key)
	}
	return
}

// SortedKeys returns the keys in encoding order.
func (d *Dict) SortedKeys() (k [][]byte) {
	k = d.Keys()
	slices.SortFunc(k, bytes.Compare)
	return
}

func (d *Dict) Equal(o V) bool {
	od, ok := o.(*Dict)
	if !ok || od.Len() != d.Len() {
		return false
	}
	for _, e := range d.entries {
		ov, found := od.Get(string(e.Key))
		if !found || !Equal(e.Value, ov) {
			return false
		}
	}
	return true
}

func (d *Dict) Marshal(dst []byte) (b []byte) {
	b = append(dst, 'd')
	sorted := d.sorted()
	for i, e := range sorted {
		if i > 0 && bytes.Equal(sorted[i-1].Key, e.Key) {
			panic(berr.Argumentf("duplicate dictionary key %q", e.Key))
		}
		b = (&Bytes{B: e.Key}).Marshal(b)
		b = e.Value.Marshal(b)
	}
	b = append(b, 'e')
	return
}

func (d *Dict) Clone() V {
	c := &Dict{entries: make([]Entry, 0, len(d.entries)), index: make(map[string]int, len(d.entries))}
	for _, e := range d.entries {
		c.SetBytes(e.Key, e.Value.Clone())
	}
	return c
}
