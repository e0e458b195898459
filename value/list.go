package value

import (
	"golang.org/x/exp/constraints"

	"bencode.lol/textenc"
)

// List is an ordered sequence of values. Order is significant and is never
// changed by any operation other than the caller's own edits.
type List struct {
	elems []V
}

// NewList makes a List holding the given values, in order.
func NewList(elems ...V) *List {
	return &List{elems: append(make([]V, 0, len(elems)), elems...)}
}

// NewListWithCap makes an empty List with room for c elements.
func NewListWithCap[I constraints.Integer](c I) *List { return &List{elems: make([]V, 0, c)} }

func (l *List) Kind() Kind { return ListKind }
func (l *List) sealed()    {}

// Len returns the number of elements.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.elems)
}

// Append adds values to the end of the list.
func (l *List) Append(v ...V) *List {
	l.elems = append(l.elems, v...)
	return l
}

// At returns element i, or nil if i is out of range.
func (l *List) At(i int) V {
	if i < 0 || i >= l.Len() {
		return nil
	}
	return l.elems[i]
}

// Values returns the elements. The slice is shared with the list.
func (l *List) Values() []V { return l.elems }

func (l *List) Equal(o V) bool {
	ol, ok := o.(*List)
	if !ok || ol.Len() != l.Len() {
		return false
	}
	for i := range l.elems {
		if !Equal(l.elems[i], ol.elems[i]) {
			return false
		}
	}
	return true
}

func (l *List) Marshal(dst []byte) (b []byte) {
	b = append(dst, 'l')
	for _, v := range l.elems {
		b = v.Marshal(b)
	}
	b = append(b, 'e')
	return
}

func (l *List) Clone() V {
	c := NewListWithCap(len(l.elems))
	for _, v := range l.elems {
		c.elems = append(c.elems, v.Clone())
	}
	return c
}

// Strings renders every element as display text in the given encoding. All
// elements must be byte strings holding valid text.
func (l *List) Strings(enc *textenc.T) (s []string, err error) {
	var bs []*Bytes
	if bs, err = Homogeneous[*Bytes](l); err != nil {
		return
	}
	s = make([]string, len(bs))
	for i, b := range bs {
		if s[i], err = b.Text(enc); err != nil {
			s = nil
			return
		}
	}
	return
}
