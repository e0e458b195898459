package value

import (
	"math/big"

	"golang.org/x/exp/constraints"

	"bencode.lol/ints"
)

// Int is a bencode integer. The format puts no limit on digit count, so
// values that do not fit in an int64 are held as a big.Int and round-trip
// losslessly.
type Int struct {
	small int64
	big   *big.Int // nil unless the value is outside the int64 range
}

// NewInt makes an Int from any Go integer type.
func NewInt[V constraints.Integer](n V) (i *Int) {
	i = &Int{}
	if n < 0 {
		i.small = int64(n)
		return
	}
	u := uint64(n)
	if u > 1<<63-1 {
		i.big = new(big.Int).SetUint64(u)
		return
	}
	i.small = int64(u)
	return
}

// NewBigInt makes an Int from a big.Int, which is copied.
func NewBigInt(n *big.Int) (i *Int) {
	i = &Int{}
	if n.IsInt64() {
		i.small = n.Int64()
		return
	}
	i.big = new(big.Int).Set(n)
	return
}

func (i *Int) Kind() Kind { return IntKind }
func (i *Int) sealed()    {}

// IsInt64 reports whether the value fits in an int64.
func (i *Int) IsInt64() bool { return i.big == nil }

// Int64 returns the value, which is only meaningful if IsInt64 is true.
func (i *Int) Int64() int64 { return i.small }

// Big returns the value as a new big.Int.
func (i *Int) Big() *big.Int {
	if i.big != nil {
		return new(big.Int).Set(i.big)
	}
	return big.NewInt(i.small)
}

// Sign returns -1, 0 or +1.
func (i *Int) Sign() int {
	if i.big != nil {
		return i.big.Sign()
	}
	switch {
	case i.small < 0:
		return -1
	case i.small > 0:
		return 1
	}
	return 0
}

func (i *Int) Equal(o V) bool {
	oi, ok := o.(*Int)
	if !ok {
		return false
	}
	if i.big == nil && oi.big == nil {
		return i.small == oi.small
	}
	return i.Big().Cmp(oi.Big()) == 0
}

func (i *Int) Marshal(dst []byte) (b []byte) {
	b = append(dst, 'i')
	if i.big != nil {
		b = i.big.Append(b, 10)
	} else {
		b = ints.New(i.small).Marshal(b)
	}
	b = append(b, 'e')
	return
}

func (i *Int) Clone() V {
	if i.big != nil {
		return &Int{big: new(big.Int).Set(i.big)}
	}
	return &Int{small: i.small}
}

func (i *Int) String() string {
	if i.big != nil {
		return i.big.String()
	}
	return string(ints.New(i.small).Marshal(nil))
}
