package value

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bencode.lol/berr"
	"bencode.lol/textenc"
)

func TestListOrderSensitive(t *testing.T) {
	a, b := NewBytes("a"), NewInt(1)
	assert.True(t, NewList(a, b).Equal(NewList(a, b)))
	assert.False(t, NewList(a, b).Equal(NewList(b, a)))
	assert.False(t, NewList(a).Equal(NewList(a, a)))
	assert.False(t, NewList().Equal(NewDict()))
	assert.True(t, NewList().Equal(NewList()))
}

func TestDictOrderInsensitive(t *testing.T) {
	d1 := NewDict().Set("b", NewInt(2)).Set("a", NewInt(1))
	d2 := NewDict().Set("a", NewInt(1)).Set("b", NewInt(2))
	assert.True(t, d1.Equal(d2))
	assert.Equal(t, [][]byte{[]byte("b"), []byte("a")}, d1.Keys())
	assert.Equal(t, [][]byte{[]byte("a"), []byte("b")}, d1.SortedKeys())
	// sorting for output does not disturb insertion order
	_ = d1.Marshal(nil)
	assert.Equal(t, [][]byte{[]byte("b"), []byte("a")}, d1.Keys())

	d2.Set("b", NewInt(3))
	assert.False(t, d1.Equal(d2))
}

func TestDictLastWriteWins(t *testing.T) {
	d := NewDict().Set("k", NewInt(1)).Set("x", NewInt(0)).Set("k", NewInt(2))
	assert.Equal(t, 2, d.Len())
	v, ok := d.Get("k")
	require.True(t, ok)
	assert.True(t, v.Equal(NewInt(2)))
	// the replaced key keeps its position
	assert.Equal(t, []byte("k"), d.Keys()[0])

	assert.True(t, d.Delete("k"))
	assert.False(t, d.Delete("k"))
	assert.False(t, d.Has("k"))
	v, ok = d.Get("x")
	require.True(t, ok)
	assert.True(t, v.Equal(NewInt(0)))
}

func TestDictKeysAreCopies(t *testing.T) {
	d := NewDict().Set("a", NewInt(1)).Set("b", NewInt(2))
	d.Keys()[0][0] = 'b'
	d.SortedKeys()[0][0] = 'b'
	d.Entries()[0].Key[0] = 'b'
	d.Sorted()[0].Key[0] = 'b'
	assert.Equal(t, "d1:ai1e1:bi2ee", string(d.Marshal(nil)))
	assert.True(t, d.Has("a"))
	assert.True(t, d.Equal(NewDict().Set("b", NewInt(2)).Set("a", NewInt(1))))
}

func TestDictNilValuePanics(t *testing.T) {
	assert.Panics(t, func() { NewDict().Set("k", nil) })
}

func TestIntRange(t *testing.T) {
	assert.True(t, NewInt(uint64(math.MaxUint64)).Equal(NewBigInt(new(big.Int).SetUint64(math.MaxUint64))))
	assert.False(t, NewInt(uint64(math.MaxUint64)).IsInt64())
	assert.True(t, NewInt(int64(math.MinInt64)).IsInt64())
	assert.True(t, NewBigInt(big.NewInt(7)).IsInt64())
	assert.Equal(t, "i-9223372036854775808e", string(NewInt(int64(math.MinInt64)).Marshal(nil)))
	assert.Equal(t, "i18446744073709551615e", string(NewInt(uint64(math.MaxUint64)).Marshal(nil)))
	assert.Equal(t, "i0e", string(NewInt(0).Marshal(nil)))
	assert.Equal(t, -1, NewInt(-5).Sign())
	assert.False(t, NewInt(1).Equal(NewBytes("1")))
}

func TestBytes(t *testing.T) {
	raw := []byte{0xff, 0x00, 'a'}
	b := NewBytes(raw)
	raw[0] = 0
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, byte(0xff), b.B[0])
	assert.Equal(t, "3:\xff\x00a", string(b.Marshal(nil)))
	_, err := b.Text(nil)
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))

	latin := textenc.Must("latin1")
	s, err := NewBytes([]byte{'n', 0xe9}).Text(latin)
	require.NoError(t, err)
	assert.Equal(t, "né", s)

	nb, err := NewText("né", latin)
	require.NoError(t, err)
	assert.Equal(t, []byte{'n', 0xe9}, nb.B)
	// the display encoding never affects equality, only the bytes do
	assert.False(t, nb.Equal(NewBytes("né")))
}

func TestClone(t *testing.T) {
	orig := NewList(NewInt(1), NewDict().Set("k", NewList(NewBytes("v"))))
	c := orig.Clone()
	assert.True(t, orig.Equal(c))
	c.(*List).Append(NewInt(2))
	assert.False(t, orig.Equal(c))
	assert.Equal(t, 2, orig.Len())
}

func TestAs(t *testing.T) {
	var v V = NewInt(5)
	i, err := As[*Int](v)
	require.NoError(t, err)
	assert.Equal(t, int64(5), i.Int64())

	_, err = As[*Bytes](v)
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))
	_, err = As[*List](nil)
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))
}

func TestLookup(t *testing.T) {
	d := NewDict().Set("name", NewBytes("x")).Set("size", NewInt(3))

	name, err := Lookup[*Bytes](d, "name", NullAbsent)
	require.NoError(t, err)
	assert.Equal(t, "x", name.String())

	_, err = Lookup[*Int](d, "name", NullAbsent)
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))

	missing, err := Lookup[*Int](d, "nope", NullAbsent)
	assert.NoError(t, err)
	assert.Nil(t, missing)

	_, err = Lookup[*Int](d, "nope", NullFail)
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))
}

func TestListAccess(t *testing.T) {
	l := NewList(NewInt(1), NewInt(2), NewBytes("three"))
	two, err := At[*Int](l, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), two.Int64())
	_, err = At[*Int](l, 2)
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))
	_, err = At[*Int](l, 3)
	assert.True(t, errors.Is(err, berr.ErrInvalidArgument))
	assert.Nil(t, l.At(-1))

	_, err = Homogeneous[*Int](l)
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))
	is, err := Homogeneous[*Int](NewList(NewInt(1), NewInt(2)))
	require.NoError(t, err)
	assert.Len(t, is, 2)

	_, err = l.Strings(nil)
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))
	ss, err := NewList(NewBytes("a"), NewBytes("b")).Strings(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ss)
}

func TestListOfDictOf(t *testing.T) {
	ls, err := ListOf[*Bytes](NewList(NewBytes("a")))
	require.NoError(t, err)
	assert.Len(t, ls, 1)
	_, err = ListOf[*Bytes](NewDict())
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))

	m, err := DictOf[*Int](NewDict().Set("a", NewInt(1)).Set("b", NewInt(2)))
	require.NoError(t, err)
	assert.Len(t, m, 2)
	assert.Equal(t, int64(2), m["b"].Int64())
	_, err = DictOf[*Int](NewDict().Set("a", NewBytes("1")))
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))

	var nd *Dict
	m, err = DictOf[*Int](nd)
	require.NoError(t, err)
	assert.Empty(t, m)
	assert.Nil(t, nd.Keys())
	assert.Nil(t, nd.Entries())
}

func TestScalarNarrowing(t *testing.T) {
	n, err := Int64(NewInt(-4))
	require.NoError(t, err)
	assert.Equal(t, int64(-4), n)
	_, err = Int64(NewInt(uint64(math.MaxUint64)))
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))

	s, err := Text(NewBytes("hi"), nil)
	require.NoError(t, err)
	assert.Equal(t, "hi", s)
	_, err = Text(NewInt(1), nil)
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))
}

func TestNullPolicyText(t *testing.T) {
	var p NullPolicy
	require.NoError(t, p.UnmarshalText([]byte("fail")))
	assert.Equal(t, NullFail, p)
	b, _ := p.MarshalText()
	assert.Equal(t, "fail", string(b))
	assert.Error(t, p.UnmarshalText([]byte("maybe")))
}
