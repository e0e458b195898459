package ints

import (
	"math"
	"strconv"
	"testing"

	"lukechampine.com/frand"

	"bencode.lol/chk"
)

func TestMarshalUnmarshal(t *testing.T) {
	b := make([]byte, 0, 21)
	var rem []byte
	var err error
	for range 100000 {
		v := int64(frand.Uint64n(math.MaxUint64))
		n := New(v)
		b = n.Marshal(b)
		if string(b) != strconv.FormatInt(v, 10) {
			t.Fatalf("got %s want %d", b, v)
		}
		m := New(0)
		if rem, err = m.Unmarshal(b); chk.E(err) {
			t.Fatal(err)
		}
		got, ok := m.Int64()
		if !ok || got != v {
			t.Fatalf("failed to convert to int64 at %d %s %d", v, b, got)
		}
		if len(rem) > 0 {
			t.Fatalf("leftover bytes after converting back: '%s'", rem)
		}
		b = b[:0]
	}
}

func TestEdges(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 9, 10, 9999, 10000, -10000, 1e16, math.MaxInt64, math.MinInt64} {
		if got := string(New(v).Marshal(nil)); got != strconv.FormatInt(v, 10) {
			t.Fatalf("got %s want %d", got, v)
		}
	}
	if got := string(New(uint64(math.MaxUint64)).Marshal(nil)); got != "18446744073709551615" {
		t.Fatalf("got %s", got)
	}
}

func TestUnmarshalErrors(t *testing.T) {
	var n T
	if _, err := n.Unmarshal([]byte("-e")); err != ErrNoDigits {
		t.Fatalf("expected ErrNoDigits, got %v", err)
	}
	if _, err := n.Unmarshal([]byte("18446744073709551616e")); err != ErrOverflow {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
	rem, err := n.Unmarshal([]byte("-0e"))
	if err != nil || string(rem) != "e" || n.Neg || n.N != 0 {
		t.Fatalf("unexpected result %v %q %+v", err, rem, n)
	}
	if _, ok := (&T{N: math.MaxInt64 + 1, Neg: true}).Int64(); !ok {
		t.Fatal("min int64 should fit")
	}
	if _, ok := (&T{N: math.MaxInt64 + 1}).Int64(); ok {
		t.Fatal("max int64 + 1 should not fit")
	}
}

func BenchmarkByteStringToInt64(bb *testing.B) {
	b := make([]byte, 0, 21)
	const nTests = 10000
	testInts := make([]*T, nTests)
	for i := range nTests {
		testInts[i] = New(int64(frand.Uint64n(math.MaxUint64)))
	}
	bb.Run("Marshal", func(bb *testing.B) {
		bb.ReportAllocs()
		for i := 0; i < bb.N; i++ {
			b = testInts[i%nTests].Marshal(b)
			b = b[:0]
		}
	})
	bb.Run("FormatInt", func(bb *testing.B) {
		bb.ReportAllocs()
		for i := 0; i < bb.N; i++ {
			v, _ := testInts[i%nTests].Int64()
			_ = strconv.FormatInt(v, 10)
		}
	})
	bb.Run("MarshalUnmarshal", func(bb *testing.B) {
		bb.ReportAllocs()
		m := New(0)
		for i := 0; i < bb.N; i++ {
			b = testInts[i%nTests].Marshal(b)
			_, _ = m.Unmarshal(b)
			b = b[:0]
		}
	})
}
