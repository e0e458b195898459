// Package parser decodes bencode from a byte stream into a value tree.
//
// The parser is recursive descent over a forward-only reader with one byte of
// lookahead, so it works on pipes and sockets as well as buffers, and it only
// consumes the bytes of the value it decodes. Nesting depth is bounded by the
// configuration so hostile input cannot exhaust the stack.
//
// A *T holds only its configuration, it can be used from many goroutines at
// once on independent inputs.
package parser

import (
	"bytes"
	"io"
	"math/big"

	"bencode.lol/berr"
	"bencode.lol/config"
	"bencode.lol/ints"
	"bencode.lol/log"
	"bencode.lol/reader"
	"bencode.lol/value"
)

// T is a bencode parser.
type T struct {
	cfg config.C
}

// New makes a parser with the given configuration, nil meaning
// config.Default. The configuration is copied.
func New(cfg *config.C) (p *T, err error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err = cfg.Validate(); err != nil {
		return
	}
	p = &T{cfg: *cfg}
	return
}

// Must is New that panics on an invalid configuration.
func Must(cfg *config.C) *T {
	p, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return p
}

// Config returns a copy of the parser configuration.
func (p *T) Config() config.C { return p.cfg }

// Parse decodes one value from src. Only the bytes of that value are
// consumed, apart from what src itself buffers. On failure no partial tree is
// returned.
func (p *T) Parse(src io.Reader) (v value.V, err error) {
	if src == nil {
		err = berr.Argumentf("nil source")
		return
	}
	return p.decode(reader.New(src))
}

// ParseBytes decodes one value from the start of b and returns what follows
// it. With RejectTrailing set, anything following is malformed.
func (p *T) ParseBytes(b []byte) (v value.V, rem []byte, err error) {
	r := reader.New(bytes.NewReader(b))
	if v, err = p.decode(r); err != nil {
		return
	}
	rem = b[r.Offset():]
	if p.cfg.RejectTrailing && len(rem) > 0 {
		err = berr.Malformedf(r.Offset(), "%d trailing bytes after value", len(rem))
		v, rem = nil, nil
	}
	return
}

// ParseAs decodes one value from src and narrows it to the variant N.
func ParseAs[N value.Variant](p *T, src io.Reader) (n N, err error) {
	var v value.V
	if v, err = p.Parse(src); err != nil {
		return
	}
	return value.As[N](v)
}

// Parse decodes one value from src with the given configuration, nil meaning
// config.Default.
func Parse(src io.Reader, cfg *config.C) (v value.V, err error) {
	var p *T
	if p, err = New(cfg); err != nil {
		return
	}
	return p.Parse(src)
}

func (p *T) decode(r *reader.T) (v value.V, err error) {
	if v, err = p.value(r, 0); err != nil {
		// the variant parsers return typed nil pointers on failure
		v = nil
		log.D.F("bencode decode failed: %v", err)
	}
	return
}

func (p *T) value(r *reader.T, depth int) (v value.V, err error) {
	var c byte
	if c, err = r.Peek(); err != nil {
		return
	}
	switch {
	case ints.IsDigit(c):
		return p.bytes(r)
	case c == 'i':
		return p.integer(r)
	case c == 'l':
		return p.list(r, depth+1)
	case c == 'd':
		return p.dict(r, depth+1)
	}
	err = berr.Malformedf(r.Offset(), "unexpected byte %q where a value should start", c)
	return
}

func (p *T) bytes(r *reader.T) (s *value.Bytes, err error) {
	start := r.Offset()
	var digits []byte
	if digits, err = r.ReadUntil(':', p.cfg.MaxLengthDigits); err != nil {
		return
	}
	var n ints.T
	var rem []byte
	if rem, err = n.Unmarshal(digits); err != nil || n.Neg || len(rem) > 0 {
		err = berr.Malformedf(start, "invalid byte string length %q", digits)
		return
	}
	var b []byte
	if b, err = r.ReadFull(int(n.N)); err != nil {
		return
	}
	s = &value.Bytes{B: b}
	return
}

func (p *T) integer(r *reader.T) (i *value.Int, err error) {
	start := r.Offset()
	if _, err = r.ReadByte(); err != nil {
		return
	}
	var digits []byte
	// one more for the sign, the digit count is checked below
	if digits, err = r.ReadUntil('e', p.cfg.MaxIntDigits+1); err != nil {
		return
	}
	if err = p.checkInteger(digits, start); err != nil {
		return
	}
	var n ints.T
	if _, err = n.Unmarshal(digits); err == nil {
		if small, fits := n.Int64(); fits {
			return value.NewInt(small), nil
		}
	}
	bi, ok := new(big.Int).SetString(string(digits), 10)
	if !ok {
		err = berr.Malformedf(start, "invalid integer %q", digits)
		return
	}
	return value.NewBigInt(bi), nil
}

// checkInteger validates the lexical form of the text between i and e.
func (p *T) checkInteger(digits []byte, start int64) (err error) {
	mag := digits
	if len(mag) > 0 && mag[0] == '-' {
		mag = mag[1:]
	}
	if len(mag) == 0 {
		return berr.Malformedf(start, "integer has no digits")
	}
	for _, c := range mag {
		if !ints.IsDigit(c) {
			return berr.Malformedf(start, "invalid integer %q", digits)
		}
	}
	if len(mag) > p.cfg.MaxIntDigits {
		return berr.Malformedf(start, "integer has more than %d digits", p.cfg.MaxIntDigits)
	}
	if p.cfg.IntegerForm == config.Relaxed {
		return
	}
	if len(mag) > 1 && mag[0] == '0' {
		return berr.Malformedf(start, "integer %q has a leading zero", digits)
	}
	if len(mag) < len(digits) && mag[0] == '0' {
		return berr.Malformedf(start, "negative zero")
	}
	return
}

func (p *T) checkDepth(r *reader.T, depth int) error {
	if depth > p.cfg.MaxDepth {
		return berr.Malformedf(r.Offset(), "nesting deeper than %d", p.cfg.MaxDepth)
	}
	return nil
}

func (p *T) list(r *reader.T, depth int) (l *value.List, err error) {
	if err = p.checkDepth(r, depth); err != nil {
		return
	}
	if _, err = r.ReadByte(); err != nil {
		return
	}
	l = value.NewList()
	var c byte
	for {
		if c, err = r.Peek(); err != nil {
			l = nil
			return
		}
		if c == 'e' {
			_, _ = r.ReadByte()
			return
		}
		var v value.V
		if v, err = p.value(r, depth); err != nil {
			l = nil
			return
		}
		l.Append(v)
	}
}

func (p *T) dict(r *reader.T, depth int) (d *value.Dict, err error) {
	if err = p.checkDepth(r, depth); err != nil {
		return
	}
	if _, err = r.ReadByte(); err != nil {
		return
	}
	d = value.NewDict()
	var prev []byte
	var c byte
	for {
		if c, err = r.Peek(); err != nil {
			d = nil
			return
		}
		if c == 'e' {
			_, _ = r.ReadByte()
			return
		}
		if !ints.IsDigit(c) {
			err = berr.Malformedf(r.Offset(), "dictionary key must be a byte string, got %q", c)
			d = nil
			return
		}
		at := r.Offset()
		var key *value.Bytes
		if key, err = p.bytes(r); err != nil {
			d = nil
			return
		}
		if d.Has(string(key.B)) && p.cfg.DuplicateKeys == config.Strict {
			err = berr.Malformedf(at, "duplicate dictionary key %q", key.B)
			d = nil
			return
		}
		if prev != nil && p.cfg.KeyOrder == config.Strict && bytes.Compare(prev, key.B) > 0 {
			err = berr.Malformedf(at, "dictionary key %q out of order after %q", key.B, prev)
			d = nil
			return
		}
		prev = key.B
		var v value.V
		if v, err = p.value(r, depth); err != nil {
			d = nil
			return
		}
		d.SetBytes(key.B, v)
	}
}
