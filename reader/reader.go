// Package reader is a forward-only cursor over a byte source with a single
// byte of lookahead, tracking the absolute offset so decode errors can say
// where they happened. It never seeks, so it works over network streams and
// pipes as well as in-memory buffers.
package reader

import (
	"io"

	"github.com/pkg/errors"

	"bencode.lol/berr"
)

// chunk is the most a single ReadFull call will allocate ahead of data
// actually arriving, so a length prefix that lies about a huge payload fails
// with an end of stream instead of an out of memory.
const chunk = 64 * 1024

// T is a peekable reader.
type T struct {
	src    io.Reader
	bytes  io.ByteReader
	one    [1]byte
	peeked bool
	next   byte
	off    int64
}

// New wraps src. If src is already an io.ByteReader (bytes.Reader,
// bufio.Reader, ...) single byte reads go straight to it.
func New(src io.Reader) (r *T) {
	r = &T{src: src}
	if br, ok := src.(io.ByteReader); ok {
		r.bytes = br
	}
	return
}

// Offset is the absolute position of the next unread byte.
func (r *T) Offset() int64 { return r.off }

func (r *T) fail(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return berr.EndOfStream(r.off, nil)
	}
	return berr.EndOfStream(r.off, errors.Wrap(err, "reading source"))
}

func (r *T) fetch() (c byte, err error) {
	if r.bytes != nil {
		if c, err = r.bytes.ReadByte(); err != nil {
			err = r.fail(err)
		}
		return
	}
	var n int
	for n == 0 {
		if n, err = r.src.Read(r.one[:]); n == 0 && err != nil {
			err = r.fail(err)
			return
		}
	}
	c, err = r.one[0], nil
	return
}

// Peek returns the next byte without consuming it.
func (r *T) Peek() (c byte, err error) {
	if r.peeked {
		return r.next, nil
	}
	if c, err = r.fetch(); err != nil {
		return
	}
	r.next, r.peeked = c, true
	return
}

// ReadByte consumes and returns the next byte.
func (r *T) ReadByte() (c byte, err error) {
	if r.peeked {
		r.peeked = false
		r.off++
		return r.next, nil
	}
	if c, err = r.fetch(); err != nil {
		return
	}
	r.off++
	return
}

// ReadFull consumes exactly n bytes. If fewer remain it fails with an end of
// stream error at the offset where the input ran out.
func (r *T) ReadFull(n int) (b []byte, err error) {
	if n < 0 {
		err = berr.Argumentf("negative read length %d", n)
		return
	}
	b = make([]byte, 0, min(n, chunk))
	if n > 0 && r.peeked {
		b = append(b, r.next)
		r.peeked = false
		r.off++
	}
	for len(b) < n {
		want := min(n-len(b), chunk)
		start := len(b)
		b = append(b, make([]byte, want)...)
		var got int
		got, err = io.ReadFull(r.src, b[start:])
		r.off += int64(got)
		if err != nil {
			b = b[:start+got]
			err = r.fail(err)
			return
		}
	}
	return
}

// ReadUntil consumes bytes up to and including delim and returns the bytes
// before it. If delim is not found within limit bytes the input is malformed.
func (r *T) ReadUntil(delim byte, limit int) (b []byte, err error) {
	start := r.off
	var c byte
	for {
		if c, err = r.ReadByte(); err != nil {
			return
		}
		if c == delim {
			return
		}
		if len(b) >= limit {
			err = berr.Malformedf(start, "no %q within %d bytes", delim, limit)
			return
		}
		b = append(b, c)
	}
}
