// Package berr defines the failure kinds of the bencode codec.
//
// Every error returned by the reader, parser and typed accessors is an *Error
// carrying one Kind, and matches the sentinel of that kind with errors.Is:
//
//	if errors.Is(err, berr.ErrMalformed) { ... }
//
// Errors found while decoding also carry the absolute byte offset at which the
// problem was detected.
//
// A byte source that fails for any reason other than running out, such as a
// reset connection, also ends the stream: the reader reports EndOfStream at
// the offset reached and keeps the source error as the cause, so
// errors.Is(err, io.ErrClosedPipe) and the like still work.
package berr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind is the category of a codec failure.
type Kind int

const (
	// EOS means the input ended, or failed, before a value could be
	// completed.
	EOS Kind = iota + 1
	// Malformed is a grammar violation in the input.
	Malformed
	// Cast is a requested narrowing that does not match the decoded shape.
	Cast
	// Argument is a nil or otherwise invalid argument from the caller.
	Argument
)

func (k Kind) String() string {
	switch k {
	case EOS:
		return "end of stream"
	case Malformed:
		return "malformed data"
	case Cast:
		return "invalid cast"
	case Argument:
		return "invalid argument"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels, one per Kind, for use with errors.Is.
var (
	ErrEndOfStream     = errors.New(EOS.String())
	ErrMalformed       = errors.New(Malformed.String())
	ErrInvalidCast     = errors.New(Cast.String())
	ErrInvalidArgument = errors.New(Argument.String())
)

func (k Kind) sentinel() error {
	switch k {
	case EOS:
		return ErrEndOfStream
	case Malformed:
		return ErrMalformed
	case Cast:
		return ErrInvalidCast
	case Argument:
		return ErrInvalidArgument
	}
	return nil
}

// NoOffset marks an error that is not tied to a position in the input.
const NoOffset int64 = -1

// Error is a codec failure.
type Error struct {
	Kind Kind
	// Offset is the absolute byte position in the input, or NoOffset.
	Offset int64
	Msg    string
	// Err is the underlying cause, if any, such as an I/O error from the
	// byte source.
	Err error
}

func (e *Error) Error() string {
	s := "bencode: " + e.Kind.String()
	if e.Offset != NoOffset {
		s += fmt.Sprintf(" at offset %d", e.Offset)
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Is reports whether target is the sentinel for the error's Kind.
func (e *Error) Is(target error) bool { return target != nil && target == e.Kind.sentinel() }

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Cause satisfies the github.com/pkg/errors causer interface.
func (e *Error) Cause() error { return e.Err }

// EndOfStream is an input exhausted at offset. cause is the source error when
// the input failed rather than ran out.
func EndOfStream(offset int64, cause error) error {
	return &Error{Kind: EOS, Offset: offset, Err: cause}
}

// Malformedf is a grammar violation detected at offset.
func Malformedf(offset int64, format string, a ...any) error {
	return &Error{Kind: Malformed, Offset: offset, Msg: fmt.Sprintf(format, a...)}
}

// Castf is a narrowing that does not match the value's shape.
func Castf(format string, a ...any) error {
	return &Error{Kind: Cast, Offset: NoOffset, Msg: fmt.Sprintf(format, a...)}
}

// Argumentf is an invalid caller supplied argument.
func Argumentf(format string, a ...any) error {
	return &Error{Kind: Argument, Offset: NoOffset, Msg: fmt.Sprintf(format, a...)}
}

// KindOf returns the Kind of the first *Error in err's chain, or zero if there
// is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// OffsetOf returns the input offset recorded in err, or NoOffset.
func OffsetOf(err error) int64 {
	var e *Error
	if errors.As(err, &e) {
		return e.Offset
	}
	return NoOffset
}

// Wrap annotates a codec error with a message while keeping its Kind
// reachable through errors.Is and errors.As.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.WithMessage(err, msg)
}
