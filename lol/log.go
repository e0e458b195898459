// Package lol (log of location) is a small levelled logger that stamps every
// line with a high precision timestamp and the source location of the call, so
// a malformed input can be traced back to the decode step that rejected it.
package lol

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

const (
	Off = iota
	Fatal
	Error
	Warn
	Info
	Debug
	Trace
)

var LevelNames = []string{
	"off",
	"fatal",
	"error",
	"warn",
	"info",
	"debug",
	"trace",
}

type (
	// Ln prints lists of interfaces with spaces in between
	Ln func(a ...any)
	// F prints like fmt.Printf
	F func(format string, a ...any)
	// S prints a spew.Sdump of the given values
	S func(a ...any)
	// C accepts a closure so the message is only built if the level is active
	C func(closure func() string)
	// Chk prints the error if it is not nil, and returns whether it was
	Chk func(e error) bool
	// Err constructs an error with fmt.Errorf, logging it on the way out
	Err func(format string, a ...any) error

	// LevelPrinter is the set of log printers on each log level.
	LevelPrinter struct {
		Ln
		F
		S
		C
		Chk
		Err
	}

	// LevelSpec is the name, ID and Colorizer for a log level.
	LevelSpec struct {
		ID        int
		Name      string
		Colorizer func(a ...any) string
	}
)

// LevelSpecs specifies the id, string name and color-printing function
var LevelSpecs = []LevelSpec{
	{Off, "", NoSprint},
	{Fatal, "FTL", color.New(color.BgRed, color.FgHiWhite).Sprint},
	{Error, "ERR", color.New(color.FgHiRed).Sprint},
	{Warn, "WRN", color.New(color.FgHiYellow).Sprint},
	{Info, "INF", color.New(color.FgHiGreen).Sprint},
	{Debug, "DBG", color.New(color.FgHiBlue).Sprint},
	{Trace, "TRC", color.New(color.FgHiMagenta).Sprint},
}

// NoTimeStamp disables the timestamp prefix, mostly useful for tests and
// golden output.
var NoTimeStamp atomic.Bool

// NoSprint is a noop for sprint (it returns nothing no matter what is given to it).
func NoSprint(a ...any) string { return "" }

// Log is a set of log printers for the various Level items.
type Log struct {
	F, E, W, I, D, T LevelPrinter
}

// Check is the set of log levels for a Check operation (prints an error if the
// error is not nil).
type Check struct {
	F, E, W, I, D, T Chk
}

// Errorf prints an error that is also returned as an error, so the error is
// logged at the site.
type Errorf struct {
	F, E, W, I, D, T Err
}

// Logger is a collection of things that creates a logger, including levels.
type Logger struct {
	*Log
	*Check
	*Errorf
}

// Level is the level that the logger is printing at.
var Level atomic.Int32

// Main is the main logger.
var Main = &Logger{}

func init() {
	Main.Log, Main.Check, Main.Errorf = New(os.Stderr)
	Level.Store(Info)
}

// SetLoggers configures a log level.
func SetLoggers(level int) {
	if level < Off || level > Trace {
		level = Info
	}
	Level.Store(int32(level))
	Main.Log.T.F("log level %s", LevelSpecs[level].Colorizer(LevelNames[level]))
}

// GetLogLevel returns the log level number of a string log level.
func GetLogLevel(level string) (i int) {
	for i = range LevelNames {
		if strings.EqualFold(level, LevelNames[i]) {
			return i
		}
	}
	return Info
}

// SetLogLevel sets the log level of the logger by name.
func SetLogLevel(level string) { SetLoggers(GetLogLevel(level)) }

// JoinStrings joins together anything into a string with spaces separating
// the items.
func JoinStrings(a ...any) (s string) {
	var sb strings.Builder
	for i := range a {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(fmt.Sprint(a[i]))
	}
	return sb.String()
}

var msgCol = color.New(color.FgBlue).Sprint

// line is an output shared by all levels of one logger, lines written to it
// never interleave.
type line struct {
	mx     sync.Mutex
	writer io.Writer
}

func (o *line) print(l int32, text string) {
	o.mx.Lock()
	defer o.mx.Unlock()
	_, _ = fmt.Fprintf(o.writer,
		"%s%s %s %s\n",
		msgCol(TimeStamper()),
		LevelSpecs[l].Colorizer(LevelSpecs[l].Name),
		text,
		msgCol(GetLoc(3)),
	)
}

func active(l int32) bool { return Level.Load() >= l }

// GetPrinter returns a full logger that writes to the provided io.Writer.
func GetPrinter(l int32, writer io.Writer) LevelPrinter {
	o := &line{writer: writer}
	return printer(l, o)
}

// printer builds the printers for level l sharing the output lock o.
func printer(l int32, o *line) LevelPrinter {
	return LevelPrinter{
		Ln: func(a ...any) {
			if active(l) {
				o.print(l, JoinStrings(a...))
			}
		},
		F: func(format string, a ...any) {
			if active(l) {
				o.print(l, fmt.Sprintf(format, a...))
			}
		},
		S: func(a ...any) {
			if active(l) {
				o.print(l, spew.Sdump(a...))
			}
		},
		C: func(closure func() string) {
			if active(l) {
				o.print(l, closure())
			}
		},
		Chk: func(e error) bool {
			if e == nil {
				return false
			}
			if active(l) {
				o.print(l, e.Error())
			}
			return true
		},
		Err: func(format string, a ...any) error {
			err := fmt.Errorf(format, a...)
			if active(l) {
				o.print(l, err.Error())
			}
			return err
		},
	}
}

// GetNullPrinter is a logger that doesn't log.
func GetNullPrinter() LevelPrinter {
	return LevelPrinter{
		Ln:  func(a ...any) {},
		F:   func(format string, a ...any) {},
		S:   func(a ...any) {},
		C:   func(closure func() string) {},
		Chk: func(e error) bool { return e != nil },
		Err: func(format string, a ...any) error { return fmt.Errorf(format, a...) },
	}
}

// New creates a new logger with all the levels and things.
func New(writer io.Writer) (l *Log, c *Check, errorf *Errorf) {
	o := &line{writer: writer}
	l = &Log{
		T: printer(Trace, o),
		D: printer(Debug, o),
		I: printer(Info, o),
		W: printer(Warn, o),
		E: printer(Error, o),
		F: printer(Fatal, o),
	}
	c = &Check{F: l.F.Chk, E: l.E.Chk, W: l.W.Chk, I: l.I.Chk, D: l.D.Chk, T: l.T.Chk}
	errorf = &Errorf{F: l.F.Err, E: l.E.Err, W: l.W.Err, I: l.I.Err, D: l.D.Err, T: l.T.Err}
	return
}

// TimeStamper generates the timestamp for logs.
func TimeStamper() (s string) {
	if NoTimeStamp.Load() {
		return
	}
	return time.Now().Format("2006-01-02T15:04:05Z07:00.000 ")
}

// GetNLoc returns multiple levels of depth of code location from the current.
func GetNLoc(n int) (output string) {
	for ; n > 1; n-- {
		output += fmt.Sprintf("%s\n", GetLoc(n))
	}
	return
}

// GetLoc returns the code location of the caller.
func GetLoc(skip int) (output string) {
	_, file, line, _ := runtime.Caller(skip)
	output = fmt.Sprintf("%s:%d", file, line)
	return
}
