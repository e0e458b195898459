// Package config holds the options of the bencode parser and the display
// renderer. Options only ever change what the parser accepts and how byte
// strings are shown; canonical encoding is not configurable.
//
// The configuration can be built in code from the Strict and Relaxed presets,
// or loaded from BENCODE_* environment variables or a .env file.
package config

import (
	"io"

	"go-simpler.org/env"

	"bencode.lol/berr"
	"bencode.lol/chk"
	envfile "bencode.lol/env"
	"bencode.lol/lol"
	"bencode.lol/textenc"
	"bencode.lol/value"
)

// Policy selects how tolerant the parser is of one class of deviation from
// canonical form.
type Policy string

const (
	// Strict rejects the deviation with a malformed data error.
	Strict Policy = "strict"
	// Relaxed accepts the deviation.
	Relaxed Policy = "relaxed"
)

// UnmarshalText reads a policy name, for configuration loading.
func (p *Policy) UnmarshalText(b []byte) error {
	switch Policy(b) {
	case Strict, "":
		*p = Strict
	case Relaxed:
		*p = Relaxed
	default:
		return berr.Argumentf("unknown policy %q, want strict or relaxed", b)
	}
	return nil
}

// DefaultMaxDepth is the default limit on nesting of lists and dictionaries.
const DefaultMaxDepth = 512

// C is the codec configuration.
type C struct {
	// TextEncoding is only used to render byte strings for display.
	TextEncoding string `env:"BENCODE_TEXT_ENCODING" default:"utf-8" usage:"text encoding used to display byte strings, a WHATWG name such as utf-8 or latin1"`
	// MaxDepth bounds the nesting of lists and dictionaries.
	MaxDepth int `env:"BENCODE_MAX_DEPTH" default:"512" usage:"maximum nesting depth of lists and dictionaries"`
	// DuplicateKeys: strict fails on a repeated dictionary key, relaxed keeps
	// the last value.
	DuplicateKeys Policy `env:"BENCODE_DUPLICATE_KEYS" default:"strict" usage:"repeated dictionary keys [strict|relaxed]"`
	// KeyOrder: strict requires ascending dictionary keys, relaxed accepts any
	// order.
	KeyOrder Policy `env:"BENCODE_KEY_ORDER" default:"strict" usage:"dictionary key ordering [strict|relaxed]"`
	// IntegerForm: strict requires canonical integers, relaxed also accepts
	// leading zeros and negative zero.
	IntegerForm Policy `env:"BENCODE_INTEGER_FORM" default:"strict" usage:"integer lexical form [strict|relaxed]"`
	// Null is what typed lookups do with a missing dictionary key.
	Null value.NullPolicy `env:"BENCODE_NULL_POLICY" default:"absent" usage:"missing key in a typed lookup [absent|fail]"`
	// MaxLengthDigits bounds the digit run of a byte string length prefix.
	MaxLengthDigits int `env:"BENCODE_MAX_LENGTH_DIGITS" default:"18" usage:"maximum digits in a byte string length prefix"`
	// MaxIntDigits bounds the digit run of an integer.
	MaxIntDigits int `env:"BENCODE_MAX_INT_DIGITS" default:"4096" usage:"maximum digits in an integer"`
	// RejectTrailing makes a whole-buffer parse fail if bytes remain after the
	// value.
	RejectTrailing bool `env:"BENCODE_REJECT_TRAILING" default:"false" usage:"fail when bytes follow the top level value"`
	// LogLevel sets the lol logger level when the configuration is loaded.
	LogLevel string `env:"BENCODE_LOG_LEVEL" default:"info" usage:"log level: off fatal error warn info debug trace"`
}

// Default is the strict configuration.
func Default() *C { return Strict.Preset() }

// Preset returns the configuration with every policy set to p.
func (p Policy) Preset() (c *C) {
	c = &C{
		TextEncoding:    textenc.UTF8.Name(),
		MaxDepth:        DefaultMaxDepth,
		DuplicateKeys:   p,
		KeyOrder:        p,
		IntegerForm:     p,
		MaxLengthDigits: 18,
		MaxIntDigits:    4096,
		LogLevel:        "info",
	}
	return
}

// FromEnv loads the configuration from the process environment.
func FromEnv() (c *C, err error) {
	c = &C{}
	if err = env.Load(c, nil); chk.E(err) {
		return
	}
	err = c.apply()
	return
}

// FromFile loads the configuration from a .env file. Keys missing from the
// file take their defaults, the process environment is not consulted.
func FromFile(path string) (c *C, err error) {
	var e envfile.Env
	if e, err = envfile.GetEnv(path); chk.E(err) {
		return
	}
	c = &C{}
	if err = env.Load(c, &env.Options{Source: e}); chk.E(err) {
		return
	}
	err = c.apply()
	return
}

func (c *C) apply() (err error) {
	if err = c.Validate(); chk.E(err) {
		return
	}
	lol.SetLogLevel(c.LogLevel)
	return
}

// Validate checks the configuration for values the parser cannot work with.
func (c *C) Validate() (err error) {
	if c == nil {
		return berr.Argumentf("nil configuration")
	}
	if c.MaxDepth < 1 {
		return berr.Argumentf("max depth %d must be at least 1", c.MaxDepth)
	}
	if c.MaxLengthDigits < 1 || c.MaxLengthDigits > 18 {
		return berr.Argumentf("max length digits %d must be within 1 and 18", c.MaxLengthDigits)
	}
	if c.MaxIntDigits < 1 {
		return berr.Argumentf("max integer digits %d must be at least 1", c.MaxIntDigits)
	}
	for _, p := range []Policy{c.DuplicateKeys, c.KeyOrder, c.IntegerForm} {
		if p != Strict && p != Relaxed {
			return berr.Argumentf("unknown policy %q", p)
		}
	}
	_, err = c.Encoding()
	return
}

// Encoding resolves TextEncoding.
func (c *C) Encoding() (*textenc.T, error) { return textenc.Lookup(c.TextEncoding) }

// Lookup returns the value under key of d narrowed to T. A missing key is
// handled as c.Null says; a nil c behaves as Default.
func Lookup[T value.Variant](c *C, d *value.Dict, key string) (T, error) {
	policy := value.NullAbsent
	if c != nil {
		policy = c.Null
	}
	return value.Lookup[T](d, key, policy)
}

// Usage prints the environment variables that configure the codec.
func Usage(w io.Writer) { env.Usage(&C{}, w, nil) }
