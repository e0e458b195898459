// Command bdump decodes bencode from a file or standard input and prints it as
// a readable tree, its canonical re-encoding, or its hash. A non-zero exit
// status means the input did not decode under the chosen policy.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/pkg/profile"

	"bencode.lol/berr"
	"bencode.lol/chk"
	"bencode.lol/config"
	"bencode.lol/config/keyvalue"
	"bencode.lol/encoder"
	"bencode.lol/errorf"
	"bencode.lol/hex"
	"bencode.lol/log"
	"bencode.lol/lol"
	"bencode.lol/parser"
	"bencode.lol/textenc"
	"bencode.lol/value"
)

type Args struct {
	File      string `arg:"positional" help:"input file, standard input if empty or -"`
	Relaxed   bool   `help:"accept duplicate and unordered dictionary keys and non-canonical integers"`
	Encoding  string `help:"text encoding used to display byte strings"`
	MaxDepth  int    `arg:"--max-depth" help:"maximum nesting depth of lists and dictionaries"`
	Env       string `help:"load the configuration from this .env file instead of the environment"`
	All       bool   `help:"decode every value in the input until it ends"`
	Canonical bool   `help:"write the canonical encoding instead of a tree"`
	Hash      bool   `help:"print the BLAKE2b-256 hash of the canonical encoding"`
	Check     bool   `help:"only check that the input decodes"`
	Key       string `help:"print the byte string under this key of a top-level dictionary as text"`
	PrintEnv  bool   `arg:"--print-env" help:"print the effective configuration as a shell script and exit"`
	Pprof     bool   `help:"write a CPU profile of the run to the working directory"`
	LogLevel  string `arg:"--log-level" help:"log level: off fatal error warn info debug trace"`
}

func (Args) Description() string {
	return "bdump decodes bencode and shows what is in it"
}

func main() {
	var args Args
	arg.MustParse(&args)
	os.Exit(profiled(&args))
}

// profiled runs with the profiler stopped before the exit status is returned.
func profiled(args *Args) int {
	if args.Pprof {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	}
	if err := run(args, os.Stdin, os.Stdout); err != nil {
		log.E.F("%v", err)
		return 1
	}
	return 0
}

func configure(args *Args) (cfg *config.C, err error) {
	if args.Env != "" {
		cfg, err = config.FromFile(args.Env)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return
	}
	if args.Relaxed {
		cfg.DuplicateKeys, cfg.KeyOrder, cfg.IntegerForm = config.Relaxed, config.Relaxed, config.Relaxed
	}
	if args.Encoding != "" {
		cfg.TextEncoding = args.Encoding
	}
	if args.MaxDepth != 0 {
		cfg.MaxDepth = args.MaxDepth
	}
	if args.LogLevel != "" {
		lol.SetLogLevel(args.LogLevel)
	}
	err = cfg.Validate()
	return
}

// printKey writes the text under key of the dictionary v. A missing key
// prints nothing unless the configured null policy makes it an error.
func printKey(w io.Writer, cfg *config.C, enc *textenc.T, v value.V, key string) (err error) {
	var d *value.Dict
	if d, err = value.As[*value.Dict](v); err != nil {
		return
	}
	var b *value.Bytes
	if b, err = config.Lookup[*value.Bytes](cfg, d, key); err != nil || b == nil {
		return
	}
	var s string
	if s, err = b.Text(enc); err != nil {
		return
	}
	_, err = fmt.Fprintln(w, s)
	return
}

func run(args *Args, stdin io.Reader, stdout io.Writer) (err error) {
	var cfg *config.C
	if cfg, err = configure(args); chk.E(err) {
		return
	}
	if args.PrintEnv {
		keyvalue.PrintEnv(*cfg, stdout)
		return
	}
	src := stdin
	if args.File != "" && args.File != "-" {
		var f *os.File
		if f, err = os.Open(args.File); err != nil {
			err = errorf.E("opening input: %w", err)
			return
		}
		defer f.Close()
		src = f
	}
	br := bufio.NewReader(src)
	var p *parser.T
	if p, err = parser.New(cfg); err != nil {
		return
	}
	enc, _ := cfg.Encoding()
	for n := 0; ; n++ {
		var v value.V
		if v, err = p.Parse(br); err != nil {
			// running out before the first byte of a later value is the
			// end of the input, not a truncated value
			if n > 0 && errors.Is(err, berr.ErrEndOfStream) && berr.OffsetOf(err) == 0 {
				err = nil
			}
			return
		}
		switch {
		case args.Check:
		case args.Key != "":
			err = printKey(stdout, cfg, enc, v, args.Key)
		case args.Canonical:
			err = encoder.Write(stdout, v)
		case args.Hash:
			h := encoder.Hash(v)
			_, err = fmt.Fprintln(stdout, hex.Enc(h[:]))
		default:
			_, err = fmt.Fprintln(stdout, encoder.Display(v, enc))
		}
		if err != nil || !args.All {
			return
		}
	}
}
