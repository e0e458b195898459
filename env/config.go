// Package env reads .env files of KEY=value lines into a source for the
// go-simpler.org/env configuration loader.
package env

import (
	"bufio"
	"bytes"
	"os"
	"strings"

	"bencode.lol/berr"
	"bencode.lol/chk"
)

// Env is a key/value map used to represent environment variables. It
// satisfies the go-simpler.org/env Source interface.
type Env map[string]string

// GetEnv reads a file of KEY=value lines in shell environment format. Blank
// lines and lines starting with # are skipped, an optional leading "export "
// is dropped, and values may be wrapped in single or double quotes.
func GetEnv(path string) (env Env, err error) {
	var s []byte
	if s, err = os.ReadFile(path); chk.T(err) {
		return
	}
	return Parse(s)
}

// Parse reads .env formatted content.
func Parse(s []byte) (env Env, err error) {
	env = make(Env)
	sc := bufio.NewScanner(bytes.NewReader(s))
	var n int
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			err = berr.Argumentf("line %d: missing '=' in %q", n, line)
			return
		}
		v = strings.TrimSpace(v)
		if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
			v = v[1 : len(v)-1]
		}
		env[strings.TrimSpace(k)] = v
	}
	err = sc.Err()
	return
}

// LookupEnv returns the raw string value associated with a provided key name.
func (env Env) LookupEnv(key string) (value string, ok bool) {
	value, ok = env[key]
	return
}
