// Package keyvalue turns a go-simpler.org/env tagged configuration struct into
// a sorted list of key/value pairs, and prints them as a shell script that sets
// the same configuration from a .env file or a login profile.
package keyvalue

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
)

// KV is a key/value pair.
type KV struct{ Key, Value string }

// KVSlice is a collection of key/value pairs.
type KVSlice []KV

// EnvKV lists the `env` tagged fields of a config struct, or a pointer to
// one, with their current values rendered as they would be written in the
// environment.
func EnvKV(cfg any) (m KVSlice) {
	rv := reflect.Indirect(reflect.ValueOf(cfg))
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		k := t.Field(i).Tag.Get("env")
		// untagged fields are not configurable
		if k == "" || !t.Field(i).IsExported() {
			continue
		}
		m = append(m, KV{k, render(rv.Field(i))})
	}
	return
}

func render(f reflect.Value) string {
	if tm, ok := f.Interface().(encoding.TextMarshaler); ok {
		if b, err := tm.MarshalText(); err == nil {
			return string(b)
		}
	}
	if f.Kind() == reflect.Slice {
		parts := make([]string, f.Len())
		for j := range parts {
			parts[j] = fmt.Sprint(f.Index(j).Interface())
		}
		return strings.Join(parts, ",")
	}
	return fmt.Sprint(f.Interface())
}

// PrintEnv renders the key/values of a config struct to a provided io.Writer.
func PrintEnv(cfg any, printer io.Writer) {
	_, _ = fmt.Fprintln(printer, "#!/usr/bin/env bash")
	kvs := EnvKV(cfg)
	slices.SortFunc(kvs, func(a, b KV) int { return strings.Compare(a.Key, b.Key) })
	for _, v := range kvs {
		_, _ = fmt.Fprintf(printer, "export %s=%s\n", v.Key, v.Value)
	}
}
