package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bencode.lol/berr"
	"bencode.lol/config/keyvalue"
	"bencode.lol/value"
)

func TestPresets(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())
	assert.Equal(t, Strict, s.DuplicateKeys)
	assert.Equal(t, Strict, s.KeyOrder)
	assert.Equal(t, Strict, s.IntegerForm)
	assert.Equal(t, DefaultMaxDepth, s.MaxDepth)

	r := Relaxed.Preset()
	require.NoError(t, r.Validate())
	assert.Equal(t, Relaxed, r.DuplicateKeys)
	assert.Equal(t, Relaxed, r.KeyOrder)
}

func TestValidate(t *testing.T) {
	var nilConfig *C
	assert.True(t, errors.Is(nilConfig.Validate(), berr.ErrInvalidArgument))

	c := Default()
	c.MaxDepth = 0
	assert.True(t, errors.Is(c.Validate(), berr.ErrInvalidArgument))

	c = Default()
	c.KeyOrder = "lenient"
	assert.True(t, errors.Is(c.Validate(), berr.ErrInvalidArgument))

	c = Default()
	c.TextEncoding = "no-such-encoding"
	assert.True(t, errors.Is(c.Validate(), berr.ErrInvalidArgument))

	c = Default()
	c.MaxLengthDigits = 19
	assert.True(t, errors.Is(c.Validate(), berr.ErrInvalidArgument))
}

func TestFromEnv(t *testing.T) {
	t.Setenv("BENCODE_MAX_DEPTH", "32")
	t.Setenv("BENCODE_DUPLICATE_KEYS", "relaxed")
	t.Setenv("BENCODE_NULL_POLICY", "fail")
	t.Setenv("BENCODE_TEXT_ENCODING", "latin1")
	c, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 32, c.MaxDepth)
	assert.Equal(t, Relaxed, c.DuplicateKeys)
	assert.Equal(t, Strict, c.KeyOrder)
	assert.Equal(t, value.NullFail, c.Null)
	enc, err := c.Encoding()
	require.NoError(t, err)
	assert.Equal(t, "windows-1252", enc.Name())
}

func TestLookupFollowsNullPolicy(t *testing.T) {
	d := value.NewDict().Set("name", value.NewBytes("x"))

	c := Default()
	name, err := Lookup[*value.Bytes](c, d, "name")
	require.NoError(t, err)
	assert.Equal(t, "x", name.String())
	missing, err := Lookup[*value.Int](c, d, "size")
	require.NoError(t, err)
	assert.Nil(t, missing)
	_, err = Lookup[*value.Int](c, d, "name")
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))

	t.Setenv("BENCODE_NULL_POLICY", "fail")
	c, err = FromEnv()
	require.NoError(t, err)
	_, err = Lookup[*value.Int](c, d, "size")
	assert.True(t, errors.Is(err, berr.ErrInvalidCast))

	missing, err = Lookup[*value.Int](nil, d, "size")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFromEnvBadPolicy(t *testing.T) {
	t.Setenv("BENCODE_KEY_ORDER", "sloppy")
	_, err := FromEnv()
	assert.Error(t, err)
}

func TestPrintEnvRoundTrip(t *testing.T) {
	c := Relaxed.Preset()
	c.MaxDepth = 99
	c.Null = value.NullFail
	var buf bytes.Buffer
	keyvalue.PrintEnv(*c, &buf)
	assert.True(t, strings.HasPrefix(buf.String(), "#!/usr/bin/env bash\n"))
	assert.Contains(t, buf.String(), "export BENCODE_MAX_DEPTH=99\n")
	assert.Contains(t, buf.String(), "export BENCODE_NULL_POLICY=fail\n")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	loaded, err := FromFile(path)
	require.NoError(t, err)
	assert.Equal(t, c, loaded)
}

func TestUsage(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf)
	assert.Contains(t, buf.String(), "BENCODE_MAX_DEPTH")
}
