package config

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMissingFile(t *testing.T) {
	conf, err := Decode(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), conf)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[common]
debug = true
data_dir = "/srv/proposals"

[site]
output_dir = "/srv/www"

[server]
port = 9000
`), 0644))

	require.NoError(t, Load(path))
	assert.True(t, Common.Debug)
	assert.Equal(t, "/srv/proposals", Common.DataDir)
	assert.Equal(t, "flags.json", Common.FlagsPath, "unset keys keep their defaults")
	assert.Equal(t, "/srv/www", Site.OutputDir)
	assert.Equal(t, "TC39 Proposals", Site.Title)
	assert.Equal(t, "localhost:9000", Server.Addr())
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[common\ndebug = "), 0644))
	assert.Error(t, Load(path))
}

func TestFlags(t *testing.T) {
	ctx := context.Background()
	name := GenFlag("test.flags.name", "default", "Name")
	count := GenFlag("test.flags.count", 4, "Count")
	enabled := GenFlag("test.flags.enabled", false, "Enabled")

	require.NoError(t, ReadFlags(ctx, strings.NewReader(`{"test.flags.count": 8, "test.flags.unknown": 1, "test.flags.enabled": "nope"}`)))
	assert.Equal(t, 8, count.Value())
	assert.False(t, enabled.Value(), "mistyped values are ignored")

	ApplyOverrides(ctx, "test.flags.name=custom,test.flags.enabled=true,garbage,test.flags.count=x")
	assert.Equal(t, "custom", name.Value())
	assert.True(t, enabled.Value())
	assert.Equal(t, 8, count.Value())

	val, ok := GetFlagVal[int]("test.flags.count")
	assert.True(t, ok)
	assert.Equal(t, 8, val)
	_, ok = GetFlagVal[string]("test.flags.count")
	assert.False(t, ok)

	var buf bytes.Buffer
	require.NoError(t, WriteFlags(&buf))
	var dumped map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &dumped))
	assert.Equal(t, "custom", dumped["test.flags.name"])
}

func TestLoadFlagsMissingFile(t *testing.T) {
	assert.NoError(t, LoadFlags(context.Background(), filepath.Join(t.TempDir(), "flags.json")))
}
