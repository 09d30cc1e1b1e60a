package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utopia/internal/types"
)

const sampleConfig = `
requires: ">= 0.3.0"
debug: true
log_level: 2
languages:
  python:
    types:
      ndarray: "number[]"
      Decimal: number
  ruby:
    enabled: false
    types:
      Integer: number
      String: string
      Hash: "{}"
  lua:
    options:
      runtime: luajit
`

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "native", cfg.Target)
	assert.Equal(t, 2, cfg.OptimizationLevel)
	assert.False(t, cfg.Debug)
	assert.Empty(t, cfg.DisabledLanguages())
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, t.TempDir(), sampleConfig)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 2, cfg.LogLevel)
	assert.Equal(t, "native", cfg.Target, "unset fields keep their defaults")
	assert.Equal(t, []string{"ruby"}, cfg.DisabledLanguages())
	assert.True(t, cfg.Languages["python"].IsEnabled())
	assert.Equal(t, "luajit", cfg.Languages["lua"].Options["runtime"])
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("langauges: {}\n"))
	require.Error(t, err)
	var cerr *Error
	assert.True(t, errors.As(err, &cerr))
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"bad constraint", `requires: "not a version"`, "requires"},
		{"unsatisfied constraint", `requires: ">= 9.0.0"`, "requires"},
		{"optimization level", `optimization_level: 7`, "optimization_level"},
		{"bad type syntax", "languages:\n  python:\n    types:\n      ndarray: \"number[\"\n", "languages.python.types.ndarray"},
		{"bare unknown name", "languages:\n  python:\n    types:\n      frame: DataFrame\n", "languages.python.types.frame"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			var cerr *Error
			require.True(t, errors.As(err, &cerr))
			assert.Equal(t, tt.field, cerr.Field)
		})
	}
}

func TestLoadReportsPath(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `requires: ">= 9.0.0"`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path+": requires: utopia "+Version)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRegistryOverlaysMappings(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)

	registry, err := cfg.Registry()
	require.NoError(t, err)

	python, ok := registry.Adapter("python")
	require.True(t, ok)
	got, ok := python.NativeToCanonical("ndarray")
	require.True(t, ok)
	assert.Equal(t, types.Array{Elem: types.Number}, got)
	got, ok = python.NativeToCanonical("int")
	require.True(t, ok, "built-in mappings survive the overlay")
	assert.Equal(t, types.Number, got)
	native, ok := python.CanonicalToNative(types.Number)
	require.True(t, ok)
	assert.Equal(t, "float", native, "built-in preferred spellings are kept")

	ruby, ok := registry.Adapter("ruby")
	require.True(t, ok, "configured languages get an adapter")
	got, ok = ruby.NativeToCanonical("Integer")
	require.True(t, ok)
	assert.Equal(t, types.Number, got)
	native, ok = ruby.CanonicalToNative(types.String)
	require.True(t, ok)
	assert.Equal(t, "String", native)

	assert.False(t, registry.Has("lua"), "a language without types needs no adapter")
	assert.True(t, registry.Compatible(types.LanguageSpecific{Language: "ruby", Name: "Integer"}, types.Number))
}

func TestRegistryDoesNotLeakIntoDefaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	require.NoError(t, err)
	_, err = cfg.Registry()
	require.NoError(t, err)

	python, _ := types.NewDefaultRegistry().Adapter("python")
	_, ok := python.NativeToCanonical("ndarray")
	assert.False(t, ok)
}

func TestFind(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, "debug: true\n")
	nested := filepath.Join(root, "src", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	found, err := Find(nested)
	require.NoError(t, err)
	want, err := filepath.Abs(path)
	require.NoError(t, err)
	assert.Equal(t, want, found)

	cfg, err := Discover(nested)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
}

func TestDiscoverWithoutFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := Find(dir); err == nil {
		t.Skip("a utopia.yaml exists above the temp directory")
	}
	cfg, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
