package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestConvertRunnerGlob(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.qjson"), "{a: 1,}")
	writeFile(t, filepath.Join(dir, "b.qjson"), "[on, off]")
	writeFile(t, filepath.Join(dir, "skip.txt"), "not qjson")

	r := NewConvertRunner(ConvertCmd{
		Patterns: []string{filepath.Join(dir, "*.qjson")},
	}, &Config{}, discardLogger())
	require.NoError(r.Run())

	a, err := os.ReadFile(filepath.Join(dir, "a.json"))
	require.NoError(err)
	assert.Equal("{\"a\":1}\n", string(a))

	b, err := os.ReadFile(filepath.Join(dir, "b.json"))
	require.NoError(err)
	assert.Equal("[true,false]\n", string(b))
}

func TestConvertRunnerOutFlag(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "in.qjson")
	dst := filepath.Join(dir, "custom.json")
	writeFile(t, src, "{x: .5}")

	r := NewConvertRunner(ConvertCmd{Patterns: []string{src}, Out: dst}, &Config{}, discardLogger())
	require.NoError(r.Run())

	out, err := os.ReadFile(dst)
	require.NoError(err)
	require.Equal("{\"x\":0.5}\n", string(out))
}

func TestConvertRunnerOutFlagRejectsMultipleInputs(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.qjson"), "1")
	writeFile(t, filepath.Join(dir, "b.qjson"), "2")

	r := NewConvertRunner(ConvertCmd{
		Patterns: []string{filepath.Join(dir, "*.qjson")},
		Out:      filepath.Join(dir, "one.json"),
	}, &Config{}, discardLogger())
	require.Error(r.Run())
}

func TestConvertRunnerReportsFailingFile(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.qjson")
	writeFile(t, bad, "{a: }")

	r := NewConvertRunner(ConvertCmd{Patterns: []string{bad}}, &Config{}, discardLogger())
	err := r.Run()
	require.Error(err)
	require.Contains(err.Error(), "bad.qjson")
	require.Contains(err.Error(), "unexpected token")
}

func TestConvertRunnerMaxDepth(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	src := filepath.Join(dir, "deep.qjson")
	writeFile(t, src, "[[[[1]]]]")

	r := NewConvertRunner(ConvertCmd{Patterns: []string{src}, MaxDepth: 3}, &Config{}, discardLogger())
	require.Error(r.Run())

	r = NewConvertRunner(ConvertCmd{Patterns: []string{src}, MaxDepth: 4}, &Config{}, discardLogger())
	require.NoError(r.Run())
}

func TestOutputPath(t *testing.T) {
	assert := assert.New(t)

	r := NewConvertRunner(ConvertCmd{}, &Config{}, discardLogger())
	assert.Equal(filepath.Join("dir", "f.json"), r.outputPath(filepath.Join("dir", "f.qjson")))

	r = NewConvertRunner(ConvertCmd{OutDir: "out"}, &Config{Ext: ".strict.json"}, discardLogger())
	assert.Equal(filepath.Join("out", "f.strict.json"), r.outputPath(filepath.Join("dir", "f.qjson")))

	r = NewConvertRunner(ConvertCmd{}, &Config{OutDir: "cfg"}, discardLogger())
	assert.Equal(filepath.Join("cfg", "f.json"), r.outputPath("f.qjson"))
}

func TestExpandPatterns(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "x.qjson"), "1")
	writeFile(t, filepath.Join(dir, "y.qjson"), "2")

	// a glob and a literal naming the same file dedupe
	paths, err := expandPatterns([]string{
		filepath.Join(dir, "*.qjson"),
		filepath.Join(dir, "x.qjson"),
	})
	require.NoError(err)
	assert.Equal([]string{
		filepath.Join(dir, "x.qjson"),
		filepath.Join(dir, "y.qjson"),
	}, paths)

	// literal paths pass through even if the file does not exist
	paths, err = expandPatterns([]string{"no/such/file.qjson"})
	require.NoError(err)
	assert.Equal([]string{"no/such/file.qjson"}, paths)
}

func TestCheckRunner(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "good.qjson"), "{a: 1}")
	writeFile(t, filepath.Join(dir, "bad.qjson"), "{a: }")

	r := NewCheckRunner(CheckCmd{
		Patterns: []string{filepath.Join(dir, "*.qjson")},
		Quiet:    true,
	}, &Config{})
	err := r.Run()
	require.Error(err)
	require.Contains(err.Error(), "1 of 2 files failed")

	r = NewCheckRunner(CheckCmd{
		Patterns: []string{filepath.Join(dir, "good.qjson")},
		Quiet:    true,
	}, &Config{})
	require.NoError(r.Run())
}
