package qoifiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qoiview/qoiview/qoi"
)

func writeQoi(t *testing.T, dir, name string) string {
	t.Helper()
	d := qoi.Desc{Width: 2, Height: 2, Channels: qoi.RGB, Colorspace: qoi.SRGB}
	data, err := qoi.Encode(d, make([]byte, d.PixLen()))
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestGatherDirectory(t *testing.T) {
	dir := t.TempDir()
	writeQoi(t, dir, "b.qoi")
	writeQoi(t, dir, "a.qoi")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("text"), 0o644))

	in, err := Gather([]string{dir})
	require.NoError(t, err)
	assert.Equal(t, 0, in.Start)
	require.Len(t, in.Files, 2)
	assert.Equal(t, "a.qoi", filepath.Base(in.Files[0]))
	assert.Equal(t, "b.qoi", filepath.Base(in.Files[1]))
}

func TestGatherSingleFileIncludesSiblings(t *testing.T) {
	dir := t.TempDir()
	writeQoi(t, dir, "a.qoi")
	target := writeQoi(t, dir, "b.qoi")
	writeQoi(t, dir, "c.qoi")

	in, err := Gather([]string{target})
	require.NoError(t, err)
	require.Len(t, in.Files, 3)
	assert.Equal(t, 1, in.Start)
	assert.Equal(t, "b.qoi", filepath.Base(in.Files[in.Start]))
}

func TestGatherMultiple(t *testing.T) {
	dir := t.TempDir()
	a := writeQoi(t, dir, "a.qoi")
	b := writeQoi(t, dir, "b.qoi")
	junk := filepath.Join(dir, "junk.qoi")
	require.NoError(t, os.WriteFile(junk, []byte("junk"), 0o644))

	in, err := Gather([]string{a, junk, b})
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, in.Files)

	_, err = Gather([]string{junk, filepath.Join(dir, "missing.qoi")})
	assert.ErrorContains(t, err, "no valid qoi files")
}

func TestGatherErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Gather([]string{filepath.Join(dir, "nope")})
	assert.ErrorContains(t, err, "no such file or directory")

	empty := filepath.Join(dir, "empty")
	require.NoError(t, os.Mkdir(empty, 0o755))
	_, err = Gather([]string{empty})
	assert.ErrorContains(t, err, "no valid qoi files")

	text := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(text, []byte("hi"), 0o644))
	_, err = Gather([]string{text})
	assert.ErrorContains(t, err, "not a valid qoi file")
}
