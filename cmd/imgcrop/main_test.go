package main

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	viewimage "image-view/internal/image"
	"image-view/pkg/geometry"
)

func TestParseRect(t *testing.T) {
	r, err := parseRect("10, 20,30,40")
	require.NoError(t, err)
	assert.Equal(t, geometry.NewRect(10, 20, 30, 40), r)

	_, err = parseRect("1,2,3")
	assert.Error(t, err)
	_, err = parseRect("a,2,3,4")
	assert.Error(t, err)
}

func TestParseSize(t *testing.T) {
	s, err := parseSize("640X480")
	require.NoError(t, err)
	assert.Equal(t, geometry.NewSize(640, 480), s)

	_, err = parseSize("640")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	src := image.NewNRGBA(image.Rect(0, 0, 100, 50))
	viewimage.Fill(src, color.NRGBA{R: 200, A: 255})
	require.NoError(t, viewimage.Save(in, src))

	out := filepath.Join(dir, "out.png")
	err := run(options{in: in, out: out, rotate: 90, selection: "0,10,40,20", gray: true})
	require.NoError(t, err)

	layer, err := viewimage.Load(out)
	require.NoError(t, err)
	assert.Equal(t, geometry.NewSize(40, 20), layer.Size())

	r, g, b, _ := layer.Image.At(5, 5).RGBA()
	assert.Equal(t, r, g)
	assert.Equal(t, g, b)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	require.NoError(t, viewimage.Save(in, image.NewNRGBA(image.Rect(0, 0, 20, 20))))

	assert.ErrorContains(t, run(options{in: in, out: filepath.Join(dir, "o.png"), rotate: 45}), "invalid rotation")
	assert.ErrorContains(t, run(options{in: in, out: filepath.Join(dir, "o.png"), selection: "0,0,3,3"}), "rejected")
	assert.ErrorContains(t, run(options{in: filepath.Join(dir, "missing.png"), out: "x.png"}), "failed to open image")
}
