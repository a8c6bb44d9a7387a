package image

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"image-view/pkg/geometry"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
)

// marked returns a 3x2 image with distinct corners.
func marked() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(2, 0, green)
	img.SetNRGBA(0, 1, blue)
	return img
}

func TestRotate90Clockwise(t *testing.T) {
	out := Rotate90(marked())
	require.Equal(t, image.Rect(0, 0, 2, 3), out.Bounds())
	// Top-left moves to top-right, bottom-left to top-left.
	assert.Equal(t, red, out.NRGBAAt(1, 0))
	assert.Equal(t, blue, out.NRGBAAt(0, 0))
	assert.Equal(t, green, out.NRGBAAt(1, 2))
}

func TestRotate270CounterClockwise(t *testing.T) {
	out := Rotate270(marked())
	require.Equal(t, image.Rect(0, 0, 2, 3), out.Bounds())
	assert.Equal(t, red, out.NRGBAAt(0, 2))
	assert.Equal(t, green, out.NRGBAAt(0, 0))
	assert.Equal(t, blue, out.NRGBAAt(1, 2))
}

func TestRotateRoundTrip(t *testing.T) {
	img := marked()
	assert.Equal(t, img.Pix, Rotate270(Rotate90(img)).Pix)
	assert.Equal(t, img.Pix, FlipHorizontal(FlipHorizontal(img)).Pix)
}

func TestFlipHorizontal(t *testing.T) {
	out := FlipHorizontal(marked())
	assert.Equal(t, red, out.NRGBAAt(2, 0))
	assert.Equal(t, green, out.NRGBAAt(0, 0))
}

func TestCropCopy(t *testing.T) {
	out := CropCopy(marked(), geometry.NewRect(2, 0, 1, 2))
	require.Equal(t, image.Rect(0, 0, 1, 2), out.Bounds())
	assert.Equal(t, green, out.NRGBAAt(0, 0))
}

func TestComposite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	Fill(src, red)

	for _, q := range []Quality{QualityFast, QualityHigh} {
		t.Run(q.String(), func(t *testing.T) {
			dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
			Fill(dst, DefaultBackground)
			Composite(dst, geometry.NewRect(2, 2, 4, 4), src, geometry.NewRect(0, 0, 2, 2), q)

			assert.Equal(t, color.RGBA{255, 0, 0, 255}, dst.RGBAAt(3, 3))
			assert.Equal(t, DefaultBackground, dst.RGBAAt(0, 0))
			assert.Equal(t, DefaultBackground, dst.RGBAAt(7, 7))
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, format := range []string{"png", "tiff", "bmp"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, marked(), format))

			layer, err := Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, format, layer.Format)
			assert.Equal(t, geometry.NewSize(3, 2), layer.Size())
		})
	}

	assert.Error(t, Encode(&bytes.Buffer{}, marked(), "xcf"))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "marked.png")
	require.NoError(t, Save(path, marked()))

	layer, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, layer.Path)
	assert.Equal(t, 3, layer.Width())
	assert.Equal(t, 2, layer.Height())

	_, err = Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorContains(t, err, "failed to open image")

	assert.Error(t, Save(filepath.Join(t.TempDir(), "out.xyz"), marked()))
}

func TestAddressable(t *testing.T) {
	gray := image.NewGray(image.Rect(5, 5, 7, 8))
	out := Addressable(gray)
	n, ok := out.(*image.NRGBA)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 2, 3), n.Bounds())

	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	assert.Same(t, rgba, Addressable(rgba))
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("/a/b/photo.JPG"))
	assert.True(t, IsSupportedFormat("scan.webp"))
	assert.False(t, IsSupportedFormat("notes.txt"))
}

func TestCanEncode(t *testing.T) {
	assert.True(t, CanEncode("out.TIF"))
	assert.True(t, CanEncode("out.bmp"))
	assert.False(t, CanEncode("out.webp"), "webp is decode only")
	assert.False(t, CanEncode("out"))
}
