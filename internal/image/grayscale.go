package image

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// Validation errors for pixel buffer views.
var (
	ErrInvalidDimensions    = errors.New("image: invalid dimensions")
	ErrUnsupportedPixelSize = errors.New("image: bytes per pixel must be at least 3")
	ErrInvalidStride        = errors.New("image: stride smaller than row width")
	ErrDataTooSmall         = errors.New("image: pixel data too small for dimensions")
	ErrNotAddressable       = errors.New("image: pixel buffer not addressable")
)

// ChannelOrder is the order of the first three channels of a pixel.
type ChannelOrder int

const (
	// OrderBGR stores blue first. The zero value.
	OrderBGR ChannelOrder = iota
	// OrderRGB stores red first, as image.RGBA and image.NRGBA do.
	OrderRGB
)

func (o ChannelOrder) String() string {
	switch o {
	case OrderBGR:
		return "BGR"
	case OrderRGB:
		return "RGB"
	default:
		return "Unknown"
	}
}

// View is a checked window onto a packed pixel buffer.
// Rows may be padded: Stride can exceed Width*BytesPerPixel.
type View struct {
	Pix           []byte
	Width         int
	Height        int
	Stride        int
	BytesPerPixel int
	Order         ChannelOrder
}

// Validate checks that every pixel of the view lies inside Pix.
func (v View) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return ErrInvalidDimensions
	}
	if v.BytesPerPixel < 3 {
		return ErrUnsupportedPixelSize
	}
	row := v.Width * v.BytesPerPixel
	if v.Stride < row {
		return ErrInvalidStride
	}
	if len(v.Pix) < v.Stride*(v.Height-1)+row {
		return ErrDataTooSmall
	}
	return nil
}

// Grayscale replaces the colour channels of every pixel with its luminance,
// gray = round(0.299 R + 0.587 G + 0.114 B). Channels past the third (alpha)
// are left untouched. Applying it twice gives the same result as once.
func Grayscale(v View) error {
	if err := v.Validate(); err != nil {
		return err
	}

	r, b := 2, 0
	if v.Order == OrderRGB {
		r, b = 0, 2
	}

	for y := 0; y < v.Height; y++ {
		row := v.Pix[y*v.Stride : y*v.Stride+v.Width*v.BytesPerPixel]
		for x := 0; x < len(row); x += v.BytesPerPixel {
			px := row[x : x+3]
			gray := luminance(px[r], px[1], px[b])
			px[0], px[1], px[2] = gray, gray, gray
		}
	}
	return nil
}

func luminance(r, g, b uint8) uint8 {
	l := math.Round(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
	return uint8(min(255, l))
}

// ViewOf returns a view onto the pixel memory of img. Only the packed 8-bit
// RGBA types are addressable; sub-images keep their parent's stride.
func ViewOf(img image.Image) (View, error) {
	var (
		pix    []byte
		stride int
		bounds image.Rectangle
		offset int
	)

	switch m := img.(type) {
	case *image.NRGBA:
		pix, stride, bounds = m.Pix, m.Stride, m.Rect
		offset = m.PixOffset(bounds.Min.X, bounds.Min.Y)
	case *image.RGBA:
		pix, stride, bounds = m.Pix, m.Stride, m.Rect
		offset = m.PixOffset(bounds.Min.X, bounds.Min.Y)
	default:
		return View{}, fmt.Errorf("%w: %T", ErrNotAddressable, img)
	}

	if bounds.Empty() {
		return View{}, ErrInvalidDimensions
	}

	return View{
		Pix:           pix[offset:],
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Stride:        stride,
		BytesPerPixel: 4,
		Order:         OrderRGB,
	}, nil
}

// GrayscaleImage converts img in place.
func GrayscaleImage(img image.Image) error {
	v, err := ViewOf(img)
	if err != nil {
		return err
	}
	return Grayscale(v)
}
