// Package image provides image loading and saving, pixel transforms and
// compositing for the viewer.
package image

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"image-view/pkg/geometry"
)

// Layer is a decoded image file.
type Layer struct {
	Path   string      // Original file path
	Image  image.Image // Decoded pixel data, always *image.NRGBA or *image.RGBA
	Format string      // Format name reported by the decoder
}

// Load loads an image from the specified path and returns a Layer.
func Load(path string) (*Layer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	layer, err := Decode(file)
	if err != nil {
		return nil, err
	}
	layer.Path = path
	return layer, nil
}

// Decode reads an image from r. Images that are not packed 8-bit RGBA are
// converted to *image.NRGBA so that the pixel operations can address them.
func Decode(r io.Reader) (*Layer, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &Layer{Image: Addressable(img), Format: format}, nil
}

// Addressable returns img if its pixels can be mutated in place, otherwise
// an *image.NRGBA copy with its origin at (0,0).
func Addressable(img image.Image) image.Image {
	switch img.(type) {
	case *image.NRGBA, *image.RGBA:
		return img
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// Width returns the image width in pixels.
func (l *Layer) Width() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dx()
}

// Height returns the image height in pixels.
func (l *Layer) Height() int {
	if l.Image == nil {
		return 0
	}
	return l.Image.Bounds().Dy()
}

// Size returns the image dimensions.
func (l *Layer) Size() geometry.Size {
	return geometry.NewSize(l.Width(), l.Height())
}

// Save encodes img to path, choosing the format from the extension.
func Save(path string, img image.Image) error {
	format, ok := formatFor(path)
	if !ok {
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image: %w", err)
	}
	if err := Encode(file, img, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}
	return nil
}

// Encode writes img to w in the named format (png, jpeg, gif, tiff, bmp).
func Encode(w io.Writer, img image.Image, format string) error {
	var err error
	switch format {
	case "png":
		err = png.Encode(w, img)
	case "jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case "gif":
		err = gif.Encode(w, img, nil)
	case "tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case "bmp":
		err = bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

func formatFor(path string) (string, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png", true
	case ".jpg", ".jpeg":
		return "jpeg", true
	case ".gif":
		return "gif", true
	case ".tif", ".tiff":
		return "tiff", true
	case ".bmp":
		return "bmp", true
	}
	return "", false
}

// CanEncode reports whether Save can write path, judged by its extension.
func CanEncode(path string) bool {
	_, ok := formatFor(path)
	return ok
}

// SupportedFormats returns the list of supported image formats.
func SupportedFormats() []string {
	return []string{".tiff", ".tif", ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}
}

// IsSupportedFormat checks if the given path has a supported image format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}

// FileFilter returns a file filter string for use in file dialogs.
func FileFilter() string {
	return "Image Files (*.tiff, *.tif, *.png, *.jpg, *.jpeg, *.gif, *.bmp, *.webp)"
}
