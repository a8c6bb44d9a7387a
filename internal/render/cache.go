package render

import (
	"image"
	"image/color"

	"image-view/internal/crop"
	viewimage "image-view/internal/image"
	"image-view/pkg/geometry"
)

// Key identifies the inputs a frame was built from. Generation changes
// whenever the pixels change (new image, rotation, grayscale).
type Key struct {
	Generation uint64
	Crop       crop.Crop
	Size       geometry.Size
}

// Source is what a frame shows: Region of Image.
type Source struct {
	Image  image.Image
	Region geometry.Rect
}

// Cache holds one composited frame.
type Cache struct {
	frame  *image.RGBA
	key    Key
	valid  bool
	builds int
}

// Ensure returns the frame for key, rebuilding it from src when the key
// differs from the cached one. The rebuilt frame is the viewport filled with
// background and the region scaled into its fit rectangle. Returns nil when
// the viewport or the region has no area.
func (c *Cache) Ensure(key Key, src Source, q viewimage.Quality, background color.Color) *image.RGBA {
	if c.valid && c.key == key {
		return c.frame
	}
	c.Invalidate()

	fit, ok := geometry.FitSize(src.Region.Size(), key.Size)
	if !ok || src.Image == nil {
		return nil
	}

	frame := image.NewRGBA(image.Rect(0, 0, key.Size.Width, key.Size.Height))
	viewimage.Fill(frame, background)
	viewimage.Composite(frame, fit.Display, src.Image, src.Region, q)

	c.frame, c.key, c.valid = frame, key, true
	c.builds++
	return frame
}

// Invalidate discards the cached frame.
func (c *Cache) Invalidate() {
	c.frame, c.key, c.valid = nil, Key{}, false
}

// Valid reports whether a frame is cached.
func (c *Cache) Valid() bool {
	return c.valid
}

// Builds returns how many frames have been composited.
func (c *Cache) Builds() int {
	return c.builds
}
