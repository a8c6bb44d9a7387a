// Package crop holds the optional crop rectangle of the viewer and keeps it
// consistent with rotations and mirrors of the underlying image.
package crop

import (
	"image-view/pkg/geometry"
)

// MinSize is the smallest crop width or height that can be committed, and the
// region size at or below which a selection drag is not started.
const MinSize = 6

// Crop is either None (the whole image) or a rectangle in image space.
// The zero value is None. Crop is comparable and safe to use as a map key.
type Crop struct {
	rect geometry.Rect
	set  bool
}

// None returns the whole-image crop.
func None() Crop {
	return Crop{}
}

// Of returns a crop of the given rectangle.
func Of(r geometry.Rect) Crop {
	return Crop{rect: r, set: true}
}

// Rect returns the crop rectangle and true, or false for None.
func (c Crop) Rect() (geometry.Rect, bool) {
	return c.rect, c.set
}

// IsNone reports whether the crop covers the whole image.
func (c Crop) IsNone() bool {
	return !c.set
}

// Offset is the top-left of the crop in image space, or the origin for None.
func (c Crop) Offset() geometry.PointF {
	if !c.set {
		return geometry.PointF{}
	}
	return c.rect.TopLeft().ToFloat()
}

// Region returns the area of a width x height image that is visible under c.
func (c Crop) Region(width, height int) geometry.Rect {
	if !c.set {
		return geometry.NewRect(0, 0, width, height)
	}
	return c.rect
}

// Rotate90 returns the crop after a clockwise quarter turn of the image.
// width and height are the dimensions of the rotated image.
func (c Crop) Rotate90(width, height int) Crop {
	if !c.set {
		return c
	}
	r := c.rect
	return Of(geometry.NewRect(width-r.Y-r.Height, r.X, r.Height, r.Width))
}

// Rotate270 returns the crop after a counter-clockwise quarter turn of the
// image. width and height are the dimensions of the rotated image.
func (c Crop) Rotate270(width, height int) Crop {
	if !c.set {
		return c
	}
	r := c.rect
	return Of(geometry.NewRect(r.Y, height-r.X-r.Width, r.Height, r.Width))
}

// Mirror returns the crop after a horizontal flip of an image of the given width.
func (c Crop) Mirror(width int) Crop {
	if !c.set {
		return c
	}
	r := c.rect
	return Of(geometry.NewRect(width-r.X-r.Width, r.Y, r.Width, r.Height))
}

func (c Crop) String() string {
	if !c.set {
		return "none"
	}
	return c.rect.String()
}
