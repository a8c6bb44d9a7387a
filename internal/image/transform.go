package image

import (
	"image"

	"github.com/disintegration/imaging"

	"image-view/pkg/geometry"
)

// Rotate90 returns a copy of img turned a quarter clockwise.
func Rotate90(img image.Image) *image.NRGBA {
	// imaging rotates counter-clockwise.
	return imaging.Rotate270(img)
}

// Rotate270 returns a copy of img turned a quarter counter-clockwise.
func Rotate270(img image.Image) *image.NRGBA {
	return imaging.Rotate90(img)
}

// FlipHorizontal returns a mirrored copy of img.
func FlipHorizontal(img image.Image) *image.NRGBA {
	return imaging.FlipH(img)
}

// CropCopy copies the region r of img into a new image with its origin at
// (0,0). r is relative to the image's top-left corner and is clipped to it.
func CropCopy(img image.Image, r geometry.Rect) *image.NRGBA {
	b := img.Bounds()
	return imaging.Crop(img, r.ImageRect().Add(b.Min))
}

// Resize scales img to width x height using the filter that matches q.
func Resize(img image.Image, width, height int, q Quality) *image.NRGBA {
	filter := imaging.CatmullRom
	if q == QualityFast {
		filter = imaging.NearestNeighbor
	}
	return imaging.Resize(img, width, height, filter)
}
