package image

import (
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"image-view/pkg/colorutil"
	"image-view/pkg/geometry"
)

// Quality selects the interpolation used when scaling.
type Quality int

const (
	// QualityFast is nearest-neighbour.
	QualityFast Quality = iota
	// QualityHigh is Catmull-Rom.
	QualityHigh
)

func (q Quality) String() string {
	switch q {
	case QualityFast:
		return "Fast"
	case QualityHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Scaler returns the x/image/draw scaler for q.
func (q Quality) Scaler() xdraw.Scaler {
	if q == QualityHigh {
		return xdraw.CatmullRom
	}
	return xdraw.NearestNeighbor
}

// DefaultBackground is the fill behind the fitted image.
var DefaultBackground = colorutil.DarkGray

// Fill paints the whole of dst with c.
func Fill(dst draw.Image, c color.Color) {
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// Composite scales the srcRect region of src into dstRect of dst.
// srcRect is relative to the top-left of src.
func Composite(dst draw.Image, dstRect geometry.Rect, src image.Image, srcRect geometry.Rect, q Quality) {
	if dstRect.Empty() || srcRect.Empty() {
		return
	}
	sr := srcRect.ImageRect().Add(src.Bounds().Min).Intersect(src.Bounds())
	if sr.Empty() {
		return
	}
	q.Scaler().Scale(dst, dstRect.ImageRect(), src, sr, xdraw.Over, nil)
}
