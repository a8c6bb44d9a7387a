package geometry

import "math"

// FitResult is the placement of a source inside a viewport.
// Scale maps source pixels to screen pixels.
type FitResult struct {
	Display Rect
	Scale   float64
}

// Fit computes the largest rectangle with the source aspect ratio that fits
// centered inside the viewport (letterbox / pillarbox).
// It returns false when the source or the viewport has no area.
func Fit(sourceWidth, sourceHeight, viewportWidth, viewportHeight int) (FitResult, bool) {
	if sourceWidth <= 0 || sourceHeight <= 0 || viewportWidth <= 0 || viewportHeight <= 0 {
		return FitResult{}, false
	}

	imgAspect := float64(sourceWidth) / float64(sourceHeight)
	ctrlAspect := float64(viewportWidth) / float64(viewportHeight)

	var w, h int
	if imgAspect > ctrlAspect {
		w = viewportWidth
		h = int(float64(viewportWidth) / imgAspect)
	} else {
		h = viewportHeight
		w = int(float64(viewportHeight) * imgAspect)
	}

	return FitResult{
		Display: Rect{
			X:      (viewportWidth - w) / 2,
			Y:      (viewportHeight - h) / 2,
			Width:  w,
			Height: h,
		},
		Scale: float64(w) / float64(sourceWidth),
	}, true
}

// FitSize is Fit for Size arguments.
func FitSize(source, viewport Size) (FitResult, bool) {
	return Fit(source.Width, source.Height, viewport.Width, viewport.Height)
}

// ClampToRect clamps p to the rectangle, edges included.
func ClampToRect(p Point, r Rect) Point {
	return Point{
		X: max(r.X, min(r.Right(), p.X)),
		Y: max(r.Y, min(r.Bottom(), p.Y)),
	}
}

// ScreenToImage maps a screen point to image space. The point is clamped to
// the display rectangle first so it never extrapolates past the visible image.
// cropOffset is the top-left of the active crop, or the zero point.
func ScreenToImage(p Point, fit FitResult, cropOffset PointF) PointF {
	if fit.Scale <= 0 {
		return cropOffset
	}
	c := ClampToRect(p, fit.Display)
	return PointF{
		X: float64(c.X-fit.Display.X)/fit.Scale + cropOffset.X,
		Y: float64(c.Y-fit.Display.Y)/fit.Scale + cropOffset.Y,
	}
}

// ImageToScreen maps an image-space point back onto the screen.
func ImageToScreen(p PointF, fit FitResult, cropOffset PointF) Point {
	return Point{
		X: fit.Display.X + int(math.Round((p.X-cropOffset.X)*fit.Scale)),
		Y: fit.Display.Y + int(math.Round((p.Y-cropOffset.Y)*fit.Scale)),
	}
}
