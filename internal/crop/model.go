package crop

import (
	"image-view/pkg/geometry"
)

// Model owns the current crop.
type Model struct {
	current Crop
}

// Crop returns the current crop.
func (m *Model) Crop() Crop {
	return m.current
}

// Commit replaces the crop with the image-space rectangle spanned by the two
// corners. Coordinates are relative to the full image, so a selection made
// while a crop is active must already include the crop offset.
//
// The corners are truncated to whole pixels and clamped to the image. Returns
// false and leaves the crop unchanged when the result is smaller than MinSize
// on either axis.
func (m *Model) Commit(minX, minY, maxX, maxY float64, imageWidth, imageHeight int) bool {
	if imageWidth <= 0 || imageHeight <= 0 {
		return false
	}
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	if maxX-minX < MinSize || maxY-minY < MinSize {
		return false
	}

	x := clamp(int(minX), 0, imageWidth-1)
	y := clamp(int(minY), 0, imageHeight-1)
	w := min(imageWidth-x, int(maxX)-x)
	h := min(imageHeight-y, int(maxY)-y)
	if w < MinSize || h < MinSize {
		return false
	}

	m.current = Of(geometry.NewRect(x, y, w, h))
	return true
}

// Reset clears the crop.
func (m *Model) Reset() {
	m.current = None()
}

// Rotate90 keeps the crop consistent with a clockwise turn of the image
// pixels. width and height are the dimensions after the turn.
func (m *Model) Rotate90(width, height int) {
	m.current = m.current.Rotate90(width, height)
}

// Rotate270 keeps the crop consistent with a counter-clockwise turn of the
// image pixels. width and height are the dimensions after the turn.
func (m *Model) Rotate270(width, height int) {
	m.current = m.current.Rotate270(width, height)
}

// Mirror keeps the crop consistent with a horizontal flip.
func (m *Model) Mirror(width int) {
	m.current = m.current.Mirror(width)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
