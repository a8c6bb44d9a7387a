package render

import (
	"image"
	"image/color"
	"image/draw"

	"image-view/pkg/geometry"
)

// Overlay colours.
var (
	SelectionShade = color.NRGBA{0, 0, 0, 155}
	GridColor      = color.NRGBA{155, 155, 155, 155}
)

// Line is an axis-aligned segment in screen space, From inclusive, To exclusive.
type Line struct {
	From geometry.Point
	To   geometry.Point
}

// DarkenRegions returns the parts of display that lie outside selection:
// a full-width band above and below, and the left and right pieces beside it.
// Empty pieces are omitted.
func DarkenRegions(display, selection geometry.Rect) []geometry.Rect {
	sel := selection.Intersect(display)
	if sel.Empty() {
		if display.Empty() {
			return nil
		}
		return []geometry.Rect{display}
	}

	candidates := []geometry.Rect{
		geometry.NewRect(display.X, display.Y, display.Width, sel.Y-display.Y),
		geometry.NewRect(display.X, sel.Bottom(), display.Width, display.Bottom()-sel.Bottom()),
		geometry.NewRect(display.X, sel.Y, sel.X-display.X, sel.Height),
		geometry.NewRect(sel.Right(), sel.Y, display.Right()-sel.Right(), sel.Height),
	}

	regions := make([]geometry.Rect, 0, len(candidates))
	for _, r := range candidates {
		if !r.Empty() {
			regions = append(regions, r)
		}
	}
	return regions
}

// GridLines returns the alignment grid for display: vertical and horizontal
// lines at one quarter, one half and three quarters.
func GridLines(display geometry.Rect) []Line {
	if display.Empty() {
		return nil
	}
	lines := make([]Line, 0, 6)
	for _, f := range []int{1, 2, 3} {
		x := display.X + display.Width*f/4
		y := display.Y + display.Height*f/4
		lines = append(lines,
			Line{From: geometry.Pt(x, display.Y), To: geometry.Pt(x, display.Bottom())},
			Line{From: geometry.Pt(display.X, y), To: geometry.Pt(display.Right(), y)},
		)
	}
	return lines
}

// FillRects blends c over each rectangle of dst.
func FillRects(dst draw.Image, rects []geometry.Rect, c color.Color) {
	src := &image.Uniform{C: c}
	for _, r := range rects {
		draw.Draw(dst, r.ImageRect(), src, image.Point{}, draw.Over)
	}
}

// DrawLines blends one-pixel axis-aligned lines of colour c onto dst.
func DrawLines(dst draw.Image, lines []Line, c color.Color) {
	src := &image.Uniform{C: c}
	for _, l := range lines {
		r := image.Rect(l.From.X, l.From.Y, l.To.X, l.To.Y)
		if r.Dx() == 0 {
			r.Max.X++
		}
		if r.Dy() == 0 {
			r.Max.Y++
		}
		draw.Draw(dst, r, src, image.Point{}, draw.Over)
	}
}
