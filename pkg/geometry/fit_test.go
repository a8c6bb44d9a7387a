package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name         string
		srcW, srcH   int
		viewW, viewH int
		want         Rect
	}{
		{"exact", 1000, 500, 1000, 500, Rect{0, 0, 1000, 500}},
		{"wide source letterboxed", 1000, 500, 800, 800, Rect{0, 200, 800, 400}},
		{"tall source pillarboxed", 500, 1000, 800, 800, Rect{200, 0, 400, 800}},
		{"upscale small source", 10, 10, 300, 200, Rect{50, 0, 200, 200}},
		{"odd remainder", 3, 2, 100, 100, Rect{0, 17, 100, 66}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit, ok := Fit(tt.srcW, tt.srcH, tt.viewW, tt.viewH)
			require.True(t, ok)
			assert.Equal(t, tt.want, fit.Display)
		})
	}
}

func TestFit_Degenerate(t *testing.T) {
	for _, args := range [][4]int{
		{0, 10, 100, 100},
		{10, 0, 100, 100},
		{10, 10, 0, 100},
		{10, 10, 100, 0},
		{-5, 10, 100, 100},
	} {
		_, ok := Fit(args[0], args[1], args[2], args[3])
		assert.False(t, ok, "Fit%v", args)
	}
}

func TestFit_CenteredAndScaled(t *testing.T) {
	sources := []Size{{1, 1}, {7, 3}, {640, 480}, {1920, 1080}, {333, 1001}, {4000, 17}}
	viewports := []Size{{1, 1}, {99, 101}, {800, 600}, {1280, 720}, {517, 1333}}

	for _, src := range sources {
		for _, vp := range viewports {
			fit, ok := FitSize(src, vp)
			require.True(t, ok)

			d := fit.Display
			assert.LessOrEqual(t, math.Abs(float64(vp.Width-d.Width)/2-float64(d.X)), 1.0, "x centering %v in %v", src, vp)
			assert.LessOrEqual(t, math.Abs(float64(vp.Height-d.Height)/2-float64(d.Y)), 1.0, "y centering %v in %v", src, vp)
			assert.LessOrEqual(t, d.Right(), vp.Width)
			assert.LessOrEqual(t, d.Bottom(), vp.Height)
			assert.Equal(t, d.Width, int(math.Round(fit.Scale*float64(src.Width))), "scale %v in %v", src, vp)
		}
	}
}

func TestScreenToImage(t *testing.T) {
	fit, ok := Fit(1000, 500, 500, 500)
	require.True(t, ok)
	require.Equal(t, Rect{0, 125, 500, 250}, fit.Display)
	require.InDelta(t, 0.5, fit.Scale, 1e-12)

	tests := []struct {
		name   string
		p      Point
		offset PointF
		want   PointF
	}{
		{"origin of display", Pt(0, 125), PointF{}, PointF{0, 0}},
		{"center", Pt(250, 250), PointF{}, PointF{500, 250}},
		{"clamped above", Pt(250, 0), PointF{}, PointF{500, 0}},
		{"clamped past bottom right", Pt(900, 900), PointF{}, PointF{1000, 500}},
		{"clamped negative", Pt(-40, -40), PointF{}, PointF{0, 0}},
		{"crop offset added", Pt(10, 135), PointF{100, 50}, PointF{120, 70}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScreenToImage(tt.p, fit, tt.offset)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
		})
	}
}

func TestImageToScreen_RoundTrip(t *testing.T) {
	fit, ok := Fit(800, 400, 1000, 1000)
	require.True(t, ok)
	offset := PointF{X: 40, Y: 30}

	for _, p := range []Point{Pt(0, 0), Pt(100, 200), Pt(1000, 1000), Pt(512, 384)} {
		clamped := ClampToRect(p, fit.Display)
		back := ImageToScreen(ScreenToImage(p, fit, offset), fit, offset)
		assert.Equal(t, clamped, back)
	}
}

func TestRectBetweenAndIntersect(t *testing.T) {
	r := RectBetween(Pt(30, 40), Pt(10, 5))
	assert.Equal(t, Rect{10, 5, 20, 35}, r)

	assert.Equal(t, Rect{10, 10, 10, 10}, NewRect(0, 0, 20, 20).Intersect(NewRect(10, 10, 30, 30)))
	assert.True(t, NewRect(0, 0, 5, 5).Intersect(NewRect(5, 0, 5, 5)).Empty())
	assert.True(t, NewRect(2, 3, 4, 5).Within(6, 8))
	assert.False(t, NewRect(2, 3, 4, 5).Within(5, 8))
}
