package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrientation_Rotate90(t *testing.T) {
	o := NewOrientation()
	o.Rotate90(100, 50)

	// Source top-left corner moves to the top-right of the 50x100 result.
	got := o.Forward(PointF{X: 0, Y: 0})
	assert.InDelta(t, 50, got.X, 1e-9)
	assert.InDelta(t, 0, got.Y, 1e-9)

	got = o.Forward(PointF{X: 100, Y: 50})
	assert.InDelta(t, 0, got.X, 1e-9)
	assert.InDelta(t, 100, got.Y, 1e-9)
}

func TestOrientation_RoundTrips(t *testing.T) {
	tests := []struct {
		name  string
		apply func(o *Orientation)
	}{
		{"90 then 270", func(o *Orientation) {
			o.Rotate90(100, 50)
			o.Rotate270(50, 100)
		}},
		{"four quarter turns", func(o *Orientation) {
			o.Rotate90(100, 50)
			o.Rotate90(50, 100)
			o.Rotate90(100, 50)
			o.Rotate90(50, 100)
		}},
		{"mirror twice", func(o *Orientation) {
			o.Mirror(100)
			o.Mirror(100)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOrientation()
			tt.apply(o)
			assert.True(t, o.IsIdentity())
		})
	}
}

func TestOrientation_MapRect(t *testing.T) {
	o := NewOrientation()
	o.Mirror(100)

	src, ok := o.MapRect(NewRect(10, 5, 20, 15))
	require.True(t, ok)
	assert.Equal(t, NewRect(70, 5, 20, 15), src)

	o.Reset()
	o.Rotate90(100, 50)
	// Inverse of a clockwise turn: (x, y) -> (y, 50 - x).
	src, ok = o.MapRect(NewRect(10, 20, 5, 30))
	require.True(t, ok)
	assert.Equal(t, NewRect(20, 35, 30, 5), src)
}
