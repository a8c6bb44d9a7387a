package geometry

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Orientation accumulates the quarter-turn rotations and mirrors applied to an
// image since it was loaded. The matrix maps source coordinates (the image as
// loaded) to current coordinates, in continuous pixel-edge space:
//
//	[a b tx]
//	[c d ty]
//	[0 0  1]
type Orientation struct {
	m *mat.Dense
}

// NewOrientation returns the identity orientation.
func NewOrientation() *Orientation {
	return &Orientation{m: identity3()}
}

func identity3() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}

// Reset restores the identity.
func (o *Orientation) Reset() {
	o.m = identity3()
}

// Rotate90 records a clockwise quarter turn of a width x height image.
// (x, y) -> (height - y, x)
func (o *Orientation) Rotate90(width, height int) {
	o.apply(mat.NewDense(3, 3, []float64{
		0, -1, float64(height),
		1, 0, 0,
		0, 0, 1,
	}))
}

// Rotate270 records a counter-clockwise quarter turn of a width x height image.
// (x, y) -> (y, width - x)
func (o *Orientation) Rotate270(width, height int) {
	o.apply(mat.NewDense(3, 3, []float64{
		0, 1, 0,
		-1, 0, float64(width),
		0, 0, 1,
	}))
}

// Mirror records a horizontal flip of an image of the given width.
// (x, y) -> (width - x, y)
func (o *Orientation) Mirror(width int) {
	o.apply(mat.NewDense(3, 3, []float64{
		-1, 0, float64(width),
		0, 1, 0,
		0, 0, 1,
	}))
}

func (o *Orientation) apply(t *mat.Dense) {
	var next mat.Dense
	next.Mul(t, o.m)
	o.m = &next
}

// IsIdentity reports whether no net transform has been applied.
func (o *Orientation) IsIdentity() bool {
	return mat.EqualApprox(o.m, identity3(), 1e-9)
}

// Forward maps a source point to current coordinates.
func (o *Orientation) Forward(p PointF) PointF {
	return transformPoint(o.m, p)
}

// Inverse maps a current point back to source coordinates.
func (o *Orientation) Inverse(p PointF) (PointF, bool) {
	var inv mat.Dense
	if err := inv.Inverse(o.m); err != nil {
		return PointF{}, false
	}
	return transformPoint(&inv, p), true
}

// MapRect maps a rectangle in current coordinates to source coordinates.
func (o *Orientation) MapRect(r Rect) (Rect, bool) {
	a, ok := o.Inverse(PointF{X: float64(r.X), Y: float64(r.Y)})
	if !ok {
		return Rect{}, false
	}
	b, _ := o.Inverse(PointF{X: float64(r.Right()), Y: float64(r.Bottom())})
	return RectBetween(
		Point{X: int(math.Round(a.X)), Y: int(math.Round(a.Y))},
		Point{X: int(math.Round(b.X)), Y: int(math.Round(b.Y))},
	), true
}

func transformPoint(m mat.Matrix, p PointF) PointF {
	v := mat.NewVecDense(3, []float64{p.X, p.Y, 1})
	var out mat.VecDense
	out.MulVec(m, v)
	return PointF{X: out.AtVec(0), Y: out.AtVec(1)}
}
