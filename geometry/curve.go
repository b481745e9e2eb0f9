package geometry

import (
	"fmt"
	"math"

	"github.com/notargets/AirfoilMesh/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/spatial/r2"
)

// Curve is an ordered polyline in the plane. Whether it is closed is known
// to the caller and never stored; a closed curve does not repeat its first
// point at the end.
type Curve []r2.Vec

// NewCurve builds a curve from parallel coordinate slices
func NewCurve(x, y []float64) (Curve, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf("coordinate length mismatch: len(x)=%d, len(y)=%d", len(x), len(y))
	}
	c := make(Curve, len(x))
	for i := range x {
		c[i] = r2.Vec{X: x[i], Y: y[i]}
	}
	return c, nil
}

// XY splits the curve into coordinate slices
func (c Curve) XY() (x, y []float64) {
	x = make([]float64, len(c))
	y = make([]float64, len(c))
	for i, p := range c {
		x[i], y[i] = p.X, p.Y
	}
	return
}

func (c Curve) Len() int { return len(c) }

// Copy returns an independent copy
func (c Curve) Copy() Curve {
	return append(Curve(nil), c...)
}

// Validate checks that the curve has at least two points and that no two
// consecutive points coincide.
func (c Curve) Validate() error {
	if len(c) < 2 {
		return utils.Degenerate("curve has %d points, need at least 2", len(c))
	}
	for i, p := range c {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) {
			return utils.Degenerate("point %d is NaN", i)
		}
		if i > 0 && p == c[i-1] {
			return utils.Degenerate("points %d and %d coincide at (%g, %g)", i-1, i, p.X, p.Y)
		}
	}
	return nil
}

// Reversed returns the curve traversed in the opposite direction
func (c Curve) Reversed() Curve {
	r := make(Curve, len(c))
	for i, p := range c {
		r[len(c)-1-i] = p
	}
	return r
}

// Join concatenates curves. When the first point of a part lies within eps
// of the last point collected so far it is dropped.
func Join(eps float64, parts ...Curve) Curve {
	var out Curve
	for _, part := range parts {
		for k, p := range part {
			if k == 0 && len(out) > 0 && r2.Norm(r2.Sub(p, out[len(out)-1])) <= eps {
				continue
			}
			out = append(out, p)
		}
	}
	return out
}

// SegmentLengths returns the length of each of the len(c)-1 segments
func (c Curve) SegmentLengths() []float64 {
	if len(c) < 2 {
		return nil
	}
	ds := make([]float64, len(c)-1)
	for i := range ds {
		ds[i] = r2.Norm(r2.Sub(c[i+1], c[i]))
	}
	return ds
}

// ArcLength returns the cumulative arc length at every point, starting at 0
func (c Curve) ArcLength() []float64 {
	s := make([]float64, len(c))
	if len(c) < 2 {
		return s
	}
	floats.CumSum(s[1:], c.SegmentLengths())
	return s
}

// Length is the total polyline length
func (c Curve) Length() float64 {
	return floats.Sum(c.SegmentLengths())
}

// Fractions returns the arc length normalized to [0,1]
func (c Curve) Fractions() ([]float64, error) {
	s := c.ArcLength()
	if len(s) < 2 || s[len(s)-1] == 0 {
		return nil, utils.Degenerate("curve of %d points has zero length", len(c))
	}
	floats.Scale(1/s[len(s)-1], s)
	s[len(s)-1] = 1
	return s, nil
}

// Resample places len(fractions) points along the curve at the given
// normalized arc length positions. Fractions outside [0,1] clamp to the ends.
func (c Curve) Resample(fractions []float64) (Curve, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s, err := c.Fractions()
	if err != nil {
		return nil, err
	}
	x, y := c.XY()
	var px, py interp.PiecewiseLinear
	if err = px.Fit(s, x); err != nil {
		return nil, err
	}
	if err = py.Fit(s, y); err != nil {
		return nil, err
	}
	out := make(Curve, len(fractions))
	for i, f := range fractions {
		out[i] = r2.Vec{X: px.Predict(f), Y: py.Predict(f)}
	}
	return out, nil
}

// Uniform returns n+1 evenly spaced fractions covering [0,1]
func Uniform(n int) []float64 {
	if n < 1 {
		return []float64{0}
	}
	return floats.Span(make([]float64, n+1), 0, 1)
}

// Line places points on the straight segment p0→p1 at the given fractions
func Line(p0, p1 r2.Vec, fractions []float64) Curve {
	d := r2.Sub(p1, p0)
	out := make(Curve, len(fractions))
	for i, f := range fractions {
		out[i] = r2.Add(p0, r2.Scale(f, d))
	}
	return out
}

// Tangents returns unit tangents by central differences. Open curves use
// one-sided differences at their ends, closed curves wrap around.
func (c Curve) Tangents(closed bool) ([]r2.Vec, error) {
	n := len(c)
	if n < 2 {
		return nil, utils.Degenerate("curve has %d points, cannot form tangents", n)
	}
	t := make([]r2.Vec, n)
	for i := range c {
		var prev, next r2.Vec
		switch {
		case closed:
			prev, next = c[(i-1+n)%n], c[(i+1)%n]
		case i == 0:
			prev, next = c[0], c[1]
		case i == n-1:
			prev, next = c[n-2], c[n-1]
		default:
			prev, next = c[i-1], c[i+1]
		}
		e := r2.Sub(next, prev)
		l := r2.Norm(e)
		if l == 0 {
			return nil, utils.Degenerate("zero tangent at point %d (%g, %g)", i, c[i].X, c[i].Y)
		}
		t[i] = r2.Scale(1/l, e)
	}
	return t, nil
}

// Normals returns unit normals (e_y, -e_x) of the tangents e, which point
// to the right of the direction of travel: outward for a counter-clockwise
// contour.
func (c Curve) Normals(closed bool) ([]r2.Vec, error) {
	t, err := c.Tangents(closed)
	if err != nil {
		return nil, err
	}
	for i, e := range t {
		t[i] = r2.Vec{X: e.Y, Y: -e.X}
	}
	return t, nil
}

// Bounds returns the lower-left and upper-right corners of the bounding box
func (c Curve) Bounds() (lo, hi r2.Vec) {
	if len(c) == 0 {
		return
	}
	lo, hi = c[0], c[0]
	for _, p := range c[1:] {
		lo.X, lo.Y = math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)
		hi.X, hi.Y = math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)
	}
	return
}

// MinX returns the index of the leftmost point
func (c Curve) MinX() int {
	x, _ := c.XY()
	return floats.MinIdx(x)
}
