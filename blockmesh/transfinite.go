package blockmesh

import (
	"fmt"

	"github.com/notargets/AirfoilMesh/geometry"
	"github.com/notargets/AirfoilMesh/spline"
	"github.com/notargets/AirfoilMesh/utils"
	"gonum.org/v1/gonum/spatial/r2"
)

// Boundary holds the four sides of a block. Lower and Upper run in i,
// Left and Right run in j; Lower[0]=Left[0], Lower[U]=Right[0],
// Upper[0]=Left[V], Upper[U]=Right[V].
type Boundary struct {
	Lower, Upper geometry.Curve
	Left, Right  geometry.Curve
}

// Parametrization selects how boundary curves map onto the index grid
type Parametrization int

const (
	// ChordLength keeps the boundary points as given and blends with their
	// normalized arc length, preserving graded boundary spacing.
	ChordLength Parametrization = iota
	// EqualParameter evaluates linear fits of the boundaries at i/U and j/V.
	EqualParameter
)

// cornerTolerance is relative to the boundary extent
const cornerTolerance = 1e-9

func (bd Boundary) check() (u, v int, err error) {
	u, v = len(bd.Lower)-1, len(bd.Left)-1
	if u < 1 || v < 1 {
		return 0, 0, utils.Degenerate("boundary with U=%d, V=%d", u, v)
	}
	if len(bd.Upper) != u+1 || len(bd.Right) != v+1 {
		return 0, 0, fmt.Errorf("%w: opposite boundaries differ: lower %d, upper %d, left %d, right %d points",
			utils.ErrDegenerateInput, len(bd.Lower), len(bd.Upper), len(bd.Left), len(bd.Right))
	}
	lo, hi := geometry.Join(-1, bd.Lower, bd.Upper, bd.Left, bd.Right).Bounds()
	eps := cornerTolerance * (1 + r2.Norm(r2.Sub(hi, lo)))
	corners := [][2]r2.Vec{
		{bd.Lower[0], bd.Left[0]},
		{bd.Lower[u], bd.Right[0]},
		{bd.Upper[0], bd.Left[v]},
		{bd.Upper[u], bd.Right[v]},
	}
	for k, c := range corners {
		if r2.Norm(r2.Sub(c[0], c[1])) > eps {
			return 0, 0, utils.Degenerate("boundary corner %d does not close: (%g, %g) vs (%g, %g)",
				k+1, c[0].X, c[0].Y, c[1].X, c[1].Y)
		}
	}
	return u, v, nil
}

// sides returns the boundary points on the index grid and the blending
// coordinates along each side.
func (bd Boundary) sides(p Parametrization, u, v int) (lower, upper, left, right geometry.Curve,
	fl, fu, gl, gr []float64, err error) {
	if p == EqualParameter {
		fi, gj := geometry.Uniform(u), geometry.Uniform(v)
		var sp [4]*spline.Spline
		for k, c := range []geometry.Curve{bd.Lower, bd.Upper, bd.Left, bd.Right} {
			if sp[k], err = spline.Fit(c, 1); err != nil {
				return
			}
		}
		return sp[0].Points(fi), sp[1].Points(fi), sp[2].Points(gj), sp[3].Points(gj), fi, fi, gj, gj, nil
	}
	for _, c := range []geometry.Curve{bd.Lower, bd.Upper, bd.Left, bd.Right} {
		if err = c.Validate(); err != nil {
			return
		}
	}
	if fl, err = bd.Lower.Fractions(); err != nil {
		return
	}
	if fu, err = bd.Upper.Fractions(); err != nil {
		return
	}
	if gl, err = bd.Left.Fractions(); err != nil {
		return
	}
	if gr, err = bd.Right.Fractions(); err != nil {
		return
	}
	return bd.Lower, bd.Upper, bd.Left, bd.Right, fl, fu, gl, gr, nil
}

// coons fills the (u+1)x(v+1) grid from the boundary
func coons(bd Boundary, p Parametrization) ([]geometry.Curve, error) {
	u, v, err := bd.check()
	if err != nil {
		return nil, err
	}
	lower, upper, left, right, fl, fu, gl, gr, err := bd.sides(p, u, v)
	if err != nil {
		return nil, err
	}
	c1, c2, c3, c4 := lower[0], upper[0], lower[u], upper[u]

	lines := make([]geometry.Curve, v+1)
	for j := 0; j <= v; j++ {
		lines[j] = make(geometry.Curve, u+1)
		tj := float64(j) / float64(v)
		for i := 0; i <= u; i++ {
			ti := float64(i) / float64(u)
			// blending coordinates interpolate the side parametrizations
			xi := (1-tj)*fl[i] + tj*fu[i]
			eta := (1-ti)*gl[j] + ti*gr[j]

			pt := r2.Scale(1-xi, left[j])
			pt = r2.Add(pt, r2.Scale(xi, right[j]))
			pt = r2.Add(pt, r2.Scale(1-eta, lower[i]))
			pt = r2.Add(pt, r2.Scale(eta, upper[i]))
			pt = r2.Sub(pt, r2.Scale((1-xi)*(1-eta), c1))
			pt = r2.Sub(pt, r2.Scale((1-xi)*eta, c2))
			pt = r2.Sub(pt, r2.Scale(xi*(1-eta), c3))
			pt = r2.Sub(pt, r2.Scale(xi*eta, c4))
			lines[j][i] = pt
		}
	}
	return lines, nil
}

// Transfinite replaces the block by the Coons patch of bd. The block must
// be empty or already have bd's U.
func (b *BlockMesh) Transfinite(bd Boundary, p Parametrization) error {
	if u, _ := b.DivUV(); u >= 0 && u != len(bd.Lower)-1 {
		return fmt.Errorf("block %s: transfinite boundary has U=%d, block has U=%d", b.Name, len(bd.Lower)-1, u)
	}
	lines, err := coons(bd, p)
	if err != nil {
		return fmt.Errorf("block %s: %w", b.Name, err)
	}
	b.ULines = lines
	u, v := b.DivUV()
	tracer().P("block", b.Name).Debugf("transfinite fill %dx%d", u, v)
	return nil
}

// TransfiniteRegion re-interpolates the interior of the sub-rectangle
// [i0,i1]x[j0,j1] from its current boundary; nodes outside stay untouched.
func (b *BlockMesh) TransfiniteRegion(i0, i1, j0, j1 int, p Parametrization) error {
	u, v := b.DivUV()
	if i0 < 0 || j0 < 0 || i1 > u || j1 > v || i1-i0 < 1 || j1-j0 < 1 {
		return fmt.Errorf("block %s: region [%d,%d]x[%d,%d] outside %dx%d", b.Name, i0, i1, j0, j1, u, v)
	}
	bd := Boundary{
		Lower: b.ULines[j0][i0 : i1+1].Copy(),
		Upper: b.ULines[j1][i0 : i1+1].Copy(),
		Left:  b.Line(V, i0)[j0 : j1+1],
		Right: b.Line(V, i1)[j0 : j1+1],
	}
	lines, err := coons(bd, p)
	if err != nil {
		return fmt.Errorf("block %s: %w", b.Name, err)
	}
	for j := j0 + 1; j < j1; j++ {
		for i := i0 + 1; i < i1; i++ {
			b.ULines[j][i] = lines[j-j0][i-i0]
		}
	}
	return nil
}
