package blockmesh

import (
	"errors"
	"math"
	"testing"

	"github.com/notargets/AirfoilMesh/geometry"
	"github.com/notargets/AirfoilMesh/spline"
	"github.com/notargets/AirfoilMesh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

// curvedBoundary is a quad with a bulging lower side, graded left side
func curvedBoundary(u, v int) Boundary {
	lower := make(geometry.Curve, u+1)
	for i := range lower {
		x := float64(i) / float64(u)
		lower[i] = r2.Vec{X: 2 * x, Y: -0.3 * math.Sin(math.Pi*x)}
	}
	upper := geometry.Line(r2.Vec{X: 0, Y: 1}, r2.Vec{X: 2, Y: 1.5}, geometry.Uniform(u))
	sp, _ := Spacing(v, 4, 1)
	left := make(geometry.Curve, v+1)
	for j, s := range sp {
		left[j] = r2.Vec{X: 0, Y: s}
	}
	right := geometry.Line(r2.Vec{X: 2, Y: 0}, r2.Vec{X: 2, Y: 1.5}, geometry.Uniform(v))
	return Boundary{Lower: lower, Upper: upper, Left: left, Right: right}
}

func TestTransfiniteBoundaryExactness(t *testing.T) {
	bd := curvedBoundary(8, 5)

	t.Run("chord length keeps boundary points", func(t *testing.T) {
		b := New("tfi")
		require.NoError(t, b.Transfinite(bd, ChordLength))
		u, v := b.DivUV()
		require.Equal(t, 8, u)
		require.Equal(t, 5, v)
		for i := 0; i <= u; i++ {
			assertVec(t, bd.Lower[i], b.Node(i, 0), tol, "lower %d", i)
			assertVec(t, bd.Upper[i], b.Node(i, v), tol, "upper %d", i)
		}
		for j := 0; j <= v; j++ {
			assertVec(t, bd.Left[j], b.Node(0, j), tol, "left %d", j)
			assertVec(t, bd.Right[j], b.Node(u, j), tol, "right %d", j)
		}
		q := Quality(b)
		assert.Equal(t, 0, q.Inverted)
	})

	t.Run("equal parameter matches linear fits", func(t *testing.T) {
		b := New("tfi")
		require.NoError(t, b.Transfinite(bd, EqualParameter))
		u, v := b.DivUV()
		fits := make([]*spline.Spline, 4)
		for k, c := range []geometry.Curve{bd.Lower, bd.Upper, bd.Left, bd.Right} {
			var err error
			fits[k], err = spline.Fit(c, 1)
			require.NoError(t, err)
		}
		lo := fits[0].Points(geometry.Uniform(u))
		up := fits[1].Points(geometry.Uniform(u))
		le := fits[2].Points(geometry.Uniform(v))
		ri := fits[3].Points(geometry.Uniform(v))
		for i := 0; i <= u; i++ {
			assertVec(t, lo[i], b.Node(i, 0), tol, "lower %d", i)
			assertVec(t, up[i], b.Node(i, v), tol, "upper %d", i)
		}
		for j := 0; j <= v; j++ {
			assertVec(t, le[j], b.Node(0, j), tol, "left %d", j)
			assertVec(t, ri[j], b.Node(u, j), tol, "right %d", j)
		}
	})
}

func TestTransfiniteBilinear(t *testing.T) {
	c1, c3 := r2.Vec{X: 0, Y: 0}, r2.Vec{X: 3, Y: 0.5}
	c2, c4 := r2.Vec{X: -0.5, Y: 2}, r2.Vec{X: 2.5, Y: 3}
	u, v := 6, 4
	bd := Boundary{
		Lower: geometry.Line(c1, c3, geometry.Uniform(u)),
		Upper: geometry.Line(c2, c4, geometry.Uniform(u)),
		Left:  geometry.Line(c1, c2, geometry.Uniform(v)),
		Right: geometry.Line(c3, c4, geometry.Uniform(v)),
	}
	for _, p := range []Parametrization{ChordLength, EqualParameter} {
		b := New("bilinear")
		require.NoError(t, b.Transfinite(bd, p))
		for j := 0; j <= v; j++ {
			for i := 0; i <= u; i++ {
				s, r := float64(i)/float64(u), float64(j)/float64(v)
				want := r2.Add(
					r2.Add(r2.Scale((1-s)*(1-r), c1), r2.Scale(s*(1-r), c3)),
					r2.Add(r2.Scale((1-s)*r, c2), r2.Scale(s*r, c4)))
				assertVec(t, want, b.Node(i, j), 1e-12, "node %d,%d", i, j)
			}
		}
	}
}

func TestTransfiniteErrors(t *testing.T) {
	bd := curvedBoundary(4, 3)
	bad := bd
	bad.Right = bad.Right[:3]
	assert.True(t, errors.Is(New("x").Transfinite(bad, ChordLength), utils.ErrDegenerateInput))

	open := bd
	open.Upper = geometry.Line(r2.Vec{X: 0.1, Y: 1}, r2.Vec{X: 2, Y: 1.5}, geometry.Uniform(4))
	assert.True(t, errors.Is(New("x").Transfinite(open, ChordLength), utils.ErrDegenerateInput))

	// block with a different U
	assert.Error(t, rectGrid(3, 2, 1, 1).Transfinite(bd, ChordLength))
}

func TestTransfiniteRegion(t *testing.T) {
	b := rectGrid(6, 6, 6, 6)
	// disturb the interior, keep a frame around the region
	for j := 2; j <= 3; j++ {
		for i := 2; i <= 4; i++ {
			b.SetNode(i, j, r2.Vec{X: 100, Y: -100})
		}
	}
	b.SetNode(5, 5, r2.Vec{X: 7, Y: 7})
	require.NoError(t, b.TransfiniteRegion(1, 5, 1, 4, ChordLength))
	for j := 2; j <= 3; j++ {
		for i := 2; i <= 4; i++ {
			assertVec(t, r2.Vec{X: float64(i), Y: float64(j)}, b.Node(i, j), 1e-12, "node %d,%d", i, j)
		}
	}
	// outside the region nothing moves
	assert.Equal(t, r2.Vec{X: 7, Y: 7}, b.Node(5, 5))

	assert.Error(t, b.TransfiniteRegion(0, 7, 0, 3, ChordLength))
	assert.Error(t, b.TransfiniteRegion(2, 2, 0, 3, ChordLength))
}
