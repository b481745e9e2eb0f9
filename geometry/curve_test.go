package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/notargets/AirfoilMesh/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-12

func circle(n int) Curve {
	c := make(Curve, n)
	for i := range c {
		th := 2 * math.Pi * float64(i) / float64(n)
		c[i] = r2.Vec{X: math.Cos(th), Y: math.Sin(th)}
	}
	return c
}

func TestCurveBasics(t *testing.T) {
	c, err := NewCurve([]float64{0, 1, 1}, []float64{0, 0, 2})
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	x, y := c.XY()
	assert.Equal(t, []float64{0, 1, 1}, x)
	assert.Equal(t, []float64{0, 0, 2}, y)

	assert.InDelta(t, 3.0, c.Length(), tol)
	if diff := cmp.Diff([]float64{0, 1, 3}, c.ArcLength(), cmpopts.EquateApprox(0, tol)); diff != "" {
		t.Errorf("arc length mismatch (-want +got):\n%s", diff)
	}
	f, err := c.Fractions()
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{0, 1.0 / 3, 1}, f, cmpopts.EquateApprox(0, tol)); diff != "" {
		t.Errorf("fractions mismatch (-want +got):\n%s", diff)
	}

	r := c.Reversed()
	assert.Equal(t, c[0], r[2])
	assert.Equal(t, c[2], r[0])

	_, err = NewCurve([]float64{0}, []float64{0, 1})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("coincident consecutive points", func(t *testing.T) {
		c := Curve{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}}
		assert.True(t, errors.Is(c.Validate(), utils.ErrDegenerateInput))
	})
	t.Run("too short", func(t *testing.T) {
		assert.True(t, errors.Is(Curve{{X: 0, Y: 0}}.Validate(), utils.ErrDegenerateInput))
	})
	t.Run("NaN", func(t *testing.T) {
		for k := 0; k < 3; k++ {
			c := Curve{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
			c[k].Y = math.NaN()
			err := c.Validate()
			assert.True(t, errors.Is(err, utils.ErrDegenerateInput), "NaN at %d: %v", k, err)
		}
	})
}

func TestJoin(t *testing.T) {
	a := Curve{{X: 0, Y: 0}, {X: 1, Y: 0}}
	b := Curve{{X: 1, Y: 0}, {X: 2, Y: 0}}
	c := Curve{{X: 2, Y: 1e-3}, {X: 3, Y: 0}}
	j := Join(1e-9, a, b, c)
	assert.Len(t, j, 5)
	assert.Equal(t, r2.Vec{X: 2, Y: 1e-3}, j[3])
}

func TestResample(t *testing.T) {
	c := Curve{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}}
	r, err := c.Resample([]float64{0, 0.25, 0.5, 0.75, 1, 1.5})
	require.NoError(t, err)
	want := Curve{{X: 0, Y: 0}, {X: 0.5, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0.5}, {X: 1, Y: 1}, {X: 1, Y: 1}}
	for i := range want {
		assert.InDelta(t, want[i].X, r[i].X, tol, "x[%d]", i)
		assert.InDelta(t, want[i].Y, r[i].Y, tol, "y[%d]", i)
	}
}

func TestLineAndUniform(t *testing.T) {
	u := Uniform(4)
	assert.Equal(t, []float64{0, 0.25, 0.5, 0.75, 1}, u)
	l := Line(r2.Vec{X: 1, Y: 1}, r2.Vec{X: 3, Y: 1}, u)
	assert.Len(t, l, 5)
	assert.InDelta(t, 1.5, l[1].X, tol)
	assert.InDelta(t, 3.0, l[4].X, tol)
}

func TestNormals(t *testing.T) {
	t.Run("counter-clockwise circle points outward", func(t *testing.T) {
		c := circle(32)
		n, err := c.Normals(true)
		require.NoError(t, err)
		for i, p := range c {
			assert.InDelta(t, p.X, n[i].X, 1e-12, "normal %d", i)
			assert.InDelta(t, p.Y, n[i].Y, 1e-12, "normal %d", i)
		}
	})
	t.Run("open line uses one-sided ends", func(t *testing.T) {
		c := Curve{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
		n, err := c.Normals(false)
		require.NoError(t, err)
		for _, v := range n {
			assert.InDelta(t, 0.0, v.X, tol)
			assert.InDelta(t, -1.0, v.Y, tol)
		}
	})
	t.Run("zero tangent", func(t *testing.T) {
		c := Curve{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 0}}
		_, err := c.Normals(false)
		assert.True(t, errors.Is(err, utils.ErrDegenerateInput))
	})
}

func TestBoundsAndMinX(t *testing.T) {
	c := circle(8)
	lo, hi := c.Bounds()
	assert.InDelta(t, -1.0, lo.X, tol)
	assert.InDelta(t, 1.0, hi.Y, tol)
	assert.Equal(t, 4, c.MinX())
}
