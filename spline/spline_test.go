package spline

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/notargets/AirfoilMesh/geometry"
	"github.com/notargets/AirfoilMesh/utils"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

// arc of the unit circle from angle a0 to a1 through n points
func arc(n int, a0, a1 float64) geometry.Curve {
	c := make(geometry.Curve, n)
	for i := range c {
		th := a0 + (a1-a0)*float64(i)/float64(n-1)
		c[i] = r2.Vec{X: math.Cos(th), Y: math.Sin(th)}
	}
	return c
}

func TestFitRoundTrip(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	pts := arc(20, 0, 2*math.Pi*19/20)
	for _, degree := range []int{1, 2, 3} {
		sp, err := Fit(pts, degree)
		require.NoError(t, err, "degree %d", degree)
		assert.Len(t, sp.Knots, len(pts)+degree+1)
		assert.Equal(t, 0.0, sp.U[0])
		assert.Equal(t, 1.0, sp.U[len(sp.U)-1])

		x, y := sp.Evaluate(sp.U, 0)
		px, py := pts.XY()
		if diff := cmp.Diff(px, x, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("degree %d x mismatch (-want +got):\n%s", degree, diff)
		}
		if diff := cmp.Diff(py, y, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("degree %d y mismatch (-want +got):\n%s", degree, diff)
		}
	}
}

func TestFitErrors(t *testing.T) {
	t.Run("too few points", func(t *testing.T) {
		_, err := Fit(arc(3, 0, 1), 3)
		assert.True(t, errors.Is(err, utils.ErrDegenerateInput))
	})
	t.Run("coincident points", func(t *testing.T) {
		pts := geometry.Curve{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 1}}
		_, err := Fit(pts, 2)
		assert.True(t, errors.Is(err, utils.ErrDegenerateInput))
	})
	t.Run("bad degree", func(t *testing.T) {
		_, err := Fit(arc(10, 0, 1), 4)
		assert.True(t, errors.Is(err, utils.ErrDegenerateInput))
	})
}

func TestEvaluateDerivatives(t *testing.T) {
	// a straight line traversed at constant speed
	line := geometry.Curve{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: 2, Y: 4}, {X: 3, Y: 6}}
	sp, err := Fit(line, 1)
	require.NoError(t, err)

	tt := []float64{0, 0.1, 0.5, 0.9, 1}
	dx, dy := sp.Evaluate(tt, 1)
	for i := range tt {
		assert.InDelta(t, 3.0, dx[i], 1e-12)
		assert.InDelta(t, 6.0, dy[i], 1e-12)
	}
	ddx, ddy := sp.Evaluate(tt, 2)
	assert.Equal(t, make([]float64, len(tt)), ddx)
	assert.Equal(t, make([]float64, len(tt)), ddy)

	// a quadratic through collinear evenly spaced points is the same line
	sp2, err := Fit(line, 2)
	require.NoError(t, err)
	x, y := sp2.Evaluate([]float64{0.25, 0.75}, 0)
	assert.InDelta(t, 0.75, x[0], 1e-12)
	assert.InDelta(t, 4.5, y[1], 1e-12)
	dx, _ = sp2.Evaluate([]float64{0.3}, 1)
	assert.InDelta(t, 3.0, dx[0], 1e-12)
}

func TestCircleDerivativesGiveUnitRadius(t *testing.T) {
	sp, err := Fit(arc(40, 0, math.Pi), 3)
	require.NoError(t, err)
	sc, err := Sample(sp, 50)
	require.NoError(t, err)
	for i := 5; i < sc.Len()-5; i++ {
		n := sc.DX[i]*sc.DX[i] + sc.DY[i]*sc.DY[i]
		d := sc.DX[i]*sc.DDY[i] - sc.DY[i]*sc.DDX[i]
		assert.InDelta(t, 1.0, math.Pow(n, 1.5)/math.Abs(d), 0.01, "sample %d", i)
	}
}

func TestClone(t *testing.T) {
	sp, err := Fit(arc(5, 0, 1), 2)
	require.NoError(t, err)
	c := sp.Clone()
	c.CX[0] = 42
	assert.NotEqual(t, 42.0, sp.CX[0])
}
