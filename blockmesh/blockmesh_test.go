package blockmesh

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

const tol = 1e-12

func assertVec(t *testing.T, want, got r2.Vec, delta float64, msgAndArgs ...interface{}) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, delta, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, delta, msgAndArgs...)
}

// rectGrid is a (u+1)x(v+1) block of the rectangle [0,w]x[0,h]
func rectGrid(u, v int, w, h float64) *BlockMesh {
	b := New("rect")
	for j := 0; j <= v; j++ {
		line := geometry.Line(r2.Vec{Y: h * float64(j) / float64(v)},
			r2.Vec{X: w, Y: h * float64(j) / float64(v)}, geometry.Uniform(u))
		if err := b.AddLine(line); err != nil {
			panic(err)
		}
	}
	return b
}

func TestBlockMeshAccess(t *testing.T) {
	b := New("empty")
	u, v := b.DivUV()
	assert.Equal(t, -1, u)
	assert.Equal(t, -1, v)

	b = rectGrid(4, 2, 4, 2)
	u, v = b.DivUV()
	assert.Equal(t, 4, u)
	assert.Equal(t, 2, v)
	assert.Equal(t, r2.Vec{X: 3, Y: 1}, b.Node(3, 1))
	assert.Equal(t, 1*5+3, b.NodeID(3, 1))
	assert.Len(t, b.Points(), 15)

	col := b.Line(V, -1)
	assert.Equal(t, geometry.Curve{{X: 4, Y: 0}, {X: 4, Y: 1}, {X: 4, Y: 2}}, col)
	assert.Len(t, b.VLines(), 5)
	assert.Equal(t, b.Line(U, 2), b.Line(U, -1))

	cells := b.Cells()
	require.Len(t, cells, 8)
	assert.Equal(t, []int{0, 1, 6, 5}, cells[0])
	assert.Equal(t, []int{8, 9, 14, 13}, cells[7])

	// a line of the wrong length
	assert.Error(t, b.AddLine(geometry.Curve{{X: 0, Y: 0}, {X: 1, Y: 0}}))

	// copies are independent
	l := b.Line(U, 0)
	l[0] = r2.Vec{X: 99}
	assert.Equal(t, r2.Vec{}, b.Node(0, 0))
	c := b.Clone()
	c.SetNode(1, 1, r2.Vec{X: -1})
	assert.Equal(t, r2.Vec{X: 1, Y: 1}, b.Node(1, 1))
}

func TestSpacing(t *testing.T) {
	for _, tc := range []struct {
		divisions     int
		ratio, length float64
		delta         float64
	}{
		{15, 3, 0.04, 1e-9},
		{6, 3, 0.04, 1e-9},
		{10, 0.2, 1, 1e-9},
		// unit ratio is nudged off 1, leaving cancellation error
		{8, 1, 2, 1e-4},
	} {
		sp, err := Spacing(tc.divisions, tc.ratio, tc.length)
		require.NoError(t, err)
		require.Len(t, sp, tc.divisions+1)
		assert.Equal(t, 0.0, sp[0])
		assert.Equal(t, tc.length, sp[tc.divisions])
		first := sp[1] - sp[0]
		last := sp[tc.divisions] - sp[tc.divisions-1]
		assert.InDelta(t, tc.ratio, last/first, tc.delta, "divisions %d ratio %g", tc.divisions, tc.ratio)
		for k := 1; k < len(sp); k++ {
			assert.Greater(t, sp[k], sp[k-1])
		}
	}
	sp, err := Spacing(1, 3, 0.5)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5}, sp)

	_, err = Spacing(0, 3, 1)
	assert.True(t, errors.Is(err, utils.ErrDegenerateInput))
	_, err = Spacing(4, -1, 1)
	assert.True(t, errors.Is(err, utils.ErrDegenerateInput))
}

func TestExtrudeLine(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()

	// counter-clockwise arc of radius 1: outward normals point radially
	line := make(geometry.Curve, 11)
	for i := range line {
		th := math.Pi * float64(i) / 10
		line[i] = r2.Vec{X: math.Cos(th), Y: math.Sin(th)}
	}
	b := New("arc")
	require.NoError(t, b.ExtrudeLine(line, 0.5, 5, 3))
	u, v := b.DivUV()
	assert.Equal(t, 10, u)
	assert.Equal(t, 5, v)
	assert.Equal(t, line, b.Line(U, 0))

	// interior points move radially by exactly the spacing
	sp, _ := Spacing(5, 3, 0.5)
	for j := 1; j <= v; j++ {
		for i := 1; i < u; i++ {
			assert.InDelta(t, 1+sp[j], r2.Norm(b.Node(i, j)), 1e-12, "node %d,%d", i, j)
		}
	}
	// the last line sits at the full length, last/first spacing is the ratio
	assert.InDelta(t, 1.5, r2.Norm(b.Node(5, 5)), 1e-12)
	d1 := r2.Norm(b.Node(5, 1)) - 1
	dn := r2.Norm(b.Node(5, 5)) - r2.Norm(b.Node(5, 4))
	assert.InDelta(t, 3.0, dn/d1, 1e-9)

	// zero tangent
	err := New("bad").ExtrudeLine(geometry.Curve{{X: 0, Y: 0}, {X: 0, Y: 0}}, 1, 2, 1)
	assert.True(t, errors.Is(err, utils.ErrDegenerateInput))
}

func TestDistribute(t *testing.T) {
	b := New("d")
	require.NoError(t, b.AddLine(geometry.Curve{{X: 0, Y: 0}, {X: 0.1, Y: 0}, {X: 0.2, Y: 0}, {X: 2, Y: 0}}))
	require.NoError(t, b.AddLine(geometry.Curve{{X: 0, Y: 1}, {X: 0.5, Y: 1.9}, {X: 1, Y: 1}, {X: 2, Y: 1}}))
	require.NoError(t, b.AddLine(geometry.Curve{{X: 0, Y: 3}, {X: 1, Y: 3}, {X: 1.5, Y: 3}, {X: 2, Y: 3}}))

	require.NoError(t, b.Distribute(U, 0))
	want := geometry.Curve{{X: 0, Y: 0}, {X: 2.0 / 3, Y: 0}, {X: 4.0 / 3, Y: 0}, {X: 2, Y: 0}}
	if diff := cmp.Diff(want, b.Line(U, 0), cmpopts.EquateApprox(0, tol)); diff != "" {
		t.Errorf("distributed U-line mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, b.Distribute(V, -1))
	assertVec(t, r2.Vec{X: 2, Y: 1.5}, b.Node(3, 1), tol)
	// other columns untouched
	assert.Equal(t, r2.Vec{X: 0.5, Y: 1.9}, b.Node(1, 1))
}

func TestDistributeStraightensFold(t *testing.T) {
	// the middle of the line runs backwards in y
	b := New("z")
	require.NoError(t, b.AddLine(geometry.Curve{
		{X: 0, Y: 0}, {X: 0.1, Y: 1}, {X: 0, Y: 0.5}, {X: 0.1, Y: 1.5}, {X: 0, Y: 2},
	}))
	require.NoError(t, b.Distribute(U, -1))
	line := b.Line(U, -1)
	for i, p := range line {
		assertVec(t, r2.Vec{X: 0, Y: 0.5 * float64(i)}, p, tol, "point %d", i)
	}

	require.NoError(t, b.AddLine(geometry.Curve{{X: 0, Y: 3}, {X: 1, Y: 4}, {X: 2, Y: 3}, {X: 1, Y: 2}, {X: 0, Y: 3}}))
	err := b.Distribute(U, 1)
	assert.True(t, errors.Is(err, utils.ErrDegenerateInput), "closed line: %v", err)
}
