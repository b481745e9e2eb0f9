package spline

import (
	"fmt"
	"math"

	"github.com/notargets/AirfoilMesh/geometry"
	"github.com/notargets/AirfoilMesh/utils"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/mat"
)

func tracer() tracing.Trace {
	return tracing.Select("airfoilmesh.spline")
}

// Spline is an interpolating parametric B-spline through a set of points
type Spline struct {
	Knots  []float64 // Clamped knot vector, len(CX)+Degree+1 entries
	CX, CY []float64 // Control coefficients per coordinate
	Degree int
	U      []float64 // Parameter of each fitted point, U[0]=0, U[last]=1
}

// Fit interpolates points with a B-spline of the given degree (1, 2 or 3).
// Points are parametrized by normalized chord length and the knot vector is
// built by averaging those parameters, so the collocation matrix is always
// non-singular for distinct consecutive points.
func Fit(points geometry.Curve, degree int) (*Spline, error) {
	if degree < 1 || degree > 3 {
		return nil, fmt.Errorf("%w: spline degree %d, must be 1, 2 or 3", utils.ErrDegenerateInput, degree)
	}
	n := len(points)
	if n <= degree {
		return nil, utils.Degenerate("%d points cannot define a degree %d spline", n, degree)
	}
	if err := points.Validate(); err != nil {
		return nil, err
	}
	u, err := points.Fractions()
	if err != nil {
		return nil, err
	}

	knots := averagedKnots(u, degree)

	// Collocation system A·c = x, A[k][i] = N_i,p(u_k)
	A := mat.NewDense(n, n, nil)
	for k, uk := range u {
		span := findSpan(n, degree, uk, knots)
		N := basisFuns(span, degree, uk, knots)
		for r := 0; r <= degree; r++ {
			A.Set(k, span-degree+r, N[r])
		}
	}
	x, y := points.XY()
	B := mat.NewDense(n, 2, nil)
	B.SetCol(0, x)
	B.SetCol(1, y)

	var C mat.Dense
	if err = C.Solve(A, B); err != nil {
		return nil, utils.Degenerate("collocation system for %d points: %v", n, err)
	}

	sp := &Spline{
		Knots:  knots,
		CX:     mat.Col(nil, 0, &C),
		CY:     mat.Col(nil, 1, &C),
		Degree: degree,
		U:      u,
	}
	tracer().Debugf("fitted degree %d spline through %d points", degree, n)
	return sp, nil
}

// averagedKnots builds the clamped knot vector of length n+p+1 whose
// interior knots are running averages of p consecutive parameters.
func averagedKnots(u []float64, p int) []float64 {
	n := len(u)
	knots := make([]float64, n+p+1)
	for j := 1; j <= n-p-1; j++ {
		var sum float64
		for i := j; i < j+p; i++ {
			sum += u[i]
		}
		knots[j+p] = sum / float64(p)
	}
	for i := n; i < len(knots); i++ {
		knots[i] = 1
	}
	return knots
}

// Clone returns a deep copy
func (sp *Spline) Clone() *Spline {
	return &Spline{
		Knots:  append([]float64(nil), sp.Knots...),
		CX:     append([]float64(nil), sp.CX...),
		CY:     append([]float64(nil), sp.CY...),
		Degree: sp.Degree,
		U:      append([]float64(nil), sp.U...),
	}
}

func (sp *Spline) coordinates() (cx, cy curve1D) {
	return curve1D{knots: sp.Knots, coeffs: sp.CX, degree: sp.Degree},
		curve1D{knots: sp.Knots, coeffs: sp.CY, degree: sp.Degree}
}

// Evaluate returns the order-th derivative of the spline at each parameter.
// Parameters outside [0,1] are clamped. A derivative order above the spline
// degree is identically zero.
func (sp *Spline) Evaluate(t []float64, order int) (x, y []float64) {
	x = make([]float64, len(t))
	y = make([]float64, len(t))
	if order < 0 {
		order = 0
	}
	if order > sp.Degree {
		return
	}
	cx, cy := sp.coordinates()
	for k := 0; k < order; k++ {
		cx, cy = cx.derivative(), cy.derivative()
	}
	for i, ti := range t {
		ti = math.Max(0, math.Min(1, ti))
		x[i], y[i] = cx.eval(ti), cy.eval(ti)
	}
	return
}

// Points evaluates the spline positions at t as a curve
func (sp *Spline) Points(t []float64) geometry.Curve {
	x, y := sp.Evaluate(t, 0)
	c, _ := geometry.NewCurve(x, y)
	return c
}
