package spline

import (
	"fmt"
	"math"

	"github.com/notargets/AirfoilMesh/utils"
	"gonum.org/v1/gonum/spatial/r2"
)

// DefaultMaxPasses bounds the number of refinement passes
const DefaultMaxPasses = 30

// Refiner inserts spline points until every interior angle of the sampled
// polyline is at least Tolerance degrees.
type Refiner struct {
	Tolerance float64 // Minimum interior angle in degrees, 180 is a straight line
	MaxPasses int     // Zero selects DefaultMaxPasses
}

// Refine grows sc until a pass flags no triple. Each pass reads an immutable
// snapshot: for a flagged triple (P[i], P[i+1], P[i+2]) the midpoints of both
// segments are inserted, evaluated on sp at the mean segment parameter; a
// segment shared by two flagged triples gets one midpoint. Derivatives are
// evaluated once from sp after the last pass.
func (r Refiner) Refine(sp *Spline, sc SampledCurve) (SampledCurve, error) {
	maxPasses := r.MaxPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxPasses
	}
	if r.Tolerance <= 0 || r.Tolerance > 180 {
		return sc, fmt.Errorf("%w: refinement tolerance %g degrees, must be in (0, 180]",
			utils.ErrDegenerateInput, r.Tolerance)
	}

	t := append([]float64(nil), sc.T...)
	x := append([]float64(nil), sc.X...)
	y := append([]float64(nil), sc.Y...)

	for pass := 0; ; pass++ {
		flagged := flagTriples(x, y, r.Tolerance)
		inserted := 0
		for _, f := range flagged {
			if f {
				inserted++
			}
		}
		if inserted == 0 {
			tracer().Infof("refinement converged after %d passes with %d points", pass, len(t))
			break
		}
		if pass >= maxPasses {
			return sc, fmt.Errorf("%w: %d points still violate %g degrees after %d passes",
				utils.ErrRefinementDidNotConverge, inserted, r.Tolerance, maxPasses)
		}
		t = insertMidpoints(t, flagged)
		x, y = sp.Evaluate(t, 0)
		tracer().Debugf("refinement pass %d: %d triples flagged, %d points", pass, inserted, len(t))
	}

	out := SampleAt(sp, t)
	// keep original sample positions bit for bit
	out.X, out.Y = x, y
	return out, nil
}

// flagTriples marks triple i when the angle at P[i+1] is below tol degrees
func flagTriples(x, y []float64, tol float64) []bool {
	if len(x) < 3 {
		return nil
	}
	flagged := make([]bool, len(x)-2)
	for i := range flagged {
		a := r2.Vec{X: x[i] - x[i+1], Y: y[i] - y[i+1]}
		b := r2.Vec{X: x[i+2] - x[i+1], Y: y[i+2] - y[i+1]}
		flagged[i] = Angle(a, b) < tol
	}
	return flagged
}

// Angle returns the angle between a and b in degrees, NaN when either is zero
func Angle(a, b r2.Vec) float64 {
	den := r2.Norm(a) * r2.Norm(b)
	if den == 0 {
		return math.NaN()
	}
	c := math.Max(-1, math.Min(1, r2.Dot(a, b)/den))
	return math.Acos(c) * 180 / math.Pi
}

// insertMidpoints returns t with a mid parameter added to every segment k
// touched by a flagged triple, i.e. flagged[k] or flagged[k-1].
func insertMidpoints(t []float64, flagged []bool) []float64 {
	out := make([]float64, 0, len(t)+2*len(flagged))
	for k := 0; k < len(t); k++ {
		out = append(out, t[k])
		if k == len(t)-1 {
			break
		}
		split := (k < len(flagged) && flagged[k]) || (k > 0 && k-1 < len(flagged) && flagged[k-1])
		if split {
			out = append(out, 0.5*(t[k]+t[k+1]))
		}
	}
	return out
}
