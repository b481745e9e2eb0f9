package spline

import (
	"github.com/notargets/AirfoilMesh/geometry"
	"github.com/notargets/AirfoilMesh/utils"
	"gonum.org/v1/gonum/floats"
)

// SampledCurve holds spline positions and derivatives at a set of
// parameters. All slices are index aligned.
type SampledCurve struct {
	X, Y     []float64
	T        []float64 // Spline parameter of each sample
	DX, DY   []float64 // First derivative with respect to T
	DDX, DDY []float64 // Second derivative with respect to T
}

// Sample evaluates the spline at n evenly spaced parameters in [0,1]
func Sample(sp *Spline, n int) (SampledCurve, error) {
	if n < 2 {
		return SampledCurve{}, utils.Degenerate("cannot sample a spline at %d points", n)
	}
	return SampleAt(sp, floats.Span(make([]float64, n), 0, 1)), nil
}

// SampleAt evaluates the spline and its first two derivatives at t
func SampleAt(sp *Spline, t []float64) SampledCurve {
	sc := SampledCurve{T: append([]float64(nil), t...)}
	sc.X, sc.Y = sp.Evaluate(sc.T, 0)
	sc.DX, sc.DY = sp.Evaluate(sc.T, 1)
	sc.DDX, sc.DDY = sp.Evaluate(sc.T, 2)
	return sc
}

func (sc SampledCurve) Len() int { return len(sc.T) }

// Curve returns the sample positions
func (sc SampledCurve) Curve() geometry.Curve {
	c, _ := geometry.NewCurve(sc.X, sc.Y)
	return c
}
