package contour

import (
	"fmt"
	"math"

	"github.com/notargets/AirfoilMesh/spline"
	"github.com/notargets/AirfoilMesh/utils"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r2"
)

func tracer() tracing.Trace {
	return tracing.Select("airfoilmesh.contour")
}

// CurvatureProfile holds differential geometry of a sampled curve, index
// aligned with the samples. Vanishing derivatives show up as IEEE Inf or
// NaN values, never as errors.
type CurvatureProfile struct {
	X, Y             []float64 // Sample positions
	Gradient         []float64 // dy/dx
	Curvature        []float64 // Signed, positive for counter-clockwise turning
	Radius           []float64 // Unsigned radius of curvature
	CenterX, CenterY []float64 // Center of the osculating circle
}

// LeadingEdge describes the tightest osculating circle of a profile
type LeadingEdge struct {
	Index  int
	Point  r2.Vec
	Radius float64
	Center r2.Vec
}

// Analyze computes gradient, curvature, radius and osculating circle centers
// from first and second derivatives. With n = dx^2+dy^2 and
// d = dx*ddy-dy*ddx the curvature is d/n^1.5 and the center lies at
// distance n^1.5/d along the left normal (-dy, dx)/sqrt(n).
func Analyze(sc spline.SampledCurve) (*CurvatureProfile, error) {
	n := sc.Len()
	for name, s := range map[string][]float64{
		"x": sc.X, "y": sc.Y, "dx": sc.DX, "dy": sc.DY, "ddx": sc.DDX, "ddy": sc.DDY,
	} {
		if len(s) != n {
			return nil, fmt.Errorf("sampled curve %s has %d entries, expected %d", name, len(s), n)
		}
	}
	cp := &CurvatureProfile{
		X:         append([]float64(nil), sc.X...),
		Y:         append([]float64(nil), sc.Y...),
		Gradient:  make([]float64, n),
		Curvature: make([]float64, n),
		Radius:    make([]float64, n),
		CenterX:   make([]float64, n),
		CenterY:   make([]float64, n),
	}
	for i := 0; i < n; i++ {
		dx, dy := sc.DX[i], sc.DY[i]
		num := dx*dx + dy*dy
		den := dx*sc.DDY[i] - dy*sc.DDX[i]
		n15 := math.Pow(num, 1.5)

		cp.Gradient[i] = dy / dx
		cp.Curvature[i] = den / n15
		cp.Radius[i] = n15 / math.Abs(den)
		cp.CenterX[i] = sc.X[i] - dy*num/den
		cp.CenterY[i] = sc.Y[i] + dx*num/den
	}
	if bad := cp.Degenerate(); len(bad) > 0 {
		tracer().Debugf("curvature profile has %d degenerate samples", len(bad))
	}
	return cp, nil
}

func (cp *CurvatureProfile) Len() int { return len(cp.Radius) }

// Degenerate lists samples where any derived quantity is not finite
func (cp *CurvatureProfile) Degenerate() []int {
	var idx []int
	for i := range cp.Radius {
		for _, v := range []float64{cp.Gradient[i], cp.Curvature[i], cp.Radius[i], cp.CenterX[i], cp.CenterY[i]} {
			if math.IsInf(v, 0) || math.IsNaN(v) {
				idx = append(idx, i)
				break
			}
		}
	}
	return idx
}

// LeadingEdgeRadius returns the sample with the smallest radius of
// curvature, i.e. the nose radius of an airfoil.
func (cp *CurvatureProfile) LeadingEdgeRadius() (LeadingEdge, error) {
	best := -1
	for i, r := range cp.Radius {
		if math.IsNaN(r) {
			continue
		}
		if best < 0 || r < cp.Radius[best] {
			best = i
		}
	}
	if best < 0 {
		return LeadingEdge{}, utils.Degenerate("no finite radius among %d samples", cp.Len())
	}
	return LeadingEdge{
		Index:  best,
		Point:  r2.Vec{X: cp.X[best], Y: cp.Y[best]},
		Radius: cp.Radius[best],
		Center: r2.Vec{X: cp.CenterX[best], Y: cp.CenterY[best]},
	}, nil
}
