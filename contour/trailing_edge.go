package contour

import (
	"fmt"
	"math"

	"github.com/notargets/AirfoilMesh/geometry"
	"github.com/notargets/AirfoilMesh/utils"
	"gonum.org/v1/gonum/spatial/r2"
)

// Side selects a surface of an airfoil contour
type Side int

const (
	Upper Side = iota
	Lower
)

func (s Side) String() string {
	switch s {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	}
	return fmt.Sprintf("Side(%d)", int(s))
}

// BlendTrailingEdge thickens one surface of a contour near the trailing
// edge. The contour runs from the upper trailing edge over the leading edge
// (minimum x) to the lower trailing edge. A point at arc distance d from the
// trailing edge end of the chosen side, with s = d/(fraction*sideLength) < 1,
// moves along the outward normal by thickness*(1-s)^exponent. The input is
// not modified.
func BlendTrailingEdge(c geometry.Curve, side Side, fraction, exponent, thickness float64) (geometry.Curve, error) {
	if fraction <= 0 || fraction > 1 {
		return nil, utils.Degenerate("blend fraction %g outside (0, 1]", fraction)
	}
	if exponent < 0 || math.IsNaN(exponent) {
		return nil, utils.Degenerate("blend exponent %g", exponent)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	normals, err := c.Normals(false)
	if err != nil {
		return nil, err
	}

	le := c.MinX()
	var idx []int // side indices ordered from the trailing edge
	switch side {
	case Upper:
		for i := 0; i <= le; i++ {
			idx = append(idx, i)
		}
	case Lower:
		for i := len(c) - 1; i >= le; i-- {
			idx = append(idx, i)
		}
	default:
		return nil, fmt.Errorf("unknown side %v", side)
	}

	// arc distance from the trailing edge along the side
	dist := make([]float64, len(idx))
	for k := 1; k < len(idx); k++ {
		dist[k] = dist[k-1] + r2.Norm(r2.Sub(c[idx[k]], c[idx[k-1]]))
	}
	limit := fraction * dist[len(dist)-1]
	if limit == 0 {
		return nil, utils.Degenerate("%s side has zero length", side)
	}

	out := c.Copy()
	moved := 0
	for k, i := range idx {
		s := dist[k] / limit
		if s >= 1 {
			break
		}
		off := thickness * math.Pow(1-s, exponent)
		out[i] = r2.Add(c[i], r2.Scale(off, normals[i]))
		moved++
	}
	tracer().P("side", side.String()).Debugf("trailing edge blend moved %d points", moved)
	return out, nil
}
