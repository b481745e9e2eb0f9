package contour

import (
	"fmt"
	"math"

	"github.com/notargets/AirfoilMesh/geometry"
	"github.com/notargets/AirfoilMesh/utils"
	"gonum.org/v1/gonum/spatial/r2"
)

// NACA4 generates a unit chord NACA four digit section, e.g. "0012" or
// "2412", with n cosine spaced stations per surface. The contour runs from
// the upper trailing edge over the leading edge to the lower trailing edge.
// With sharpTE the thickness polynomial closes the trailing edge and the
// first and last points coincide.
func NACA4(code string, n int, sharpTE bool) (geometry.Curve, error) {
	if len(code) != 4 {
		return nil, fmt.Errorf("NACA code %q must have 4 digits", code)
	}
	var d [4]int
	for i, r := range code {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("NACA code %q must have 4 digits", code)
		}
		d[i] = int(r - '0')
	}
	if n < 3 {
		return nil, utils.Degenerate("NACA section needs at least 3 stations, got %d", n)
	}
	m := float64(d[0]) / 100
	p := float64(d[1]) / 10
	t := float64(10*d[2]+d[3]) / 100
	if t == 0 {
		return nil, utils.Degenerate("NACA %s has zero thickness", code)
	}
	a4 := -0.1015
	if sharpTE {
		a4 = -0.1036
	}

	upper := make(geometry.Curve, n)
	lower := make(geometry.Curve, n)
	for i := 0; i < n; i++ {
		beta := math.Pi * float64(i) / float64(n-1)
		x := 0.5 * (1 - math.Cos(beta))
		yt := 5 * t * (0.2969*math.Sqrt(x) - 0.1260*x - 0.3516*x*x + 0.2843*x*x*x + a4*x*x*x*x)

		var yc, dyc float64
		switch {
		case m == 0 || p == 0:
		case x < p:
			yc = m / (p * p) * (2*p*x - x*x)
			dyc = 2 * m / (p * p) * (p - x)
		default:
			yc = m / ((1 - p) * (1 - p)) * (1 - 2*p + 2*p*x - x*x)
			dyc = 2 * m / ((1 - p) * (1 - p)) * (p - x)
		}
		th := math.Atan(dyc)
		upper[i] = r2.Vec{X: x - yt*math.Sin(th), Y: yc + yt*math.Cos(th)}
		lower[i] = r2.Vec{X: x + yt*math.Sin(th), Y: yc - yt*math.Cos(th)}
	}
	// upper surface from the trailing edge, shared leading edge point once
	return geometry.Join(0, upper.Reversed(), lower), nil
}
