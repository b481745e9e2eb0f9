package spline

// B-spline basis functions on a clamped knot vector, after Piegl & Tiller,
// "The NURBS Book", algorithms A2.1 and A2.2.

// findSpan returns the knot span index k with knots[k] <= u < knots[k+1].
// n is the number of control points; u at the right end maps to the last
// non-empty span.
func findSpan(n, p int, u float64, knots []float64) int {
	if u >= knots[n] {
		return n - 1
	}
	if u <= knots[p] {
		return p
	}
	low, high := p, n
	mid := (low + high) / 2
	for u < knots[mid] || u >= knots[mid+1] {
		if u < knots[mid] {
			high = mid
		} else {
			low = mid
		}
		mid = (low + high) / 2
	}
	return mid
}

// basisFuns fills N[0..p] with the non-vanishing basis functions at u for
// the given span.
func basisFuns(span, p int, u float64, knots []float64) []float64 {
	N := make([]float64, p+1)
	left := make([]float64, p+1)
	right := make([]float64, p+1)
	N[0] = 1
	for j := 1; j <= p; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		saved := 0.0
		for r := 0; r < j; r++ {
			den := right[r+1] + left[j-r]
			var temp float64
			if den != 0 {
				temp = N[r] / den
			}
			N[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		N[j] = saved
	}
	return N
}

// curve1D is one coordinate of a B-spline: coefficients over a knot vector
type curve1D struct {
	knots  []float64
	coeffs []float64
	degree int
}

func (c curve1D) eval(u float64) float64 {
	n := len(c.coeffs)
	if c.degree == 0 {
		return c.coeffs[findSpan(n, 0, u, c.knots)]
	}
	span := findSpan(n, c.degree, u, c.knots)
	N := basisFuns(span, c.degree, u, c.knots)
	var v float64
	for r := 0; r <= c.degree; r++ {
		v += N[r] * c.coeffs[span-c.degree+r]
	}
	return v
}

// derivative returns the spline of the first derivative. Its knot vector
// drops the outer knots; coefficients are p(P[i+1]-P[i])/(t[i+p+1]-t[i+1]).
func (c curve1D) derivative() curve1D {
	p := c.degree
	n := len(c.coeffs)
	q := make([]float64, n-1)
	for i := range q {
		den := c.knots[i+p+1] - c.knots[i+1]
		if den != 0 {
			q[i] = float64(p) * (c.coeffs[i+1] - c.coeffs[i]) / den
		}
	}
	return curve1D{
		knots:  c.knots[1 : len(c.knots)-1],
		coeffs: q,
		degree: p - 1,
	}
}
