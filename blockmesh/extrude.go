package blockmesh

import (
	"fmt"
	"math"

	"github.com/notargets/AirfoilMesh/geometry"
	"github.com/notargets/AirfoilMesh/utils"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// Spacing returns divisions+1 offsets from 0 to length with geometric
// growth, the last sub-interval being ratio times the first.
func Spacing(divisions int, ratio, length float64) ([]float64, error) {
	if divisions < 1 {
		return nil, utils.Degenerate("spacing with %d divisions", divisions)
	}
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return nil, utils.Degenerate("spacing ratio %g", ratio)
	}
	if divisions == 1 {
		return []float64{0, length}, nil
	}
	growth := math.Pow(ratio, 1/float64(divisions-1))
	if growth == 1 {
		growth = 1 + 1e-10
	}
	s := make([]float64, divisions+1)
	for k := range s {
		s[k] = math.Pow(growth, float64(k))
	}
	floats.AddConst(-s[0], s)
	floats.Scale(length/s[divisions], s)
	s[divisions] = length
	return s, nil
}

// ExtrudeLine offsets line along its outward normals, appending one U-line
// per spacing step. An empty block first receives line itself as U-line 0.
func (b *BlockMesh) ExtrudeLine(line geometry.Curve, length float64, divisions int, ratio float64) error {
	sp, err := Spacing(divisions, ratio, length)
	if err != nil {
		return fmt.Errorf("block %s: %w", b.Name, err)
	}
	normals, err := line.Normals(false)
	if err != nil {
		return fmt.Errorf("block %s: %w", b.Name, err)
	}
	if len(b.ULines) == 0 {
		if err = b.AddLine(line); err != nil {
			return err
		}
	}
	for _, s := range sp[1:] {
		next := make(geometry.Curve, len(line))
		for i, p := range line {
			next[i] = r2.Add(p, r2.Scale(s, normals[i]))
		}
		if err = b.AddLine(next); err != nil {
			return err
		}
	}
	tracer().P("block", b.Name).Debugf("extruded %d lines over %g with ratio %g", divisions, length, ratio)
	return nil
}

// Distribute places the interior points of a U-line (dir U) or V-line
// (dir V) evenly on the straight segment between its end points. Folds of
// the old line are removed.
func (b *BlockMesh) Distribute(dir Direction, index int) error {
	line := b.Line(dir, index)
	first, last := line[0], line[len(line)-1]
	if first == last {
		return fmt.Errorf("block %s: distribute %s-line %d: %w", b.Name, dir, index,
			utils.Degenerate("end points coincide at (%g, %g)", first.X, first.Y))
	}
	even := geometry.Line(first, last, geometry.Uniform(len(line)-1))
	even[len(even)-1] = last
	if dir == U {
		j := wrap(index, len(b.ULines))
		copy(b.ULines[j], even)
		return nil
	}
	u, _ := b.DivUV()
	i := wrap(index, u+1)
	for j := range b.ULines {
		b.ULines[j][i] = even[j]
	}
	return nil
}
