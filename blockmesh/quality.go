package blockmesh

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat"
)

// QualityReport summarizes cell geometry of a block
type QualityReport struct {
	Block      string  `yaml:"block"`
	Cells      int     `yaml:"cells"`
	MinArea    float64 `yaml:"min_area"`
	MaxArea    float64 `yaml:"max_area"`
	MeanArea   float64 `yaml:"mean_area"`
	StdArea    float64 `yaml:"std_area"`
	MeanAspect float64 `yaml:"mean_aspect"`
	MaxAspect  float64 `yaml:"max_aspect"`
	Inverted   int     `yaml:"inverted"` // Cells oriented against the block majority
}

// QuadArea is the signed shoelace area, positive for counter-clockwise
func QuadArea(p0, p1, p2, p3 r2.Vec) float64 {
	return 0.5 * (r2.Cross(p0, p1) + r2.Cross(p1, p2) + r2.Cross(p2, p3) + r2.Cross(p3, p0))
}

// Quality computes area and aspect ratio statistics of every cell
func Quality(b *BlockMesh) QualityReport {
	rep := QualityReport{Block: b.Name}
	pts := b.Points()
	cells := b.Cells()
	if len(cells) == 0 {
		return rep
	}
	areas := make([]float64, len(cells))
	aspects := make([]float64, len(cells))
	for k, c := range cells {
		p := [4]r2.Vec{pts[c[0]], pts[c[1]], pts[c[2]], pts[c[3]]}
		areas[k] = QuadArea(p[0], p[1], p[2], p[3])
		lo, hi := math.Inf(1), 0.0
		for e := 0; e < 4; e++ {
			l := r2.Norm(r2.Sub(p[(e+1)%4], p[e]))
			lo, hi = math.Min(lo, l), math.Max(hi, l)
		}
		aspects[k] = hi / lo
	}
	sign := 1.0
	if floats.Sum(areas) < 0 {
		sign = -1
	}
	abs := make([]float64, len(areas))
	for k, a := range areas {
		if a*sign <= 0 {
			rep.Inverted++
		}
		abs[k] = math.Abs(a)
	}
	rep.Cells = len(cells)
	rep.MinArea, rep.MaxArea = floats.Min(abs), floats.Max(abs)
	rep.MeanArea, rep.StdArea = stat.MeanStdDev(abs, nil)
	rep.MeanAspect = stat.Mean(aspects, nil)
	rep.MaxAspect = floats.Max(aspects)
	return rep
}
