package contour

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/notargets/AirfoilMesh/geometry"
	"github.com/notargets/AirfoilMesh/spline"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// LiftSolver computes a lift coefficient for a contour, e.g. by a panel
// method.
type LiftSolver interface {
	Lift(x, y []float64, uInf, alpha float64, panels int) (float64, error)
}

// LiftSolverFunc adapts a function to LiftSolver
type LiftSolverFunc func(x, y []float64, uInf, alpha float64, panels int) (float64, error)

func (f LiftSolverFunc) Lift(x, y []float64, uInf, alpha float64, panels int) (float64, error) {
	return f(x, y, uInf, alpha, panels)
}

// RefineOptions control the spline refinement of a raw contour
type RefineOptions struct {
	Degree    int     `mapstructure:"degree" yaml:"degree"`
	Points    int     `mapstructure:"points" yaml:"points"`       // Initial spline samples
	Tolerance float64 `mapstructure:"tolerance" yaml:"tolerance"` // Minimum angle in degrees
	MaxPasses int     `mapstructure:"max_passes" yaml:"max_passes"`
}

func DefaultRefineOptions() RefineOptions {
	return RefineOptions{
		Degree:    2,
		Points:    150,
		Tolerance: 170,
		MaxPasses: spline.DefaultMaxPasses,
	}
}

// Airfoil bundles a raw contour with its refined spline representation
type Airfoil struct {
	Name    string
	Source  string         // File the raw contour came from
	Raw     geometry.Curve // Contour as read
	Offset  [2]float64     // Minimum and maximum y of the raw contour
	Spline  *spline.Spline // Spline through the refined contour
	Sampled spline.SampledCurve
}

// NewAirfoil wraps a raw contour
func NewAirfoil(name string, raw geometry.Curve) (*Airfoil, error) {
	if err := raw.Validate(); err != nil {
		return nil, fmt.Errorf("airfoil %s: %w", name, err)
	}
	_, y := raw.XY()
	return &Airfoil{
		Name:   name,
		Raw:    raw,
		Offset: [2]float64{floats.Min(y), floats.Max(y)},
	}, nil
}

// LoadAirfoil reads a contour file; the airfoil is named after the file
func LoadAirfoil(path string) (*Airfoil, error) {
	raw, err := ReadContourFile(path)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	a, err := NewAirfoil(name, raw)
	if err != nil {
		return nil, err
	}
	a.Source = path
	return a, nil
}

// SplineRefine fits a spline through the raw contour, samples it, refines
// the samples against the angle tolerance and fits the final spline through
// the refined points, sampled at its own parameters.
func (a *Airfoil) SplineRefine(opt RefineOptions) error {
	sp, err := spline.Fit(a.Raw, opt.Degree)
	if err != nil {
		return fmt.Errorf("airfoil %s: %w", a.Name, err)
	}
	sc, err := spline.Sample(sp, opt.Points)
	if err != nil {
		return fmt.Errorf("airfoil %s: %w", a.Name, err)
	}
	refined, err := spline.Refiner{Tolerance: opt.Tolerance, MaxPasses: opt.MaxPasses}.Refine(sp, sc)
	if err != nil {
		return fmt.Errorf("airfoil %s: %w", a.Name, err)
	}
	final, err := spline.Fit(refined.Curve(), opt.Degree)
	if err != nil {
		return fmt.Errorf("airfoil %s: %w", a.Name, err)
	}
	a.Spline = final
	a.Sampled = spline.SampleAt(final, final.U)
	tracer().P("airfoil", a.Name).Infof("refined %d raw points to %d spline points",
		len(a.Raw), a.Sampled.Len())
	return nil
}

// Coordinates returns the refined contour, or the raw one before refinement
func (a *Airfoil) Coordinates() geometry.Curve {
	if a.Spline == nil {
		return a.Raw
	}
	return a.Sampled.Curve()
}

// Chord returns the leading edge (minimum x), the trailing edge (midpoint
// of the contour ends) and the chord length.
func (a *Airfoil) Chord() (le, te r2.Vec, length float64) {
	c := a.Coordinates()
	le = c[c.MinX()]
	te = r2.Scale(0.5, r2.Add(c[0], c[len(c)-1]))
	return le, te, r2.Norm(r2.Sub(te, le))
}

// Curvature analyses the refined contour
func (a *Airfoil) Curvature() (*CurvatureProfile, error) {
	if a.Spline == nil {
		return nil, fmt.Errorf("airfoil %s has not been refined", a.Name)
	}
	return Analyze(a.Sampled)
}

// Lift evaluates the contour with an external solver
func (a *Airfoil) Lift(solver LiftSolver, uInf, alpha float64, panels int) (float64, error) {
	x, y := a.Coordinates().XY()
	return solver.Lift(x, y, uInf, alpha, panels)
}
