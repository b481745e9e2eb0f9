// Package windtunnel assembles the structured blocks of a C-type mesh
// around an airfoil: a layer block on the contour, a block closing the
// trailing edge, a tunnel block out to the far field and a wake block
// downstream.
package windtunnel

import (
	"fmt"
	"math"

	"github.com/notargets/AirfoilMesh/blockmesh"
	"github.com/notargets/AirfoilMesh/export"
	"github.com/notargets/AirfoilMesh/geometry"
	"github.com/notargets/AirfoilMesh/utils"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r2"
)

func tracer() tracing.Trace {
	return tracing.Select("airfoilmesh.windtunnel")
}

// Stage is the progress of a Windtunnel build
type Stage int

const (
	Empty Stage = iota
	AirfoilBlockBuilt
	TrailingEdgeBuilt
	TunnelBuilt
	TunnelBackBuilt
)

func (s Stage) String() string {
	return [...]string{"empty", "airfoil", "trailing edge", "tunnel", "tunnel back"}[s]
}

// Patch names of the assembled mesh
const (
	Wall     = "wall"
	Farfield = "farfield"
	Outlet   = "outlet"
)

// sharpGap is the trailing edge opening below which the contour ends are
// treated as one point
const sharpGap = 1e-12

// farfieldArcPoints is the polyline resolution of the half circle before it
// is resampled onto the tunnel seed
const farfieldArcPoints = 721

// StageError reports the stage that failed
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("windtunnel %s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Windtunnel builds the blocks in order; each stage seeds from the
// boundary lines of the stages before it.
type Windtunnel struct {
	Config Config
	Name   string

	stage     Stage
	airfoil   *blockmesh.BlockMesh
	te        *blockmesh.BlockMesh
	tunnel    *blockmesh.BlockMesh
	back      *blockmesh.BlockMesh
	sharpTE   bool
	wallStart int // First trailing edge closure node on the TE block's lower line
}

func New(cfg Config) (*Windtunnel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Windtunnel{Config: cfg}, nil
}

func (w *Windtunnel) Stage() Stage { return w.stage }

// enter checks that stage s is the next one to build
func (w *Windtunnel) enter(s Stage) error {
	switch {
	case w.stage >= s:
		return &StageError{Stage: s, Err: fmt.Errorf("%w: %s block", utils.ErrStageAlreadyBuilt, s)}
	case w.stage < s-1:
		return &StageError{Stage: s, Err: fmt.Errorf("%w: %s block needs the %s block, have %s",
			utils.ErrPrerequisiteBlockMissing, s, s-1, w.stage)}
	}
	return nil
}

func (w *Windtunnel) fail(s Stage, err error) error {
	tracer().Errorf("%s stage of %s failed: %v", s, w.Name, err)
	return &StageError{Stage: s, Err: err}
}

// AirfoilMesh extrudes the contour outward into the first block. A
// clockwise contour is reversed so that the layer grows away from the
// airfoil.
func (w *Windtunnel) AirfoilMesh(name string, contour geometry.Curve) error {
	if err := w.enter(AirfoilBlockBuilt); err != nil {
		return err
	}
	if err := contour.Validate(); err != nil {
		return w.fail(AirfoilBlockBuilt, err)
	}
	line := contour.Copy()
	if signedArea(line) < 0 {
		tracer().Infof("contour %s is clockwise, reversing", name)
		line = line.Reversed()
	}
	cfg := w.Config.Airfoil
	b := blockmesh.New(name)
	if err := b.ExtrudeLine(line, cfg.Thickness, cfg.Divisions, cfg.Ratio); err != nil {
		return w.fail(AirfoilBlockBuilt, err)
	}
	w.Name, w.airfoil, w.stage = name, b, AirfoilBlockBuilt
	u, v := b.DivUV()
	tracer().Infof("airfoil block %s: %dx%d cells", name, u, v)
	return nil
}

// TrailingEdgeMesh closes the gap behind the trailing edge. Its seed runs
// up the lower trailing edge column of the airfoil block, across the
// trailing edge opening and out along the upper column.
func (w *Windtunnel) TrailingEdgeMesh() error {
	if err := w.enter(TrailingEdgeBuilt); err != nil {
		return err
	}
	cfg := w.Config.TrailingEdge
	first := w.airfoil.Line(blockmesh.V, 0)
	lastReversed := w.airfoil.Line(blockmesh.V, -1).Reversed()
	lowerTE, upperTE := lastReversed[len(lastReversed)-1], first[0]
	gap := r2.Sub(upperTE, lowerTE)

	var closure geometry.Curve
	sharp := r2.Norm(gap) < sharpGap
	if !sharp {
		for i := 1; i < cfg.ClosureDivisions; i++ {
			closure = append(closure, r2.Add(lowerTE, r2.Scale(float64(i)/float64(cfg.ClosureDivisions), gap)))
		}
	}
	seed := geometry.Join(sharpGap, lastReversed, closure, first)

	b := blockmesh.New(w.Name + "_TE")
	if err := b.ExtrudeLine(seed, cfg.Length, cfg.Divisions, cfg.Ratio); err != nil {
		return w.fail(TrailingEdgeBuilt, err)
	}
	if err := b.Distribute(blockmesh.U, -1); err != nil {
		return w.fail(TrailingEdgeBuilt, err)
	}
	if err := b.Transfinite(b.Boundary(), blockmesh.ChordLength); err != nil {
		return w.fail(TrailingEdgeBuilt, err)
	}
	if cfg.SmoothIterations > 0 {
		sm := blockmesh.Smoother{Algorithm: blockmesh.Laplace, Iterations: cfg.SmoothIterations}
		if err := sm.Smooth(b, blockmesh.SelectNodes(b, blockmesh.Interior())); err != nil {
			return w.fail(TrailingEdgeBuilt, err)
		}
	}
	w.te, w.sharpTE, w.wallStart, w.stage = b, sharp, len(lastReversed)-1, TrailingEdgeBuilt
	u, v := b.DivUV()
	tracer().Infof("trailing edge block: %dx%d cells, sharp=%v", u, v, sharp)
	return nil
}

// TunnelMesh builds the C-shaped block between the inner blocks and the
// far field. Nodes off the seed and the far field move from normal offsets
// of the seed near the airfoil towards transfinite placement near the far
// field; this includes the two side columns.
func (w *Windtunnel) TunnelMesh() error {
	if err := w.enter(TunnelBuilt); err != nil {
		return err
	}
	cfg := w.Config.Tunnel
	seed := geometry.Join(sharpGap,
		w.te.Line(blockmesh.V, -1).Reversed(),
		w.airfoil.Line(blockmesh.U, -1),
		w.te.Line(blockmesh.V, 0))
	if err := seed.Validate(); err != nil {
		return w.fail(TunnelBuilt, err)
	}
	fractions, err := seed.Fractions()
	if err != nil {
		return w.fail(TunnelBuilt, err)
	}

	le, te, _ := w.chord()
	center := r2.Vec{X: 0.5 * (le.X + te.X), Y: 0.5 * (le.Y + te.Y)}
	far, err := farfield(center, cfg.Height, seed[0].X, seed[len(seed)-1].X).Resample(fractions)
	if err != nil {
		return w.fail(TunnelBuilt, err)
	}

	spacing, err := blockmesh.Spacing(cfg.Divisions, cfg.Ratio, 1)
	if err != nil {
		return w.fail(TunnelBuilt, err)
	}
	bd := blockmesh.Boundary{
		Lower: seed,
		Upper: far,
		Left:  geometry.Line(seed[0], far[0], spacing),
		Right: geometry.Line(seed[len(seed)-1], far[len(far)-1], spacing),
	}
	b := blockmesh.New(w.Name + "_tunnel")
	if err = b.Transfinite(bd, blockmesh.ChordLength); err != nil {
		return w.fail(TunnelBuilt, err)
	}

	normals, err := seed.Normals(false)
	if err != nil {
		return w.fail(TunnelBuilt, err)
	}
	u, v := b.DivUV()
	for i := 0; i <= u; i++ {
		d := r2.Norm(r2.Sub(far[i], seed[i]))
		for j := 1; j < v; j++ {
			extruded := r2.Add(seed[i], r2.Scale(spacing[j]*d, normals[i]))
			wt := math.Pow(float64(j)/float64(v), cfg.BlendExponent)
			b.SetNode(i, j, r2.Add(r2.Scale(1-wt, extruded), r2.Scale(wt, b.Node(i, j))))
		}
	}
	w.tunnel, w.stage = b, TunnelBuilt
	tracer().Infof("tunnel block: %dx%d cells, far field at %g", u, v, cfg.Height)
	return nil
}

// TunnelBackMesh builds the wake block. Its seed runs up the outlet side
// of the tunnel and trailing edge blocks; it extends downstream to a
// straight outlet.
func (w *Windtunnel) TunnelBackMesh() error {
	if err := w.enter(TunnelBackBuilt); err != nil {
		return err
	}
	cfg := w.Config.Back
	seed := geometry.Join(sharpGap,
		w.tunnel.Line(blockmesh.V, -1).Reversed(),
		w.te.Line(blockmesh.U, -1),
		w.tunnel.Line(blockmesh.V, 0))
	fractions, err := seed.Fractions()
	if err != nil {
		return w.fail(TunnelBackBuilt, err)
	}
	spacing, err := blockmesh.Spacing(cfg.Divisions, cfg.Ratio, 1)
	if err != nil {
		return w.fail(TunnelBackBuilt, err)
	}
	_, hi := seed.Bounds()
	x := hi.X + cfg.Length
	outlet := geometry.Line(r2.Vec{X: x, Y: seed[0].Y}, r2.Vec{X: x, Y: seed[len(seed)-1].Y}, fractions)
	bd := blockmesh.Boundary{
		Lower: seed,
		Upper: outlet,
		Left:  geometry.Line(seed[0], outlet[0], spacing),
		Right: geometry.Line(seed[len(seed)-1], outlet[len(outlet)-1], spacing),
	}
	b := blockmesh.New(w.Name + "_back")
	if err = b.Transfinite(bd, blockmesh.ChordLength); err != nil {
		return w.fail(TunnelBackBuilt, err)
	}
	w.back, w.stage = b, TunnelBackBuilt
	u, v := b.DivUV()
	tracer().Infof("tunnel back block: %dx%d cells, outlet at x=%g", u, v, x)
	return nil
}

// Build runs all stages
func (w *Windtunnel) Build(name string, contour geometry.Curve) error {
	if err := w.AirfoilMesh(name, contour); err != nil {
		return err
	}
	if err := w.TrailingEdgeMesh(); err != nil {
		return err
	}
	if err := w.TunnelMesh(); err != nil {
		return err
	}
	return w.TunnelBackMesh()
}

// Blocks returns the blocks built so far, in stage order
func (w *Windtunnel) Blocks() []*blockmesh.BlockMesh {
	var blocks []*blockmesh.BlockMesh
	for _, b := range []*blockmesh.BlockMesh{w.airfoil, w.te, w.tunnel, w.back} {
		if b != nil {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// Patches tags the outer boundaries of the blocks built so far. Block
// indices follow Blocks.
func (w *Windtunnel) Patches() []export.Marker {
	var m []export.Marker
	if w.stage >= AirfoilBlockBuilt {
		m = append(m, export.SideMarker(Wall, 0, export.Lower))
	}
	if w.stage >= TrailingEdgeBuilt && !w.sharpTE {
		m = append(m, export.Marker{Name: Wall, Block: 1, Side: export.Lower,
			From: w.wallStart, To: w.wallStart + w.Config.TrailingEdge.ClosureDivisions})
	}
	if w.stage >= TunnelBuilt {
		m = append(m, export.SideMarker(Farfield, 2, export.Upper))
	}
	if w.stage >= TunnelBackBuilt {
		m = append(m,
			export.SideMarker(Farfield, 3, export.Left),
			export.SideMarker(Farfield, 3, export.Right),
			export.SideMarker(Outlet, 3, export.Upper))
	}
	return m
}

// Mesh stitches the blocks built so far into one mesh
func (w *Windtunnel) Mesh() (*export.Mesh, error) {
	if w.stage == Empty {
		return nil, fmt.Errorf("%w: no blocks built", utils.ErrPrerequisiteBlockMissing)
	}
	return export.Assemble(w.Blocks(), w.Patches(), w.Config.StitchRadius)
}

// Quality reports cell statistics per block
func (w *Windtunnel) Quality() []blockmesh.QualityReport {
	var reports []blockmesh.QualityReport
	for _, b := range w.Blocks() {
		reports = append(reports, blockmesh.Quality(b))
	}
	return reports
}

// chord returns the leading edge, trailing edge and chord of the airfoil
// block's contour.
func (w *Windtunnel) chord() (le, te r2.Vec, length float64) {
	c := w.airfoil.Line(blockmesh.U, 0)
	le = c[c.MinX()]
	te = r2.Scale(0.5, r2.Add(c[0], c[len(c)-1]))
	return le, te, r2.Norm(r2.Sub(te, le))
}

// farfield is the C-shaped outer boundary: a line at +height from xTop back
// to the center, a half circle of radius height around the upstream side,
// and a line at -height out to xBottom.
func farfield(center r2.Vec, height, xTop, xBottom float64) geometry.Curve {
	c := geometry.Curve{{X: xTop, Y: center.Y + height}}
	for k := 0; k < farfieldArcPoints; k++ {
		phi := math.Pi/2 + math.Pi*float64(k)/float64(farfieldArcPoints-1)
		p := r2.Vec{X: center.X + height*math.Cos(phi), Y: center.Y + height*math.Sin(phi)}
		if k == 0 && xTop <= center.X {
			continue
		}
		c = append(c, p)
	}
	if xBottom > center.X {
		c = append(c, r2.Vec{X: xBottom, Y: center.Y - height})
	}
	return c
}

// signedArea is the shoelace area of a closed polygon, positive when
// counter-clockwise.
func signedArea(c geometry.Curve) float64 {
	var a float64
	for i := range c {
		a += r2.Cross(c[i], c[(i+1)%len(c)])
	}
	return a / 2
}
