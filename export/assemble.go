package export

import (
	"fmt"

	"github.com/notargets/AirfoilMesh/blockmesh"
	"github.com/notargets/AirfoilMesh/utils"
	"github.com/notargets/gocfd/DG3D/mesh"
	cfdutils "github.com/notargets/gocfd/utils"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r2"
)

func tracer() tracing.Trace {
	return tracing.Select("airfoilmesh.export")
}

// Side names a boundary line of a block
type Side int

const (
	Lower Side = iota // U-line 0
	Upper             // last U-line
	Left              // V-line 0
	Right             // last V-line
)

func (s Side) String() string {
	return [...]string{"lower", "upper", "left", "right"}[s]
}

// Marker tags the edges between nodes From and To of one block side as a
// named boundary patch. Negative indices count from the end of the side.
type Marker struct {
	Name     string
	Block    int
	Side     Side
	From, To int
}

// SideMarker tags a complete block side
func SideMarker(name string, block int, side Side) Marker {
	return Marker{Name: name, Block: block, Side: side, From: 0, To: -1}
}

// Patch is a named set of boundary edges, given as merged vertex indices
type Patch struct {
	Name  string
	Edges [][2]int
}

// Mesh is a stitched multi-block quadrilateral mesh. The embedded gocfd
// mesh carries the vertices (z=0), connectivity and boundary elements.
type Mesh struct {
	*mesh.Mesh
	Points    []r2.Vec
	Cells     [][]int // Quads, counter-clockwise, 0-based
	CellBlock []int   // Block index of each cell
	Blocks    []string
	Patches   []Patch
	Merged    int // Vertices folded together at block interfaces
}

// Assemble stitches blocks into one mesh and resolves boundary markers.
// Points of different blocks closer than radius become one vertex; cells
// are reoriented counter-clockwise.
func Assemble(blocks []*blockmesh.BlockMesh, markers []Marker, radius float64) (*Mesh, error) {
	in := make([]utils.StitchBlock, len(blocks))
	cellOffset := make([]int, len(blocks))
	m := &Mesh{}
	for b, blk := range blocks {
		u, v := blk.DivUV()
		if u < 1 || v < 1 {
			return nil, fmt.Errorf("block %s has no cells (U=%d, V=%d)", blk.Name, u, v)
		}
		in[b] = utils.StitchBlock{Vertices: blk.Points(), Cells: blk.Cells()}
		cellOffset[b] = len(m.CellBlock)
		for range in[b].Cells {
			m.CellBlock = append(m.CellBlock, b)
		}
		m.Blocks = append(m.Blocks, blk.Name)
	}
	sm, err := utils.StitchAll(in, radius)
	if err != nil {
		return nil, err
	}
	m.Points, m.Cells, m.Merged = sm.Vertices, sm.Cells, sm.Merged

	for _, c := range m.Cells {
		p := m.Points
		if blockmesh.QuadArea(p[c[0]], p[c[1]], p[c[2]], p[c[3]]) < 0 {
			c[1], c[3] = c[3], c[1]
		}
	}

	m.Mesh = mesh.NewMesh()
	m.Vertices = make([][]float64, len(m.Points))
	m.NodeIDMap = make(map[int]int, len(m.Points))
	m.NodeArrayMap = make(map[int]int, len(m.Points))
	for i, p := range m.Points {
		m.Vertices[i] = []float64{p.X, p.Y, 0}
		m.NodeIDMap[i] = i
		m.NodeArrayMap[i] = i
	}
	m.EtoV = make([][]int, 0, len(m.Cells))
	m.ElementTypes = make([]cfdutils.ElementType, 0, len(m.Cells))
	m.ElementTags = make([][]int, 0, len(m.Cells))
	for k, c := range m.Cells {
		m.EtoV = append(m.EtoV, c)
		m.ElementTypes = append(m.ElementTypes, cfdutils.Quad)
		m.ElementTags = append(m.ElementTags, []int{m.CellBlock[k]})
	}

	m.BoundaryTags = make(map[int]string)
	patchIndex := make(map[string]int)
	for _, mk := range markers {
		if mk.Block < 0 || mk.Block >= len(blocks) {
			return nil, fmt.Errorf("marker %s references block %d of %d", mk.Name, mk.Block, len(blocks))
		}
		edges, parents, err := markerEdges(blocks[mk.Block], mk, sm.LocalToGlobal[mk.Block], cellOffset[mk.Block])
		if err != nil {
			return nil, err
		}
		pi, ok := patchIndex[mk.Name]
		if !ok {
			pi = len(m.Patches)
			patchIndex[mk.Name] = pi
			m.Patches = append(m.Patches, Patch{Name: mk.Name})
			m.BoundaryTags[pi] = mk.Name
		}
		for e, edge := range edges {
			m.Patches[pi].Edges = append(m.Patches[pi].Edges, edge)
			m.AddBoundaryElement(mk.Name, mesh.BoundaryElement{
				ElementType:   cfdutils.Line,
				Nodes:         []int{edge[0], edge[1]},
				ParentElement: parents[e],
				ParentFace:    int(mk.Side),
			})
		}
	}
	m.NumElements = len(m.EtoV)
	m.NumVertices = len(m.Vertices)
	m.BuildConnectivity()

	tracer().Infof("assembled %d blocks: %d vertices, %d cells, %d patches",
		len(blocks), len(m.Points), len(m.Cells), len(m.Patches))
	return m, nil
}

// markerEdges lists the merged edges of a marker and the cell owning each
func markerEdges(b *blockmesh.BlockMesh, mk Marker, l2g []int, offset int) ([][2]int, []int, error) {
	u, v := b.DivUV()
	n := u + 1
	if mk.Side == Left || mk.Side == Right {
		n = v + 1
	}
	from, to := mk.From, mk.To
	if from < 0 {
		from += n
	}
	if to < 0 {
		to += n
	}
	if from < 0 || to >= n || from > to {
		return nil, nil, fmt.Errorf("marker %s: node range [%d,%d] outside %s side of block %s with %d nodes",
			mk.Name, mk.From, mk.To, mk.Side, b.Name, n)
	}
	node := func(k int) (i, j int) {
		switch mk.Side {
		case Lower:
			return k, 0
		case Upper:
			return k, v
		case Left:
			return 0, k
		}
		return u, k
	}
	cell := func(k int) int {
		switch mk.Side {
		case Lower:
			return offset + k
		case Upper:
			return offset + (v-1)*u + k
		case Left:
			return offset + k*u
		}
		return offset + k*u + u - 1
	}
	var edges [][2]int
	var parents []int
	for k := from; k < to; k++ {
		a := l2g[b.NodeID(node(k))]
		c := l2g[b.NodeID(node(k+1))]
		if a == c {
			continue
		}
		edges = append(edges, [2]int{a, c})
		parents = append(parents, cell(k))
	}
	return edges, parents, nil
}

// PatchNames lists patch names in marker order
func (m *Mesh) PatchNames() []string {
	names := make([]string, len(m.Patches))
	for i, p := range m.Patches {
		names[i] = p.Name
	}
	return names
}
