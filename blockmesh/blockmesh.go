package blockmesh

import (
	"fmt"

	"github.com/notargets/AirfoilMesh/geometry"
	"github.com/notargets/AirfoilMesh/utils"
	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/r2"
)

func tracer() tracing.Trace {
	return tracing.Select("airfoilmesh.blockmesh")
}

// Direction selects rows (U-lines) or columns (V-lines) of a block
type Direction int

const (
	U Direction = iota // along a U-line, index i
	V                  // along a V-line, index j
)

func (d Direction) String() string {
	if d == U {
		return "u"
	}
	return "v"
}

// BlockMesh is a structured quadrilateral block. Node (i,j) is point i of
// U-line j; every U-line has the same number of points.
type BlockMesh struct {
	Name   string
	ULines []geometry.Curve
}

func New(name string) *BlockMesh {
	return &BlockMesh{Name: name}
}

// DivUV returns the number of cells in each direction, (-1,-1) when empty
func (b *BlockMesh) DivUV() (u, v int) {
	if len(b.ULines) == 0 {
		return -1, -1
	}
	return len(b.ULines[0]) - 1, len(b.ULines) - 1
}

// AddLine appends a copy of line as the next U-line
func (b *BlockMesh) AddLine(line geometry.Curve) error {
	if len(line) < 2 {
		return utils.Degenerate("block %s: U-line with %d points", b.Name, len(line))
	}
	if u, _ := b.DivUV(); u >= 0 && len(line) != u+1 {
		return fmt.Errorf("block %s: U-line has %d points, block has U=%d", b.Name, len(line), u)
	}
	b.ULines = append(b.ULines, line.Copy())
	return nil
}

// Line returns a copy of U-line or V-line index. Negative indices count
// from the end, -1 being the last line.
func (b *BlockMesh) Line(dir Direction, index int) geometry.Curve {
	u, v := b.DivUV()
	if dir == U {
		return b.ULines[wrap(index, v+1)].Copy()
	}
	i := wrap(index, u+1)
	col := make(geometry.Curve, v+1)
	for j, line := range b.ULines {
		col[j] = line[i]
	}
	return col
}

func wrap(index, n int) int {
	if index < 0 {
		index += n
	}
	if index < 0 || index >= n {
		panic(fmt.Sprintf("line index %d out of range [0,%d)", index, n))
	}
	return index
}

// VLines transposes the block into its columns
func (b *BlockMesh) VLines() []geometry.Curve {
	u, _ := b.DivUV()
	lines := make([]geometry.Curve, u+1)
	for i := range lines {
		lines[i] = b.Line(V, i)
	}
	return lines
}

func (b *BlockMesh) Node(i, j int) r2.Vec { return b.ULines[j][i] }

func (b *BlockMesh) SetNode(i, j int, p r2.Vec) { b.ULines[j][i] = p }

// NodeID is the row major index of node (i,j)
func (b *BlockMesh) NodeID(i, j int) int {
	u, _ := b.DivUV()
	return j*(u+1) + i
}

// Points lists all nodes in NodeID order
func (b *BlockMesh) Points() []r2.Vec {
	var pts []r2.Vec
	for _, line := range b.ULines {
		pts = append(pts, line...)
	}
	return pts
}

// Cells lists the quads as NodeIDs in the order (i,j), (i+1,j), (i+1,j+1),
// (i,j+1), i running fastest.
func (b *BlockMesh) Cells() [][]int {
	u, v := b.DivUV()
	if u < 1 || v < 1 {
		return nil
	}
	cells := make([][]int, 0, u*v)
	for j := 0; j < v; j++ {
		for i := 0; i < u; i++ {
			cells = append(cells, []int{b.NodeID(i, j), b.NodeID(i+1, j), b.NodeID(i+1, j+1), b.NodeID(i, j+1)})
		}
	}
	return cells
}

// Boundary returns the four current boundary lines of the block
func (b *BlockMesh) Boundary() Boundary {
	return Boundary{
		Lower: b.Line(U, 0),
		Upper: b.Line(U, -1),
		Left:  b.Line(V, 0),
		Right: b.Line(V, -1),
	}
}

// Clone returns a deep copy
func (b *BlockMesh) Clone() *BlockMesh {
	c := &BlockMesh{Name: b.Name, ULines: make([]geometry.Curve, len(b.ULines))}
	for j, line := range b.ULines {
		c.ULines[j] = line.Copy()
	}
	return c
}
