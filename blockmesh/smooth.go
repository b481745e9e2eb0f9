package blockmesh

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"
)

// Algorithm is a node relaxation rule
type Algorithm int

const (
	// Laplace moves a node to the mean of its four orthogonal neighbours
	Laplace Algorithm = iota
	// Parallelogram moves a node to sum(orthogonal)/2 - sum(diagonal)/4,
	// which leaves every node of a parallelogram grid in place.
	Parallelogram
)

func (a Algorithm) String() string {
	switch a {
	case Laplace:
		return "laplace"
	case Parallelogram:
		return "parallelogram"
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Scheme decides which positions an update reads
type Scheme int

const (
	// InPlace updates nodes in visiting order; later nodes see earlier
	// updates of the same sweep (Gauss-Seidel).
	InPlace Scheme = iota
	// DoubleBuffered reads every neighbour from the previous sweep (Jacobi).
	DoubleBuffered
)

// NodeIndex addresses node (I,J) of a block
type NodeIndex struct {
	I, J int
}

// Domain is a half open index rectangle [I0,I1)x[J0,J1)
type Domain struct {
	I0, I1, J0, J1 int
	interior       bool
}

// Interior selects all nodes not on the block boundary
func Interior() Domain { return Domain{interior: true} }

// Rectangle selects [i0,i1)x[j0,j1), clipped to the interior
func Rectangle(i0, i1, j0, j1 int) Domain {
	return Domain{I0: i0, I1: i1, J0: j0, J1: j1}
}

// SelectNodes enumerates the interior nodes of d, i outer and j inner
func SelectNodes(b *BlockMesh, d Domain) []NodeIndex {
	u, v := b.DivUV()
	i0, i1, j0, j1 := 1, u, 1, v
	if !d.interior {
		i0, i1 = max(i0, d.I0), min(i1, d.I1)
		j0, j1 = max(j0, d.J0), min(j1, d.J1)
	}
	var nodes []NodeIndex
	for i := i0; i < i1; i++ {
		for j := j0; j < j1; j++ {
			nodes = append(nodes, NodeIndex{I: i, J: j})
		}
	}
	return nodes
}

// Smoother relaxes selected nodes of a block
type Smoother struct {
	Algorithm  Algorithm
	Scheme     Scheme
	Iterations int
}

// Smooth applies Iterations sweeps over nodes. Boundary nodes may not be
// selected since they lack neighbours.
func (s Smoother) Smooth(b *BlockMesh, nodes []NodeIndex) error {
	u, v := b.DivUV()
	for _, n := range nodes {
		if n.I < 1 || n.I >= u || n.J < 1 || n.J >= v {
			return fmt.Errorf("block %s: node (%d,%d) is not interior to %dx%d", b.Name, n.I, n.J, u, v)
		}
	}
	for it := 0; it < s.Iterations; it++ {
		src := b
		if s.Scheme == DoubleBuffered {
			src = b.Clone()
		}
		for _, n := range nodes {
			b.SetNode(n.I, n.J, s.relax(src, n.I, n.J))
		}
	}
	tracer().P("block", b.Name).Debugf("%s smoothing: %d nodes, %d iterations",
		s.Algorithm, len(nodes), s.Iterations)
	return nil
}

func (s Smoother) relax(b *BlockMesh, i, j int) r2.Vec {
	orth := r2.Add(r2.Add(b.Node(i+1, j), b.Node(i-1, j)), r2.Add(b.Node(i, j+1), b.Node(i, j-1)))
	if s.Algorithm == Laplace {
		return r2.Scale(0.25, orth)
	}
	diag := r2.Add(r2.Add(b.Node(i+1, j+1), b.Node(i-1, j+1)), r2.Add(b.Node(i+1, j-1), b.Node(i-1, j-1)))
	return r2.Sub(r2.Scale(0.5, orth), r2.Scale(0.25, diag))
}
