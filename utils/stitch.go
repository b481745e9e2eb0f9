package utils

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/tracing"
	"gonum.org/v1/gonum/spatial/kdtree"
	"gonum.org/v1/gonum/spatial/r2"
)

func tracer() tracing.Trace {
	return tracing.Select("airfoilmesh.utils")
}

// DefaultStitchRadius is the coincidence radius used when blocks are joined
const DefaultStitchRadius = 1e-9

// StitchBlock is one block of a multi-block mesh: its vertices and cells
// given as indices into Vertices.
type StitchBlock struct {
	Vertices []r2.Vec
	Cells    [][]int
}

// StitchedMesh is the result of merging blocks
type StitchedMesh struct {
	Vertices      []r2.Vec
	Cells         [][]int
	LocalToGlobal [][]int // [block][localVertex] → merged vertex
	Merged        int     // Number of input vertices folded into another
}

// Stitch joins two blocks. Points of A and B closer than radius share a
// single index in the result; connectivity of both blocks is renumbered.
func Stitch(verticesA []r2.Vec, cellsA [][]int, verticesB []r2.Vec, cellsB [][]int,
	radius float64) ([]r2.Vec, [][]int, error) {
	sm, err := StitchAll([]StitchBlock{
		{Vertices: verticesA, Cells: cellsA},
		{Vertices: verticesB, Cells: cellsB},
	}, radius)
	if err != nil {
		return nil, nil, err
	}
	return sm.Vertices, sm.Cells, nil
}

// StitchAll merges any number of blocks. Coincidence is transitive: if a~b
// and b~c then all three map to the same merged vertex, which keeps the
// coordinates of the first occurrence in block order.
func StitchAll(blocks []StitchBlock, radius float64) (*StitchedMesh, error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, Degenerate("stitch radius %g", radius)
	}

	// Validate connectivity and count vertices
	total := 0
	for b, blk := range blocks {
		for c, cell := range blk.Cells {
			for _, v := range cell {
				if v < 0 || v >= len(blk.Vertices) {
					return nil, fmt.Errorf("block %d cell %d references vertex %d, block has %d vertices",
						b, c, v, len(blk.Vertices))
				}
			}
		}
		total += len(blk.Vertices)
	}

	pts := make(stitchPoints, 0, total)
	for _, blk := range blocks {
		for _, v := range blk.Vertices {
			pts = append(pts, stitchPoint{P: v, Ord: len(pts)})
		}
	}

	parent := make([]int, total)
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		switch {
		case ra < rb:
			parent[rb] = ra
		case rb < ra:
			parent[ra] = rb
		}
	}

	if total > 0 {
		// kdtree.New reorders its input, so build over a copy
		tree := kdtree.New(append(stitchPoints(nil), pts...), false)
		r2max := radius * radius
		for _, p := range pts {
			keep := kdtree.NewDistKeeper(r2max)
			tree.NearestSet(keep, p)
			for _, c := range keep.Heap {
				q := c.Comparable.(stitchPoint)
				if q.Ord != p.Ord {
					union(p.Ord, q.Ord)
				}
			}
		}
	}

	// Assign merged indices in order of first occurrence
	global := make([]int, total)
	sm := &StitchedMesh{}
	for i := 0; i < total; i++ {
		r := find(i)
		if r == i {
			global[i] = len(sm.Vertices)
			sm.Vertices = append(sm.Vertices, pts[i].P)
			continue
		}
		global[i] = global[r]
		sm.Merged++
	}

	offset := 0
	sm.LocalToGlobal = make([][]int, len(blocks))
	for b, blk := range blocks {
		l2g := global[offset : offset+len(blk.Vertices)]
		sm.LocalToGlobal[b] = l2g
		for _, cell := range blk.Cells {
			nc := make([]int, len(cell))
			for k, v := range cell {
				nc[k] = l2g[v]
			}
			sm.Cells = append(sm.Cells, nc)
		}
		offset += len(blk.Vertices)
	}

	tracer().Debugf("stitched %d blocks: %d vertices in, %d out, %d cells",
		len(blocks), total, len(sm.Vertices), len(sm.Cells))
	return sm, nil
}

// stitchPoint is a vertex tagged with its ordinal in the concatenated input
type stitchPoint struct {
	P   r2.Vec
	Ord int
}

func (p stitchPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(stitchPoint)
	if d == 0 {
		return p.P.X - q.P.X
	}
	return p.P.Y - q.P.Y
}

func (p stitchPoint) Dims() int { return 2 }

// Distance is squared euclidean, as kdtree expects
func (p stitchPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(stitchPoint)
	return r2.Norm2(r2.Sub(p.P, q.P))
}

type stitchPoints []stitchPoint

func (p stitchPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p stitchPoints) Len() int                              { return len(p) }
func (p stitchPoints) Pivot(d kdtree.Dim) int                { return stitchPlane{pts: p, dim: d}.Pivot() }
func (p stitchPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

type stitchPlane struct {
	pts stitchPoints
	dim kdtree.Dim
}

func (p stitchPlane) Less(i, j int) bool {
	return p.pts[i].Compare(p.pts[j], p.dim) < 0
}
func (p stitchPlane) Swap(i, j int) { p.pts[i], p.pts[j] = p.pts[j], p.pts[i] }
func (p stitchPlane) Len() int      { return len(p.pts) }
func (p stitchPlane) Slice(start, end int) kdtree.SortSlicer {
	p.pts = p.pts[start:end]
	return p
}
func (p stitchPlane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
