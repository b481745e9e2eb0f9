package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/notargets/gocfd/utils"
)

// FluidName is the physical group holding all cells in Gmsh output
const FluidName = "fluid"

var gmshElementType = map[utils.ElementType]int{
	utils.Line: 1,
	utils.Quad: 3,
}

// WriteGMSH writes a Gmsh 2.2 ASCII mesh. Boundary patches become 1D
// physical groups numbered from 1 in patch order, the cells form the 2D
// group that follows. Indices are 1-based.
func WriteGMSH(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("$MeshFormat\n2.2 0 8\n$EndMeshFormat\n")

	fluid := len(m.Patches) + 1
	bw.WriteString("$PhysicalNames\n")
	fmt.Fprintf(bw, "%d\n", len(m.Patches)+1)
	for i, p := range m.Patches {
		fmt.Fprintf(bw, "1 %d \"%s\"\n", i+1, p.Name)
	}
	fmt.Fprintf(bw, "2 %d \"%s\"\n", fluid, FluidName)
	bw.WriteString("$EndPhysicalNames\n")

	bw.WriteString("$Nodes\n")
	fmt.Fprintf(bw, "%d\n", len(m.Vertices))
	for i, v := range m.Vertices {
		fmt.Fprintf(bw, "%d %s %s %s\n", i+1, formatFloat(v[0]), formatFloat(v[1]), formatFloat(v[2]))
	}
	bw.WriteString("$EndNodes\n")

	nEdges := 0
	for _, p := range m.Patches {
		nEdges += len(p.Edges)
	}
	bw.WriteString("$Elements\n")
	fmt.Fprintf(bw, "%d\n", nEdges+len(m.EtoV))
	id := 1
	for i, p := range m.Patches {
		for _, e := range p.Edges {
			fmt.Fprintf(bw, "%d %d 2 %d %d %d %d\n", id, gmshElementType[utils.Line], i+1, i+1, e[0]+1, e[1]+1)
			id++
		}
	}
	for k, nodes := range m.EtoV {
		code, ok := gmshElementType[m.ElementTypes[k]]
		if !ok {
			return fmt.Errorf("element %d: no gmsh type for %v", k, m.ElementTypes[k])
		}
		geom := 1
		if len(m.ElementTags[k]) > 0 {
			geom = m.ElementTags[k][0] + 1
		}
		fmt.Fprintf(bw, "%d %d 2 %d %d", id, code, fluid, geom)
		for _, p := range nodes {
			fmt.Fprintf(bw, " %d", p+1)
		}
		bw.WriteString("\n")
		id++
	}
	bw.WriteString("$EndElements\n")
	return bw.Flush()
}

// Format selects a mesh writer
type Format string

const (
	FLMA Format = "flma"
	SU2  Format = "su2"
	GMSH Format = "msh"
)

// FormatForPath picks the writer from a file extension
func FormatForPath(path string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))); f {
	case FLMA, SU2, GMSH:
		return f, nil
	default:
		return "", fmt.Errorf("unknown mesh format %q, want .flma, .su2 or .msh", filepath.Ext(path))
	}
}

// Write dispatches to the writer for f. depth is used by FLMA only.
func Write(w io.Writer, m *Mesh, f Format, depth float64) error {
	switch f {
	case FLMA:
		return WriteFLMA(w, m, depth)
	case SU2:
		return WriteSU2(w, m)
	case GMSH:
		return WriteGMSH(w, m)
	}
	return fmt.Errorf("unknown mesh format %q", f)
}

// WriteFile writes m to path in the format given by its extension
func WriteFile(path string, m *Mesh, depth float64) error {
	f, err := FormatForPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = Write(file, m, f, depth); err != nil {
		file.Close()
		return err
	}
	tracer().Infof("wrote %s mesh %s", f, path)
	return file.Close()
}
