package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/notargets/gocfd/utils"
)

var su2ElementType = map[utils.ElementType]int{
	utils.Line: 3,
	utils.Quad: 9,
}

// WriteSU2 writes a 2D SU2 mesh with 0-based indices and one marker per
// boundary patch.
func WriteSU2(w io.Writer, m *Mesh) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("%\n% Problem dimension\n%\nNDIME= 2\n")
	bw.WriteString("%\n% Inner element connectivity\n%\n")
	fmt.Fprintf(bw, "NELEM= %d\n", len(m.EtoV))
	for k, nodes := range m.EtoV {
		code, ok := su2ElementType[m.ElementTypes[k]]
		if !ok {
			return fmt.Errorf("element %d: no SU2 code for %v", k, m.ElementTypes[k])
		}
		fmt.Fprintf(bw, "%d", code)
		for _, p := range nodes {
			fmt.Fprintf(bw, " %d", p)
		}
		fmt.Fprintf(bw, " %d\n", k)
	}
	bw.WriteString("%\n% Node coordinates\n%\n")
	fmt.Fprintf(bw, "NPOIN= %d\n", len(m.Vertices))
	for i, v := range m.Vertices {
		fmt.Fprintf(bw, "%s %s %d\n", formatFloat(v[0]), formatFloat(v[1]), i)
	}
	bw.WriteString("%\n% Boundary elements\n%\n")
	fmt.Fprintf(bw, "NMARK= %d\n", len(m.Patches))
	for _, p := range m.Patches {
		fmt.Fprintf(bw, "MARKER_TAG= %s\n", p.Name)
		fmt.Fprintf(bw, "MARKER_ELEMS= %d\n", len(p.Edges))
		for _, e := range p.Edges {
			fmt.Fprintf(bw, "%d %d %d\n", su2ElementType[utils.Line], e[0], e[1])
		}
	}
	return bw.Flush()
}
