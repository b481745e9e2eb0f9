package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteFLMA writes the mesh as one layer of hexahedra, extruded from
// z=-depth/2 to z=+depth/2. Vertex indices are 1-based.
func WriteFLMA(w io.Writer, m *Mesh, depth float64) error {
	var (
		bw = bufio.NewWriter(w)
		n  = len(m.Points)
		k  = len(m.Cells)
	)
	fmt.Fprintf(bw, "%d\n", 2*n)
	for _, z := range []float64{-depth / 2, depth / 2} {
		for _, p := range m.Points {
			fmt.Fprintf(bw, "%s %s %s\n", formatFloat(p.X), formatFloat(p.Y), formatFloat(z))
		}
	}
	fmt.Fprintf(bw, "\n%d\n", k)
	for _, c := range m.Cells {
		fmt.Fprintf(bw, "8\n%d %d %d %d %d %d %d %d\n",
			c[0]+1, c[1]+1, c[2]+1, c[3]+1,
			c[0]+1+n, c[1]+1+n, c[2]+1+n, c[3]+1+n)
	}
	fmt.Fprintf(bw, "\n%d\n", k)
	for range m.Cells {
		bw.WriteString("5 ")
	}
	bw.WriteString("\n\n0\n")
	return bw.Flush()
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}
