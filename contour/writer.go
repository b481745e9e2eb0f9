package contour

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/notargets/AirfoilMesh/geometry"
)

// SplineFileName is the conventional name of a refined contour file
func SplineFileName(name string, points int) string {
	return fmt.Sprintf("%s_spline_%d.dat", name, points)
}

// WriteContour writes c in the format read by ReadContour, preceded by a
// comment header naming the airfoil, its source and the raw point count.
func WriteContour(w io.Writer, name, source string, rawPoints int, c geometry.Curve) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#\n# Airfoil: %s\n# Created from %s\n", name, source)
	fmt.Fprintf(bw, "# Spline with %d points based on initial contour(%d points)\n#\n", len(c), rawPoints)
	for _, p := range c {
		fmt.Fprintf(bw, "%10.8f %10.8f \n", p.X, p.Y)
	}
	return bw.Flush()
}

// WriteContourFile writes the refined contour of a into dir and returns
// the file path.
func WriteContourFile(dir string, a *Airfoil) (string, error) {
	c := a.Coordinates()
	path := filepath.Join(dir, SplineFileName(a.Name, len(c)))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err = WriteContour(f, a.Name, a.Source, len(a.Raw), c); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
