package contour

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/AirfoilMesh/geometry"
	"github.com/notargets/AirfoilMesh/utils"
	"gonum.org/v1/gonum/spatial/r2"
)

// CommentMarker flags a line of a contour file that carries no data
const CommentMarker = "#"

// ReadContour parses a contour: two whitespace separated numbers per line.
// Lines containing CommentMarker and blank lines are skipped, extra columns
// are ignored. A malformed line yields a *utils.ParseError.
func ReadContour(r io.Reader, name string) (geometry.Curve, error) {
	var c geometry.Curve
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.Contains(text, CommentMarker) {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, &utils.ParseError{File: name, Line: line, Text: text,
				Err: fmt.Errorf("expected 2 columns, found %d", len(fields))}
		}
		var xy [2]float64
		for k := range xy {
			v, err := strconv.ParseFloat(fields[k], 64)
			if err != nil {
				return nil, &utils.ParseError{File: name, Line: line, Text: text, Err: err}
			}
			xy[k] = v
		}
		c = append(c, r2.Vec{X: xy[0], Y: xy[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	if len(c) == 0 {
		return nil, &utils.ParseError{File: name, Line: line, Err: fmt.Errorf("no coordinates found")}
	}
	tracer().P("file", name).Infof("read contour with %d points", len(c))
	return c, nil
}

// ReadContourFile opens and parses a contour file
func ReadContourFile(path string) (geometry.Curve, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadContour(f, path)
}
