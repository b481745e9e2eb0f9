// Command airfoilmesh refines airfoil contours and builds structured
// C-type meshes around them.
//
//	airfoilmesh analyze naca0012.dat
//	airfoilmesh mesh --naca 2412 -o naca2412.su2
//
// Settings are read from a YAML file given with --config, with the keys
// "refine" (see contour.RefineOptions), "windtunnel" (see
// windtunnel.Config) and "tracing" (go or logrus).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
