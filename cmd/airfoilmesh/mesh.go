package main

import (
	"github.com/notargets/AirfoilMesh/blockmesh"
	"github.com/notargets/AirfoilMesh/export"
	"github.com/notargets/AirfoilMesh/windtunnel"
	"github.com/spf13/cobra"
)

type patchReport struct {
	Name  string `yaml:"name"`
	Edges int    `yaml:"edges"`
}

type meshReport struct {
	Airfoil  string                    `yaml:"airfoil"`
	Output   string                    `yaml:"output"`
	Vertices int                       `yaml:"vertices"`
	Cells    int                       `yaml:"cells"`
	Merged   int                       `yaml:"merged_vertices"`
	Patches  []patchReport             `yaml:"patches"`
	Blocks   []blockmesh.QualityReport `yaml:"blocks"`
}

func newMeshCommand(opts *options) *cobra.Command {
	var (
		output string
		depth  float64
	)
	cmd := &cobra.Command{
		Use:   "mesh [contour file]",
		Short: "Build a C-type block mesh around a contour",
		Long: "Build a C-type block mesh around a contour and write it as FLMA,\n" +
			"SU2 or Gmsh 2.2, chosen by the extension of --output (.flma, .su2, .msh).",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := export.FormatForPath(output); err != nil {
				return err
			}
			a, err := loadAirfoil(opts, args)
			if err != nil {
				return err
			}
			cfg, err := windtunnelConfig()
			if err != nil {
				return err
			}
			w, err := windtunnel.New(cfg)
			if err != nil {
				return err
			}
			if err = w.Build(a.Name, a.Coordinates()); err != nil {
				return err
			}
			m, err := w.Mesh()
			if err != nil {
				return err
			}
			if err = export.WriteFile(output, m, depth); err != nil {
				return err
			}
			rep := meshReport{
				Airfoil:  a.Name,
				Output:   output,
				Vertices: len(m.Points),
				Cells:    len(m.Cells),
				Merged:   m.Merged,
				Blocks:   w.Quality(),
			}
			for _, p := range m.Patches {
				rep.Patches = append(rep.Patches, patchReport{Name: p.Name, Edges: len(p.Edges)})
			}
			return writeYAML(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "mesh.su2", "mesh file to write")
	cmd.Flags().Float64Var(&depth, "depth", 0.1, "extrusion depth of FLMA output")
	return cmd
}
