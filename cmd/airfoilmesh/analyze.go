package main

import (
	"io"

	"github.com/notargets/AirfoilMesh/contour"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type analysisReport struct {
	Airfoil           string                `yaml:"airfoil"`
	Source            string                `yaml:"source,omitempty"`
	RawPoints         int                   `yaml:"raw_points"`
	SplinePoints      int                   `yaml:"spline_points"`
	Refine            contour.RefineOptions `yaml:"refine"`
	Chord             float64               `yaml:"chord"`
	LeadingEdge       [2]float64            `yaml:"leading_edge,flow"`
	TrailingEdge      [2]float64            `yaml:"trailing_edge,flow"`
	YRange            [2]float64            `yaml:"y_range,flow"`
	LeadingEdgeRadius float64               `yaml:"leading_edge_radius"`
	NoseCenter        [2]float64            `yaml:"nose_center,flow"`
	Degenerate        []int                 `yaml:"degenerate_samples,omitempty,flow"`
	SplineFile        string                `yaml:"spline_file,omitempty"`
}

func newAnalyzeCommand(opts *options) *cobra.Command {
	var writeDir string
	cmd := &cobra.Command{
		Use:   "analyze [contour file]",
		Short: "Refine a contour and report its geometry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadAirfoil(opts, args)
			if err != nil {
				return err
			}
			rep, err := analyze(a)
			if err != nil {
				return err
			}
			if writeDir != "" {
				if rep.SplineFile, err = contour.WriteContourFile(writeDir, a); err != nil {
					return err
				}
			}
			return writeYAML(cmd.OutOrStdout(), rep)
		},
	}
	cmd.Flags().StringVar(&writeDir, "write-spline", "", "directory to write the refined contour to")
	return cmd
}

func analyze(a *contour.Airfoil) (*analysisReport, error) {
	cp, err := a.Curvature()
	if err != nil {
		return nil, err
	}
	nose, err := cp.LeadingEdgeRadius()
	if err != nil {
		return nil, err
	}
	opt, err := refineOptions()
	if err != nil {
		return nil, err
	}
	le, te, chord := a.Chord()
	return &analysisReport{
		Airfoil:           a.Name,
		Source:            a.Source,
		RawPoints:         len(a.Raw),
		SplinePoints:      a.Sampled.Len(),
		Refine:            opt,
		Chord:             chord,
		LeadingEdge:       [2]float64{le.X, le.Y},
		TrailingEdge:      [2]float64{te.X, te.Y},
		YRange:            a.Offset,
		LeadingEdgeRadius: nose.Radius,
		NoseCenter:        [2]float64{nose.Center.X, nose.Center.Y},
		Degenerate:        cp.Degenerate(),
	}, nil
}

func writeYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
