package windtunnel

import (
	"fmt"

	"github.com/notargets/AirfoilMesh/utils"
)

// AirfoilBlock controls the O-type layer extruded from the contour
type AirfoilBlock struct {
	Divisions int     `mapstructure:"divisions" yaml:"divisions"`
	Ratio     float64 `mapstructure:"ratio" yaml:"ratio"`         // Last over first cell height
	Thickness float64 `mapstructure:"thickness" yaml:"thickness"` // Layer thickness
}

// TrailingEdgeBlock controls the block closing the trailing edge
type TrailingEdgeBlock struct {
	ClosureDivisions int     `mapstructure:"closure_divisions" yaml:"closure_divisions"` // Cells across a blunt trailing edge
	Length           float64 `mapstructure:"length" yaml:"length"`
	Divisions        int     `mapstructure:"divisions" yaml:"divisions"`
	Ratio            float64 `mapstructure:"ratio" yaml:"ratio"`
	SmoothIterations int     `mapstructure:"smooth_iterations" yaml:"smooth_iterations"`
}

// TunnelBlock controls the C-shaped block out to the far field
type TunnelBlock struct {
	Height        float64 `mapstructure:"height" yaml:"height"` // Far field distance from the chord line
	Divisions     int     `mapstructure:"divisions" yaml:"divisions"`
	Ratio         float64 `mapstructure:"ratio" yaml:"ratio"`
	BlendExponent float64 `mapstructure:"blend_exponent" yaml:"blend_exponent"`
}

// BackBlock controls the wake block downstream of the tunnel block
type BackBlock struct {
	Length    float64 `mapstructure:"length" yaml:"length"`
	Divisions int     `mapstructure:"divisions" yaml:"divisions"`
	Ratio     float64 `mapstructure:"ratio" yaml:"ratio"`
}

type Config struct {
	Airfoil      AirfoilBlock      `mapstructure:"airfoil" yaml:"airfoil"`
	TrailingEdge TrailingEdgeBlock `mapstructure:"trailing_edge" yaml:"trailing_edge"`
	Tunnel       TunnelBlock       `mapstructure:"tunnel" yaml:"tunnel"`
	Back         BackBlock         `mapstructure:"back" yaml:"back"`
	StitchRadius float64           `mapstructure:"stitch_radius" yaml:"stitch_radius"`
}

func DefaultConfig() Config {
	return Config{
		Airfoil: AirfoilBlock{Divisions: 15, Ratio: 3, Thickness: 0.04},
		TrailingEdge: TrailingEdgeBlock{
			ClosureDivisions: 3,
			Length:           0.04,
			Divisions:        6,
			Ratio:            3,
			SmoothIterations: 1,
		},
		Tunnel:       TunnelBlock{Height: 2, Divisions: 20, Ratio: 5, BlendExponent: 0.6},
		Back:         BackBlock{Length: 3, Divisions: 15, Ratio: 3},
		StitchRadius: utils.DefaultStitchRadius,
	}
}

// Validate reports the first out of range parameter
func (c Config) Validate() error {
	checks := []struct {
		ok   bool
		name string
		val  interface{}
	}{
		{c.Airfoil.Divisions >= 1, "airfoil.divisions", c.Airfoil.Divisions},
		{c.Airfoil.Ratio > 0, "airfoil.ratio", c.Airfoil.Ratio},
		{c.Airfoil.Thickness > 0, "airfoil.thickness", c.Airfoil.Thickness},
		{c.TrailingEdge.ClosureDivisions >= 1, "trailing_edge.closure_divisions", c.TrailingEdge.ClosureDivisions},
		{c.TrailingEdge.Length > 0, "trailing_edge.length", c.TrailingEdge.Length},
		{c.TrailingEdge.Divisions >= 2, "trailing_edge.divisions", c.TrailingEdge.Divisions},
		{c.TrailingEdge.Ratio > 0, "trailing_edge.ratio", c.TrailingEdge.Ratio},
		{c.TrailingEdge.SmoothIterations >= 0, "trailing_edge.smooth_iterations", c.TrailingEdge.SmoothIterations},
		{c.Tunnel.Height > 0, "tunnel.height", c.Tunnel.Height},
		{c.Tunnel.Divisions >= 2, "tunnel.divisions", c.Tunnel.Divisions},
		{c.Tunnel.Ratio > 0, "tunnel.ratio", c.Tunnel.Ratio},
		{c.Tunnel.BlendExponent > 0, "tunnel.blend_exponent", c.Tunnel.BlendExponent},
		{c.Back.Length > 0, "back.length", c.Back.Length},
		{c.Back.Divisions >= 1, "back.divisions", c.Back.Divisions},
		{c.Back.Ratio > 0, "back.ratio", c.Back.Ratio},
		{c.StitchRadius >= 0, "stitch_radius", c.StitchRadius},
	}
	for _, ck := range checks {
		if !ck.ok {
			return fmt.Errorf("invalid windtunnel config: %s=%v", ck.name, ck.val)
		}
	}
	return nil
}
