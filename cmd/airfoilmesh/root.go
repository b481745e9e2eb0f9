package main

import (
	"fmt"

	"github.com/notargets/AirfoilMesh/contour"
	"github.com/notargets/AirfoilMesh/windtunnel"
	"github.com/npillmayer/schuko/schukonf/viperadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const appName = "airfoilmesh"

type options struct {
	configFile string
	verbose    int
	naca       string
	nacaPoints int
	sharpTE    bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           appName,
		Short:         "Spline refinement and structured meshing of airfoil contours",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(opts)
		},
	}
	pf := root.PersistentFlags()
	pf.StringVar(&opts.configFile, "config", "", "YAML configuration file")
	pf.CountVarP(&opts.verbose, "verbose", "v", "log progress (-v info, -vv debug)")
	pf.String("tracing", "go", "log adapter: go or logrus")
	pf.StringVar(&opts.naca, "naca", "", "use a generated NACA 4-digit section instead of a contour file")
	pf.IntVar(&opts.nacaPoints, "naca-points", 60, "stations per surface of a generated section")
	pf.BoolVar(&opts.sharpTE, "sharp", false, "close the trailing edge of a generated section")
	_ = viper.BindPFlag("tracing", pf.Lookup("tracing"))

	root.AddCommand(newAnalyzeCommand(opts), newMeshCommand(opts))
	return root
}

// setup reads the configuration and installs the tracer
func setup(opts *options) error {
	conf := viperadapter.New(appName)
	conf.InitDefaults()
	if opts.configFile != "" {
		viper.SetConfigFile(opts.configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", opts.configFile, err)
		}
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	tracing.RegisterTraceAdapter("logrus", logrusadapter.GetAdapter(), false)
	tracing.SetTraceSelector(tracing.SelectorForAdapter(tracing.GetAdapterFromConfiguration(conf, "")))

	level := tracing.LevelError
	switch {
	case opts.verbose == 1:
		level = tracing.LevelInfo
	case opts.verbose > 1:
		level = tracing.LevelDebug
	}
	tracing.Select(appName).SetTraceLevel(level)
	return nil
}

func refineOptions() (contour.RefineOptions, error) {
	opt := contour.DefaultRefineOptions()
	if err := viper.UnmarshalKey("refine", &opt); err != nil {
		return opt, fmt.Errorf("refine configuration: %w", err)
	}
	return opt, nil
}

func windtunnelConfig() (windtunnel.Config, error) {
	cfg := windtunnel.DefaultConfig()
	if err := viper.UnmarshalKey("windtunnel", &cfg); err != nil {
		return cfg, fmt.Errorf("windtunnel configuration: %w", err)
	}
	return cfg, cfg.Validate()
}

// loadAirfoil reads the contour file in args, or generates the --naca
// section, and refines it.
func loadAirfoil(opts *options, args []string) (*contour.Airfoil, error) {
	var (
		a   *contour.Airfoil
		err error
	)
	switch {
	case opts.naca != "" && len(args) > 0:
		return nil, fmt.Errorf("give either a contour file or --naca, not both")
	case opts.naca != "":
		c, err := contour.NACA4(opts.naca, opts.nacaPoints, opts.sharpTE)
		if err != nil {
			return nil, err
		}
		a, err = contour.NewAirfoil("naca"+opts.naca, c)
		if err != nil {
			return nil, err
		}
	case len(args) == 1:
		if a, err = contour.LoadAirfoil(args[0]); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("need a contour file or --naca")
	}
	opt, err := refineOptions()
	if err != nil {
		return nil, err
	}
	if err = a.SplineRefine(opt); err != nil {
		return nil, err
	}
	return a, nil
}
