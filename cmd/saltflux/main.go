package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/san-kum/saltflux/internal/config"
	"github.com/san-kum/saltflux/internal/decomp"
	"github.com/san-kum/saltflux/internal/scenario"
	"github.com/san-kum/saltflux/internal/viz"
)

var (
	dataDir string
	verbose bool
	theme   string

	configFile string
	preset     string
	times      int
	space      int
	space2     int
	depth      int
	timeAxis   int
	depthAxis  int
	seed       int64
	noise      float64
	setParams  []string

	// analyze
	spaceIndex int
	signal     string
	hann       bool

	// ensemble
	numRuns int

	outFile string

	logger *log.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "saltflux",
		Short:         "estuarine salt flux decomposition",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      time.Kitchen,
				Prefix:          "saltflux",
			})
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
			viz.SetTheme(theme)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".saltflux", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "ocean", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "decompose a scenario and store the fluxes",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDecomposition,
	}
	addScenarioFlags(runCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [scenario]",
		Short: "tidal spectrum at one space element",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeScenario,
	}
	addScenarioFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&spaceIndex, "space-index", 0, "flat space index")
	analyzeCmd.Flags().StringVar(&signal, "signal", "velocity", "velocity or salinity")
	analyzeCmd.Flags().BoolVar(&hann, "hann", false, "apply a Hann window")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scenario]",
		Short: "decompose noisy copies of a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addScenarioFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 16, "number of runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot fluxes along space",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and fluxes as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export flux profiles as an SVG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRunSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "fluxes.svg", "output file")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scenarios and their parameters",
		Run: func(cmd *cobra.Command, args []string) {
			r := scenario.NewRegistry()
			for _, name := range r.List() {
				sc, _ := r.Get(name)
				fmt.Printf("%s  %s\n", viz.Title.Render(name), viz.Subtle.Render(sc.Description()))
				params := sc.GetParams()
				for _, p := range sortedKeys(params) {
					fmt.Printf("  %s\n", viz.Metric(p, params[p]))
				}
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list presets",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			names := scenario.NewRegistry().List()
			if len(args) == 1 {
				names = args
			}
			for _, name := range names {
				presets := config.ListPresets(name)
				if len(presets) == 0 {
					continue
				}
				fmt.Printf("%s: %s\n", viz.Title.Render(name), strings.Join(presets, ", "))
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				p := config.GetPreset(cfg.Scenario, preset)
				if p == nil {
					return fmt.Errorf("unknown preset %q for %s", preset, cfg.Scenario)
				}
				cfg = p
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			logger.Info("config written", "path", args[0])
			return nil
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a tidal preset")

	rootCmd.AddCommand(runCmd, analyzeCmd, ensembleCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportSVGCmd, scenariosCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = log.New(os.Stderr)
		}
		logger.Error(err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&times, "times", config.DefaultTimes, "time steps")
	cmd.Flags().IntVar(&space, "space", config.DefaultSpace, "space elements")
	cmd.Flags().IntVar(&space2, "space2", 0, "second space axis (0 for none)")
	cmd.Flags().IntVar(&depth, "depth", config.DefaultDepth, "depth layers")
	cmd.Flags().IntVar(&timeAxis, "time-axis", config.DefaultTimeAxis, "time axis of the input arrays")
	cmd.Flags().IntVar(&depthAxis, "depth-axis", config.DefaultDepthAxis, "depth axis of the input arrays")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "noise seed")
	cmd.Flags().Float64Var(&noise, "noise", 0, "relative noise added to velocity and salinity")
	cmd.Flags().StringArrayVar(&setParams, "set", nil, "scenario parameter, name=value (repeatable)")
}

// resolveConfig merges config file, preset and flags, in increasing
// priority.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if len(args) == 1 {
		cfg.Scenario = args[0]
	}
	if preset != "" {
		p := config.GetPreset(cfg.Scenario, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for %s (available: %s)",
				preset, cfg.Scenario, strings.Join(config.ListPresets(cfg.Scenario), ", "))
		}
		copied := *p
		copied.Params = make(map[string]float64, len(p.Params))
		for k, v := range p.Params {
			copied.Params[k] = v
		}
		cfg = &copied
	}

	flags := cmd.Flags()
	if flags.Changed("times") {
		cfg.Grid.Times = times
	}
	if flags.Changed("space") {
		cfg.Grid.Space = space
	}
	if flags.Changed("space2") {
		cfg.Grid.Space2 = space2
	}
	if flags.Changed("depth") {
		cfg.Grid.Depth = depth
	}
	if flags.Changed("time-axis") {
		cfg.TimeAxis = timeAxis
	}
	if flags.Changed("depth-axis") {
		cfg.DepthAxis = depthAxis
	}
	if flags.Changed("noise") {
		cfg.Noise = noise
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	for _, kv := range setParams {
		name, val, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("--set %q: expected name=value", kv)
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("--set %q: %w", kv, err)
		}
		if cfg.Params == nil {
			cfg.Params = map[string]float64{}
		}
		cfg.Params[name] = v
	}
	return cfg, nil
}

// prepare builds the configured fields, arranged on the configured axes.
func prepare(cfg *config.Config) (scenario.Scenario, *scenario.Fields, error) {
	sc, err := cfg.Apply(scenario.NewRegistry())
	if err != nil {
		return nil, nil, err
	}
	fields, err := sc.Build(cfg.Grid.Grid())
	if err != nil {
		return nil, nil, err
	}
	fields = fields.Perturb(cfg.Noise, cfg.Seed)
	fields, err = fields.Arrange(cfg.TimeAxis, cfg.DepthAxis)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("fields built",
		"scenario", cfg.Scenario,
		"shape", fields.Driving.Shape(),
		"masked", fields.Driving.MaskedCount(),
		"noise", cfg.Noise)
	return sc, fields, nil
}

func decomposeFields(cfg *config.Config, f *scenario.Fields) (*decomp.Decomposer, error) {
	return decomp.New(f.Driving, f.Scalar, f.Area,
		decomp.WithTimeAxis(cfg.TimeAxis),
		decomp.WithDepthAxis(cfg.DepthAxis),
		decomp.WithLogger(logger))
}
