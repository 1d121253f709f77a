package main

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/saltflux/internal/analysis"
	"github.com/san-kum/saltflux/internal/decomp"
	"github.com/san-kum/saltflux/internal/ensemble"
	"github.com/san-kum/saltflux/internal/field"
	"github.com/san-kum/saltflux/internal/metrics"
	"github.com/san-kum/saltflux/internal/storage"
	"github.com/san-kum/saltflux/internal/viz"
)

func runDecomposition(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sc, fields, err := prepare(cfg)
	if err != nil {
		return err
	}

	d, err := decomposeFields(cfg, fields)
	if err != nil {
		return err
	}

	logger.Info("decomposing", "scenario", cfg.Scenario, "shape", d.Shape())
	start := time.Now()
	fluxes := d.Fluxes()
	vals := metrics.Evaluate(d, metrics.Default()...)
	elapsed := time.Since(start)

	run := &storage.Run{
		Meta: storage.RunMetadata{
			Scenario: cfg.Scenario,
			Seed:     cfg.Seed,
			Noise:    cfg.Noise,
			Grid: storage.GridMetadata{
				Times:  cfg.Grid.Times,
				Space:  cfg.Grid.Space,
				Space2: cfg.Grid.Space2,
				Depth:  cfg.Grid.Depth,
			},
			TimeAxis:  d.TimeAxis(),
			DepthAxis: d.DepthAxis(),
			Params:    sc.GetParams(),
			Metrics:   vals,
		},
		Fluxes: fluxes,
		Total:  d.Total(),
	}
	runID, err := st.Save(run)
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render(fmt.Sprintf("%s  %v", cfg.Scenario, d.Shape())))
	fmt.Println(viz.FluxTable(summaryRows(fluxes, d.Total())))
	fmt.Println(viz.Metric("closure error", vals["closure_error"]))
	fmt.Println(viz.Metric("relative closure", vals["relative_closure"]))
	fmt.Println(viz.Metric("coverage", vals["coverage"]))
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	return nil
}

// summaryRows builds one table row per flux plus one for the total.
func summaryRows(fluxes [4]*field.Field, total *field.Field) []viz.Row {
	totalSum := sumValid(total)
	rows := make([]viz.Row, 0, len(fluxes)+1)
	for _, k := range decomp.Kinds {
		rows = append(rows, row(k.String(), fluxes[k], totalSum))
	}
	return append(rows, row("total", total, totalSum))
}

func row(label string, f *field.Field, totalSum float64) viz.Row {
	r := viz.Row{Label: label, Mean: math.NaN(), Min: math.NaN(), Max: math.NaN(), Share: math.NaN(), Profile: f.Values()}
	valid := f.Valid()
	if len(valid) == 0 {
		return r
	}
	r.Min, r.Max = math.Inf(1), math.Inf(-1)
	for _, v := range valid {
		r.Min = math.Min(r.Min, v)
		r.Max = math.Max(r.Max, v)
	}
	sum := sumValid(f)
	r.Mean = sum / float64(len(valid))
	if totalSum != 0 {
		r.Share = sum / totalSum
	}
	return r
}

func sumValid(f *field.Field) float64 {
	var s float64
	for _, v := range f.Valid() {
		s += v
	}
	return s
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Noise == 0 {
		logger.Warn("noise is zero, all runs will be identical")
	}

	clean := *cfg
	clean.Noise = 0
	_, fields, err := prepare(&clean)
	if err != nil {
		return err
	}

	ens := ensemble.New(fields, numRuns, cfg.Seed, cfg.Noise,
		decomp.WithTimeAxis(cfg.TimeAxis),
		decomp.WithDepthAxis(cfg.DepthAxis))

	logger.Info("running ensemble", "scenario", cfg.Scenario, "runs", numRuns, "noise", cfg.Noise)
	start := time.Now()
	sum, err := ens.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Println(viz.HeaderStyle.Render(fmt.Sprintf("%s ensemble  %d runs", cfg.Scenario, sum.Runs)))
	for _, k := range decomp.Kinds {
		mean := sum.Mean[k].Valid()
		std := sum.Std[k].Valid()
		fmt.Printf("%-24s %s  %s\n",
			viz.Title.Render(k.String()),
			viz.Metric("mean", average(mean)),
			viz.Metric("spread", average(std)))
	}
	fmt.Printf("completed in %v\n", time.Since(start))
	return nil
}

func average(vals []float64) float64 {
	if len(vals) == 0 {
		return math.NaN()
	}
	var s float64
	for _, v := range vals {
		s += v
	}
	return s / float64(len(vals))
}

func analyzeScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	_, fields, err := prepare(cfg)
	if err != nil {
		return err
	}
	d, err := decomposeFields(cfg, fields)
	if err != nil {
		return err
	}

	var f *field.Field
	switch signal {
	case "velocity":
		f = fields.Driving
	case "salinity":
		f = fields.Scalar
	default:
		return fmt.Errorf("unknown signal %q (velocity or salinity)", signal)
	}

	ps, err := analysis.TidalSpectrum(d, f, spaceIndex, analysis.Options{Hann: hann})
	if err != nil {
		return err
	}

	fmt.Printf("tidal spectrum: %s %s at space index %d\n", cfg.Scenario, signal, spaceIndex)
	fmt.Printf("samples: %d (%d valid)\n\n", len(ps.Series), ps.Valid)

	fmt.Println(asciigraph.Plot(ps.Series,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("tidal component"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(ps.Power,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum"),
	))
	fmt.Println()

	if ps.DominantPeriod == 0 {
		fmt.Println("no tidal signal")
		return nil
	}
	fmt.Println(viz.Metric("dominant period (steps)", ps.DominantPeriod))
	fmt.Println(viz.Metric("dominant frequency (1/step)", 1/ps.DominantPeriod))
	return nil
}
