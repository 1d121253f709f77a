package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/saltflux/internal/decomp"
	"github.com/san-kum/saltflux/internal/export"
	"github.com/san-kum/saltflux/internal/storage"
	"github.com/san-kum/saltflux/internal/viz"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tGRID\tAXES\tCLOSURE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t(%d, %d)\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.SpaceShape,
			run.TimeAxis,
			run.DepthAxis,
			closure(run.Metrics),
		)
	}

	return w.Flush()
}

func closure(m map[string]float64) string {
	v, ok := m["closure_error"]
	if !ok {
		return viz.Masked
	}
	return fmt.Sprintf("%.3g", v)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}

	shape := run.Total.Shape()
	fmt.Printf("run: %s\n", run.Meta.ID)
	fmt.Printf("scenario: %s\n", run.Meta.Scenario)
	fmt.Printf("space: %v\n\n", shape)

	if run.Total.Size() < 2 {
		return fmt.Errorf("need at least two space elements to plot")
	}

	for _, k := range decomp.Kinds {
		f := run.Fluxes[k]
		if f.MaskedCount() == f.Size() {
			fmt.Printf("%s: all masked\n\n", k)
			continue
		}
		fmt.Println(asciigraph.Plot(f.Values(),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(k.String()),
		))
		fmt.Println()

		if len(shape) == 2 {
			fmt.Println(viz.Heatmap(f.Values(), shape[0], shape[1]))
			fmt.Println()
		}
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportRunJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}

	if outFile == "" {
		return storage.ExportJSON(os.Stdout, run)
	}

	file, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := storage.ExportJSON(file, run); err != nil {
		return err
	}
	logger.Info("exported", "run", run.Meta.ID, "path", outFile)
	return nil
}

func exportRunSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}

	series := make([]export.Series, 0, len(decomp.Kinds)+1)
	for _, k := range decomp.Kinds {
		series = append(series, export.Series{Label: k.String(), Values: run.Fluxes[k].Values()})
	}
	series = append(series, export.Series{Label: "total", Values: run.Total.Values()})

	svg := export.ProfilesToSVG(series, 800, 400)
	if svg == "" {
		return fmt.Errorf("run %s has nothing to draw", run.Meta.ID)
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("exported", "run", run.Meta.ID, "path", outFile)
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
