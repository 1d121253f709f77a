package storage

import (
	"encoding/json"
	"io"
	"math"
)

type ExportData struct {
	RunMetadata
	Fluxes map[string][]*float64 `json:"fluxes"`
}

// ExportJSON writes the run metadata and every column in row-major order.
// Masked cells become null.
func ExportJSON(w io.Writer, run *Run) error {
	data := ExportData{
		RunMetadata: run.Meta,
		Fluxes:      make(map[string][]*float64, len(Columns)),
	}
	data.Metrics = finite(run.Meta.Metrics)

	for i, c := range run.columns() {
		vals := c.Values()
		out := make([]*float64, len(vals))
		for j := range vals {
			if !math.IsNaN(vals[j]) {
				out[j] = &vals[j]
			}
		}
		data.Fluxes[Columns[i]] = out
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
