package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Row is one line of a flux summary.
type Row struct {
	Label string
	Mean  float64
	Min   float64
	Max   float64
	Share float64
	// Profile is the flux along flattened space, NaN where masked.
	Profile []float64
}

const profileWidth = 24

// FluxTable renders rows as a bordered table.
func FluxTable(rows []Row) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Border).
		Headers("component", "mean", "min", "max", "share", "profile").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return Title.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})

	for _, r := range rows {
		t.Row(
			r.Label,
			Signed(r.Mean),
			FormatValue(r.Min),
			FormatValue(r.Max),
			FormatValue(r.Share),
			Sparkline(r.Profile, profileWidth),
		)
	}
	return t.Render()
}
