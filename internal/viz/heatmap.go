package viz

import (
	"math"
	"strings"
)

var shades = []rune{' ', '░', '▒', '▓', '█'}

// Heatmap shades a rows×cols grid given in row-major order. Masked cells are
// drawn as '·'. Each cell is two characters wide.
func Heatmap(values []float64, rows, cols int) string {
	if rows*cols != len(values) || rows == 0 || cols == 0 {
		return ""
	}
	lo, hi, ok := bounds(values)
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			v := values[r*cols+c]
			if !ok || math.IsNaN(v) {
				b.WriteString("··")
				continue
			}
			idx := int(math.Round((v - lo) / span * float64(len(shades)-1)))
			ch := string(shades[idx])
			b.WriteString(ch + ch)
		}
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
