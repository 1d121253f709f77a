package export

import (
	"fmt"
	"math"
	"strings"
)

// Series is one line of a profile chart.
type Series struct {
	Label  string
	Color  string
	Values []float64
}

// DefaultColors are used for series without a color, in order.
var DefaultColors = []string{"#00a8cc", "#ffd700", "#00ff88", "#ff6b6b", "#ffffff"}

// ProfilesToSVG draws the series against their index. NaN values break the
// line. All series share one y range, padded by 10%.
func ProfilesToSVG(series []Series, width, height int) string {
	n := 0
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		n = max(n, len(s.Values))
		for _, v := range s.Values {
			if math.IsNaN(v) {
				continue
			}
			minY = math.Min(minY, v)
			maxY = math.Max(maxY, v)
		}
	}
	if n < 2 || math.IsInf(minY, 1) {
		return ""
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	x := func(i int) float64 { return float64(i) / float64(n-1) * float64(width) }
	y := func(v float64) float64 { return float64(height) - (v-minY)/rangeY*float64(height) }

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	if minY < 0 && maxY > 0 {
		fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-dasharray="4 4"/>
`, y(0), width, y(0))
	}

	for i, s := range series {
		color := s.Color
		if color == "" {
			color = DefaultColors[i%len(DefaultColors)]
		}

		var d strings.Builder
		pen := false
		for j, v := range s.Values {
			if math.IsNaN(v) {
				pen = false
				continue
			}
			cmd := "L"
			if !pen {
				cmd = "M"
				pen = true
			}
			fmt.Fprintf(&d, "%s%.1f,%.1f ", cmd, x(j), y(v))
		}
		if d.Len() == 0 {
			continue
		}
		fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="%s"><title>%s</title></path>
`, color, strings.TrimSpace(d.String()), escape(s.Label))
		fmt.Fprintf(&sb, `<text x="8" y="%d" fill="%s" font-family="monospace" font-size="12">%s</text>
`, 16+14*i, color, escape(s.Label))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escape(s string) string { return escaper.Replace(s) }
