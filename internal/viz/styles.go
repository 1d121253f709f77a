package viz

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title       lipgloss.Style
	Subtle      lipgloss.Style
	MetricLabel lipgloss.Style
	MetricValue lipgloss.Style
	Positive    lipgloss.Style
	Negative    lipgloss.Style
	HeaderStyle lipgloss.Style
	Border      lipgloss.Style
)

func init() {
	applyTheme(CurrentTheme)
}

func applyTheme(t Theme) {
	Title = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	MetricLabel = lipgloss.NewStyle().Foreground(t.Muted)
	MetricValue = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	Positive = lipgloss.NewStyle().Foreground(t.Positive)
	Negative = lipgloss.NewStyle().Foreground(t.Negative)
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Muted)
	Border = lipgloss.NewStyle().Foreground(t.Muted)
}

// Masked is shown in place of masked values.
const Masked = "--"

// FormatValue formats v compactly, or Masked for NaN.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return Masked
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// Signed renders a value green when positive and red when negative.
func Signed(v float64) string {
	s := FormatValue(v)
	switch {
	case math.IsNaN(v):
		return Subtle.Render(s)
	case v < 0:
		return Negative.Render(s)
	default:
		return Positive.Render(s)
	}
}

// Metric renders a "label: value" line.
func Metric(label string, v float64) string {
	return MetricLabel.Render(label+":") + " " + MetricValue.Render(FormatValue(v))
}

func Separator(width int) string {
	if width < 7 {
		return Subtle.Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return Subtle.Render(left + " ◆ " + right)
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline draws one character per value, sampled down to width. Masked
// (NaN) values leave a blank.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	lo, hi, ok := bounds(values)
	if !ok {
		return strings.Repeat(" ", min(width, len(values)))
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		v := values[i*step]
		if math.IsNaN(v) {
			b.WriteRune(' ')
			continue
		}
		idx := int((v - lo) / span * float64(len(sparkChars)-1))
		idx = min(max(idx, 0), len(sparkChars)-1)
		b.WriteRune(sparkChars[idx])
	}
	return b.String()
}

// bounds returns the range of the non-NaN values.
func bounds(values []float64) (lo, hi float64, ok bool) {
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if !ok {
			lo, hi, ok = v, v, true
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, ok
}
