package export

import (
	"math"
	"strings"
	"testing"
)

func TestProfilesToSVG(t *testing.T) {
	svg := ProfilesToSVG([]Series{
		{Label: "net flow", Values: []float64{1, 2, 3, 4}},
		{Label: "a<b", Color: "#123456", Values: []float64{-1, math.NaN(), 0, 1}},
	}, 400, 200)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("not an SVG document")
	}
	if got := strings.Count(svg, "<path"); got != 2 {
		t.Errorf("expected 2 paths, got %d", got)
	}
	if !strings.Contains(svg, "#123456") || !strings.Contains(svg, DefaultColors[0]) {
		t.Error("series colors missing")
	}
	if !strings.Contains(svg, "a&lt;b") {
		t.Error("label not escaped")
	}
	// The masked point starts a new segment.
	second := svg[strings.LastIndex(svg, "<path"):]
	if got := strings.Count(second[:strings.Index(second, "<title>")], "M"); got != 2 {
		t.Errorf("expected 2 segments in the masked series, got %d", got)
	}
	if !strings.Contains(svg, "<line") {
		t.Error("expected a zero line for a range spanning zero")
	}
}

func TestProfilesToSVG_Empty(t *testing.T) {
	if ProfilesToSVG(nil, 10, 10) != "" {
		t.Error("expected empty output without series")
	}
	if ProfilesToSVG([]Series{{Values: []float64{1}}}, 10, 10) != "" {
		t.Error("expected empty output for a single point")
	}
	if ProfilesToSVG([]Series{{Values: []float64{math.NaN(), math.NaN()}}}, 10, 10) != "" {
		t.Error("expected empty output when everything is masked")
	}
}
