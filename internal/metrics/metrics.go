package metrics

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/saltflux/internal/decomp"
	"github.com/san-kum/saltflux/internal/field"
)

// Metric reduces a decomposition to a single number. Masked entries never
// contribute.
type Metric interface {
	Name() string
	Compute(d *decomp.Decomposer) float64
}

// Default is the metric set stored with every run.
func Default() []Metric {
	ms := []Metric{ClosureError{}, RelativeClosure{}, Coverage{}, Mean{Total: true}}
	for _, k := range decomp.Kinds {
		ms = append(ms, Mean{Kind: k}, Share{Kind: k})
	}
	return ms
}

func Evaluate(d *decomp.Decomposer, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Compute(d)
	}
	return out
}

// Key turns a flux kind into a metric-name suffix, e.g. "net_flow".
func Key(k decomp.Kind) string {
	return strings.NewReplacer(" ", "_", "-", "_").Replace(k.String())
}

// ClosureError is the largest absolute difference between the total
// transport and the sum of the four fluxes.
type ClosureError struct{}

func (ClosureError) Name() string { return "closure_error" }

func (ClosureError) Compute(d *decomp.Decomposer) float64 {
	vals := d.Closure().Valid()
	if len(vals) == 0 {
		return math.NaN()
	}
	return floats.Norm(vals, math.Inf(1))
}

// RelativeClosure is ClosureError scaled by the largest total transport.
type RelativeClosure struct{}

func (RelativeClosure) Name() string { return "relative_closure" }

func (RelativeClosure) Compute(d *decomp.Decomposer) float64 {
	total := d.Total().Valid()
	if len(total) == 0 {
		return math.NaN()
	}
	scale := floats.Norm(total, math.Inf(1))
	if scale == 0 {
		return 0
	}
	return ClosureError{}.Compute(d) / scale
}

// Coverage is the fraction of space elements with a valid total transport.
type Coverage struct{}

func (Coverage) Name() string { return "coverage" }

func (Coverage) Compute(d *decomp.Decomposer) float64 {
	total := d.Total()
	return float64(total.Size()-total.MaskedCount()) / float64(total.Size())
}

// Mean averages one flux, or the total when Total is set, over space.
type Mean struct {
	Kind  decomp.Kind
	Total bool
}

func (m Mean) Name() string {
	if m.Total {
		return "mean_total"
	}
	return "mean_" + Key(m.Kind)
}

func (m Mean) Compute(d *decomp.Decomposer) float64 {
	f := d.Total()
	if !m.Total {
		f = d.Flux(m.Kind)
	}
	vals := f.Valid()
	if len(vals) == 0 {
		return math.NaN()
	}
	return stat.Mean(vals, nil)
}

// Share is the fraction of the space-summed total transport carried by one
// flux. Elements where either side is masked are skipped.
type Share struct {
	Kind decomp.Kind
}

func (s Share) Name() string { return "share_" + Key(s.Kind) }

func (s Share) Compute(d *decomp.Decomposer) float64 {
	flux, total := paired(d.Flux(s.Kind), d.Total())
	den := floats.Sum(total)
	if len(total) == 0 || den == 0 {
		return math.NaN()
	}
	return floats.Sum(flux) / den
}

func paired(a, b *field.Field) ([]float64, []float64) {
	av, bv := a.Values(), b.Values()
	outA := make([]float64, 0, len(av))
	outB := make([]float64, 0, len(bv))
	for i := range av {
		if math.IsNaN(av[i]) || math.IsNaN(bv[i]) {
			continue
		}
		outA = append(outA, av[i])
		outB = append(outB, bv[i])
	}
	return outA, outB
}
