package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"

	"github.com/san-kum/saltflux/internal/decomp"
	"github.com/san-kum/saltflux/internal/field"
)

var (
	ErrSpaceIndex  = errors.New("analysis: space index out of range")
	ErrShortSeries = errors.New("analysis: time series too short")
	ErrNoSignal    = errors.New("analysis: no valid samples")
)

const minSamples = 4

type Options struct {
	// Hann applies a Hann window before the transform.
	Hann bool
}

type Spectrum struct {
	Series []float64
	// Frequencies in cycles per time step, matching Power.
	Frequencies    []float64
	Power          []float64
	DominantPeriod float64
	Valid          int
}

// TidalSpectrum analyses component 2 of f at the flat (row-major) space
// index.
func TidalSpectrum(d *decomp.Decomposer, f *field.Field, space int, opts Options) (*Spectrum, error) {
	series, err := TimeSeries(d, d.Component2(f, nil), space)
	if err != nil {
		return nil, err
	}
	return Analyze(series, opts)
}

// TimeSeries extracts the time series at a flat space index from a field
// that has the time axis and the space axes but no depth axis.
func TimeSeries(d *decomp.Decomposer, f *field.Field, space int) ([]float64, error) {
	t := d.TimeAxis()
	if t > d.DepthAxis() {
		t--
	}

	perm := make([]int, 0, f.Ndim())
	perm = append(perm, t)
	for i := 0; i < f.Ndim(); i++ {
		if i != t {
			perm = append(perm, i)
		}
	}
	vals := f.Transpose(perm...).Values()

	n := f.Shape()[t]
	stride := len(vals) / n
	if space < 0 || space >= stride {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrSpaceIndex, space, stride)
	}

	series := make([]float64, n)
	for i := range series {
		series[i] = vals[i*stride+space]
	}
	return series, nil
}

// Analyze returns the one-sided power spectrum of a series with NaN marking
// missing samples. The zero frequency is dropped.
func Analyze(series []float64, opts Options) (*Spectrum, error) {
	n := len(series)
	if n < minSamples {
		return nil, fmt.Errorf("%w: %d samples, need %d", ErrShortSeries, n, minSamples)
	}

	var sum float64
	valid := 0
	for _, v := range series {
		if !math.IsNaN(v) {
			sum += v
			valid++
		}
	}
	if valid == 0 {
		return nil, ErrNoSignal
	}
	mean := sum / float64(valid)

	x := make([]float64, n)
	for i, v := range series {
		if math.IsNaN(v) {
			continue
		}
		x[i] = v - mean
		if opts.Hann {
			x[i] *= 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		}
	}

	coeffs := fft.FFTReal(x)

	half := n / 2
	ps := &Spectrum{
		Series:      series,
		Frequencies: make([]float64, half),
		Power:       make([]float64, half),
		Valid:       valid,
	}
	best := -1
	for k := 1; k <= half; k++ {
		p := cmplx.Abs(coeffs[k])
		p *= p / float64(n)
		ps.Frequencies[k-1] = float64(k) / float64(n)
		ps.Power[k-1] = p
		if best < 0 || p > ps.Power[best-1] {
			best = k
		}
	}
	if ps.Power[best-1] > 0 {
		ps.DominantPeriod = float64(n) / float64(best)
	}
	return ps, nil
}
