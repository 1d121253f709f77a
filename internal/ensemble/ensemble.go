package ensemble

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/saltflux/internal/decomp"
	"github.com/san-kum/saltflux/internal/field"
	"github.com/san-kum/saltflux/internal/scenario"
)

var ErrNoRuns = errors.New("ensemble: at least one run required")

// Ensemble repeats a decomposition on noisy copies of one set of fields.
// Run i uses seed seedStart+i.
type Ensemble struct {
	base      *scenario.Fields
	numRuns   int
	seedStart int64
	sigma     float64
	opts      []decomp.Option
	workers   int
}

func New(base *scenario.Fields, numRuns int, seedStart int64, sigma float64, opts ...decomp.Option) *Ensemble {
	return &Ensemble{
		base:      base,
		numRuns:   numRuns,
		seedStart: seedStart,
		sigma:     sigma,
		opts:      opts,
		workers:   runtime.GOMAXPROCS(0),
	}
}

// Summary holds the element-wise mean and standard deviation of each flux
// across runs. An element is masked in Mean when no run produced a value.
type Summary struct {
	Runs int
	Mean [4]*field.Field
	Std  [4]*field.Field
}

func (e *Ensemble) Run(ctx context.Context) (*Summary, error) {
	if e.numRuns < 1 {
		return nil, ErrNoRuns
	}

	results := make([][4]*field.Field, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := 0; i < e.numRuns; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f := e.base.Perturb(e.sigma, e.seedStart+int64(i))
			d, err := decomp.New(f.Driving, f.Scalar, f.Area, e.opts...)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = d.Fluxes()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summarize(results), nil
}

func summarize(results [][4]*field.Field) *Summary {
	s := &Summary{Runs: len(results)}
	shape := results[0][0].Shape()
	size := results[0][0].Size()

	samples := make([]float64, 0, len(results))
	for k := range s.Mean {
		runs := make([][]float64, len(results))
		for r := range results {
			runs[r] = results[r][k].Values()
		}

		mean := make([]float64, size)
		std := make([]float64, size)
		for i := 0; i < size; i++ {
			samples = samples[:0]
			for r := range runs {
				if !math.IsNaN(runs[r][i]) {
					samples = append(samples, runs[r][i])
				}
			}
			switch len(samples) {
			case 0:
				mean[i], std[i] = math.NaN(), math.NaN()
			case 1:
				mean[i] = samples[0]
			default:
				mean[i], std[i] = stat.MeanStdDev(samples, nil)
			}
		}

		// Lengths match by construction.
		s.Mean[k], _ = field.FromSlice(mean, shape...)
		s.Std[k], _ = field.FromSlice(std, shape...)
	}
	return s
}
