package decomp

import (
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/san-kum/saltflux/internal/field"
)

const (
	DefaultTimeAxis  = 0
	DefaultDepthAxis = -1
)

type Decomposer struct {
	drive  *field.Field
	scalar *field.Field
	area   *field.Field

	// Non-negative once New returns.
	timeAxis  int
	depthAxis int
	ndim      int

	logger *log.Logger

	fluxes [numKinds]cached
	total  cached
}

type cached struct {
	once sync.Once
	val  *field.Field
}

type Option func(*Decomposer)

// WithTimeAxis selects the time axis. Negative values count from the end.
func WithTimeAxis(axis int) Option {
	return func(d *Decomposer) { d.timeAxis = axis }
}

// WithDepthAxis selects the depth axis. Negative values count from the end.
func WithDepthAxis(axis int) Option {
	return func(d *Decomposer) { d.depthAxis = axis }
}

func WithLogger(l *log.Logger) Option {
	return func(d *Decomposer) { d.logger = l }
}

// New validates the three fields and returns a Decomposer over them. The
// time axis defaults to 0 and the depth axis to the last axis.
func New(drive, scalar, area *field.Field, opts ...Option) (*Decomposer, error) {
	if drive == nil || scalar == nil || area == nil {
		return nil, ErrNilField
	}

	ds, ss, as := drive.Shape(), scalar.Shape(), area.Shape()
	if !slices.Equal(ds, ss) || !slices.Equal(ds, as) {
		return nil, &ShapeMismatchError{Driving: ds, Scalar: ss, Area: as}
	}

	d := &Decomposer{
		drive:     drive,
		scalar:    scalar,
		area:      area,
		timeAxis:  DefaultTimeAxis,
		depthAxis: DefaultDepthAxis,
		ndim:      len(ds),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = log.New(io.Discard)
	}

	if d.ndim < 3 {
		return nil, fmt.Errorf("%w: got shape %v", ErrRank, ds)
	}

	var err error
	if d.timeAxis, err = field.NormalizeAxis(d.timeAxis, d.ndim); err != nil {
		return nil, fmt.Errorf("%w: time axis: %v", ErrAxisOutOfRange, err)
	}
	if d.depthAxis, err = field.NormalizeAxis(d.depthAxis, d.ndim); err != nil {
		return nil, fmt.Errorf("%w: depth axis: %v", ErrAxisOutOfRange, err)
	}
	if d.timeAxis == d.depthAxis {
		return nil, fmt.Errorf("%w: both are axis %d", ErrSameAxis, d.timeAxis)
	}

	return d, nil
}

func (d *Decomposer) TimeAxis() int  { return d.timeAxis }
func (d *Decomposer) DepthAxis() int { return d.depthAxis }
func (d *Decomposer) Shape() []int   { return d.drive.Shape() }

// SpaceShape is the shape of every flux: the field shape without its time
// and depth axes.
func (d *Decomposer) SpaceShape() []int {
	var out []int
	for i, n := range d.drive.Shape() {
		if i != d.timeAxis && i != d.depthAxis {
			out = append(out, n)
		}
	}
	return out
}

// shifted returns the position of axis once other has been removed.
func shifted(axis, other int) int {
	if axis > other {
		return axis - 1
	}
	return axis
}

// AverageTime averages over the time axis. It accepts full-rank operands and
// operands whose depth axis was already integrated out.
func (d *Decomposer) AverageTime(f *field.Field) *field.Field {
	switch f.Ndim() {
	case d.ndim:
		return f.Mean(d.timeAxis)
	case d.ndim - 1:
		return f.Mean(shifted(d.timeAxis, d.depthAxis))
	}
	panic(&field.AxisError{Axis: d.timeAxis, Ndim: f.Ndim()})
}

// IntegrateDepth sums over the depth axis. It accepts full-rank operands and
// operands whose time axis was already averaged out.
func (d *Decomposer) IntegrateDepth(f *field.Field) *field.Field {
	switch f.Ndim() {
	case d.ndim:
		return f.Sum(d.depthAxis)
	case d.ndim - 1:
		return f.Sum(shifted(d.depthAxis, d.timeAxis))
	}
	panic(&field.AxisError{Axis: d.depthAxis, Ndim: f.Ndim()})
}

func (d *Decomposer) AverageTimeIntegrateDepth(f *field.Field) *field.Field {
	return d.AverageTime(d.IntegrateDepth(f))
}

// ExpandTime reinserts a size-1 time axis. An operand lacking only time
// comes back at full rank; one lacking time and depth comes back without
// depth.
func (d *Decomposer) ExpandTime(f *field.Field) *field.Field {
	switch f.Ndim() {
	case d.ndim - 1:
		return f.ExpandDims(d.timeAxis)
	case d.ndim - 2:
		return f.ExpandDims(shifted(d.timeAxis, d.depthAxis))
	}
	panic(&field.AxisError{Axis: d.timeAxis, Ndim: f.Ndim()})
}

// ExpandDepth reinserts a size-1 depth axis, mirroring ExpandTime.
func (d *Decomposer) ExpandDepth(f *field.Field) *field.Field {
	switch f.Ndim() {
	case d.ndim - 1:
		return f.ExpandDims(d.depthAxis)
	case d.ndim - 2:
		return f.ExpandDims(shifted(d.depthAxis, d.timeAxis))
	}
	panic(&field.AxisError{Axis: d.depthAxis, Ndim: f.Ndim()})
}
