package scenario

import (
	"errors"
	"fmt"

	"github.com/san-kum/saltflux/internal/field"
)

var (
	ErrInvalidGrid        = errors.New("scenario: grid dimensions must be positive")
	ErrUnknownScenario    = errors.New("scenario: unknown scenario")
	ErrUnknownParam       = errors.New("scenario: unknown param")
	ErrInvalidArrangement = errors.New("scenario: invalid axis arrangement")
)

type Grid struct {
	Times  int
	Space  int
	Space2 int
	Depth  int
}

func (g Grid) Validate() error {
	if g.Times <= 0 || g.Space <= 0 || g.Depth <= 0 || g.Space2 < 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidGrid, g)
	}
	return nil
}

// Shape is (Times, Space, Depth), or (Times, Space, Space2, Depth).
func (g Grid) Shape() []int {
	if g.Space2 > 0 {
		return []int{g.Times, g.Space, g.Space2, g.Depth}
	}
	return []int{g.Times, g.Space, g.Depth}
}

// Fields is the input triple of a decomposition.
type Fields struct {
	Driving *field.Field
	Scalar  *field.Field
	Area    *field.Field
}

type Scenario interface {
	Name() string
	Description() string
	Build(g Grid) (*Fields, error)
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// point splits a (time, space..., depth) index.
type point struct {
	t, x, y, z int
}

func at(idx []int) point {
	p := point{t: idx[0], x: idx[1], z: idx[len(idx)-1]}
	if len(idx) == 4 {
		p.y = idx[2]
	}
	return p
}

func build(g Grid, fn func(p point) (u, s, a float64)) (*Fields, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	shape := g.Shape()
	return &Fields{
		Driving: field.FromFunc(func(idx []int) float64 { u, _, _ := fn(at(idx)); return u }, shape...),
		Scalar:  field.FromFunc(func(idx []int) float64 { _, s, _ := fn(at(idx)); return s }, shape...),
		Area:    field.FromFunc(func(idx []int) float64 { _, _, a := fn(at(idx)); return a }, shape...),
	}, nil
}

// Arrange permutes fields built as (time, space..., depth) so that time and
// depth sit on the given axes. Space axes keep their relative order.
func (f *Fields) Arrange(timeAxis, depthAxis int) (*Fields, error) {
	nd := f.Driving.Ndim()
	t, err := field.NormalizeAxis(timeAxis, nd)
	if err != nil {
		return nil, fmt.Errorf("%w: time axis: %v", ErrInvalidArrangement, err)
	}
	d, err := field.NormalizeAxis(depthAxis, nd)
	if err != nil {
		return nil, fmt.Errorf("%w: depth axis: %v", ErrInvalidArrangement, err)
	}
	if t == d {
		return nil, fmt.Errorf("%w: time and depth both on axis %d", ErrInvalidArrangement, t)
	}

	perm := make([]int, nd)
	next := 1
	for i := range perm {
		switch i {
		case t:
			perm[i] = 0
		case d:
			perm[i] = nd - 1
		default:
			perm[i] = next
			next++
		}
	}

	return &Fields{
		Driving: f.Driving.Transpose(perm...),
		Scalar:  f.Scalar.Transpose(perm...),
		Area:    f.Area.Transpose(perm...),
	}, nil
}
