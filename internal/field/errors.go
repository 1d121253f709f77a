package field

import (
	"errors"
	"fmt"
)

var (
	// ErrShape indicates operands whose shapes cannot be broadcast together.
	ErrShape = errors.New("field: shape mismatch")

	// ErrAxis indicates an axis index outside the array rank.
	ErrAxis = errors.New("field: axis out of range")

	// ErrIndex indicates an element index outside the array bounds.
	ErrIndex = errors.New("field: index out of range")

	// ErrLength indicates backing data whose length does not match the shape.
	ErrLength = errors.New("field: data length does not match shape")
)

type ShapeError struct {
	Op string
	A  []int
	B  []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("field: %s: shapes %v and %v are not compatible", e.Op, e.A, e.B)
}

func (e *ShapeError) Unwrap() error {
	return ErrShape
}

type AxisError struct {
	Axis int
	Ndim int
}

func (e *AxisError) Error() string {
	return fmt.Sprintf("field: axis %d out of range for rank %d", e.Axis, e.Ndim)
}

func (e *AxisError) Unwrap() error {
	return ErrAxis
}

// NormalizeAxis resolves a possibly negative axis against rank ndim.
func NormalizeAxis(axis, ndim int) (int, error) {
	if axis < -ndim || axis >= ndim {
		return 0, &AxisError{Axis: axis, Ndim: ndim}
	}
	if axis < 0 {
		axis += ndim
	}
	return axis, nil
}

func mustAxis(axis, ndim int) int {
	a, err := NormalizeAxis(axis, ndim)
	if err != nil {
		panic(err)
	}
	return a
}
