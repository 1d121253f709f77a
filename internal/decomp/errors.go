package decomp

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrShapeMismatch indicates driving, scalar and area fields of different shapes.
	ErrShapeMismatch = errors.New("decomp: driving, scalar and area fields must all have the same shape")

	// ErrRank indicates fields without at least one space axis next to time and depth.
	ErrRank = errors.New("decomp: fields need time, space and depth axes (rank >= 3)")

	// ErrAxisOutOfRange indicates a time or depth axis outside the field rank.
	ErrAxisOutOfRange = errors.New("decomp: axis out of range")

	// ErrSameAxis indicates the time and depth axes refer to the same axis.
	ErrSameAxis = errors.New("decomp: time and depth axes coincide")

	// ErrNilField indicates a missing input field.
	ErrNilField = errors.New("decomp: nil field")
)

// ShapeMismatchError reports the shapes of all three fields.
type ShapeMismatchError struct {
	Driving []int
	Scalar  []int
	Area    []int
}

func (e *ShapeMismatchError) Error() string {
	var diff []string
	if !slices.Equal(e.Driving, e.Scalar) {
		diff = append(diff, fmt.Sprintf("driving %v != scalar %v", e.Driving, e.Scalar))
	}
	if !slices.Equal(e.Driving, e.Area) {
		diff = append(diff, fmt.Sprintf("driving %v != area %v", e.Driving, e.Area))
	}
	if !slices.Equal(e.Scalar, e.Area) {
		diff = append(diff, fmt.Sprintf("scalar %v != area %v", e.Scalar, e.Area))
	}
	return ErrShapeMismatch.Error() + "; " + strings.Join(diff, ", ")
}

func (e *ShapeMismatchError) Unwrap() error {
	return ErrShapeMismatch
}
