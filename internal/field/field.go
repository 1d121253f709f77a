package field

import (
	"fmt"
	"math"
	"slices"
)

type Field struct {
	shape   []int
	strides []int
	data    []float64
	mask    []bool
}

// New returns a zero-valued field with the given shape.
func New(shape ...int) *Field {
	n := 1
	for _, d := range shape {
		if d < 0 {
			panic(fmt.Sprintf("field: negative dimension %d in shape %v", d, shape))
		}
		n *= d
	}
	return &Field{
		shape:   slices.Clone(shape),
		strides: stridesOf(shape),
		data:    make([]float64, n),
		mask:    make([]bool, n),
	}
}

// Full returns a field with every element set to v.
func Full(v float64, shape ...int) *Field {
	f := New(shape...)
	for i := range f.data {
		f.data[i] = v
	}
	if !isFinite(v) {
		for i := range f.mask {
			f.mask[i] = true
		}
	}
	return f
}

// FromFunc builds a field by evaluating fn at every index. A NaN result
// masks that element.
func FromFunc(fn func(idx []int) float64, shape ...int) *Field {
	f := New(shape...)
	f.each(func(flat int, idx []int) {
		v := fn(idx)
		f.data[flat] = v
		f.mask[flat] = !isFinite(v)
	})
	return f
}

// FromSlice wraps data, laid out row-major, as a field. The slice is not
// copied. NaN and Inf entries are marked masked.
func FromSlice(data []float64, shape ...int) (*Field, error) {
	n := 1
	for _, d := range shape {
		if d < 0 {
			return nil, fmt.Errorf("%w: negative dimension in %v", ErrLength, shape)
		}
		n *= d
	}
	if len(data) != n {
		return nil, fmt.Errorf("%w: got %d values for shape %v", ErrLength, len(data), shape)
	}
	f := &Field{
		shape:   slices.Clone(shape),
		strides: stridesOf(shape),
		data:    data,
		mask:    make([]bool, n),
	}
	for i, v := range data {
		if !isFinite(v) {
			f.mask[i] = true
		}
	}
	return f, nil
}

func stridesOf(shape []int) []int {
	strides := make([]int, len(shape))
	s := 1
	for i := len(shape) - 1; i >= 0; i-- {
		strides[i] = s
		s *= shape[i]
	}
	return strides
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (f *Field) Shape() []int { return slices.Clone(f.shape) }
func (f *Field) Ndim() int    { return len(f.shape) }
func (f *Field) Size() int    { return len(f.data) }

func (f *Field) offset(idx []int) int {
	if len(idx) != len(f.shape) {
		panic(fmt.Errorf("%w: %d indices for rank %d", ErrIndex, len(idx), len(f.shape)))
	}
	off := 0
	for i, ix := range idx {
		if ix < 0 || ix >= f.shape[i] {
			panic(fmt.Errorf("%w: index %v for shape %v", ErrIndex, idx, f.shape))
		}
		off += ix * f.strides[i]
	}
	return off
}

// At returns the element at idx, or NaN if it is masked.
func (f *Field) At(idx ...int) float64 {
	off := f.offset(idx)
	if f.mask[off] {
		return math.NaN()
	}
	return f.data[off]
}

// Set stores v at idx and clears its mask unless v is not finite.
func (f *Field) Set(v float64, idx ...int) {
	off := f.offset(idx)
	f.data[off] = v
	f.mask[off] = !isFinite(v)
}

func (f *Field) IsMasked(idx ...int) bool {
	return f.mask[f.offset(idx)]
}

func (f *Field) SetMasked(idx ...int) {
	f.mask[f.offset(idx)] = true
}

// MaskWhere masks every element whose index satisfies pred. The index slice
// passed to pred is reused between calls.
func (f *Field) MaskWhere(pred func(idx []int) bool) {
	f.each(func(flat int, idx []int) {
		if pred(idx) {
			f.mask[flat] = true
		}
	})
}

// Fill sets every element whose index satisfies pred to v.
func (f *Field) Fill(v float64, pred func(idx []int) bool) {
	f.each(func(flat int, idx []int) {
		if pred(idx) {
			f.data[flat] = v
			f.mask[flat] = !isFinite(v)
		}
	})
}

// each visits every element in row-major order.
func (f *Field) each(fn func(flat int, idx []int)) {
	if len(f.data) == 0 {
		return
	}
	idx := make([]int, len(f.shape))
	for flat := range f.data {
		fn(flat, idx)
		for ax := len(idx) - 1; ax >= 0; ax-- {
			idx[ax]++
			if idx[ax] < f.shape[ax] {
				break
			}
			idx[ax] = 0
		}
	}
}

func (f *Field) Clone() *Field {
	return &Field{
		shape:   slices.Clone(f.shape),
		strides: slices.Clone(f.strides),
		data:    slices.Clone(f.data),
		mask:    slices.Clone(f.mask),
	}
}

// Values returns a row-major copy of the data with NaN at masked entries.
func (f *Field) Values() []float64 {
	out := make([]float64, len(f.data))
	for i, v := range f.data {
		if f.mask[i] {
			out[i] = math.NaN()
		} else {
			out[i] = v
		}
	}
	return out
}

// Valid returns the unmasked values in row-major order.
func (f *Field) Valid() []float64 {
	out := make([]float64, 0, len(f.data))
	for i, v := range f.data {
		if !f.mask[i] {
			out = append(out, v)
		}
	}
	return out
}

func (f *Field) MaskedCount() int {
	n := 0
	for _, m := range f.mask {
		if m {
			n++
		}
	}
	return n
}

// Reshape returns a copy of f with a new shape of the same size.
func (f *Field) Reshape(shape ...int) (*Field, error) {
	n := 1
	for _, d := range shape {
		n *= d
	}
	if n != len(f.data) {
		return nil, &ShapeError{Op: "reshape", A: f.Shape(), B: slices.Clone(shape)}
	}
	out := f.Clone()
	out.shape = slices.Clone(shape)
	out.strides = stridesOf(shape)
	return out, nil
}

// Transpose returns a copy of f with its axes permuted: axis i of the result
// is axis perm[i] of f.
func (f *Field) Transpose(perm ...int) *Field {
	nd := len(f.shape)
	if len(perm) != nd {
		panic(&ShapeError{Op: "transpose", A: f.Shape(), B: slices.Clone(perm)})
	}
	axes := make([]int, nd)
	seen := make([]bool, nd)
	shape := make([]int, nd)
	for i, p := range perm {
		p = mustAxis(p, nd)
		if seen[p] {
			panic(&ShapeError{Op: "transpose", A: f.Shape(), B: slices.Clone(perm)})
		}
		seen[p] = true
		axes[i] = p
		shape[i] = f.shape[p]
	}
	out := New(shape...)
	out.each(func(flat int, idx []int) {
		src := 0
		for i, p := range axes {
			src += idx[i] * f.strides[p]
		}
		out.data[flat] = f.data[src]
		out.mask[flat] = f.mask[src]
	})
	return out
}
