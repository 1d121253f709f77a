package field

import (
	"math"
	"slices"
)

var nan = math.NaN()

// Sum reduces axis by summation over valid entries.
func (f *Field) Sum(axis int) *Field {
	return f.reduce(axis, false)
}

// Mean reduces axis by the arithmetic mean of valid entries.
func (f *Field) Mean(axis int) *Field {
	return f.reduce(axis, true)
}

func (f *Field) reduce(axis int, mean bool) *Field {
	axis = mustAxis(axis, len(f.shape))

	shape := slices.Delete(slices.Clone(f.shape), axis, axis+1)
	out := New(shape...)

	n := f.shape[axis]
	inner := f.strides[axis]
	outer := 1
	for _, d := range f.shape[:axis] {
		outer *= d
	}

	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			sum := 0.0
			count := 0
			base := o*n*inner + i
			for k := 0; k < n; k++ {
				src := base + k*inner
				if f.mask[src] {
					continue
				}
				sum += f.data[src]
				count++
			}

			dst := o*inner + i
			if count == 0 {
				out.mask[dst] = true
				continue
			}
			if mean {
				sum /= float64(count)
			}
			out.data[dst] = sum
			out.mask[dst] = !isFinite(sum)
		}
	}
	return out
}

// ExpandDims inserts a size-1 axis at position axis of the result. Negative
// values count from the end of the result, so -1 appends a trailing axis.
func (f *Field) ExpandDims(axis int) *Field {
	axis = mustAxis(axis, len(f.shape)+1)
	out := f.Clone()
	out.shape = slices.Insert(out.shape, axis, 1)
	out.strides = stridesOf(out.shape)
	return out
}
