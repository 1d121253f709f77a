package field

import "slices"

// broadcastShape returns the shape two equal-rank operands broadcast to.
func broadcastShape(op string, a, b []int) []int {
	if len(a) != len(b) {
		panic(&ShapeError{Op: op, A: slices.Clone(a), B: slices.Clone(b)})
	}
	out := make([]int, len(a))
	for i := range a {
		switch {
		case a[i] == b[i]:
			out[i] = a[i]
		case a[i] == 1:
			out[i] = b[i]
		case b[i] == 1:
			out[i] = a[i]
		default:
			panic(&ShapeError{Op: op, A: slices.Clone(a), B: slices.Clone(b)})
		}
	}
	return out
}

// broadcastStrides zeroes the stride of every axis stretched from size 1.
func broadcastStrides(f *Field, shape []int) []int {
	s := slices.Clone(f.strides)
	for i := range s {
		if f.shape[i] == 1 && shape[i] != 1 {
			s[i] = 0
		}
	}
	return s
}

func binary(op string, a, b *Field, fn func(x, y float64) float64) *Field {
	shape := broadcastShape(op, a.shape, b.shape)
	out := New(shape...)
	if out.Size() == 0 {
		return out
	}

	sa := broadcastStrides(a, shape)
	sb := broadcastStrides(b, shape)
	idx := make([]int, len(shape))
	oa, ob := 0, 0

	for flat := range out.data {
		if a.mask[oa] || b.mask[ob] {
			out.mask[flat] = true
		} else {
			v := fn(a.data[oa], b.data[ob])
			out.data[flat] = v
			out.mask[flat] = !isFinite(v)
		}

		for ax := len(idx) - 1; ax >= 0; ax-- {
			idx[ax]++
			oa += sa[ax]
			ob += sb[ax]
			if idx[ax] < shape[ax] {
				break
			}
			oa -= sa[ax] * shape[ax]
			ob -= sb[ax] * shape[ax]
			idx[ax] = 0
		}
	}
	return out
}

func (f *Field) Add(g *Field) *Field {
	return binary("add", f, g, func(x, y float64) float64 { return x + y })
}

func (f *Field) Sub(g *Field) *Field {
	return binary("sub", f, g, func(x, y float64) float64 { return x - y })
}

func (f *Field) Mul(g *Field) *Field {
	return binary("mul", f, g, func(x, y float64) float64 { return x * y })
}

// Div divides element-wise. A zero divisor yields a masked element.
func (f *Field) Div(g *Field) *Field {
	return binary("div", f, g, func(x, y float64) float64 {
		if y == 0 {
			return nan
		}
		return x / y
	})
}

// Scale multiplies every valid element by c.
func (f *Field) Scale(c float64) *Field {
	out := f.Clone()
	for i := range out.data {
		if out.mask[i] {
			continue
		}
		out.data[i] *= c
		out.mask[i] = !isFinite(out.data[i])
	}
	return out
}

// Identity returns f unchanged. It is the no-op reducer.
func Identity(f *Field) *Field { return f }
