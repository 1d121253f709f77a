// Package field provides a masked n-dimensional float64 array.
//
// A [Field] stores its values in row-major order next to a validity mask of
// the same length. Masked entries keep the array shape intact but are left
// out of every reduction:
//
//   - [Field.Sum]: sum along one axis, ignoring masked entries
//   - [Field.Mean]: arithmetic mean along one axis, ignoring masked entries
//   - [Field.ExpandDims]: reinsert a size-1 axis for broadcasting
//   - [Field.Add], [Field.Sub], [Field.Mul], [Field.Div]: element-wise
//     arithmetic with broadcasting over size-1 axes
//
// # Masking Rules
//
// An element-wise result is masked when either operand is masked, when a
// divisor is zero, or when the result is not finite. A reduction over a
// slice without any valid entry yields a masked element. Non-finite values
// passed to [FromSlice] or [Field.Set] are stored as masked.
//
//	u := field.Full(1, 10, 10, 10)
//	u.MaskWhere(func(idx []int) bool { return idx[1] >= 5 && idx[2] >= 5 })
//	depthSum := u.Sum(-1) // shape (10, 10)
//
// Shape misuse (incompatible operands, axis out of range) panics with a
// [*ShapeError] or [*AxisError], the same convention gonum/mat uses for
// dimension mismatches.
package field
