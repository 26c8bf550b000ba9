// Package tensor: shape surgery — reshape, expand, stack, concatenate, flip
// and NumPy-style broadcasting. Data stays row-major throughout, so most of
// these are pure copies driven by precomputed offsets.

package tensor

import "fmt"

// Reshape returns a tensor with the same data and a new shape of equal size.
// Exactly one axis may be -1, in which case its size is inferred.
func (t *Tensor) Reshape(shape ...int) (*Tensor, error) {
	s := append([]int(nil), shape...)
	wild := -1
	known := 1
	for d, v := range s {
		switch {
		case v > 0:
			known *= v
		case v == -1 && wild == -1:
			wild = d
		default:
			return nil, fmt.Errorf("Reshape: %w", ErrBadShape)
		}
	}
	if wild >= 0 {
		if known == 0 || len(t.data)%known != 0 {
			return nil, fmt.Errorf("Reshape: %w", ErrShapeMismatch)
		}
		s[wild] = len(t.data) / known
		known *= s[wild]
	}
	if known != len(t.data) {
		return nil, fmt.Errorf("Reshape: %w", ErrShapeMismatch)
	}
	return newDense(t.Data(), s), nil
}

// ExpandDims inserts a size-1 axis at position axis (0 ≤ axis ≤ NDim).
func (t *Tensor) ExpandDims(axis int) (*Tensor, error) {
	if axis < 0 || axis > len(t.shape) {
		return nil, fmt.Errorf("ExpandDims: %w", ErrBadAxis)
	}
	s := make([]int, 0, len(t.shape)+1)
	s = append(s, t.shape[:axis]...)
	s = append(s, 1)
	s = append(s, t.shape[axis:]...)
	return newDense(t.Data(), s), nil
}

// Stack0 stacks equally shaped tensors along a new leading axis:
// inputs of shape s become one tensor of shape (len(ts), s...).
func Stack0(ts []*Tensor) (*Tensor, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("Stack0: %w", ErrEmptyInput)
	}
	base := ts[0].shape
	block := len(ts[0].data)
	out := make([]float64, block*len(ts))
	for k, t := range ts {
		if !shapeEqual(t.shape, base) {
			return nil, fmt.Errorf("Stack0: operand %d: %w", k, ErrShapeMismatch)
		}
		copy(out[k*block:(k+1)*block], t.data)
	}
	s := append([]int{len(ts)}, base...)
	return newDense(out, s), nil
}

// StackLast stacks equally shaped tensors along a new trailing axis:
// inputs of shape s become one tensor of shape (s..., len(ts)).
func StackLast(ts []*Tensor) (*Tensor, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("StackLast: %w", ErrEmptyInput)
	}
	base := ts[0].shape
	block := len(ts[0].data)
	k := len(ts)
	out := make([]float64, block*k)
	for j, t := range ts {
		if !shapeEqual(t.shape, base) {
			return nil, fmt.Errorf("StackLast: operand %d: %w", j, ErrShapeMismatch)
		}
		for b := 0; b < block; b++ {
			out[b*k+j] = t.data[b]
		}
	}
	s := append(append([]int(nil), base...), k)
	return newDense(out, s), nil
}

// ConcatLast concatenates tensors along the trailing axis. All operands must
// agree on every axis except the last.
func ConcatLast(ts []*Tensor) (*Tensor, error) {
	if len(ts) == 0 {
		return nil, fmt.Errorf("ConcatLast: %w", ErrEmptyInput)
	}
	lead := ts[0].shape
	if len(lead) == 0 {
		return nil, fmt.Errorf("ConcatLast: %w", ErrBadAxis)
	}
	lead = lead[:len(lead)-1]
	rows := sizeOf(lead)
	total := 0
	for k, t := range ts {
		if len(t.shape) == 0 || !shapeEqual(t.shape[:len(t.shape)-1], lead) {
			return nil, fmt.Errorf("ConcatLast: operand %d: %w", k, ErrShapeMismatch)
		}
		total += t.Last()
	}
	out := make([]float64, rows*total)
	off := 0
	for _, t := range ts {
		w := t.Last()
		for r := 0; r < rows; r++ {
			copy(out[r*total+off:r*total+off+w], t.data[r*w:(r+1)*w])
		}
		off += w
	}
	s := append(append([]int(nil), lead...), total)
	return newDense(out, s), nil
}

// FlipLast reverses the order of elements along the trailing axis.
func (t *Tensor) FlipLast() *Tensor {
	w := t.Last()
	out := make([]float64, len(t.data))
	for b := 0; b < len(t.data); b += w {
		for j := 0; j < w; j++ {
			out[b+j] = t.data[b+w-1-j]
		}
	}
	return newDense(out, t.Shape())
}

// BroadcastShapes computes the common shape of a and b under the
// right-aligned rule: aligned axes must match or be 1.
func BroadcastShapes(a, b []int) ([]int, error) {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make([]int, n)
	for i := 1; i <= n; i++ {
		da, db := 1, 1
		if i <= len(a) {
			da = a[len(a)-i]
		}
		if i <= len(b) {
			db = b[len(b)-i]
		}
		switch {
		case da == db:
			out[n-i] = da
		case da == 1:
			out[n-i] = db
		case db == 1:
			out[n-i] = da
		default:
			return nil, fmt.Errorf("BroadcastShapes: %w", ErrNotBroadcastable)
		}
	}
	return out, nil
}

// BroadcastTo materializes the tensor at the given shape. The target must be
// reachable from the tensor's shape under the broadcasting rule.
func (t *Tensor) BroadcastTo(shape ...int) (*Tensor, error) {
	common, err := BroadcastShapes(t.shape, shape)
	if err != nil || !shapeEqual(common, shape) {
		return nil, fmt.Errorf("BroadcastTo: %w", ErrNotBroadcastable)
	}
	if shapeEqual(t.shape, shape) {
		return t.Clone(), nil
	}

	// Source strides aligned to the target: stride 0 on stretched axes.
	n := len(shape)
	strides := make([]int, n)
	acc := 1
	for i := 1; i <= len(t.shape); i++ {
		d := t.shape[len(t.shape)-i]
		if d != 1 {
			strides[n-i] = acc
		}
		acc *= d
	}

	out := make([]float64, sizeOf(shape))
	idx := make([]int, n)
	for flat := range out {
		off := 0
		for d := 0; d < n; d++ {
			off += idx[d] * strides[d]
		}
		out[flat] = t.data[off]
		for d := n - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
	}
	s := append([]int(nil), shape...)
	return newDense(out, s), nil
}

// BroadcastArrays materializes a and b at their common broadcast shape.
func BroadcastArrays(a, b *Tensor) (*Tensor, *Tensor, error) {
	common, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, nil, err
	}
	ab, err := a.BroadcastTo(common...)
	if err != nil {
		return nil, nil, err
	}
	bb, err := b.BroadcastTo(common...)
	if err != nil {
		return nil, nil, err
	}
	return ab, bb, nil
}
