// Package tensor: boolean masks — comparison results with the batch shape,
// combinators, reductions and the elementwise select (Where). Membership and
// tangency checks stay total functions by flowing through masks instead of
// errors.

package tensor

import (
	"fmt"
	"math"

	"github.com/viterin/vek"
)

// Mask is the boolean twin of Tensor: flat row-major values plus a shape.
type Mask struct {
	data  []bool
	shape []int
}

func newMask(data []bool, shape []int) *Mask {
	return &Mask{data: data, shape: shape}
}

// FullMask creates a mask of the given shape with every element set to value.
func FullMask(value bool, shape ...int) (*Mask, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	s := append([]int(nil), shape...)
	d := make([]bool, sizeOf(s))
	if value {
		for i := range d {
			d[i] = true
		}
	}
	return newMask(d, s), nil
}

// Shape returns a copy of the mask's shape.
func (m *Mask) Shape() []int { return append([]int(nil), m.shape...) }

// Data returns a copy of the flat boolean storage.
func (m *Mask) Data() []bool { return append([]bool(nil), m.data...) }

// At retrieves the element addressed by one index per axis.
func (m *Mask) At(idx ...int) (bool, error) {
	t := Tensor{shape: m.shape}
	off, err := t.offsetOf(idx)
	if err != nil {
		return false, err
	}
	return m.data[off], nil
}

// Item returns the value of a single-element mask.
func (m *Mask) Item() (bool, error) {
	if len(m.data) != 1 {
		return false, fmt.Errorf("Item: %w", ErrShapeMismatch)
	}
	return m.data[0], nil
}

// All reports whether every element is true.
func (m *Mask) All() bool { return vek.All(m.data) }

// Any reports whether at least one element is true.
func (m *Mask) Any() bool { return vek.Any(m.data) }

// AllLast reduces with logical AND along the trailing axis.
func (m *Mask) AllLast() *Mask {
	w := 1
	if len(m.shape) > 0 {
		w = m.shape[len(m.shape)-1]
	}
	rows := len(m.data) / w
	out := make([]bool, rows)
	for r := 0; r < rows; r++ {
		out[r] = vek.All(m.data[r*w : (r+1)*w])
	}
	shape := m.Shape()
	if len(shape) > 0 {
		shape = shape[:len(shape)-1]
	}
	return newMask(out, shape)
}

// combine zips two equally shaped masks.
func combine(a, b *Mask, op func(x, y bool) bool) (*Mask, error) {
	if !shapeEqual(a.shape, b.shape) {
		return nil, fmt.Errorf("Mask combine: %w", ErrShapeMismatch)
	}
	out := make([]bool, len(a.data))
	for i := range out {
		out[i] = op(a.data[i], b.data[i])
	}
	return newMask(out, a.Shape()), nil
}

// And returns the elementwise conjunction of two equally shaped masks.
func (m *Mask) And(other *Mask) (*Mask, error) {
	return combine(m, other, func(x, y bool) bool { return x && y })
}

// Or returns the elementwise disjunction of two equally shaped masks.
func (m *Mask) Or(other *Mask) (*Mask, error) {
	return combine(m, other, func(x, y bool) bool { return x || y })
}

// Not returns the elementwise negation.
func (m *Mask) Not() *Mask {
	out := make([]bool, len(m.data))
	for i, v := range m.data {
		out[i] = !v
	}
	return newMask(out, m.Shape())
}

// broadcastFlat materializes flat data of shape from at shape to under the
// broadcasting rule. Shared by Mask.BroadcastTo and Where.
func broadcastFlat[T any](data []T, from, to []int) ([]T, error) {
	common, err := BroadcastShapes(from, to)
	if err != nil || !shapeEqual(common, to) {
		return nil, fmt.Errorf("broadcastFlat: %w", ErrNotBroadcastable)
	}
	if shapeEqual(from, to) {
		return append([]T(nil), data...), nil
	}
	n := len(to)
	strides := make([]int, n)
	acc := 1
	for i := 1; i <= len(from); i++ {
		if from[len(from)-i] != 1 {
			strides[n-i] = acc
		}
		acc *= from[len(from)-i]
	}
	out := make([]T, sizeOf(to))
	idx := make([]int, n)
	for flat := range out {
		off := 0
		for d := 0; d < n; d++ {
			off += idx[d] * strides[d]
		}
		out[flat] = data[off]
		for d := n - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < to[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out, nil
}

// BroadcastTo materializes the mask at the given shape.
func (m *Mask) BroadcastTo(shape ...int) (*Mask, error) {
	out, err := broadcastFlat(m.data, m.shape, shape)
	if err != nil {
		return nil, err
	}
	return newMask(out, append([]int(nil), shape...)), nil
}

// compareScalar builds a mask from an elementwise predicate against a scalar.
func (t *Tensor) compareScalar(pred func(v float64) bool) *Mask {
	out := make([]bool, len(t.data))
	for i, v := range t.data {
		out[i] = pred(v)
	}
	return newMask(out, t.Shape())
}

// GeScalar returns the mask t >= a.
func (t *Tensor) GeScalar(a float64) *Mask {
	return t.compareScalar(func(v float64) bool { return v >= a })
}

// LeScalar returns the mask t <= a.
func (t *Tensor) LeScalar(a float64) *Mask {
	return t.compareScalar(func(v float64) bool { return v <= a })
}

// GtScalar returns the mask t > a.
func (t *Tensor) GtScalar(a float64) *Mask {
	return t.compareScalar(func(v float64) bool { return v > a })
}

// LtScalar returns the mask t < a.
func (t *Tensor) LtScalar(a float64) *Mask {
	return t.compareScalar(func(v float64) bool { return v < a })
}

// IsCloseScalar returns the mask |t - target| <= atol.
func (t *Tensor) IsCloseScalar(target, atol float64) *Mask {
	return t.compareScalar(func(v float64) bool { return math.Abs(v-target) <= atol })
}

// IsClose returns the mask |a - b| <= atol with broadcasting.
func IsClose(a, b *Tensor, atol float64) (*Mask, error) {
	x, y := a, b
	if !SameShape(a, b) {
		var err error
		x, y, err = BroadcastArrays(a, b)
		if err != nil {
			return nil, err
		}
	}
	out := make([]bool, len(x.data))
	for i := range out {
		out[i] = math.Abs(x.data[i]-y.data[i]) <= atol
	}
	return newMask(out, x.Shape()), nil
}

// Where selects elementwise between a (where cond is true) and b (where it is
// false). All three operands broadcast to a common shape; cond axes of size 1
// stretch across the point axes, which is how per-batch-element branching is
// expressed as a data-parallel select.
func Where(cond *Mask, a, b *Tensor) (*Tensor, error) {
	x, y, err := BroadcastArrays(a, b)
	if err != nil {
		return nil, err
	}
	common, err := BroadcastShapes(cond.shape, x.shape)
	if err != nil {
		return nil, err
	}
	x, err = x.BroadcastTo(common...)
	if err != nil {
		return nil, err
	}
	y, err = y.BroadcastTo(common...)
	if err != nil {
		return nil, err
	}
	c, err := broadcastFlat(cond.data, cond.shape, common)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(x.data))
	for i := range out {
		if c[i] {
			out[i] = x.data[i]
		} else {
			out[i] = y.data[i]
		}
	}
	return newDense(out, append([]int(nil), common...)), nil
}
