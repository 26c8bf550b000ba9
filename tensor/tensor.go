// Package tensor: core Tensor type, constructors and accessors.
// Dense storage is a flat row-major []float64; shape is held separately so
// reshapes and broadcasts never touch the data.

package tensor

import (
	"fmt"
	"strings"
)

// Tensor is an immutable batched array: flat row-major data plus a shape.
// A zero-length shape denotes a scalar holding exactly one value.
type Tensor struct {
	data  []float64 // flat backing storage, length == sizeOf(shape)
	shape []int     // axis sizes, all > 0; empty for scalars
}

// sizeOf returns the number of elements a shape addresses (1 for scalars).
func sizeOf(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// checkShape validates that every axis size is positive.
func checkShape(shape []int) error {
	for _, d := range shape {
		if d <= 0 {
			return fmt.Errorf("checkShape: %w", ErrBadShape)
		}
	}
	return nil
}

/// newDense wraps data and shape without copying. Internal constructor:
// callers must hand over ownership of both slices and a validated shape.
func newDense(data []float64, shape []int) *Tensor {
	return &Tensor{data: data, shape: shape}
}

// New creates a zero-filled tensor of the given shape.
// Complexity: O(size) time and memory.
func New(shape ...int) (*Tensor, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	s := append([]int(nil), shape...)
	return newDense(make([]float64, sizeOf(s)), s), nil
}

// FromSlice creates a tensor of the given shape from a copy of data.
// len(data) must equal the shape's size.
func FromSlice(data []float64, shape ...int) (*Tensor, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	if len(data) != sizeOf(shape) {
		return nil, fmt.Errorf("FromSlice: %w", ErrShapeMismatch)
	}
	s := append([]int(nil), shape...)
	d := append([]float64(nil), data...)
	return newDense(d, s), nil
}

// Full creates a tensor of the given shape with every element set to value.
func Full(value float64, shape ...int) (*Tensor, error) {
	t, err := New(shape...)
	if err != nil {
		return nil, err
	}
	for i := range t.data {
		t.data[i] = value
	}
	return t, nil
}

// Scalar wraps a single value as a shape-() tensor.
func Scalar(v float64) *Tensor {
	return newDense([]float64{v}, nil)
}

// Shape returns a copy of the tensor's shape.
func (t *Tensor) Shape() []int {
	return append([]int(nil), t.shape...)
}

// NDim returns the number of axes (0 for scalars).
func (t *Tensor) NDim() int { return len(t.shape) }

// Size returns the total number of elements.
func (t *Tensor) Size() int { return len(t.data) }

// Last returns the size of the trailing axis (1 for scalars).
func (t *Tensor) Last() int {
	if len(t.shape) == 0 {
		return 1
	}
	return t.shape[len(t.shape)-1]
}

// Data returns a copy of the flat row-major storage.
func (t *Tensor) Data() []float64 {
	return append([]float64(nil), t.data...)
}

// Clone returns a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	return newDense(t.Data(), t.Shape())
}

// Item returns the value of a scalar (or any single-element) tensor.
func (t *Tensor) Item() (float64, error) {
	if len(t.data) != 1 {
		return 0, fmt.Errorf("Item: %w", ErrShapeMismatch)
	}
	return t.data[0], nil
}

// At retrieves the element addressed by one index per axis.
func (t *Tensor) At(idx ...int) (float64, error) {
	off, err := t.offsetOf(idx)
	if err != nil {
		return 0, err
	}
	return t.data[off], nil
}

// offsetOf maps a multi-index to a flat offset or reports ErrBadIndex.
func (t *Tensor) offsetOf(idx []int) (int, error) {
	if len(idx) != len(t.shape) {
		return 0, fmt.Errorf("offsetOf: %w", ErrBadIndex)
	}
	off := 0
	for d, i := range idx {
		if i < 0 || i >= t.shape[d] {
			return 0, fmt.Errorf("offsetOf: axis %d: %w", d, ErrBadIndex)
		}
		off = off*t.shape[d] + i
	}
	return off, nil
}

// SameShape reports whether two tensors have identical shapes.
func SameShape(a, b *Tensor) bool {
	return shapeEqual(a.shape, b.shape)
}

func shapeEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer for debugging.
func (t *Tensor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor%v%v", t.shape, t.data)
	return sb.String()
}
