// Package tensor: elementwise kernels and reductions.
// Binary kernels broadcast their operands, then dispatch the flat slices to
// vek; unary kernels vek does not ship (exp, log, floored modulo,
// hyperbolics) run as plain loops. Nothing here mutates its inputs.

package tensor

import (
	"fmt"
	"math"

	"github.com/viterin/vek"
)

// binary materializes both operands at their common shape and applies the
// flat kernel. One output allocation, O(size) time.
func binary(a, b *Tensor, kernel func(dst, x, y []float64)) (*Tensor, error) {
	x, y := a, b
	if !SameShape(a, b) {
		var err error
		x, y, err = BroadcastArrays(a, b)
		if err != nil {
			return nil, err
		}
	}
	out := make([]float64, len(x.data))
	kernel(out, x.data, y.data)
	return newDense(out, x.Shape()), nil
}

// Add returns a + b with broadcasting.
func Add(a, b *Tensor) (*Tensor, error) {
	return binary(a, b, func(dst, x, y []float64) { vek.Add_Into(dst, x, y) })
}

// Sub returns a - b with broadcasting.
func Sub(a, b *Tensor) (*Tensor, error) {
	return binary(a, b, func(dst, x, y []float64) { vek.Sub_Into(dst, x, y) })
}

// Mul returns the elementwise product a * b with broadcasting.
func Mul(a, b *Tensor) (*Tensor, error) {
	return binary(a, b, func(dst, x, y []float64) { vek.Mul_Into(dst, x, y) })
}

// Div returns the elementwise quotient a / b with broadcasting.
// Division by zero is not pre-validated: IEEE Inf/NaN propagate to the caller.
func Div(a, b *Tensor) (*Tensor, error) {
	return binary(a, b, func(dst, x, y []float64) { vek.Div_Into(dst, x, y) })
}

// unary applies a fresh-output flat kernel.
func (t *Tensor) unary(kernel func(dst, x []float64)) *Tensor {
	out := make([]float64, len(t.data))
	kernel(out, t.data)
	return newDense(out, t.Shape())
}

// Abs returns |t| elementwise.
func (t *Tensor) Abs() *Tensor {
	return t.unary(func(dst, x []float64) { vek.Abs_Into(dst, x) })
}

// Sqrt returns √t elementwise. Negative inputs yield NaN (domain error
// propagation, not pre-validated).
func (t *Tensor) Sqrt() *Tensor {
	return t.unary(func(dst, x []float64) { vek.Sqrt_Into(dst, x) })
}

// Exp returns e^t elementwise.
func (t *Tensor) Exp() *Tensor {
	return t.unary(func(dst, x []float64) {
		for i, v := range x {
			dst[i] = math.Exp(v)
		}
	})
}

// Log returns ln(t) elementwise. Non-positive inputs yield NaN/-Inf.
func (t *Tensor) Log() *Tensor {
	return t.unary(func(dst, x []float64) {
		for i, v := range x {
			dst[i] = math.Log(v)
		}
	})
}

// Floor returns ⌊t⌋ elementwise.
func (t *Tensor) Floor() *Tensor {
	return t.unary(func(dst, x []float64) { vek.Floor_Into(dst, x) })
}

// Scale returns a * t elementwise.
func (t *Tensor) Scale(a float64) *Tensor {
	return t.unary(func(dst, x []float64) { vek.MulNumber_Into(dst, x, a) })
}

// Shift returns t + a elementwise.
func (t *Tensor) Shift(a float64) *Tensor {
	return t.unary(func(dst, x []float64) { vek.AddNumber_Into(dst, x, a) })
}

// Neg returns -t elementwise.
func (t *Tensor) Neg() *Tensor { return t.Scale(-1) }

// Square returns t² elementwise.
func (t *Tensor) Square() *Tensor {
	return t.unary(func(dst, x []float64) { vek.Mul_Into(dst, x, x) })
}

// Recip returns 1/t elementwise; zeros propagate as ±Inf.
func (t *Tensor) Recip() *Tensor {
	return t.unary(func(dst, x []float64) {
		for i, v := range x {
			dst[i] = 1 / v
		}
	})
}

// Mod returns the floored modulo t mod divisor, elementwise. The result has
// the sign of the divisor, matching the array-backend convention the
// geometry formulas assume (so Mod(-0.3, 1) == 0.7, unlike math.Mod).
func (t *Tensor) Mod(divisor float64) *Tensor {
	return t.unary(func(dst, x []float64) {
		for i, v := range x {
			m := math.Mod(v, divisor)
			if m != 0 && (m < 0) != (divisor < 0) {
				m += divisor
			}
			dst[i] = m
		}
	})
}

// Tanh returns tanh(t) elementwise.
func (t *Tensor) Tanh() *Tensor {
	return t.unary(func(dst, x []float64) {
		for i, v := range x {
			dst[i] = math.Tanh(v)
		}
	})
}

// Arctanh returns the inverse hyperbolic tangent elementwise.
// |v| ≥ 1 yields ±Inf/NaN (domain error propagation).
func (t *Tensor) Arctanh() *Tensor {
	return t.unary(func(dst, x []float64) {
		for i, v := range x {
			dst[i] = math.Atanh(v)
		}
	})
}

// SumLast sums along the trailing axis, producing the batch shape.
// Each contiguous block dispatches to vek.Sum.
func (t *Tensor) SumLast() *Tensor {
	w := t.Last()
	rows := len(t.data) / w
	out := make([]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = vek.Sum(t.data[r*w : (r+1)*w])
	}
	shape := t.Shape()
	if len(shape) > 0 {
		shape = shape[:len(shape)-1]
	}
	return newDense(out, shape)
}

// Dot computes the inner product along the trailing axis with broadcasting:
// Dot(a, b)[batch] = Σ_i a[batch, i] * b[batch, i].
func Dot(a, b *Tensor) (*Tensor, error) {
	x, y := a, b
	if !SameShape(a, b) {
		var err error
		x, y, err = BroadcastArrays(a, b)
		if err != nil {
			return nil, err
		}
	}
	w := x.Last()
	rows := len(x.data) / w
	out := make([]float64, rows)
	for r := 0; r < rows; r++ {
		out[r] = vek.Dot(x.data[r*w:(r+1)*w], y.data[r*w:(r+1)*w])
	}
	shape := x.Shape()
	if len(shape) > 0 {
		shape = shape[:len(shape)-1]
	}
	return newDense(out, shape), nil
}

// GatherLast selects trailing-axis entries by a fixed index list:
// out[..., k] = t[..., idx[k]]. The index list is typically precomputed once
// per structural parameter (matrix size) and reused across the batch.
func (t *Tensor) GatherLast(idx []int) (*Tensor, error) {
	if len(t.shape) == 0 {
		return nil, fmt.Errorf("GatherLast: %w", ErrBadAxis)
	}
	if len(idx) == 0 {
		return nil, fmt.Errorf("GatherLast: %w", ErrEmptyInput)
	}
	w := t.Last()
	for _, i := range idx {
		if i < 0 || i >= w {
			return nil, fmt.Errorf("GatherLast: %w", ErrBadIndex)
		}
	}
	rows := len(t.data) / w
	k := len(idx)
	out := make([]float64, rows*k)
	for r := 0; r < rows; r++ {
		src := t.data[r*w : (r+1)*w]
		dst := out[r*k : (r+1)*k]
		for j, i := range idx {
			dst[j] = src[i]
		}
	}
	shape := t.Shape()
	shape[len(shape)-1] = k
	return newDense(out, shape), nil
}

// ScatterLast is the sparse-assignment inverse of GatherLast: it builds a
// zero tensor whose trailing axis has size lastSize and assigns
// out[..., idx[k]] = t[..., k]. Unlisted positions stay zero.
func (t *Tensor) ScatterLast(idx []int, lastSize int) (*Tensor, error) {
	if len(t.shape) == 0 {
		return nil, fmt.Errorf("ScatterLast: %w", ErrBadAxis)
	}
	if lastSize <= 0 {
		return nil, fmt.Errorf("ScatterLast: %w", ErrBadShape)
	}
	w := t.Last()
	if len(idx) != w {
		return nil, fmt.Errorf("ScatterLast: %w", ErrBadSparse)
	}
	for _, i := range idx {
		if i < 0 || i >= lastSize {
			return nil, fmt.Errorf("ScatterLast: %w", ErrBadIndex)
		}
	}
	rows := len(t.data) / w
	out := make([]float64, rows*lastSize)
	for r := 0; r < rows; r++ {
		src := t.data[r*w : (r+1)*w]
		dst := out[r*lastSize : (r+1)*lastSize]
		for k, i := range idx {
			dst[i] = src[k]
		}
	}
	shape := t.Shape()
	shape[len(shape)-1] = lastSize
	return newDense(out, shape), nil
}

// Component extracts index i of the trailing axis, dropping that axis:
// out[batch] = t[batch, i].
func (t *Tensor) Component(i int) (*Tensor, error) {
	g, err := t.GatherLast([]int{i})
	if err != nil {
		return nil, err
	}
	shape := g.Shape()
	return newDense(g.data, shape[:len(shape)-1]), nil
}

// ArgMin0 computes, for each column of a (candidates, batch) tensor, the row
// index of the minimal value. Ties resolve to the first minimal index.
func (t *Tensor) ArgMin0() ([]int, error) {
	if len(t.shape) != 2 {
		return nil, fmt.Errorf("ArgMin0: %w", ErrBadAxis)
	}
	k, m := t.shape[0], t.shape[1]
	out := make([]int, m)
	for j := 0; j < m; j++ {
		best := t.data[j]
		for i := 1; i < k; i++ {
			if v := t.data[i*m+j]; v < best {
				best = v
				out[j] = i
			}
		}
	}
	return out, nil
}

// TakeAlong0 selects one candidate per batch element from a
// (candidates, batch, point...) tensor: out[j, ...] = t[idx[j], j, ...].
func (t *Tensor) TakeAlong0(idx []int) (*Tensor, error) {
	if len(t.shape) < 2 {
		return nil, fmt.Errorf("TakeAlong0: %w", ErrBadAxis)
	}
	k, m := t.shape[0], t.shape[1]
	if len(idx) != m {
		return nil, fmt.Errorf("TakeAlong0: %w", ErrShapeMismatch)
	}
	block := len(t.data) / (k * m)
	out := make([]float64, m*block)
	for j, i := range idx {
		if i < 0 || i >= k {
			return nil, fmt.Errorf("TakeAlong0: %w", ErrBadIndex)
		}
		src := t.data[(i*m+j)*block : (i*m+j+1)*block]
		copy(out[j*block:(j+1)*block], src)
	}
	return newDense(out, t.Shape()[1:]), nil
}
