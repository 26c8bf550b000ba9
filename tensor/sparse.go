// Package tensor: dense construction from sparse (index-tuple, value) pairs.
// Basis matrices and inverse diffeomorphisms are the consumers: their index
// lists depend only on a structural parameter (matrix size), so they are
// generated once and reused across calls.

package tensor

import "fmt"

// FromSparse builds a dense tensor of the given shape from parallel lists of
// index tuples and values. Unlisted positions are zero; duplicate indices
// overwrite in list order.
// Complexity: O(size + len(indices)·ndim).
func FromSparse(indices [][]int, values []float64, shape []int) (*Tensor, error) {
	if err := checkShape(shape); err != nil {
		return nil, err
	}
	if len(indices) != len(values) {
		return nil, fmt.Errorf("FromSparse: %w", ErrBadSparse)
	}
	out := make([]float64, sizeOf(shape))
	t := Tensor{shape: shape}
	for k, idx := range indices {
		off, err := t.offsetOf(idx)
		if err != nil {
			return nil, fmt.Errorf("FromSparse: entry %d: %w", k, ErrBadSparse)
		}
		out[off] = values[k]
	}
	s := append([]int(nil), shape...)
	return newDense(out, s), nil
}

// TrilIndices returns the (row, col) index pairs of the lower triangle of an
// n×n matrix, offset k diagonals from the main one (k=0 includes the
// diagonal, k=-1 is strictly lower), in row-major order.
func TrilIndices(n, k int) [][2]int {
	var out [][2]int
	for i := 0; i < n; i++ {
		jMax := i + k
		if jMax > n-1 {
			jMax = n - 1
		}
		for j := 0; j <= jMax; j++ {
			out = append(out, [2]int{i, j})
		}
	}
	return out
}

// TriuIndices returns the (row, col) index pairs of the upper triangle of an
// n×n matrix, offset k diagonals from the main one, in row-major order.
func TriuIndices(n, k int) [][2]int {
	var out [][2]int
	for i := 0; i < n; i++ {
		jMin := i + k
		if jMin < 0 {
			jMin = 0
		}
		for j := jMin; j < n; j++ {
			out = append(out, [2]int{i, j})
		}
	}
	return out
}
