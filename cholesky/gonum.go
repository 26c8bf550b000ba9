// Package cholesky: gonum interop. Single (unbatched) points convert to and
// from mat.TriDense, and Gram recovers the SPD matrix L·Lᵀ a Cholesky factor
// came from — the bridge between this space and covariance-matrix code built
// on gonum.

package cholesky

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/riemann/tensor"
)

// FromTriDense converts a lower-triangular gonum matrix into an unbatched
// point of this space. The triangle kind must be lower.
func (s *Space) FromTriDense(t *mat.TriDense) (*tensor.Tensor, error) {
	n, kind := t.Triangle()
	if n != s.n {
		return nil, fmt.Errorf("FromTriDense: %w", tensor.ErrShapeMismatch)
	}
	if kind != mat.Lower {
		return nil, fmt.Errorf("FromTriDense: %w", tensor.ErrBadShape)
	}
	data := make([]float64, s.n*s.n)
	for i := 0; i < s.n; i++ {
		for j := 0; j <= i; j++ {
			data[i*s.n+j] = t.At(i, j)
		}
	}
	return tensor.FromSlice(data, s.n, s.n)
}

// ToTriDense converts an unbatched point into a lower-triangular gonum
// matrix.
func (s *Space) ToTriDense(point *tensor.Tensor) (*mat.TriDense, error) {
	if len(point.Shape()) != 2 {
		return nil, fmt.Errorf("ToTriDense: %w", tensor.ErrShapeMismatch)
	}
	out := mat.NewTriDense(s.n, mat.Lower, nil)
	for i := 0; i < s.n; i++ {
		for j := 0; j <= i; j++ {
			v, err := point.At(i, j)
			if err != nil {
				return nil, err
			}
			out.SetTri(i, j, v)
		}
	}
	return out, nil
}

// Gram maps each factor L in a batch to the symmetric positive definite
// matrix L·Lᵀ. The per-matrix product runs through gonum.
func (s *Space) Gram(point *tensor.Tensor) (*tensor.Tensor, error) {
	shape := point.Shape()
	if len(shape) < 2 || shape[len(shape)-1] != s.n || shape[len(shape)-2] != s.n {
		return nil, fmt.Errorf("Gram: %w", tensor.ErrShapeMismatch)
	}
	data := point.Data()
	block := s.n * s.n
	out := make([]float64, len(data))
	var prod mat.Dense
	for b := 0; b+block <= len(data); b += block {
		l := mat.NewDense(s.n, s.n, data[b:b+block])
		prod.Mul(l, l.T())
		copy(out[b:b+block], prod.RawMatrix().Data)
	}
	return tensor.FromSlice(out, shape...)
}
