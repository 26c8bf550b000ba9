package symmetric

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/riemann/tensor"
)

// FromSymDense converts a gonum symmetric matrix into an unbatched point.
func (s *Space) FromSymDense(m *mat.SymDense) (*tensor.Tensor, error) {
	if m.SymmetricDim() != s.n {
		return nil, fmt.Errorf("FromSymDense: %w", tensor.ErrShapeMismatch)
	}
	data := make([]float64, s.n*s.n)
	for i := 0; i < s.n; i++ {
		for j := 0; j < s.n; j++ {
			data[i*s.n+j] = m.At(i, j)
		}
	}
	return tensor.FromSlice(data, s.n, s.n)
}

// ToSymDense converts an unbatched point into a gonum symmetric matrix. The
// point must be symmetric; the upper triangle is read.
func (s *Space) ToSymDense(point *tensor.Tensor) (*mat.SymDense, error) {
	if len(point.Shape()) != 2 {
		return nil, fmt.Errorf("ToSymDense: %w", tensor.ErrShapeMismatch)
	}
	out := mat.NewSymDense(s.n, nil)
	for i := 0; i < s.n; i++ {
		for j := i; j < s.n; j++ {
			v, err := point.At(i, j)
			if err != nil {
				return nil, err
			}
			out.SetSym(i, j, v)
		}
	}
	return out, nil
}
