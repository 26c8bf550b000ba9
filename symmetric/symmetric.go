package symmetric

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/tensor"
)

// defaultBound is the side of the hypercube RandomPoint samples from.
const defaultBound = 1.0

// Space is the vector space of n×n symmetric matrices. Index lists are
// precomputed once per n and reused across the batch.
type Space struct {
	n      int
	src    rand.Source // nil means the global source
	metric *Metric

	triuIdx []int // flat offsets of the upper triangle incl. diagonal, row-major
	diagIdx []int // flat offsets of the diagonal
	permIdx []int // flat offsets realizing the transpose of an n*n block
}

var _ manifold.Manifold = (*Space)(nil)

// New constructs the space of n×n symmetric matrices with its flat metric.
func New(n int) (*Space, error) {
	return NewWithSource(n, nil)
}

// NewWithSource constructs the space with a seedable random source.
func NewWithSource(n int, src rand.Source) (*Space, error) {
	if n < 1 {
		return nil, fmt.Errorf("symmetric.New: %w", tensor.ErrBadShape)
	}
	s := &Space{n: n, src: src}
	for _, ij := range tensor.TriuIndices(n, 0) {
		s.triuIdx = append(s.triuIdx, ij[0]*n+ij[1])
	}
	for i := 0; i < n; i++ {
		s.diagIdx = append(s.diagIdx, i*n+i)
		for j := 0; j < n; j++ {
			s.permIdx = append(s.permIdx, j*n+i)
		}
	}
	s.metric = NewMetric(s)
	return s, nil
}

// N returns the matrix size n.
func (s *Space) N() int { return s.n }

// Dim returns the dimension n(n+1)/2.
func (s *Space) Dim() int { return s.n * (s.n + 1) / 2 }

// Shape returns the point shape (n, n).
func (s *Space) Shape() []int { return []int{s.n, s.n} }

// PointNDim returns 2: points are matrices.
func (s *Space) PointNDim() int { return 2 }

// Metric returns the flat Frobenius metric.
func (s *Space) Metric() *Metric { return s.metric }

// flatten collapses the trailing (n, n) axes into one n² axis.
func (s *Space) flatten(t *tensor.Tensor) (*tensor.Tensor, error) {
	shape := t.Shape()
	if len(shape) < 2 || shape[len(shape)-1] != s.n || shape[len(shape)-2] != s.n {
		return nil, fmt.Errorf("symmetric: %w", tensor.ErrShapeMismatch)
	}
	flat := append(shape[:len(shape)-2], s.n*s.n)
	return t.Reshape(flat...)
}

// unflatten restores the trailing (n, n) axes.
func (s *Space) unflatten(t *tensor.Tensor) (*tensor.Tensor, error) {
	shape := t.Shape()
	full := append(shape[:len(shape)-1], s.n, s.n)
	return t.Reshape(full...)
}

// Transpose swaps the trailing two axes of a batch of matrices.
func (s *Space) Transpose(t *tensor.Tensor) (*tensor.Tensor, error) {
	flat, err := s.flatten(t)
	if err != nil {
		return nil, err
	}
	perm, err := flat.GatherLast(s.permIdx)
	if err != nil {
		return nil, err
	}
	return s.unflatten(perm)
}

// Belongs tests entrywise symmetry within atol, per batch element.
func (s *Space) Belongs(point *tensor.Tensor, atol float64) (*tensor.Mask, error) {
	if !manifold.ShapeMatches(point, s.Shape()) {
		return manifold.ConstMask(false, manifold.BatchShape(point, s.PointNDim()))
	}
	flat, err := s.flatten(point)
	if err != nil {
		return nil, err
	}
	trans, err := flat.GatherLast(s.permIdx)
	if err != nil {
		return nil, err
	}
	sym, err := tensor.IsClose(flat, trans, atol)
	if err != nil {
		return nil, err
	}
	return sym.AllLast(), nil
}

// IsTangent is the same symmetry test: the space is linear, so the tangent
// space at every point is the space itself.
func (s *Space) IsTangent(vector, basePoint *tensor.Tensor, atol float64) (*tensor.Mask, error) {
	return s.Belongs(vector, atol)
}

// ToTangent symmetrizes vector.
func (s *Space) ToTangent(vector, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return s.Projection(vector)
}

// Projection symmetrizes an arbitrary square matrix as (A + Aᵀ)/2.
func (s *Space) Projection(point *tensor.Tensor) (*tensor.Tensor, error) {
	trans, err := s.Transpose(point)
	if err != nil {
		return nil, err
	}
	sum, err := tensor.Add(point, trans)
	if err != nil {
		return nil, err
	}
	return sum.Scale(0.5), nil
}

// Basis returns the standard basis as a (dim, n, n) tensor: basis element k
// for the upper-triangular position (i, j) has 1 at (i, j) and (j, i).
func (s *Space) Basis() (*tensor.Tensor, error) {
	dim := s.Dim()
	var indices [][]int
	var values []float64
	for k, ij := range tensor.TriuIndices(s.n, 0) {
		i, j := ij[0], ij[1]
		indices = append(indices, []int{k, i, j})
		values = append(values, 1)
		if i != j {
			indices = append(indices, []int{k, j, i})
			values = append(values, 1)
		}
	}
	return tensor.FromSparse(indices, values, []int{dim, s.n, s.n})
}

// BasisRepresentation maps matrices to their coordinate vectors on Basis:
// (..., n, n) → (..., n(n+1)/2), reading the upper triangle row-major.
func (s *Space) BasisRepresentation(point *tensor.Tensor) (*tensor.Tensor, error) {
	flat, err := s.flatten(point)
	if err != nil {
		return nil, err
	}
	return flat.GatherLast(s.triuIdx)
}

// MatrixRepresentation inverts BasisRepresentation: scatter the coordinates
// into the upper triangle, mirror across the diagonal, and undo the doubled
// diagonal.
func (s *Space) MatrixRepresentation(vec *tensor.Tensor) (*tensor.Tensor, error) {
	shape := vec.Shape()
	if len(shape) < 1 || shape[len(shape)-1] != s.Dim() {
		return nil, fmt.Errorf("MatrixRepresentation: %w", tensor.ErrShapeMismatch)
	}
	upper, err := vec.ScatterLast(s.triuIdx, s.n*s.n)
	if err != nil {
		return nil, err
	}
	mirror, err := upper.GatherLast(s.permIdx)
	if err != nil {
		return nil, err
	}
	sum, err := tensor.Add(upper, mirror)
	if err != nil {
		return nil, err
	}
	diag, err := upper.GatherLast(s.diagIdx)
	if err != nil {
		return nil, err
	}
	diagMat, err := diag.ScatterLast(s.diagIdx, s.n*s.n)
	if err != nil {
		return nil, err
	}
	flat, err := tensor.Sub(sum, diagMat)
	if err != nil {
		return nil, err
	}
	return s.unflatten(flat)
}

// RandomPoint samples n matrices with entries uniform in [-bound, bound],
// symmetrized.
func (s *Space) RandomPoint(n int) (*tensor.Tensor, error) {
	if n < 1 {
		return nil, fmt.Errorf("RandomPoint: %w", tensor.ErrBadShape)
	}
	u := distuv.Uniform{Min: -defaultBound, Max: defaultBound, Src: s.src}
	block := s.n * s.n
	data := make([]float64, n*block)
	for i := range data {
		data[i] = u.Rand()
	}
	var raw *tensor.Tensor
	var err error
	if n == 1 {
		raw, err = tensor.FromSlice(data, s.n, s.n)
	} else {
		raw, err = tensor.FromSlice(data, n, s.n, s.n)
	}
	if err != nil {
		return nil, err
	}
	return s.Projection(raw)
}
