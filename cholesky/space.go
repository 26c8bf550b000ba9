package cholesky

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/tensor"
)

// defaultBound is the side of the hypercube RandomPoint samples from.
const defaultBound = 1.0

// Space is the manifold of n×n lower-triangular matrices with strictly
// positive diagonal, embedded in the vector space of lower-triangular
// matrices. Index lists are precomputed once per n and reused.
type Space struct {
	n      int
	src    rand.Source // nil means the global source
	metric *Metric

	diagIdx []int // flat offsets of the diagonal within an n*n block
	slIdx   []int // flat offsets of the strictly-lower entries, row-major
	upIdx   []int // flat offsets of the strictly-upper entries, row-major
}

var _ manifold.Manifold = (*Space)(nil)

// New constructs the Cholesky space of n×n matrices with its default metric.
func New(n int) (*Space, error) {
	return NewWithSource(n, nil)
}

// NewWithSource constructs the space with a seedable random source.
func NewWithSource(n int, src rand.Source) (*Space, error) {
	if n < 1 {
		return nil, fmt.Errorf("cholesky.New: %w", tensor.ErrBadShape)
	}
	s := &Space{n: n, src: src}
	for i := 0; i < n; i++ {
		s.diagIdx = append(s.diagIdx, i*n+i)
	}
	for _, ij := range tensor.TrilIndices(n, -1) {
		s.slIdx = append(s.slIdx, ij[0]*n+ij[1])
	}
	for _, ij := range tensor.TriuIndices(n, 1) {
		s.upIdx = append(s.upIdx, ij[0]*n+ij[1])
	}
	s.metric = NewMetric(s)
	return s, nil
}

// N returns the matrix size n.
func (s *Space) N() int { return s.n }

// Dim returns the manifold dimension n(n+1)/2.
func (s *Space) Dim() int { return s.n * (s.n + 1) / 2 }

// Shape returns the point shape (n, n).
func (s *Space) Shape() []int { return []int{s.n, s.n} }

// PointNDim returns 2: points are matrices.
func (s *Space) PointNDim() int { return 2 }

// Metric returns the default Cholesky metric.
func (s *Space) Metric() *Metric { return s.metric }

// flatten collapses the trailing (n, n) axes into one n² axis so the
// precomputed index lists drive gathers and scatters.
func (s *Space) flatten(t *tensor.Tensor) (*tensor.Tensor, error) {
	shape := t.Shape()
	if len(shape) < 2 {
		return nil, fmt.Errorf("cholesky: %w", tensor.ErrBadAxis)
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

// Diagonal extracts the diagonal of a batch of matrices: (..., n, n) → (..., n).
func (s *Space) Diagonal(t *tensor.Tensor) (*tensor.Tensor, error) {
	flat, err := s.flatten(t)
	if err != nil {
		return nil, err
	}
	return flat.GatherLast(s.diagIdx)
}

// StrictlyLowerVec extracts the strictly-lower entries row-major:
// (..., n, n) → (..., n(n-1)/2). For n == 1 the strictly-lower part is
// empty and a zero-width placeholder of shape (..., 1) is returned.
func (s *Space) StrictlyLowerVec(t *tensor.Tensor) (*tensor.Tensor, error) {
	if len(s.slIdx) == 0 {
		flat, err := s.flatten(t)
		if err != nil {
			return nil, err
		}
		g, err := flat.GatherLast([]int{0})
		if err != nil {
			return nil, err
		}
		return g.Scale(0), nil
	}
	flat, err := s.flatten(t)
	if err != nil {
		return nil, err
	}
	return flat.GatherLast(s.slIdx)
}

// StrictlyLower zeroes everything but the strictly-lower triangle,
// preserving the (..., n, n) shape.
func (s *Space) StrictlyLower(t *tensor.Tensor) (*tensor.Tensor, error) {
	if len(s.slIdx) == 0 {
		return t.Scale(0), nil
	}
	vec, err := s.StrictlyLowerVec(t)
	if err != nil {
		return nil, err
	}
	flat, err := vec.ScatterLast(s.slIdx, s.n*s.n)
	if err != nil {
		return nil, err
	}
	return s.unflatten(flat)
}

// DiagMatrix embeds a batch of diagonal vectors (..., n) as diagonal
// matrices (..., n, n).
func (s *Space) DiagMatrix(diag *tensor.Tensor) (*tensor.Tensor, error) {
	flat, err := diag.ScatterLast(s.diagIdx, s.n*s.n)
	if err != nil {
		return nil, err
	}
	return s.unflatten(flat)
}

// isLowerTriangular tests, per batch element, that every strictly-upper
// entry is within atol of zero.
func (s *Space) isLowerTriangular(t *tensor.Tensor, atol float64) (*tensor.Mask, error) {
	if len(s.upIdx) == 0 {
		return manifold.ConstMask(true, manifold.BatchShape(t, s.PointNDim()))
	}
	flat, err := s.flatten(t)
	if err != nil {
		return nil, err
	}
	upper, err := flat.GatherLast(s.upIdx)
	if err != nil {
		return nil, err
	}
	return upper.IsCloseScalar(0, atol).AllLast(), nil
}

// Belongs tests lower-triangularity (the embedding-space check) and a
// strictly positive diagonal, per batch element.
func (s *Space) Belongs(point *tensor.Tensor, atol float64) (*tensor.Mask, error) {
	if !manifold.ShapeMatches(point, s.Shape()) {
		return manifold.ConstMask(false, manifold.BatchShape(point, s.PointNDim()))
	}
	lower, err := s.isLowerTriangular(point, atol)
	if err != nil {
		return nil, err
	}
	diag, err := s.Diagonal(point)
	if err != nil {
		return nil, err
	}
	positive := diag.GtScalar(0).AllLast()
	return lower.And(positive)
}

// IsTangent tests that vector lives in the embedding space of lower
// triangular matrices; the tangent space is the same at every base point.
func (s *Space) IsTangent(vector, basePoint *tensor.Tensor, atol float64) (*tensor.Mask, error) {
	if !manifold.ShapeMatches(vector, s.Shape()) {
		return manifold.ConstMask(false, manifold.BatchShape(vector, s.PointNDim()))
	}
	return s.isLowerTriangular(vector, atol)
}

// ToTangent projects vector onto the embedding space by zeroing the strictly
// upper triangle.
func (s *Space) ToTangent(vector, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	if !manifold.ShapeMatches(vector, s.Shape()) {
		return nil, fmt.Errorf("ToTangent: %w", manifold.ErrNotTangent)
	}
	sl, err := s.StrictlyLower(vector)
	if err != nil {
		return nil, err
	}
	diag, err := s.Diagonal(vector)
	if err != nil {
		return nil, err
	}
	diagMat, err := s.DiagMatrix(diag)
	if err != nil {
		return nil, err
	}
	return tensor.Add(sl, diagMat)
}

// Projection maps an ambient matrix into the space: the diagonal is replaced
// by its absolute value floored at atol (never zero), the strictly-lower
// part is kept, the strictly-upper part is dropped.
func (s *Space) Projection(point *tensor.Tensor) (*tensor.Tensor, error) {
	diag, err := s.Diagonal(point)
	if err != nil {
		return nil, err
	}
	absDiag := diag.Abs()
	floor := tensor.Scalar(manifold.Atol)
	clamped, err := tensor.Where(absDiag.LtScalar(manifold.Atol), floor, absDiag)
	if err != nil {
		return nil, err
	}
	diagMat, err := s.DiagMatrix(clamped)
	if err != nil {
		return nil, err
	}
	sl, err := s.StrictlyLower(point)
	if err != nil {
		return nil, err
	}
	return tensor.Add(diagMat, sl)
}

// RandomPoint samples n matrices with strictly-lower entries uniform in
// [-bound, bound] and diagonal entries uniform in (0, bound].
func (s *Space) RandomPoint(n int) (*tensor.Tensor, error) {
	if n < 1 {
		return nil, fmt.Errorf("RandomPoint: %w", tensor.ErrBadShape)
	}
	u := distuv.Uniform{Min: 0, Max: 1, Src: s.src}
	block := s.n * s.n
	data := make([]float64, n*block)
	for b := 0; b < n; b++ {
		for _, off := range s.slIdx {
			data[b*block+off] = (u.Rand() - 0.5) * 2 * defaultBound
		}
		for _, off := range s.diagIdx {
			data[b*block+off] = defaultBound*u.Rand() + manifold.Atol
		}
	}
	if n == 1 {
		return tensor.FromSlice(data, s.n, s.n)
	}
	return tensor.FromSlice(data, n, s.n, s.n)
}
