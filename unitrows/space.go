package unitrows

import (
	"fmt"

	"golang.org/x/exp/rand"

	"github.com/katalvlaran/riemann/cholesky"
	"github.com/katalvlaran/riemann/diffeo"
	"github.com/katalvlaran/riemann/euclidean"
	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/tensor"
)

// Space is the manifold of n×n positive lower-triangular matrices with
// unit-normed rows. It is embedded in the Cholesky space and equipped with
// the metric pulled back through RowDiffeo from a flat image space.
type Space struct {
	n         int
	embedding *cholesky.Space
	rowDiffeo *RowDiffeo
	image     *euclidean.Space
	metric    *diffeo.PullbackMetric
}

var _ manifold.Manifold = (*Space)(nil)

// New constructs the space for matrix size n (n ≥ 2).
func New(n int) (*Space, error) {
	return NewWithSource(n, nil)
}

// NewWithSource constructs the space with a seedable random source.
func NewWithSource(n int, src rand.Source) (*Space, error) {
	d, err := NewRowDiffeo(n)
	if err != nil {
		return nil, fmt.Errorf("unitrows.New: %w", tensor.ErrBadShape)
	}
	embedding, err := cholesky.NewWithSource(n, src)
	if err != nil {
		return nil, err
	}
	image, err := euclidean.NewWithSource(d.ImageDim(), src)
	if err != nil {
		return nil, err
	}
	s := &Space{n: n, embedding: embedding, rowDiffeo: d, image: image}
	s.metric = diffeo.NewPullbackMetric(s, d, image.Metric())
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

// Metric returns the pullback metric.
func (s *Space) Metric() *diffeo.PullbackMetric { return s.metric }

// Diffeo returns the coordinate map the metric pulls back through.
func (s *Space) Diffeo() *RowDiffeo { return s.rowDiffeo }

// rowNorms returns the per-row sums of squares: (..., n, n) → (..., n).
func rowNorms(t *tensor.Tensor) *tensor.Tensor {
	return t.Square().SumLast()
}

// Belongs tests membership in the embedding Cholesky space plus unit row
// norms, per batch element.
func (s *Space) Belongs(point *tensor.Tensor, atol float64) (*tensor.Mask, error) {
	inEmbedding, err := s.embedding.Belongs(point, atol)
	if err != nil {
		return nil, err
	}
	unit := rowNorms(point).IsCloseScalar(1, atol).AllLast()
	return inEmbedding.And(unit)
}

// IsTangent tests that vector is lower triangular, keeps the fixed (0,0)
// coordinate still, and is orthogonal to every row of the base point: unit
// row norms constrain tangent rows to the row's orthogonal complement.
func (s *Space) IsTangent(vector, basePoint *tensor.Tensor, atol float64) (*tensor.Mask, error) {
	lower, err := s.embedding.IsTangent(vector, basePoint, atol)
	if err != nil {
		return nil, err
	}
	radial, err := tensor.Mul(vector, basePoint)
	if err != nil {
		return nil, err
	}
	orth := radial.SumLast().IsCloseScalar(0, atol).AllLast()
	return lower.And(orth)
}

// ToTangent projects vector onto the tangent space at basePoint: zero the
// strictly-upper triangle, then remove from each row its component along the
// corresponding unit row of the base point. Row 0 of the result is always
// zero, since the base's row 0 is the fixed first coordinate axis.
func (s *Space) ToTangent(vector, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	lower, err := s.embedding.ToTangent(vector, basePoint)
	if err != nil {
		return nil, err
	}
	radial, err := tensor.Mul(lower, basePoint)
	if err != nil {
		return nil, err
	}
	sums := radial.SumLast()
	coeff, err := sums.ExpandDims(sums.NDim())
	if err != nil {
		return nil, err
	}
	along, err := tensor.Mul(coeff, basePoint)
	if err != nil {
		return nil, err
	}
	return tensor.Sub(lower, along)
}

// Projection maps an ambient matrix into the space: project onto the
// embedding Cholesky space, then normalize each row. The embedding step
// guarantees positive diagonals, so the normalized rows keep them.
func (s *Space) Projection(point *tensor.Tensor) (*tensor.Tensor, error) {
	lower, err := s.embedding.Projection(point)
	if err != nil {
		return nil, err
	}
	sq := rowNorms(lower).Sqrt()
	norms, err := sq.ExpandDims(sq.NDim())
	if err != nil {
		return nil, err
	}
	return tensor.Div(lower, norms)
}

// RandomPoint samples from the embedding space and projects onto unit rows.
func (s *Space) RandomPoint(n int) (*tensor.Tensor, error) {
	sample, err := s.embedding.RandomPoint(n)
	if err != nil {
		return nil, err
	}
	return s.Projection(sample)
}
