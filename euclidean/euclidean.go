package euclidean

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/tensor"
)

// defaultBound is the half-side of the hypercube RandomPoint samples from.
const defaultBound = 1.0

// inf marks metrics whose exponential map is globally invertible.
var inf = math.Inf(1)

// Space is flat ℝ^d in its intrinsic representation.
type Space struct {
	dim    int
	src    rand.Source // nil means the global source
	metric *Metric
}

var (
	_ manifold.Manifold = (*Space)(nil)
	_ manifold.Metric   = (*Metric)(nil)
)

// New constructs ℝ^d equipped with the flat metric.
func New(dim int) (*Space, error) {
	return NewWithSource(dim, nil)
}

// NewWithSource constructs ℝ^d with a seedable random source.
func NewWithSource(dim int, src rand.Source) (*Space, error) {
	if dim < 1 {
		return nil, fmt.Errorf("euclidean.New: %w", tensor.ErrBadShape)
	}
	s := &Space{dim: dim, src: src}
	s.metric = NewMetric(s)
	return s, nil
}

// Dim returns the dimension d.
func (s *Space) Dim() int { return s.dim }

// Shape returns the point shape (d,).
func (s *Space) Shape() []int { return []int{s.dim} }

// PointNDim returns 1: points are vectors.
func (s *Space) PointNDim() int { return 1 }

// Metric returns the default flat metric.
func (s *Space) Metric() *Metric { return s.metric }

// Belongs tests only the trailing shape: every real vector belongs.
func (s *Space) Belongs(point *tensor.Tensor, atol float64) (*tensor.Mask, error) {
	return manifold.ConstMask(manifold.ShapeMatches(point, s.Shape()),
		manifold.BatchShape(point, s.PointNDim()))
}

// IsTangent tests only the trailing shape: the tangent space is the space
// itself.
func (s *Space) IsTangent(vector, basePoint *tensor.Tensor, atol float64) (*tensor.Mask, error) {
	batch := manifold.BatchShape(vector, s.PointNDim())
	if basePoint != nil {
		common, err := tensor.BroadcastShapes(batch, manifold.BatchShape(basePoint, s.PointNDim()))
		if err != nil {
			return nil, fmt.Errorf("IsTangent: %w", err)
		}
		batch = common
	}
	return manifold.ConstMask(manifold.ShapeMatches(vector, s.Shape()), batch)
}

// ToTangent is the identity after a shape check.
func (s *Space) ToTangent(vector, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	ok, err := s.IsTangent(vector, basePoint, manifold.Atol)
	if err != nil {
		return nil, err
	}
	if !ok.All() {
		return nil, fmt.Errorf("ToTangent: %w", manifold.ErrNotTangent)
	}
	return vector.Clone(), nil
}

// Projection is the identity.
func (s *Space) Projection(point *tensor.Tensor) (*tensor.Tensor, error) {
	return point.Clone(), nil
}

// RandomPoint samples n points uniformly from [-1, 1]^d.
func (s *Space) RandomPoint(n int) (*tensor.Tensor, error) {
	if n < 1 {
		return nil, fmt.Errorf("RandomPoint: %w", tensor.ErrBadShape)
	}
	u := distuv.Uniform{Min: -defaultBound, Max: defaultBound, Src: s.src}
	data := make([]float64, n*s.dim)
	for i := range data {
		data[i] = u.Rand()
	}
	if n == 1 {
		return tensor.FromSlice(data, s.dim)
	}
	return tensor.FromSlice(data, n, s.dim)
}

// Metric is the flat Euclidean metric: exp adds, log subtracts, distances
// are Euclidean, and the injectivity radius is infinite.
type Metric struct {
	space *Space
}

// NewMetric equips space with the flat metric.
func NewMetric(space *Space) *Metric { return &Metric{space: space} }

// Space returns the manifold this metric equips.
func (m *Metric) Space() manifold.Manifold { return m.space }

// InnerProduct is the dot product along the trailing axis; the base point is
// irrelevant.
func (m *Metric) InnerProduct(a, b, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return tensor.Dot(a, b)
}

// Exp is addition: base + tangent.
func (m *Metric) Exp(tangentVec, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return tensor.Add(basePoint, tangentVec)
}

// Log is subtraction: point - base.
func (m *Metric) Log(point, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return tensor.Sub(point, basePoint)
}

// SquaredDist is the squared Euclidean distance per batch element.
func (m *Metric) SquaredDist(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	diff, err := tensor.Sub(a, b)
	if err != nil {
		return nil, err
	}
	return diff.Square().SumLast(), nil
}

// Dist is the Euclidean distance per batch element.
func (m *Metric) Dist(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return manifold.DistFromSquared(m.SquaredDist(a, b))
}

// InjectivityRadius is +Inf everywhere: flat space is geodesically complete
// and exp is a global diffeomorphism.
func (m *Metric) InjectivityRadius(basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return manifold.ConstTensor(inf, manifold.BatchShape(basePoint, m.space.PointNDim()))
}
