package symmetric

import (
	"math"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/tensor"
)

// Metric is the flat Frobenius metric: the space is a vector space, so
// geodesics are straight lines.
type Metric struct {
	space *Space // non-owning back-reference
}

var _ manifold.Metric = (*Metric)(nil)

// NewMetric equips space with the Frobenius metric.
func NewMetric(space *Space) *Metric { return &Metric{space: space} }

// Space returns the manifold this metric equips.
func (m *Metric) Space() manifold.Manifold { return m.space }

// InnerProduct is the Frobenius inner product tr(AᵀB), summed over both
// matrix axes.
func (m *Metric) InnerProduct(a, b, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	flatA, err := m.space.flatten(a)
	if err != nil {
		return nil, err
	}
	flatB, err := m.space.flatten(b)
	if err != nil {
		return nil, err
	}
	return tensor.Dot(flatA, flatB)
}

// Exp is addition.
func (m *Metric) Exp(tangentVec, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return tensor.Add(basePoint, tangentVec)
}

// Log is subtraction.
func (m *Metric) Log(point, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return tensor.Sub(point, basePoint)
}

// SquaredDist is the squared Frobenius norm of the difference.
func (m *Metric) SquaredDist(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	flatA, err := m.space.flatten(a)
	if err != nil {
		return nil, err
	}
	flatB, err := m.space.flatten(b)
	if err != nil {
		return nil, err
	}
	diff, err := tensor.Sub(flatA, flatB)
	if err != nil {
		return nil, err
	}
	return diff.Square().SumLast(), nil
}

// Dist is the Frobenius distance.
func (m *Metric) Dist(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return manifold.DistFromSquared(m.SquaredDist(a, b))
}

// InjectivityRadius is +Inf everywhere.
func (m *Metric) InjectivityRadius(basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return manifold.ConstTensor(math.Inf(1), manifold.BatchShape(basePoint, m.space.PointNDim()))
}
