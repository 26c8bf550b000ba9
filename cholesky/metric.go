package cholesky

import (
	"math"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/tensor"
)

// Metric is the Cholesky metric: log-Euclidean on the diagonal, flat on the
// strictly-lower part, combined additively.
type Metric struct {
	space *Space // non-owning back-reference
}

var _ manifold.Metric = (*Metric)(nil)

// NewMetric equips space with the Cholesky metric.
func NewMetric(space *Space) *Metric { return &Metric{space: space} }

// Space returns the manifold this metric equips.
func (m *Metric) Space() manifold.Manifold { return m.space }

// DiagInnerProduct is the diagonal component of the inner product: diagonal
// entries of both tangent vectors multiplied, weighted by the inverse square
// of the base point's diagonal, and summed.
func (m *Metric) DiagInnerProduct(a, b, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	diagA, err := m.space.Diagonal(a)
	if err != nil {
		return nil, err
	}
	diagB, err := m.space.Diagonal(b)
	if err != nil {
		return nil, err
	}
	diagBase, err := m.space.Diagonal(basePoint)
	if err != nil {
		return nil, err
	}
	weight := diagBase.Square().Recip()
	prod, err := tensor.Mul(diagA, diagB)
	if err != nil {
		return nil, err
	}
	weighted, err := tensor.Mul(prod, weight)
	if err != nil {
		return nil, err
	}
	return weighted.SumLast(), nil
}

// StrictlyLowerInnerProduct is the flat component: the Euclidean dot product
// of the strictly-lower entries.
func (m *Metric) StrictlyLowerInnerProduct(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	slA, err := m.space.StrictlyLowerVec(a)
	if err != nil {
		return nil, err
	}
	slB, err := m.space.StrictlyLowerVec(b)
	if err != nil {
		return nil, err
	}
	return tensor.Dot(slA, slB)
}

// InnerProduct is the sum of the diagonal and strictly-lower components.
func (m *Metric) InnerProduct(a, b, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	diag, err := m.DiagInnerProduct(a, b, basePoint)
	if err != nil {
		return nil, err
	}
	sl, err := m.StrictlyLowerInnerProduct(a, b)
	if err != nil {
		return nil, err
	}
	return tensor.Add(diag, sl)
}

// Exp recombines the independently transformed parts: the strictly-lower
// part adds directly, the diagonal follows the multiplicative rule
// D(L)·e^{D(v)/D(L)}, which keeps it strictly positive. A non-positive base
// diagonal is a precondition violation and propagates NaN/Inf.
func (m *Metric) Exp(tangentVec, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	slBase, err := m.space.StrictlyLower(basePoint)
	if err != nil {
		return nil, err
	}
	slVec, err := m.space.StrictlyLower(tangentVec)
	if err != nil {
		return nil, err
	}
	diagBase, err := m.space.Diagonal(basePoint)
	if err != nil {
		return nil, err
	}
	diagVec, err := m.space.Diagonal(tangentVec)
	if err != nil {
		return nil, err
	}

	ratio, err := tensor.Div(diagVec, diagBase)
	if err != nil {
		return nil, err
	}
	diagExp, err := tensor.Mul(diagBase, ratio.Exp())
	if err != nil {
		return nil, err
	}
	diagMat, err := m.space.DiagMatrix(diagExp)
	if err != nil {
		return nil, err
	}

	slSum, err := tensor.Add(slBase, slVec)
	if err != nil {
		return nil, err
	}
	return tensor.Add(slSum, diagMat)
}

// Log inverts Exp: the strictly-lower part subtracts directly, the diagonal
// is D(L)·ln(D(P)/D(L)).
func (m *Metric) Log(point, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	slBase, err := m.space.StrictlyLower(basePoint)
	if err != nil {
		return nil, err
	}
	slPoint, err := m.space.StrictlyLower(point)
	if err != nil {
		return nil, err
	}
	diagBase, err := m.space.Diagonal(basePoint)
	if err != nil {
		return nil, err
	}
	diagPoint, err := m.space.Diagonal(point)
	if err != nil {
		return nil, err
	}

	ratio, err := tensor.Div(diagPoint, diagBase)
	if err != nil {
		return nil, err
	}
	diagLog, err := tensor.Mul(diagBase, ratio.Log())
	if err != nil {
		return nil, err
	}
	diagMat, err := m.space.DiagMatrix(diagLog)
	if err != nil {
		return nil, err
	}

	slDiff, err := tensor.Sub(slPoint, slBase)
	if err != nil {
		return nil, err
	}
	return tensor.Add(slDiff, diagMat)
}

// SquaredDist is the direct closed form, avoiding an explicit Log call:
// log-Euclidean on the diagonals plus Frobenius on the strictly-lower parts.
func (m *Metric) SquaredDist(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	diagA, err := m.space.Diagonal(a)
	if err != nil {
		return nil, err
	}
	diagB, err := m.space.Diagonal(b)
	if err != nil {
		return nil, err
	}
	logDiff, err := tensor.Sub(diagA.Log(), diagB.Log())
	if err != nil {
		return nil, err
	}
	diagPart := logDiff.Square().SumLast()

	slA, err := m.space.StrictlyLowerVec(a)
	if err != nil {
		return nil, err
	}
	slB, err := m.space.StrictlyLowerVec(b)
	if err != nil {
		return nil, err
	}
	slDiff, err := tensor.Sub(slA, slB)
	if err != nil {
		return nil, err
	}
	slPart := slDiff.Square().SumLast()

	return tensor.Add(diagPart, slPart)
}

// Dist is the geodesic distance.
func (m *Metric) Dist(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return manifold.DistFromSquared(m.SquaredDist(a, b))
}

// InjectivityRadius is +Inf everywhere: the space is geodesically complete
// and Exp is a global diffeomorphism at every base point.
func (m *Metric) InjectivityRadius(basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return manifold.ConstTensor(math.Inf(1), manifold.BatchShape(basePoint, m.space.PointNDim()))
}
