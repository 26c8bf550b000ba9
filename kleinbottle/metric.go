package kleinbottle

import (
	"fmt"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/tensor"
)

// injectivityRadius is half the smallest wrap period of the quotient.
const injectivityRadius = 0.5

// candidateCount is the number of representatives examined by Log: the
// target itself plus its translated/mirrored copies in the 3×3 block of
// neighboring fundamental domains.
const candidateCount = 9

// Metric is the flat quotient metric on the Klein bottle, with exp and log
// implemented by explicit formulas.
type Metric struct {
	space *KleinBottle // non-owning back-reference
}

var _ manifold.Metric = (*Metric)(nil)

// NewMetric equips space with the flat quotient metric. The space is
// constructed first; the metric only keeps a back-reference.
func NewMetric(space *KleinBottle) *Metric {
	return &Metric{space: space}
}

// Space returns the manifold this metric equips.
func (m *Metric) Space() manifold.Manifold { return m.space }

// InnerProduct is the flat Euclidean dot product; the base point is
// irrelevant for a flat metric.
func (m *Metric) InnerProduct(a, b, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return tensor.Dot(a, b)
}

// InjectivityRadius is the constant 0.5 everywhere, reported per batch
// element of basePoint.
func (m *Metric) InjectivityRadius(basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return manifold.ConstTensor(injectivityRadius, manifold.BatchShape(basePoint, m.space.PointNDim()))
}

// liftBase inserts leading singleton axes until base reaches ndim axes.
// Only the base point is ever broadcast up — never the reverse.
func liftBase(base *tensor.Tensor, ndim int) (*tensor.Tensor, error) {
	for base.NDim() < ndim {
		lifted, err := base.ExpandDims(0)
		if err != nil {
			return nil, err
		}
		base = lifted
	}
	return base, nil
}

// Exp walks from basePoint along tangentVec: regularize the base, add the
// vector, regularize the sum.
func (m *Metric) Exp(tangentVec, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	base, err := liftBase(basePoint, tangentVec.NDim())
	if err != nil {
		return nil, fmt.Errorf("Exp: %w", err)
	}
	canonical, err := m.space.Regularize(base)
	if err != nil {
		return nil, err
	}
	sum, err := tensor.Add(canonical, tangentVec)
	if err != nil {
		return nil, err
	}
	return m.space.Regularize(sum)
}

// Log finds the tangent vector at basePoint reaching the equivalence class
// of point by the shortest path: regularize both points, pick the
// representative of point closest to the regularized base among the 9
// candidates, and return their difference.
//
// Exp(Log(point, basePoint), basePoint) reproduces a point equivalent to
// point — equal up to the quotient relation, not necessarily bit-identical.
func (m *Metric) Log(point, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	base, err := liftBase(basePoint, point.NDim())
	if err != nil {
		return nil, fmt.Errorf("Log: %w", err)
	}
	canonical, minimizer, err := m.closestRepresentative(base, point)
	if err != nil {
		return nil, err
	}
	return tensor.Sub(minimizer, canonical)
}

// SquaredDist is the squared norm of the log — the flat squared Euclidean
// distance to the closest representative.
func (m *Metric) SquaredDist(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return manifold.SquaredDistFromLog(m, a, b)
}

// Dist is the geodesic distance on the quotient.
func (m *Metric) Dist(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return manifold.DistFromSquared(m.SquaredDist(a, b))
}

// closestRepresentative finds the representative of point2 closest to the
// regularized point1. Only representatives in the 3×3 block of surrounding
// fundamental domains need to be considered: the identity, vertical shifts
// by ±1, and — because crossing one boundary in x mirrors y — horizontal
// shifts by ±1 combined with y → 1-y, 2-y, -y.
//
// Returns the canonical point1 and the minimizing representative, both at
// the broadcast batch shape. Ties resolve to the first minimal candidate.
func (m *Metric) closestRepresentative(point1, point2 *tensor.Tensor) (*tensor.Tensor, *tensor.Tensor, error) {
	a, b, err := tensor.BroadcastArrays(point1, point2)
	if err != nil {
		return nil, nil, fmt.Errorf("closestRepresentative: %w", err)
	}
	shape := a.Shape()

	reg1, err := m.space.Regularize(a)
	if err != nil {
		return nil, nil, err
	}
	p1, err := reg1.Reshape(-1, pointDim)
	if err != nil {
		return nil, nil, err
	}
	reg2, err := m.space.Regularize(b)
	if err != nil {
		return nil, nil, err
	}
	p2, err := reg2.Reshape(-1, pointDim)
	if err != nil {
		return nil, nil, err
	}

	x, err := p2.Component(0)
	if err != nil {
		return nil, nil, err
	}
	y, err := p2.Component(1)
	if err != nil {
		return nil, nil, err
	}

	// Candidate representatives along an explicit leading axis: vertical
	// shifts keep y's orientation, horizontal shifts mirror it.
	pairs := [candidateCount][2]*tensor.Tensor{
		{x, y},                          // identity
		{x, y.Shift(-1)},                // down
		{x, y.Shift(1)},                 // up
		{x.Shift(1), y.Neg().Shift(1)},  // right, y → 1-y
		{x.Shift(1), y.Neg().Shift(2)},  // right, y → 2-y
		{x.Shift(1), y.Neg()},           // right, y → -y
		{x.Shift(-1), y.Neg().Shift(1)}, // left, y → 1-y
		{x.Shift(-1), y.Neg().Shift(2)}, // left, y → 2-y
		{x.Shift(-1), y.Neg()},          // left, y → -y
	}
	candidates := make([]*tensor.Tensor, candidateCount)
	for i, pq := range pairs {
		c, err := tensor.StackLast([]*tensor.Tensor{pq[0], pq[1]})
		if err != nil {
			return nil, nil, err
		}
		candidates[i] = c
	}
	total, err := tensor.Stack0(candidates) // (9, batch, 2)
	if err != nil {
		return nil, nil, err
	}

	diff, err := tensor.Sub(total, p1) // broadcasts p1 over the candidate axis
	if err != nil {
		return nil, nil, err
	}
	sqDist := diff.Square().SumLast() // (9, batch)
	argmin, err := sqDist.ArgMin0()
	if err != nil {
		return nil, nil, err
	}
	minimizer, err := total.TakeAlong0(argmin) // (batch, 2)
	if err != nil {
		return nil, nil, err
	}

	p1Out, err := p1.Reshape(shape...)
	if err != nil {
		return nil, nil, err
	}
	minOut, err := minimizer.Reshape(shape...)
	if err != nil {
		return nil, nil, err
	}
	return p1Out, minOut, nil
}
