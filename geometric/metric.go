package geometric

import (
	"math"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/tensor"
)

// Metric is the Fisher information metric of the geometric family:
// g(p) = 1/(p²(1-p)). The substitution u(p) = artanh(√(1-p)) flattens it,
// giving every operation a closed form.
type Metric struct {
	space *Space // non-owning back-reference
}

var _ manifold.Metric = (*Metric)(nil)

// NewMetric equips space with the Fisher metric.
func NewMetric(space *Space) *Metric { return &Metric{space: space} }

// Space returns the manifold this metric equips.
func (m *Metric) Space() manifold.Manifold { return m.space }

// halfCoord is the flattening coordinate u(p) = artanh(√(1-p)).
func halfCoord(p *tensor.Tensor) *tensor.Tensor {
	return p.Neg().Shift(1).Sqrt().Arctanh()
}

// speed is du/dp up to sign: 1/(2p√(1-p)), the factor converting parameter
// velocities to coordinate velocities.
func speed(p *tensor.Tensor) (*tensor.Tensor, error) {
	root := p.Neg().Shift(1).Sqrt()
	denom, err := tensor.Mul(p, root)
	if err != nil {
		return nil, err
	}
	return denom.Scale(2).Recip(), nil
}

// MetricMatrix returns the metric coefficient 1/(p²(1-p)) at each base
// point, with the point shape (..., 1) preserved.
func (m *Metric) MetricMatrix(basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	oneMinus := basePoint.Neg().Shift(1)
	denom, err := tensor.Mul(basePoint.Square(), oneMinus)
	if err != nil {
		return nil, err
	}
	return denom.Recip(), nil
}

// InnerProduct weighs the product of the tangent coordinates by the metric
// coefficient at the base point.
func (m *Metric) InnerProduct(a, b, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	coeff, err := m.MetricMatrix(basePoint)
	if err != nil {
		return nil, err
	}
	prod, err := tensor.Mul(a, b)
	if err != nil {
		return nil, err
	}
	weighted, err := tensor.Mul(prod, coeff)
	if err != nil {
		return nil, err
	}
	return weighted.SumLast(), nil
}

// Exp follows the geodesic: in the u-coordinate the motion is linear, so
// Exp(v, p) = 1 - tanh(u(p) - v/(2p√(1-p)))². Base points outside (0, 1)
// propagate NaN.
func (m *Metric) Exp(tangentVec, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	du, err := speed(basePoint)
	if err != nil {
		return nil, err
	}
	step, err := tensor.Mul(tangentVec, du)
	if err != nil {
		return nil, err
	}
	shifted, err := tensor.Sub(halfCoord(basePoint), step)
	if err != nil {
		return nil, err
	}
	return shifted.Tanh().Square().Neg().Shift(1), nil
}

// Log inverts Exp: Log(q, p) = 2p√(1-p)·(u(p) - u(q)).
func (m *Metric) Log(point, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	diff, err := tensor.Sub(halfCoord(basePoint), halfCoord(point))
	if err != nil {
		return nil, err
	}
	du, err := speed(basePoint)
	if err != nil {
		return nil, err
	}
	return tensor.Div(diff, du)
}

// SquaredDist is the closed form 4·(u(a) - u(b))², reduced over the point
// axis.
func (m *Metric) SquaredDist(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	diff, err := tensor.Sub(halfCoord(a), halfCoord(b))
	if err != nil {
		return nil, err
	}
	return diff.Square().SumLast().Scale(4), nil
}

// Dist is the geodesic distance.
func (m *Metric) Dist(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return manifold.DistFromSquared(m.SquaredDist(a, b))
}

// InjectivityRadius is +Inf: the u-coordinate line is complete and geodesics
// never refocus.
func (m *Metric) InjectivityRadius(basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return manifold.ConstTensor(math.Inf(1), manifold.BatchShape(basePoint, pointDim))
}

// GeodesicIVP returns the geodesic with given initial point and velocity as
// a closure: times of shape (k,) evaluate to points of shape (k, 1) (leading
// batch axes of the inputs broadcast through).
func (m *Metric) GeodesicIVP(initialPoint, initialTangentVec *tensor.Tensor) func(times *tensor.Tensor) (*tensor.Tensor, error) {
	return func(times *tensor.Tensor) (*tensor.Tensor, error) {
		col, err := times.ExpandDims(times.NDim())
		if err != nil {
			return nil, err
		}
		scaled, err := tensor.Mul(col, initialTangentVec)
		if err != nil {
			return nil, err
		}
		return m.Exp(scaled, initialPoint)
	}
}

// GeodesicBVP returns the geodesic joining two points as a closure: time 0
// evaluates to initialPoint, time 1 to endPoint.
func (m *Metric) GeodesicBVP(initialPoint, endPoint *tensor.Tensor) (func(times *tensor.Tensor) (*tensor.Tensor, error), error) {
	vec, err := m.Log(endPoint, initialPoint)
	if err != nil {
		return nil, err
	}
	return m.GeodesicIVP(initialPoint, vec), nil
}
