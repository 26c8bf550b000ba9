package manifold

import "github.com/katalvlaran/riemann/tensor"

// SquaredNorm computes ⟨v, v⟩ at basePoint under metric m.
func SquaredNorm(m Metric, v, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return m.InnerProduct(v, v, basePoint)
}

// Norm computes the metric norm of v at basePoint.
func Norm(m Metric, v, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	sq, err := SquaredNorm(m, v, basePoint)
	if err != nil {
		return nil, err
	}
	return sq.Sqrt(), nil
}

// SquaredDistFromLog derives squared distance as ⟨log(b, a), log(b, a)⟩ at a.
// Metrics with a cheaper closed form override SquaredDist directly; this is
// the generic fallback every metric's Log supports.
func SquaredDistFromLog(m Metric, a, b *tensor.Tensor) (*tensor.Tensor, error) {
	lg, err := m.Log(b, a)
	if err != nil {
		return nil, err
	}
	return m.InnerProduct(lg, lg, a)
}

// DistFromSquared converts a squared distance into a distance.
func DistFromSquared(sq *tensor.Tensor, err error) (*tensor.Tensor, error) {
	if err != nil {
		return nil, err
	}
	return sq.Sqrt(), nil
}

// BatchShape returns the leading batch dimensions of a point array with the
// given point ndim (nil when the point is unbatched).
func BatchShape(t *tensor.Tensor, pointNDim int) []int {
	shape := t.Shape()
	if len(shape) <= pointNDim {
		return nil
	}
	return shape[:len(shape)-pointNDim]
}

// ShapeMatches reports whether the trailing dimensions of t equal shape.
func ShapeMatches(t *tensor.Tensor, shape []int) bool {
	ts := t.Shape()
	if len(ts) < len(shape) {
		return false
	}
	tail := ts[len(ts)-len(shape):]
	for i := range shape {
		if tail[i] != shape[i] {
			return false
		}
	}
	return true
}

// ConstMask builds a mask of the batch shape filled with value. Used by
// shape-only tangency tests: all-true on shape match, all-false otherwise.
// An empty batch shape yields a scalar (single-element) mask.
func ConstMask(value bool, batchShape []int) (*tensor.Mask, error) {
	return tensor.FullMask(value, batchShape...)
}

// ConstTensor builds a tensor of the batch shape filled with value, the
// shape-preserving way constant quantities (injectivity radii) are reported
// per batch element. Scalars yield a shape-() tensor.
func ConstTensor(value float64, batchShape []int) (*tensor.Tensor, error) {
	return tensor.Full(value, batchShape...)
}
