package geometric

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/tensor"
)

const (
	dim      = 1
	pointDim = 1
)

// Space is the parameter space of geometric distributions: success
// probabilities in the open segment (0, 1), as tensors of shape (..., 1).
type Space struct {
	src    rand.Source // nil means the global source
	metric *Metric
}

var _ manifold.Manifold = (*Space)(nil)

// New constructs the space with its Fisher metric.
func New() *Space {
	return NewWithSource(nil)
}

// NewWithSource constructs the space with a seedable random source.
func NewWithSource(src rand.Source) *Space {
	s := &Space{src: src}
	s.metric = NewMetric(s)
	return s
}

// Dim returns 1.
func (s *Space) Dim() int { return dim }

// Shape returns the point shape (1).
func (s *Space) Shape() []int { return []int{pointDim} }

// PointNDim returns 1.
func (s *Space) PointNDim() int { return 1 }

// Metric returns the Fisher metric.
func (s *Space) Metric() *Metric { return s.metric }

// Belongs tests membership in the segment [atol, 1-atol], per batch element:
// the metric degenerates at both endpoints, so they are kept out by the
// tolerance.
func (s *Space) Belongs(point *tensor.Tensor, atol float64) (*tensor.Mask, error) {
	if !manifold.ShapeMatches(point, s.Shape()) {
		return manifold.ConstMask(false, manifold.BatchShape(point, pointDim))
	}
	inside, err := point.GeScalar(atol).And(point.LeScalar(1 - atol))
	if err != nil {
		return nil, err
	}
	return inside.AllLast(), nil
}

// IsTangent only checks the shape: the tangent space is the full line.
func (s *Space) IsTangent(vector, basePoint *tensor.Tensor, atol float64) (*tensor.Mask, error) {
	return manifold.ConstMask(manifold.ShapeMatches(vector, s.Shape()),
		manifold.BatchShape(vector, pointDim))
}

// ToTangent validates the shape and returns a copy.
func (s *Space) ToTangent(vector, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	if !manifold.ShapeMatches(vector, s.Shape()) {
		return nil, fmt.Errorf("ToTangent: %w", manifold.ErrNotTangent)
	}
	return vector.Clone(), nil
}

// Projection clamps each parameter into [atol, 1-atol].
func (s *Space) Projection(point *tensor.Tensor) (*tensor.Tensor, error) {
	lo := tensor.Scalar(manifold.Atol)
	hi := tensor.Scalar(1 - manifold.Atol)
	clamped, err := tensor.Where(point.LtScalar(manifold.Atol), lo, point)
	if err != nil {
		return nil, err
	}
	return tensor.Where(clamped.GtScalar(1-manifold.Atol), hi, clamped)
}

// RandomPoint samples n parameters uniformly in (0, 1).
func (s *Space) RandomPoint(n int) (*tensor.Tensor, error) {
	if n < 1 {
		return nil, fmt.Errorf("RandomPoint: %w", tensor.ErrBadShape)
	}
	u := distuv.Uniform{Min: 0, Max: 1, Src: s.src}
	data := make([]float64, n)
	for i := range data {
		data[i] = u.Rand()
	}
	if n == 1 {
		return tensor.FromSlice(data, pointDim)
	}
	return tensor.FromSlice(data, n, pointDim)
}

// Sample draws nSamples variates from each distribution in the batch by
// inverse transform: k = floor(ln U / ln(1-p)) + 1 with U uniform in (0, 1).
// The result has shape (..., nSamples) with the point axis replaced by the
// sample axis.
func (s *Space) Sample(point *tensor.Tensor, nSamples int) (*tensor.Tensor, error) {
	shape := point.Shape()
	if !manifold.ShapeMatches(point, s.Shape()) {
		return nil, fmt.Errorf("Sample: %w", tensor.ErrShapeMismatch)
	}
	if nSamples < 1 {
		return nil, fmt.Errorf("Sample: %w", tensor.ErrBadShape)
	}
	u := distuv.Uniform{Min: 0, Max: 1, Src: s.src}
	params := point.Data()
	out := make([]float64, len(params)*nSamples)
	for b, p := range params {
		logQ := math.Log1p(-p)
		for i := 0; i < nSamples; i++ {
			v := u.Rand()
			for v == 0 {
				v = u.Rand()
			}
			out[b*nSamples+i] = math.Floor(math.Log(v)/logQ) + 1
		}
	}
	outShape := append(shape[:len(shape)-1], nSamples)
	return tensor.FromSlice(out, outShape...)
}

// PMF returns the probability mass function of each distribution in the
// batch as a closure over the support 1, 2, …: for ks of shape (k,), the
// result has shape (..., k), with P(k) = (1-p)^(k-1)·p.
func (s *Space) PMF(point *tensor.Tensor) (func(ks []int) (*tensor.Tensor, error), error) {
	shape := point.Shape()
	if !manifold.ShapeMatches(point, s.Shape()) {
		return nil, fmt.Errorf("PMF: %w", tensor.ErrShapeMismatch)
	}
	params := point.Data()
	return func(ks []int) (*tensor.Tensor, error) {
		if len(ks) == 0 {
			return nil, fmt.Errorf("PMF: %w", tensor.ErrEmptyInput)
		}
		out := make([]float64, len(params)*len(ks))
		for b, p := range params {
			for i, k := range ks {
				if k < 1 {
					return nil, fmt.Errorf("PMF: support starts at 1: %w", tensor.ErrBadIndex)
				}
				out[b*len(ks)+i] = math.Pow(1-p, float64(k-1)) * p
			}
		}
		outShape := append(shape[:len(shape)-1], len(ks))
		return tensor.FromSlice(out, outShape...)
	}, nil
}
