package kleinbottle

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/tensor"
)

// dim and pointDim describe the fixed structure of the space: a
// two-dimensional manifold whose points are 2-vectors.
const (
	dim      = 2
	pointDim = 2
)

// KleinBottle is the quotient manifold [0,1]² with edge gluing and
// orientation flip. The representation is intrinsic: any real 2-vector is
// admissible and represents its equivalence class.
type KleinBottle struct {
	src    rand.Source // nil means the global source
	metric *Metric
}

var _ manifold.Manifold = (*KleinBottle)(nil)

// New constructs the Klein bottle equipped with its default metric.
func New() *KleinBottle {
	s := &KleinBottle{}
	s.metric = NewMetric(s)
	return s
}

// NewWithSource constructs the Klein bottle with a seedable random source
// for RandomPoint (handy for reproducible tests).
func NewWithSource(src rand.Source) *KleinBottle {
	s := &KleinBottle{src: src}
	s.metric = NewMetric(s)
	return s
}

// Dim returns the manifold dimension (2).
func (s *KleinBottle) Dim() int { return dim }

// Shape returns the point shape (2,).
func (s *KleinBottle) Shape() []int { return []int{pointDim} }

// PointNDim returns 1: points are vectors.
func (s *KleinBottle) PointNDim() int { return 1 }

// Metric returns the default (flat quotient) metric equipping the space.
func (s *KleinBottle) Metric() *Metric { return s.metric }

// Belongs evaluates whether every coordinate lies in [0,1], one boolean per
// batch element. A mismatched trailing shape yields an all-false mask.
func (s *KleinBottle) Belongs(point *tensor.Tensor, atol float64) (*tensor.Mask, error) {
	if !manifold.ShapeMatches(point, s.Shape()) {
		return manifold.ConstMask(false, manifold.BatchShape(point, s.PointNDim()))
	}
	ge := point.GeScalar(0)
	le := point.LeScalar(1)
	in, err := ge.And(le)
	if err != nil {
		return nil, err
	}
	return in.AllLast(), nil
}

// IsTangent evaluates tangency of vector at basePoint. The representation is
// intrinsic and flat, so any vector of the right trailing shape is tangent
// everywhere: the result is all-true (all-false on shape mismatch),
// broadcast to the common batch shape of vector and basePoint.
func (s *KleinBottle) IsTangent(vector, basePoint *tensor.Tensor, atol float64) (*tensor.Mask, error) {
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

// ToTangent projects vector to the tangent space at basePoint — the identity
// map after validation. Returns manifold.ErrNotTangent when validation fails.
func (s *KleinBottle) ToTangent(vector, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	ok, err := s.IsTangent(vector, basePoint, manifold.Atol)
	if err != nil {
		return nil, err
	}
	if !ok.All() {
		return nil, fmt.Errorf("ToTangent: %w", manifold.ErrNotTangent)
	}
	return vector.Clone(), nil
}

// Projection maps an ambient point onto the fundamental domain; identical to
// Regularize.
func (s *KleinBottle) Projection(point *tensor.Tensor) (*tensor.Tensor, error) {
	return s.Regularize(point)
}

// RandomPoint samples n points uniformly on [0,1]².
func (s *KleinBottle) RandomPoint(n int) (*tensor.Tensor, error) {
	if n < 1 {
		return nil, fmt.Errorf("RandomPoint: %w", tensor.ErrBadShape)
	}
	u := distuv.Uniform{Min: 0, Max: 1, Src: s.src}
	data := make([]float64, n*pointDim)
	for i := range data {
		data[i] = u.Rand()
	}
	if n == 1 {
		return tensor.FromSlice(data, pointDim)
	}
	return tensor.FromSlice(data, n, pointDim)
}

// Equivalent evaluates whether two ambient points represent the same point
// on the Klein bottle, within tolerance atol on the integrality tests.
//
// The un-mirrored leg requires the x-difference to be an even integer and
// the y-difference an integer; the mirrored leg requires the x-difference to
// be an odd integer and the y-SUM an integer. Each integrality test reduces
// modulo its period and accepts closeness to 0 or to the period itself, so
// both ends of the wrap-around tolerance band are treated correctly.
func (s *KleinBottle) Equivalent(pointA, pointB *tensor.Tensor, atol float64) (*tensor.Mask, error) {
	a, b, err := tensor.BroadcastArrays(pointA, pointB)
	if err != nil {
		return nil, fmt.Errorf("Equivalent: %w", err)
	}
	ax, err := a.Component(0)
	if err != nil {
		return nil, err
	}
	ay, err := a.Component(1)
	if err != nil {
		return nil, err
	}
	bx, err := b.Component(0)
	if err != nil {
		return nil, err
	}
	by, err := b.Component(1)
	if err != nil {
		return nil, err
	}

	xDiff, err := tensor.Sub(ax, bx)
	if err != nil {
		return nil, err
	}
	yDiff, err := tensor.Sub(ay, by)
	if err != nil {
		return nil, err
	}
	ySum, err := tensor.Add(ay, by)
	if err != nil {
		return nil, err
	}

	unMirrored, err := isCloseMod(xDiff.Mod(2), 2, atol).And(isCloseMod(yDiff.Mod(1), 1, atol))
	if err != nil {
		return nil, err
	}
	mirrored, err := isCloseMod(xDiff.Shift(-1).Mod(2), 2, atol).And(isCloseMod(ySum.Mod(1), 1, atol))
	if err != nil {
		return nil, err
	}
	return unMirrored.Or(mirrored)
}

// isCloseMod reports elementwise whether |t| is close to 0 or to divisor —
// the two ends of the modulo wrap-around band.
func isCloseMod(t *tensor.Tensor, divisor, atol float64) *tensor.Mask {
	abs := t.Abs()
	near0 := abs.IsCloseScalar(0, atol)
	nearDiv := abs.IsCloseScalar(divisor, atol)
	m, _ := near0.Or(nearDiv) // same shape by construction
	return m
}

// Regularize reduces an arbitrary real 2-vector to its canonical
// representative in [0,1]².
//
// Algorithm:
//  1. k = ⌊|⌊x⌋|⌋ counts the unit steps taken in x as a non-negative integer.
//  2. x' = x mod 1.
//  3. y_even = y mod 1 and y_odd = (1 - y_even) mod 1 are the two candidate
//     y-values; k even selects y_even, k odd selects y_odd — crossing an odd
//     number of fundamental-domain boundaries in x flips the y-orientation.
//
// The parity choice is an elementwise select over the batch, never a
// per-element branch. Regularize is idempotent and its output always
// Belongs.
func (s *KleinBottle) Regularize(point *tensor.Tensor) (*tensor.Tensor, error) {
	// numSteps keeps its trailing axis (shape [..., 1]) so the parity mask
	// broadcasts across both coordinates in the final select.
	numSteps, err := point.GatherLast([]int{0})
	if err != nil {
		return nil, fmt.Errorf("Regularize: %w", err)
	}
	numSteps = numSteps.Floor().Abs()

	x, err := point.Component(0)
	if err != nil {
		return nil, err
	}
	y, err := point.Component(1)
	if err != nil {
		return nil, err
	}

	xCanonical := x.Mod(1)
	yEven := y.Mod(1)
	yOdd := yEven.Neg().Shift(1).Mod(1)

	pointEven, err := tensor.StackLast([]*tensor.Tensor{xCanonical, yEven})
	if err != nil {
		return nil, err
	}
	pointOdd, err := tensor.StackLast([]*tensor.Tensor{xCanonical, yOdd})
	if err != nil {
		return nil, err
	}

	// k mod 2 is exactly 0.0 or 1.0; strict < 0.5 reads off the parity.
	evenSteps := numSteps.Mod(2).LtScalar(0.5)
	return tensor.Where(evenSteps, pointEven, pointOdd)
}
