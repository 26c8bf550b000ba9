package manifold

import (
	"errors"

	"github.com/katalvlaran/riemann/tensor"
)

// Atol is the default absolute tolerance for membership, tangency and
// equivalence tests on float64 data.
const Atol = 1e-12

// ErrNotTangent indicates that a vector failed a tangency precondition.
// It is a programming error on the caller's side and must not be retried.
var ErrNotTangent = errors.New("manifold: vector is not tangent at base point")

// Manifold is a constraint set of array-valued points. Points carry the
// manifold's Shape as trailing dimensions plus any leading batch dimensions;
// boolean results carry the batch shape.
type Manifold interface {
	// Dim returns the manifold (intrinsic) dimension.
	Dim() int

	// Shape returns the trailing shape of a single point, e.g. (2,) or (n, n).
	Shape() []int

	// PointNDim returns len(Shape()).
	PointNDim() int

	// Belongs tests membership per batch element within tolerance atol.
	// A mismatched trailing shape yields an all-false mask, not an error.
	Belongs(point *tensor.Tensor, atol float64) (*tensor.Mask, error)

	// IsTangent tests whether vector is tangent at basePoint, per batch
	// element, within tolerance atol.
	IsTangent(vector, basePoint *tensor.Tensor, atol float64) (*tensor.Mask, error)

	// ToTangent projects vector onto the tangent space at basePoint.
	// Returns ErrNotTangent when the vector cannot be interpreted as tangent.
	ToTangent(vector, basePoint *tensor.Tensor) (*tensor.Tensor, error)

	// Projection maps an ambient point onto the manifold.
	Projection(point *tensor.Tensor) (*tensor.Tensor, error)

	// RandomPoint samples n points on the manifold (batch shape (n,) for
	// n > 1, no batch dimension for n == 1).
	RandomPoint(n int) (*tensor.Tensor, error)
}

// Metric is a Riemannian metric on the manifold returned by Space. All
// operations are pure functions of (space, points, vectors).
type Metric interface {
	// Space returns the manifold this metric equips (non-owning reference).
	Space() Manifold

	// InnerProduct computes ⟨a, b⟩ at basePoint, one value per batch element.
	InnerProduct(a, b, basePoint *tensor.Tensor) (*tensor.Tensor, error)

	// Exp walks from basePoint along tangentVec for unit time.
	Exp(tangentVec, basePoint *tensor.Tensor) (*tensor.Tensor, error)

	// Log finds the tangent vector at basePoint whose Exp reaches point.
	Log(point, basePoint *tensor.Tensor) (*tensor.Tensor, error)

	// SquaredDist computes the squared geodesic distance per batch element.
	SquaredDist(a, b *tensor.Tensor) (*tensor.Tensor, error)

	// Dist computes the geodesic distance per batch element.
	Dist(a, b *tensor.Tensor) (*tensor.Tensor, error)

	// InjectivityRadius is the largest radius within which Exp is a
	// diffeomorphism around basePoint.
	InjectivityRadius(basePoint *tensor.Tensor) (*tensor.Tensor, error)
}
