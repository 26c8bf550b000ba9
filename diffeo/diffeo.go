package diffeo

import "github.com/katalvlaran/riemann/tensor"

// Diffeo is a smooth bijection between two manifolds together with its
// differential (tangent map) in both directions. Implementations carry no
// data besides fixed structural parameters (e.g. a matrix size n) and must
// be stateless: every method is a pure function.
type Diffeo interface {
	// Diffeomorphism maps a base-space point to its image-space point.
	Diffeomorphism(basePoint *tensor.Tensor) (*tensor.Tensor, error)

	// InverseDiffeomorphism maps an image-space point back to base space.
	InverseDiffeomorphism(imagePoint *tensor.Tensor) (*tensor.Tensor, error)

	// TangentDiffeomorphism pushes a tangent vector at basePoint forward to
	// a tangent vector at imagePoint. Either basePoint or imagePoint may be
	// nil when the implementation does not need it (linear maps).
	TangentDiffeomorphism(tangentVec, basePoint, imagePoint *tensor.Tensor) (*tensor.Tensor, error)

	// InverseTangentDiffeomorphism pulls an image tangent vector at
	// imagePoint back to a tangent vector at basePoint.
	InverseTangentDiffeomorphism(imageTangentVec, imagePoint, basePoint *tensor.Tensor) (*tensor.Tensor, error)
}
