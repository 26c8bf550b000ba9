package diffeo

import (
	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/tensor"
)

// PullbackMetric derives a metric on space from a metric on a diffeomorphic
// image space: every operation maps its arguments forward through the
// diffeo, delegates to the image metric, and maps results back.
type PullbackMetric struct {
	space  manifold.Manifold // non-owning back-reference
	diffeo Diffeo
	image  manifold.Metric // metric of the image space
}

var _ manifold.Metric = (*PullbackMetric)(nil)

// NewPullbackMetric composes a metric on space out of a diffeo into the
// image space of imageMetric. The space is constructed first; the metric
// only keeps references.
func NewPullbackMetric(space manifold.Manifold, d Diffeo, imageMetric manifold.Metric) *PullbackMetric {
	return &PullbackMetric{space: space, diffeo: d, image: imageMetric}
}

// Space returns the manifold this metric equips.
func (m *PullbackMetric) Space() manifold.Manifold { return m.space }

// ImageMetric returns the image-space metric computations delegate to.
func (m *PullbackMetric) ImageMetric() manifold.Metric { return m.image }

// Diffeo returns the change-of-coordinates map.
func (m *PullbackMetric) Diffeo() Diffeo { return m.diffeo }

// InnerProduct maps both tangent vectors forward and delegates to the image
// metric at the image of the base point.
func (m *PullbackMetric) InnerProduct(a, b, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	imagePoint, err := m.diffeo.Diffeomorphism(basePoint)
	if err != nil {
		return nil, err
	}
	imageA, err := m.diffeo.TangentDiffeomorphism(a, basePoint, imagePoint)
	if err != nil {
		return nil, err
	}
	imageB, err := m.diffeo.TangentDiffeomorphism(b, basePoint, imagePoint)
	if err != nil {
		return nil, err
	}
	return m.image.InnerProduct(imageA, imageB, imagePoint)
}

// Exp maps the base point and tangent vector forward, walks the geodesic in
// the image space, and maps the end point back.
func (m *PullbackMetric) Exp(tangentVec, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	imagePoint, err := m.diffeo.Diffeomorphism(basePoint)
	if err != nil {
		return nil, err
	}
	imageVec, err := m.diffeo.TangentDiffeomorphism(tangentVec, basePoint, imagePoint)
	if err != nil {
		return nil, err
	}
	imageExp, err := m.image.Exp(imageVec, imagePoint)
	if err != nil {
		return nil, err
	}
	return m.diffeo.InverseDiffeomorphism(imageExp)
}

// Log maps both points forward, takes the image-space log, and pulls the
// resulting tangent vector back to the base point.
func (m *PullbackMetric) Log(point, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	imagePoint, err := m.diffeo.Diffeomorphism(point)
	if err != nil {
		return nil, err
	}
	imageBase, err := m.diffeo.Diffeomorphism(basePoint)
	if err != nil {
		return nil, err
	}
	imageLog, err := m.image.Log(imagePoint, imageBase)
	if err != nil {
		return nil, err
	}
	return m.diffeo.InverseTangentDiffeomorphism(imageLog, imageBase, basePoint)
}

// SquaredDist maps both points forward and delegates; distances are
// invariant under the change of coordinates, so nothing maps back.
func (m *PullbackMetric) SquaredDist(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	imageA, err := m.diffeo.Diffeomorphism(a)
	if err != nil {
		return nil, err
	}
	imageB, err := m.diffeo.Diffeomorphism(b)
	if err != nil {
		return nil, err
	}
	return m.image.SquaredDist(imageA, imageB)
}

// Dist maps both points forward and delegates.
func (m *PullbackMetric) Dist(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	imageA, err := m.diffeo.Diffeomorphism(a)
	if err != nil {
		return nil, err
	}
	imageB, err := m.diffeo.Diffeomorphism(b)
	if err != nil {
		return nil, err
	}
	return m.image.Dist(imageA, imageB)
}

// InjectivityRadius delegates to the image metric at the image point.
func (m *PullbackMetric) InjectivityRadius(basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	imagePoint, err := m.diffeo.Diffeomorphism(basePoint)
	if err != nil {
		return nil, err
	}
	return m.image.InjectivityRadius(imagePoint)
}
