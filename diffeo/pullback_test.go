package diffeo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/riemann/diffeo"
	"github.com/katalvlaran/riemann/euclidean"
	"github.com/katalvlaran/riemann/tensor"
)

// scalingDiffeo is the linear map x ↦ c·x on a flat space: small enough to
// verify the pullback plumbing by hand.
type scalingDiffeo struct {
	c float64
}

func (d scalingDiffeo) Diffeomorphism(basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return basePoint.Scale(d.c), nil
}

func (d scalingDiffeo) InverseDiffeomorphism(imagePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return imagePoint.Scale(1 / d.c), nil
}

func (d scalingDiffeo) TangentDiffeomorphism(tangentVec, basePoint, imagePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return tangentVec.Scale(d.c), nil
}

func (d scalingDiffeo) InverseTangentDiffeomorphism(imageTangentVec, imagePoint, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return imageTangentVec.Scale(1 / d.c), nil
}

// newScaledLine builds the 1-ish-dimensional fixture: a flat 2-space pulled
// back through x ↦ 3x.
func newScaledLine(t *testing.T) *diffeo.PullbackMetric {
	t.Helper()
	space, err := euclidean.New(2)
	require.NoError(t, err)
	image, err := euclidean.New(2)
	require.NoError(t, err)
	return diffeo.NewPullbackMetric(space, scalingDiffeo{c: 3}, image.Metric())
}

// TestPullback_DistScalesWithTheMap verifies distance delegation: pulling
// the flat metric back through x ↦ 3x multiplies every distance by 3.
func TestPullback_DistScalesWithTheMap(t *testing.T) {
	m := newScaledLine(t)

	a, err := tensor.FromSlice([]float64{0, 0}, 2)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float64{1, 0}, 2)
	require.NoError(t, err)

	d, err := m.Dist(a, b)
	require.NoError(t, err)
	got, err := d.Item()
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, 1e-12)

	sq, err := m.SquaredDist(a, b)
	require.NoError(t, err)
	gotSq, err := sq.Item()
	require.NoError(t, err)
	assert.InDelta(t, 9.0, gotSq, 1e-12)
}

// TestPullback_InnerProductScalesQuadratically checks the tangent maps are
// applied to both arguments.
func TestPullback_InnerProductScalesQuadratically(t *testing.T) {
	m := newScaledLine(t)

	u, err := tensor.FromSlice([]float64{1, 2}, 2)
	require.NoError(t, err)
	v, err := tensor.FromSlice([]float64{2, -1}, 2)
	require.NoError(t, err)
	base, err := tensor.FromSlice([]float64{0, 0}, 2)
	require.NoError(t, err)

	ip, err := m.InnerProduct(u, v, base)
	require.NoError(t, err)
	got, err := ip.Item()
	require.NoError(t, err)
	// ⟨3u, 3v⟩ = 9·⟨u, v⟩ = 9·0 = 0, then a correlated pair.
	assert.InDelta(t, 0.0, got, 1e-12)

	ip, err = m.InnerProduct(u, u, base)
	require.NoError(t, err)
	got, err = ip.Item()
	require.NoError(t, err)
	assert.InDelta(t, 45.0, got, 1e-12, "9·(1+4)")
}

// TestPullback_ExpLogRoundTrip verifies that Exp maps back through the
// inverse diffeo and that Log inverts it.
func TestPullback_ExpLogRoundTrip(t *testing.T) {
	m := newScaledLine(t)

	base, err := tensor.FromSlice([]float64{1, 1}, 2)
	require.NoError(t, err)
	v, err := tensor.FromSlice([]float64{0.5, -0.25}, 2)
	require.NoError(t, err)

	end, err := m.Exp(v, base)
	require.NoError(t, err)
	// The map is linear, so the pullback geodesic is the straight line.
	assert.InDelta(t, 1.5, end.Data()[0], 1e-12)
	assert.InDelta(t, 0.75, end.Data()[1], 1e-12)

	back, err := m.Log(end, base)
	require.NoError(t, err)
	closeMask, err := tensor.IsClose(back, v, 1e-12)
	require.NoError(t, err)
	assert.True(t, closeMask.All(), "Log must invert Exp through the diffeo")
}

// TestPullback_Accessors checks the wiring getters.
func TestPullback_Accessors(t *testing.T) {
	space, err := euclidean.New(2)
	require.NoError(t, err)
	image, err := euclidean.New(2)
	require.NoError(t, err)
	d := scalingDiffeo{c: 2}
	m := diffeo.NewPullbackMetric(space, d, image.Metric())

	assert.Equal(t, space, m.Space())
	assert.Equal(t, image.Metric(), m.ImageMetric())
	assert.Equal(t, d, m.Diffeo())
}
