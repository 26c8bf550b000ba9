package unitrows_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/tensor"
	"github.com/katalvlaran/riemann/unitrows"
)

// TestNewRowDiffeo_Validation checks the size bound and derived image
// dimension.
func TestNewRowDiffeo_Validation(t *testing.T) {
	_, err := unitrows.NewRowDiffeo(1)
	assert.ErrorIs(t, err, tensor.ErrBadShape, "n = 1 has no free coordinate")

	d, err := unitrows.NewRowDiffeo(3)
	require.NoError(t, err)
	assert.Equal(t, 5, d.ImageDim(), "n(n+1)/2 - 1")
}

// TestRowDiffeo_ForwardOrder pins the coordinate order: reversed row
// prefixes, rows top to bottom.
func TestRowDiffeo_ForwardOrder(t *testing.T) {
	d, err := unitrows.NewRowDiffeo(3)
	require.NoError(t, err)

	p, err := tensor.FromSlice([]float64{
		1, 0, 0,
		21, 22, 0,
		31, 32, 33,
	}, 3, 3)
	require.NoError(t, err)

	vec, err := d.Diffeomorphism(p)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, vec.Shape())
	assert.Equal(t, []float64{22, 21, 33, 32, 31}, vec.Data())
}

// TestRowDiffeo_InverseScatter pins the inverse: reversal, the appended
// fixed entry, and the bottom-up scatter into the lower triangle.
func TestRowDiffeo_InverseScatter(t *testing.T) {
	d, err := unitrows.NewRowDiffeo(2)
	require.NoError(t, err)

	vec, err := tensor.FromSlice([]float64{22, 21}, 2)
	require.NoError(t, err)

	p, err := d.InverseDiffeomorphism(vec)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 21, 22}, p.Data(), "points restore the fixed 1 at (0,0)")

	v, err := d.InverseTangentDiffeomorphism(vec, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 21, 22}, v.Data(), "tangent vectors keep (0,0) at zero")
}

// TestRowDiffeo_RoundTrip checks both composition orders on batched input.
func TestRowDiffeo_RoundTrip(t *testing.T) {
	d, err := unitrows.NewRowDiffeo(3)
	require.NoError(t, err)

	vecs, err := tensor.FromSlice([]float64{
		1, 2, 3, 4, 5,
		-1, 0.5, 2, -2, 0,
	}, 2, 5)
	require.NoError(t, err)

	pts, err := d.InverseDiffeomorphism(vecs)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 3}, pts.Shape())

	back, err := d.Diffeomorphism(pts)
	require.NoError(t, err)
	assert.Equal(t, vecs.Data(), back.Data(), "forward must invert the reconstruction")
}

// TestSpace_BelongsRequiresUnitRows walks membership: a member, a
// lower-triangular matrix with a long row, and an orientation-breaking
// negative diagonal.
func TestSpace_BelongsRequiresUnitRows(t *testing.T) {
	s, err := unitrows.New(2)
	require.NoError(t, err)

	c := math.Sqrt(0.5)
	member, err := tensor.FromSlice([]float64{1, 0, c, c}, 2, 2)
	require.NoError(t, err)
	in, err := s.Belongs(member, 1e-9)
	require.NoError(t, err)
	ok, err := in.Item()
	require.NoError(t, err)
	assert.True(t, ok)

	longRow, err := tensor.FromSlice([]float64{1, 0, 1, 1}, 2, 2)
	require.NoError(t, err)
	in, err = s.Belongs(longRow, 1e-9)
	require.NoError(t, err)
	ok, err = in.Item()
	require.NoError(t, err)
	assert.False(t, ok, "row norms must be 1")

	negDiag, err := tensor.FromSlice([]float64{-1, 0, 0, 1}, 2, 2)
	require.NoError(t, err)
	in, err = s.Belongs(negDiag, 1e-9)
	require.NoError(t, err)
	ok, err = in.Item()
	require.NoError(t, err)
	assert.False(t, ok, "diagonal must stay positive")
}

// TestSpace_ProjectionNormalizesRows checks that projection produces
// members and keeps row directions.
func TestSpace_ProjectionNormalizesRows(t *testing.T) {
	s, err := unitrows.New(3)
	require.NoError(t, err)

	raw, err := tensor.FromSlice([]float64{
		2, 5, -1,
		3, 4, 9,
		1, 2, 2,
	}, 3, 3)
	require.NoError(t, err)

	got, err := s.Projection(raw)
	require.NoError(t, err)
	in, err := s.Belongs(got, 1e-9)
	require.NoError(t, err)
	ok, err := in.Item()
	require.NoError(t, err)
	assert.True(t, ok)

	// Row 2 was already lower triangular: (1,2,2)/3.
	d := got.Data()
	assert.InDelta(t, 1.0/3, d[6], 1e-12)
	assert.InDelta(t, 2.0/3, d[7], 1e-12)
	assert.InDelta(t, 2.0/3, d[8], 1e-12)
}

// TestSpace_ToTangentOrthogonalizesRows checks the per-row radial removal
// and that results pass IsTangent.
func TestSpace_ToTangentOrthogonalizesRows(t *testing.T) {
	s, err := unitrows.NewWithSource(3, rand.NewSource(19))
	require.NoError(t, err)

	base, err := s.RandomPoint(6)
	require.NoError(t, err)
	raw, err := tensor.FromSlice([]float64{
		0.3, 0.9, 0.1,
		-1, 2, 0.5,
		0.7, -0.2, 1,
	}, 3, 3)
	require.NoError(t, err)

	vec, err := s.ToTangent(raw, base)
	require.NoError(t, err)
	isT, err := s.IsTangent(vec, base, 1e-9)
	require.NoError(t, err)
	assert.True(t, isT.All(), "projected vectors are tangent at every base point")
}

// TestSpace_MetricRoundTrip exercises the pullback metric end to end on
// seeded members.
func TestSpace_MetricRoundTrip(t *testing.T) {
	s, err := unitrows.NewWithSource(3, rand.NewSource(23))
	require.NoError(t, err)
	m := s.Metric()

	a, err := s.RandomPoint(10)
	require.NoError(t, err)
	b, err := s.RandomPoint(10)
	require.NoError(t, err)

	log, err := m.Log(b, a)
	require.NoError(t, err)
	back, err := m.Exp(log, a)
	require.NoError(t, err)

	closeMask, err := tensor.IsClose(back, b, 1e-9)
	require.NoError(t, err)
	assert.True(t, closeMask.All(), "Exp(Log(b, a), a) must restore b")

	ab, err := m.SquaredDist(a, b)
	require.NoError(t, err)
	ba, err := m.SquaredDist(b, a)
	require.NoError(t, err)
	sym, err := tensor.IsClose(ab, ba, 1e-12)
	require.NoError(t, err)
	assert.True(t, sym.All())
}

// TestSpace_RandomPointBelongs checks the sampling contract.
func TestSpace_RandomPointBelongs(t *testing.T) {
	s, err := unitrows.NewWithSource(4, rand.NewSource(31))
	require.NoError(t, err)

	pts, err := s.RandomPoint(16)
	require.NoError(t, err)
	assert.Equal(t, []int{16, 4, 4}, pts.Shape())

	in, err := s.Belongs(pts, manifold.Atol)
	require.NoError(t, err)
	assert.True(t, in.All())

	assert.Equal(t, 10, s.Dim())
}
