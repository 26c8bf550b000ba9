package kleinbottle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/katalvlaran/riemann/kleinbottle"
	"github.com/katalvlaran/riemann/manifold"
	"github.com/katalvlaran/riemann/tensor"
)

// point2 is a test shorthand for a single (2,) point.
func point2(t *testing.T, x, y float64) *tensor.Tensor {
	t.Helper()
	p, err := tensor.FromSlice([]float64{x, y}, 2)
	require.NoError(t, err)
	return p
}

// TestRegularize_OrientationFlip pins the canonical scenario: one unit step
// in x flips the y-orientation, so (1.5, 0.3) lands on (0.5, 0.7).
func TestRegularize_OrientationFlip(t *testing.T) {
	kb := kleinbottle.New()

	got, err := kb.Regularize(point2(t, 1.5, 0.3))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got.Data()[0], 1e-12)
	assert.InDelta(t, 0.7, got.Data()[1], 1e-12)
}

// TestRegularize_EvenSteps checks that an even number of x-steps keeps the
// y-coordinate, including for negative x.
func TestRegularize_EvenSteps(t *testing.T) {
	kb := kleinbottle.New()

	got, err := kb.Regularize(point2(t, 2.25, 0.3))
	require.NoError(t, err)
	assert.InDelta(t, 0.25, got.Data()[0], 1e-12)
	assert.InDelta(t, 0.3, got.Data()[1], 1e-12)

	// x = -0.1: one step (⌊-0.1⌋ = -1), odd, so y flips.
	got, err = kb.Regularize(point2(t, -0.1, 0.3))
	require.NoError(t, err)
	assert.InDelta(t, 0.9, got.Data()[0], 1e-12)
	assert.InDelta(t, 0.7, got.Data()[1], 1e-12)
}

// TestRegularize_Batched verifies the parity select is per batch element.
func TestRegularize_Batched(t *testing.T) {
	kb := kleinbottle.New()
	pts, err := tensor.FromSlice([]float64{
		1.5, 0.3,
		0.25, 0.3,
	}, 2, 2)
	require.NoError(t, err)

	got, err := kb.Regularize(pts)
	require.NoError(t, err)
	want := []float64{0.5, 0.7, 0.25, 0.3}
	for i, w := range want {
		assert.InDelta(t, w, got.Data()[i], 1e-12, "batched regularize at flat index %d", i)
	}
}

// TestRegularize_IdempotentAndBelongs checks that regularized points are
// fixed points of Regularize and always members of the fundamental domain.
func TestRegularize_IdempotentAndBelongs(t *testing.T) {
	kb := kleinbottle.NewWithSource(rand.NewSource(7))

	raw, err := kb.RandomPoint(16)
	require.NoError(t, err)
	// Push the samples far outside the fundamental domain.
	ambient := raw.Scale(13).Shift(-6.5)

	once, err := kb.Regularize(ambient)
	require.NoError(t, err)
	twice, err := kb.Regularize(once)
	require.NoError(t, err)

	closeMask, err := tensor.IsClose(once, twice, 1e-12)
	require.NoError(t, err)
	assert.True(t, closeMask.All(), "regularize must be idempotent")

	in, err := kb.Belongs(once, manifold.Atol)
	require.NoError(t, err)
	assert.True(t, in.All(), "regularized points must belong to [0,1]²")
}

// TestBelongs_ShapeMismatchIsFalse checks the all-false mask (not an error)
// for a wrong trailing shape.
func TestBelongs_ShapeMismatchIsFalse(t *testing.T) {
	kb := kleinbottle.New()
	bad, err := tensor.FromSlice([]float64{0.5, 0.5, 0.5}, 3)
	require.NoError(t, err)

	in, err := kb.Belongs(bad, manifold.Atol)
	require.NoError(t, err)
	assert.False(t, in.Any())
}

// TestEquivalent_CoversBothLegs walks the identification rules: even
// x-difference with integer y-difference, odd x-difference with integer
// y-sum, and the regression pair that satisfies neither.
func TestEquivalent_CoversBothLegs(t *testing.T) {
	kb := kleinbottle.New()

	cases := []struct {
		name string
		a, b [2]float64
		want bool
	}{
		{"even x-shift", [2]float64{0, 0}, [2]float64{2, 0}, true},
		{"odd x-shift with mirrored y", [2]float64{0, 0.3}, [2]float64{1, 0.7}, true},
		{"odd x-shift, y-sum not integer", [2]float64{0, 0}, [2]float64{1, 0.5}, false},
		{"same representative", [2]float64{0.4, 0.9}, [2]float64{0.4, 0.9}, true},
		{"plain distinct points", [2]float64{0.1, 0.2}, [2]float64{0.5, 0.6}, false},
		{"wrap in y", [2]float64{0.3, 0}, [2]float64{0.3, 1}, true},
	}
	for _, tc := range cases {
		eq, err := kb.Equivalent(point2(t, tc.a[0], tc.a[1]), point2(t, tc.b[0], tc.b[1]), 1e-9)
		require.NoError(t, err, tc.name)
		got, err := eq.Item()
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}
}

// TestEquivalent_RegularizedFormsAgree checks that an ambient point is
// always equivalent to its canonical representative.
func TestEquivalent_RegularizedFormsAgree(t *testing.T) {
	kb := kleinbottle.NewWithSource(rand.NewSource(21))

	raw, err := kb.RandomPoint(8)
	require.NoError(t, err)
	ambient := raw.Scale(9).Shift(-4.5)

	canonical, err := kb.Regularize(ambient)
	require.NoError(t, err)
	eq, err := kb.Equivalent(ambient, canonical, 1e-9)
	require.NoError(t, err)
	assert.True(t, eq.All(), "a point and its regularized form represent the same class")
}

// TestToTangent_RejectsWrongShape checks the sentinel on malformed vectors.
func TestToTangent_RejectsWrongShape(t *testing.T) {
	kb := kleinbottle.New()
	bad, err := tensor.FromSlice([]float64{1, 2, 3}, 3)
	require.NoError(t, err)

	_, err = kb.ToTangent(bad, point2(t, 0.5, 0.5))
	assert.ErrorIs(t, err, manifold.ErrNotTangent)
}

// TestRandomPoint_ShapeAndMembership checks the sampling contract.
func TestRandomPoint_ShapeAndMembership(t *testing.T) {
	kb := kleinbottle.NewWithSource(rand.NewSource(3))

	one, err := kb.RandomPoint(1)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, one.Shape(), "a single sample has no batch axis")

	many, err := kb.RandomPoint(32)
	require.NoError(t, err)
	assert.Equal(t, []int{32, 2}, many.Shape())

	in, err := kb.Belongs(many, manifold.Atol)
	require.NoError(t, err)
	assert.True(t, in.All())

	_, err = kb.RandomPoint(0)
	assert.ErrorIs(t, err, tensor.ErrBadShape)
}
