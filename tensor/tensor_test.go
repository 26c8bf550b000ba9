package tensor_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/riemann/tensor"
)

// TestFromSlice_ShapeMismatch verifies that data length must equal the
// product of the shape.
func TestFromSlice_ShapeMismatch(t *testing.T) {
	_, err := tensor.FromSlice([]float64{1, 2, 3}, 2, 2)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch, "3 values cannot fill a 2x2 tensor")
}

// TestReshape_Wildcard checks that a single -1 axis is inferred from the
// remaining sizes and that an ambiguous shape errors.
func TestReshape_Wildcard(t *testing.T) {
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	flat, err := x.Reshape(-1, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2}, flat.Shape(), "wildcard axis should infer 3")

	_, err = x.Reshape(-1, -1)
	assert.ErrorIs(t, err, tensor.ErrBadShape, "two wildcards are ambiguous")

	_, err = x.Reshape(4, -1)
	assert.ErrorIs(t, err, tensor.ErrShapeMismatch, "6 elements do not split into rows of 4")
}

// TestAdd_Broadcasting verifies NumPy-style right-aligned broadcasting:
// a (2,2) batch plus a (2,) row.
func TestAdd_Broadcasting(t *testing.T) {
	a, err := tensor.FromSlice([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float64{10, 20}, 2)
	require.NoError(t, err)

	sum, err := tensor.Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, sum.Shape())
	assert.Equal(t, []float64{11, 22, 13, 24}, sum.Data(), "row should add to every batch element")
}

// TestAdd_NotBroadcastable checks that incompatible shapes are rejected.
func TestAdd_NotBroadcastable(t *testing.T) {
	a, err := tensor.FromSlice([]float64{1, 2, 3}, 3)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float64{1, 2}, 2)
	require.NoError(t, err)

	_, err = tensor.Add(a, b)
	assert.ErrorIs(t, err, tensor.ErrNotBroadcastable)
}

// TestBroadcastTo_StretchesOnes verifies that size-1 axes stretch and other
// mismatches error.
func TestBroadcastTo_StretchesOnes(t *testing.T) {
	col, err := tensor.FromSlice([]float64{1, 2}, 2, 1)
	require.NoError(t, err)

	wide, err := col.BroadcastTo(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 1, 2, 2, 2}, wide.Data(), "column should repeat across the new axis")

	_, err = col.BroadcastTo(3, 1)
	assert.ErrorIs(t, err, tensor.ErrNotBroadcastable)
}

// TestMod_FlooredSemantics pins the floored-modulo convention: the result
// has the sign of the divisor, so Mod(-0.3, 1) is 0.7, not -0.3.
func TestMod_FlooredSemantics(t *testing.T) {
	x, err := tensor.FromSlice([]float64{-0.3, 0.3, -1.0, 2.5}, 4)
	require.NoError(t, err)

	m := x.Mod(1)
	want := []float64{0.7, 0.3, 0.0, 0.5}
	for i, w := range want {
		assert.InDelta(t, w, m.Data()[i], 1e-12, "floored modulo at index %d", i)
	}
}

// TestExpLog_ElementwiseKernels pins the exp and log kernels against
// math.Exp and math.Log and checks domain-error propagation for
// non-positive logs.
func TestExpLog_ElementwiseKernels(t *testing.T) {
	values := []float64{-1, 0, 0.5, 2}
	x, err := tensor.FromSlice(values, 4)
	require.NoError(t, err)

	e := x.Exp()
	for i, v := range values {
		assert.InDelta(t, math.Exp(v), e.Data()[i], 1e-15, "exp at index %d", i)
	}

	back := e.Log()
	for i, v := range values {
		assert.InDelta(t, v, back.Data()[i], 1e-12, "log should invert exp at index %d", i)
	}

	bad, err := tensor.FromSlice([]float64{0, -1}, 2)
	require.NoError(t, err)
	lg := bad.Log()
	assert.True(t, math.IsInf(lg.Data()[0], -1), "log 0 propagates -Inf")
	assert.True(t, math.IsNaN(lg.Data()[1]), "log of a negative propagates NaN")
}

// TestSumLast_ReducesTrailingAxis checks the reduction shape and values.
func TestSumLast_ReducesTrailingAxis(t *testing.T) {
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4, 5, 6}, 2, 3)
	require.NoError(t, err)

	s := x.SumLast()
	assert.Equal(t, []int{2}, s.Shape())
	assert.Equal(t, []float64{6, 15}, s.Data())
}

// TestDot_BatchedInnerProduct checks the per-row inner product with a
// broadcast operand.
func TestDot_BatchedInnerProduct(t *testing.T) {
	a, err := tensor.FromSlice([]float64{1, 2, 3, 4}, 2, 2)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float64{1, -1}, 2)
	require.NoError(t, err)

	d, err := tensor.Dot(a, b)
	require.NoError(t, err)
	assert.Equal(t, []float64{-1, -1}, d.Data(), "dot should broadcast b across the batch")
}

// TestGatherScatter_RoundTrip verifies that scattering the gathered entries
// through the same index list restores them at their original offsets.
func TestGatherScatter_RoundTrip(t *testing.T) {
	x, err := tensor.FromSlice([]float64{1, 2, 3, 4}, 4)
	require.NoError(t, err)

	idx := []int{2, 0}
	g, err := x.GatherLast(idx)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1}, g.Data())

	s, err := g.ScatterLast(idx, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 3, 0}, s.Data(), "unlisted positions stay zero")
}

// TestGatherLast_BadIndex checks index validation against the trailing axis.
func TestGatherLast_BadIndex(t *testing.T) {
	x, err := tensor.FromSlice([]float64{1, 2}, 2)
	require.NoError(t, err)

	_, err = x.GatherLast([]int{2})
	assert.ErrorIs(t, err, tensor.ErrBadIndex)
}

// TestArgMin0_FirstMinTieBreak pins the tie-break: equal minima resolve to
// the smallest candidate index.
func TestArgMin0_FirstMinTieBreak(t *testing.T) {
	// Columns: [3,1,1] and [2,5,0].
	x, err := tensor.FromSlice([]float64{3, 2, 1, 5, 1, 0}, 3, 2)
	require.NoError(t, err)

	idx, err := x.ArgMin0()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, idx, "tie in column 0 must pick candidate 1, not 2")
}

// TestTakeAlong0_SelectsPerColumn verifies candidate selection with a
// trailing point axis.
func TestTakeAlong0_SelectsPerColumn(t *testing.T) {
	// Shape (2, 2, 2): two candidates, two batch elements, 2-vectors.
	x, err := tensor.FromSlice([]float64{
		1, 2, 3, 4, // candidate 0
		5, 6, 7, 8, // candidate 1
	}, 2, 2, 2)
	require.NoError(t, err)

	got, err := x.TakeAlong0([]int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, got.Shape())
	assert.Equal(t, []float64{5, 6, 3, 4}, got.Data())
}

// TestStack0_AndFlipLast covers candidate stacking and trailing-axis
// reversal.
func TestStack0_AndFlipLast(t *testing.T) {
	a, err := tensor.FromSlice([]float64{1, 2}, 2)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float64{3, 4}, 2)
	require.NoError(t, err)

	s, err := tensor.Stack0([]*tensor.Tensor{a, b})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, s.Shape())
	assert.Equal(t, []float64{1, 2, 3, 4}, s.Data())

	assert.Equal(t, []float64{2, 1, 4, 3}, s.FlipLast().Data())
}

// TestConcatLast_JoinsTrailingAxes checks concatenation of unequal trailing
// widths over a shared batch.
func TestConcatLast_JoinsTrailingAxes(t *testing.T) {
	a, err := tensor.FromSlice([]float64{1, 2, 5, 6}, 2, 2)
	require.NoError(t, err)
	b, err := tensor.FromSlice([]float64{3, 7}, 2, 1)
	require.NoError(t, err)

	c, err := tensor.ConcatLast([]*tensor.Tensor{a, b})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, c.Shape())
	assert.Equal(t, []float64{1, 2, 3, 5, 6, 7}, c.Data())
}

// TestFromSparse_ScattersEntries verifies the sparse constructor and its
// index validation.
func TestFromSparse_ScattersEntries(t *testing.T) {
	got, err := tensor.FromSparse(
		[][]int{{0, 1}, {1, 0}},
		[]float64{5, 7},
		[]int{2, 2},
	)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 5, 7, 0}, got.Data())

	_, err = tensor.FromSparse([][]int{{2, 0}}, []float64{1}, []int{2, 2})
	assert.ErrorIs(t, err, tensor.ErrBadSparse, "out-of-range entry must be rejected")

	_, err = tensor.FromSparse([][]int{{0, 0}}, []float64{1, 2}, []int{2, 2})
	assert.ErrorIs(t, err, tensor.ErrBadSparse, "index/value length mismatch must be rejected")
}

// TestTrilTriuIndices pins the row-major enumeration order used by the
// matrix spaces.
func TestTrilTriuIndices(t *testing.T) {
	tril := tensor.TrilIndices(3, -1)
	assert.Equal(t, [][2]int{{1, 0}, {2, 0}, {2, 1}}, tril, "strict lower triangle of a 3x3")

	triu := tensor.TriuIndices(2, 0)
	assert.Equal(t, [][2]int{{0, 0}, {0, 1}, {1, 1}}, triu, "upper triangle incl. diagonal of a 2x2")
}
