package unitrows

import (
	"fmt"

	"github.com/katalvlaran/riemann/diffeo"
	"github.com/katalvlaran/riemann/tensor"
)

// RowDiffeo maps unit-normed-rows positive lower-triangular matrices to the
// concatenation of their reversed row prefixes (rows 1..n-1). It is linear,
// so it is its own differential; the inverse only differs for points and
// tangent vectors in the fixed scalar it appends (1 vs 0).
type RowDiffeo struct {
	n       int
	imgDim  int   // n(n+1)/2 - 1, the image vector length
	fwdIdx  []int // flat offsets into an n*n block: row i entries i..0, rows 1..n-1
	scatter []int // flat offsets for the inverse: tril positions, rows n-1..0
}

var _ diffeo.Diffeo = (*RowDiffeo)(nil)

// NewRowDiffeo builds the diffeo for matrix size n (n ≥ 2; n = 1 leaves no
// free coordinate). Both index lists are fixed by n and reused across calls.
func NewRowDiffeo(n int) (*RowDiffeo, error) {
	if n < 2 {
		return nil, fmt.Errorf("unitrows.NewRowDiffeo: %w", tensor.ErrBadShape)
	}
	d := &RowDiffeo{n: n, imgDim: n*(n+1)/2 - 1}
	for i := 1; i < n; i++ {
		for j := i; j >= 0; j-- {
			d.fwdIdx = append(d.fwdIdx, i*n+j)
		}
	}
	// The reversed image vector plus the appended fixed scalar fills the
	// lower triangle bottom row first, ascending within each row.
	for i := n - 1; i >= 0; i-- {
		for j := 0; j <= i; j++ {
			d.scatter = append(d.scatter, i*n+j)
		}
	}
	return d, nil
}

// N returns the matrix size.
func (d *RowDiffeo) N() int { return d.n }

// ImageDim returns the image vector length n(n+1)/2 - 1.
func (d *RowDiffeo) ImageDim() int { return d.imgDim }

// flatten collapses the trailing (n, n) axes of a batch of matrices.
func (d *RowDiffeo) flatten(t *tensor.Tensor) (*tensor.Tensor, error) {
	shape := t.Shape()
	if len(shape) < 2 || shape[len(shape)-1] != d.n || shape[len(shape)-2] != d.n {
		return nil, fmt.Errorf("unitrows: %w", tensor.ErrShapeMismatch)
	}
	flat := append(shape[:len(shape)-2], d.n*d.n)
	return t.Reshape(flat...)
}

// Diffeomorphism maps (..., n, n) matrices to (..., imgDim) image vectors:
// reversed row prefixes of rows 1..n-1, concatenated.
func (d *RowDiffeo) Diffeomorphism(basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	flat, err := d.flatten(basePoint)
	if err != nil {
		return nil, err
	}
	return flat.GatherLast(d.fwdIdx)
}

// fromImage reconstructs (..., n, n) matrices from (..., imgDim) vectors:
// reverse, append the fixed scalar, scatter through the precomputed lower
// triangular pattern. Positions outside the triangle stay zero.
func (d *RowDiffeo) fromImage(vec *tensor.Tensor, fixed float64) (*tensor.Tensor, error) {
	shape := vec.Shape()
	if len(shape) < 1 || shape[len(shape)-1] != d.imgDim {
		return nil, fmt.Errorf("unitrows: %w", tensor.ErrShapeMismatch)
	}
	flipped := vec.FlipLast()

	// A (..., 1) tensor holding the fixed scalar, shaped off the input.
	first, err := flipped.GatherLast([]int{0})
	if err != nil {
		return nil, err
	}
	first = first.Scale(0).Shift(fixed)

	full, err := tensor.ConcatLast([]*tensor.Tensor{flipped, first})
	if err != nil {
		return nil, err
	}
	block, err := full.ScatterLast(d.scatter, d.n*d.n)
	if err != nil {
		return nil, err
	}
	out := append(shape[:len(shape)-1], d.n, d.n)
	return block.Reshape(out...)
}

// InverseDiffeomorphism reconstructs the matrix with the fixed (0,0) entry
// set to 1.
func (d *RowDiffeo) InverseDiffeomorphism(imagePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return d.fromImage(imagePoint, 1)
}

// TangentDiffeomorphism pushes a tangent vector forward. The map is linear,
// so the differential is the map itself; base and image points are unused.
func (d *RowDiffeo) TangentDiffeomorphism(tangentVec, basePoint, imagePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return d.Diffeomorphism(tangentVec)
}

// InverseTangentDiffeomorphism pulls an image tangent vector back. The fixed
// coordinate's derivative is 0: the (0,0) entry never moves.
func (d *RowDiffeo) InverseTangentDiffeomorphism(imageTangentVec, imagePoint, basePoint *tensor.Tensor) (*tensor.Tensor, error) {
	return d.fromImage(imageTangentVec, 0)
}
