// Package unitrows implements the space of n×n positive lower-triangular
// matrices whose rows have unit Euclidean norm, together with the
// diffeomorphism that flattens it onto a product of per-row coordinate
// vectors and the pullback metric derived through that map.
//
// 🚀 The diffeomorphism:
//
//	Row 0 of such a matrix is fixed to (1, 0, …, 0) and carries no free
//	coordinate. For every row i = 1..n-1 the forward map takes the row's
//	entries 0..i reversed and concatenates them, producing a vector of
//	length n(n+1)/2 - 1. The inverse reverses the flattened vector,
//	appends the fixed scalar — 1 for points, 0 for tangent vectors (a
//	tangent row must keep the fixed coordinate's derivative at zero to
//	preserve unit norm to first order) — and scatters the result through
//	the lower-triangular index pattern, one row at a time from the bottom
//	up. This sparse scatter is the only index-driven computation in the
//	package: both index lists depend only on n, are generated once at
//	construction, and are reused across the batch.
//
// The metric is a pullback: every operation maps through the diffeo and
// delegates to the image space's metric (see the diffeo package). The
// default image space is flat; see DESIGN.md for the choice.
package unitrows
