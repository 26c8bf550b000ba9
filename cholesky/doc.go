// Package cholesky implements the Cholesky space — n×n lower-triangular
// matrices with strictly positive diagonal — and its decomposed closed-form
// metric.
//
// 🚀 What is the decomposition?
//
//	Every tangent vector splits into two orthogonal components that
//	transform under different group actions:
//	  • the strictly-lower-triangular part, carried by a flat Euclidean
//	    geometry (adds and subtracts directly)
//	  • the diagonal part, carried by a log-Euclidean geometry weighted by
//	    the inverse square of the base diagonal (multiplies through exp,
//	    so the diagonal never leaves positive territory)
//	The two inner products add; exp, log and squared distance recombine
//	the independently transformed parts.
//
// ✨ Key formulas (D = diagonal, SL = strictly lower):
//
//	inner(u, v; L) = Σ D(u)·D(v)/D(L)² + ⟨SL(u), SL(v)⟩
//	exp(v; L)      = SL(L) + SL(v) + D(L)·e^{D(v)/D(L)}
//	log(P; L)      = SL(P) - SL(L) + D(L)·ln(D(P)/D(L))
//	d²(A, B)       = ‖ln D(A) - ln D(B)‖² + ‖SL(A) - SL(B)‖²_F
//
// Edge policy: a non-positive diagonal is a precondition violation, not
// checked defensively — the division/logarithm propagates NaN/Inf from the
// arithmetic layer, and callers validate via Belongs when they need a
// guarantee. The space is geodesically complete: the injectivity radius is
// +Inf everywhere.
//
// Index lists for diagonal/strictly-lower extraction are computed once per
// matrix size n at construction and reused across the batch.
package cholesky
