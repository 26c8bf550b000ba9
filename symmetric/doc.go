// Package symmetric implements the vector space of n×n symmetric matrices
// with the flat Frobenius metric.
//
// ✨ Key features:
//   - Membership and projection: Belongs tests symmetry entrywise, Projection
//     symmetrizes an arbitrary square matrix as (A + Aᵀ)/2.
//   - Coordinates: Basis enumerates the standard symmetric basis,
//     BasisRepresentation and MatrixRepresentation convert between matrices
//     and their n(n+1)/2 upper-triangular coordinate vectors.
//   - Flat geometry: Exp and Log are addition and subtraction, distance is
//     the Frobenius norm of the difference.
//   - gonum interop: unbatched points convert to and from mat.SymDense.
//
// All operations are batched: a tensor of shape (..., n, n) is a batch of
// matrices and every operation maps over the leading axes.
package symmetric
