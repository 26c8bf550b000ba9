// Package euclidean implements flat d-dimensional space with the standard
// inner product. It is the trivial reference geometry of the module: every
// array of the right trailing shape belongs, exp is addition, log is
// subtraction, and distance is the Euclidean distance.
//
// Other packages lean on it in two roles:
//   - as an embedding space for open subsets (geometric distributions)
//   - as a pullback image space for diffeomorphism-derived metrics
package euclidean
