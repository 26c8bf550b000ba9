// Package riemann is your in-memory toolkit for closed-form Riemannian
// geometry — manifolds, metrics, geodesic maps and distances over batched
// numeric arrays.
//
// 🚀 What is riemann?
//
//	A pure-Go library of geometric primitives with explicit formulas
//	instead of numerical integration:
//		• Manifold & Metric contracts: membership, tangency, projection,
//		  inner products, exp/log maps, distances, injectivity radii
//		• Quotient geometry: the Klein bottle with canonical regularization
//		  and a closest-representative logarithm
//		• Cholesky space: positive lower-triangular matrices under a
//		  decomposed (log-Euclidean diagonal + flat strictly-lower) metric
//		• Diffeomorphisms & pullback metrics: derive a metric on one space
//		  mechanically from a metric on a diffeomorphic image space
//		• Information geometry: Fisher metric on geometric distributions
//
// ✨ Why choose riemann?
//
//   - Closed forms only – every exp/log/distance is an explicit formula
//   - Batch-first – points carry leading batch dimensions, broadcast
//     NumPy-style, and every operation is a pure elementwise/reduction
//     pipeline per batch index
//   - SIMD-backed – flat float64 kernels route through viterin/vek
//   - gonum-friendly – converters for mat.TriDense / mat.SymDense and
//     sampling through stat/distuv
//
// Under the hood, everything is organized under flat subpackages:
//
//	tensor/      — batched arrays, kernels, masks, sparse-to-dense scatter
//	manifold/    — Manifold & Metric contracts + shared helpers
//	kleinbottle/ — the Klein bottle quotient manifold and its flat metric
//	cholesky/    — positive lower-triangular matrices, Cholesky metric
//	euclidean/   — flat space, embedding and pullback image space
//	diffeo/      — Diffeo contract + pullback-metric delegation engine
//	unitrows/    — unit-normed-rows lower-triangular matrices + diffeo
//	symmetric/   — vector space of symmetric matrices, Frobenius metric
//	geometric/   — Fisher geometry of geometric distributions
//
// Quick ASCII example:
//
//	   (0,1) ┌────────┐ (1,1)
//	         │  Klein │         the unit square with its vertical edges
//	         │ bottle │         glued straight and horizontal edges glued
//	   (0,0) └────────┘ (1,0)   with an orientation flip
//
// Dive into each package's doc.go for formulas, complexity notes and
// runnable examples.
//
//	go get github.com/katalvlaran/riemann
package riemann
