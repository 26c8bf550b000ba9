// Package diffeo provides the diffeomorphism contract and the generic
// pullback-metric engine: machinery to derive a metric on one space
// mechanically from a metric on a diffeomorphic image space.
//
// ⚙️ How it works:
//
//	A Diffeo is a stateless pair of mutually inverse point maps plus their
//	differentials in both directions. A PullbackMetric, given a Diffeo and
//	an image-space metric, implements every metric operation the same way:
//
//	  1. map point(s) forward through Diffeomorphism
//	  2. map tangent vector(s) forward through TangentDiffeomorphism
//	  3. delegate the computation to the image space's metric
//	  4. map any resulting point or vector back through the inverse maps
//
//	No new geometric formulas appear anywhere — this is a pure "change of
//	coordinates" engine. Its correctness rests entirely on the Diffeo
//	satisfying the round-trip invariants (forward∘inverse = identity on
//	both domains) and the tangent maps being linear in the vector argument
//	and mutually inverse at corresponding points.
package diffeo
