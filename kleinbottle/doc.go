// Package kleinbottle implements the Klein bottle — the unit square
// [0,1]² with its vertical edges glued straight and its horizontal edges
// glued with an orientation flip — as a quotient manifold with a flat
// metric and closed-form exp/log maps.
//
// 🚀 What is the quotient structure?
//
//	Every point of ℝ² represents a point of the Klein bottle through the
//	equivalence relation
//
//	  (x₁,y₁) ~ (x₂,y₂)  ⇔  y₁-y₂ ∈ ℤ and x₁-x₂ ∈ 2ℤ
//	                  or  y₁+y₂ ∈ ℤ and x₁-x₂ ∈ ℤ\2ℤ,
//
//	i.e. walking an even number of unit squares in x keeps y, walking an
//	odd number mirrors it. Regularize reduces any ambient point to its
//	canonical representative in [0,1]²; Equivalent tests the relation
//	directly, consistently with what Regularize maps both points to.
//
// ✨ Key features:
//   - Regularize: idempotent, elementwise parity select (no per-element
//     control flow), so it vectorizes uniformly over a batch
//   - Equivalent: both legs tested via closeness-to-{0, modulus} after a
//     modulo, covering both ends of the wrap-around tolerance band
//   - Exp: regularize → add → regularize; the base point broadcasts up to
//     the tangent batch shape, never the reverse
//   - Log: exhaustive search over the 9 translated/mirrored representatives
//     of the target in the 3×3 block of neighboring fundamental domains —
//     an explicit candidate axis plus argmin, always sufficient under this
//     quotient's geometry
//   - Injectivity radius: constant 0.5 (half the smallest wrap period)
//
// Performance:
//
//   - Regularize/Equivalent: O(batch) elementwise
//   - Log: O(9·batch) candidate distances + argmin
package kleinbottle
