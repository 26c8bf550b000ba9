// Package geometric implements the statistical manifold of geometric
// distributions: the open parameter segment (0, 1) of success probabilities,
// equipped with the Fisher information metric.
//
// 🚀 What lives here?
//
//	A point p parametrizes the distribution P(k) = (1-p)^(k-1)·p over
//	k = 1, 2, …. The Fisher metric on the segment is 1/(p²(1-p)), and the
//	substitution u(p) = artanh(√(1-p)) turns it into (a multiple of) the
//	flat metric, so exp, log, distance, and geodesics all have closed forms
//	in terms of tanh and artanh. No integration or iteration anywhere.
//
// ✨ Key features:
//   - Manifold contract: Belongs, ToTangent, Projection (clamp into the
//     segment), RandomPoint via gonum's distuv.Uniform.
//   - Fisher metric: InnerProduct, MetricMatrix, closed-form Exp/Log,
//     SquaredDist = 4·(artanh√(1-a) − artanh√(1-b))².
//   - Geodesics: GeodesicIVP and GeodesicBVP return closures evaluating the
//     path at arbitrary times.
//   - Statistics: Sample draws from the distribution by inverse transform,
//     PMF returns the probability mass function as a closure.
//
// Points are tensors of shape (..., 1); operations are batched over the
// leading axes.
package geometric
