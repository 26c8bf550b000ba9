// Package manifold defines the contracts every geometry in this module
// implements: Manifold (a constrained subset of batched array points) and
// Metric (an inner product on tangent vectors inducing geodesic maps and
// distances), plus the shared helpers derived from them.
//
// ⚙️ Design:
//
//   - A Manifold is an immutable value describing a constraint set: its
//     manifold dimension, its point shape (the trailing dimensions of any
//     point array), membership and tangency tests, projection and sampling.
//   - A Metric holds a non-owning back-reference to the Manifold it equips;
//     spaces are constructed first and build their default metric in their
//     constructor, so there is no mutual-construction cycle.
//   - Membership and tangency checks are total functions: a wrong trailing
//     shape yields an all-false mask, never an error, so the checks compose
//     inside larger boolean pipelines. The only synchronous precondition
//     error is ErrNotTangent from ToTangent.
//   - Domain errors (log of a non-positive value, division by zero) are not
//     pre-validated on hot paths; they propagate as NaN/Inf and the caller
//     validates via Belongs/IsTangent when it needs a guarantee.
//
// All operations are pure and stateless; batch parallelism is an
// implementation freedom, never a correctness requirement.
package manifold
