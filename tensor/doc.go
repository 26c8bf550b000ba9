// Package tensor provides batched numeric arrays and the small set of
// vectorized kernels the geometry packages are built on.
//
// 🚀 What is tensor?
//
//	A Tensor is a flat row-major []float64 plus a shape. The trailing
//	dimensions are a point's intrinsic shape (e.g. (2,) or (n,n)); any
//	leading dimensions are batch dimensions, broadcast NumPy-style
//	(right-aligned, size-1 axes stretch). A Mask is its boolean twin,
//	produced by comparisons and consumed by combinators and Where.
//
// ✨ Key features:
//   - elementwise arithmetic with broadcasting (Add, Sub, Mul, Div, Where)
//   - unary kernels: Abs, Sqrt, Exp, Log, Floor, Mod, Tanh, Arctanh
//   - reductions along the trailing axis: SumLast, Dot, AllLast
//   - shape surgery: Reshape, ExpandDims, Stack0, StackLast, ConcatLast,
//     FlipLast, BroadcastTo, BroadcastArrays
//   - index-driven kernels: GatherLast, ScatterLast, TakeAlong0, ArgMin0,
//     FromSparse — index lists are computed once per structural parameter
//     and reused across the batch
//
// Hot loops route through github.com/viterin/vek (SIMD on amd64/arm64,
// scalar fallback elsewhere); only kernels vek does not ship (floored
// modulo, hyperbolics, comparisons) fall back to plain Go loops.
//
// Determinism & Performance:
//   - All kernels are pure: inputs are never mutated, outputs are fresh.
//   - Fixed loop orders; ties in ArgMin0 resolve to the first minimal index.
//   - One allocation per result tensor; broadcasting materializes operands.
//
// AI-Hints:
//   - Keep index lists (GatherLast/ScatterLast) precomputed per matrix size
//     and reuse them across calls; building them per call wastes the hot path.
//   - Prefer SumLast/Dot over manual loops: they dispatch to vek.Sum/vek.Dot
//     per contiguous block.
package tensor
