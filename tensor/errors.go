// Package tensor: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the tensor
// package. All kernels return these sentinels and tests check them via
// errors.Is. No kernel panics on user-triggered error conditions.

package tensor

import "errors"

var (
	// ErrBadShape is returned when a requested shape has a non-positive axis.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrShapeMismatch indicates incompatible shapes between operands where
	// identical shapes are required (Stack, Concat, Mask combinators).
	ErrShapeMismatch = errors.New("tensor: shape mismatch")

	// ErrNotBroadcastable indicates two shapes that cannot be broadcast to a
	// common shape under the right-aligned, size-1-stretches rule.
	ErrNotBroadcastable = errors.New("tensor: shapes are not broadcastable")

	// ErrBadAxis indicates an axis index outside the valid range.
	ErrBadAxis = errors.New("tensor: axis out of range")

	// ErrBadIndex indicates an element or gather/scatter index out of bounds.
	ErrBadIndex = errors.New("tensor: index out of range")

	// ErrBadSparse indicates inconsistent (indices, values, shape) triples in
	// sparse-to-dense construction.
	ErrBadSparse = errors.New("tensor: inconsistent sparse data")

	// ErrEmptyInput indicates that at least one operand is required.
	ErrEmptyInput = errors.New("tensor: empty input")
)
