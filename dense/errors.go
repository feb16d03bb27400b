// SPDX-License-Identifier: MIT
// Package dense: sentinel error set.
// All public functions return these sentinels (optionally wrapped with %w);
// tests match them with errors.Is.

package dense

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when a requested shape is invalid
	// (no axes, or a negative axis length).
	ErrBadShape = errors.New("dense: invalid shape")

	// ErrOutOfRange indicates that an index is outside its axis bounds, or
	// that the number of indices does not match the array rank.
	ErrOutOfRange = errors.New("dense: index out of range")

	// ErrDimensionMismatch indicates that a data buffer or row set does not
	// match the requested shape.
	ErrDimensionMismatch = errors.New("dense: dimension mismatch")

	// ErrInvalidOrder is returned for a linearization order other than 'C' or 'F'.
	ErrInvalidOrder = errors.New("dense: order must be 'C' or 'F'")
)

// arrayErrorf wraps an error with Array method context and the offending index.
func arrayErrorf(method string, idx []int, err error) error {
	return fmt.Errorf("Array.%s(%v): %w", method, idx, err)
}
