// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//  - Provide a single source of truth for the triplet-store consistency checks.
//  - Build the coerced index arrays first and hand them back; callers swap them
//    into the store only after every check passed (atomic updates).
//
// Note:
//  - The check sequence is fixed: rank → lengths → width → bounds.

package sparse

import (
	"fmt"
	"reflect"
)

// validateTriplets checks a candidate (shape, indices, data) triple and
// returns the index arrays coerced to the store width.
// MAIN DESCRIPTION:
//   - (a) len(indices) must equal the rank of shape.
//   - (b) every index array and the data must share one length (nnz).
//   - (c) the width is re-selected from max(shape) and the arrays' widths; the
//     arrays are coerced to it.
//   - (d) every coordinate must lie in [0, shape[axis]).
//
// Errors:
//   - ErrDimensionMismatch for (a) and (b); ErrOutOfRange for (d), naming the
//     axis and the offending value; ErrIndexOverflow from width selection.
//
// Complexity:
//   - Time O(rank·nnz), Space O(rank·nnz) only when a coercion is needed.
func validateTriplets(shape Shape, indices []IndexArray, nnz int) ([]IndexArray, error) {
	if len(indices) != shape.Rank() {
		return nil, fmt.Errorf("mismatching number of index arrays for shape; got %d, expected %d: %w",
			len(indices), shape.Rank(), ErrDimensionMismatch)
	}
	for ax, idx := range indices {
		if idx.Len() != nnz {
			return nil, fmt.Errorf("axis %d has %d indices for %d values; index and data arrays must all be the same length: %w",
				ax, idx.Len(), nnz, ErrDimensionMismatch)
		}
	}

	w, err := SelectIndexWidth(uint64(shape.Max()), false, indices...)
	if err != nil {
		return nil, err
	}
	out := make([]IndexArray, len(indices))
	for ax, idx := range indices {
		out[ax] = idx.Astype(w)
	}

	if nnz == 0 {
		return out, nil
	}
	for ax, idx := range out {
		lo, hi, _ := idx.MinMax()
		if hi >= shape[ax] {
			return nil, fmt.Errorf("axis %d index %d exceeds matrix dimension %d: %w", ax, hi, shape[ax], ErrOutOfRange)
		}
		if lo < 0 {
			return nil, fmt.Errorf("negative axis %d index: %d: %w", ax, lo, ErrOutOfRange)
		}
	}

	return out, nil
}

// isIntegral reports whether the element type I is an integer kind.
func isIntegral[I Scalar]() bool {
	var zero I
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Float32, reflect.Float64:
		return false
	default:
		return true
	}
}

// reportNonInteger emits one DiagNonIntegerIndex advisory per axis whose
// source sequence had a non-integer element type.
func reportNonInteger[I Scalar](e env, op string, axes int) {
	if isIntegral[I]() {
		return
	}
	var zero I
	name := reflect.TypeOf(zero).Name()
	for ax := 0; ax < axes; ax++ {
		e.report(Diagnostic{
			Kind:    DiagNonIntegerIndex,
			Op:      op,
			Axis:    ax,
			Message: fmt.Sprintf("index array %d has non-integer dtype (%s)", ax, name),
		})
	}
}

// validateRank2 guards operations defined only for matrices.
func validateRank2(shape Shape, op string) error {
	if shape.Rank() != 2 {
		return sparseErrorf(op, fmt.Errorf("requires 2 axes, store has shape %v: %w", shape, ErrUnsupported))
	}

	return nil
}

// validatePermutation checks that axes is a permutation of 0..rank-1.
func validatePermutation(axes []int, rank int) error {
	if len(axes) != rank {
		return fmt.Errorf("axes %v for rank %d: %w", axes, rank, ErrInvalidAxes)
	}
	seen := make([]bool, rank)
	for _, a := range axes {
		if a < 0 || a >= rank || seen[a] {
			return fmt.Errorf("axes %v is not a permutation of 0..%d: %w", axes, rank-1, ErrInvalidAxes)
		}
		seen[a] = true
	}

	return nil
}
