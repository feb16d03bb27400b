// SPDX-License-Identifier: MIT

// Package sparse - index-width selection.
//
// Purpose:
//   - Pick the narrowest signed width (int32, else int64) that can represent a
//     bound derived from shapes, nnz or intermediate products.
//   - Look at array CONTENTS on request: a nominally int64 array whose values
//     all fit int32 does not force the wide width.
//   - Derive products (reshape linearization bounds) with explicit overflow
//     detection instead of silently wrapping.

package sparse

import (
	"fmt"
	"math"
	"math/bits"
)

const (
	maxInt32 = math.MaxInt32
	minInt32 = math.MinInt32
	maxInt64 = math.MaxInt64
)

// SelectIndexWidth returns the narrowest width able to hold maxval and every
// coordinate of arrays.
// MAIN DESCRIPTION:
//   - Int32 when maxval ≤ MaxInt32 and no array forces Int64.
//   - An Int64 array forces Int64 unless checkContents is set and all of its
//     values lie within [MinInt32, MaxInt32]. Negative values are judged
//     against the signed range, so a large negative value also forces Int64.
//
// Errors:
//   - ErrIndexOverflow when maxval exceeds MaxInt64.
//
// Complexity:
//   - O(1) without checkContents; O(Σ len(arrays)) with it.
func SelectIndexWidth(maxval uint64, checkContents bool, arrays ...IndexArray) (IndexWidth, error) {
	if maxval > maxInt64 {
		return 0, sparseErrorf(opSelectWidth, fmt.Errorf("maxval %d: %w", maxval, ErrIndexOverflow))
	}
	if maxval > maxInt32 {
		return Int64, nil
	}
	for _, a := range arrays {
		if a.Width() != Int64 {
			continue
		}
		if !checkContents {
			return Int64, nil
		}
		lo, hi, ok := a.MinMax()
		if ok && (lo < minInt32 || hi > maxInt32) {
			return Int64, nil
		}
	}

	return Int32, nil
}

// widthForRange is the content-checked selection for raw coordinates that are
// not yet stored in an IndexArray.
func widthForRange(maxval uint64, lo, hi int) (IndexWidth, error) {
	w, err := SelectIndexWidth(maxval, false)
	if err != nil || w == Int64 {
		return w, err
	}
	if lo < minInt32 || hi > maxInt32 {
		return Int64, nil
	}

	return Int32, nil
}

// mulAddBound computes a*b + c, failing with ErrIndexOverflow when the result
// does not fit in int64.
// Complexity: O(1).
func mulAddBound(a, b, c uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, fmt.Errorf("%d*%d+%d: %w", a, b, c, ErrIndexOverflow)
	}
	sum, carry := bits.Add64(lo, c, 0)
	if carry != 0 || sum > maxInt64 {
		return 0, fmt.Errorf("%d*%d+%d: %w", a, b, c, ErrIndexOverflow)
	}

	return sum, nil
}

// linearBound returns the largest linear offset of shape under either order:
// Π shape - 1 (0 for an empty shape). It is the value the linearization width
// must be able to hold.
//
// Horner form: acc = acc*d + (d-1) per axis, which for (r, c) is the familiar
// c*(r-1) + (c-1).
func linearBound(shape Shape) (uint64, error) {
	var acc uint64
	for _, d := range shape {
		if d <= 0 {
			return 0, nil
		}
		next, err := mulAddBound(acc, uint64(d), uint64(d-1))
		if err != nil {
			return 0, fmt.Errorf("shape %v: %w", []int(shape), err)
		}
		acc = next
	}

	return acc, nil
}

// maxOf returns the larger of a and b as a uint64 bound (negatives clamp to 0).
func maxOf(a, b int) uint64 {
	if a < b {
		a = b
	}
	if a < 0 {
		return 0
	}

	return uint64(a)
}
