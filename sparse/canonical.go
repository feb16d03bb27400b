// SPDX-License-Identifier: MIT

// Package sparse - duplicate canonicalization.
//
// Purpose:
//   - Bring a triplet store into canonical form: entries sorted by coordinate
//     tuple (axis 0 primary, i.e. row-major) and pairwise distinct, with the
//     values of equal tuples summed in T arithmetic.
//
// Determinism:
//   - The sort is stable, so duplicates are summed in their original order.

package sparse

import (
	"cmp"
	"slices"
)

// SumDuplicates sorts the entries row-major and merges duplicate coordinates
// by adding their values. It is a no-op on a canonical store.
// Implementation:
//   - Stage 1: stable lexicographic sort of an entry permutation.
//   - Stage 2: segmented sum over runs of identical tuples.
//   - Stage 3: gather the run heads into fresh buffers and swap them in.
//
// Complexity:
//   - Time O(rank · nnz log nnz), Space O(rank · nnz).
func (c *COO[T]) SumDuplicates() {
	if c.canonical {
		return
	}
	n := c.NNZ()
	if n == 0 {
		c.canonical = true
		return
	}
	indices, data := sumDuplicates(c.indices, c.data)
	c.replace(indices, data, true)

	l := Logger()
	l.Debug().
		Stringer("shape", c.shape).
		Int("nnz_before", n).
		Int("nnz", len(data)).
		Msg("sum duplicates")
}

// sumDuplicates returns the canonical form of (indices, data) in new buffers.
func sumDuplicates[T Scalar](indices []IndexArray, data []T) ([]IndexArray, []T) {
	perm := lexPerm(indices, len(data))

	heads := make([]int, 0, len(perm))
	out := make([]T, 0, len(perm))
	for k, p := range perm {
		if k > 0 && compareEntries(indices, perm[k-1], p) == 0 {
			out[len(out)-1] += data[p]
			continue
		}
		heads = append(heads, p)
		out = append(out, data[p])
	}

	arrs := make([]IndexArray, len(indices))
	for ax, idx := range indices {
		arrs[ax] = idx.gather(heads)
	}

	return arrs, out
}

// lexPerm returns the stable row-major ordering of n entries.
func lexPerm(indices []IndexArray, n int) []int {
	perm := make([]int, n)
	for k := range perm {
		perm[k] = k
	}
	cmpFn := func(a, b int) int { return compareEntries(indices, a, b) }
	if slices.IsSortedFunc(perm, cmpFn) {
		return perm
	}
	slices.SortStableFunc(perm, cmpFn)

	return perm
}

// compareEntries orders entries a and b by coordinate tuple, axis 0 first.
func compareEntries(indices []IndexArray, a, b int) int {
	for _, idx := range indices {
		if r := cmp.Compare(idx.At(a), idx.At(b)); r != 0 {
			return r
		}
	}

	return 0
}

// isCanonical reports whether the entries are strictly increasing row-major.
func isCanonical(indices []IndexArray, n int) bool {
	for k := 1; k < n; k++ {
		if compareEntries(indices, k-1, k) >= 0 {
			return false
		}
	}

	return true
}
