// SPDX-License-Identifier: MIT

// Package sparse - entry keep-masks.
//
// Purpose:
//   - Represent "which stored entries survive" (EliminateZeros, Resize, SetDiag)
//     as a compressed bitmap of entry positions instead of a []bool of length nnz.
//   - Filter every parallel array with the same mask in one ordered pass, which
//     preserves the relative order of survivors (and therefore canonical form).

package sparse

import "github.com/RoaringBitmap/roaring/v2/roaring64"

// keepMask returns the positions k in [0, n) for which keep(k) is true.
// Complexity: O(n) predicate calls; bitmap size proportional to the runs.
func keepMask(n int, keep func(k int) bool) *roaring64.Bitmap {
	m := roaring64.New()
	start := -1
	for k := 0; k < n; k++ {
		if keep(k) {
			if start < 0 {
				start = k
			}
			continue
		}
		if start >= 0 {
			m.AddRange(uint64(start), uint64(k))
			start = -1
		}
	}
	if start >= 0 {
		m.AddRange(uint64(start), uint64(n))
	}

	return m
}

// keepsAll reports whether the mask retains every one of n entries.
func keepsAll(m *roaring64.Bitmap, n int) bool {
	return m.GetCardinality() == uint64(n)
}

// filterIndex returns the coordinates of a at the positions in m, in order.
func filterIndex(a IndexArray, m *roaring64.Bitmap) IndexArray {
	out := NewIndexArray(a.Width(), int(m.GetCardinality()))
	it := m.Iterator()
	for k := 0; it.HasNext(); k++ {
		out.Set(k, a.At(int(it.Next())))
	}

	return out
}

// filterData returns the values of d at the positions in m, in order.
func filterData[T Scalar](d []T, m *roaring64.Bitmap) []T {
	out := make([]T, 0, m.GetCardinality())
	it := m.Iterator()
	for it.HasNext() {
		out = append(out, d[it.Next()])
	}

	return out
}
