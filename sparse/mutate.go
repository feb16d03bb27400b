// SPDX-License-Identifier: MIT

// Package sparse - in-place mutators.
//
// Contract (all mutators):
//   - Working buffers are built first and swapped in last; on error the
//     container is unchanged.
//   - Shared buffers are never written: a mutator that changes entries detaches
//     the receiver from its peers (see ownership).

package sparse

import "fmt"

// EliminateZeros removes the entries whose value is exactly zero, keeping the
// survivors in their relative order (so the canonical flag is preserved).
// Complexity: O(rank·nnz).
func (c *COO[T]) EliminateZeros() {
	n := c.NNZ()
	var zero T
	m := keepMask(n, func(k int) bool { return c.data[k] != zero })
	if keepsAll(m, n) {
		return
	}
	indices := make([]IndexArray, len(c.indices))
	for ax, idx := range c.indices {
		indices[ax] = filterIndex(idx, m)
	}
	c.replace(indices, filterData(c.data, m), c.canonical)
}

// Resize changes the shape in place.
// MAIN DESCRIPTION:
//   - Same rank: every axis is cropped or padded independently. Entries outside
//     the new bounds are dropped; growing keeps every entry.
//   - Different rank: the store behaves like a flat C-order buffer that is
//     truncated or zero-padded to the new size (a 2×3 store resized to (4,)
//     keeps its first four elements).
//   - Entries are never summed; the canonical flag is preserved.
//
// Errors:
//   - ErrBadShape, ErrIndexOverflow.
//
// Complexity:
//   - O(rank·nnz).
func (c *COO[T]) Resize(shape ...int) error {
	target := Shape(shape).Clone()
	if err := checkShape(target, false); err != nil {
		return sparseErrorf(opResize, err)
	}
	n := c.NNZ()

	if target.Rank() != c.shape.Rank() {
		size, err := target.Size()
		if err != nil {
			return sparseErrorf(opResize, err)
		}
		flat, err := linearize(c.shape, c.indices, n, OrderC)
		if err != nil {
			return sparseErrorf(opResize, err)
		}
		m := keepMask(n, func(k int) bool { return flat.At(k) < size })
		indices, err := unravel(filterIndex(flat, m), target, OrderC)
		if err != nil {
			return sparseErrorf(opResize, err)
		}
		data := filterData(c.data, m)
		if indices, err = validateTriplets(target, indices, len(data)); err != nil {
			return sparseErrorf(opResize, err)
		}
		c.shape = target
		c.replace(indices, data, c.canonical)

		return nil
	}

	indices, data := c.indices, c.data
	changed := false
	truncating := false
	for ax, d := range target {
		if d < c.shape[ax] {
			truncating = true
		}
	}
	if truncating {
		m := keepMask(n, func(k int) bool {
			for ax, idx := range c.indices {
				if idx.At(k) >= target[ax] {
					return false
				}
			}
			return true
		})
		if !keepsAll(m, n) {
			filtered := make([]IndexArray, len(indices))
			for ax, idx := range indices {
				filtered[ax] = filterIndex(idx, m)
			}
			indices, data, changed = filtered, filterData(data, m), true
		}
	}

	w, err := SelectIndexWidth(uint64(target.Max()), false, indices...)
	if err != nil {
		return sparseErrorf(opResize, err)
	}
	if w != c.IndexWidth() {
		widened := make([]IndexArray, len(indices))
		for ax, idx := range indices {
			widened[ax] = idx.Astype(w)
		}
		indices, changed = widened, true
	}

	c.shape = target
	if changed {
		c.replace(indices, data, c.canonical)
	}

	return nil
}

// Diagonal returns the k-th diagonal (k > 0 above the main diagonal, k < 0
// below). Duplicate entries on the diagonal are summed. A k outside the
// matrix yields an empty slice.
// Errors: ErrUnsupported for rank != 2.
// Complexity: O(nnz + len(diagonal)).
func (c *COO[T]) Diagonal(k int) ([]T, error) {
	if err := validateRank2(c.shape, opDiagonal); err != nil {
		return nil, err
	}
	rows, cols := c.shape[0], c.shape[1]
	if k <= -rows || k >= cols {
		return []T{}, nil
	}
	diag := make([]T, min(rows+min(k, 0), cols-max(k, 0)))
	row, col := c.indices[0], c.indices[1]
	for e := 0; e < c.NNZ(); e++ {
		r := row.At(e)
		if r+k == col.At(e) {
			diag[r+min(k, 0)] += c.data[e]
		}
	}

	return diag, nil
}

// SetDiag stores values on the k-th diagonal. Only the first
// min(len(values), diagonal length) diagonal cells are written; existing
// entries on those cells are replaced, entries elsewhere are kept. An empty
// values slice is a no-op. The canonical flag is cleared.
// Errors: ErrUnsupported for rank != 2, ErrOutOfRange when k lies outside the
// matrix.
// Complexity: O(nnz + len(diagonal)).
func (c *COO[T]) SetDiag(values []T, k int) error {
	if err := c.checkDiag(k); err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	c.setDiag(values, k, false)

	return nil
}

// SetDiagScalar stores v on every cell of the k-th diagonal.
// Errors: as SetDiag.
func (c *COO[T]) SetDiagScalar(v T, k int) error {
	if err := c.checkDiag(k); err != nil {
		return err
	}
	c.setDiag([]T{v}, k, true)

	return nil
}

func (c *COO[T]) checkDiag(k int) error {
	if err := validateRank2(c.shape, opSetDiag); err != nil {
		return err
	}
	rows, cols := c.shape[0], c.shape[1]
	if (k > 0 && k >= cols) || (k < 0 && -k >= rows) {
		return sparseErrorf(opSetDiag, fmt.Errorf("k %d exceeds array dimensions %v: %w", k, c.shape, ErrOutOfRange))
	}

	return nil
}

// setDiag drops the entries on the diagonal cells being written and appends
// the new cells after the survivors.
func (c *COO[T]) setDiag(values []T, k int, broadcast bool) {
	rows, cols := c.shape[0], c.shape[1]
	var length, r0, c0 int
	if k < 0 {
		length, r0 = min(rows+k, cols), -k
	} else {
		length, c0 = min(rows, cols-k), k
	}
	if !broadcast {
		length = min(length, len(values))
	}

	row, col := c.indices[0], c.indices[1]
	m := keepMask(c.NNZ(), func(e int) bool {
		r, cc := row.At(e), col.At(e)
		if cc-r != k {
			return true
		}
		if k < 0 {
			return cc >= length
		}
		return r >= length
	})

	newRows := make([]int, length)
	newCols := make([]int, length)
	data := filterData(c.data, m)
	for i := range length {
		newRows[i] = r0 + i
		newCols[i] = c0 + i
		if broadcast {
			data = append(data, values[0])
		} else {
			data = append(data, values[i])
		}
	}
	indices := []IndexArray{
		filterIndex(row, m).concat(newRows),
		filterIndex(col, m).concat(newCols),
	}
	c.replace(indices, data, false)
}
