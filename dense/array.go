// SPDX-License-Identifier: MIT

// Package dense - Array storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit offset formula
//     Σ idx[a]*stride[a] (trailing axis contiguous).
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//
// Complexity quicksheet:
//   - New: O(size) zero-init; At/Set: O(rank); Clone: O(size); Nonzero: O(size·rank).

package dense

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt      = "At"
	ctxSet     = "Set"
	ctxFlatten = "Flatten"
)

// ---------- formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// Array is a concrete row-major n-dimensional array.
//   - shape holds the axis lengths (rank = len(shape) ≥ 1, zero lengths allowed).
//   - strides holds the C-order element strides derived from shape.
//   - data is a flat buffer of length Π shape.
type Array[T Scalar] struct {
	shape   []int
	strides []int
	data    []T
}

// New creates a zero-filled array of the given shape.
// MAIN DESCRIPTION:
//   - Public constructor with strict shape validation.
//
// Implementation:
//   - Stage 1: validate rank ≥ 1 and every axis length ≥ 0; else ErrBadShape.
//   - Stage 2: allocate the zero-filled flat buffer (make() zero-fills).
//
// Complexity:
//   - Time O(size), Space O(size).
func New[T Scalar](shape ...int) (*Array[T], error) {
	size, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	sh := append([]int(nil), shape...)

	return &Array[T]{shape: sh, strides: Strides(sh, OrderC), data: make([]T, size)}, nil
}

// FromSlice builds an array of the given shape over a copy of data.
// Returns ErrDimensionMismatch when len(data) differs from the shape's size.
// Complexity: O(size).
func FromSlice[T Scalar](data []T, shape ...int) (*Array[T], error) {
	size, err := checkShape(shape)
	if err != nil {
		return nil, err
	}
	if len(data) != size {
		return nil, fmt.Errorf("FromSlice: %d values for shape %v: %w", len(data), shape, ErrDimensionMismatch)
	}
	sh := append([]int(nil), shape...)
	buf := make([]T, size)
	copy(buf, data)

	return &Array[T]{shape: sh, strides: Strides(sh, OrderC), data: buf}, nil
}

// FromRows builds a 2-D array from row slices. Ragged rows are rejected with
// ErrDimensionMismatch; an empty row set yields a 0×0 array.
// Complexity: O(r*c).
func FromRows[T Scalar](rows [][]T) (*Array[T], error) {
	r := len(rows)
	c := 0
	if r > 0 {
		c = len(rows[0])
	}
	out, err := New[T](r, c)
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("FromRows: row %d has %d values, want %d: %w", i, len(row), c, ErrDimensionMismatch)
		}
		copy(out.data[i*c:(i+1)*c], row)
	}

	return out, nil
}

// Vector builds a 1-D array holding a copy of vals.
func Vector[T Scalar](vals ...T) *Array[T] {
	buf := make([]T, len(vals))
	copy(buf, vals)

	return &Array[T]{shape: []int{len(vals)}, strides: []int{1}, data: buf}
}

// checkShape validates a shape and returns its element count.
func checkShape(shape []int) (int, error) {
	if len(shape) == 0 {
		return 0, fmt.Errorf("shape %v: %w", shape, ErrBadShape)
	}
	size := 1
	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("shape %v: %w", shape, ErrBadShape)
		}
		size *= d
	}

	return size, nil
}

// Shape returns a copy of the axis lengths.
func (a *Array[T]) Shape() []int { return append([]int(nil), a.shape...) }

// Rank returns the number of axes.
func (a *Array[T]) Rank() int { return len(a.shape) }

// Size returns the number of elements.
func (a *Array[T]) Size() int { return len(a.data) }

// Data returns the row-major backing buffer (no copy); writes are visible in a.
func (a *Array[T]) Data() []T { return a.data }

// Offset computes the row-major offset of idx or returns ErrOutOfRange.
// Complexity: O(rank).
func (a *Array[T]) Offset(idx ...int) (int, error) {
	if len(idx) != len(a.shape) {
		return 0, ErrOutOfRange
	}
	off := 0
	for ax, i := range idx {
		if i < 0 || i >= a.shape[ax] {
			return 0, ErrOutOfRange
		}
		off += i * a.strides[ax]
	}

	return off, nil
}

// At returns the element at idx or a wrapped ErrOutOfRange.
func (a *Array[T]) At(idx ...int) (T, error) {
	off, err := a.Offset(idx...)
	if err != nil {
		var zero T
		return zero, arrayErrorf(ctxAt, idx, err)
	}

	return a.data[off], nil
}

// Set stores v at idx or returns a wrapped ErrOutOfRange.
func (a *Array[T]) Set(v T, idx ...int) error {
	off, err := a.Offset(idx...)
	if err != nil {
		return arrayErrorf(ctxSet, idx, err)
	}
	a.data[off] = v

	return nil
}

// Clone returns a deep copy with an independent buffer.
// Complexity: O(size).
func (a *Array[T]) Clone() *Array[T] {
	buf := make([]T, len(a.data))
	copy(buf, a.data)

	return &Array[T]{
		shape:   append([]int(nil), a.shape...),
		strides: append([]int(nil), a.strides...),
		data:    buf,
	}
}

// Equal reports whether b has the same shape and identical elements.
func (a *Array[T]) Equal(b *Array[T]) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.shape) != len(b.shape) {
		return false
	}
	for ax := range a.shape {
		if a.shape[ax] != b.shape[ax] {
			return false
		}
	}
	for k := range a.data {
		if a.data[k] != b.data[k] {
			return false
		}
	}

	return true
}

// Flatten returns the elements linearized in order o ('C' or 'F').
// MAIN DESCRIPTION:
//   - C order is a copy of the backing buffer.
//   - F order walks the coordinates with the leading axis fastest.
//
// Errors:
//   - ErrInvalidOrder for any other token.
//
// Complexity:
//   - Time O(size·rank), Space O(size).
func (a *Array[T]) Flatten(o Order) ([]T, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("Array.%s(%q): %w", ctxFlatten, byte(o), ErrInvalidOrder)
	}
	out := make([]T, len(a.data))
	if o == OrderC {
		copy(out, a.data)
		return out, nil
	}
	// Odometer over coordinates, leading axis fastest.
	idx := make([]int, len(a.shape))
	for k := range out {
		off := 0
		for ax, i := range idx {
			off += i * a.strides[ax]
		}
		out[k] = a.data[off]
		for ax := 0; ax < len(idx); ax++ {
			idx[ax]++
			if idx[ax] < a.shape[ax] {
				break
			}
			idx[ax] = 0
		}
	}

	return out, nil
}

// Nonzero returns, per axis, the coordinates of every nonzero element in C
// order. The coordinate tuples are therefore unique and lexicographically sorted.
// Complexity: O(size·rank).
func (a *Array[T]) Nonzero() [][]int {
	coords := make([][]int, len(a.shape))
	var zero T
	for off, v := range a.data {
		if v == zero {
			continue
		}
		rem := off
		for ax := range a.shape {
			coords[ax] = append(coords[ax], rem/a.strides[ax])
			rem %= a.strides[ax]
		}
	}
	for ax := range coords {
		if coords[ax] == nil {
			coords[ax] = []int{}
		}
	}

	return coords
}

// String provides a readable dump: one line per row for rank ≤ 2, the flat
// buffer with its shape otherwise.
func (a *Array[T]) String() string {
	if len(a.shape) > 2 {
		return fmt.Sprintf("%v%v", a.shape, a.data)
	}
	rows, cols := a.shape[0], 1
	if len(a.shape) == 2 {
		cols = a.shape[1]
	} else {
		rows, cols = 1, a.shape[0]
	}
	var b strings.Builder
	for i := 0; i < rows; i++ {
		b.WriteString(_fmtRowOpen)
		base := i * cols
		for j := 0; j < cols; j++ {
			b.WriteString(fmt.Sprintf("%v", a.data[base+j]))
			if j+1 < cols {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
