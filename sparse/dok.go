// SPDX-License-Identifier: MIT

// Package sparse - DOK (dictionary of keys) container and COO → DOK conversion.
//
// Keys are (row, col) pairs; a 1-D container uses col 0, matching the
// single-column view of 1-D coordinate stores (see COO.Col).

package sparse

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/katalvlaran/lvsparse/dense"
)

// dokKey addresses one cell.
type dokKey struct{ row, col int }

// DOK is the dictionary-of-keys container (rank 1 or 2).
type DOK[T Scalar] struct {
	shape   Shape
	entries map[dokKey]T
	env     env
}

// NewDOK returns an empty container of the given shape (rank 1 or 2).
// Errors: ErrBadShape.
func NewDOK[T Scalar](shape ...int) (*DOK[T], error) {
	sh := Shape(shape).Clone()
	if err := checkShape(sh, false); err != nil {
		return nil, sparseErrorf(opDOKAccess, err)
	}
	if sh.Rank() > 2 {
		return nil, sparseErrorf(opDOKAccess, fmt.Errorf("shape %v: at most 2 axes: %w", sh, ErrBadShape))
	}

	return &DOK[T]{shape: sh, entries: make(map[dokKey]T), env: defaultOptions().env()}, nil
}

// Format reports FormatDOK.
func (m *DOK[T]) Format() Format { return FormatDOK }

// Shape returns a copy of the container shape.
func (m *DOK[T]) Shape() Shape { return m.shape.Clone() }

// NNZ returns the number of stored keys.
func (m *DOK[T]) NNZ() int { return len(m.entries) }

// key validates idx against the shape.
func (m *DOK[T]) key(idx []int) (dokKey, error) {
	if len(idx) != m.shape.Rank() {
		return dokKey{}, fmt.Errorf("%d indices for rank %d: %w", len(idx), m.shape.Rank(), ErrDimensionMismatch)
	}
	for ax, i := range idx {
		if i < 0 || i >= m.shape[ax] {
			return dokKey{}, fmt.Errorf("axis %d index %d for dimension %d: %w", ax, i, m.shape[ax], ErrOutOfRange)
		}
	}
	if len(idx) == 1 {
		return dokKey{row: idx[0]}, nil
	}

	return dokKey{row: idx[0], col: idx[1]}, nil
}

// Get returns the value at idx (zero when not stored).
// Errors: ErrDimensionMismatch, ErrOutOfRange.
func (m *DOK[T]) Get(idx ...int) (T, error) {
	k, err := m.key(idx)
	if err != nil {
		var zero T
		return zero, sparseErrorf(opDOKAccess, err)
	}

	return m.entries[k], nil
}

// Set stores v at idx; storing zero removes the key.
// Errors: ErrDimensionMismatch, ErrOutOfRange.
func (m *DOK[T]) Set(v T, idx ...int) error {
	k, err := m.key(idx)
	if err != nil {
		return sparseErrorf(opDOKAccess, err)
	}
	var zero T
	if v == zero {
		delete(m.entries, k)
		return nil
	}
	m.entries[k] = v

	return nil
}

// Check validates that every key lies inside the shape.
func (m *DOK[T]) Check() error {
	if err := checkShape(m.shape, false); err != nil {
		return sparseErrorf(opDOKAccess, err)
	}
	for k := range m.entries {
		idx := []int{k.row, k.col}[:m.shape.Rank()]
		if _, err := m.key(idx); err != nil {
			return sparseErrorf(opDOKAccess, err)
		}
		if m.shape.Rank() == 1 && k.col != 0 {
			return sparseErrorf(opDOKAccess, fmt.Errorf("1-D key has column %d: %w", k.col, ErrOutOfRange))
		}
	}

	return nil
}

// sortedKeys returns the keys in row-major order.
func (m *DOK[T]) sortedKeys() []dokKey {
	keys := slices.Collect(maps.Keys(m.entries))
	slices.SortFunc(keys, func(a, b dokKey) int {
		if r := cmp.Compare(a.row, b.row); r != 0 {
			return r
		}
		return cmp.Compare(a.col, b.col)
	})

	return keys
}

// ToCOO lists the stored keys in row-major order; the result is canonical.
func (m *DOK[T]) ToCOO(copy bool) (*COO[T], error) {
	keys := m.sortedKeys()
	rank := m.shape.Rank()
	w, err := SelectIndexWidth(uint64(m.shape.Max()), false)
	if err != nil {
		return nil, sparseErrorf(opDOKToCOO, err)
	}
	indices := make([]IndexArray, rank)
	for ax := range indices {
		indices[ax] = NewIndexArray(w, len(keys))
	}
	data := make([]T, len(keys))
	for k, key := range keys {
		indices[0].Set(k, key.row)
		if rank == 2 {
			indices[1].Set(k, key.col)
		}
		data[k] = m.entries[key]
	}

	return assemble(opDOKToCOO, m.shape.Clone(), indices, data, true, m.env)
}

// ToDense materializes the container.
func (m *DOK[T]) ToDense() (*dense.Array[T], error) {
	out, err := dense.New[T](m.shape...)
	if err != nil {
		return nil, sparseErrorf(opToDense, err)
	}
	for k, v := range m.entries {
		idx := []int{k.row, k.col}[:m.shape.Rank()]
		if err := out.Set(v, idx...); err != nil {
			return nil, sparseErrorf(opToDense, err)
		}
	}

	return out, nil
}

// ToCSR converts through COO.
func (m *DOK[T]) ToCSR(copy bool) (*CSR[T], error) {
	coo, err := m.ToCOO(false)
	if err != nil {
		return nil, err
	}

	return coo.ToCSR(copy)
}

// ToCSC converts through COO.
func (m *DOK[T]) ToCSC(copy bool) (*CSC[T], error) {
	coo, err := m.ToCOO(false)
	if err != nil {
		return nil, err
	}

	return coo.ToCSC(copy)
}

// ToDIA converts through COO.
func (m *DOK[T]) ToDIA(copy bool) (*DIA[T], error) {
	coo, err := m.ToCOO(false)
	if err != nil {
		return nil, err
	}

	return coo.ToDIA(false)
}

// ToDOK returns the receiver, or a deep copy with copy=true.
func (m *DOK[T]) ToDOK(copy bool) (*DOK[T], error) {
	if !copy {
		return m, nil
	}

	return &DOK[T]{shape: m.shape.Clone(), entries: maps.Clone(m.entries), env: m.env}, nil
}

// ToDOK converts to a dictionary of keys. The receiver is canonicalized in
// place first; explicit zeros are kept as stored keys.
// Errors: ErrUnsupported for rank > 2.
// Complexity: O(nnz log nnz).
func (c *COO[T]) ToDOK(copy bool) (*DOK[T], error) {
	if c.shape.Rank() > 2 {
		return nil, sparseErrorf(opToDOK, fmt.Errorf("shape %v: %w", c.shape, ErrUnsupported))
	}
	c.SumDuplicates()
	out := &DOK[T]{shape: c.shape.Clone(), entries: make(map[dokKey]T, c.NNZ()), env: c.env}
	row, col := c.Row(), c.Col()
	for e := 0; e < c.NNZ(); e++ {
		out.entries[dokKey{row: row.At(e), col: col.At(e)}] = c.data[e]
	}
	traceConversion(opToDOK, FormatCOO, FormatDOK, c.shape, out.NNZ(), c.IndexWidth())

	return out, nil
}
