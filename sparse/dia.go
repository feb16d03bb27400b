// SPDX-License-Identifier: MIT

// Package sparse - DIA (diagonal storage) container and COO → DIA conversion.
//
// Layout (rank 2 only):
//   - offsets: distinct diagonal numbers k = col - row, ascending.
//   - data:    dense (len(offsets) × L) buffer; data[d, j] holds the value at
//     (j - offsets[d], j). Cells whose row falls outside the matrix are padding.

package sparse

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/lvsparse/dense"
)

// DIA is the diagonal-storage container.
type DIA[T Scalar] struct {
	shape   Shape
	offsets []int
	data    *dense.Array[T]
	env     env
}

// NewDIA wraps a diagonal buffer. data must have rank 2 with one row per
// offset; offsets must be distinct. The buffer is copied with WithCopy(true).
// Errors: ErrBadShape, ErrDimensionMismatch, ErrInvalidFormat (repeated offset).
func NewDIA[T Scalar](shape Shape, data *dense.Array[T], offsets []int, opts ...Option) (*DIA[T], error) {
	if data == nil {
		return nil, sparseErrorf(opDIACheck, ErrNilContainer)
	}
	o := gatherOptions(opts...)
	m := &DIA[T]{shape: shape.Clone(), offsets: append([]int(nil), offsets...), data: data, env: o.env()}
	if o.copy {
		m.data = data.Clone()
	}
	if err := m.Check(); err != nil {
		return nil, err
	}

	return m, nil
}

// Format reports FormatDIA.
func (m *DIA[T]) Format() Format { return FormatDIA }

// Shape returns a copy of the container shape.
func (m *DIA[T]) Shape() Shape { return m.shape.Clone() }

// Offsets returns a copy of the diagonal numbers.
func (m *DIA[T]) Offsets() []int { return append([]int(nil), m.offsets...) }

// Data returns the diagonal buffer (shared).
func (m *DIA[T]) Data() *dense.Array[T] { return m.data }

// NNZ counts the buffer cells that fall inside the matrix, stored zeros
// included.
func (m *DIA[T]) NNZ() int {
	n := 0
	m.eachCell(func(_, _, _ int) { n++ })

	return n
}

// eachCell calls fn(d, row, col) for every in-bounds buffer cell, diagonal
// by diagonal.
func (m *DIA[T]) eachCell(fn func(d, row, col int)) {
	rows, cols := m.shape[0], m.shape[1]
	width := 0
	if m.data.Rank() == 2 {
		width = m.data.Shape()[1]
	}
	lim := min(width, cols)
	for d, k := range m.offsets {
		for j := max(k, 0); j < lim; j++ {
			if i := j - k; i < rows {
				fn(d, i, j)
			}
		}
	}
}

// Check validates the layout.
func (m *DIA[T]) Check() error {
	if err := checkShape(m.shape, true); err != nil {
		return sparseErrorf(opDIACheck, err)
	}
	ds := m.data.Shape()
	if len(ds) != 2 {
		return sparseErrorf(opDIACheck, fmt.Errorf("data has rank %d, expected 2: %w", len(ds), ErrDimensionMismatch))
	}
	if ds[0] != len(m.offsets) {
		return sparseErrorf(opDIACheck, fmt.Errorf("%d data rows for %d offsets: %w", ds[0], len(m.offsets), ErrDimensionMismatch))
	}
	sorted := slices.Clone(m.offsets)
	slices.Sort(sorted)
	if len(slices.Compact(sorted)) != len(m.offsets) {
		return sparseErrorf(opDIACheck, fmt.Errorf("offsets %v repeat a diagonal: %w", m.offsets, ErrInvalidFormat))
	}

	return nil
}

// ToCOO lists the nonzero in-bounds cells, diagonal by diagonal. The result
// owns fresh buffers and is not marked canonical.
func (m *DIA[T]) ToCOO(copy bool) (*COO[T], error) {
	var rows, cols []int
	var vals []T
	var zero T
	buf := m.data.Data()
	width := 0
	if m.data.Rank() == 2 {
		width = m.data.Shape()[1]
	}
	m.eachCell(func(d, i, j int) {
		if v := buf[d*width+j]; v != zero {
			rows = append(rows, i)
			cols = append(cols, j)
			vals = append(vals, v)
		}
	})

	w, err := SelectIndexWidth(uint64(m.shape.Max()), false)
	if err != nil {
		return nil, sparseErrorf(opDIAToCOO, err)
	}
	r, err := IndexArrayOf(w, rows)
	if err != nil {
		return nil, err
	}
	c, err := IndexArrayOf(w, cols)
	if err != nil {
		return nil, err
	}

	return assemble(opDIAToCOO, m.shape.Clone(), []IndexArray{r, c}, ownData(vals, false), false, m.env)
}

// ToDense materializes the matrix.
func (m *DIA[T]) ToDense() (*dense.Array[T], error) {
	coo, err := m.ToCOO(false)
	if err != nil {
		return nil, err
	}

	return coo.ToDense()
}

// ToCSR converts through COO.
func (m *DIA[T]) ToCSR(copy bool) (*CSR[T], error) {
	coo, err := m.ToCOO(false)
	if err != nil {
		return nil, err
	}

	return coo.ToCSR(copy)
}

// ToCSC converts through COO.
func (m *DIA[T]) ToCSC(copy bool) (*CSC[T], error) {
	coo, err := m.ToCOO(false)
	if err != nil {
		return nil, err
	}

	return coo.ToCSC(copy)
}

// ToDIA returns the receiver, or a deep copy with copy=true.
func (m *DIA[T]) ToDIA(copy bool) (*DIA[T], error) {
	if !copy {
		return m, nil
	}

	return &DIA[T]{shape: m.shape.Clone(), offsets: m.Offsets(), data: m.data.Clone(), env: m.env}, nil
}

// ToDOK converts through COO.
func (m *DIA[T]) ToDOK(copy bool) (*DOK[T], error) {
	coo, err := m.ToCOO(false)
	if err != nil {
		return nil, err
	}

	return coo.ToDOK(false)
}

// ToDIA converts to diagonal storage.
// MAIN DESCRIPTION:
//   - The receiver is canonicalized in place first (DIA has no duplicates).
//   - More distinct diagonals than the configured threshold (WithMaxDiagonals,
//     default 100) raise a DiagSparseEfficiency advisory; the conversion
//     proceeds.
//   - An empty store yields a 0×0 buffer.
//
// Errors: ErrUnsupported for rank != 2.
// Complexity: O(nnz log nnz + ndiag·(maxcol+1)).
func (c *COO[T]) ToDIA(copy bool) (*DIA[T], error) {
	if err := validateRank2(c.shape, opToDIA); err != nil {
		return nil, err
	}
	c.SumDuplicates()
	n := c.NNZ()
	row, col := c.indices[0], c.indices[1]

	ks := make([]int, n)
	maxCol := 0
	for e := 0; e < n; e++ {
		j := col.At(e)
		ks[e] = j - row.At(e)
		maxCol = max(maxCol, j)
	}
	offsets := slices.Clone(ks)
	slices.Sort(offsets)
	offsets = slices.Compact(offsets)

	ev := c.env.orDefault()
	if len(offsets) > ev.maxDiagonals {
		ev.report(Diagnostic{
			Kind:    DiagSparseEfficiency,
			Op:      opToDIA,
			Axis:    -1,
			Count:   len(offsets),
			Message: fmt.Sprintf("Constructing a DIA matrix with %d diagonals is inefficient", len(offsets)),
		})
	}

	var data *dense.Array[T]
	var err error
	if n == 0 {
		data, err = dense.New[T](0, 0)
	} else {
		data, err = dense.New[T](len(offsets), maxCol+1)
	}
	if err != nil {
		return nil, sparseErrorf(opToDIA, err)
	}
	buf := data.Data()
	width := maxCol + 1
	for e := 0; e < n; e++ {
		d, _ := slices.BinarySearch(offsets, ks[e])
		buf[d*width+col.At(e)] = c.data[e]
	}

	traceConversion(opToDIA, FormatCOO, FormatDIA, c.shape, n, c.IndexWidth())

	return &DIA[T]{shape: c.shape.Clone(), offsets: offsets, data: data, env: c.env}, nil
}
