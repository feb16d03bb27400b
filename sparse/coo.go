// SPDX-License-Identifier: MIT

// Package sparse - COO triplet store: type, constructors and attribute surface.
//
// Purpose:
//   - Hold one coordinate array per axis plus a parallel value array, in any
//     order, duplicates allowed (the canonical flag records sorted+unique).
//   - Validate every construction path through validateTriplets (rank, lengths,
//     width, bounds) before a container is handed out.
//   - Make buffer sharing explicit: no-copy conversions return views that share
//     an ownership record; Aliased() reports it.

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/dense"
)

// COO is the coordinate ("triplet") sparse container.
//   - shape:   axis lengths (rank ≥ 1).
//   - indices: one IndexArray per axis, all of length nnz and of one width.
//   - data:    stored values, parallel to indices (explicit zeros allowed).
//   - canonical: entries are in ascending row-major order and pairwise distinct.
//
// The zero value is not usable; build containers with the constructors below.
type COO[T Scalar] struct {
	shape     Shape
	indices   []IndexArray
	data      []T
	canonical bool

	own *ownership
	env env
}

// NewEmpty returns an empty container of the given shape. An empty store is
// canonical by construction.
// Complexity: O(rank).
func NewEmpty[T Scalar](shape ...int) (*COO[T], error) {
	sh := Shape(shape).Clone()
	if err := checkShape(sh, false); err != nil {
		return nil, sparseErrorf(opNewEmpty, err)
	}
	w, err := SelectIndexWidth(uint64(sh.Max()), false)
	if err != nil {
		return nil, sparseErrorf(opNewEmpty, err)
	}
	indices := make([]IndexArray, len(sh))
	for ax := range indices {
		indices[ax] = NewIndexArray(w, 0)
	}

	return &COO[T]{
		shape:     sh,
		indices:   indices,
		data:      []T{},
		canonical: true,
		own:       newOwnership(),
		env:       defaultOptions().env(),
	}, nil
}

// NewFromTriplets builds a container from values and one coordinate sequence
// per axis. I may be any Scalar type: non-integer coordinates are truncated and
// reported as DiagNonIntegerIndex advisories.
// MAIN DESCRIPTION:
//   - Without WithShape, each axis length is inferred as max(index)+1; an
//     empty sequence then fails with ErrEmptyInference.
//   - The index width is chosen from max(shape) and the actual coordinate
//     range (content check).
//   - The result is not canonical, even when the input happens to be sorted.
//
// Options: WithShape, WithCopy (copy data instead of aliasing it),
// WithDiagnostics, WithMaxDiagonals.
//
// Errors:
//   - ErrInvalidFormat when no coordinate sequence is supplied.
//   - ErrEmptyInference, ErrBadShape, ErrDimensionMismatch, ErrOutOfRange,
//     ErrIndexOverflow as produced by inference and validation.
//
// Complexity:
//   - Time O(rank·nnz), Space O(rank·nnz).
func NewFromTriplets[T, I Scalar](data []T, indices [][]I, opts ...Option) (*COO[T], error) {
	o := gatherOptions(opts...)
	if len(indices) == 0 {
		return nil, sparseErrorf(opFromTriplets, fmt.Errorf("no index sequences: %w", ErrInvalidFormat))
	}
	e := o.env()
	reportNonInteger[I](e, opFromTriplets, len(indices))

	// Stage 1: truncate coordinates and track the global range.
	coords := make([][]int, len(indices))
	lo, hi := 0, 0
	for ax, seq := range indices {
		c := make([]int, len(seq))
		for k, v := range seq {
			x := int(v)
			c[k] = x
			if x < lo {
				lo = x
			}
			if x > hi {
				hi = x
			}
		}
		coords[ax] = c
	}

	// Stage 2: shape (explicit or inferred).
	shape, err := resolveShape(o, len(indices), func(ax int) (int, bool) {
		if len(coords[ax]) == 0 {
			return 0, false
		}
		m := coords[ax][0]
		for _, x := range coords[ax][1:] {
			if x > m {
				m = x
			}
		}

		return m, true
	})
	if err != nil {
		return nil, sparseErrorf(opFromTriplets, err)
	}

	// Stage 3: width selection and packing.
	w, err := widthForRange(uint64(shape.Max()), lo, hi)
	if err != nil {
		return nil, sparseErrorf(opFromTriplets, err)
	}
	arrs := make([]IndexArray, len(coords))
	for ax, c := range coords {
		if arrs[ax], err = IndexArrayOf(w, c); err != nil {
			return nil, sparseErrorf(opFromTriplets, err)
		}
	}

	return assemble(opFromTriplets, shape, arrs, ownData(data, o.copy), false, e)
}

// NewFromIndexArrays builds a container from pre-packed coordinate arrays.
// Without WithCopy the arrays (when already at the selected width) and data are
// aliased, not copied.
// Errors: as NewFromTriplets.
// Complexity: O(rank·nnz).
func NewFromIndexArrays[T Scalar](data []T, indices []IndexArray, opts ...Option) (*COO[T], error) {
	o := gatherOptions(opts...)
	if len(indices) == 0 {
		return nil, sparseErrorf(opFromIndex, fmt.Errorf("no index arrays: %w", ErrInvalidFormat))
	}
	shape, err := resolveShape(o, len(indices), func(ax int) (int, bool) {
		_, m, ok := indices[ax].MinMax()
		return m, ok
	})
	if err != nil {
		return nil, sparseErrorf(opFromIndex, err)
	}
	w, err := SelectIndexWidth(uint64(shape.Max()), true, indices...)
	if err != nil {
		return nil, sparseErrorf(opFromIndex, err)
	}
	arrs := make([]IndexArray, len(indices))
	for ax, idx := range indices {
		arrs[ax] = idx.Astype(w)
		if o.copy && idx.Width() == w {
			arrs[ax] = arrs[ax].Clone()
		}
	}

	return assemble(opFromIndex, shape, arrs, ownData(data, o.copy), false, o.env())
}

// FromDense extracts the nonzero entries of d in row-major order. The result
// is canonical. WithShape, when given, must equal d's shape.
// Errors: ErrNilContainer, ErrShapeMismatch ("inconsistent shapes").
// Complexity: O(size·rank).
func FromDense[T Scalar](d *dense.Array[T], opts ...Option) (*COO[T], error) {
	if d == nil {
		return nil, sparseErrorf(opFromDense, ErrNilContainer)
	}
	o := gatherOptions(opts...)
	shape := Shape(d.Shape())
	if o.hasShape && !o.shape.Equal(shape) {
		return nil, sparseErrorf(opFromDense, fmt.Errorf("inconsistent shapes: %v != %v: %w", o.shape, shape, ErrShapeMismatch))
	}
	w, err := SelectIndexWidth(uint64(shape.Max()), false)
	if err != nil {
		return nil, sparseErrorf(opFromDense, err)
	}

	nz := d.Nonzero()
	arrs := make([]IndexArray, len(nz))
	for ax, c := range nz {
		if arrs[ax], err = IndexArrayOf(w, c); err != nil {
			return nil, sparseErrorf(opFromDense, err)
		}
	}
	var zero T
	vals := make([]T, 0, len(nz[0]))
	for _, v := range d.Data() {
		if v != zero {
			vals = append(vals, v)
		}
	}

	return assemble(opFromDense, shape, arrs, vals, true, o.env())
}

// FromSparse converts any container to COO. With copy=false a COO source is
// shared (the result reports Aliased); other formats always produce fresh
// buffers.
func FromSparse[T Scalar](s Sparse[T], copy bool) (*COO[T], error) {
	if s == nil {
		return nil, sparseErrorf(opFromSparse, ErrNilContainer)
	}
	c, err := s.ToCOO(copy)
	if err != nil {
		return nil, sparseErrorf(opFromSparse, err)
	}

	return c, nil
}

// resolveShape returns the explicit shape from o, or infers max+1 per axis.
func resolveShape(o Options, rank int, axisMax func(ax int) (int, bool)) (Shape, error) {
	if o.hasShape {
		sh := o.shape.Clone()
		if err := checkShape(sh, false); err != nil {
			return nil, err
		}

		return sh, nil
	}
	sh := make(Shape, rank)
	for ax := range sh {
		m, ok := axisMax(ax)
		if !ok {
			return nil, ErrEmptyInference
		}
		sh[ax] = m + 1
	}
	if err := checkShape(sh, false); err != nil {
		return nil, err
	}

	return sh, nil
}

// assemble validates the candidate triple and wraps it in a container.
func assemble[T Scalar](op string, shape Shape, indices []IndexArray, data []T, canonical bool, e env) (*COO[T], error) {
	arrs, err := validateTriplets(shape, indices, len(data))
	if err != nil {
		return nil, sparseErrorf(op, err)
	}

	return &COO[T]{
		shape:     shape,
		indices:   arrs,
		data:      data,
		canonical: canonical,
		own:       newOwnership(),
		env:       e,
	}, nil
}

// ownData returns d itself or a private copy; nil becomes an empty slice.
func ownData[T Scalar](d []T, copyData bool) []T {
	if d == nil {
		return []T{}
	}
	if copyData {
		return append([]T(nil), d...)
	}

	return d
}

// ---------- attribute surface ----------

// Format reports FormatCOO.
func (c *COO[T]) Format() Format { return FormatCOO }

// Shape returns a copy of the container shape.
func (c *COO[T]) Shape() Shape { return c.shape.Clone() }

// Ndim returns the rank.
func (c *COO[T]) Ndim() int { return len(c.shape) }

// NNZ returns the number of stored entries, explicit zeros and duplicates
// included.
func (c *COO[T]) NNZ() int { return len(c.data) }

// Row returns the axis-0 coordinates (shared backing).
func (c *COO[T]) Row() IndexArray {
	if len(c.indices) == 0 {
		return NewIndexArray(Int32, 0)
	}

	return c.indices[0]
}

// Col returns the axis-1 coordinates (shared backing). A 1-D store is viewed
// as a single column, so Col is all zeros.
func (c *COO[T]) Col() IndexArray {
	if len(c.indices) > 1 {
		return c.indices[1]
	}

	return NewIndexArray(c.IndexWidth(), c.NNZ())
}

// Coords returns the coordinates along axis (shared backing).
func (c *COO[T]) Coords(axis int) (IndexArray, error) {
	if axis < 0 || axis >= len(c.indices) {
		return IndexArray{}, fmt.Errorf("axis %d for rank %d: %w", axis, len(c.indices), ErrInvalidAxes)
	}

	return c.indices[axis], nil
}

// Data returns the stored values (shared backing).
func (c *COO[T]) Data() []T { return c.data }

// HasCanonicalFormat reports whether entries are sorted row-major and unique.
func (c *COO[T]) HasCanonicalFormat() bool { return c.canonical }

// IndexWidth returns the coordinate storage width.
func (c *COO[T]) IndexWidth() IndexWidth {
	if len(c.indices) == 0 {
		return Int32
	}

	return c.indices[0].Width()
}

// Aliased reports whether another container shares this one's buffers.
func (c *COO[T]) Aliased() bool { return c.own.shared() }

// Check validates the container invariants and normalizes the index width.
func (c *COO[T]) Check() error {
	if err := checkShape(c.shape, false); err != nil {
		return sparseErrorf(opCheck, err)
	}
	arrs, err := validateTriplets(c.shape, c.indices, len(c.data))
	if err != nil {
		return sparseErrorf(opCheck, err)
	}
	c.indices = arrs

	return nil
}

// Copy returns a deep copy with its own buffers.
func (c *COO[T]) Copy() *COO[T] {
	indices := make([]IndexArray, len(c.indices))
	for ax, idx := range c.indices {
		indices[ax] = idx.Clone()
	}

	return &COO[T]{
		shape:     c.shape.Clone(),
		indices:   indices,
		data:      append([]T(nil), c.data...),
		canonical: c.canonical,
		own:       newOwnership(),
		env:       c.env,
	}
}

// view returns a container sharing the receiver's buffers.
func (c *COO[T]) view() *COO[T] {
	return &COO[T]{
		shape:     c.shape.Clone(),
		indices:   append([]IndexArray(nil), c.indices...),
		data:      c.data,
		canonical: c.canonical,
		own:       c.shareOwnership(),
		env:       c.env,
	}
}

// replace swaps freshly built buffers in and releases any sharing.
func (c *COO[T]) replace(indices []IndexArray, data []T, canonical bool) {
	c.indices = indices
	c.data = data
	c.canonical = canonical
	c.own = c.own.detach()
}

// ToCOO returns a deep copy (copy=true) or a view sharing the buffers.
func (c *COO[T]) ToCOO(copy bool) (*COO[T], error) {
	if copy {
		return c.Copy(), nil
	}

	return c.view(), nil
}

// CountNonzero returns the number of distinct coordinates whose summed value
// is nonzero. The receiver is not modified.
func (c *COO[T]) CountNonzero() int {
	src := c
	if !c.canonical {
		src = c.Copy()
		src.SumDuplicates()
	}
	var zero T
	n := 0
	for _, v := range src.data {
		if v != zero {
			n++
		}
	}

	return n
}

// NNZAxis counts stored entries along axis. For a matrix, axis 0 yields one
// count per column and axis 1 one count per row (negative axes count from the
// end). For a 1-D store the only valid axis yields []int{NNZ()}.
// Errors: ErrInvalidAxes, ErrUnsupported for rank > 2.
// Complexity: O(nnz + dim).
func (c *COO[T]) NNZAxis(axis int) ([]int, error) {
	rank := len(c.shape)
	if rank > 2 {
		return nil, validateRank2(c.shape, opNNZAxis)
	}
	if axis < 0 {
		axis += rank
	}
	if axis < 0 || axis >= rank {
		return nil, sparseErrorf(opNNZAxis, fmt.Errorf("axis %d for rank %d: %w", axis, rank, ErrInvalidAxes))
	}
	if rank == 1 {
		return []int{c.NNZ()}, nil
	}
	other := 1 - axis
	counts := make([]int, c.shape[other])
	idx := c.indices[other]
	for k := 0; k < idx.Len(); k++ {
		counts[idx.At(k)]++
	}

	return counts, nil
}

// WithData returns a container with the receiver's sparsity structure and the
// given values. copy=true copies the coordinate arrays; otherwise they are
// shared. The values are always used as given.
// Errors: ErrDimensionMismatch when len(data) != NNZ().
func (c *COO[T]) WithData(data []T, copy bool) (*COO[T], error) {
	if len(data) != c.NNZ() {
		return nil, sparseErrorf(opWithData, fmt.Errorf("%d values for %d entries: %w", len(data), c.NNZ(), ErrDimensionMismatch))
	}
	if !copy {
		out := c.view()
		out.data = data

		return out, nil
	}
	indices := make([]IndexArray, len(c.indices))
	for ax, idx := range c.indices {
		indices[ax] = idx.Clone()
	}

	return &COO[T]{
		shape:     c.shape.Clone(),
		indices:   indices,
		data:      data,
		canonical: c.canonical,
		own:       newOwnership(),
		env:       c.env,
	}, nil
}

// Astype returns a copy of c with values converted to U. Coordinates are
// copied; the canonical flag is preserved.
func Astype[U, T Scalar](c *COO[T]) *COO[U] {
	indices := make([]IndexArray, len(c.indices))
	for ax, idx := range c.indices {
		indices[ax] = idx.Clone()
	}
	data := make([]U, len(c.data))
	for k, v := range c.data {
		data[k] = U(v)
	}

	return &COO[U]{
		shape:     c.shape.Clone(),
		indices:   indices,
		data:      data,
		canonical: c.canonical,
		own:       newOwnership(),
		env:       c.env,
	}
}

// SetTriplets replaces the stored entries. The new arrays are validated
// against the current shape first; on error the container is unchanged. The
// canonical flag is cleared.
func (c *COO[T]) SetTriplets(data []T, indices []IndexArray) error {
	arrs, err := validateTriplets(c.shape, indices, len(data))
	if err != nil {
		return sparseErrorf(opSetTriplets, err)
	}
	c.replace(arrs, ownData(data, false), false)

	return nil
}

// String summarizes the container, e.g.
// <COO sparse array of shape (4, 4), 7 stored elements, int32 indices>.
func (c *COO[T]) String() string {
	return fmt.Sprintf("<COO sparse array of shape %v, %d stored elements, %s indices>", c.shape, c.NNZ(), c.IndexWidth())
}
