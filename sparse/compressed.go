// SPDX-License-Identifier: MIT

// Package sparse - compressed containers (CSR / CSC).
//
// Layout (rank 2 only):
//   - indptr:  length majorDim+1, non-decreasing, indptr[0] = 0, indptr[last] = nnz.
//   - indices: minor coordinate of each entry, bucketed by major coordinate.
//   - data:    values parallel to indices.
//
// CSR buckets by row (major axis 0), CSC by column (major axis 1). Both share
// one implementation; the wrapper types only fix the major axis and the
// Format tag.

package sparse

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/katalvlaran/lvsparse/dense"
)

// compressed is the storage shared by CSR and CSC.
type compressed[T Scalar] struct {
	shape     Shape
	majorAxis int
	indptr    IndexArray
	indices   IndexArray
	data      []T
	canonical bool

	own *ownership
	env env
}

// CSR is the Compressed Sparse Row container.
type CSR[T Scalar] struct{ compressed[T] }

// CSC is the Compressed Sparse Column container.
type CSC[T Scalar] struct{ compressed[T] }

// NewCSR wraps pre-built CSR arrays after validating them. The arrays are
// aliased unless WithCopy(true). The result is not assumed canonical.
// Errors: ErrBadShape, ErrDimensionMismatch, ErrOutOfRange.
func NewCSR[T Scalar](shape Shape, indptr, indices IndexArray, data []T, opts ...Option) (*CSR[T], error) {
	c, err := newCompressed(0, shape, indptr, indices, data, opts...)
	if err != nil {
		return nil, sparseErrorf(opToCSR, err)
	}

	return &CSR[T]{c}, nil
}

// NewCSC wraps pre-built CSC arrays after validating them.
// Errors: as NewCSR.
func NewCSC[T Scalar](shape Shape, indptr, indices IndexArray, data []T, opts ...Option) (*CSC[T], error) {
	c, err := newCompressed(1, shape, indptr, indices, data, opts...)
	if err != nil {
		return nil, sparseErrorf(opToCSC, err)
	}

	return &CSC[T]{c}, nil
}

func newCompressed[T Scalar](majorAxis int, shape Shape, indptr, indices IndexArray, data []T, opts ...Option) (compressed[T], error) {
	o := gatherOptions(opts...)
	c := compressed[T]{
		shape:     shape.Clone(),
		majorAxis: majorAxis,
		indptr:    indptr,
		indices:   indices,
		data:      ownData(data, o.copy),
		own:       newOwnership(),
		env:       o.env(),
	}
	if o.copy {
		c.indptr, c.indices = indptr.Clone(), indices.Clone()
	}
	if err := c.validate(); err != nil {
		return compressed[T]{}, err
	}
	c.canonical = c.sortedUnique()

	return c, nil
}

// Shape returns a copy of the container shape.
func (c *compressed[T]) Shape() Shape { return c.shape.Clone() }

// NNZ returns the number of stored entries.
func (c *compressed[T]) NNZ() int { return len(c.data) }

// Indptr returns the bucket offsets (shared backing).
func (c *compressed[T]) Indptr() IndexArray { return c.indptr }

// Indices returns the minor coordinates (shared backing).
func (c *compressed[T]) Indices() IndexArray { return c.indices }

// Data returns the stored values (shared backing).
func (c *compressed[T]) Data() []T { return c.data }

// HasCanonicalFormat reports whether every bucket is sorted and duplicate-free.
func (c *compressed[T]) HasCanonicalFormat() bool { return c.canonical }

// IndexWidth returns the width of indptr and indices.
func (c *compressed[T]) IndexWidth() IndexWidth { return c.indices.Width() }

// Aliased reports whether another container shares this one's buffers.
func (c *compressed[T]) Aliased() bool { return c.own.shared() }

// Check validates the compressed layout.
func (c *compressed[T]) Check() error {
	if err := c.validate(); err != nil {
		return sparseErrorf(opCompressCheck, err)
	}

	return nil
}

// validate checks rank, indptr shape and monotonicity, lengths and minor bounds.
func (c *compressed[T]) validate() error {
	if err := checkShape(c.shape, true); err != nil {
		return err
	}
	majorDim, minorDim := c.dims()
	if c.indptr.Len() != majorDim+1 {
		return fmt.Errorf("indptr has length %d, expected %d: %w", c.indptr.Len(), majorDim+1, ErrDimensionMismatch)
	}
	if c.indices.Len() != len(c.data) {
		return fmt.Errorf("indices and data have lengths %d and %d: %w", c.indices.Len(), len(c.data), ErrDimensionMismatch)
	}
	if c.indices.Width() != c.indptr.Width() {
		c.indptr = c.indptr.Astype(Int64)
		c.indices = c.indices.Astype(Int64)
	}
	if c.indptr.At(0) != 0 {
		return fmt.Errorf("indptr[0] = %d, expected 0: %w", c.indptr.At(0), ErrOutOfRange)
	}
	for i := 0; i < majorDim; i++ {
		if c.indptr.At(i+1) < c.indptr.At(i) {
			return fmt.Errorf("indptr decreases at %d: %w", i, ErrOutOfRange)
		}
	}
	if last := c.indptr.At(majorDim); last != len(c.data) {
		return fmt.Errorf("indptr ends at %d for %d entries: %w", last, len(c.data), ErrDimensionMismatch)
	}
	if lo, hi, ok := c.indices.MinMax(); ok {
		if hi >= minorDim {
			return fmt.Errorf("axis %d index %d exceeds matrix dimension %d: %w", 1-c.majorAxis, hi, minorDim, ErrOutOfRange)
		}
		if lo < 0 {
			return fmt.Errorf("negative axis %d index: %d: %w", 1-c.majorAxis, lo, ErrOutOfRange)
		}
	}

	return nil
}

// dims returns (majorDim, minorDim).
func (c *compressed[T]) dims() (int, int) {
	return c.shape[c.majorAxis], c.shape[1-c.majorAxis]
}

// sortedUnique reports whether minor coordinates strictly increase per bucket.
func (c *compressed[T]) sortedUnique() bool {
	majorDim, _ := c.dims()
	for i := 0; i < majorDim; i++ {
		for k := c.indptr.At(i) + 1; k < c.indptr.At(i+1); k++ {
			if c.indices.At(k-1) >= c.indices.At(k) {
				return false
			}
		}
	}

	return true
}

// SumDuplicates sorts every bucket by minor coordinate and merges duplicates.
// Complexity: O(nnz log b) for bucket size b.
func (c *compressed[T]) SumDuplicates() {
	if c.canonical {
		return
	}
	majorDim, _ := c.dims()
	w := c.indices.Width()
	indptr := NewIndexArray(w, majorDim+1)
	minor := make([]int, 0, c.NNZ())
	data := make([]T, 0, c.NNZ())

	var perm []int
	for i := 0; i < majorDim; i++ {
		start, end := c.indptr.At(i), c.indptr.At(i+1)
		perm = perm[:0]
		for k := start; k < end; k++ {
			perm = append(perm, k)
		}
		slices.SortStableFunc(perm, func(a, b int) int {
			return cmp.Compare(c.indices.At(a), c.indices.At(b))
		})
		head := len(minor)
		for _, k := range perm {
			m := c.indices.At(k)
			if len(minor) > head && minor[len(minor)-1] == m {
				data[len(data)-1] += c.data[k]
				continue
			}
			minor = append(minor, m)
			data = append(data, c.data[k])
		}
		indptr.Set(i+1, len(minor))
	}

	indices := NewIndexArray(w, 0).concat(minor)
	c.indptr, c.indices, c.data = indptr, indices, data
	c.canonical = true
	c.own = c.own.detach()
}

// ToCOO expands the major coordinates. With copy=false the minor coordinates
// and values are shared with the result.
func (c *compressed[T]) ToCOO(copy bool) (*COO[T], error) {
	majorDim, _ := c.dims()
	n := c.NNZ()
	major := NewIndexArray(c.indices.Width(), n)
	for i := 0; i < majorDim; i++ {
		for k := c.indptr.At(i); k < c.indptr.At(i+1); k++ {
			major.Set(k, i)
		}
	}
	minor, data := c.indices, c.data
	if copy {
		minor, data = minor.Clone(), append([]T(nil), data...)
	}
	indices := make([]IndexArray, 2)
	indices[c.majorAxis], indices[1-c.majorAxis] = major, minor

	arrs, err := validateTriplets(c.shape, indices, n)
	if err != nil {
		return nil, err
	}
	out := &COO[T]{
		shape:     c.shape.Clone(),
		indices:   arrs,
		data:      data,
		canonical: c.canonical && (c.majorAxis == 0 || isCanonical(arrs, n)),
		env:       c.env,
	}
	if copy {
		out.own = newOwnership()
	} else {
		if c.own == nil {
			c.own = newOwnership()
		}
		out.own = c.own.share()
	}

	return out, nil
}

// ToDense materializes the matrix.
func (c *compressed[T]) ToDense() (*dense.Array[T], error) {
	coo, err := c.ToCOO(false)
	if err != nil {
		return nil, sparseErrorf(opToDense, err)
	}

	return coo.ToDense()
}

// ToDIA converts through COO.
func (c *compressed[T]) ToDIA(copy bool) (*DIA[T], error) {
	coo, err := c.ToCOO(true)
	if err != nil {
		return nil, sparseErrorf(opToDIA, err)
	}

	return coo.ToDIA(false)
}

// ToDOK converts through COO.
func (c *compressed[T]) ToDOK(copy bool) (*DOK[T], error) {
	coo, err := c.ToCOO(true)
	if err != nil {
		return nil, sparseErrorf(opToDOK, err)
	}

	return coo.ToDOK(false)
}

// clone deep-copies the storage.
func (c *compressed[T]) clone() compressed[T] {
	out := *c
	out.shape = c.shape.Clone()
	out.indptr = c.indptr.Clone()
	out.indices = c.indices.Clone()
	out.data = append([]T(nil), c.data...)
	out.own = newOwnership()

	return out
}

// Format reports FormatCSR.
func (m *CSR[T]) Format() Format { return FormatCSR }

// ToCSR returns the receiver, or a deep copy with copy=true.
func (m *CSR[T]) ToCSR(copy bool) (*CSR[T], error) {
	if copy {
		return &CSR[T]{m.clone()}, nil
	}

	return m, nil
}

// ToCSC converts through COO.
func (m *CSR[T]) ToCSC(copy bool) (*CSC[T], error) {
	coo, err := m.ToCOO(false)
	if err != nil {
		return nil, sparseErrorf(opToCSC, err)
	}

	return coo.ToCSC(copy)
}

// Transpose returns the CSC container holding the transposed matrix; the
// arrays are shared unless copy is set.
func (m *CSR[T]) Transpose(copy bool) *CSC[T] {
	return &CSC[T]{transposeCompressed(&m.compressed, copy)}
}

// Format reports FormatCSC.
func (m *CSC[T]) Format() Format { return FormatCSC }

// ToCSC returns the receiver, or a deep copy with copy=true.
func (m *CSC[T]) ToCSC(copy bool) (*CSC[T], error) {
	if copy {
		return &CSC[T]{m.clone()}, nil
	}

	return m, nil
}

// ToCSR converts through COO.
func (m *CSC[T]) ToCSR(copy bool) (*CSR[T], error) {
	coo, err := m.ToCOO(false)
	if err != nil {
		return nil, sparseErrorf(opToCSR, err)
	}

	return coo.ToCSR(copy)
}

// Transpose returns the CSR container holding the transposed matrix.
func (m *CSC[T]) Transpose(copy bool) *CSR[T] {
	return &CSR[T]{transposeCompressed(&m.compressed, copy)}
}

// transposeCompressed reinterprets the buckets along the other axis: the
// arrays are unchanged and only the shape and major axis swap.
func transposeCompressed[T Scalar](c *compressed[T], copy bool) compressed[T] {
	var out compressed[T]
	if copy {
		out = c.clone()
	} else {
		out = *c
		if c.own == nil {
			c.own = newOwnership()
		}
		out.own = c.own.share()
	}
	out.shape = Shape{c.shape[1], c.shape[0]}
	out.majorAxis = 1 - c.majorAxis

	return out
}
