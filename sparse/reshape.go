// SPDX-License-Identifier: MIT

// Package sparse - reshape and transpose.
//
// Purpose:
//   - Reshape: re-index entries under a new shape of equal size by linearizing
//     each coordinate tuple (C or F order) and unravelling it against the new
//     shape. The linear offsets are held at a width chosen from the largest
//     possible offset, so the products never wrap.
//   - Transpose: permute axes (shape and coordinate arrays together).

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/dense"
)

// Reshape returns a container of the given shape holding the same elements in
// the same linear order.
// MAIN DESCRIPTION:
//   - Options: WithOrder (OrderC default, or OrderF), WithCopy.
//   - A same-shape request returns the receiver, or a copy with WithCopy(true).
//   - Otherwise the result has new coordinate arrays; its values are shared
//     with the receiver unless WithCopy(true).
//   - The result width is re-minimized for the new shape.
//
// Errors:
//   - ErrInvalidOrder, ErrBadShape, ErrShapeMismatch (element counts differ),
//     ErrIndexOverflow.
//
// Complexity:
//   - Time O(rank·nnz), Space O(rank·nnz).
func (c *COO[T]) Reshape(shape []int, opts ...Option) (*COO[T], error) {
	o := gatherOptions(opts...)
	if !o.order.Valid() {
		return nil, sparseErrorf(opReshape, fmt.Errorf("order %q: %w", rune(o.order), ErrInvalidOrder))
	}
	target := Shape(shape).Clone()
	if err := checkShape(target, false); err != nil {
		return nil, sparseErrorf(opReshape, err)
	}
	oldSize, err := c.shape.Size()
	if err != nil {
		return nil, sparseErrorf(opReshape, err)
	}
	newSize, err := target.Size()
	if err != nil {
		return nil, sparseErrorf(opReshape, err)
	}
	if oldSize != newSize {
		return nil, sparseErrorf(opReshape, fmt.Errorf("cannot reshape %v (size %d) into %v (size %d): %w",
			c.shape, oldSize, target, newSize, ErrShapeMismatch))
	}
	if target.Equal(c.shape) {
		if o.copy {
			return c.Copy(), nil
		}
		return c, nil
	}

	n := c.NNZ()
	flat, err := linearize(c.shape, c.indices, n, o.order)
	if err != nil {
		return nil, sparseErrorf(opReshape, err)
	}
	arrs, err := unravel(flat, target, o.order)
	if err != nil {
		return nil, sparseErrorf(opReshape, err)
	}
	arrs, err = validateTriplets(target, arrs, n)
	if err != nil {
		return nil, sparseErrorf(opReshape, err)
	}

	out := &COO[T]{
		shape:     target,
		indices:   arrs,
		canonical: c.canonical && (o.order == OrderC || isCanonical(arrs, n)),
		env:       c.env,
	}
	if o.copy {
		out.data = append([]T(nil), c.data...)
		out.own = newOwnership()
	} else {
		out.data = c.data
		out.own = c.shareOwnership()
	}

	l := Logger()
	l.Debug().
		Stringer("from", c.shape).
		Stringer("to", target).
		Stringer("order", o.order).
		Int("nnz", n).
		Stringer("width", out.IndexWidth()).
		Msg("reshape")

	return out, nil
}

// Transpose permutes the axes. A nil axes reverses them (the matrix
// transpose for rank 2). With copy=false the result shares the receiver's
// buffers.
// Errors: ErrInvalidAxes when axes is not a permutation of 0..rank-1.
// Complexity: O(rank) shared, O(rank·nnz) with copy.
func (c *COO[T]) Transpose(axes []int, copy bool) (*COO[T], error) {
	rank := len(c.shape)
	if axes == nil {
		axes = make([]int, rank)
		for i := range axes {
			axes[i] = rank - 1 - i
		}
	}
	if err := validatePermutation(axes, rank); err != nil {
		return nil, sparseErrorf(opTranspose, err)
	}

	shape := make(Shape, rank)
	indices := make([]IndexArray, rank)
	for i, a := range axes {
		shape[i] = c.shape[a]
		indices[i] = c.indices[a]
		if copy {
			indices[i] = indices[i].Clone()
		}
	}
	n := c.NNZ()
	out := &COO[T]{
		shape:     shape,
		indices:   indices,
		canonical: c.canonical && isCanonical(indices, n),
		env:       c.env,
	}
	if copy {
		out.data = append([]T(nil), c.data...)
		out.own = newOwnership()
	} else {
		out.data = c.data
		out.own = c.shareOwnership()
	}

	return out, nil
}

// shareOwnership registers one more container on the receiver's buffers.
func (c *COO[T]) shareOwnership() *ownership {
	if c.own == nil {
		c.own = newOwnership()
	}

	return c.own.share()
}

// linearize returns the flat offset of each of the n entries under shape and
// order, at a width able to hold the largest offset of shape.
func linearize(shape Shape, indices []IndexArray, n int, o Order) (IndexArray, error) {
	bound, err := linearBound(shape)
	if err != nil {
		return IndexArray{}, err
	}
	w, err := SelectIndexWidth(bound, false)
	if err != nil {
		return IndexArray{}, err
	}
	strides := dense.Strides(shape, o)
	flat := NewIndexArray(w, n)
	for k := 0; k < n; k++ {
		off := 0
		for ax, idx := range indices {
			off += idx.At(k) * strides[ax]
		}
		flat.Set(k, off)
	}

	return flat, nil
}

// unravel splits flat offsets into per-axis coordinates of shape under order.
func unravel(flat IndexArray, shape Shape, o Order) ([]IndexArray, error) {
	w, err := SelectIndexWidth(uint64(shape.Max()), false)
	if err != nil {
		return nil, err
	}
	strides := dense.Strides(shape, o)
	n := flat.Len()
	out := make([]IndexArray, len(shape))
	for ax := range out {
		out[ax] = NewIndexArray(w, n)
	}
	for k := 0; k < n; k++ {
		off := flat.At(k)
		for ax, d := range shape {
			out[ax].Set(k, (off/strides[ax])%d)
		}
	}

	return out, nil
}
