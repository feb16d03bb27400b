// SPDX-License-Identifier: MIT

// Package sparse - dense bridge (COO → dense, dense + COO).

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/dense"
)

// ToDense materializes the store; duplicate entries accumulate.
// Errors: ErrUnsupported for rank > 2.
// Complexity: O(size + rank·nnz).
func (c *COO[T]) ToDense() (*dense.Array[T], error) {
	if c.shape.Rank() > 2 {
		return nil, sparseErrorf(opToDense, fmt.Errorf("cannot densify higher-rank sparse array: %w", ErrUnsupported))
	}
	out, err := dense.New[T](c.shape...)
	if err != nil {
		return nil, sparseErrorf(opToDense, err)
	}
	c.scatterAdd(out.Data())

	return out, nil
}

// AddDense returns d + c as a new dense array; d is not modified.
// Errors: ErrNilContainer, ErrDimensionMismatch when the shapes differ.
// Complexity: O(size + rank·nnz).
func (c *COO[T]) AddDense(d *dense.Array[T]) (*dense.Array[T], error) {
	if d == nil {
		return nil, sparseErrorf(opAddDense, ErrNilContainer)
	}
	if !c.shape.Equal(Shape(d.Shape())) {
		return nil, sparseErrorf(opAddDense, fmt.Errorf("incompatible shapes (%v and %v): %w", c.shape, Shape(d.Shape()), ErrDimensionMismatch))
	}
	out := d.Clone()
	c.scatterAdd(out.Data())

	return out, nil
}

// scatterAdd adds every entry into the row-major buffer buf of c's shape.
func (c *COO[T]) scatterAdd(buf []T) {
	strides := dense.Strides(c.shape, OrderC)
	for e, v := range c.data {
		off := 0
		for ax, idx := range c.indices {
			off += idx.At(e) * strides[ax]
		}
		buf[off] += v
	}
}
