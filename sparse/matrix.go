// SPDX-License-Identifier: MIT

// Package sparse - Matrix: the strictly rank-2 view of a triplet store.
//
// Matrix embeds *COO, so every attribute, conversion and mutator is shared.
// It only narrows the operations whose rank-flexible form makes no sense for
// a matrix (reshape/resize to other ranks, axis permutations) and adds the
// operator form of multiplication.

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/dense"
)

// Matrix is a COO store constrained to exactly two axes.
type Matrix[T Scalar] struct {
	*COO[T]
}

// NewMatrix wraps c, which must have rank 2. The container is shared, not
// copied.
// Errors: ErrNilContainer, ErrBadShape.
func NewMatrix[T Scalar](c *COO[T]) (*Matrix[T], error) {
	if c == nil {
		return nil, sparseErrorf(opMatrix, ErrNilContainer)
	}
	if err := checkShape(c.shape, true); err != nil {
		return nil, sparseErrorf(opMatrix, err)
	}

	return &Matrix[T]{c}, nil
}

// Array returns the underlying rank-flexible store.
func (m *Matrix[T]) Array() *COO[T] { return m.COO }

// Transpose swaps rows and columns. Matrices reject an explicit axes
// argument: swapping is the only permutation of two axes.
// Errors: ErrUnsupported when axes is non-nil.
func (m *Matrix[T]) Transpose(axes []int, copy bool) (*Matrix[T], error) {
	if axes != nil {
		return nil, sparseErrorf(opTranspose, fmt.Errorf("sparse matrices do not support an axes parameter: %w", ErrUnsupported))
	}
	t, err := m.COO.Transpose(nil, copy)
	if err != nil {
		return nil, err
	}

	return &Matrix[T]{t}, nil
}

// Reshape is COO.Reshape restricted to rank-2 targets.
// Errors: ErrBadShape for other ranks, then as COO.Reshape.
func (m *Matrix[T]) Reshape(shape []int, opts ...Option) (*Matrix[T], error) {
	if err := checkShape(shape, true); err != nil {
		return nil, sparseErrorf(opReshape, err)
	}
	r, err := m.COO.Reshape(shape, opts...)
	if err != nil {
		return nil, err
	}

	return &Matrix[T]{r}, nil
}

// Resize is COO.Resize restricted to rank-2 targets.
func (m *Matrix[T]) Resize(shape ...int) error {
	if err := checkShape(shape, true); err != nil {
		return sparseErrorf(opResize, err)
	}

	return m.COO.Resize(shape...)
}

// Mul applies the matrix to a dense operand: a vector (rank 1, length cols)
// yields a vector of length rows; a matrix (cols × k) yields rows × k.
// Errors: ErrNilContainer, ErrDimensionMismatch.
func (m *Matrix[T]) Mul(x *dense.Array[T]) (*dense.Array[T], error) {
	if x == nil {
		return nil, sparseErrorf(opMulVec, ErrNilContainer)
	}
	switch x.Rank() {
	case 1:
		y, err := m.MulVec(x.Data())
		if err != nil {
			return nil, err
		}
		return dense.Vector(y...), nil
	case 2:
		return m.MulMat(x)
	default:
		return nil, sparseErrorf(opMulMat, fmt.Errorf("operand rank %d: %w", x.Rank(), ErrDimensionMismatch))
	}
}
