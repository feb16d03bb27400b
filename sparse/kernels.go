// SPDX-License-Identifier: MIT

// Package sparse - triplet-scan algebraic kernels.
//
// Both kernels are a single pass over the stored entries per right-hand
// vector; duplicates contribute additively, so no canonicalization is needed.

package sparse

import (
	"fmt"

	"github.com/katalvlaran/lvsparse/dense"
)

// MulVec returns A·x for a matrix A.
// Errors: ErrUnsupported for rank != 2, ErrDimensionMismatch when
// len(x) != cols.
// Complexity: O(nnz + rows).
func (c *COO[T]) MulVec(x []T) ([]T, error) {
	if err := validateRank2(c.shape, opMulVec); err != nil {
		return nil, err
	}
	if len(x) != c.shape[1] {
		return nil, sparseErrorf(opMulVec, fmt.Errorf("vector of length %d for shape %v: %w", len(x), c.shape, ErrDimensionMismatch))
	}
	out := make([]T, c.shape[0])
	c.matvec(x, out)

	return out, nil
}

// MulMat returns A·X for a matrix A and a dense X of shape (cols, k),
// one vector kernel pass per column of X.
// Errors: ErrNilContainer, ErrUnsupported, ErrDimensionMismatch.
// Complexity: O(k·(nnz + rows + cols)).
func (c *COO[T]) MulMat(x *dense.Array[T]) (*dense.Array[T], error) {
	if err := validateRank2(c.shape, opMulMat); err != nil {
		return nil, err
	}
	if x == nil {
		return nil, sparseErrorf(opMulMat, ErrNilContainer)
	}
	xs := x.Shape()
	if len(xs) != 2 || xs[0] != c.shape[1] {
		return nil, sparseErrorf(opMulMat, fmt.Errorf("operand shape %v for %v: %w", xs, c.shape, ErrDimensionMismatch))
	}
	rows, k := c.shape[0], xs[1]
	out, err := dense.New[T](rows, k)
	if err != nil {
		return nil, sparseErrorf(opMulMat, err)
	}

	xbuf, obuf := x.Data(), out.Data()
	vec := make([]T, xs[0])
	res := make([]T, rows)
	for j := 0; j < k; j++ {
		for i := range vec {
			vec[i] = xbuf[i*k+j]
		}
		clear(res)
		c.matvec(vec, res)
		for i, v := range res {
			obuf[i*k+j] = v
		}
	}

	return out, nil
}

// matvec dispatches to the typed kernel.
func (c *COO[T]) matvec(x, out []T) {
	row, col := c.indices[0], c.indices[1]
	if row.Width() == Int64 {
		matvec(row.Int64s(), col.Int64s(), c.data, x, out)
		return
	}
	matvec(row.Int32s(), col.Int32s(), c.data, x, out)
}

// matvec accumulates out[row] += v * x[col] over all entries.
func matvec[I indexInt, T Scalar](row, col []I, data []T, x, out []T) {
	for k, v := range data {
		out[row[k]] += v * x[col[k]]
	}
}
