// SPDX-License-Identifier: MIT

package sparse_test

import (
	"testing"

	"github.com/katalvlaran/lvsparse/dense"
	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
)

// dupRows/dupCols/dupData is the 4×4 store with duplicate entries whose dense
// form is dupDense.
var (
	dupRows  = []int{0, 0, 1, 3, 1, 0, 0}
	dupCols  = []int{0, 2, 1, 3, 1, 0, 0}
	dupData  = []int{1, 1, 1, 1, 1, 1, 1}
	dupDense = [][]int{
		{3, 0, 1, 0},
		{0, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 1},
	}
)

// mustDup builds a fresh copy of the 4×4 duplicate store.
func mustDup(t *testing.T, opts ...sparse.Option) *sparse.COO[int] {
	t.Helper()
	opts = append([]sparse.Option{sparse.WithShape(4, 4), sparse.WithCopy(true)}, opts...)
	c, err := sparse.NewFromTriplets(dupData, [][]int{dupRows, dupCols}, opts...)
	require.NoError(t, err)

	return c
}

// mustRows builds a dense matrix or fails the test.
func mustRows[T sparse.Scalar](t *testing.T, rows [][]T) *dense.Array[T] {
	t.Helper()
	a, err := dense.FromRows(rows)
	require.NoError(t, err)

	return a
}

// requireDense asserts that s densifies to want.
func requireDense[T sparse.Scalar](t *testing.T, want [][]T, s sparse.Sparse[T]) {
	t.Helper()
	got, err := s.ToDense()
	require.NoError(t, err)
	require.Truef(t, mustRows(t, want).Equal(got), "want %v, got %v", want, got)
}

// fromDense extracts a COO from rows or fails the test.
func fromDense[T sparse.Scalar](t *testing.T, rows [][]T) *sparse.COO[T] {
	t.Helper()
	c, err := sparse.FromDense(mustRows(t, rows))
	require.NoError(t, err)

	return c
}
