// SPDX-License-Identifier: MIT

package dense_test

import (
	"testing"

	"github.com/katalvlaran/lvsparse/dense"
	"github.com/stretchr/testify/require"
)

func TestNew_ShapeValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		shape   []int
		size    int
		wantErr error
	}{
		{"matrix", []int{2, 3}, 6, nil},
		{"vector", []int{4}, 4, nil},
		{"zero axis", []int{0, 5}, 0, nil},
		{"rank 3", []int{2, 2, 2}, 8, nil},
		{"no axes", nil, 0, dense.ErrBadShape},
		{"negative", []int{2, -1}, 0, dense.ErrBadShape},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			a, err := dense.New[float64](tc.shape...)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.size, a.Size())
			require.Equal(t, tc.shape, a.Shape())
		})
	}
}

func TestArray_AtSet(t *testing.T) {
	t.Parallel()

	a, err := dense.New[int](2, 3)
	require.NoError(t, err)
	require.NoError(t, a.Set(7, 1, 2))

	v, err := a.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7, v)
	require.Equal(t, []int{0, 0, 0, 0, 0, 7}, a.Data())

	_, err = a.At(2, 0)
	require.ErrorIs(t, err, dense.ErrOutOfRange)
	_, err = a.At(0)
	require.ErrorIs(t, err, dense.ErrOutOfRange)
	require.ErrorIs(t, a.Set(1, 0, -1), dense.ErrOutOfRange)
}

func TestFromRows(t *testing.T) {
	t.Parallel()

	a, err := dense.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.Equal(t, []int{2, 2}, a.Shape())
	require.Equal(t, []float64{1, 2, 3, 4}, a.Data())

	_, err = dense.FromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)
}

func TestFromSlice_CopiesInput(t *testing.T) {
	t.Parallel()

	src := []int{1, 2, 3, 4, 5, 6}
	a, err := dense.FromSlice(src, 3, 2)
	require.NoError(t, err)
	src[0] = 99
	v, err := a.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1, v)

	_, err = dense.FromSlice(src, 4, 2)
	require.ErrorIs(t, err, dense.ErrDimensionMismatch)
}

func TestArray_Flatten(t *testing.T) {
	t.Parallel()

	a, err := dense.FromRows([][]int{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)

	c, err := a.Flatten(dense.OrderC)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3, 4, 5, 6}, c)

	f, err := a.Flatten(dense.OrderF)
	require.NoError(t, err)
	require.Equal(t, []int{1, 4, 2, 5, 3, 6}, f)

	_, err = a.Flatten(dense.Order('A'))
	require.ErrorIs(t, err, dense.ErrInvalidOrder)
}

func TestArray_Nonzero(t *testing.T) {
	t.Parallel()

	a, err := dense.FromRows([][]int{{0, 2, 0}, {3, 0, 4}})
	require.NoError(t, err)
	nz := a.Nonzero()
	require.Equal(t, [][]int{{0, 1, 1}, {1, 0, 2}}, nz)

	z, err := dense.New[int](2, 2)
	require.NoError(t, err)
	require.Equal(t, [][]int{{}, {}}, z.Nonzero())
}

func TestArray_CloneEqual(t *testing.T) {
	t.Parallel()

	a := dense.Vector(1.0, 2.0, 3.0)
	b := a.Clone()
	require.True(t, a.Equal(b))
	require.NoError(t, b.Set(5, 0))
	require.False(t, a.Equal(b))

	c, err := dense.FromSlice([]float64{1, 2, 3}, 3, 1)
	require.NoError(t, err)
	require.False(t, a.Equal(c))
}

func TestStrides(t *testing.T) {
	t.Parallel()

	require.Equal(t, []int{12, 4, 1}, dense.Strides([]int{2, 3, 4}, dense.OrderC))
	require.Equal(t, []int{1, 2, 6}, dense.Strides([]int{2, 3, 4}, dense.OrderF))
	require.Equal(t, "C", dense.OrderC.String())
	require.True(t, dense.OrderF.Valid())
	require.False(t, dense.Order('K').Valid())
}
