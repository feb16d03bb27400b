// SPDX-License-Identifier: MIT

package sparse_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
)

func TestSelectIndexWidth(t *testing.T) {
	t.Parallel()

	small64 := sparse.IndexArrayOf64([]int64{0, 5, -3})
	wide64 := sparse.IndexArrayOf64([]int64{0, math.MaxInt32 + 1})
	neg64 := sparse.IndexArrayOf64([]int64{math.MinInt32 - 1})
	small32 := sparse.IndexArrayOf32([]int32{1, 2})

	tests := []struct {
		name   string
		maxval uint64
		check  bool
		arrays []sparse.IndexArray
		want   sparse.IndexWidth
	}{
		{"Zero", 0, false, nil, sparse.Int32},
		{"MaxInt32", math.MaxInt32, false, nil, sparse.Int32},
		{"AboveMaxInt32", math.MaxInt32 + 1, false, nil, sparse.Int64},
		{"MaxInt64", math.MaxInt64, true, nil, sparse.Int64},
		{"Int32ArrayNeverForces", 10, false, []sparse.IndexArray{small32}, sparse.Int32},
		{"Int64ArrayForcesWithoutCheck", 10, false, []sparse.IndexArray{small64}, sparse.Int64},
		{"Int64ArrayFitsWithCheck", 10, true, []sparse.IndexArray{small32, small64}, sparse.Int32},
		{"Int64ArrayTooWide", 10, true, []sparse.IndexArray{wide64}, sparse.Int64},
		{"LargeNegative", 10, true, []sparse.IndexArray{neg64}, sparse.Int64},
		{"EmptyInt64Array", 10, true, []sparse.IndexArray{sparse.NewIndexArray(sparse.Int64, 0)}, sparse.Int32},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := sparse.SelectIndexWidth(tc.maxval, tc.check, tc.arrays...)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}

	_, err := sparse.SelectIndexWidth(math.MaxInt64+1, false)
	require.ErrorIs(t, err, sparse.ErrIndexOverflow)
}

func TestWidthForRange(t *testing.T) {
	t.Parallel()

	w, err := sparse.ExportedWidthForRange(10, -5, 9)
	require.NoError(t, err)
	require.Equal(t, sparse.Int32, w)

	w, err = sparse.ExportedWidthForRange(10, math.MinInt32-1, 9)
	require.NoError(t, err)
	require.Equal(t, sparse.Int64, w)

	w, err = sparse.ExportedWidthForRange(math.MaxInt32+1, 0, 0)
	require.NoError(t, err)
	require.Equal(t, sparse.Int64, w)
}

func TestLinearBound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		shape sparse.Shape
		want  uint64
	}{
		{sparse.Shape{3, 4}, 11},
		{sparse.Shape{7}, 6},
		{sparse.Shape{2, 3, 4}, 23},
		{sparse.Shape{5, 0}, 0},
		{sparse.Shape{1 << 31, 2}, 1<<32 - 1},
	}
	for _, tc := range tests {
		got, err := sparse.ExportedLinearBound(tc.shape)
		require.NoError(t, err)
		require.Equalf(t, tc.want, got, "shape %v", tc.shape)
	}

	_, err := sparse.ExportedLinearBound(sparse.Shape{1 << 32, 1 << 32})
	require.ErrorIs(t, err, sparse.ErrIndexOverflow)
}

func TestMulAddBound(t *testing.T) {
	t.Parallel()

	got, err := sparse.ExportedMulAddBound(3, 4, 5)
	require.NoError(t, err)
	require.Equal(t, uint64(17), got)

	got, err = sparse.ExportedMulAddBound(1, math.MaxInt64, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxInt64), got)

	_, err = sparse.ExportedMulAddBound(1, math.MaxInt64, 1)
	require.ErrorIs(t, err, sparse.ErrIndexOverflow)
	_, err = sparse.ExportedMulAddBound(math.MaxUint32+1, math.MaxUint32+1, 0)
	require.ErrorIs(t, err, sparse.ErrIndexOverflow)
}

func TestIndexArray(t *testing.T) {
	t.Parallel()

	a, err := sparse.IndexArrayOf(sparse.Int32, []int{3, -1, 7})
	require.NoError(t, err)
	require.Equal(t, 3, a.Len())
	lo, hi, ok := a.MinMax()
	require.True(t, ok)
	require.Equal(t, -1, lo)
	require.Equal(t, 7, hi)

	wide := a.Astype(sparse.Int64)
	require.Equal(t, sparse.Int64, wide.Width())
	require.Equal(t, a.Ints(), wide.Ints())
	require.Nil(t, wide.Int32s())

	cl := a.Clone()
	cl.Set(0, 9)
	require.Equal(t, 3, a.At(0))

	_, err = sparse.IndexArrayOf(sparse.Int32, []int{math.MaxInt32 + 1})
	require.ErrorIs(t, err, sparse.ErrIndexOverflow)

	_, _, ok = sparse.NewIndexArray(sparse.Int64, 0).MinMax()
	require.False(t, ok)
}
