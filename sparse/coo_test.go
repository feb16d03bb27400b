// SPDX-License-Identifier: MIT

package sparse_test

import (
	"testing"

	"github.com/katalvlaran/lvsparse/dense"
	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
)

func TestNewFromTriplets_DuplicatesSummedInDense(t *testing.T) {
	t.Parallel()

	c := mustDup(t)
	require.Equal(t, sparse.Shape{4, 4}, c.Shape())
	require.Equal(t, 2, c.Ndim())
	require.Equal(t, 7, c.NNZ())
	require.False(t, c.HasCanonicalFormat())
	require.Equal(t, sparse.Int32, c.IndexWidth())
	requireDense(t, dupDense, c)
}

func TestNewFromTriplets_OneDimensional(t *testing.T) {
	t.Parallel()

	c, err := sparse.NewFromTriplets([]int{9, 8}, [][]int{{1, 2}}, sparse.WithShape(4))
	require.NoError(t, err)
	got, err := c.ToDense()
	require.NoError(t, err)
	require.Equal(t, []int{0, 9, 8, 0}, got.Data())
	require.Equal(t, []int{4}, got.Shape())

	inferred, err := sparse.NewFromTriplets([]int{9, 8}, [][]int{{1, 2}})
	require.NoError(t, err)
	require.Equal(t, sparse.Shape{3}, inferred.Shape())
	got, err = inferred.ToDense()
	require.NoError(t, err)
	require.Equal(t, []int{0, 9, 8}, got.Data())

	// A 1-D store is a single column.
	require.Equal(t, []int{1, 2}, c.Row().Ints())
	require.Equal(t, []int{0, 0}, c.Col().Ints())
}

func TestNewFromTriplets_ShapeInference(t *testing.T) {
	t.Parallel()

	c, err := sparse.NewFromTriplets([]float64{1, 2, 3}, [][]int{{0, 4, 2}, {1, 1, 6}})
	require.NoError(t, err)
	require.Equal(t, sparse.Shape{5, 7}, c.Shape())
}

func TestNewFromTriplets_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []float64
		indices [][]int
		opts    []sparse.Option
		wantErr error
		wantMsg string
	}{
		{"no index sequences", []float64{1}, nil, nil, sparse.ErrInvalidFormat, ""},
		{"empty inference", []float64{}, [][]int{{}, {}}, nil, sparse.ErrEmptyInference, ""},
		{"length mismatch", []float64{1, 2}, [][]int{{0, 1, 1}, {0, 1, 0}}, nil, sparse.ErrDimensionMismatch, ""},
		{"rank mismatch", []float64{1}, [][]int{{0}}, []sparse.Option{sparse.WithShape(2, 2)}, sparse.ErrDimensionMismatch, "got 1, expected 2"},
		{"row too large", []float64{1, 2}, [][]int{{0, 2}, {0, 1}}, []sparse.Option{sparse.WithShape(2, 2)}, sparse.ErrOutOfRange, "axis 0 index 2 exceeds matrix dimension 2"},
		{"col too large", []float64{1}, [][]int{{0}, {5}}, []sparse.Option{sparse.WithShape(2, 2)}, sparse.ErrOutOfRange, "axis 1 index 5 exceeds matrix dimension 2"},
		{"negative", []float64{1, 2}, [][]int{{-1, 1}, {0, 1}}, []sparse.Option{sparse.WithShape(2, 2)}, sparse.ErrOutOfRange, "negative axis 0 index: -1"},
		{"negative shape", []float64{1}, [][]int{{0}}, []sparse.Option{sparse.WithShape(-1)}, sparse.ErrBadShape, ""},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := sparse.NewFromTriplets(tc.data, tc.indices, tc.opts...)
			require.ErrorIs(t, err, tc.wantErr)
			if tc.wantMsg != "" {
				require.ErrorContains(t, err, tc.wantMsg)
			}
		})
	}
}

func TestNewFromTriplets_NonIntegerIndexDiagnostic(t *testing.T) {
	t.Parallel()

	rec := &sparse.DiagnosticRecorder{}
	c, err := sparse.NewFromTriplets([]float64{1, 2}, [][]float64{{0, 1.7}, {1, 0}},
		sparse.WithShape(2, 2), sparse.WithDiagnostics(rec))
	require.NoError(t, err)
	require.Equal(t, 2, rec.Count(sparse.DiagNonIntegerIndex))
	require.Equal(t, 0, rec.Count(sparse.DiagSparseEfficiency))
	require.Equal(t, "index array 0 has non-integer dtype (float64)", rec.Diagnostics()[0].Message)
	requireDense(t, [][]float64{{0, 1}, {2, 0}}, c)

	// Integer coordinates raise nothing.
	rec2 := &sparse.DiagnosticRecorder{}
	_, err = sparse.NewFromTriplets([]float64{1}, [][]int64{{0}, {0}}, sparse.WithDiagnostics(rec2))
	require.NoError(t, err)
	require.Empty(t, rec2.Diagnostics())
}

func TestNewFromTriplets_CopyControlsDataAliasing(t *testing.T) {
	t.Parallel()

	data := []float64{1, 2}
	shared, err := sparse.NewFromTriplets(data, [][]int{{0, 1}})
	require.NoError(t, err)
	owned, err := sparse.NewFromTriplets(data, [][]int{{0, 1}}, sparse.WithCopy(true))
	require.NoError(t, err)

	data[0] = 10
	require.Equal(t, 10.0, shared.Data()[0])
	require.Equal(t, 1.0, owned.Data()[0])
}

func TestNewEmpty(t *testing.T) {
	t.Parallel()

	c, err := sparse.NewEmpty[float64](3)
	require.NoError(t, err)
	require.Equal(t, 0, c.NNZ())
	require.True(t, c.HasCanonicalFormat())
	got, err := c.ToDense()
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0}, got.Data())

	_, err = sparse.NewEmpty[float64]()
	require.ErrorIs(t, err, sparse.ErrBadShape)
	_, err = sparse.NewEmpty[float64](2, -3)
	require.ErrorIs(t, err, sparse.ErrBadShape)
}

func TestNewEmpty_IndexWidthFollowsShape(t *testing.T) {
	t.Parallel()

	small, err := sparse.NewEmpty[float32](3, 4)
	require.NoError(t, err)
	require.Equal(t, sparse.Int32, small.IndexWidth())

	wide, err := sparse.NewEmpty[float32](3, 1<<31)
	require.NoError(t, err)
	require.Equal(t, sparse.Int64, wide.IndexWidth())
	require.Equal(t, sparse.Int64, wide.Row().Width())
}

func TestNewFromIndexArrays_NarrowsWideArrays(t *testing.T) {
	t.Parallel()

	rows := sparse.IndexArrayOf64([]int64{0, 1, 2})
	cols := sparse.IndexArrayOf64([]int64{2, 1, 0})
	c, err := sparse.NewFromIndexArrays([]float64{1, 2, 3}, []sparse.IndexArray{rows, cols})
	require.NoError(t, err)
	require.Equal(t, sparse.Int32, c.IndexWidth())
	require.Equal(t, sparse.Shape{3, 3}, c.Shape())
	requireDense(t, [][]float64{{0, 0, 1}, {0, 2, 0}, {3, 0, 0}}, c)

	_, err = sparse.NewFromIndexArrays([]float64{1}, nil)
	require.ErrorIs(t, err, sparse.ErrInvalidFormat)
}

func TestFromDense(t *testing.T) {
	t.Parallel()

	c := fromDense(t, dupDense)
	require.True(t, c.HasCanonicalFormat())
	require.Equal(t, 4, c.NNZ())
	require.Equal(t, []int{0, 0, 1, 3}, c.Row().Ints())
	require.Equal(t, []int{0, 2, 1, 3}, c.Col().Ints())
	require.Equal(t, []int{3, 1, 2, 1}, c.Data())
	require.True(t, sparse.ExportedIsCanonical(c))

	v, err := sparse.FromDense(dense.Vector(1, 2, 3), sparse.WithShape(3))
	require.NoError(t, err)
	require.Equal(t, sparse.Shape{3}, v.Shape())

	_, err = sparse.FromDense(dense.Vector(1, 2, 3), sparse.WithShape(4))
	require.ErrorIs(t, err, sparse.ErrShapeMismatch)
	require.ErrorContains(t, err, "inconsistent shapes")

	_, err = sparse.FromDense[float64](nil)
	require.ErrorIs(t, err, sparse.ErrNilContainer)
}

func TestFromSparse(t *testing.T) {
	t.Parallel()

	empty, err := sparse.NewEmpty[float64](3)
	require.NoError(t, err)
	c, err := sparse.FromSparse[float64](empty, false)
	require.NoError(t, err)
	require.Equal(t, sparse.Shape{3}, c.Shape())
	require.True(t, c.HasCanonicalFormat())

	csr, err := mustDup(t).ToCSR(false)
	require.NoError(t, err)
	back, err := sparse.FromSparse[int](csr, true)
	require.NoError(t, err)
	requireDense(t, dupDense, back)

	_, err = sparse.FromSparse[int](nil, false)
	require.ErrorIs(t, err, sparse.ErrNilContainer)
}

func TestAliasing_ViewDetachesOnMutation(t *testing.T) {
	t.Parallel()

	c := mustDup(t)
	require.False(t, c.Aliased())

	v, err := c.ToCOO(false)
	require.NoError(t, err)
	require.True(t, c.Aliased())
	require.True(t, v.Aliased())

	v.SumDuplicates()
	require.False(t, v.Aliased())
	require.False(t, c.Aliased())
	require.Equal(t, 7, c.NNZ())
	require.Equal(t, 4, v.NNZ())

	cp, err := c.ToCOO(true)
	require.NoError(t, err)
	require.False(t, cp.Aliased())
}

func TestCoords(t *testing.T) {
	t.Parallel()

	c := mustDup(t)
	rows, err := c.Coords(0)
	require.NoError(t, err)
	require.Equal(t, dupRows, rows.Ints())
	_, err = c.Coords(2)
	require.ErrorIs(t, err, sparse.ErrInvalidAxes)
}

func TestNNZAxis(t *testing.T) {
	t.Parallel()

	c := mustDup(t)
	perCol, err := c.NNZAxis(0)
	require.NoError(t, err)
	require.Equal(t, []int{3, 2, 1, 1}, perCol)

	perRow, err := c.NNZAxis(-1)
	require.NoError(t, err)
	require.Equal(t, []int{4, 2, 0, 1}, perRow)

	_, err = c.NNZAxis(2)
	require.ErrorIs(t, err, sparse.ErrInvalidAxes)

	v, err := sparse.NewFromTriplets([]int{9, 8}, [][]int{{1, 2}}, sparse.WithShape(4))
	require.NoError(t, err)
	n, err := v.NNZAxis(0)
	require.NoError(t, err)
	require.Equal(t, []int{2}, n)
}

func TestCountNonzero_DoesNotCanonicalize(t *testing.T) {
	t.Parallel()

	c := mustDup(t)
	require.Equal(t, 4, c.CountNonzero())
	require.False(t, c.HasCanonicalFormat())
	require.Equal(t, 7, c.NNZ())
}

func TestWithData(t *testing.T) {
	t.Parallel()

	c := fromDense(t, [][]float64{{1, 0}, {0, 2}})
	doubled, err := c.WithData([]float64{2, 4}, false)
	require.NoError(t, err)
	require.True(t, doubled.Aliased())
	requireDense(t, [][]float64{{2, 0}, {0, 4}}, doubled)

	owned, err := c.WithData([]float64{5, 6}, true)
	require.NoError(t, err)
	require.False(t, owned.Aliased())

	_, err = c.WithData([]float64{1}, true)
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
}

func TestAstype(t *testing.T) {
	t.Parallel()

	c := fromDense(t, [][]int{{1, 0}, {0, -2}})
	f := sparse.Astype[float32](c)
	require.Equal(t, []float32{1, -2}, f.Data())
	require.True(t, f.HasCanonicalFormat())
	require.Equal(t, c.Row().Ints(), f.Row().Ints())
}

func TestSetTriplets(t *testing.T) {
	t.Parallel()

	c := fromDense(t, [][]float64{{1, 0}, {0, 2}})
	require.True(t, c.HasCanonicalFormat())

	rows, err := sparse.IndexArrayOf(sparse.Int32, []int{1, 0})
	require.NoError(t, err)
	cols, err := sparse.IndexArrayOf(sparse.Int32, []int{0, 1})
	require.NoError(t, err)
	require.NoError(t, c.SetTriplets([]float64{7, 8}, []sparse.IndexArray{rows, cols}))
	require.False(t, c.HasCanonicalFormat())
	requireDense(t, [][]float64{{0, 8}, {7, 0}}, c)

	bad, err := sparse.IndexArrayOf(sparse.Int32, []int{5, 0})
	require.NoError(t, err)
	err = c.SetTriplets([]float64{1, 1}, []sparse.IndexArray{bad, cols})
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	requireDense(t, [][]float64{{0, 8}, {7, 0}}, c)
	require.NoError(t, c.Check())
}

func TestCOO_String(t *testing.T) {
	t.Parallel()

	c := mustDup(t)
	require.Equal(t, "<COO sparse array of shape (4, 4), 7 stored elements, int32 indices>", c.String())
}
