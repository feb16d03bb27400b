// SPDX-License-Identifier: MIT

package sparse_test

import (
	"testing"

	"github.com/katalvlaran/lvsparse/dense"
	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
)

func TestToCSR_FromDuplicates(t *testing.T) {
	t.Parallel()

	c := mustDup(t)
	m, err := c.ToCSR(false)
	require.NoError(t, err)
	require.Equal(t, sparse.FormatCSR, m.Format())
	require.Equal(t, []int{0, 2, 3, 3, 4}, m.Indptr().Ints())
	require.Equal(t, []int{0, 2, 1, 3}, m.Indices().Ints())
	require.Equal(t, []int{3, 1, 2, 1}, m.Data())
	require.True(t, m.HasCanonicalFormat())
	require.NoError(t, m.Check())
	requireDense(t, dupDense, m)

	// The source is left untouched.
	require.Equal(t, 7, c.NNZ())
	require.False(t, c.HasCanonicalFormat())
}

func TestToCSC_FromDuplicates(t *testing.T) {
	t.Parallel()

	m, err := mustDup(t).ToCSC(false)
	require.NoError(t, err)
	require.Equal(t, sparse.FormatCSC, m.Format())
	require.Equal(t, []int{0, 1, 2, 3, 4}, m.Indptr().Ints())
	require.Equal(t, []int{0, 1, 0, 3}, m.Indices().Ints())
	require.Equal(t, []int{3, 2, 1, 1}, m.Data())
	requireDense(t, dupDense, m)
}

func TestCompressed_RoundTrip(t *testing.T) {
	t.Parallel()

	cases := map[string][][]float64{
		"empty":   {{0, 0, 0}, {0, 0, 0}},
		"diag":    {{1, 0, 0}, {0, 2, 0}, {0, 0, 3}},
		"rect":    {{0, 4, 0, 1}, {2, 0, 0, 0}},
		"full":    {{1, 2}, {3, 4}},
		"one row": {{0, 5, 0, 6}},
	}
	for name, rows := range cases {
		name, rows := name, rows
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c := fromDense(t, rows)

			csr, err := c.ToCSR(false)
			require.NoError(t, err)
			requireDense(t, rows, csr)

			csc, err := c.ToCSC(true)
			require.NoError(t, err)
			requireDense(t, rows, csc)

			back, err := csc.ToCOO(false)
			require.NoError(t, err)
			requireDense(t, rows, back)

			viaCSC, err := csr.ToCSC(false)
			require.NoError(t, err)
			requireDense(t, rows, viaCSC)
		})
	}
}

func TestCompressed_EmptyFastPath(t *testing.T) {
	t.Parallel()

	e, err := sparse.NewEmpty[float64](3, 5)
	require.NoError(t, err)
	m, err := e.ToCSR(false)
	require.NoError(t, err)
	require.Equal(t, 0, m.NNZ())
	require.Equal(t, []int{0, 0, 0, 0}, m.Indptr().Ints())
	require.Equal(t, sparse.Shape{3, 5}, m.Shape())
	requireDense(t, [][]float64{{0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}, {0, 0, 0, 0, 0}}, m)
}

func TestCompressed_RequiresMatrix(t *testing.T) {
	t.Parallel()

	v, err := sparse.NewFromTriplets([]int{9, 8}, [][]int{{1, 2}}, sparse.WithShape(4))
	require.NoError(t, err)
	_, err = v.ToCSR(false)
	require.ErrorIs(t, err, sparse.ErrUnsupported)
	_, err = v.ToCSC(false)
	require.ErrorIs(t, err, sparse.ErrUnsupported)
	_, err = v.ToDIA(false)
	require.ErrorIs(t, err, sparse.ErrUnsupported)
}

func TestCompressed_Transpose(t *testing.T) {
	t.Parallel()

	m, err := fromDense(t, [][]int{{1, 0, 2}, {0, 3, 0}}).ToCSR(false)
	require.NoError(t, err)
	tr := m.Transpose(false)
	require.Equal(t, sparse.FormatCSC, tr.Format())
	require.True(t, tr.Aliased())
	requireDense(t, [][]int{{1, 0}, {0, 3}, {2, 0}}, tr)
}

func TestNewCSR_Validation(t *testing.T) {
	t.Parallel()

	indptr := sparse.IndexArrayOf32([]int32{0, 2, 3})
	indices := sparse.IndexArrayOf32([]int32{2, 0, 1})
	m, err := sparse.NewCSR(sparse.Shape{2, 3}, indptr, indices, []float64{1, 2, 3})
	require.NoError(t, err)
	require.False(t, m.HasCanonicalFormat())
	requireDense(t, [][]float64{{2, 0, 1}, {0, 3, 0}}, m)
	m.SumDuplicates()
	require.True(t, m.HasCanonicalFormat())
	require.Equal(t, []int{0, 2, 1}, m.Indices().Ints())

	_, err = sparse.NewCSR(sparse.Shape{2, 3}, sparse.IndexArrayOf32([]int32{0, 3}), indices, []float64{1, 2, 3})
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
	_, err = sparse.NewCSR(sparse.Shape{2, 3}, sparse.IndexArrayOf32([]int32{0, 2, 1}), indices, []float64{1, 2, 3})
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	_, err = sparse.NewCSC(sparse.Shape{2, 3}, sparse.IndexArrayOf32([]int32{0, 1, 2, 3}), sparse.IndexArrayOf32([]int32{0, 2, 1}), []float64{1, 2, 3})
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
}

func TestBucketFill(t *testing.T) {
	t.Parallel()

	major := []int32{2, 0, 2, 1}
	minor := []int32{5, 6, 7, 8}
	data := []float64{1, 2, 3, 4}
	indptr := make([]int32, 4)
	outMinor := make([]int32, 4)
	outData := make([]float64, 4)
	sparse.ExportedBucketFill32(major, minor, data, indptr, outMinor, outData)

	require.Equal(t, []int32{0, 1, 2, 4}, indptr)
	require.Equal(t, []int32{6, 8, 5, 7}, outMinor)
	require.Equal(t, []float64{2, 4, 1, 3}, outData)
}

func TestToDIA(t *testing.T) {
	t.Parallel()

	rows := [][]int{{1, 2, 0}, {0, 3, 4}, {5, 0, 6}}
	c := fromDense(t, rows)
	d, err := c.ToDIA(false)
	require.NoError(t, err)
	require.Equal(t, sparse.FormatDIA, d.Format())
	require.Equal(t, []int{-2, 0, 1}, d.Offsets())
	require.Equal(t, []int{5, 0, 0, 1, 3, 6, 0, 2, 4}, d.Data().Data())
	require.Equal(t, 6, d.NNZ())
	require.NoError(t, d.Check())
	requireDense(t, rows, d)

	back, err := d.ToCSR(false)
	require.NoError(t, err)
	requireDense(t, rows, back)
}

func TestToDIA_SumsDuplicatesFirst(t *testing.T) {
	t.Parallel()

	c := mustDup(t)
	d, err := c.ToDIA(false)
	require.NoError(t, err)
	require.True(t, c.HasCanonicalFormat())
	require.Equal(t, []int{0, 2}, d.Offsets())
	requireDense(t, dupDense, d)
}

func TestToDIA_Empty(t *testing.T) {
	t.Parallel()

	e, err := sparse.NewEmpty[float64](3, 3)
	require.NoError(t, err)
	d, err := e.ToDIA(false)
	require.NoError(t, err)
	require.Empty(t, d.Offsets())
	require.Equal(t, []int{0, 0}, d.Data().Shape())
	require.Equal(t, 0, d.NNZ())
}

func TestToDIA_EfficiencyDiagnostic(t *testing.T) {
	t.Parallel()

	rec := &sparse.DiagnosticRecorder{}
	c, err := sparse.FromDense(mustRows(t, [][]int{{1, 2, 0}, {0, 3, 4}, {5, 0, 6}}),
		sparse.WithDiagnostics(rec), sparse.WithMaxDiagonals(2))
	require.NoError(t, err)
	_, err = c.ToDIA(false)
	require.NoError(t, err)
	require.Equal(t, 1, rec.Count(sparse.DiagSparseEfficiency))
	diag := rec.Diagnostics()[0]
	require.Equal(t, 3, diag.Count)
	require.Equal(t, "ToDIA", diag.Op)

	// Under the threshold nothing is reported.
	quiet := &sparse.DiagnosticRecorder{}
	c2, err := sparse.FromDense(mustRows(t, [][]int{{1, 0}, {0, 1}}), sparse.WithDiagnostics(quiet))
	require.NoError(t, err)
	_, err = c2.ToDIA(false)
	require.NoError(t, err)
	require.Equal(t, 0, quiet.Count(sparse.DiagSparseEfficiency))
}

func TestNewDIA_Validation(t *testing.T) {
	t.Parallel()

	buf := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	_, err := sparse.NewDIA(sparse.Shape{2, 2}, buf, []int{0, 0})
	require.ErrorIs(t, err, sparse.ErrInvalidFormat)
	_, err = sparse.NewDIA(sparse.Shape{2, 2}, buf, []int{0})
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)

	d, err := sparse.NewDIA(sparse.Shape{2, 2}, buf, []int{0, 1})
	require.NoError(t, err)
	// Offset 1 keeps only column 1; cell (-1, 0) is padding.
	requireDense(t, [][]float64{{1, 4}, {0, 2}}, d)
	require.Equal(t, 3, d.NNZ())
}

func TestToDOK(t *testing.T) {
	t.Parallel()

	c := mustDup(t)
	d, err := c.ToDOK(false)
	require.NoError(t, err)
	require.Equal(t, sparse.FormatDOK, d.Format())
	require.Equal(t, 4, d.NNZ())

	v, err := d.Get(0, 0)
	require.NoError(t, err)
	require.Equal(t, 3, v)
	v, err = d.Get(2, 2)
	require.NoError(t, err)
	require.Equal(t, 0, v)

	require.NoError(t, d.Set(0, 0, 0))
	require.Equal(t, 3, d.NNZ())
	require.NoError(t, d.Set(9, 2, 2))
	requireDense(t, [][]int{{0, 0, 1, 0}, {0, 2, 0, 0}, {0, 0, 9, 0}, {0, 0, 0, 1}}, d)

	_, err = d.Get(4, 0)
	require.ErrorIs(t, err, sparse.ErrOutOfRange)
	_, err = d.Get(1)
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)

	back, err := d.ToCOO(false)
	require.NoError(t, err)
	require.True(t, back.HasCanonicalFormat())
	require.Equal(t, []int{0, 1, 2, 3}, back.Row().Ints())
	require.NoError(t, d.Check())
}

func TestToDOK_OneDimensional(t *testing.T) {
	t.Parallel()

	c, err := sparse.NewFromTriplets([]int{9, 8}, [][]int{{1, 2}}, sparse.WithShape(4))
	require.NoError(t, err)
	d, err := c.ToDOK(true)
	require.NoError(t, err)
	v, err := d.Get(1)
	require.NoError(t, err)
	require.Equal(t, 9, v)

	got, err := d.ToDense()
	require.NoError(t, err)
	require.Equal(t, []int{0, 9, 8, 0}, got.Data())

	back, err := d.ToCOO(false)
	require.NoError(t, err)
	require.Equal(t, sparse.Shape{4}, back.Shape())
	require.Equal(t, []int{1, 2}, back.Row().Ints())

	e, err := sparse.NewDOK[int](2, 2, 2)
	require.ErrorIs(t, err, sparse.ErrBadShape)
	require.Nil(t, e)
}

func TestToDense_HigherRankUnsupported(t *testing.T) {
	t.Parallel()

	c, err := sparse.NewEmpty[float64](2, 2, 2)
	require.NoError(t, err)
	_, err = c.ToDense()
	require.ErrorIs(t, err, sparse.ErrUnsupported)
	require.ErrorContains(t, err, "cannot densify higher-rank sparse array")
	_, err = c.ToDOK(false)
	require.ErrorIs(t, err, sparse.ErrUnsupported)
}

func TestAddDense(t *testing.T) {
	t.Parallel()

	c := mustDup(t)
	ones, err := dense.FromSlice([]int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 4, 4)
	require.NoError(t, err)
	sum, err := c.AddDense(ones)
	require.NoError(t, err)
	require.Equal(t, []int{4, 1, 2, 1, 1, 3, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2}, sum.Data())
	require.Equal(t, 1, ones.Data()[0])

	_, err = c.AddDense(dense.Vector(1, 2, 3, 4))
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
	_, err = c.AddDense(nil)
	require.ErrorIs(t, err, sparse.ErrNilContainer)
}

func TestSparseInterface_AllFormatsAgree(t *testing.T) {
	t.Parallel()

	c := mustDup(t)
	csr, err := c.ToCSR(true)
	require.NoError(t, err)
	csc, err := c.ToCSC(true)
	require.NoError(t, err)
	dia, err := c.Copy().ToDIA(true)
	require.NoError(t, err)
	dok, err := c.Copy().ToDOK(true)
	require.NoError(t, err)

	for _, s := range []sparse.Sparse[int]{c, csr, csc, dia, dok} {
		require.Equal(t, sparse.Shape{4, 4}, s.Shape())
		require.NoError(t, s.Check())
		requireDense(t, dupDense, s)
		for _, conv := range []func() (sparse.Sparse[int], error){
			func() (sparse.Sparse[int], error) { return s.ToCOO(true) },
			func() (sparse.Sparse[int], error) { return s.ToCSR(true) },
			func() (sparse.Sparse[int], error) { return s.ToCSC(true) },
			func() (sparse.Sparse[int], error) { return s.ToDIA(true) },
			func() (sparse.Sparse[int], error) { return s.ToDOK(true) },
		} {
			out, err := conv()
			require.NoError(t, err)
			requireDense(t, dupDense, out)
		}
	}
}
