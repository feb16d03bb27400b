// SPDX-License-Identifier: MIT

// Package sparse - gonum interop.
//
//   - FromMat: nonzero extraction from any mat.Matrix (row-major, canonical).
//   - ToMat:   materialize a matrix store as *mat.Dense (duplicates summed).
//   - AsMat:   a read-only mat.Matrix view backed by a DOK, for handing a sparse
//     operand to gonum routines without densifying it up front.

package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FromMat extracts the nonzero entries of m. Dense operands are read through
// their raw backing store; other implementations through At.
// Errors: ErrNilContainer, ErrShapeMismatch when WithShape disagrees.
// Complexity: O(rows·cols).
func FromMat(m mat.Matrix, opts ...Option) (*COO[float64], error) {
	if m == nil {
		return nil, sparseErrorf(opFromMat, ErrNilContainer)
	}
	o := gatherOptions(opts...)
	r, c := m.Dims()
	shape := Shape{r, c}
	if o.hasShape && !o.shape.Equal(shape) {
		return nil, sparseErrorf(opFromMat, fmt.Errorf("inconsistent shapes: %v != %v: %w", o.shape, shape, ErrShapeMismatch))
	}

	at := m.At
	if rm, ok := m.(mat.RawMatrixer); ok {
		raw := rm.RawMatrix()
		at = func(i, j int) float64 { return raw.Data[i*raw.Stride+j] }
	}
	var rows, cols []int
	var vals []float64
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := at(i, j); v != 0 {
				rows = append(rows, i)
				cols = append(cols, j)
				vals = append(vals, v)
			}
		}
	}

	w, err := SelectIndexWidth(uint64(shape.Max()), false)
	if err != nil {
		return nil, sparseErrorf(opFromMat, err)
	}
	ri, err := IndexArrayOf(w, rows)
	if err != nil {
		return nil, sparseErrorf(opFromMat, err)
	}
	ci, err := IndexArrayOf(w, cols)
	if err != nil {
		return nil, sparseErrorf(opFromMat, err)
	}

	return assemble(opFromMat, shape, []IndexArray{ri, ci}, ownData(vals, false), true, o.env())
}

// ToMat materializes a matrix store as a gonum dense matrix.
// Errors: ErrUnsupported for rank != 2, ErrBadShape for a zero-sized axis
// (gonum matrices cannot be empty).
func ToMat[T Scalar](c *COO[T]) (*mat.Dense, error) {
	if c == nil {
		return nil, sparseErrorf(opToMat, ErrNilContainer)
	}
	if err := validateRank2(c.shape, opToMat); err != nil {
		return nil, err
	}
	r, k := c.shape[0], c.shape[1]
	if r == 0 || k == 0 {
		return nil, sparseErrorf(opToMat, fmt.Errorf("shape %v: %w", c.shape, ErrBadShape))
	}
	buf := make([]float64, r*k)
	row, col := c.indices[0], c.indices[1]
	for e, v := range c.data {
		buf[row.At(e)*k+col.At(e)] += float64(v)
	}

	return mat.NewDense(r, k, buf), nil
}

// AsMat returns a read-only mat.Matrix view of a matrix store. The store is
// canonicalized in place and copied into a DOK; later changes to c are not
// reflected.
// Errors: ErrNilContainer, ErrUnsupported for rank != 2.
func AsMat[T Scalar](c *COO[T]) (mat.Matrix, error) {
	if c == nil {
		return nil, sparseErrorf(opToMat, ErrNilContainer)
	}
	if err := validateRank2(c.shape, opToMat); err != nil {
		return nil, err
	}
	d, err := c.ToDOK(true)
	if err != nil {
		return nil, err
	}

	return dokMat[T]{d}, nil
}

// dokMat adapts a rank-2 DOK to mat.Matrix.
type dokMat[T Scalar] struct{ d *DOK[T] }

// Dims returns (rows, cols).
func (m dokMat[T]) Dims() (int, int) { return m.d.shape[0], m.d.shape[1] }

// At returns the element at (i, j). It panics with gonum's access errors when
// the position is outside the matrix, as mat.Dense does.
func (m dokMat[T]) At(i, j int) float64 {
	if i < 0 || i >= m.d.shape[0] {
		panic(mat.ErrRowAccess)
	}
	if j < 0 || j >= m.d.shape[1] {
		panic(mat.ErrColAccess)
	}

	return float64(m.d.entries[dokKey{row: i, col: j}])
}

// T returns the implicit transpose.
func (m dokMat[T]) T() mat.Matrix { return mat.Transpose{Matrix: m} }
