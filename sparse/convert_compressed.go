// SPDX-License-Identifier: MIT

// Package sparse - COO → CSR/CSC conversion (counting-sort bucket fill).

package sparse

// ToCSR converts to Compressed Sparse Row. Duplicates are summed in the
// result; the receiver is not modified. The result always owns fresh buffers,
// so copy has no further effect.
// Errors: ErrUnsupported for rank != 2, ErrIndexOverflow.
// Complexity: O(nnz + rows), plus a per-row sort when the receiver is not
// canonical.
func (c *COO[T]) ToCSR(copy bool) (*CSR[T], error) {
	m, err := cooToCompressed(opToCSR, c, 0)
	if err != nil {
		return nil, err
	}
	traceConversion(opToCSR, FormatCOO, FormatCSR, c.shape, m.NNZ(), m.IndexWidth())

	return &CSR[T]{m}, nil
}

// ToCSC converts to Compressed Sparse Column. See ToCSR.
func (c *COO[T]) ToCSC(copy bool) (*CSC[T], error) {
	m, err := cooToCompressed(opToCSC, c, 1)
	if err != nil {
		return nil, err
	}
	traceConversion(opToCSC, FormatCOO, FormatCSC, c.shape, m.NNZ(), m.IndexWidth())

	return &CSC[T]{m}, nil
}

// cooToCompressed buckets the entries of c by the coordinate on majorAxis.
// Implementation:
//   - Stage 1: width = SelectIndexWidth(max(nnz, minorDim), contents of c).
//   - Stage 2: nnz == 0 ⇒ zero indptr, empty arrays (no bucket fill).
//   - Stage 3: bucketFill on the typed slices of the selected width.
//   - Stage 4: a canonical (row-major) source yields sorted, unique buckets
//     for both CSR and CSC; otherwise the buckets are canonicalized post hoc.
func cooToCompressed[T Scalar](op string, c *COO[T], majorAxis int) (compressed[T], error) {
	if err := validateRank2(c.shape, op); err != nil {
		return compressed[T]{}, err
	}
	majorDim, minorDim := c.shape[majorAxis], c.shape[1-majorAxis]
	n := c.NNZ()

	w, err := SelectIndexWidth(maxOf(n, minorDim), true, c.indices...)
	if err != nil {
		return compressed[T]{}, sparseErrorf(op, err)
	}
	out := compressed[T]{
		shape:     c.shape.Clone(),
		majorAxis: majorAxis,
		indptr:    NewIndexArray(w, majorDim+1),
		own:       newOwnership(),
		env:       c.env,
	}
	if n == 0 {
		out.indices = NewIndexArray(w, 0)
		out.data = []T{}
		out.canonical = true

		return out, nil
	}

	major := c.indices[majorAxis].Astype(w)
	minor := c.indices[1-majorAxis].Astype(w)
	out.indices = NewIndexArray(w, n)
	out.data = make([]T, n)
	if w == Int64 {
		bucketFill(major.Int64s(), minor.Int64s(), c.data, out.indptr.Int64s(), out.indices.Int64s(), out.data)
	} else {
		bucketFill(major.Int32s(), minor.Int32s(), c.data, out.indptr.Int32s(), out.indices.Int32s(), out.data)
	}

	if c.canonical {
		out.canonical = true
	} else {
		out.SumDuplicates()
	}

	return out, nil
}

// bucketFill is the counting-sort scatter: count entries per major index,
// prefix-sum into indptr, then place each entry at its bucket cursor. Within a
// bucket, entries keep their source order.
// Complexity: O(nnz + len(indptr)).
func bucketFill[I indexInt, T Scalar](major, minor []I, data []T, indptr, outMinor []I, outData []T) {
	for _, m := range major {
		indptr[m+1]++
	}
	for i := 1; i < len(indptr); i++ {
		indptr[i] += indptr[i-1]
	}
	next := make([]I, len(indptr)-1)
	copy(next, indptr[:len(indptr)-1])
	for k, m := range major {
		dst := next[m]
		outMinor[dst] = minor[k]
		outData[dst] = data[k]
		next[m]++
	}
}
