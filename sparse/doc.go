// SPDX-License-Identifier: MIT

// Package sparse implements the COOrdinate ("triplet", "ijv") sparse array and
// its conversions to and from CSR, CSC, DIA, DOK and dense arrays.
//
// What & Why:
//
//	COO stores every explicit entry as a coordinate tuple plus a value, in any
//	order and with duplicates allowed. That makes it the natural format for
//	assembling matrices (finite-element style accumulation) and the cheapest
//	hub for converting between formats. Once assembled, convert to CSR or CSC
//	for fast arithmetic; duplicates are summed on the way.
//
// Building a store:
//
//	c, err := sparse.NewFromTriplets(
//		[]float64{1, 1, 1, 1, 1, 1, 1},
//		[][]int{{0, 0, 1, 3, 1, 0, 0}, {0, 2, 1, 3, 1, 0, 0}},
//		sparse.WithShape(4, 4),
//	)
//	d, _ := c.ToDense() // [[3 0 1 0] [0 2 0 0] [0 0 0 0] [0 0 0 1]]
//
// Index widths:
//
//	Coordinates are stored in the narrowest signed width (int32, else int64)
//	that holds max(shape); conversions re-derive the width from nnz and the
//	opposite dimension so that no intermediate overflows.
//
// Variants:
//
//	COO, CSR, CSC, DIA and DOK all satisfy Sparse[T]. Matrix[T] is a thin
//	rank-2 wrapper over *COO[T] with matrix-product semantics; COO itself is
//	rank-flexible (1-D and n-D stores are allowed, densification is limited
//	to rank ≤ 2).
//
// Advisories (non-integer source indices, DIA outputs with too many diagonals)
// are delivered to a DiagnosticSink rather than returned as errors.
//
// Concurrency: containers are not synchronized. No-copy conversions share
// buffers between containers; see COO.Aliased.
package sparse
