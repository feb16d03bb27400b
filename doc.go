// Package lvsparse is an in-memory toolkit for sparse numeric arrays built
// around the coordinate (COO) triplet store.
//
// What is inside:
//
//   - Triplet store: construction from coordinates, dense arrays or gonum
//     matrices; validation; adaptive int32/int64 index width; explicit
//     buffer aliasing.
//   - Canonicalization: duplicate summation into row-major order, explicit
//     zero removal.
//   - Conversions: CSR, CSC, DIA, DOK and dense, all behind one Sparse[T]
//     interface.
//   - Shape operations: reshape (C/F order), resize, transpose with axis
//     permutations, diagonal access.
//   - Kernels: matrix-vector and matrix-matrix products on the raw triplets.
//   - Persistence: compressed binary container, Matrix Market, JSON.
//
// Packages:
//
//	dense/            minimal n-d dense array used as the densify target
//	sparse/           COO store, compressed/DIA/DOK formats, kernels, gonum bridge
//	sparseio/         .spz (zstd/lz4), .mtx and .json codecs
//	cmd/sparsectl/    inspect and convert sparse array files
//	internal/config/  koanf-backed CLI settings
//	internal/logging/ zerolog setup for the CLI
//
// Quick example:
//
//	c, _ := sparse.NewFromTriplets([]float64{1, 2, 3},
//		[][]int{{0, 0, 1}, {0, 0, 2}}, sparse.WithShape(2, 3))
//	m, _ := c.ToCSR(false) // the two (0,0) entries are summed
//
//	go get github.com/katalvlaran/lvsparse
package lvsparse
