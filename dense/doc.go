// SPDX-License-Identifier: MIT

// Package dense provides the n-dimensional, row-major dense array that sparse
// containers materialize into and extract from.
//
// The package provides:
//
//   - Array[T], a flat row-major buffer with an explicit shape (rank ≥ 1,
//     zero-length axes allowed).
//   - Error-returning accessors (At/Set) that never panic on user input.
//   - Nonzero scans in C order and flattening in C or F order, which are the
//     two operations the sparse package needs from a dense collaborator.
//
// Offsets follow the row-major formula offset = Σ idx[a]·stride[a], with the
// trailing axis contiguous (stride 1).
package dense
