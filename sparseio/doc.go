// SPDX-License-Identifier: MIT

// Package sparseio persists lvsparse triplet stores.
//
// Three encodings are supported, selected by file extension in
// ReadFile/WriteFile:
//
//   - .spz  binary container: header, shape, then the coordinates and values
//     in framed blocks compressed with zstd (default) or LZ4. The index width
//     and the canonical flag survive a round trip.
//   - .mtx  Matrix Market coordinate text (rank 2 only).
//   - .json a small JSON document {shape, coords, data, canonical}.
//
// Readers validate through the sparse constructors, so a corrupt file never
// yields a store with out-of-bounds coordinates. Errors wrap the sentinels of
// this package or of package sparse; match them with errors.Is.
package sparseio
