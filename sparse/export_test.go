// SPDX-License-Identifier: MIT

package sparse

// Test bridge: exposes private kernels to sparse_test only.

var (
	// ExportedLinearBound exposes linearBound.
	ExportedLinearBound = linearBound
	// ExportedMulAddBound exposes mulAddBound.
	ExportedMulAddBound = mulAddBound
	// ExportedWidthForRange exposes widthForRange.
	ExportedWidthForRange = widthForRange
)

// ExportedBucketFill32 runs the counting-sort scatter on int32 indices.
func ExportedBucketFill32(major, minor []int32, data []float64, indptr, outMinor []int32, outData []float64) {
	bucketFill(major, minor, data, indptr, outMinor, outData)
}

// ExportedIsCanonical exposes the strict row-major ordering check.
func ExportedIsCanonical[T Scalar](c *COO[T]) bool {
	return isCanonical(c.indices, c.NNZ())
}
