// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set (unified, consistent).
// All operations return these sentinels, wrapped with context via %w, and
// tests match them with errors.Is. No operation panics on user input; option
// constructors panic only on nonsensical arguments (programmer error).

package sparse

import (
	"errors"
	"fmt"
)

// ERROR PRIORITY (documented, enforced in tests):
// malformed input -> shape -> index length/rank -> bounds -> unsupported.

var (
	// ErrInvalidFormat is returned when construction input cannot be parsed
	// into a triplet store at all (no index sequences, nil payload).
	ErrInvalidFormat = errors.New("sparse: invalid input format")

	// ErrEmptyInference is returned when the shape must be inferred from
	// index sequences of length zero.
	ErrEmptyInference = errors.New("sparse: cannot infer dimensions from zero sized index arrays")

	// ErrBadShape is returned for a shape with no axes, a negative axis, or the
	// wrong rank for the requested variant.
	ErrBadShape = errors.New("sparse: invalid shape")

	// ErrShapeMismatch indicates that a supplied shape disagrees with the
	// inferred/dense shape, or that a reshape target changes the element count.
	ErrShapeMismatch = errors.New("sparse: inconsistent shapes")

	// ErrDimensionMismatch indicates incompatible lengths or ranks: index and
	// data arrays of different lengths, index array count != rank, operand
	// shapes that do not conform.
	ErrDimensionMismatch = errors.New("sparse: dimension mismatch")

	// ErrOutOfRange indicates that a stored index is negative or not below its
	// axis length. The wrapped message names the axis and the value.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrUnsupported marks an operation that the container cannot perform in
	// its current shape (densifying rank > 2, CSR on a 1-D store, axes on the
	// matrix variant).
	ErrUnsupported = errors.New("sparse: unsupported operation")

	// ErrInvalidOrder is returned for a linearization order other than 'C' or 'F'.
	ErrInvalidOrder = errors.New("sparse: order must be 'C' or 'F'")

	// ErrInvalidAxes is returned for an axis permutation that is not a
	// permutation of 0..rank-1, or an axis outside the container rank.
	ErrInvalidAxes = errors.New("sparse: invalid axes")

	// ErrIndexOverflow is returned when a value exceeds the widest index width.
	ErrIndexOverflow = errors.New("sparse: index value overflows int64")

	// ErrNilContainer indicates that a nil container was passed as an operand.
	ErrNilContainer = errors.New("sparse: nil container")
)

// sparseErrorf wraps an underlying error with an operation tag.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Operation name constants for unified error wrapping.
const (
	opNewEmpty      = "NewEmpty"
	opFromTriplets  = "NewFromTriplets"
	opFromIndex     = "NewFromIndexArrays"
	opFromDense     = "FromDense"
	opFromSparse    = "FromSparse"
	opCheck         = "Check"
	opReshape       = "Reshape"
	opResize        = "Resize"
	opTranspose     = "Transpose"
	opToDense       = "ToDense"
	opAddDense      = "AddDense"
	opToCSR         = "ToCSR"
	opToCSC         = "ToCSC"
	opToDIA         = "ToDIA"
	opToDOK         = "ToDOK"
	opMulVec        = "MulVec"
	opMulMat        = "MulMat"
	opDiagonal      = "Diagonal"
	opSetDiag       = "SetDiag"
	opSetTriplets   = "SetTriplets"
	opNNZAxis       = "NNZAxis"
	opWithData      = "WithData"
	opSelectWidth   = "SelectIndexWidth"
	opFromMat       = "FromMat"
	opToMat         = "ToMat"
	opMatrix        = "Matrix"
	opDOKAccess     = "DOK"
	opCompressCheck = "compressed.Check"
	opDIACheck      = "DIA.Check"
	opDIAToCOO      = "DIA.ToCOO"
	opDOKToCOO      = "DOK.ToCOO"
)
