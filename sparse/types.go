// SPDX-License-Identifier: MIT

// Package sparse: domain types shared by every container (shape, format tag,
// the capability interface).

package sparse

import (
	"fmt"
	"math/bits"

	"github.com/katalvlaran/lvsparse/dense"
)

// Scalar is the set of value types a container may hold.
type Scalar = dense.Scalar

// Order selects C (row-major) or F (column-major) linearization.
type Order = dense.Order

// Linearization orders accepted by Reshape.
const (
	OrderC = dense.OrderC
	OrderF = dense.OrderF
)

// Shape is an ordered tuple of non-negative axis lengths.
type Shape []int

// Rank returns the number of axes.
func (s Shape) Rank() int { return len(s) }

// Clone returns an independent copy.
func (s Shape) Clone() Shape { return append(Shape(nil), s...) }

// Equal reports whether both shapes have the same rank and axis lengths.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i] != o[i] {
			return false
		}
	}

	return true
}

// Max returns the largest axis length (0 for an empty shape).
func (s Shape) Max() int {
	m := 0
	for _, d := range s {
		if d > m {
			m = d
		}
	}

	return m
}

// Size returns the element count Π s, or ErrIndexOverflow when the product
// does not fit in int64.
func (s Shape) Size() (int, error) {
	var size uint64 = 1
	for _, d := range s {
		hi, lo := bits.Mul64(size, uint64(d))
		if hi != 0 || lo > maxInt64 {
			return 0, fmt.Errorf("shape %v: %w", []int(s), ErrIndexOverflow)
		}
		size = lo
	}

	return int(size), nil
}

// String renders the shape as a tuple, e.g. (4, 4).
func (s Shape) String() string {
	if len(s) == 1 {
		return fmt.Sprintf("(%d,)", s[0])
	}
	out := "("
	for i, d := range s {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprint(d)
	}

	return out + ")"
}

// checkShape validates s for a container: rank ≥ 1 (or exactly 2 when
// rank2 is set) and non-negative axes.
func checkShape(s Shape, rank2 bool) error {
	if len(s) == 0 {
		return fmt.Errorf("shape %v: %w", []int(s), ErrBadShape)
	}
	if rank2 && len(s) != 2 {
		return fmt.Errorf("shape %v: matrix variant requires 2 axes: %w", []int(s), ErrBadShape)
	}
	for _, d := range s {
		if d < 0 {
			return fmt.Errorf("shape %v: negative axis length: %w", []int(s), ErrBadShape)
		}
	}

	return nil
}

// Format tags the closed set of sparse container variants.
type Format uint8

const (
	FormatCOO Format = iota + 1
	FormatCSR
	FormatCSC
	FormatDIA
	FormatDOK
)

// String returns the lower-case format name.
func (f Format) String() string {
	switch f {
	case FormatCOO:
		return "coo"
	case FormatCSR:
		return "csr"
	case FormatCSC:
		return "csc"
	case FormatDIA:
		return "dia"
	case FormatDOK:
		return "dok"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// Sparse is the capability interface shared by every container variant.
// Every conversion accepts a copy flag: copy=false permits (but does not
// require) buffer sharing with the receiver.
type Sparse[T Scalar] interface {
	// Format reports the container variant.
	Format() Format

	// Shape returns a copy of the container shape.
	Shape() Shape

	// NNZ returns the number of stored entries, explicit zeros included.
	NNZ() int

	// Check validates the container invariants.
	Check() error

	// ToDense materializes the container (rank ≤ 2).
	ToDense() (*dense.Array[T], error)

	ToCOO(copy bool) (*COO[T], error)
	ToCSR(copy bool) (*CSR[T], error)
	ToCSC(copy bool) (*CSC[T], error)
	ToDIA(copy bool) (*DIA[T], error)
	ToDOK(copy bool) (*DOK[T], error)
}

// Compile-time assertions for interface conformance.
var (
	_ Sparse[float64] = (*COO[float64])(nil)
	_ Sparse[float64] = (*CSR[float64])(nil)
	_ Sparse[float64] = (*CSC[float64])(nil)
	_ Sparse[float64] = (*DIA[float64])(nil)
	_ Sparse[float64] = (*DOK[float64])(nil)
	_ fmt.Stringer    = Shape(nil)
)
