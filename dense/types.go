// SPDX-License-Identifier: MIT

package dense

// Scalar is the set of element types an Array (and every sparse container) may
// hold: all real integer and floating-point kinds. Complex kinds are excluded so
// that values convert freely between element types (see sparse.Astype).
type Scalar interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Order selects a linearization of a multi-axis coordinate.
type Order byte

const (
	// OrderC is row-major order: the trailing axis varies fastest.
	OrderC Order = 'C'

	// OrderF is column-major (Fortran) order: the leading axis varies fastest.
	OrderF Order = 'F'
)

// Valid reports whether o is one of the supported linearizations.
func (o Order) Valid() bool { return o == OrderC || o == OrderF }

// String renders the order token as a single character.
func (o Order) String() string { return string(rune(o)) }

// Strides returns the element strides of shape under order o.
// Complexity: O(rank).
func Strides(shape []int, o Order) []int {
	n := len(shape)
	st := make([]int, n)
	if n == 0 {
		return st
	}
	if o == OrderF {
		st[0] = 1
		for a := 1; a < n; a++ {
			st[a] = st[a-1] * shape[a-1]
		}
		return st
	}
	st[n-1] = 1
	for a := n - 2; a >= 0; a-- {
		st[a] = st[a+1] * shape[a+1]
	}
	return st
}
