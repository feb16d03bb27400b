// SPDX-License-Identifier: MIT

// Package sparse - index arrays with an explicit integer width.
//
// Purpose:
//   - Store coordinates in int32 whenever the shape allows it and in int64 otherwise.
//   - Keep the width visible (IndexArray.Width) so conversions can re-derive it.
//   - Let hot kernels run on the typed backing slice (Int32s/Int64s) through
//     generic helpers instead of per-element dispatch.

package sparse

import (
	"fmt"
	"math"
)

// IndexWidth is the signed integer width used for coordinate storage.
type IndexWidth uint8

const (
	// Int32 stores coordinates as int32 (the default minimum width).
	Int32 IndexWidth = 32

	// Int64 stores coordinates as int64.
	Int64 IndexWidth = 64
)

// Max returns the largest value representable in width w.
func (w IndexWidth) Max() int64 {
	if w == Int64 {
		return math.MaxInt64
	}

	return math.MaxInt32
}

// String renders the width as its Go type name.
func (w IndexWidth) String() string {
	switch w {
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	default:
		return fmt.Sprintf("width(%d)", uint8(w))
	}
}

// indexInt is the constraint satisfied by both backing element types.
type indexInt interface{ ~int32 | ~int64 }

// IndexArray is a sequence of coordinates along one axis, stored at a fixed
// width. The zero value is an empty Int32 array.
type IndexArray struct {
	width IndexWidth
	i32   []int32
	i64   []int64
}

// NewIndexArray allocates a zero-filled array of n coordinates at width w.
func NewIndexArray(w IndexWidth, n int) IndexArray {
	if w == Int64 {
		return IndexArray{width: Int64, i64: make([]int64, n)}
	}

	return IndexArray{width: Int32, i32: make([]int32, n)}
}

// IndexArrayOf32 wraps v without copying.
func IndexArrayOf32(v []int32) IndexArray { return IndexArray{width: Int32, i32: v} }

// IndexArrayOf64 wraps v without copying.
func IndexArrayOf64(v []int64) IndexArray { return IndexArray{width: Int64, i64: v} }

// IndexArrayOf converts v into an array of width w. Values that do not fit
// in w are reported with ErrIndexOverflow.
func IndexArrayOf(w IndexWidth, v []int) (IndexArray, error) {
	out := NewIndexArray(w, len(v))
	for k, x := range v {
		if w == Int32 && (x > math.MaxInt32 || x < math.MinInt32) {
			return IndexArray{}, fmt.Errorf("value %d at position %d exceeds %s: %w", x, k, w, ErrIndexOverflow)
		}
		out.Set(k, x)
	}

	return out, nil
}

// Width returns the storage width.
func (a IndexArray) Width() IndexWidth {
	if a.width == Int64 {
		return Int64
	}

	return Int32
}

// Len returns the number of coordinates.
func (a IndexArray) Len() int {
	if a.width == Int64 {
		return len(a.i64)
	}

	return len(a.i32)
}

// At returns the coordinate at position k. It panics when k is out of range,
// like a slice index.
func (a IndexArray) At(k int) int {
	if a.width == Int64 {
		return int(a.i64[k])
	}

	return int(a.i32[k])
}

// Set stores v at position k, truncating to the array width. Callers select
// the width first (see SelectIndexWidth).
func (a IndexArray) Set(k, v int) {
	if a.width == Int64 {
		a.i64[k] = int64(v)
		return
	}
	a.i32[k] = int32(v)
}

// Int32s returns the backing slice of an Int32 array (nil for Int64 arrays).
func (a IndexArray) Int32s() []int32 {
	if a.width == Int64 {
		return nil
	}

	return a.i32
}

// Int64s returns the backing slice of an Int64 array (nil for Int32 arrays).
func (a IndexArray) Int64s() []int64 { return a.i64 }

// Ints returns the coordinates as a fresh []int.
func (a IndexArray) Ints() []int {
	out := make([]int, a.Len())
	for k := range out {
		out[k] = a.At(k)
	}

	return out
}

// Clone returns a deep copy at the same width.
func (a IndexArray) Clone() IndexArray {
	if a.width == Int64 {
		return IndexArray{width: Int64, i64: append([]int64(nil), a.i64...)}
	}

	return IndexArray{width: Int32, i32: append([]int32(nil), a.i32...)}
}

// Astype returns a at width w. The receiver is returned unchanged (shared
// backing) when it already has width w. Narrowing truncates; callers check
// ranges first.
func (a IndexArray) Astype(w IndexWidth) IndexArray {
	if a.Width() == w {
		return a
	}
	out := NewIndexArray(w, a.Len())
	for k := 0; k < a.Len(); k++ {
		out.Set(k, a.At(k))
	}

	return out
}

// MinMax returns the smallest and largest coordinate; ok is false for an
// empty array.
func (a IndexArray) MinMax() (lo, hi int, ok bool) {
	if a.width == Int64 {
		return minMax(a.i64)
	}

	return minMax(a.i32)
}

func minMax[I indexInt](v []I) (lo, hi int, ok bool) {
	if len(v) == 0 {
		return 0, 0, false
	}
	l, h := v[0], v[0]
	for _, x := range v[1:] {
		if x < l {
			l = x
		}
		if x > h {
			h = x
		}
	}

	return int(l), int(h), true
}

// gather returns a new array holding a[perm[k]] at position k.
func (a IndexArray) gather(perm []int) IndexArray {
	out := NewIndexArray(a.Width(), len(perm))
	if a.width == Int64 {
		for k, p := range perm {
			out.i64[k] = a.i64[p]
		}
		return out
	}
	for k, p := range perm {
		out.i32[k] = a.i32[p]
	}

	return out
}

// concat returns a followed by the coordinates in tail, at a's width.
func (a IndexArray) concat(tail []int) IndexArray {
	n := a.Len()
	out := NewIndexArray(a.Width(), n+len(tail))
	for k := 0; k < n; k++ {
		out.Set(k, a.At(k))
	}
	for k, v := range tail {
		out.Set(n+k, v)
	}

	return out
}
