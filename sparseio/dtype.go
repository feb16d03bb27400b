// SPDX-License-Identifier: MIT

package sparseio

import (
	"encoding/binary"
	"fmt"
	"math"
	"reflect"

	"github.com/katalvlaran/lvsparse/sparse"
)

// dtype is the on-disk value type code.
type dtype uint8

const (
	dtInt8 dtype = iota + 1
	dtInt16
	dtInt32
	dtInt64
	dtUint8
	dtUint16
	dtUint32
	dtUint64
	dtFloat32
	dtFloat64
)

type valueClass uint8

const (
	classSigned valueClass = iota
	classUnsigned
	classFloat
)

// dtypeOf maps T to its code. int and uint are stored as 64-bit.
func dtypeOf[T sparse.Scalar]() dtype {
	var zero T
	switch reflect.TypeOf(zero).Kind() {
	case reflect.Int8:
		return dtInt8
	case reflect.Int16:
		return dtInt16
	case reflect.Int32:
		return dtInt32
	case reflect.Uint8:
		return dtUint8
	case reflect.Uint16:
		return dtUint16
	case reflect.Uint32:
		return dtUint32
	case reflect.Uint, reflect.Uint64:
		return dtUint64
	case reflect.Float32:
		return dtFloat32
	case reflect.Float64:
		return dtFloat64
	default:
		return dtInt64
	}
}

func (d dtype) valid() bool { return d >= dtInt8 && d <= dtFloat64 }

func (d dtype) class() valueClass {
	switch {
	case d >= dtFloat32:
		return classFloat
	case d >= dtUint8:
		return classUnsigned
	default:
		return classSigned
	}
}

// size returns the encoded byte width.
func (d dtype) size() int {
	switch d {
	case dtInt8, dtUint8:
		return 1
	case dtInt16, dtUint16:
		return 2
	case dtInt32, dtUint32, dtFloat32:
		return 4
	default:
		return 8
	}
}

func (d dtype) String() string {
	names := [...]string{"", "int8", "int16", "int32", "int64", "uint8", "uint16", "uint32", "uint64", "float32", "float64"}
	if !d.valid() {
		return fmt.Sprintf("dtype(%d)", uint8(d))
	}
	return names[d]
}

// appendValues appends vals encoded as d (little-endian, d.size() bytes each).
func appendValues[T sparse.Scalar](dst []byte, d dtype, vals []T) []byte {
	var buf [8]byte
	size := d.size()
	for _, v := range vals {
		var bits uint64
		switch d.class() {
		case classFloat:
			if d == dtFloat32 {
				bits = uint64(math.Float32bits(float32(v)))
			} else {
				bits = math.Float64bits(float64(v))
			}
		case classSigned:
			bits = uint64(int64(v))
		default:
			bits = uint64(v)
		}
		binary.LittleEndian.PutUint64(buf[:], bits)
		dst = append(dst, buf[:size]...)
	}
	return dst
}

// decodeValues reads n values stored as d and converts them to T.
func decodeValues[T sparse.Scalar](src []byte, d dtype, n int) ([]T, error) {
	size := d.size()
	if len(src) != n*size {
		return nil, fmt.Errorf("%d value bytes for %d %s values: %w", len(src), n, d, ErrCorrupt)
	}
	out := make([]T, n)
	var buf [8]byte
	shift := uint(64 - 8*size)
	for k := range out {
		clear(buf[:])
		copy(buf[:], src[k*size:(k+1)*size])
		bits := binary.LittleEndian.Uint64(buf[:])
		switch d.class() {
		case classFloat:
			if d == dtFloat32 {
				out[k] = T(math.Float32frombits(uint32(bits)))
			} else {
				out[k] = T(math.Float64frombits(bits))
			}
		case classSigned:
			out[k] = T(int64(bits<<shift) >> shift)
		default:
			out[k] = T(bits)
		}
	}
	return out, nil
}
