// SPDX-License-Identifier: MIT
// Package sparseio - the .spz binary container.
//
// Layout (little-endian):
//
//	header  magic "LVSZ" | version u8 | codec u8 | dtype u8 | width u8 |
//	        flags u8 | 3 reserved bytes | rank u32 | nnz u64
//	shape   rank × u64
//	payload framed blocks (see blocks.go) carrying, in order, the
//	        coordinates of axis 0..rank-1 (width bytes each) and the values
//
// The index width and the canonical flag are stored so a store read back has
// exactly the layout it was written with.

package sparseio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/katalvlaran/lvsparse/sparse"
)

const (
	spzVersion    = 1
	flagCanonical = 1 << 0
	maxRank       = 64
)

var spzMagic = [4]byte{'L', 'V', 'S', 'Z'}

type spzHeader struct {
	Magic   [4]byte
	Version uint8
	Codec   Compression
	Dtype   dtype
	Width   uint8
	Flags   uint8
	_       [3]byte
	Rank    uint32
	NNZ     uint64
}

// WriteSPZ encodes c into w.
// Options: WithCompression, WithBlockSize.
// Errors: sparse.ErrNilContainer, write errors from w.
// Complexity: O(rank·nnz).
func WriteSPZ[T sparse.Scalar](w io.Writer, c *sparse.COO[T], opts ...Option) error {
	if c == nil {
		return ioErrorf(opWriteSPZ, sparse.ErrNilContainer)
	}
	o := gatherOptions(opts...)
	shape := c.Shape()
	width := uint8(4)
	if c.IndexWidth() == sparse.Int64 {
		width = 8
	}
	hdr := spzHeader{
		Magic:   spzMagic,
		Version: spzVersion,
		Codec:   o.compression,
		Dtype:   dtypeOf[T](),
		Width:   width,
		Rank:    uint32(shape.Rank()),
		NNZ:     uint64(c.NNZ()),
	}
	if c.HasCanonicalFormat() {
		hdr.Flags |= flagCanonical
	}
	if err := binary.Write(w, binary.LittleEndian, hdr); err != nil {
		return ioErrorf(opWriteSPZ, err)
	}
	dims := make([]uint64, len(shape))
	for ax, d := range shape {
		dims[ax] = uint64(d)
	}
	if err := binary.Write(w, binary.LittleEndian, dims); err != nil {
		return ioErrorf(opWriteSPZ, err)
	}

	bw := newBlockWriter(w, o.compression, o.blockSize)
	for ax := range shape {
		idx, err := c.Coords(ax)
		if err != nil {
			return ioErrorf(opWriteSPZ, err)
		}
		if _, err := bw.Write(appendCoords(nil, idx)); err != nil {
			return ioErrorf(opWriteSPZ, err)
		}
	}
	if _, err := bw.Write(appendValues(nil, hdr.Dtype, c.Data())); err != nil {
		return ioErrorf(opWriteSPZ, err)
	}
	if err := bw.Flush(); err != nil {
		return ioErrorf(opWriteSPZ, err)
	}

	l := sparse.Logger()
	l.Debug().
		Str("op", opWriteSPZ).
		Stringer("shape", shape).
		Int("nnz", c.NNZ()).
		Stringer("codec", o.compression).
		Int64("bytes", bw.written).
		Msg("encoded")

	return nil
}

// ReadSPZ decodes a container written by WriteSPZ. Values are converted to T
// when the stored value type differs. opts are applied to the rebuilt store
// (diagnostic sink, DIA threshold).
// Errors: ErrBadMagic, ErrVersion, ErrCorrupt, ErrUnknownCompression, and the
// sparse validation sentinels for out-of-bounds coordinates.
func ReadSPZ[T sparse.Scalar](r io.Reader, opts ...sparse.Option) (*sparse.COO[T], error) {
	var hdr spzHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, ioErrorf(opReadSPZ, fmt.Errorf("header: %w", ErrBadMagic))
	}
	if hdr.Magic != spzMagic {
		return nil, ioErrorf(opReadSPZ, ErrBadMagic)
	}
	if hdr.Version != spzVersion {
		return nil, ioErrorf(opReadSPZ, fmt.Errorf("version %d: %w", hdr.Version, ErrVersion))
	}
	if hdr.Codec > CompressionZstd {
		return nil, ioErrorf(opReadSPZ, fmt.Errorf("codec %d: %w", hdr.Codec, ErrUnknownCompression))
	}
	if !hdr.Dtype.valid() || (hdr.Width != 4 && hdr.Width != 8) || hdr.Rank == 0 || hdr.Rank > maxRank {
		return nil, ioErrorf(opReadSPZ, fmt.Errorf("dtype %d, width %d, rank %d: %w", hdr.Dtype, hdr.Width, hdr.Rank, ErrCorrupt))
	}

	dims := make([]uint64, hdr.Rank)
	if err := binary.Read(r, binary.LittleEndian, dims); err != nil {
		return nil, ioErrorf(opReadSPZ, fmt.Errorf("shape: %w", ErrCorrupt))
	}
	shape := make([]int, len(dims))
	for ax, d := range dims {
		if d > math.MaxInt64 {
			return nil, ioErrorf(opReadSPZ, fmt.Errorf("axis %d length %d: %w", ax, d, sparse.ErrIndexOverflow))
		}
		shape[ax] = int(d)
	}

	entry := uint64(hdr.Rank)*uint64(hdr.Width) + uint64(hdr.Dtype.size())
	if hdr.NNZ > math.MaxInt32 || hdr.NNZ*entry > math.MaxInt32 {
		return nil, ioErrorf(opReadSPZ, fmt.Errorf("payload of %d entries: %w", hdr.NNZ, ErrCorrupt))
	}
	nnz := int(hdr.NNZ)
	payload, err := readBlocks(r, hdr.Codec, nnz*int(entry))
	if err != nil {
		return nil, ioErrorf(opReadSPZ, err)
	}

	indices := make([]sparse.IndexArray, hdr.Rank)
	step := nnz * int(hdr.Width)
	for ax := range indices {
		indices[ax] = decodeCoords(payload[ax*step:(ax+1)*step], hdr.Width, nnz)
	}
	data, err := decodeValues[T](payload[len(indices)*step:], hdr.Dtype, nnz)
	if err != nil {
		return nil, ioErrorf(opReadSPZ, err)
	}

	opts = append([]sparse.Option{sparse.WithShape(shape...)}, opts...)
	c, err := sparse.NewFromIndexArrays(data, indices, opts...)
	if err != nil {
		return nil, ioErrorf(opReadSPZ, err)
	}
	if hdr.Flags&flagCanonical != 0 {
		c.SumDuplicates()
	}

	return c, nil
}

// appendCoords appends the coordinates of idx at their stored width.
func appendCoords(dst []byte, idx sparse.IndexArray) []byte {
	if idx.Width() == sparse.Int64 {
		for _, v := range idx.Int64s() {
			dst = binary.LittleEndian.AppendUint64(dst, uint64(v))
		}
		return dst
	}
	for _, v := range idx.Int32s() {
		dst = binary.LittleEndian.AppendUint32(dst, uint32(v))
	}
	return dst
}

func decodeCoords(src []byte, width uint8, n int) sparse.IndexArray {
	if width == 8 {
		v := make([]int64, n)
		for k := range v {
			v[k] = int64(binary.LittleEndian.Uint64(src[8*k:]))
		}
		return sparse.IndexArrayOf64(v)
	}
	v := make([]int32, n)
	for k := range v {
		v[k] = int32(binary.LittleEndian.Uint32(src[4*k:]))
	}
	return sparse.IndexArrayOf32(v)
}
