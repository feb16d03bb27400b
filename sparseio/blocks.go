// SPDX-License-Identifier: MIT
// Package sparseio - payload block codec.
//
// A payload is cut into blocks of at most blockSize bytes. Each block is
// framed as
//
//	[uncompressed u32][stored u32][stored bytes]
//
// where stored == 0 means the block is kept raw (compression did not pay
// off, or CompressionNone). All integers are little-endian.

package sparseio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const blockHeaderSize = 8

// rawRatio is the compressed/raw size ratio above which a block is stored raw.
const rawRatio = 0.9

// maxPrealloc caps buffers sized from untrusted headers; larger payloads grow
// as their bytes arrive.
const maxPrealloc = 1 << 20

// lz4MaxExpansion bounds raw/packed for a valid LZ4 block.
const lz4MaxExpansion = 256

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil)
}

// compressBlock returns the framed form of data.
func compressBlock(data []byte, c Compression) ([]byte, error) {
	var packed []byte
	switch c {
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		packed = buf[:n] // n == 0: incompressible
	case CompressionZstd:
		enc, err := getZstdEncoder()
		if err != nil {
			return nil, err
		}
		packed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	}

	out := make([]byte, blockHeaderSize, blockHeaderSize+len(data))
	binary.LittleEndian.PutUint32(out[0:], uint32(len(data)))
	if len(packed) == 0 || float64(len(packed)) > float64(len(data))*rawRatio {
		return append(out, data...), nil
	}
	binary.LittleEndian.PutUint32(out[4:], uint32(len(packed)))

	return append(out, packed...), nil
}

// blockWriter buffers a payload and emits framed blocks.
type blockWriter struct {
	w           io.Writer
	compression Compression
	blockSize   int
	buf         []byte
	written     int64
}

func newBlockWriter(w io.Writer, c Compression, blockSize int) *blockWriter {
	return &blockWriter{
		w:           w,
		compression: c,
		blockSize:   blockSize,
		buf:         make([]byte, 0, blockSize),
	}
}

// Write buffers p, flushing every full block.
func (b *blockWriter) Write(p []byte) (int, error) {
	total := 0
	for len(p) > 0 {
		if len(b.buf) == b.blockSize {
			if err := b.flushBlock(); err != nil {
				return total, err
			}
		}
		n := min(len(p), b.blockSize-len(b.buf))
		b.buf = append(b.buf, p[:n]...)
		total += n
		p = p[n:]
	}
	return total, nil
}

func (b *blockWriter) flushBlock() error {
	if len(b.buf) == 0 {
		return nil
	}
	framed, err := compressBlock(b.buf, b.compression)
	if err != nil {
		return err
	}
	n, err := b.w.Write(framed)
	b.written += int64(n)
	if err != nil {
		return err
	}
	b.buf = b.buf[:0]
	return nil
}

// Flush writes the pending partial block.
func (b *blockWriter) Flush() error { return b.flushBlock() }

// readBlocks reads framed blocks from r until exactly size payload bytes have
// been decoded.
func readBlocks(r io.Reader, c Compression, size int) ([]byte, error) {
	out := make([]byte, 0, min(size, maxPrealloc))
	var hdr [blockHeaderSize]byte
	for len(out) < size {
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("block header: %w", ErrCorrupt)
		}
		raw := int(binary.LittleEndian.Uint32(hdr[0:]))
		stored := int(binary.LittleEndian.Uint32(hdr[4:]))
		if raw == 0 || len(out)+raw > size {
			return nil, fmt.Errorf("block of %d bytes exceeds payload of %d: %w", raw, size, ErrCorrupt)
		}

		if stored == 0 {
			buf := bytes.NewBuffer(out)
			if _, err := io.CopyN(buf, r, int64(raw)); err != nil {
				return nil, fmt.Errorf("raw block: %w", ErrCorrupt)
			}
			out = buf.Bytes()
			continue
		}

		// Packed blocks are stored only below rawRatio of their raw size.
		if stored >= raw {
			return nil, fmt.Errorf("block stores %d packed bytes for %d raw: %w", stored, raw, ErrCorrupt)
		}
		packed := make([]byte, stored)
		if _, err := io.ReadFull(r, packed); err != nil {
			return nil, fmt.Errorf("compressed block: %w", ErrCorrupt)
		}
		block, err := decompressBlock(packed, raw, c)
		if err != nil {
			return nil, err
		}
		out = append(out, block...)
	}
	return out, nil
}

func decompressBlock(packed []byte, raw int, c Compression) ([]byte, error) {
	switch c {
	case CompressionLZ4:
		if raw > lz4MaxExpansion*(len(packed)+1) {
			return nil, fmt.Errorf("lz4 block of %d bytes claims %d raw: %w", len(packed), raw, ErrCorrupt)
		}
		dst := make([]byte, raw)
		n, err := lz4.UncompressBlock(packed, dst)
		if err != nil {
			return nil, fmt.Errorf("lz4: %v: %w", err, ErrCorrupt)
		}
		if n != raw {
			return nil, fmt.Errorf("decompressed size %d, want %d: %w", n, raw, ErrCorrupt)
		}
		return dst, nil
	case CompressionZstd:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer zstdDecoderPool.Put(dec)
		dst, err := dec.DecodeAll(packed, make([]byte, 0, min(raw, maxPrealloc)))
		if err != nil {
			return nil, fmt.Errorf("zstd: %v: %w", err, ErrCorrupt)
		}
		if len(dst) != raw {
			return nil, fmt.Errorf("decompressed size %d, want %d: %w", len(dst), raw, ErrCorrupt)
		}
		return dst, nil
	default:
		return nil, fmt.Errorf("compressed block under codec %s: %w", c, ErrCorrupt)
	}
}
