// SPDX-License-Identifier: MIT
// Package sparseio: functional configuration for writers.
//   - Defaults are documented constants.
//   - WithX constructors panic only on nonsensical values.

package sparseio

import (
	"fmt"
	"strings"
)

// Compression selects the block codec of the binary container.
type Compression uint8

const (
	// CompressionNone stores blocks raw.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZstd uses zstd (better ratio).
	CompressionZstd Compression = 2
)

// String returns the configuration name of c.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression maps a configuration name (case-insensitive) to a codec.
// Errors: ErrUnknownCompression.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownCompression)
	}
}

const (
	// DefaultCompression is the codec used by WriteSPZ without options.
	DefaultCompression = CompressionZstd
	// DefaultBlockSize is the uncompressed size of one payload block.
	DefaultBlockSize = 256 << 10
)

const (
	panicBlockSize   = "sparseio: WithBlockSize: size must be positive"
	panicCompression = "sparseio: WithCompression: unknown codec"
)

// Option mutates writer options.
type Option func(*Options)

// Options holds the effective writer configuration.
type Options struct {
	compression Compression
	blockSize   int
}

// WithCompression selects the block codec. Panics on an unknown codec.
func WithCompression(c Compression) Option {
	if c > CompressionZstd {
		panic(panicCompression)
	}
	return func(o *Options) { o.compression = c }
}

// WithBlockSize sets the uncompressed block size in bytes. Panics when n ≤ 0.
func WithBlockSize(n int) Option {
	if n <= 0 {
		panic(panicBlockSize)
	}
	return func(o *Options) { o.blockSize = n }
}

func gatherOptions(opts ...Option) Options {
	o := Options{compression: DefaultCompression, blockSize: DefaultBlockSize}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
