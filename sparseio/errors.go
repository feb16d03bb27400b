// SPDX-License-Identifier: MIT
// Package sparseio: sentinel error set.
// Every reader and writer wraps one of these (or a sparse sentinel raised by
// validation) with an operation tag; callers match with errors.Is.

package sparseio

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic is returned when a binary stream does not start with the
	// container signature.
	ErrBadMagic = errors.New("sparseio: not an lvsparse container")

	// ErrVersion is returned for a container written by a newer format version.
	ErrVersion = errors.New("sparseio: unsupported container version")

	// ErrCorrupt indicates a truncated or inconsistent payload (bad block
	// header, size mismatch after decompression, unknown type codes).
	ErrCorrupt = errors.New("sparseio: corrupt payload")

	// ErrUnknownCompression is returned for a compression name or code that is
	// not one of none, lz4, zstd.
	ErrUnknownCompression = errors.New("sparseio: unknown compression")

	// ErrUnknownFormat is returned when a file extension maps to no codec.
	ErrUnknownFormat = errors.New("sparseio: unknown file format")

	// ErrMalformed indicates Matrix Market text that does not follow the
	// coordinate grammar (banner, size line, entry lines).
	ErrMalformed = errors.New("sparseio: malformed Matrix Market input")

	// ErrUnsupported marks a valid Matrix Market variant this package does not
	// read (array layout, complex or hermitian fields).
	ErrUnsupported = errors.New("sparseio: unsupported Matrix Market variant")
)

// ioErrorf wraps err with an operation tag.
func ioErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Operation name constants for error wrapping.
const (
	opWriteSPZ  = "WriteSPZ"
	opReadSPZ   = "ReadSPZ"
	opWriteMM   = "WriteMatrixMarket"
	opReadMM    = "ReadMatrixMarket"
	opWriteJSON = "EncodeJSON"
	opReadJSON  = "DecodeJSON"
	opReadFile  = "ReadFile"
	opWriteFile = "WriteFile"
)
