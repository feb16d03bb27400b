// SPDX-License-Identifier: MIT

package sparseio

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/lvsparse/sparse"
)

// Format identifies an on-disk encoding.
type Format uint8

const (
	FormatSPZ Format = iota + 1
	FormatMatrixMarket
	FormatJSON
)

// String returns the file extension of f without the dot.
func (f Format) String() string {
	switch f {
	case FormatSPZ:
		return "spz"
	case FormatMatrixMarket:
		return "mtx"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// FormatFromPath picks the encoding from the file extension (.spz, .mtx,
// .json; case-insensitive).
// Errors: ErrUnknownFormat.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".spz":
		return FormatSPZ, nil
	case ".mtx":
		return FormatMatrixMarket, nil
	case ".json":
		return FormatJSON, nil
	default:
		return 0, fmt.Errorf("%q: %w", path, ErrUnknownFormat)
	}
}

// ReadFile loads a store from path, choosing the codec by extension.
func ReadFile[T sparse.Scalar](path string, opts ...sparse.Option) (*sparse.COO[T], error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, ioErrorf(opReadFile, err)
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, ioErrorf(opReadFile, err)
	}
	defer fh.Close()

	r := bufio.NewReader(fh)
	switch f {
	case FormatSPZ:
		return ReadSPZ[T](r, opts...)
	case FormatMatrixMarket:
		return ReadMatrixMarket[T](r, opts...)
	default:
		return DecodeJSON[T](r, opts...)
	}
}

// WriteFile stores c at path, choosing the codec by extension. The file is
// created or truncated. opts apply to the .spz codec only.
func WriteFile[T sparse.Scalar](path string, c *sparse.COO[T], opts ...Option) (err error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return ioErrorf(opWriteFile, err)
	}
	fh, err := os.Create(path)
	if err != nil {
		return ioErrorf(opWriteFile, err)
	}
	defer func() {
		if cerr := fh.Close(); cerr != nil {
			err = errors.Join(err, ioErrorf(opWriteFile, cerr))
		}
	}()

	w := bufio.NewWriter(fh)
	switch f {
	case FormatSPZ:
		err = WriteSPZ(w, c, opts...)
	case FormatMatrixMarket:
		err = WriteMatrixMarket(w, c)
	default:
		err = EncodeJSON(w, c)
	}
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return ioErrorf(opWriteFile, err)
	}
	return nil
}
