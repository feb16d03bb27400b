// SPDX-License-Identifier: MIT
// Package sparseio - Matrix Market coordinate text (.mtx).
//
// Reading accepts the coordinate layout with real, integer or pattern fields
// and general, symmetric or skew-symmetric storage. Symmetric files are
// expanded: every off-diagonal entry is mirrored (negated for skew-symmetric).
// Entries are kept in file order; repeated coordinates stay as duplicates.
//
// Writing always emits the general coordinate layout, one line per stored
// entry, with the field chosen from the value type.

package sparseio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/lvsparse/sparse"
)

const mmBanner = "%%MatrixMarket"

type mmField uint8

const (
	mmReal mmField = iota
	mmInteger
	mmPattern
)

type mmSymmetry uint8

const (
	mmGeneral mmSymmetry = iota
	mmSymmetric
	mmSkew
)

// ReadMatrixMarket parses a coordinate Matrix Market stream into a rank-2
// store. opts are applied to the result (diagnostic sink, DIA threshold).
// Errors: ErrMalformed, ErrUnsupported, and sparse.ErrOutOfRange for
// coordinates outside the declared size.
// Complexity: O(nnz) time and space.
func ReadMatrixMarket[T sparse.Scalar](r io.Reader, opts ...sparse.Option) (*sparse.COO[T], error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64<<10), 1<<20)
	line := 0
	bannerSeen := false
	next := func() (string, bool) {
		for sc.Scan() {
			line++
			s := strings.TrimSpace(sc.Text())
			if s == "" || (bannerSeen && strings.HasPrefix(s, "%")) {
				continue
			}
			bannerSeen = true
			return s, true
		}
		return "", false
	}

	// Stage 1: banner.
	banner, ok := next()
	if !ok {
		return nil, ioErrorf(opReadMM, fmt.Errorf("empty input: %w", ErrMalformed))
	}
	field, sym, err := parseBanner(banner)
	if err != nil {
		return nil, ioErrorf(opReadMM, err)
	}

	// Stage 2: size line.
	size, ok := next()
	if !ok {
		return nil, ioErrorf(opReadMM, fmt.Errorf("missing size line: %w", ErrMalformed))
	}
	dims, err := parseInts(strings.Fields(size), 3)
	if err != nil {
		return nil, ioErrorf(opReadMM, fmt.Errorf("line %d: size: %w", line, err))
	}
	rows, cols, nnz := dims[0], dims[1], dims[2]
	if rows < 0 || cols < 0 || nnz < 0 {
		return nil, ioErrorf(opReadMM, fmt.Errorf("line %d: negative size: %w", line, ErrMalformed))
	}
	if sym != mmGeneral && rows != cols {
		return nil, ioErrorf(opReadMM, fmt.Errorf("symmetric storage of a %dx%d matrix: %w", rows, cols, ErrMalformed))
	}

	// Stage 3: entries.
	capHint := min(nnz, 1<<20)
	if sym != mmGeneral {
		capHint *= 2
	}
	ri := make([]int, 0, capHint)
	ci := make([]int, 0, capHint)
	vals := make([]T, 0, capHint)
	for k := 0; k < nnz; k++ {
		s, ok := next()
		if !ok {
			return nil, ioErrorf(opReadMM, fmt.Errorf("%d of %d entries present: %w", k, nnz, ErrMalformed))
		}
		f := strings.Fields(s)
		want := 3
		if field == mmPattern {
			want = 2
		}
		if len(f) != want {
			return nil, ioErrorf(opReadMM, fmt.Errorf("line %d: %d fields, want %d: %w", line, len(f), want, ErrMalformed))
		}
		ij, err := parseInts(f[:2], 2)
		if err != nil {
			return nil, ioErrorf(opReadMM, fmt.Errorf("line %d: %w", line, err))
		}
		v, err := parseValue[T](f, field)
		if err != nil {
			return nil, ioErrorf(opReadMM, fmt.Errorf("line %d: %w", line, err))
		}
		i, j := ij[0]-1, ij[1]-1
		ri, ci, vals = append(ri, i), append(ci, j), append(vals, v)
		if sym != mmGeneral && i != j {
			if sym == mmSkew {
				v = -v
			}
			ri, ci, vals = append(ri, j), append(ci, i), append(vals, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, ioErrorf(opReadMM, err)
	}
	if extra, ok := next(); ok {
		return nil, ioErrorf(opReadMM, fmt.Errorf("line %d: trailing data %q: %w", line, extra, ErrMalformed))
	}

	opts = append([]sparse.Option{sparse.WithShape(rows, cols)}, opts...)
	c, err := sparse.NewFromTriplets(vals, [][]int{ri, ci}, opts...)
	if err != nil {
		return nil, ioErrorf(opReadMM, err)
	}

	return c, nil
}

func parseBanner(s string) (mmField, mmSymmetry, error) {
	f := strings.Fields(strings.ToLower(s))
	if len(f) != 5 || f[0] != strings.ToLower(mmBanner) || f[1] != "matrix" {
		return 0, 0, fmt.Errorf("banner %q: %w", s, ErrMalformed)
	}
	if f[2] != "coordinate" {
		return 0, 0, fmt.Errorf("layout %q: %w", f[2], ErrUnsupported)
	}

	var field mmField
	switch f[3] {
	case "real", "double":
		field = mmReal
	case "integer":
		field = mmInteger
	case "pattern":
		field = mmPattern
	default:
		return 0, 0, fmt.Errorf("field %q: %w", f[3], ErrUnsupported)
	}

	var sym mmSymmetry
	switch f[4] {
	case "general":
		sym = mmGeneral
	case "symmetric":
		sym = mmSymmetric
	case "skew-symmetric":
		sym = mmSkew
	default:
		return 0, 0, fmt.Errorf("symmetry %q: %w", f[4], ErrUnsupported)
	}

	return field, sym, nil
}

func parseInts(f []string, n int) ([]int, error) {
	if len(f) != n {
		return nil, fmt.Errorf("%d fields, want %d: %w", len(f), n, ErrMalformed)
	}
	out := make([]int, n)
	for k, s := range f {
		v, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, ErrMalformed)
		}
		out[k] = v
	}
	return out, nil
}

func parseValue[T sparse.Scalar](f []string, field mmField) (T, error) {
	switch field {
	case mmPattern:
		return T(1), nil
	case mmInteger:
		v, err := strconv.ParseInt(f[2], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("integer value %q: %w", f[2], ErrMalformed)
		}
		return T(v), nil
	default:
		v, err := strconv.ParseFloat(f[2], 64)
		if err != nil {
			return 0, fmt.Errorf("real value %q: %w", f[2], ErrMalformed)
		}
		return T(v), nil
	}
}

// WriteMatrixMarket writes a rank-2 store as general coordinate text. The
// field is integer for integer value types and real otherwise. Stored
// duplicates are written as separate lines.
// Errors: sparse.ErrNilContainer, sparse.ErrUnsupported for rank != 2, write
// errors from w.
func WriteMatrixMarket[T sparse.Scalar](w io.Writer, c *sparse.COO[T]) error {
	if c == nil {
		return ioErrorf(opWriteMM, sparse.ErrNilContainer)
	}
	shape := c.Shape()
	if shape.Rank() != 2 {
		return ioErrorf(opWriteMM, fmt.Errorf("shape %v: %w", shape, sparse.ErrUnsupported))
	}
	field := "integer"
	if dtypeOf[T]().class() == classFloat {
		field = "real"
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s matrix coordinate %s general\n", mmBanner, field)
	fmt.Fprintf(bw, "%d %d %d\n", shape[0], shape[1], c.NNZ())
	row, col := c.Row(), c.Col()
	buf := make([]byte, 0, 64)
	for k, v := range c.Data() {
		buf = strconv.AppendInt(buf[:0], int64(row.At(k)+1), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, int64(col.At(k)+1), 10)
		buf = append(buf, ' ')
		buf = appendMMValue(buf, v)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return ioErrorf(opWriteMM, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return ioErrorf(opWriteMM, err)
	}

	return nil
}

func appendMMValue[T sparse.Scalar](dst []byte, v T) []byte {
	switch dtypeOf[T]() {
	case dtFloat32:
		return strconv.AppendFloat(dst, float64(v), 'g', -1, 32)
	case dtFloat64:
		return strconv.AppendFloat(dst, float64(v), 'g', -1, 64)
	}
	if dtypeOf[T]().class() == classUnsigned {
		return strconv.AppendUint(dst, uint64(v), 10)
	}
	return strconv.AppendInt(dst, int64(v), 10)
}
