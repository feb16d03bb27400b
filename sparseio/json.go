// SPDX-License-Identifier: MIT

package sparseio

import (
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/katalvlaran/lvsparse/sparse"
)

// document is the JSON form of a triplet store:
//
//	{"shape":[4,4],"coords":[[0,1],[2,3]],"data":[1.5,2],"canonical":true}
//
// coords holds one sequence per axis.
type document[T sparse.Scalar] struct {
	Shape     []int   `json:"shape"`
	Coords    [][]int `json:"coords"`
	Data      []T     `json:"data"`
	Canonical bool    `json:"canonical,omitempty"`
}

// MarshalJSON returns the JSON document of c.
func MarshalJSON[T sparse.Scalar](c *sparse.COO[T]) ([]byte, error) {
	if c == nil {
		return nil, ioErrorf(opWriteJSON, sparse.ErrNilContainer)
	}
	b, err := gojson.Marshal(toDocument(c))
	if err != nil {
		return nil, ioErrorf(opWriteJSON, err)
	}
	return b, nil
}

// UnmarshalJSON rebuilds a store from its JSON document. The shape is
// required; coordinates are validated against it.
// Errors: sparse.ErrInvalidFormat for a document without shape, the sparse
// validation sentinels, and decoding errors.
func UnmarshalJSON[T sparse.Scalar](b []byte, opts ...sparse.Option) (*sparse.COO[T], error) {
	var doc document[T]
	if err := gojson.Unmarshal(b, &doc); err != nil {
		return nil, ioErrorf(opReadJSON, err)
	}
	return fromDocument(doc, opts)
}

// EncodeJSON streams the JSON document of c to w, followed by a newline.
func EncodeJSON[T sparse.Scalar](w io.Writer, c *sparse.COO[T]) error {
	if c == nil {
		return ioErrorf(opWriteJSON, sparse.ErrNilContainer)
	}
	if err := gojson.NewEncoder(w).Encode(toDocument(c)); err != nil {
		return ioErrorf(opWriteJSON, err)
	}
	return nil
}

// DecodeJSON reads one JSON document from r.
func DecodeJSON[T sparse.Scalar](r io.Reader, opts ...sparse.Option) (*sparse.COO[T], error) {
	var doc document[T]
	if err := gojson.NewDecoder(r).Decode(&doc); err != nil {
		return nil, ioErrorf(opReadJSON, err)
	}
	return fromDocument(doc, opts)
}

func toDocument[T sparse.Scalar](c *sparse.COO[T]) document[T] {
	shape := c.Shape()
	doc := document[T]{
		Shape:     []int(shape),
		Coords:    make([][]int, shape.Rank()),
		Data:      c.Data(),
		Canonical: c.HasCanonicalFormat(),
	}
	for ax := range doc.Coords {
		idx, _ := c.Coords(ax) // ax < rank
		doc.Coords[ax] = idx.Ints()
	}
	if doc.Data == nil {
		doc.Data = []T{}
	}
	return doc
}

func fromDocument[T sparse.Scalar](doc document[T], opts []sparse.Option) (*sparse.COO[T], error) {
	if len(doc.Shape) == 0 {
		return nil, ioErrorf(opReadJSON, fmt.Errorf("missing shape: %w", sparse.ErrInvalidFormat))
	}
	opts = append([]sparse.Option{sparse.WithShape(doc.Shape...)}, opts...)
	c, err := sparse.NewFromTriplets(doc.Data, doc.Coords, opts...)
	if err != nil {
		return nil, ioErrorf(opReadJSON, err)
	}
	if doc.Canonical {
		c.SumDuplicates()
	}
	return c, nil
}
