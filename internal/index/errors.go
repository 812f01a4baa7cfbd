package index

import (
	"github.com/cockroachdb/errors"

	"github.com/chaisql/indexset/internal/types"
)

// ErrRangeUnsupported is returned by Index.Range implementations that
// cannot serve a range query (HashIndex, InvertedIndex). The optimizer must
// never produce a plan that exercises this path; its presence indicates a
// bug in a custom optimizer rule.
var ErrRangeUnsupported = errors.New("index: range queries are not supported")

// ErrUnsupportedAttrKind is returned when InvertedIndex.Add/Remove is given
// an attribute value that isn't array-valued.
var ErrUnsupportedAttrKind = errors.New("index: expected an array-valued attribute")

func errUnsupportedAttrKind(attr string, got types.Value) error {
	return errors.Wrapf(ErrUnsupportedAttrKind, "%s (got %s)", attr, got.Kind())
}
