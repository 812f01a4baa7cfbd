package indexset

import "github.com/cockroachdb/errors"

// ErrUnsupportedFilterInput is returned by Filter/Plan when passed
// something other than a condition string, an expr.Condition, or an
// expr.Builder.
var ErrUnsupportedFilterInput = errors.New("indexset: unsupported filter input")
