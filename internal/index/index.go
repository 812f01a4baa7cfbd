// Package index implements the Index abstraction (component D): a
// secondary structure mapping an attribute's values to object references,
// consumed by the optimizer (to rewrite scans) and the executor (to serve
// lookups/ranges).
package index

import (
	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/plan"
	"github.com/chaisql/indexset/internal/rangeval"
	"github.com/chaisql/indexset/internal/types"
)

// Context supplies attribute extraction to an index during Add/Remove, so
// indexes never need to know how a computed attribute is resolved.
type Context[T comparable] interface {
	GetAttr(obj T, name string) (types.Value, error)
}

// Matcher is the non-generic surface of an Index the optimizer consumes:
// it never needs T, only whether a condition can be served and by what
// plan. Segregating it this way lets internal/planner and
// internal/optimizer stay non-generic while internal/index and the facade
// are generic over the stored object type.
type Matcher interface {
	// Attrs lists the attribute names this index claims, in the order it
	// should be consulted alongside other indexes on the same name.
	Attrs() []string
	// Match determines whether this index can serve `cond`, where operand
	// is whichever side of cond is not the attribute and attrOnLeft
	// reports whether the attribute occupies cond's left-hand side.
	Match(cond expr.BinOp, operand expr.Condition, attrOnLeft bool) (plan.Plan, bool)
	String() string
}

// Index is a secondary structure over one or more attributes of a
// collection of T.
type Index[T comparable] interface {
	Matcher
	Add(objs map[T]struct{}, ctx Context[T]) error
	Remove(objs map[T]struct{}, ctx Context[T]) error
	Lookup(value types.Value) map[T]struct{}
	Range(r rangeval.Range) (map[T]struct{}, error)
}
