package index

import (
	"fmt"

	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/plan"
	"github.com/chaisql/indexset/internal/rangeval"
	"github.com/chaisql/indexset/internal/types"
)

// InvertedIndex is a HashIndex over a collection-valued attribute: each
// object contributes one index entry per element of the attribute rather
// than one entry for the whole attribute value. It matches membership
// expressions where the collection-valued attribute is the right-hand side
// (`1 IN tags`).
type InvertedIndex[T comparable] struct {
	attr string
	idx  map[any]map[T]struct{}
}

// NewInvertedIndex builds an empty InvertedIndex over attr.
func NewInvertedIndex[T comparable](attr string) *InvertedIndex[T] {
	return &InvertedIndex[T]{attr: attr, idx: make(map[any]map[T]struct{})}
}

func (iv *InvertedIndex[T]) Attrs() []string { return []string{iv.attr} }

func (iv *InvertedIndex[T]) String() string { return fmt.Sprintf("InvertedIndex(%s)", iv.attr) }

func (iv *InvertedIndex[T]) Add(objs map[T]struct{}, ctx Context[T]) error {
	for obj := range objs {
		val, err := ctx.GetAttr(obj, iv.attr)
		if err != nil {
			return err
		}
		if val.Kind() != types.KindArray {
			return errUnsupportedAttrKind(iv.attr, val)
		}
		for _, item := range val.Array() {
			key := item.AsMapKey()
			set, ok := iv.idx[key]
			if !ok {
				set = make(map[T]struct{})
				iv.idx[key] = set
			}
			set[obj] = struct{}{}
		}
	}
	return nil
}

func (iv *InvertedIndex[T]) Remove(objs map[T]struct{}, ctx Context[T]) error {
	for obj := range objs {
		val, err := ctx.GetAttr(obj, iv.attr)
		if err != nil {
			return err
		}
		if val.Kind() != types.KindArray {
			return errUnsupportedAttrKind(iv.attr, val)
		}
		for _, item := range val.Array() {
			if set, ok := iv.idx[item.AsMapKey()]; ok {
				delete(set, obj)
			}
		}
	}
	return nil
}

func (iv *InvertedIndex[T]) Lookup(value types.Value) map[T]struct{} {
	if set, ok := iv.idx[value.AsMapKey()]; ok {
		return set
	}
	return map[T]struct{}{}
}

func (iv *InvertedIndex[T]) Range(r rangeval.Range) (map[T]struct{}, error) {
	return nil, ErrRangeUnsupported
}

func (iv *InvertedIndex[T]) Match(cond expr.BinOp, operand expr.Condition, attrOnLeft bool) (plan.Plan, bool) {
	if cond.Op != expr.KindIn || attrOnLeft {
		return nil, false
	}
	lit, ok := operand.(expr.Literal)
	if !ok {
		return nil, false
	}
	return plan.IndexLookup{Index: iv, Value: lit.Value}, true
}
