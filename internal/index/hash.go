package index

import (
	"fmt"

	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/plan"
	"github.com/chaisql/indexset/internal/rangeval"
	"github.com/chaisql/indexset/internal/types"
)

// HashIndex maps unique attribute values to sets of objects. It matches
// equality expressions (`a = 1`) and IN expressions against a literal
// array (`a IN (1, 2)`).
type HashIndex[T comparable] struct {
	attr string
	idx  map[any]map[T]struct{}
}

// NewHashIndex builds an empty HashIndex over attr.
func NewHashIndex[T comparable](attr string) *HashIndex[T] {
	return &HashIndex[T]{attr: attr, idx: make(map[any]map[T]struct{})}
}

func (h *HashIndex[T]) Attrs() []string { return []string{h.attr} }

func (h *HashIndex[T]) String() string { return fmt.Sprintf("HashIndex(%s)", h.attr) }

func (h *HashIndex[T]) Add(objs map[T]struct{}, ctx Context[T]) error {
	for obj := range objs {
		val, err := ctx.GetAttr(obj, h.attr)
		if err != nil {
			return err
		}
		key := val.AsMapKey()
		set, ok := h.idx[key]
		if !ok {
			set = make(map[T]struct{})
			h.idx[key] = set
		}
		set[obj] = struct{}{}
	}
	return nil
}

func (h *HashIndex[T]) Remove(objs map[T]struct{}, ctx Context[T]) error {
	for obj := range objs {
		val, err := ctx.GetAttr(obj, h.attr)
		if err != nil {
			return err
		}
		key := val.AsMapKey()
		if set, ok := h.idx[key]; ok {
			delete(set, obj)
		}
	}
	return nil
}

func (h *HashIndex[T]) Lookup(value types.Value) map[T]struct{} {
	if set, ok := h.idx[value.AsMapKey()]; ok {
		return set
	}
	return map[T]struct{}{}
}

func (h *HashIndex[T]) Range(r rangeval.Range) (map[T]struct{}, error) {
	return nil, ErrRangeUnsupported
}

func (h *HashIndex[T]) Match(cond expr.BinOp, operand expr.Condition, attrOnLeft bool) (plan.Plan, bool) {
	return matchEqOrIn(h, cond, operand, attrOnLeft)
}
