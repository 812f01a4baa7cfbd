package index

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/plan"
	"github.com/chaisql/indexset/internal/rangeval"
	"github.com/chaisql/indexset/internal/types"
)

// SortedDictIndex is a HashIndex that additionally maintains its keys in
// sorted order, so it can serve range queries and inequality comparisons
// (`<`, `<=`, `>`, `>=`) in addition to Eq/In.
type SortedDictIndex[T comparable] struct {
	attr string
	sets map[any]map[T]struct{}
	keys []types.Value // sorted ascending, deduplicated
}

// NewSortedDictIndex builds an empty SortedDictIndex over attr.
func NewSortedDictIndex[T comparable](attr string) *SortedDictIndex[T] {
	return &SortedDictIndex[T]{attr: attr, sets: make(map[any]map[T]struct{})}
}

func (s *SortedDictIndex[T]) Attrs() []string { return []string{s.attr} }

func (s *SortedDictIndex[T]) String() string { return fmt.Sprintf("SortedDictIndex(%s)", s.attr) }

func compareValue(a, b types.Value) int {
	cmp, err := types.Compare(a, b)
	if err != nil {
		// Mixed, incomparable attribute values are a misuse of a sorted
		// index; treat the key as greater than the target rather than crash
		// the insertion. Where such values end up in the key order is not
		// defined.
		return 1
	}
	return cmp
}

func (s *SortedDictIndex[T]) insertKey(v types.Value) {
	key := v.AsMapKey()
	if _, ok := s.sets[key]; ok {
		return
	}
	idx, _ := slices.BinarySearchFunc(s.keys, v, compareValue)
	s.keys = slices.Insert(s.keys, idx, v)
}

func (s *SortedDictIndex[T]) Add(objs map[T]struct{}, ctx Context[T]) error {
	for obj := range objs {
		val, err := ctx.GetAttr(obj, s.attr)
		if err != nil {
			return err
		}
		key := val.AsMapKey()
		set, ok := s.sets[key]
		if !ok {
			set = make(map[T]struct{})
			s.insertKey(val)
			s.sets[key] = set
		}
		set[obj] = struct{}{}
	}
	return nil
}

func (s *SortedDictIndex[T]) Remove(objs map[T]struct{}, ctx Context[T]) error {
	for obj := range objs {
		val, err := ctx.GetAttr(obj, s.attr)
		if err != nil {
			return err
		}
		if set, ok := s.sets[val.AsMapKey()]; ok {
			delete(set, obj)
		}
	}
	return nil
}

func (s *SortedDictIndex[T]) Lookup(value types.Value) map[T]struct{} {
	if set, ok := s.sets[value.AsMapKey()]; ok {
		return set
	}
	return map[T]struct{}{}
}

// bisectLeft returns the first index i such that s.keys[i] >= v.
func (s *SortedDictIndex[T]) bisectLeft(v types.Value) int {
	idx, _ := slices.BinarySearchFunc(s.keys, v, compareValue)
	return idx
}

// bisectRight returns the first index i such that s.keys[i] > v.
func (s *SortedDictIndex[T]) bisectRight(v types.Value) int {
	idx, _ := slices.BinarySearchFunc(s.keys, v, func(a, target types.Value) int {
		cmp := compareValue(a, target)
		if cmp <= 0 {
			return -1
		}
		return 1
	})
	return idx
}

func (s *SortedDictIndex[T]) Range(r rangeval.Range) (map[T]struct{}, error) {
	left := 0
	if !r.Left.Unset {
		if r.Left.Inclusive {
			left = s.bisectLeft(r.Left.Value)
		} else {
			left = s.bisectRight(r.Left.Value)
		}
	}
	right := len(s.keys)
	if !r.Right.Unset {
		if r.Right.Inclusive {
			right = s.bisectRight(r.Right.Value)
		} else {
			right = s.bisectLeft(r.Right.Value)
		}
	}

	result := make(map[T]struct{})
	for i := left; i < right && i < len(s.keys); i++ {
		for obj := range s.sets[s.keys[i].AsMapKey()] {
			result[obj] = struct{}{}
		}
	}
	return result, nil
}

var comparisonRanges = map[expr.Kind]func(types.Value) rangeval.Range{
	expr.KindLt: func(v types.Value) rangeval.Range {
		return rangeval.Range{Left: rangeval.UnsetBound(), Right: rangeval.NewBound(v, false)}
	},
	expr.KindGt: func(v types.Value) rangeval.Range {
		return rangeval.Range{Left: rangeval.NewBound(v, false), Right: rangeval.UnsetBound()}
	},
	expr.KindLe: func(v types.Value) rangeval.Range {
		return rangeval.Range{Left: rangeval.UnsetBound(), Right: rangeval.NewBound(v, true)}
	},
	expr.KindGe: func(v types.Value) rangeval.Range {
		return rangeval.Range{Left: rangeval.NewBound(v, true), Right: rangeval.UnsetBound()}
	},
}

var inverseComparison = map[expr.Kind]expr.Kind{
	expr.KindLt: expr.KindGt,
	expr.KindGt: expr.KindLt,
	expr.KindLe: expr.KindGe,
	expr.KindGe: expr.KindLe,
}

func (s *SortedDictIndex[T]) Match(cond expr.BinOp, operand expr.Condition, attrOnLeft bool) (plan.Plan, bool) {
	builder, ok := comparisonRanges[cond.Op]
	if ok {
		lit, ok := operand.(expr.Literal)
		if !ok {
			return nil, false
		}
		comparison := cond.Op
		if !attrOnLeft {
			// the literal sits on the comparison's left (e.g. `1 < a`),
			// so the operator must be read from the attribute's
			// perspective.
			if inv, ok := inverseComparison[comparison]; ok {
				comparison = inv
			}
		}
		return plan.IndexRange{Index: s, Range: comparisonRanges[comparison](lit.Value)}, true
	}
	return matchEqOrIn(s, cond, operand, attrOnLeft)
}
