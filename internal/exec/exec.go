// Package exec implements the executor (evaluates a plan against a
// collection) and the matcher (interprets a condition against one object),
// component G.
package exec

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/plan"
	"github.com/chaisql/indexset/internal/rangeval"
	"github.com/chaisql/indexset/internal/types"
)

// Context supplies the collection's members and attribute resolution to
// the executor and matcher.
type Context[T comparable] interface {
	GetAttr(obj T, name string) (types.Value, error)
	Objects() map[T]struct{}
}

// lookuper and ranger are the local, type-asserted views of plan.Index the
// executor needs to actually serve an IndexLookup/IndexRange — plan.Index
// itself only guarantees String(), to keep internal/plan free of any
// dependency on internal/index.
type lookuper[T comparable] interface {
	Lookup(value types.Value) map[T]struct{}
}

type ranger[T comparable] interface {
	Range(r rangeval.Range) (map[T]struct{}, error)
}

// Executor evaluates plans against a Context[T].
type Executor[T comparable] struct{}

// New returns the default Executor.
func New[T comparable]() *Executor[T] { return &Executor[T]{} }

// Execute dispatches on the plan's kind.
func (e *Executor[T]) Execute(p plan.Plan, ctx Context[T]) (map[T]struct{}, error) {
	switch node := p.(type) {
	case plan.Empty:
		return map[T]struct{}{}, nil

	case plan.ScanFilter:
		return e.scanFilter(node.Condition, ctx.Objects(), ctx)

	case plan.Filter:
		input, err := e.Execute(node.Input, ctx)
		if err != nil {
			return nil, err
		}
		return e.scanFilter(node.Condition, input, ctx)

	case plan.Union:
		return e.union(node.Inputs, ctx)

	case plan.Intersect:
		return e.intersect(node.Inputs, ctx)

	case plan.IndexLookup:
		lk, ok := node.Index.(lookuper[T])
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedPlan, "index %s does not support Lookup", node.Index)
		}
		return lk.Lookup(node.Value), nil

	case plan.IndexRange:
		rg, ok := node.Index.(ranger[T])
		if !ok {
			return nil, errors.Wrapf(ErrUnsupportedPlan, "index %s does not support Range", node.Index)
		}
		return rg.Range(node.Range)

	default:
		return nil, errors.Wrapf(ErrUnsupportedPlan, "%T", p)
	}
}

// scanFilter applies cond to every member of candidates, returning the
// matching subset. ScanFilter scans ctx.Objects(); Filter scans its input's
// already-narrowed result set.
func (e *Executor[T]) scanFilter(cond expr.Condition, candidates map[T]struct{}, ctx Context[T]) (map[T]struct{}, error) {
	result := make(map[T]struct{})
	for obj := range candidates {
		v, err := e.Match(cond, obj, ctx)
		if err != nil {
			return nil, err
		}
		if v.IsTruthy() {
			result[obj] = struct{}{}
		}
	}
	return result, nil
}

func (e *Executor[T]) union(inputs []plan.Plan, ctx Context[T]) (map[T]struct{}, error) {
	result := make(map[T]struct{})
	for _, in := range inputs {
		set, err := e.Execute(in, ctx)
		if err != nil {
			return nil, err
		}
		for obj := range set {
			result[obj] = struct{}{}
		}
	}
	return result, nil
}

func (e *Executor[T]) intersect(inputs []plan.Plan, ctx Context[T]) (map[T]struct{}, error) {
	sets := make([]map[T]struct{}, len(inputs))
	for i, in := range inputs {
		set, err := e.Execute(in, ctx)
		if err != nil {
			return nil, err
		}
		sets[i] = set
	}
	if len(sets) == 0 {
		return map[T]struct{}{}, nil
	}
	sort.Slice(sets, func(i, j int) bool { return len(sets[i]) < len(sets[j]) })

	result := sets[0]
	for _, s := range sets[1:] {
		next := make(map[T]struct{}, len(result))
		for obj := range result {
			if _, ok := s[obj]; ok {
				next[obj] = struct{}{}
			}
		}
		result = next
	}
	return result, nil
}
