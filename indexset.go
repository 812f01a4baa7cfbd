// Package indexset is an in-memory indexed collection: it accepts a
// filter expression (a SQL-like string or a programmatic condition tree)
// and returns the subset of stored objects satisfying it, via a
// parse -> plan -> optimize -> execute pipeline evaluated against
// pluggable indexes.
//
// Example:
//
//	type X struct{ A int }
//	s, _ := indexset.New([]X{{A: 1}, {A: 2}, {A: 3}},
//		indexset.WithIndex[X](index.NewHashIndex[X]("A")))
//	matches, _ := s.Filter("A = 2")
package indexset

import (
	"github.com/cockroachdb/errors"

	"github.com/chaisql/indexset/internal/exec"
	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/index"
	"github.com/chaisql/indexset/internal/object"
	"github.com/chaisql/indexset/internal/optimizer"
	"github.com/chaisql/indexset/internal/planner"
	"github.com/chaisql/indexset/internal/plan"
	"github.com/chaisql/indexset/internal/sqlfilter"
	"github.com/chaisql/indexset/internal/types"
)

// IndexedSet is an unordered, indexed collection of distinct, hashable
// objects, intended for efficient filtering of large sets by member
// attributes.
type IndexedSet[T comparable] struct {
	objs       map[T]struct{}
	allIndexes []index.Index[T]
	byAttr     map[string][]index.Index[T]
	attrs      map[string]object.Getter[T]

	parser    *sqlfilter.Parser
	planner   *planner.Planner
	optimizer *optimizer.Chain
	executor  *exec.Executor[T]
}

// New builds an IndexedSet seeded with objs, applying opts (typically one
// or more WithIndex/WithAttr) before the initial population runs so every
// registered index is built over the full starting collection.
func New[T comparable](objs []T, opts ...Option[T]) (*IndexedSet[T], error) {
	s := &IndexedSet[T]{
		objs:      make(map[T]struct{}),
		byAttr:    make(map[string][]index.Index[T]),
		attrs:     make(map[string]object.Getter[T]),
		parser:    sqlfilter.New(),
		planner:   planner.New(),
		optimizer: optimizer.Default(),
		executor:  exec.New[T](),
	}
	for _, opt := range opts {
		opt(s)
	}

	initial := make(map[T]struct{}, len(objs))
	for _, o := range objs {
		initial[o] = struct{}{}
	}
	if err := s.Update(initial); err != nil {
		return nil, err
	}
	return s, nil
}

// Filter applies condition to this set, returning its matching members.
// condition may be a string (parsed via the sqlfilter grammar), an
// expr.Condition, or an expr.Builder.
func (s *IndexedSet[T]) Filter(condition any) (map[T]struct{}, error) {
	p, err := s.Plan(condition)
	if err != nil {
		return nil, err
	}
	return s.Execute(s.Optimize(p))
}

// Plan lowers condition into an unoptimized physical plan.
func (s *IndexedSet[T]) Plan(condition any) (plan.Plan, error) {
	cond, err := s.toCondition(condition)
	if err != nil {
		return nil, err
	}
	return s.planner.Plan(cond), nil
}

func (s *IndexedSet[T]) toCondition(condition any) (expr.Condition, error) {
	switch c := condition.(type) {
	case expr.Builder:
		return c.Condition, nil
	case expr.Condition:
		return c, nil
	case string:
		return s.parser.Parse(c)
	default:
		return nil, errors.Wrapf(ErrUnsupportedFilterInput, "%T", condition)
	}
}

// Optimize runs the rule chain over p.
func (s *IndexedSet[T]) Optimize(p plan.Plan) plan.Plan {
	return s.optimizer.Optimize(p, s.matchers())
}

func (s *IndexedSet[T]) matchers() map[string][]index.Matcher {
	out := make(map[string][]index.Matcher, len(s.byAttr))
	for name, idxs := range s.byAttr {
		ms := make([]index.Matcher, len(idxs))
		for i, idx := range idxs {
			ms[i] = idx
		}
		out[name] = ms
	}
	return out
}

// Execute evaluates p against this set's current members.
func (s *IndexedSet[T]) Execute(p plan.Plan) (map[T]struct{}, error) {
	return s.executor.Execute(p, s)
}

// GetAttr implements exec.Context and index.Context.
func (s *IndexedSet[T]) GetAttr(obj T, name string) (types.Value, error) {
	return object.GetAttr(obj, name, s.attrs)
}

// Objects implements exec.Context.
func (s *IndexedSet[T]) Objects() map[T]struct{} { return s.objs }

// Add inserts obj, updating every registered index.
func (s *IndexedSet[T]) Add(obj T) error {
	return s.Update(map[T]struct{}{obj: {}})
}

// Discard removes obj if present, updating every registered index.
func (s *IndexedSet[T]) Discard(obj T) error {
	return s.DifferenceUpdate(map[T]struct{}{obj: {}})
}

// Update inserts every object in objs. If an attribute getter errors
// partway through, the indexes touched so far are left updated and the
// error is surfaced — mutation is best-effort, not transactional.
func (s *IndexedSet[T]) Update(objs map[T]struct{}) error {
	for obj := range objs {
		s.objs[obj] = struct{}{}
	}
	for _, idx := range s.allIndexes {
		if err := idx.Add(objs, s); err != nil {
			return err
		}
	}
	return nil
}

// DifferenceUpdate removes every object in objs.
func (s *IndexedSet[T]) DifferenceUpdate(objs map[T]struct{}) error {
	for _, idx := range s.allIndexes {
		if err := idx.Remove(objs, s); err != nil {
			return err
		}
	}
	for obj := range objs {
		delete(s.objs, obj)
	}
	return nil
}

// Contains reports whether obj is a member of this set.
func (s *IndexedSet[T]) Contains(obj T) bool {
	_, ok := s.objs[obj]
	return ok
}

// Len returns the number of members.
func (s *IndexedSet[T]) Len() int { return len(s.objs) }

// All returns every member, in no particular order.
func (s *IndexedSet[T]) All() []T {
	out := make([]T, 0, len(s.objs))
	for obj := range s.objs {
		out = append(out, obj)
	}
	return out
}
