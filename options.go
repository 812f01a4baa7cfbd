package indexset

import (
	"github.com/chaisql/indexset/internal/index"
	"github.com/chaisql/indexset/internal/object"
	"github.com/chaisql/indexset/internal/optimizer"
	"github.com/chaisql/indexset/internal/planner"
	"github.com/chaisql/indexset/internal/sqlfilter"
)

// Option configures an IndexedSet at construction time.
type Option[T comparable] func(*IndexedSet[T])

// WithIndex registers idx under every attribute name it claims, in the
// order options are applied. Multiple indexes may claim the same
// attribute; the planner probes each in registration order (see UseIndex).
func WithIndex[T comparable](idx index.Index[T]) Option[T] {
	return func(s *IndexedSet[T]) {
		s.allIndexes = append(s.allIndexes, idx)
		for _, name := range idx.Attrs() {
			s.byAttr[name] = append(s.byAttr[name], idx)
		}
	}
}

// WithAttr registers a computed attribute getter, consulted before native
// struct-field/JSON attribute resolution.
func WithAttr[T comparable](name string, get object.Getter[T]) Option[T] {
	return func(s *IndexedSet[T]) {
		s.attrs[name] = get
	}
}

// WithParser overrides the default condition-string parser.
func WithParser[T comparable](p *sqlfilter.Parser) Option[T] {
	return func(s *IndexedSet[T]) { s.parser = p }
}

// WithPlanner overrides the default expression-to-plan lowering.
func WithPlanner[T comparable](pl *planner.Planner) Option[T] {
	return func(s *IndexedSet[T]) { s.planner = pl }
}

// WithOptimizer overrides the default rule chain.
func WithOptimizer[T comparable](o *optimizer.Chain) Option[T] {
	return func(s *IndexedSet[T]) { s.optimizer = o }
}
