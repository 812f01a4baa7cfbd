// Package optimizer implements the rule-based plan rewriter: an ordered
// chain of rules, each run as one full bottom-up Transform pass over the
// plan tree, relying on its predecessors' normalization.
package optimizer

import (
	"github.com/chaisql/indexset/internal/index"
	"github.com/chaisql/indexset/internal/plan"
)

// Rule rewrites a single plan node, consulting indexes (keyed by attribute
// name, in registration order) when it needs to know what an index can
// serve.
type Rule func(node plan.Plan, indexes map[string][]index.Matcher) plan.Plan

// Chain runs a sequence of rules, each as a full Plan.Transform pass, in
// order.
type Chain struct {
	Rules []Rule
}

// Default returns the chain the facade uses unless overridden:
// MergeSetOps, UseIndex, CombineRanges, CombineFilters, in that order.
func Default() *Chain {
	return &Chain{Rules: []Rule{MergeSetOps, UseIndex, CombineRanges, CombineFilters}}
}

// Optimize runs every rule in the chain over p in sequence.
func (c *Chain) Optimize(p plan.Plan, indexes map[string][]index.Matcher) plan.Plan {
	for _, rule := range c.Rules {
		rule := rule
		p = p.Transform(func(node plan.Plan) plan.Plan {
			return rule(node, indexes)
		})
	}
	return p
}
