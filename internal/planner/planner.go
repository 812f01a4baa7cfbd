// Package planner lowers a condition expression into a physical plan tree:
// And/Or become Intersect/Union, anything else becomes a ScanFilter.
package planner

import (
	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/plan"
)

// Planner converts condition trees into plan trees.
type Planner struct{}

// New returns the default Planner.
func New() *Planner { return &Planner{} }

// Plan lowers condition into a physical plan.
func (p *Planner) Plan(condition expr.Condition) plan.Plan {
	if b, ok := condition.(expr.Builder); ok {
		condition = b.Condition
	}
	if bin, ok := condition.(expr.BinOp); ok {
		switch bin.Op {
		case expr.KindAnd:
			return plan.Intersect{Inputs: []plan.Plan{p.Plan(bin.Left), p.Plan(bin.Right)}}
		case expr.KindOr:
			return plan.Union{Inputs: []plan.Plan{p.Plan(bin.Left), p.Plan(bin.Right)}}
		}
	}
	return plan.ScanFilter{Condition: condition}
}
