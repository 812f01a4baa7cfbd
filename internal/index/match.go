package index

import (
	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/plan"
)

// matchEqOrIn implements the Eq/In matching rule shared by HashIndex and
// SortedDictIndex (the latter is a HashIndex with extra comparison
// support): `attr = literal` becomes an IndexLookup, and `attr IN (l1, l2,
// ...)` — with the attribute on the left and a literal-only Array on the
// right — becomes a Union of IndexLookups.
func matchEqOrIn(self plan.Index, cond expr.BinOp, operand expr.Condition, attrOnLeft bool) (plan.Plan, bool) {
	switch cond.Op {
	case expr.KindEq:
		if lit, ok := operand.(expr.Literal); ok {
			return plan.IndexLookup{Index: self, Value: lit.Value}, true
		}
	case expr.KindIn:
		if !attrOnLeft {
			return nil, false
		}
		arr, ok := operand.(expr.Array)
		if !ok {
			return nil, false
		}
		inputs := make([]plan.Plan, len(arr.Items))
		for i, item := range arr.Items {
			lit, ok := item.(expr.Literal)
			if !ok {
				return nil, false
			}
			inputs[i] = plan.IndexLookup{Index: self, Value: lit.Value}
		}
		return plan.Union{Inputs: inputs}, true
	}
	return nil, false
}
