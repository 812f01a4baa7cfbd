package optimizer

import (
	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/index"
	"github.com/chaisql/indexset/internal/plan"
	"github.com/chaisql/indexset/internal/rangeval"
)

// MergeSetOps inlines any child of a SetOp that is the same concrete kind
// (Intersect under Intersect, Union under Union) into the parent's inputs.
// Associativity of set intersection/union makes this a no-op on semantics.
func MergeSetOps(node plan.Plan, _ map[string][]index.Matcher) plan.Plan {
	switch p := node.(type) {
	case plan.Intersect:
		var out []plan.Plan
		for _, in := range p.Inputs {
			if nested, ok := in.(plan.Intersect); ok {
				out = append(out, nested.Inputs...)
			} else {
				out = append(out, in)
			}
		}
		p.Inputs = out
		return p
	case plan.Union:
		var out []plan.Plan
		for _, in := range p.Inputs {
			if nested, ok := in.(plan.Union); ok {
				out = append(out, nested.Inputs...)
			} else {
				out = append(out, in)
			}
		}
		p.Inputs = out
		return p
	default:
		return node
	}
}

// UseIndex replaces a ScanFilter whose condition names exactly one
// attribute with the first registered index's answer for that attribute,
// in registration order. Leaves the scan intact if no index matches or the
// condition doesn't isolate a single attribute.
func UseIndex(node plan.Plan, indexes map[string][]index.Matcher) plan.Plan {
	sf, ok := node.(plan.ScanFilter)
	if !ok {
		return node
	}
	bin, ok := sf.Condition.(expr.BinOp)
	if !ok {
		return node
	}
	name, operand, attrOnLeft, ok := splitAttrSide(bin)
	if !ok {
		return node
	}
	for _, idx := range indexes[name] {
		if p, ok := idx.Match(bin, operand, attrOnLeft); ok {
			return p
		}
	}
	return node
}

// splitAttrSide extracts (attribute name, other side, attribute-on-left)
// when exactly one side of bin is an Attribute. Both-attribute and
// neither-attribute conditions (e.g. `a = b`, `1 = 2`) are left for
// ScanFilter — there is no join semantics here.
func splitAttrSide(bin expr.BinOp) (name string, operand expr.Condition, attrOnLeft bool, ok bool) {
	leftAttr, leftIsAttr := bin.Left.(expr.Attribute)
	rightAttr, rightIsAttr := bin.Right.(expr.Attribute)
	if leftIsAttr == rightIsAttr {
		return "", nil, false, false
	}
	if leftIsAttr {
		return leftAttr.Name, bin.Right, true, true
	}
	return rightAttr.Name, bin.Left, false, true
}

// CombineRanges folds IndexLookup/IndexRange siblings within an Intersect
// that target the same index into a single IndexRange, using Range.Combine.
// A contradiction (e.g. `a > 3 AND a < 2`) folds the entire Intersect to
// Empty.
func CombineRanges(node plan.Plan, _ map[string][]index.Matcher) plan.Plan {
	inter, ok := node.(plan.Intersect)
	if !ok {
		return node
	}

	type rangeGroup struct {
		idx    plan.Index
		first  plan.Plan
		ranges []rangeval.Range
	}

	groups := map[plan.Index]*rangeGroup{}
	var order []plan.Index
	var others []plan.Plan

	for _, in := range inter.Inputs {
		var idx plan.Index
		var r rangeval.Range
		switch p := in.(type) {
		case plan.IndexLookup:
			idx = p.Index
			r = rangeval.Range{
				Left:  rangeval.NewBound(p.Value, true),
				Right: rangeval.NewBound(p.Value, true),
			}
		case plan.IndexRange:
			idx = p.Index
			r = p.Range
		default:
			others = append(others, in)
			continue
		}
		g, ok := groups[idx]
		if !ok {
			g = &rangeGroup{idx: idx, first: in}
			groups[idx] = g
			order = append(order, idx)
		}
		g.ranges = append(g.ranges, r)
	}

	var result []plan.Plan
	for _, idx := range order {
		g := groups[idx]
		if len(g.ranges) == 1 {
			result = append(result, g.first)
			continue
		}
		folded := g.ranges[0]
		ok := true
		for _, r := range g.ranges[1:] {
			folded, ok = folded.Combine(r)
			if !ok {
				break
			}
		}
		if !ok {
			return plan.Empty{}
		}
		result = append(result, plan.IndexRange{Index: idx, Range: folded})
	}
	result = append(result, others...)

	if len(result) == 1 {
		return result[0]
	}
	return plan.Intersect{Inputs: result}
}

// CombineFilters merges every ScanFilter sibling within an Intersect into
// one predicate, avoiding redundant O(|collection|) passes. The merged
// predicate becomes a ScanFilter if it is the only remaining input, or a
// Filter layered over the rest of the intersection otherwise.
func CombineFilters(node plan.Plan, _ map[string][]index.Matcher) plan.Plan {
	inter, ok := node.(plan.Intersect)
	if !ok {
		return node
	}

	var filters []plan.ScanFilter
	var others []plan.Plan
	for _, in := range inter.Inputs {
		if sf, ok := in.(plan.ScanFilter); ok {
			filters = append(filters, sf)
		} else {
			others = append(others, in)
		}
	}
	if len(filters) == 0 {
		return node
	}

	conds := make([]any, len(filters))
	for i, f := range filters {
		conds[i] = f.Condition
	}
	combined := expr.And(conds...)

	if len(others) == 0 {
		return plan.ScanFilter{Condition: combined}
	}
	var base plan.Plan
	if len(others) == 1 {
		base = others[0]
	} else {
		base = plan.Intersect{Inputs: others}
	}
	return plan.Filter{Condition: combined, Input: base}
}
