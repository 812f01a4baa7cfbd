// Package plan implements the physical operator tree: the target of the
// planner's lowering and the optimizer's rewrite rules, and the input to
// the executor.
package plan

import (
	"fmt"
	"strings"

	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/rangeval"
	"github.com/chaisql/indexset/internal/types"
)

// Index is the minimal surface the plan package needs from an index: a
// stable name for pretty-printing and identity for grouping by the
// optimizer's CombineRanges rule. The concrete Hash/Sorted/Inverted index
// types (internal/index) satisfy this trivially; plan never imports index,
// avoiding an import cycle (index constructs plan nodes to answer Match).
type Index interface {
	String() string
}

// Transformer rewrites a single plan node; Plan.Transform applies it
// post-order.
type Transformer func(Plan) Plan

// Plan is a node of the physical operator tree.
type Plan interface {
	String() string
	// Transform recursively transforms this node's children, then applies
	// fn to the (possibly child-updated) node itself, returning the
	// replacement.
	Transform(fn Transformer) Plan
	render(depth int) string
}

// Empty produces the empty set unconditionally.
type Empty struct{}

func (e Empty) String() string                { return e.render(0) }
func (e Empty) render(depth int) string       { return "Empty" }
func (e Empty) Transform(fn Transformer) Plan { return fn(e) }

// ScanFilter produces every object in the collection matching condition.
type ScanFilter struct {
	Condition expr.Condition
}

func (s ScanFilter) String() string { return s.render(0) }
func (s ScanFilter) render(depth int) string {
	return fmt.Sprintf("ScanFilter: %s", s.Condition)
}
func (s ScanFilter) Transform(fn Transformer) Plan { return fn(s) }

// Filter applies condition to the result of input.
type Filter struct {
	Condition expr.Condition
	Input     Plan
}

func (f Filter) String() string { return f.render(0) }
func (f Filter) render(depth int) string {
	indent := strings.Repeat("  ", depth)
	return fmt.Sprintf("Filter: %s\n%s  - %s", f.Condition, indent, f.Input.render(depth+1))
}
func (f Filter) Transform(fn Transformer) Plan {
	f.Input = f.Input.Transform(fn)
	return fn(f)
}

// Intersect returns the intersection of all Inputs. Len(Inputs) must be >= 2
// by the time it reaches the executor; the optimizer is responsible for
// folding shorter lists away.
type Intersect struct {
	Inputs []Plan
}

func (s Intersect) String() string          { return s.render(0) }
func (s Intersect) render(depth int) string  { return setOpString("Intersect", s.Inputs, depth) }
func (s Intersect) Transform(fn Transformer) Plan {
	s.Inputs = transformAll(s.Inputs, fn)
	return fn(s)
}

// Union returns the union of all Inputs.
type Union struct {
	Inputs []Plan
}

func (s Union) String() string         { return s.render(0) }
func (s Union) render(depth int) string { return setOpString("Union", s.Inputs, depth) }
func (s Union) Transform(fn Transformer) Plan {
	s.Inputs = transformAll(s.Inputs, fn)
	return fn(s)
}

func transformAll(inputs []Plan, fn Transformer) []Plan {
	out := make([]Plan, len(inputs))
	for i, in := range inputs {
		out[i] = in.Transform(fn)
	}
	return out
}

func setOpString(name string, inputs []Plan, depth int) string {
	indent := strings.Repeat("  ", depth)
	lines := make([]string, len(inputs))
	for i, in := range inputs {
		lines[i] = fmt.Sprintf("%s  - %s", indent, in.render(depth+1))
	}
	return name + "\n" + strings.Join(lines, "\n")
}

// IndexLookup returns the members of Index keyed by Value.
type IndexLookup struct {
	Index Index
	Value types.Value
}

func (l IndexLookup) String() string          { return l.render(0) }
func (l IndexLookup) render(depth int) string { return fmt.Sprintf("IndexLookup: %s = %s", l.Index, l.Value) }
func (l IndexLookup) Transform(fn Transformer) Plan { return fn(l) }

// IndexRange returns the members of Index whose key falls in Range.
type IndexRange struct {
	Index Index
	Range rangeval.Range
}

func (r IndexRange) String() string { return r.render(0) }
func (r IndexRange) render(depth int) string {
	leftSym, rightSym := "<", "<"
	if r.Range.Left.Inclusive {
		leftSym = "<="
	}
	if r.Range.Right.Inclusive {
		rightSym = "<="
	}
	switch {
	case r.Range.Left.Unset && r.Range.Right.Unset:
		return fmt.Sprintf("IndexRange: %s", r.Index)
	case r.Range.Left.Unset:
		return fmt.Sprintf("IndexRange: %s %s %s", r.Index, rightSym, r.Range.Right.Value)
	case r.Range.Right.Unset:
		return fmt.Sprintf("IndexRange: %s %s %s", r.Range.Left.Value, leftSym, r.Index)
	default:
		return fmt.Sprintf("IndexRange: %s %s %s %s %s", r.Range.Left.Value, leftSym, r.Index, rightSym, r.Range.Right.Value)
	}
}
func (r IndexRange) Transform(fn Transformer) Plan { return fn(r) }
