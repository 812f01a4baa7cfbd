package plan_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/plan"
	"github.com/chaisql/indexset/internal/rangeval"
	"github.com/chaisql/indexset/internal/types"
)

type fakeIndex string

func (f fakeIndex) String() string { return string(f) }

func TestScanFilterString(t *testing.T) {
	p := plan.ScanFilter{Condition: expr.BinOp{Op: expr.KindEq, Left: expr.Attribute{Name: "a"}, Right: expr.Literal{Value: types.NewInt(2)}}}
	assert.Equal(t, "ScanFilter: a = 2", p.String())
}

func TestIndexLookupString(t *testing.T) {
	p := plan.IndexLookup{Index: fakeIndex("HashIndex(a)"), Value: types.NewInt(2)}
	assert.Equal(t, "IndexLookup: HashIndex(a) = 2", p.String())
}

func TestIndexRangeStringTwoSided(t *testing.T) {
	p := plan.IndexRange{
		Index: fakeIndex("SortedDictIndex(a)"),
		Range: rangeval.Range{
			Left:  rangeval.NewBound(types.NewInt(1), false),
			Right: rangeval.NewBound(types.NewInt(4), true),
		},
	}
	assert.Equal(t, "IndexRange: 1 < SortedDictIndex(a) <= 4", p.String())
}

func TestIndexRangeStringOneSided(t *testing.T) {
	p := plan.IndexRange{
		Index: fakeIndex("SortedDictIndex(a)"),
		Range: rangeval.Range{
			Left:  rangeval.UnsetBound(),
			Right: rangeval.NewBound(types.NewInt(4), true),
		},
	}
	assert.Equal(t, "IndexRange: SortedDictIndex(a) <= 4", p.String())
}

func TestIndexRangeStringUnset(t *testing.T) {
	p := plan.IndexRange{Index: fakeIndex("SortedDictIndex(a)"), Range: rangeval.Unset()}
	assert.Equal(t, "IndexRange: SortedDictIndex(a)", p.String())
}

func TestTransformIsPostOrder(t *testing.T) {
	var order []string
	leaf1 := plan.ScanFilter{Condition: expr.Attribute{Name: "a"}}
	leaf2 := plan.ScanFilter{Condition: expr.Attribute{Name: "b"}}
	tree := plan.Intersect{Inputs: []plan.Plan{leaf1, leaf2}}

	tree.Transform(func(p plan.Plan) plan.Plan {
		order = append(order, fmt.Sprintf("%T", p))
		return p
	})

	assert.Equal(t, []string{"plan.ScanFilter", "plan.ScanFilter", "plan.Intersect"}, order)
}

func TestTransformRewritesNode(t *testing.T) {
	tree := plan.ScanFilter{Condition: expr.Attribute{Name: "a"}}
	got := tree.Transform(func(p plan.Plan) plan.Plan {
		if _, ok := p.(plan.ScanFilter); ok {
			return plan.Empty{}
		}
		return p
	})
	assert.Equal(t, plan.Empty{}, got)
}

func TestIntersectPrettyPrintIsIndented(t *testing.T) {
	inner := plan.Intersect{Inputs: []plan.Plan{
		plan.ScanFilter{Condition: expr.Attribute{Name: "a"}},
		plan.ScanFilter{Condition: expr.Attribute{Name: "b"}},
	}}
	want := "Intersect\n  - ScanFilter: a\n  - ScanFilter: b"
	assert.Equal(t, want, inner.String())
}
