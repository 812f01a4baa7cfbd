package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/plan"
	"github.com/chaisql/indexset/internal/planner"
)

func TestAndBecomesIntersect(t *testing.T) {
	p := planner.New()
	cond := expr.Attr("a").Eq(1).And(expr.Attr("b").Eq(2))
	got := p.Plan(cond)

	inter, ok := got.(plan.Intersect)
	require.True(t, ok)
	assert.Len(t, inter.Inputs, 2)
	assert.IsType(t, plan.ScanFilter{}, inter.Inputs[0])
	assert.IsType(t, plan.ScanFilter{}, inter.Inputs[1])
}

func TestOrBecomesUnion(t *testing.T) {
	p := planner.New()
	cond := expr.Attr("a").Eq(1).Or(expr.Attr("a").Eq(2))
	got := p.Plan(cond)

	union, ok := got.(plan.Union)
	require.True(t, ok)
	assert.Len(t, union.Inputs, 2)
}

func TestOtherConditionsBecomeScanFilter(t *testing.T) {
	p := planner.New()
	cond := expr.Attr("a").Gt(0)
	got := p.Plan(cond)

	sf, ok := got.(plan.ScanFilter)
	require.True(t, ok)
	assert.Equal(t, cond.String(), sf.Condition.String())
}
