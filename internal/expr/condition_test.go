package expr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/types"
)

func TestCanonicalStringForms(t *testing.T) {
	tests := []struct {
		name string
		cond expr.Condition
		want string
	}{
		{"literal", expr.Literal{Value: types.NewInt(1)}, "1"},
		{"attribute", expr.Attribute{Name: "a"}, "a"},
		{
			"array",
			expr.Array{Items: []expr.Condition{
				expr.Literal{Value: types.NewInt(1)},
				expr.Literal{Value: types.NewInt(2)},
			}},
			"(1, 2)",
		},
		{
			"eq",
			expr.BinOp{Op: expr.KindEq, Left: expr.Attribute{Name: "a"}, Right: expr.Literal{Value: types.NewInt(2)}},
			"a = 2",
		},
		{
			"and",
			expr.BinOp{
				Op:    expr.KindAnd,
				Left:  expr.BinOp{Op: expr.KindEq, Left: expr.Attribute{Name: "a"}, Right: expr.Literal{Value: types.NewInt(2)}},
				Right: expr.BinOp{Op: expr.KindGt, Left: expr.Attribute{Name: "a"}, Right: expr.Literal{Value: types.NewInt(0)}},
			},
			"a = 2 AND a > 0",
		},
		{
			"not",
			expr.UnaryOp{Op: expr.KindNot, Operand: expr.BinOp{Op: expr.KindEq, Left: expr.Attribute{Name: "x"}, Right: expr.Literal{Value: types.NewInt(3)}}},
			"NOT x = 3",
		},
		{
			"floordiv",
			expr.BinOp{Op: expr.KindFloorDiv, Left: expr.Literal{Value: types.NewInt(7)}, Right: expr.Literal{Value: types.NewInt(2)}},
			"7 // 2",
		},
		{
			"is",
			expr.BinOp{Op: expr.KindIs, Left: expr.Attribute{Name: "a"}, Right: expr.Literal{Value: types.Null()}},
			"a is None",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cond.String())
		})
	}
}

func TestBuilderFluentChain(t *testing.T) {
	cond := expr.Attr("x").Eq(3).And(expr.Attr("y").In(1, 2))
	assert.Equal(t, "x = 3 AND y IN (1, 2)", cond.String())
}

func TestBuilderNot(t *testing.T) {
	cond := expr.Attr("x").Eq(3).Not()
	assert.Equal(t, "NOT x = 3", cond.String())
}

func TestAndOrFoldLeftAssociative(t *testing.T) {
	cond := expr.And(
		expr.Attr("a").Eq(1),
		expr.Attr("b").Eq(2),
		expr.Attr("c").Eq(3),
	)
	assert.Equal(t, "a = 1 AND b = 2 AND c = 3", cond.String())
}

func TestOrFold(t *testing.T) {
	cond := expr.Or(expr.Attr("a").Eq(1), expr.Attr("a").Eq(2))
	assert.Equal(t, "a = 1 OR a = 2", cond.String())
}

func TestAsConditionCoercesScalar(t *testing.T) {
	cond := expr.AsCondition(5)
	lit, ok := cond.(expr.Literal)
	if !ok {
		t.Fatalf("expected Literal, got %T", cond)
	}
	assert.Equal(t, types.NewInt(5), lit.Value)
}

func TestAndPanicsOnEmpty(t *testing.T) {
	assert.Panics(t, func() { expr.And() })
}
