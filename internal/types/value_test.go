package types_test

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaisql/indexset/internal/types"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    types.Value
		want string
	}{
		{"null", types.Null(), "None"},
		{"true", types.NewBool(true), "True"},
		{"false", types.NewBool(false), "False"},
		{"int", types.NewInt(42), "42"},
		{"float", types.NewFloat(1.5), "1.5"},
		{"string", types.NewString("hi"), "hi"},
		{
			"array",
			types.NewArray([]types.Value{types.NewInt(1), types.NewInt(2), types.NewInt(3)}),
			"(1, 2, 3)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValueIsTruthy(t *testing.T) {
	assert.False(t, types.Null().IsTruthy())
	assert.False(t, types.NewBool(false).IsTruthy())
	assert.True(t, types.NewBool(true).IsTruthy())
	assert.False(t, types.NewInt(0).IsTruthy())
	assert.True(t, types.NewInt(1).IsTruthy())
	assert.False(t, types.NewString("").IsTruthy())
	assert.True(t, types.NewString("x").IsTruthy())
	assert.False(t, types.NewArray(nil).IsTruthy())
}

func TestValueEqualCoercesNumericKinds(t *testing.T) {
	assert.True(t, types.NewInt(2).Equal(types.NewFloat(2.0)))
	assert.False(t, types.NewInt(2).Equal(types.NewFloat(2.5)))
	assert.True(t, types.NewString("a").Equal(types.NewString("a")))
	assert.False(t, types.NewString("a").Equal(types.NewInt(0)))
}

func TestCompareNumericCrossKind(t *testing.T) {
	c, err := types.Compare(types.NewInt(1), types.NewFloat(2.0))
	require.NoError(t, err)
	assert.Equal(t, -1, c)
}

func TestCompareTimestampCoercesString(t *testing.T) {
	ts := types.NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	c, err := types.Compare(ts, types.NewString("2024-01-01 00:00:00"))
	require.NoError(t, err)
	assert.Equal(t, 0, c)
}

func TestCompareIncomparableKinds(t *testing.T) {
	_, err := types.Compare(types.NewString("x"), types.NewBool(true))
	assert.ErrorIs(t, err, types.ErrNotComparable)
}

func TestArithmeticOps(t *testing.T) {
	sum, err := types.Add(types.NewInt(2), types.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, types.NewInt(5), sum)

	concat, err := types.Add(types.NewString("a"), types.NewString("b"))
	require.NoError(t, err)
	assert.Equal(t, types.NewString("ab"), concat)

	quot, err := types.Div(types.NewInt(7), types.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, types.NewFloat(3.5), quot)

	floor, err := types.FloorDiv(types.NewInt(7), types.NewInt(2))
	require.NoError(t, err)
	assert.Equal(t, types.NewInt(3), floor)

	_, err = types.Div(types.NewInt(1), types.NewInt(0))
	assert.Error(t, err)
}

func TestBitwiseOpsRequireInts(t *testing.T) {
	v, err := types.BitwiseAnd(types.NewInt(6), types.NewInt(3))
	require.NoError(t, err)
	assert.Equal(t, types.NewInt(2), v)

	_, err = types.BitwiseAnd(types.NewFloat(1), types.NewInt(1))
	assert.ErrorIs(t, err, types.ErrUnsupportedOperand)
}

func TestIsMember(t *testing.T) {
	arr := types.NewArray([]types.Value{types.NewInt(1), types.NewInt(3)})
	ok, err := types.IsMember(types.NewInt(1), arr)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = types.IsMember(types.NewInt(2), arr)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = types.IsMember(types.NewInt(1), types.NewInt(1))
	assert.ErrorIs(t, err, types.ErrUnsupportedOperand)
}

// Value defines an Equal method, so cmp.Diff dispatches to it instead of
// reaching into the struct's unexported fields — the same pattern chai's
// own testutil helpers use to diff document.Value/row values in golden
// tests.
func TestArrayEqualityViaGoCmp(t *testing.T) {
	a := types.NewArray([]types.Value{types.NewInt(1), types.NewInt(2)})
	b := types.NewArray([]types.Value{types.NewInt(1), types.NewInt(2)})
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("unexpected diff (-want +got):\n%s", diff)
	}
}

func TestAsMapKeyPanicsOnArray(t *testing.T) {
	assert.Panics(t, func() {
		types.NewArray([]types.Value{types.NewInt(1)}).AsMapKey()
	})
}
