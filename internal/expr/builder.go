package expr

import "github.com/chaisql/indexset/internal/types"

// AsCondition coerces any value into a Condition: a Condition or Builder is
// passed through, anything else is wrapped in a Literal via Wrap. This is
// the implicit-conversion rule every builder entry point applies.
func AsCondition(v any) Condition {
	switch x := v.(type) {
	case Builder:
		return x.Condition
	case Condition:
		return x
	default:
		return Literal{Value: Wrap(v)}
	}
}

// Wrap converts a bare Go scalar/slice into a types.Value. It panics on a
// type with no Literal representation, since that indicates a programming
// error at a builder call site rather than recoverable bad input.
func Wrap(v any) types.Value {
	switch x := v.(type) {
	case types.Value:
		return x
	case nil:
		return types.Null()
	case bool:
		return types.NewBool(x)
	case int:
		return types.NewInt(int64(x))
	case int64:
		return types.NewInt(x)
	case float64:
		return types.NewFloat(x)
	case string:
		return types.NewString(x)
	case []any:
		items := make([]types.Value, len(x))
		for i, item := range x {
			items[i] = Wrap(item)
		}
		return types.NewArray(items)
	default:
		panic("expr: cannot wrap value as a Literal")
	}
}

// Builder adds a fluent combinator surface over a Condition. Go has no
// mixin inheritance, so every builder method returns a new Builder rather
// than extending the Condition interface itself.
type Builder struct {
	Condition
}

// Attr starts a fluent chain from a named attribute.
func Attr(name string) Builder { return Builder{Attribute{Name: name}} }

// Lit starts a fluent chain from a literal scalar.
func Lit(v any) Builder { return Builder{Literal{Value: Wrap(v)}} }

func (b Builder) binop(op Kind, other any) Builder {
	return Builder{BinOp{Op: op, Left: b.Condition, Right: AsCondition(other)}}
}

func (b Builder) And(other any) Builder        { return b.binop(KindAnd, other) }
func (b Builder) Or(other any) Builder         { return b.binop(KindOr, other) }
func (b Builder) Add(other any) Builder        { return b.binop(KindAdd, other) }
func (b Builder) Sub(other any) Builder        { return b.binop(KindSub, other) }
func (b Builder) Mul(other any) Builder        { return b.binop(KindMul, other) }
func (b Builder) Div(other any) Builder        { return b.binop(KindDiv, other) }
func (b Builder) FloorDiv(other any) Builder   { return b.binop(KindFloorDiv, other) }
func (b Builder) Mod(other any) Builder        { return b.binop(KindMod, other) }
func (b Builder) Pow(other any) Builder        { return b.binop(KindPow, other) }
func (b Builder) BitwiseAnd(other any) Builder { return b.binop(KindBitwiseAnd, other) }
func (b Builder) BitwiseOr(other any) Builder  { return b.binop(KindBitwiseOr, other) }
func (b Builder) Xor(other any) Builder        { return b.binop(KindXor, other) }
func (b Builder) Lshift(other any) Builder     { return b.binop(KindLshift, other) }
func (b Builder) Rshift(other any) Builder     { return b.binop(KindRshift, other) }
func (b Builder) Is(other any) Builder         { return b.binop(KindIs, other) }
func (b Builder) Lt(other any) Builder         { return b.binop(KindLt, other) }
func (b Builder) Le(other any) Builder         { return b.binop(KindLe, other) }
func (b Builder) Gt(other any) Builder         { return b.binop(KindGt, other) }
func (b Builder) Ge(other any) Builder         { return b.binop(KindGe, other) }
func (b Builder) Eq(other any) Builder         { return b.binop(KindEq, other) }
func (b Builder) Ne(other any) Builder         { return b.binop(KindNe, other) }

// In builds `b IN (items...)`, wrapping items as an Array of Conditions.
func (b Builder) In(items ...any) Builder {
	elems := make([]Condition, len(items))
	for i, item := range items {
		elems[i] = AsCondition(item)
	}
	return Builder{BinOp{Op: KindIn, Left: b.Condition, Right: Array{Items: elems}}}
}

// Not builds `NOT b`.
func (b Builder) Not() Builder { return Builder{UnaryOp{Op: KindNot, Operand: b.Condition}} }

// Invert builds `~b`.
func (b Builder) Invert() Builder { return Builder{UnaryOp{Op: KindInvert, Operand: b.Condition}} }

// And folds an n-ary sequence of conditions into a left-associative AND
// tree. Panics if conditions is empty.
func And(conditions ...any) Condition {
	return foldBinary(KindAnd, conditions)
}

// Or folds an n-ary sequence of conditions into a left-associative OR tree.
func Or(conditions ...any) Condition {
	return foldBinary(KindOr, conditions)
}

func foldBinary(op Kind, conditions []any) Condition {
	if len(conditions) == 0 {
		panic("expr: cannot fold zero conditions")
	}
	acc := AsCondition(conditions[0])
	for _, c := range conditions[1:] {
		acc = BinOp{Op: op, Left: acc, Right: AsCondition(c)}
	}
	return acc
}

// Not wraps cond in a NOT node.
func Not(cond any) Condition { return UnaryOp{Op: KindNot, Operand: AsCondition(cond)} }

// Invert wraps cond in a bitwise-complement node.
func Invert(cond any) Condition { return UnaryOp{Op: KindInvert, Operand: AsCondition(cond)} }
