package exec

import (
	"github.com/cockroachdb/errors"

	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/types"
)

type binOpFunc func(a, b types.Value) (types.Value, error)

var binOps = map[expr.Kind]binOpFunc{
	expr.KindAdd:        types.Add,
	expr.KindSub:        types.Sub,
	expr.KindMul:        types.Mul,
	expr.KindDiv:        types.Div,
	expr.KindFloorDiv:   types.FloorDiv,
	expr.KindMod:        types.Mod,
	expr.KindPow:        types.Pow,
	expr.KindBitwiseAnd: types.BitwiseAnd,
	expr.KindBitwiseOr:  types.BitwiseOr,
	expr.KindXor:        types.Xor,
	expr.KindLshift:     types.Lshift,
	expr.KindRshift:     types.Rshift,
	expr.KindIs: func(a, b types.Value) (types.Value, error) {
		return types.NewBool(types.Is(a, b)), nil
	},
	expr.KindEq: func(a, b types.Value) (types.Value, error) {
		return types.NewBool(a.Equal(b)), nil
	},
	expr.KindNe: func(a, b types.Value) (types.Value, error) {
		return types.NewBool(!a.Equal(b)), nil
	},
	expr.KindLt: cmp(func(c int) bool { return c < 0 }),
	expr.KindLe: cmp(func(c int) bool { return c <= 0 }),
	expr.KindGt: cmp(func(c int) bool { return c > 0 }),
	expr.KindGe: cmp(func(c int) bool { return c >= 0 }),
}

func cmp(pred func(int) bool) binOpFunc {
	return func(a, b types.Value) (types.Value, error) {
		c, err := types.Compare(a, b)
		if err != nil {
			return types.Value{}, err
		}
		return types.NewBool(pred(c)), nil
	}
}

// Match interprets cond against obj and returns its value — typically a
// boolean, but arithmetic/bitwise BinOps return the computed scalar.
func (e *Executor[T]) Match(cond expr.Condition, obj T, ctx Context[T]) (types.Value, error) {
	switch c := cond.(type) {
	case expr.Builder:
		return e.Match(c.Condition, obj, ctx)

	case expr.Literal:
		return c.Value, nil

	case expr.Attribute:
		return ctx.GetAttr(obj, c.Name)

	case expr.Array:
		items := make([]types.Value, len(c.Items))
		for i, item := range c.Items {
			v, err := e.Match(item, obj, ctx)
			if err != nil {
				return types.Value{}, err
			}
			items[i] = v
		}
		return types.NewArray(items), nil

	case expr.BinOp:
		return e.matchBinOp(c, obj, ctx)

	case expr.UnaryOp:
		return e.matchUnaryOp(c, obj, ctx)

	default:
		return types.Value{}, errors.Wrapf(ErrUnsupportedCondition, "%T", cond)
	}
}

// matchBinOp handles And/Or (short-circuiting, coerced to boolean per the
// typed-target Design Note rather than Python's value-passthrough
// truthiness) and In (runtime membership test) specially, and dispatches
// everything else through the binOps operator table.
func (e *Executor[T]) matchBinOp(c expr.BinOp, obj T, ctx Context[T]) (types.Value, error) {
	switch c.Op {
	case expr.KindAnd:
		l, err := e.Match(c.Left, obj, ctx)
		if err != nil {
			return types.Value{}, err
		}
		if !l.IsTruthy() {
			return types.NewBool(false), nil
		}
		r, err := e.Match(c.Right, obj, ctx)
		if err != nil {
			return types.Value{}, err
		}
		return types.NewBool(r.IsTruthy()), nil

	case expr.KindOr:
		l, err := e.Match(c.Left, obj, ctx)
		if err != nil {
			return types.Value{}, err
		}
		if l.IsTruthy() {
			return types.NewBool(true), nil
		}
		r, err := e.Match(c.Right, obj, ctx)
		if err != nil {
			return types.Value{}, err
		}
		return types.NewBool(r.IsTruthy()), nil

	case expr.KindIn:
		l, err := e.Match(c.Left, obj, ctx)
		if err != nil {
			return types.Value{}, err
		}
		r, err := e.Match(c.Right, obj, ctx)
		if err != nil {
			return types.Value{}, err
		}
		ok, err := types.IsMember(l, r)
		if err != nil {
			return types.Value{}, err
		}
		return types.NewBool(ok), nil

	default:
		l, err := e.Match(c.Left, obj, ctx)
		if err != nil {
			return types.Value{}, err
		}
		r, err := e.Match(c.Right, obj, ctx)
		if err != nil {
			return types.Value{}, err
		}
		op, ok := binOps[c.Op]
		if !ok {
			return types.Value{}, errors.Wrapf(ErrUnsupportedCondition, "binop %v", c.Op)
		}
		return op(l, r)
	}
}

func (e *Executor[T]) matchUnaryOp(c expr.UnaryOp, obj T, ctx Context[T]) (types.Value, error) {
	v, err := e.Match(c.Operand, obj, ctx)
	if err != nil {
		return types.Value{}, err
	}
	switch c.Op {
	case expr.KindNot:
		return types.NewBool(!v.IsTruthy()), nil
	case expr.KindInvert:
		return types.Invert(v)
	default:
		return types.Value{}, errors.Wrapf(ErrUnsupportedCondition, "unaryop %v", c.Op)
	}
}
