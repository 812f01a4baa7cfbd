package types

import (
	"math"

	"github.com/cockroachdb/errors"
)

// ErrUnsupportedOperand is returned by the arithmetic/bitwise helpers when
// a Value's kind cannot participate in the requested operation.
var ErrUnsupportedOperand = errors.New("types: unsupported operand kind")

func bothNumeric(a, b Value) (float64, float64, bool) {
	af, aok := numericValue(a)
	bf, bok := numericValue(b)
	return af, bf, aok && bok
}

// numericResult returns an Int if both inputs were Int, else a Float.
func numericResult(a, b Value, f float64) Value {
	if a.kind == KindInt && b.kind == KindInt {
		return NewInt(int64(f))
	}
	return NewFloat(f)
}

func Add(a, b Value) (Value, error) {
	if a.kind == KindString && b.kind == KindString {
		return NewString(a.s + b.s), nil
	}
	af, bf, ok := bothNumeric(a, b)
	if !ok {
		return Value{}, errors.Wrapf(ErrUnsupportedOperand, "%s + %s", a.kind, b.kind)
	}
	return numericResult(a, b, af+bf), nil
}

func Sub(a, b Value) (Value, error) {
	af, bf, ok := bothNumeric(a, b)
	if !ok {
		return Value{}, errors.Wrapf(ErrUnsupportedOperand, "%s - %s", a.kind, b.kind)
	}
	return numericResult(a, b, af-bf), nil
}

func Mul(a, b Value) (Value, error) {
	af, bf, ok := bothNumeric(a, b)
	if !ok {
		return Value{}, errors.Wrapf(ErrUnsupportedOperand, "%s * %s", a.kind, b.kind)
	}
	return numericResult(a, b, af*bf), nil
}

func Div(a, b Value) (Value, error) {
	af, bf, ok := bothNumeric(a, b)
	if !ok {
		return Value{}, errors.Wrapf(ErrUnsupportedOperand, "%s / %s", a.kind, b.kind)
	}
	if bf == 0 {
		return Value{}, errors.New("types: division by zero")
	}
	return NewFloat(af / bf), nil
}

func FloorDiv(a, b Value) (Value, error) {
	af, bf, ok := bothNumeric(a, b)
	if !ok {
		return Value{}, errors.Wrapf(ErrUnsupportedOperand, "%s // %s", a.kind, b.kind)
	}
	if bf == 0 {
		return Value{}, errors.New("types: division by zero")
	}
	return numericResult(a, b, math.Floor(af/bf)), nil
}

func Mod(a, b Value) (Value, error) {
	af, bf, ok := bothNumeric(a, b)
	if !ok {
		return Value{}, errors.Wrapf(ErrUnsupportedOperand, "%s %% %s", a.kind, b.kind)
	}
	if bf == 0 {
		return Value{}, errors.New("types: modulo by zero")
	}
	return numericResult(a, b, math.Mod(af, bf)), nil
}

func Pow(a, b Value) (Value, error) {
	af, bf, ok := bothNumeric(a, b)
	if !ok {
		return Value{}, errors.Wrapf(ErrUnsupportedOperand, "%s ** %s", a.kind, b.kind)
	}
	return numericResult(a, b, math.Pow(af, bf)), nil
}

func requireInts(a, b Value) (int64, int64, error) {
	if a.kind != KindInt || b.kind != KindInt {
		return 0, 0, errors.Wrapf(ErrUnsupportedOperand, "%s vs %s (expected int)", a.kind, b.kind)
	}
	return a.i, b.i, nil
}

func BitwiseAnd(a, b Value) (Value, error) {
	x, y, err := requireInts(a, b)
	if err != nil {
		return Value{}, err
	}
	return NewInt(x & y), nil
}

func BitwiseOr(a, b Value) (Value, error) {
	x, y, err := requireInts(a, b)
	if err != nil {
		return Value{}, err
	}
	return NewInt(x | y), nil
}

func Xor(a, b Value) (Value, error) {
	x, y, err := requireInts(a, b)
	if err != nil {
		return Value{}, err
	}
	return NewInt(x ^ y), nil
}

func Lshift(a, b Value) (Value, error) {
	x, y, err := requireInts(a, b)
	if err != nil {
		return Value{}, err
	}
	return NewInt(x << uint(y)), nil
}

func Rshift(a, b Value) (Value, error) {
	x, y, err := requireInts(a, b)
	if err != nil {
		return Value{}, err
	}
	return NewInt(x >> uint(y)), nil
}

func Invert(a Value) (Value, error) {
	if a.kind != KindInt {
		return Value{}, errors.Wrapf(ErrUnsupportedOperand, "~%s", a.kind)
	}
	return NewInt(^a.i), nil
}

// Is implements identity comparison. Values have no Python-style object
// identity, so this is defined as: both Null, or equal kind and Equal value
// — i.e. the same as Eq except it never coerces across Int/Float/String.
func Is(a, b Value) bool {
	if a.kind == KindNull && b.kind == KindNull {
		return true
	}
	if a.kind != b.kind {
		return false
	}
	return a.Equal(b)
}

// IsMember reports whether needle appears in haystack, which must be an
// Array. This backs the In operator's runtime (non-index-planned) fallback.
func IsMember(needle, haystack Value) (bool, error) {
	if haystack.kind != KindArray {
		return false, errors.Wrapf(ErrUnsupportedOperand, "IN requires an array operand, got %s", haystack.kind)
	}
	for _, item := range haystack.arr {
		if needle.Equal(item) {
			return true, nil
		}
	}
	return false, nil
}
