// Package expr implements the condition algebra: a pure, immutable tree of
// logical/arithmetic operators used both as the target of the string
// parser and as the programmatic filter-building surface.
package expr

import (
	"strings"

	"github.com/chaisql/indexset/internal/types"
)

// Kind tags the concrete Condition node, and for BinOp/UnaryOp nodes also
// selects the operator.
type Kind uint8

const (
	KindLiteral Kind = iota
	KindAttribute
	KindArray

	KindAdd
	KindSub
	KindMul
	KindDiv
	KindFloorDiv
	KindMod
	KindPow
	KindBitwiseAnd
	KindBitwiseOr
	KindXor
	KindLshift
	KindRshift
	KindIs
	KindLt
	KindLe
	KindGt
	KindGe
	KindEq
	KindNe
	KindAnd
	KindOr
	KindIn

	KindNot
	KindInvert
)

// symbols is the canonical string form used by BinOp/UnaryOp.String and by
// the golden-fixture tests.
var symbols = map[Kind]string{
	KindAdd:        "+",
	KindDiv:        "/",
	KindFloorDiv:   "//",
	KindBitwiseAnd: "&",
	KindXor:        "^",
	KindBitwiseOr:  "|",
	KindPow:        "**",
	KindIs:         "is",
	KindLshift:     "<<",
	KindMod:        "%",
	KindMul:        "*",
	KindRshift:     ">>",
	KindSub:        "-",
	KindLt:         "<",
	KindLe:         "<=",
	KindGt:         ">",
	KindGe:         ">=",
	KindEq:         "=",
	KindNe:         "!=",
	KindOr:         "OR",
	KindAnd:        "AND",
	KindIn:         "IN",
	KindNot:        "NOT",
	KindInvert:     "~",
}

// Condition is a node of the expression tree. Conditions are pure values:
// equality is structural, and they carry no identity or lifecycle beyond
// the plan that references them.
type Condition interface {
	String() string
	Kind() Kind
}

// Literal is an embedded scalar.
type Literal struct {
	Value types.Value
}

func (l Literal) String() string { return l.Value.String() }
func (l Literal) Kind() Kind     { return KindLiteral }

// Attribute is a named field of a stored object.
type Attribute struct {
	Name string
}

func (a Attribute) String() string { return a.Name }
func (a Attribute) Kind() Kind     { return KindAttribute }

// Array is a parenthesized list, used for the right-hand side of IN.
type Array struct {
	Items []Condition
}

func (a Array) String() string {
	parts := make([]string, len(a.Items))
	for i, item := range a.Items {
		parts[i] = item.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
func (a Array) Kind() Kind { return KindArray }

// BinOp is a binary operator node: arithmetic, comparison, identity,
// logical, or membership.
type BinOp struct {
	Op    Kind
	Left  Condition
	Right Condition
}

func (b BinOp) String() string {
	return b.Left.String() + " " + symbols[b.Op] + " " + b.Right.String()
}
func (b BinOp) Kind() Kind { return b.Op }

// UnaryOp is a unary operator node: NOT or bitwise complement.
type UnaryOp struct {
	Op      Kind
	Operand Condition
}

func (u UnaryOp) String() string {
	return symbols[u.Op] + " " + u.Operand.String()
}
func (u UnaryOp) Kind() Kind { return u.Op }
