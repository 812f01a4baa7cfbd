package sqlfilter

import (
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/chaisql/indexset/internal/expr"
	"github.com/chaisql/indexset/internal/types"
)

// Parser turns a condition string into the expr.Condition algebra.
type Parser struct{}

// New returns the default Parser.
func New() *Parser { return &Parser{} }

// Parse parses input as a single expression and fails fast with ErrParse
// if any trailing input remains or an unsupported construct is found.
func (p *Parser) Parse(input string) (expr.Condition, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	s := &parseState{tokens: tokens}
	cond, err := s.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if s.peek().kind != tokEOF {
		return nil, errors.Wrapf(ErrParse, "unexpected trailing input near %q", s.peek().text)
	}
	return cond, nil
}

type parseState struct {
	tokens []token
	pos    int
}

func (s *parseState) peek() token { return s.tokens[s.pos] }

func (s *parseState) next() token {
	t := s.tokens[s.pos]
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
	return t
}

func (s *parseState) expect(k tokenKind) (token, error) {
	t := s.peek()
	if t.kind != k {
		return token{}, errors.Wrapf(ErrParse, "unexpected token %q", t.text)
	}
	return s.next(), nil
}

// precedence assigns a binding strength to each binary operator; OR is
// loosest, `**` tightest, matching the ordering chai's own scanner.Token
// assigns its operator set.
var precedence = map[tokenKind]int{
	tokOr:         1,
	tokAnd:        2,
	tokEq:         3,
	tokNe:         3,
	tokLt:         3,
	tokLe:         3,
	tokGt:         3,
	tokGe:         3,
	tokIs:         3,
	tokIn:         3,
	tokPipe:       4,
	tokCaret:      4,
	tokAmp:        5,
	tokLshift:     6,
	tokRshift:     6,
	tokPlus:       7,
	tokMinus:      7,
	tokStar:       8,
	tokSlash:      8,
	tokSlashSlash: 8,
	tokPercent:    8,
	tokPow:        9,
}

var tokenToOp = map[tokenKind]expr.Kind{
	tokAnd:        expr.KindAnd,
	tokOr:         expr.KindOr,
	tokEq:         expr.KindEq,
	tokNe:         expr.KindNe,
	tokLt:         expr.KindLt,
	tokLe:         expr.KindLe,
	tokGt:         expr.KindGt,
	tokGe:         expr.KindGe,
	tokIs:         expr.KindIs,
	tokPlus:       expr.KindAdd,
	tokMinus:      expr.KindSub,
	tokStar:       expr.KindMul,
	tokSlash:      expr.KindDiv,
	tokSlashSlash: expr.KindFloorDiv,
	tokPercent:    expr.KindMod,
	tokPow:        expr.KindPow,
	tokAmp:        expr.KindBitwiseAnd,
	tokPipe:       expr.KindBitwiseOr,
	tokCaret:      expr.KindXor,
	tokLshift:     expr.KindLshift,
	tokRshift:     expr.KindRshift,
}

func (s *parseState) parseExpr(minPrec int) (expr.Condition, error) {
	left, err := s.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok := s.peek()
		prec, ok := precedence[tok.kind]
		if !ok || prec < minPrec {
			return left, nil
		}
		s.next()

		if tok.kind == tokIn {
			arr, err := s.parseArray()
			if err != nil {
				return nil, err
			}
			left = expr.BinOp{Op: expr.KindIn, Left: left, Right: arr}
			continue
		}

		right, err := s.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}
		left = expr.BinOp{Op: tokenToOp[tok.kind], Left: left, Right: right}
	}
}

func (s *parseState) parseUnary() (expr.Condition, error) {
	tok := s.peek()
	switch tok.kind {
	case tokNot:
		s.next()
		// NOT binds looser than comparison: `NOT a = 3` is `NOT (a = 3)`.
		operand, err := s.parseExpr(precedence[tokEq])
		if err != nil {
			return nil, err
		}
		return expr.UnaryOp{Op: expr.KindNot, Operand: operand}, nil
	case tokTilde:
		s.next()
		operand, err := s.parseUnary()
		if err != nil {
			return nil, err
		}
		return expr.UnaryOp{Op: expr.KindInvert, Operand: operand}, nil
	case tokMinus:
		s.next()
		operand, err := s.parseUnary()
		if err != nil {
			return nil, err
		}
		lit, ok := operand.(expr.Literal)
		if !ok {
			return nil, errors.Wrapf(ErrParse, "unary - is only supported before a numeric literal")
		}
		switch lit.Value.Kind() {
		case types.KindInt:
			return expr.Literal{Value: types.NewInt(-lit.Value.Int())}, nil
		case types.KindFloat:
			return expr.Literal{Value: types.NewFloat(-lit.Value.Float())}, nil
		default:
			return nil, errors.Wrapf(ErrParse, "unary - requires a numeric literal")
		}
	default:
		return s.parsePrimary()
	}
}

func (s *parseState) parsePrimary() (expr.Condition, error) {
	tok := s.next()
	switch tok.kind {
	case tokInt:
		v, err := strconv.ParseInt(tok.text, 10, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrParse, "invalid integer literal %q", tok.text)
		}
		return expr.Literal{Value: types.NewInt(v)}, nil
	case tokFloat:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrParse, "invalid float literal %q", tok.text)
		}
		return expr.Literal{Value: types.NewFloat(v)}, nil
	case tokString:
		return expr.Literal{Value: types.NewString(tok.text)}, nil
	case tokTrue:
		return expr.Literal{Value: types.NewBool(true)}, nil
	case tokFalse:
		return expr.Literal{Value: types.NewBool(false)}, nil
	case tokNull:
		return expr.Literal{Value: types.Null()}, nil
	case tokIdent:
		return expr.Attribute{Name: tok.text}, nil
	case tokLParen:
		inner, err := s.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := s.expect(tokRParen); err != nil {
			return nil, err
		}
		return inner, nil
	default:
		return nil, errors.Wrapf(ErrParse, "unexpected token %q", tok.text)
	}
}

// parseArray parses a parenthesized, comma-separated literal list: the
// right-hand side of IN.
func (s *parseState) parseArray() (expr.Array, error) {
	if _, err := s.expect(tokLParen); err != nil {
		return expr.Array{}, err
	}
	var items []expr.Condition
	if s.peek().kind != tokRParen {
		for {
			item, err := s.parsePrimary()
			if err != nil {
				return expr.Array{}, err
			}
			items = append(items, item)
			if s.peek().kind == tokComma {
				s.next()
				continue
			}
			break
		}
	}
	if _, err := s.expect(tokRParen); err != nil {
		return expr.Array{}, err
	}
	return expr.Array{Items: items}, nil
}
