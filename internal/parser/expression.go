package parser

import (
	"fmt"
	"strconv"

	"clukc/internal/diag"
	"clukc/internal/lexer"
	"clukc/internal/semval"
	"clukc/internal/source"
	"clukc/internal/symbols"
	"clukc/internal/tac"
	"clukc/internal/token"
)

// operand is an expression value together with the source it came from.
type operand struct {
	semval.Value
	span source.Span
}

var binaryOps = map[token.Kind]tac.Op{
	token.Plus:    tac.OpAdd,
	token.Minus:   tac.OpSub,
	token.Star:    tac.OpMul,
	token.Slash:   tac.OpDiv,
	token.Percent: tac.OpRem,
}

// parseExpr handles `mul (('+'|'-') mul)*`. A false result means a
// diagnostic was reported and the value must not be emitted; the whole
// expression is still consumed.
func (p *Parser) parseExpr() (operand, bool) {
	return p.parseBinary(p.parseMul, token.Plus, token.Minus)
}

// parseMul handles `unary (('*'|'/'|'%') unary)*`.
func (p *Parser) parseMul() (operand, bool) {
	return p.parseBinary(p.parseUnary, token.Star, token.Slash, token.Percent)
}

func (p *Parser) parseBinary(next func() (operand, bool), ops ...token.Kind) (operand, bool) {
	lhs, ok := next()
	for p.atOr(ops...) {
		opTok := p.advance()
		rhs, rhsOK := next()
		if !ok || !rhsOK {
			ok = false
			continue
		}
		lhs, ok = p.binary(opTok, lhs, rhs)
	}
	return lhs, ok
}

func (p *Parser) binary(opTok token.Token, lhs, rhs operand) (operand, bool) {
	span := lhs.span.Cover(rhs.span)
	if lhs.Type != rhs.Type {
		p.errAt(diag.SemaTypeMismatch, span,
			fmt.Sprintf("operands of '%s' have different types %s and %s", opTok.Text, lhs.Type, rhs.Type))
		return operand{span: span}, false
	}
	op := binaryOps[opTok.Kind]
	if op == tac.OpRem && !lhs.Type.SupportsRem() {
		p.errAt(diag.SemaBadOperand, opTok.Span, fmt.Sprintf("operator '%%' is not defined for %s", lhs.Type))
		return operand{span: span}, false
	}
	dst := p.table.MakeTemp(lhs.Type)
	code := semval.Join(lhs.Value, rhs.Value, semval.Stmt(tac.Binary(dst, op, lhs.Addr, rhs.Addr)))
	return operand{Value: semval.Expr(code.Code, dst), span: span}, true
}

// parseUnary handles `'-' unary | primary`.
func (p *Parser) parseUnary() (operand, bool) {
	if !p.at(token.Minus) {
		return p.parsePrimary()
	}
	minus := p.advance()
	if lit := p.lx.Peek(); lit.Kind == token.IntLit {
		return p.parseNegativeInt(minus, lit)
	}
	inner, ok := p.parseUnary()
	span := minus.Span.Cover(inner.span)
	if !ok {
		return operand{span: span}, false
	}
	if !inner.Type.IsArithmetic() {
		p.errAt(diag.SemaBadOperand, minus.Span, fmt.Sprintf("cannot negate a %s value", inner.Type))
		return operand{span: span}, false
	}
	dst := p.table.MakeTemp(inner.Type)
	code := semval.Join(inner.Value, semval.Stmt(tac.Neg(dst, inner.Addr)))
	return operand{Value: semval.Expr(code.Code, dst), span: span}, true
}

// parseNegativeInt reads '-' INT as one literal so that the smallest int
// can be written.
func (p *Parser) parseNegativeInt(minus, lit token.Token) (operand, bool) {
	p.advance()
	span := minus.Span.Cover(lit.Span)
	v, err := strconv.ParseInt("-"+lit.Text, 10, 32)
	if err != nil {
		p.errAt(diag.LexIntOutOfRange, span, fmt.Sprintf("integer literal -%s does not fit in int", lit.Text))
		return operand{span: span}, false
	}
	return operand{Value: semval.Expr("", p.table.MakeIntConst(int32(v))), span: span}, true //nolint:gosec // bitSize 32 bounds v
}

// parsePrimary handles literals, names and parenthesized expressions.
func (p *Parser) parsePrimary() (operand, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		v, err := strconv.ParseInt(tok.Text, 10, 32)
		if err != nil {
			p.errAt(diag.LexIntOutOfRange, tok.Span, fmt.Sprintf("integer literal %s does not fit in int", tok.Text))
			return operand{span: tok.Span}, false
		}
		return p.constant(p.table.MakeIntConst(int32(v)), tok), true //nolint:gosec // bitSize 32 bounds v

	case token.FloatLit:
		p.advance()
		v, err := strconv.ParseFloat(tok.Text, 32)
		if err != nil {
			p.errAt(diag.LexBadNumber, tok.Span, fmt.Sprintf("float literal %s is out of range", tok.Text))
			return operand{span: tok.Span}, false
		}
		return p.constant(p.table.MakeFloatConst(float32(v)), tok), true

	case token.CharLit:
		p.advance()
		c, ok := lexer.DecodeChar(tok.Text)
		if !ok {
			return operand{span: tok.Span}, false
		}
		return p.constant(p.table.MakeCharConst(c), tok), true

	case token.Ident:
		p.advance()
		v, ok := p.table.MakeVariable(tok.Text)
		if !ok {
			p.errAt(diag.SemaUnresolvedSymbol, tok.Span, fmt.Sprintf("undefined name %q", tok.Text))
			return operand{span: tok.Span}, false
		}
		return operand{Value: semval.Expr("", v), span: tok.Span}, true

	case token.LParen:
		open := p.advance()
		inner, ok := p.parseExpr()
		if !p.at(token.RParen) {
			p.report(diag.SynUnclosedParen, diag.SevError, p.diagnosticSpan(), "expected ')', got "+describe(p.lx.Peek()),
				diag.Note{Span: open.Span, Msg: "parenthesis opened here"})
			return operand{span: open.Span.Cover(inner.span)}, false
		}
		closing := p.advance()
		inner.span = open.Span.Cover(closing.Span)
		return inner, ok

	case token.Invalid:
		// the lexer has reported it
		p.advance()
		return operand{span: tok.Span}, false

	default:
		p.errAt(diag.SynExpectExpression, p.diagnosticSpan(), "expected expression, got "+describe(tok))
		return operand{span: tok.Span}, false
	}
}

func (p *Parser) constant(addr symbols.Address, tok token.Token) operand {
	return operand{Value: semval.Expr("", addr), span: tok.Span}
}
