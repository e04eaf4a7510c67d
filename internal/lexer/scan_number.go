package lexer

import (
	"clukc/internal/diag"
	"clukc/internal/token"
)

// Accepted forms: 123, 1.5, .5, 1., 1e3, 2.5E-2. Range checks happen when
// the literal is converted; the lexer only validates the shape.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return lx.badNumber(start, "expected digits in exponent")
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}

	// "12abc" is one malformed literal, not a number followed by a name
	if b := lx.cursor.Peek(); isIdentContinueByte(b) || b == '.' {
		return lx.badNumber(start, "invalid character in number literal")
	}
	return lx.tokenFrom(kind, start)
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	for b := lx.cursor.Peek(); isIdentContinueByte(b) || b == '.'; b = lx.cursor.Peek() {
		lx.cursor.Bump()
	}
	tok := lx.tokenFrom(token.Invalid, start)
	lx.errLex(diag.LexBadNumber, tok.Span, msg)
	return tok
}
