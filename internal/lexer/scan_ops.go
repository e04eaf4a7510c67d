package lexer

import (
	"fmt"

	"clukc/internal/diag"
	"clukc/internal/token"
)

var singleByteOps = [256]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	';': token.Semicolon,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()
	if kind := singleByteOps[b]; kind != token.Invalid {
		return lx.tokenFrom(kind, start)
	}
	tok := lx.tokenFrom(token.Invalid, start)
	lx.errLex(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unexpected character %q", b))
	return tok
}
