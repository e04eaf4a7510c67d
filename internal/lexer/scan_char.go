package lexer

import (
	"unicode/utf8"

	"clukc/internal/diag"
	"clukc/internal/token"
)

// scanChar reads 'c' or an escape like '\n'. Only single-byte characters
// are representable.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening quote

	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			tok := lx.tokenFrom(token.Invalid, start)
			lx.errLex(diag.LexUnterminated, tok.Span, "unterminated character literal")
			return tok
		}
		b := lx.cursor.Bump()
		if b == '\\' {
			if !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			continue
		}
		if b == '\'' {
			break
		}
	}

	tok := lx.tokenFrom(token.CharLit, start)
	if _, ok := DecodeChar(tok.Text); !ok {
		tok.Kind = token.Invalid
		lx.errLex(diag.LexBadChar, tok.Span, "character literal must hold exactly one byte or a known escape")
	}
	return tok
}

// DecodeChar returns the byte a well-formed character literal denotes,
// quotes included in text.
func DecodeChar(text string) (byte, bool) {
	if len(text) < 3 || text[0] != '\'' || text[len(text)-1] != '\'' {
		return 0, false
	}
	body := text[1 : len(text)-1]
	switch {
	case len(body) == 1 && body[0] != '\\' && body[0] != '\'' && body[0] < utf8.RuneSelf:
		return body[0], true
	case len(body) == 2 && body[0] == '\\':
		switch body[1] {
		case 'n':
			return '\n', true
		case 't':
			return '\t', true
		case 'r':
			return '\r', true
		case '0':
			return 0, true
		case '\\':
			return '\\', true
		case '\'':
			return '\'', true
		}
	}
	return 0, false
}
