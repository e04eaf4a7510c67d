package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

// peekRune decodes the rune at the cursor; size is 0 at EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	if b := lx.cursor.Peek(); b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

func (lx *Lexer) bumpRune() {
	_, size := lx.peekRune()
	n, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("rune size overflow: %w", err))
	}
	lx.cursor.Off += n
}

func isASCIILetter(b byte) bool { return b|0x20 >= 'a' && b|0x20 <= 'z' }
func isDec(b byte) bool         { return '0' <= b && b <= '9' }

func isIdentStartByte(b byte) bool    { return b == '_' || isASCIILetter(b) }
func isIdentContinueByte(b byte) bool { return b == '_' || isASCIILetter(b) || isDec(b) }

// Identifiers may use any Unicode letter; combining marks may follow the
// first rune so decomposed spellings lex as one identifier.
func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }
func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

// ".5" starts a number.
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}
