package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// KwInt represents the 'int' keyword.
	KwInt // int
	// KwFloat represents the 'float' keyword.
	KwFloat // float
	// KwChar represents the 'char' keyword.
	KwChar // char
	// KwVoid represents the 'void' keyword.
	KwVoid // void
	// KwPrint represents the 'print' keyword.
	KwPrint // print

	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating point literal.
	FloatLit
	// CharLit represents a character literal.
	CharLit

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Percent   // %
	Assign    // =
	Semicolon // ;
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
)

var kindNames = [...]string{
	Invalid:   "invalid",
	EOF:       "EOF",
	Ident:     "identifier",
	KwInt:     "int",
	KwFloat:   "float",
	KwChar:    "char",
	KwVoid:    "void",
	KwPrint:   "print",
	IntLit:    "int literal",
	FloatLit:  "float literal",
	CharLit:   "char literal",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	Assign:    "=",
	Semicolon: ";",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsTypeKeyword reports whether k names a type.
func (k Kind) IsTypeKeyword() bool {
	return k == KwInt || k == KwFloat || k == KwChar || k == KwVoid
}
