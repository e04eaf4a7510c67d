package diag

import "fmt"

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo          Code = 1000
	LexUnknownChar   Code = 1001
	LexBadNumber     Code = 1002
	LexBadChar       Code = 1003
	LexUnterminated  Code = 1004
	LexIntOutOfRange Code = 1005

	// syntax
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectSemicolon  Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectExpression Code = 2004
	SynUnclosedParen    Code = 2005
	SynUnclosedBrace    Code = 2006

	// semantic
	SemaInfo             Code = 3000
	SemaUnresolvedSymbol Code = 3001
	SemaRedeclared       Code = 3002
	SemaTypeMismatch     Code = 3003
	SemaVoidVariable     Code = 3004
	SemaBadOperand       Code = 3005

	// driver and I/O
	IOLoadFileError Code = 4001
	IOCacheError    Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInfo:              "Lexical information",
	LexUnknownChar:       "Unknown character",
	LexBadNumber:         "Malformed number literal",
	LexBadChar:           "Malformed character literal",
	LexUnterminated:      "Unterminated character literal",
	LexIntOutOfRange:     "Integer literal out of range",
	SynInfo:              "Syntax information",
	SynUnexpectedToken:   "Unexpected token",
	SynExpectSemicolon:   "Expected ';'",
	SynExpectIdentifier:  "Expected identifier",
	SynExpectExpression:  "Expected expression",
	SynUnclosedParen:     "Unclosed parenthesis",
	SynUnclosedBrace:     "Unclosed block",
	SemaInfo:             "Semantic information",
	SemaUnresolvedSymbol: "Unresolved symbol",
	SemaRedeclared:       "Redeclaration in the same scope",
	SemaTypeMismatch:     "Operand types differ",
	SemaVoidVariable:     "Variable declared void",
	SemaBadOperand:       "Operator not defined for operand type",
	IOLoadFileError:      "I/O load file error",
	IOCacheError:         "Compilation cache error",
}

// ID returns the stable short form, e.g. SEM3001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
