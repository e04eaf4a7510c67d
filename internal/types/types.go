package types

import "fmt"

// Type classifies the value carried by an address or expression.
// The set is closed: pointers, arrays and records are not representable.
type Type uint8

const (
	Unknown Type = iota // not fixed yet; never reaches emission
	Void                // the type of statements
	Int
	Float
	Char
)

func (t Type) String() string {
	switch t {
	case Unknown:
		return "unknown"
	case Void:
		return "void"
	case Int:
		return "int"
	case Float:
		return "float"
	case Char:
		return "char"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// FromKeyword maps a type keyword of the source language to its Type.
func FromKeyword(kw string) (Type, bool) {
	switch kw {
	case "void":
		return Void, true
	case "int":
		return Int, true
	case "float":
		return Float, true
	case "char":
		return Char, true
	default:
		return Unknown, false
	}
}

// IsValue reports whether t may be carried by an emitted operand.
func (t Type) IsValue() bool {
	return t == Int || t == Float || t == Char
}

// IsArithmetic reports whether + - * / and negation apply to t.
func (t Type) IsArithmetic() bool { return t.IsValue() }

// SupportsRem reports whether the remainder operator applies to t.
func (t Type) SupportsRem() bool {
	return t == Int || t == Char
}
