// Package semval defines the value carried between grammar actions.
//
// Which fields are set depends on the production that built the value:
// expressions fill all three, statements and lists carry only code,
// identifiers and literals carry only their text, and type names carry
// only the type tag.
package semval

import (
	"strings"

	"clukc/internal/symbols"
	"clukc/internal/types"
)

// Value is the attribute of one grammar symbol. It lives for a single
// reduction and has no identity of its own.
type Value struct {
	Code string          // three-address text produced so far
	Addr symbols.Address // where an expression's result lives
	Type types.Type
}

// Expr wraps the code computing addr; the type is taken from addr.
func Expr(code string, addr symbols.Address) Value {
	return Value{Code: code, Addr: addr, Type: addr.Type()}
}

func Stmt(code string) Value      { return Value{Code: code} }
func Lexeme(text string) Value    { return Value{Code: text} }
func TypeName(t types.Type) Value { return Value{Type: t} }

// HasAddr reports whether v designates an operand.
func (v Value) HasAddr() bool { return v.Addr.IsValid() }

// Join concatenates the code of parts into one statement list.
func Join(parts ...Value) Value {
	n := 0
	for _, p := range parts {
		n += len(p.Code)
	}
	var sb strings.Builder
	sb.Grow(n)
	for _, p := range parts {
		sb.WriteString(p.Code)
	}
	return Stmt(sb.String())
}
