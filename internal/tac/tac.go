// Package tac renders three-address instructions. It reads operands only
// through Address.Name and Address.Type and never changes them.
//
// Variables are printed through their storage temporary, so the listing
// refers to every named value by a unique label even when names shadow one
// another.
package tac

import (
	"fmt"
	"strings"

	"clukc/internal/symbols"
	"clukc/internal/types"
)

// Op is a binary arithmetic operator.
type Op uint8

const (
	OpInvalid Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRem
)

var opText = [...]string{
	OpInvalid: "?",
	OpAdd:     "+",
	OpSub:     "-",
	OpMul:     "*",
	OpDiv:     "/",
	OpRem:     "%",
}

func (op Op) String() string {
	if int(op) < len(opText) {
		return opText[op]
	}
	return "?"
}

// Operand returns the text an address contributes to an instruction.
func Operand(a symbols.Address) string {
	if !a.IsValid() {
		panic("tac: operand without address")
	}
	if a.Type() == types.Unknown {
		panic(fmt.Errorf("tac: operand %s has no type", a.Name()))
	}
	return a.Location().Name()
}

// Decl announces the storage of a declared symbol.
func Decl(sym symbols.Symbol) string {
	return fmt.Sprintf("decl %s %s  ; %s\n", sym.Type, Operand(sym.Location), sym.Name)
}

// Copy emits dst = src.
func Copy(dst, src symbols.Address) string {
	return Operand(dst) + " = " + Operand(src) + "\n"
}

// Binary emits dst = a op b.
func Binary(dst symbols.Address, op Op, a, b symbols.Address) string {
	if op == OpInvalid || int(op) >= len(opText) {
		panic(fmt.Errorf("tac: invalid operator %d", op))
	}
	var sb strings.Builder
	sb.WriteString(Operand(dst))
	sb.WriteString(" = ")
	sb.WriteString(Operand(a))
	sb.WriteByte(' ')
	sb.WriteString(op.String())
	sb.WriteByte(' ')
	sb.WriteString(Operand(b))
	sb.WriteByte('\n')
	return sb.String()
}

// Neg emits dst = neg a.
func Neg(dst, a symbols.Address) string {
	return Operand(dst) + " = neg " + Operand(a) + "\n"
}

// Print emits a typed print of a.
func Print(a symbols.Address) string {
	return "print " + a.Type().String() + " " + Operand(a) + "\n"
}

// Lines counts the instructions in a listing.
func Lines(code string) int {
	return strings.Count(code, "\n")
}
