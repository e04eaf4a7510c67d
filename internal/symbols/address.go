package symbols

import (
	"fmt"
	"math"
	"strconv"

	"clukc/internal/types"
)

// AddrKind enumerates the closed set of three-address operands.
type AddrKind uint8

const (
	AddrInvalid    AddrKind = iota
	AddrVariable            // a declared symbol
	AddrTemporary           // %t<n>
	AddrIntConst            // int literal
	AddrFloatConst          // float literal
	AddrCharConst           // char literal
)

func (k AddrKind) String() string {
	switch k {
	case AddrVariable:
		return "variable"
	case AddrTemporary:
		return "temporary"
	case AddrIntConst:
		return "int"
	case AddrFloatConst:
		return "float"
	case AddrCharConst:
		return "char"
	default:
		return "invalid"
	}
}

// IsConst reports whether k is one of the literal kinds.
func (k AddrKind) IsConst() bool {
	return k == AddrIntConst || k == AddrFloatConst || k == AddrCharConst
}

// Address is a read-only handle to an operand owned by an Arena.
// The zero Address is "no address".
type Address struct {
	arena *Arena
	id    AddrID
}

// IsValid reports whether a refers to an allocated operand.
func (a Address) IsValid() bool { return a.arena != nil && a.id.IsValid() }

func (a Address) ID() AddrID { return a.id }

// Kind returns the variant of a, AddrInvalid for the zero Address.
func (a Address) Kind() AddrKind {
	if !a.IsValid() {
		return AddrInvalid
	}
	return a.entry().kind
}

// Name returns the textual operand. Temporaries and variables are unique per
// compilation; constants are derived from their value only, so equal
// constants share a name.
//
// Name panics for a variable whose scope has been popped.
func (a Address) Name() string {
	if !a.IsValid() {
		return ""
	}
	e := a.entry()
	switch e.kind {
	case AddrVariable:
		return a.arena.table.symbolName(e.sym)
	case AddrTemporary:
		return TempName(e.temp)
	case AddrIntConst:
		return strconv.FormatInt(int64(e.ival), 10)
	case AddrFloatConst:
		return FloatName(e.fval)
	case AddrCharConst:
		return strconv.Itoa(int(e.cval))
	default:
		panic(fmt.Errorf("symbols: address %d has invalid kind %d", a.id, e.kind))
	}
}

// Type returns the operand type. For variables it is the symbol's type and
// panics once the symbol's scope has been popped.
func (a Address) Type() types.Type {
	if !a.IsValid() {
		return types.Unknown
	}
	e := a.entry()
	if e.kind == AddrVariable {
		return a.arena.table.entry(e.sym).typ
	}
	return e.typ
}

// Location returns the storage of a variable (a temporary); any other
// address is its own location.
func (a Address) Location() Address {
	if !a.IsValid() {
		return a
	}
	e := a.entry()
	if e.kind != AddrVariable {
		return a
	}
	return a.arena.Get(a.arena.table.entry(e.sym).loc)
}

// Symbol returns the handle a variable refers to.
func (a Address) Symbol() (SymbolRef, bool) {
	if !a.IsValid() {
		return NoSymbolRef, false
	}
	e := a.entry()
	if e.kind != AddrVariable {
		return NoSymbolRef, false
	}
	return e.sym, true
}

func (a Address) String() string {
	if !a.IsValid() {
		return "<no address>"
	}
	return a.Name()
}

func (a Address) entry() *addrEntry {
	return &a.arena.data[a.id]
}

// TempName renders the label of temporary n.
func TempName(n uint64) string {
	return "%t" + strconv.FormatUint(n, 10)
}

// FloatName encodes v by the bits of its float64 widening: "0x" followed by
// sixteen upper-case hex digits. The encoding does not depend on locale or
// decimal precision.
func FloatName(v float32) string {
	return fmt.Sprintf("0x%016X", math.Float64bits(float64(v)))
}
