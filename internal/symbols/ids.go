package symbols

import "fmt"

// AddrID identifies an address inside an Arena.
type AddrID uint32

const (
	// NoAddrID marks the absence of an address.
	NoAddrID AddrID = 0
)

// IsValid reports whether the ID refers to an allocated address.
func (id AddrID) IsValid() bool { return id != NoAddrID }

// SymbolRef is a handle to a symbol declared in a Table. It is tagged with the
// generation of the scope that holds the symbol, so a handle that outlives its
// scope is detected instead of silently reading a newer scope's data.
type SymbolRef struct {
	depth uint32 // scope position, 0 is global
	gen   uint32 // generation of that scope
	slot  uint32 // index into the scope's symbol list
}

// NoSymbolRef is the zero handle; it never resolves.
var NoSymbolRef SymbolRef

// IsValid reports whether the handle was issued by Declare or Lookup.
// A valid handle may still be stale; see Table.Live.
func (r SymbolRef) IsValid() bool { return r.gen != 0 }

// Depth returns the scope depth the symbol was declared at (0 is global).
func (r SymbolRef) Depth() int { return int(r.depth) }

func (r SymbolRef) String() string {
	if !r.IsValid() {
		return "sym(none)"
	}
	return fmt.Sprintf("sym(depth=%d gen=%d slot=%d)", r.depth, r.gen, r.slot)
}
