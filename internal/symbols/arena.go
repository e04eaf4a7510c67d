package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"clukc/internal/types"
)

type addrEntry struct {
	kind AddrKind
	typ  types.Type
	temp uint64    // AddrTemporary
	ival int32     // AddrIntConst
	fval float32   // AddrFloatConst
	cval byte      // AddrCharConst
	sym  SymbolRef // AddrVariable
}

// Arena owns every address created during one compilation. Addresses are
// never freed individually; the arena and everything in it is dropped with
// the Table that created it.
type Arena struct {
	data     []addrEntry
	lastTemp uint64
	table    *Table // resolves variables; nil for standalone arenas
}

// NewArena creates an arena with an optional capacity hint.
func NewArena(capacity uint32) *Arena {
	if capacity == 0 {
		capacity = 64
	}
	return &Arena{
		data: make([]addrEntry, 1, capacity+1), // index 0 reserved for NoAddrID
	}
}

func (a *Arena) alloc(e addrEntry) Address {
	value, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("address arena overflow: %w", err))
	}
	a.data = append(a.data, e)
	return Address{arena: a, id: AddrID(value)}
}

// NewTemp allocates the next temporary. Numbering starts at 1 and is never
// reused for the lifetime of the arena.
func (a *Arena) NewTemp(t types.Type) Address {
	if a.lastTemp == ^uint64(0) {
		panic("address arena: temporary counter exhausted")
	}
	a.lastTemp++
	return a.alloc(addrEntry{kind: AddrTemporary, typ: t, temp: a.lastTemp})
}

func (a *Arena) NewIntConst(v int32) Address {
	return a.alloc(addrEntry{kind: AddrIntConst, typ: types.Int, ival: v})
}

func (a *Arena) NewFloatConst(v float32) Address {
	return a.alloc(addrEntry{kind: AddrFloatConst, typ: types.Float, fval: v})
}

func (a *Arena) NewCharConst(v byte) Address {
	return a.alloc(addrEntry{kind: AddrCharConst, typ: types.Char, cval: v})
}

func (a *Arena) newVariable(ref SymbolRef) Address {
	if a.table == nil {
		panic("address arena: variables need an owning table")
	}
	return a.alloc(addrEntry{kind: AddrVariable, sym: ref})
}

// Get returns the handle for id, or the zero Address if id is unknown.
func (a *Arena) Get(id AddrID) Address {
	if !id.IsValid() || int(id) >= len(a.data) {
		return Address{}
	}
	return Address{arena: a, id: id}
}

// Len reports the number of addresses excluding the sentinel.
func (a *Arena) Len() int { return len(a.data) - 1 }

// Temps reports how many temporaries have been issued.
func (a *Arena) Temps() uint64 { return a.lastTemp }
