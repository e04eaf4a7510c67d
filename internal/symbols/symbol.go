package symbols

import (
	"clukc/internal/source"
	"clukc/internal/types"
)

type symbolEntry struct {
	name     source.StringID // NFC form, the scope key
	spelling string          // as written at the declaration
	loc      AddrID
	typ      types.Type
}

// Symbol is a copy of a symbol table entry.
type Symbol struct {
	Ref      SymbolRef
	Name     string
	Location Address // the temporary holding the value
	Type     types.Type
}
