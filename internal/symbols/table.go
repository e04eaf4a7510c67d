package symbols

import (
	"fmt"
	"math"

	"fortio.org/safecast"

	"clukc/internal/source"
	"clukc/internal/trace"
	"clukc/internal/types"
)

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Symbols, Addresses uint }

// Options configures NewTable.
type Options struct {
	Hints Hints
	// Strings is the identifier interner; a fresh one is created when nil.
	Strings *source.Interner
	// Tracer receives scope push/pop and declaration events at ScopeNode.
	Tracer trace.Tracer
}

// Table is the lexical scope stack of one compilation unit together with the
// address arena that owns every operand the unit creates.
//
// A Table is not safe for concurrent use. Independent compilations must each
// build their own Table.
type Table struct {
	scopes   []scope // scopes[0] is global, the last element is innermost
	arena    *Arena
	strings  *source.Interner
	tracer   trace.Tracer
	lastGen  uint32
	maxDepth int
	symCap   int
}

// NewTable creates a table holding only the global scope.
func NewTable(opts Options) *Table {
	addrCap, err := safecast.Conv[uint32](opts.Hints.Addresses)
	if err != nil {
		panic(fmt.Errorf("address capacity overflow: %w", err))
	}
	symCap, err := safecast.Conv[int](opts.Hints.Symbols)
	if err != nil {
		panic(fmt.Errorf("symbol capacity overflow: %w", err))
	}
	if symCap == 0 {
		symCap = 8
	}
	strs := opts.Strings
	if strs == nil {
		strs = source.NewInterner()
	}
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}

	t := &Table{
		scopes:  make([]scope, 0, 8),
		arena:   NewArena(addrCap),
		strings: strs,
		tracer:  tracer,
		symCap:  symCap,
	}
	t.arena.table = t
	t.Push()
	return t
}

// Push opens a new innermost scope.
func (t *Table) Push() {
	if t.lastGen == math.MaxUint32 {
		panic("symbols: scope generation counter exhausted")
	}
	t.lastGen++
	t.scopes = append(t.scopes, newScope(t.lastGen, t.symCap))
	t.maxDepth = max(t.maxDepth, len(t.scopes))
	if t.tracer.Enabled() {
		trace.Point(t.tracer, trace.ScopeNode, "scope.push", fmt.Sprintf("depth=%d gen=%d", len(t.scopes), t.lastGen), 0)
	}
}

// Pop closes the innermost scope. Every SymbolRef and Variable obtained from
// that scope becomes stale; dereferencing them afterwards panics.
//
// Popping the global scope is a driver bug and panics.
func (t *Table) Pop() {
	if len(t.scopes) <= 1 {
		panic("symbols: Pop would remove the global scope (unbalanced push/pop)")
	}
	top := len(t.scopes) - 1
	if t.tracer.Enabled() {
		trace.Point(t.tracer, trace.ScopeNode, "scope.pop", fmt.Sprintf("depth=%d gen=%d symbols=%d", len(t.scopes), t.scopes[top].gen, len(t.scopes[top].symbols)), 0)
	}
	t.scopes[top] = scope{}
	t.scopes = t.scopes[:top]
}

// Depth returns the number of open scopes, the global scope included.
func (t *Table) Depth() int { return len(t.scopes) }

// MaxDepth returns the deepest nesting reached so far.
func (t *Table) MaxDepth() int { return t.maxDepth }

// Lookup resolves name from the innermost scope outwards.
func (t *Table) Lookup(name string) (SymbolRef, bool) {
	id, ok := t.strings.Find(name)
	if !ok {
		return NoSymbolRef, false
	}
	for depth := len(t.scopes) - 1; depth >= 0; depth-- {
		if slot, ok := t.scopes[depth].find(id); ok {
			return t.ref(depth, slot), true
		}
	}
	return NoSymbolRef, false
}

// LookupLocal resolves name in the innermost scope only.
func (t *Table) LookupLocal(name string) (SymbolRef, bool) {
	id, ok := t.strings.Find(name)
	if !ok {
		return NoSymbolRef, false
	}
	top := len(t.scopes) - 1
	if slot, ok := t.scopes[top].find(id); ok {
		return t.ref(top, slot), true
	}
	return NoSymbolRef, false
}

// Declare binds name in the innermost scope to a fresh temporary of type typ.
// Lookups match the NFC form of name; the symbol keeps the spelling given here.
// A second declaration of the same name in the same scope replaces the
// binding for later lookups; the earlier handle keeps referring to the
// earlier symbol while the scope is open.
func (t *Table) Declare(name string, typ types.Type) SymbolRef {
	id := t.strings.Intern(name)
	loc := t.arena.NewTemp(typ)

	top := len(t.scopes) - 1
	sc := &t.scopes[top]
	slot, err := safecast.Conv[uint32](len(sc.symbols))
	if err != nil {
		panic(fmt.Errorf("scope symbol overflow: %w", err))
	}
	sc.symbols = append(sc.symbols, symbolEntry{name: id, spelling: name, loc: loc.ID(), typ: typ})
	sc.names[id] = slot

	if t.tracer.Enabled() {
		trace.Point(t.tracer, trace.ScopeNode, "declare", fmt.Sprintf("%s %s -> %s depth=%d", typ, name, loc.Name(), len(t.scopes)), 0)
	}
	return t.ref(top, slot)
}

// Live reports whether ref can still be dereferenced.
func (t *Table) Live(ref SymbolRef) bool {
	if !ref.IsValid() || int(ref.depth) >= len(t.scopes) {
		return false
	}
	sc := &t.scopes[ref.depth]
	return sc.gen == ref.gen && int(ref.slot) < len(sc.symbols)
}

// Symbol returns a copy of the entry ref points to. It panics if the scope
// ref was declared in has been popped.
func (t *Table) Symbol(ref SymbolRef) Symbol {
	e := t.entry(ref)
	return Symbol{
		Ref:      ref,
		Name:     e.spelling,
		Location: t.arena.Get(e.loc),
		Type:     e.typ,
	}
}

// MakeVariable looks name up and wraps the symbol in a Variable address.
// It returns false, and allocates nothing, when name is not declared.
func (t *Table) MakeVariable(name string) (Address, bool) {
	ref, ok := t.Lookup(name)
	if !ok {
		return Address{}, false
	}
	return t.arena.newVariable(ref), true
}

// VariableOf wraps a live symbol handle in a Variable address.
func (t *Table) VariableOf(ref SymbolRef) Address {
	t.entry(ref)
	return t.arena.newVariable(ref)
}

func (t *Table) MakeTemp(typ types.Type) Address  { return t.arena.NewTemp(typ) }
func (t *Table) MakeIntConst(v int32) Address     { return t.arena.NewIntConst(v) }
func (t *Table) MakeFloatConst(v float32) Address { return t.arena.NewFloatConst(v) }
func (t *Table) MakeCharConst(v byte) Address     { return t.arena.NewCharConst(v) }

// Arena exposes the address arena of this table.
func (t *Table) Arena() *Arena { return t.arena }

// Strings exposes the identifier interner.
func (t *Table) Strings() *source.Interner { return t.strings }

// Scope returns the live bindings at depth (0 is global) in declaration
// order. Bindings replaced by a later declaration are omitted.
func (t *Table) Scope(depth int) []Symbol {
	if depth < 0 || depth >= len(t.scopes) {
		return nil
	}
	sc := &t.scopes[depth]
	out := make([]Symbol, 0, len(sc.names))
	for i := range sc.symbols {
		slot := uint32(i) // bounded by Declare
		if cur, ok := sc.names[sc.symbols[i].name]; !ok || cur != slot {
			continue
		}
		out = append(out, t.Symbol(t.ref(depth, slot)))
	}
	return out
}

func (t *Table) ref(depth int, slot uint32) SymbolRef {
	// depth < len(t.scopes) which Push keeps within uint32 range
	return SymbolRef{depth: uint32(depth), gen: t.scopes[depth].gen, slot: slot} //nolint:gosec
}

func (t *Table) entry(ref SymbolRef) *symbolEntry {
	if !t.Live(ref) {
		panic(fmt.Errorf("symbols: stale %v: its scope was popped", ref))
	}
	return &t.scopes[ref.depth].symbols[ref.slot]
}

func (t *Table) symbolName(ref SymbolRef) string {
	return t.entry(ref).spelling
}
