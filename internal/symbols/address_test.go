package symbols

import (
	"testing"

	"clukc/internal/types"
)

func TestTemporaryNamesAreUnique(t *testing.T) {
	table := NewTable(Options{})
	seen := make(map[string]bool)
	kinds := []types.Type{types.Int, types.Float, types.Char, types.Int}
	for i := range 200 {
		addr := table.MakeTemp(kinds[i%len(kinds)])
		if seen[addr.Name()] {
			t.Fatalf("duplicate temporary name %s", addr.Name())
		}
		seen[addr.Name()] = true
	}
	// declarations draw from the same counter
	loc := table.Symbol(table.Declare("x", types.Int)).Location
	if seen[loc.Name()] {
		t.Fatalf("declared location reused %s", loc.Name())
	}
}

func TestTemporaryNumbering(t *testing.T) {
	table := NewTable(Options{})
	first := table.MakeTemp(types.Int)
	table.Declare("x", types.Float)
	third := table.MakeTemp(types.Char)
	if first.Name() != "%t1" || third.Name() != "%t3" {
		t.Fatalf("got %s and %s, want %%t1 and %%t3", first.Name(), third.Name())
	}
	if third.Type() != types.Char || third.Kind() != AddrTemporary {
		t.Fatalf("unexpected temporary %v %v", third.Kind(), third.Type())
	}
	if table.Arena().Temps() != 3 {
		t.Fatalf("Temps = %d, want 3", table.Arena().Temps())
	}
}

func TestConstantNames(t *testing.T) {
	table := NewTable(Options{})
	cases := []struct {
		addr Address
		name string
		typ  types.Type
		kind AddrKind
	}{
		{table.MakeIntConst(42), "42", types.Int, AddrIntConst},
		{table.MakeIntConst(-7), "-7", types.Int, AddrIntConst},
		{table.MakeCharConst('A'), "65", types.Char, AddrCharConst},
		{table.MakeCharConst(0), "0", types.Char, AddrCharConst},
		{table.MakeFloatConst(1.5), "0x3FF8000000000000", types.Float, AddrFloatConst},
		{table.MakeFloatConst(0), "0x0000000000000000", types.Float, AddrFloatConst},
		{table.MakeFloatConst(-2), "0xC000000000000000", types.Float, AddrFloatConst},
	}
	for _, tc := range cases {
		if tc.addr.Name() != tc.name || tc.addr.Type() != tc.typ || tc.addr.Kind() != tc.kind {
			t.Errorf("got %s/%v/%v, want %s/%v/%v",
				tc.addr.Name(), tc.addr.Type(), tc.addr.Kind(), tc.name, tc.typ, tc.kind)
		}
		if !tc.addr.Kind().IsConst() {
			t.Errorf("%v must be a constant kind", tc.addr.Kind())
		}
		if tc.addr.Location() != tc.addr {
			t.Errorf("constants are their own location")
		}
	}
}

func TestFloatNameDeterministic(t *testing.T) {
	a := NewTable(Options{}).MakeFloatConst(1.5).Name()
	b := NewTable(Options{}).MakeFloatConst(1.5).Name()
	c := NewTable(Options{}).MakeFloatConst(2.5).Name()
	if a != b {
		t.Fatalf("equal floats encoded differently: %s vs %s", a, b)
	}
	if a == c {
		t.Fatalf("1.5 and 2.5 share encoding %s", a)
	}
	if FloatName(0.1) != FloatName(float32(0.1)) {
		t.Fatalf("encoding must depend only on the value")
	}
	// 0.1 is not exact in float32; the widened bits are what gets encoded
	if got := FloatName(0.1); got != "0x3FB99999A0000000" {
		t.Fatalf("FloatName(0.1) = %s", got)
	}
}

func TestEqualConstantsShareNames(t *testing.T) {
	table := NewTable(Options{})
	a, b := table.MakeIntConst(3), table.MakeIntConst(3)
	if a.ID() == b.ID() {
		t.Fatalf("each call allocates a new address")
	}
	if a.Name() != b.Name() {
		t.Fatalf("equal constants must share a name")
	}
}

func TestZeroAddress(t *testing.T) {
	var a Address
	if a.IsValid() || a.Kind() != AddrInvalid || a.Name() != "" || a.Type() != types.Unknown {
		t.Fatalf("zero address must be inert")
	}
	if a.String() != "<no address>" {
		t.Fatalf("String = %q", a.String())
	}
	if _, ok := a.Symbol(); ok {
		t.Fatalf("zero address has no symbol")
	}
}

func TestStandaloneArena(t *testing.T) {
	arena := NewArena(0)
	tmp := arena.NewTemp(types.Float)
	if tmp.Name() != "%t1" || arena.Len() != 1 {
		t.Fatalf("unexpected arena state %s len=%d", tmp.Name(), arena.Len())
	}
	if arena.Get(tmp.ID()) != tmp {
		t.Fatalf("Get must return the same handle")
	}
	if arena.Get(NoAddrID).IsValid() || arena.Get(AddrID(99)).IsValid() {
		t.Fatalf("unknown ids must give the zero address")
	}
	mustPanic(t, "owning table", func() { arena.newVariable(SymbolRef{gen: 1}) })
}
