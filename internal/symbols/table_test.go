package symbols

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"clukc/internal/trace"
	"clukc/internal/types"
)

func mustPanic(t *testing.T, want string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic containing %q", want)
		}
		if msg := panicMessage(r); !strings.Contains(msg, want) {
			t.Fatalf("panic %q does not mention %q", msg, want)
		}
	}()
	fn()
}

func panicMessage(r any) string {
	switch v := r.(type) {
	case error:
		return v.Error()
	case string:
		return v
	default:
		return ""
	}
}

func TestNewTableHasGlobalScope(t *testing.T) {
	table := NewTable(Options{})
	if table.Depth() != 1 {
		t.Fatalf("Depth = %d, want 1", table.Depth())
	}
	mustPanic(t, "global scope", table.Pop)
}

func TestDeclareThenLookup(t *testing.T) {
	table := NewTable(Options{})
	ref := table.Declare("count", types.Int)

	got, ok := table.Lookup("count")
	if !ok || got != ref {
		t.Fatalf("Lookup = %v %v, want %v", got, ok, ref)
	}
	sym := table.Symbol(got)
	if sym.Name != "count" || sym.Type != types.Int {
		t.Fatalf("unexpected symbol %+v", sym)
	}
	if sym.Location.Kind() != AddrTemporary || sym.Location.Type() != types.Int {
		t.Fatalf("location must be an int temporary, got %v %v", sym.Location.Kind(), sym.Location.Type())
	}
}

func TestShadowingAcrossScopes(t *testing.T) {
	table := NewTable(Options{})
	outer := table.Declare("x", types.Int)

	table.Push()
	inner := table.Declare("x", types.Float)
	ref, ok := table.Lookup("x")
	if !ok || ref != inner || table.Symbol(ref).Type != types.Float {
		t.Fatalf("inner lookup should see the float binding, got %v", ref)
	}
	table.Pop()

	ref, ok = table.Lookup("x")
	if !ok || ref != outer || table.Symbol(ref).Type != types.Int {
		t.Fatalf("after pop lookup should see the int binding, got %v", ref)
	}
}

func TestInnerNameGoneAfterPop(t *testing.T) {
	table := NewTable(Options{})
	table.Push()
	table.Push()
	table.Declare("tmp", types.Char)
	if _, ok := table.Lookup("tmp"); !ok {
		t.Fatalf("tmp must be visible while its scope is open")
	}
	table.Pop()
	if _, ok := table.Lookup("tmp"); ok {
		t.Fatalf("tmp must not be visible after its scope closed")
	}
	table.Pop()
	if table.Depth() != 1 || table.MaxDepth() != 3 {
		t.Fatalf("Depth=%d MaxDepth=%d", table.Depth(), table.MaxDepth())
	}
}

func TestRedeclareInSameScope(t *testing.T) {
	table := NewTable(Options{})
	first := table.Declare("v", types.Int)
	second := table.Declare("v", types.Char)

	ref, ok := table.Lookup("v")
	if !ok || ref != second {
		t.Fatalf("lookup must return the second binding, got %v", ref)
	}
	if table.Symbol(ref).Type != types.Char {
		t.Fatalf("second binding should be char")
	}
	// the first handle still reads the first symbol
	if sym := table.Symbol(first); sym.Type != types.Int {
		t.Fatalf("first handle changed meaning: %+v", sym)
	}
	if local, ok := table.LookupLocal("v"); !ok || local != second {
		t.Fatalf("LookupLocal = %v %v", local, ok)
	}

	names := make([]string, 0)
	for _, sym := range table.Scope(0) {
		names = append(names, sym.Name+":"+sym.Type.String())
	}
	if diff := cmp.Diff([]string{"v:char"}, names); diff != "" {
		t.Fatalf("Scope(0) mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupLocalIgnoresOuterScopes(t *testing.T) {
	table := NewTable(Options{})
	table.Declare("g", types.Int)
	table.Push()
	if _, ok := table.LookupLocal("g"); ok {
		t.Fatalf("LookupLocal must not see outer scopes")
	}
	if _, ok := table.Lookup("g"); !ok {
		t.Fatalf("Lookup must see outer scopes")
	}
}

func TestStaleSymbolRefPanics(t *testing.T) {
	table := NewTable(Options{})
	table.Push()
	ref := table.Declare("y", types.Int)
	table.Pop()

	if table.Live(ref) {
		t.Fatalf("handle must be stale after pop")
	}
	mustPanic(t, "stale", func() { table.Symbol(ref) })

	// a new scope at the same depth must not revive the handle
	table.Push()
	table.Declare("z", types.Float)
	if table.Live(ref) {
		t.Fatalf("handle revived by a sibling scope")
	}
	mustPanic(t, "stale", func() { table.VariableOf(ref) })
}

func TestStaleVariablePanics(t *testing.T) {
	table := NewTable(Options{})
	table.Push()
	table.Declare("inner", types.Char)
	v, ok := table.MakeVariable("inner")
	if !ok || v.Name() != "inner" || v.Type() != types.Char {
		t.Fatalf("unexpected variable %v %v", v, ok)
	}
	table.Pop()
	mustPanic(t, "stale", func() { _ = v.Name() })
	mustPanic(t, "stale", func() { _ = v.Type() })
}

func TestMakeVariable(t *testing.T) {
	table := NewTable(Options{})
	before := table.Arena().Len()
	if v, ok := table.MakeVariable("undeclared"); ok || v.IsValid() {
		t.Fatalf("undeclared name must not produce an address")
	}
	if table.Arena().Len() != before {
		t.Fatalf("failed MakeVariable allocated an address")
	}

	ref := table.Declare("n", types.Int)
	v, ok := table.MakeVariable("n")
	if !ok {
		t.Fatalf("MakeVariable failed for declared name")
	}
	if v.Kind() != AddrVariable || v.Name() != "n" || v.Type() != types.Int {
		t.Fatalf("unexpected variable %v kind=%v", v, v.Kind())
	}
	if got, _ := v.Symbol(); got != ref {
		t.Fatalf("variable refers to %v, want %v", got, ref)
	}
	if v.Location() != table.Symbol(ref).Location {
		t.Fatalf("variable location must be the symbol's temporary")
	}
}

func TestLookupDoesNotIntern(t *testing.T) {
	table := NewTable(Options{})
	n := table.Strings().Len()
	table.Lookup("nothing")
	table.MakeVariable("nothing")
	if table.Strings().Len() != n {
		t.Fatalf("lookups must not grow the interner")
	}
}

func TestLookupNormalizesIdentifiers(t *testing.T) {
	table := NewTable(Options{})
	ref := table.Declare("caf\u00e9", types.Int)
	if got, ok := table.Lookup("cafe\u0301"); !ok || got != ref {
		t.Fatalf("canonically equal names must resolve to one binding")
	}
}

func TestDeclareKeepsSpelling(t *testing.T) {
	table := NewTable(Options{})
	decomposed := "cafe\u0301"
	ref := table.Declare(decomposed, types.Int)
	if got := table.Symbol(ref).Name; got != decomposed {
		t.Fatalf("Symbol.Name = %q, want %q", got, decomposed)
	}
	v, ok := table.MakeVariable("caf\u00e9")
	if !ok {
		t.Fatalf("composed spelling must find the binding")
	}
	if got := v.Name(); got != decomposed {
		t.Fatalf("variable name = %q, want %q", got, decomposed)
	}
	if got := table.Scope(0)[0].Name; got != decomposed {
		t.Fatalf("scope dump name = %q, want %q", got, decomposed)
	}
}

func TestTableTracesScopeEvents(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(Options{Tracer: trace.NewStreamTracer(&buf, trace.LevelDebug, trace.FormatText)})
	table.Push()
	table.Declare("a", types.Int)
	table.Pop()

	out := buf.String()
	for _, want := range []string{"scope.push", "declare (int a -> %t1 depth=2)", "scope.pop (depth=2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace missing %q:\n%s", want, out)
		}
	}
}

func TestIndependentTablesDoNotShareState(t *testing.T) {
	a := NewTable(Options{})
	b := NewTable(Options{})
	a.MakeTemp(types.Int)
	a.MakeTemp(types.Int)
	if got := b.MakeTemp(types.Int).Name(); got != "%t1" {
		t.Fatalf("each table numbers its own temporaries, got %s", got)
	}
}
