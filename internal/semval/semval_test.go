package semval

import (
	"testing"

	"clukc/internal/symbols"
	"clukc/internal/types"
)

func TestExprTakesTypeFromAddress(t *testing.T) {
	table := symbols.NewTable(symbols.Options{})
	tmp := table.MakeTemp(types.Float)
	v := Expr("%t1 = 0x0000000000000000\n", tmp)
	if !v.HasAddr() || v.Type != types.Float || v.Addr != tmp {
		t.Fatalf("unexpected value %+v", v)
	}
}

func TestShapesPerRole(t *testing.T) {
	if v := Stmt("print int 1\n"); v.HasAddr() || v.Type != types.Unknown {
		t.Fatalf("statements carry only code: %+v", v)
	}
	if v := Lexeme("abc"); v.Code != "abc" || v.HasAddr() {
		t.Fatalf("lexemes carry only text: %+v", v)
	}
	if v := TypeName(types.Char); v.Code != "" || v.HasAddr() || v.Type != types.Char {
		t.Fatalf("type names carry only the tag: %+v", v)
	}
}

func TestJoin(t *testing.T) {
	table := symbols.NewTable(symbols.Options{})
	got := Join(Stmt("a\n"), Expr("b\n", table.MakeIntConst(1)), Value{}, Stmt("c\n"))
	if got.Code != "a\nb\nc\n" {
		t.Fatalf("Join code = %q", got.Code)
	}
	if got.HasAddr() || got.Type != types.Unknown {
		t.Fatalf("joined list must not carry an operand")
	}
	if Join().Code != "" {
		t.Fatalf("empty join must be empty")
	}
}
