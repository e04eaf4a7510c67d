package types

import "testing"

func TestTypeString(t *testing.T) {
	cases := []struct {
		typ  Type
		want string
	}{
		{Unknown, "unknown"},
		{Void, "void"},
		{Int, "int"},
		{Float, "float"},
		{Char, "char"},
		{Type(42), "Type(42)"},
	}
	for _, tc := range cases {
		if got := tc.typ.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", tc.typ, got, tc.want)
		}
	}
}

func TestFromKeyword(t *testing.T) {
	for _, kw := range []string{"void", "int", "float", "char"} {
		typ, ok := FromKeyword(kw)
		if !ok {
			t.Fatalf("FromKeyword(%q) not recognised", kw)
		}
		if typ.String() != kw {
			t.Fatalf("FromKeyword(%q) = %v", kw, typ)
		}
	}
	if typ, ok := FromKeyword("double"); ok || typ != Unknown {
		t.Fatalf("expected double to be rejected, got %v %v", typ, ok)
	}
}

func TestValueCategories(t *testing.T) {
	if Unknown.IsValue() || Void.IsValue() {
		t.Fatalf("unknown and void must not be value types")
	}
	if !Int.IsArithmetic() || !Float.IsArithmetic() || !Char.IsArithmetic() {
		t.Fatalf("int, float and char are arithmetic")
	}
	if Float.SupportsRem() {
		t.Fatalf("float must not support %%")
	}
	if !Int.SupportsRem() || !Char.SupportsRem() {
		t.Fatalf("int and char support %%")
	}
}
