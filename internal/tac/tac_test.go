package tac

import (
	"testing"

	"clukc/internal/symbols"
	"clukc/internal/types"
)

func TestInstructions(t *testing.T) {
	table := symbols.NewTable(symbols.Options{})
	x := table.Symbol(table.Declare("x", types.Int))
	xv, _ := table.MakeVariable("x")
	tmp := table.MakeTemp(types.Int)
	c := table.MakeIntConst(42)

	cases := []struct {
		name string
		got  string
		want string
	}{
		{"decl", Decl(x), "decl int %t1  ; x\n"},
		{"copy", Copy(xv, c), "%t1 = 42\n"},
		{"binary", Binary(tmp, OpMul, xv, c), "%t2 = %t1 * 42\n"},
		{"neg", Neg(tmp, xv), "%t2 = neg %t1\n"},
		{"print", Print(xv), "print int %t1\n"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, tc.got, tc.want)
		}
	}
}

func TestShadowedVariablesPrintDistinctLocations(t *testing.T) {
	table := symbols.NewTable(symbols.Options{})
	table.Declare("v", types.Float)
	outer, _ := table.MakeVariable("v")
	table.Push()
	table.Declare("v", types.Float)
	inner, _ := table.MakeVariable("v")
	if Operand(outer) == Operand(inner) {
		t.Fatalf("shadowed variables share operand %s", Operand(inner))
	}
	if got := Print(table.MakeFloatConst(1.5)); got != "print float 0x3FF8000000000000\n" {
		t.Fatalf("Print = %q", got)
	}
}

func TestOperandRejectsInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for the zero address")
		}
	}()
	Operand(symbols.Address{})
}

func TestBinaryRejectsInvalidOp(t *testing.T) {
	table := symbols.NewTable(symbols.Options{})
	a := table.MakeIntConst(1)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for OpInvalid")
		}
	}()
	Binary(table.MakeTemp(types.Int), OpInvalid, a, a)
}

func TestLines(t *testing.T) {
	if Lines("") != 0 || Lines("a\nb\n") != 2 {
		t.Fatalf("unexpected line counts")
	}
	if OpRem.String() != "%" || Op(99).String() != "?" {
		t.Fatalf("unexpected op text")
	}
}
