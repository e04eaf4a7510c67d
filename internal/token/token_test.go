package token_test

import (
	"testing"

	"clukc/internal/source"
	"clukc/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestClassification(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.FloatLit, token.CharLit} {
		if !tok(k).IsLiteral() || tok(k).IsKeyword() || tok(k).IsPunctOrOp() {
			t.Fatalf("%v should only be a literal", k)
		}
	}
	for _, k := range []token.Kind{token.KwInt, token.KwFloat, token.KwChar, token.KwVoid, token.KwPrint} {
		if !tok(k).IsKeyword() || tok(k).IsIdent() {
			t.Fatalf("%v should be a keyword", k)
		}
	}
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.Assign,
		token.Semicolon, token.LParen, token.RParen, token.LBrace, token.RBrace,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	if !tok(token.Ident).IsIdent() {
		t.Fatalf("Ident must be an identifier")
	}
}

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"int": token.KwInt, "float": token.KwFloat, "char": token.KwChar,
		"void": token.KwVoid, "print": token.KwPrint,
	}
	for word, want := range cases {
		got, ok := token.LookupKeyword(word)
		if !ok || got != want {
			t.Fatalf("LookupKeyword(%q) = %v %v", word, got, ok)
		}
		if !got.IsTypeKeyword() && got != token.KwPrint {
			t.Fatalf("%v should be a type keyword", got)
		}
	}
	for _, word := range []string{"Int", "PRINT", "x", ""} {
		if _, ok := token.LookupKeyword(word); ok {
			t.Fatalf("%q must not be a keyword", word)
		}
	}
}

func TestKindString(t *testing.T) {
	if token.Semicolon.String() != ";" || token.Ident.String() != "identifier" {
		t.Fatalf("unexpected names %q %q", token.Semicolon, token.Ident)
	}
	if token.Kind(250).String() != "unknown" {
		t.Fatalf("out of range kinds must print as unknown")
	}
}
