package lexer_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"clukc/internal/diag"
	"clukc/internal/lexer"
	"clukc/internal/source"
	"clukc/internal/token"
)

// testReporter collects every diagnostic the lexer emits.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func (r *testReporter) messages() []string {
	out := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return out
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ck", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

func kindsOf(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}
	return out
}

func expectTokens(t *testing.T, input string, expected ...token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	expected = append(expected, token.EOF)
	if diff := cmp.Diff(expected, kindsOf(lx.All())); diff != "" {
		t.Fatalf("tokens for %q mismatch (-want +got):\n%s\nerrors: %v", input, diff, reporter.messages())
	}
	if len(reporter.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", input, reporter.messages())
	}
}

func TestDeclarationsAndStatements(t *testing.T) {
	expectTokens(t, "int x = 1;",
		token.KwInt, token.Ident, token.Assign, token.IntLit, token.Semicolon)
	expectTokens(t, "{ float y; print -y * 2.5; }",
		token.LBrace, token.KwFloat, token.Ident, token.Semicolon,
		token.KwPrint, token.Minus, token.Ident, token.Star, token.FloatLit, token.Semicolon,
		token.RBrace)
	expectTokens(t, "c = (a % b) / 'z';",
		token.Ident, token.Assign, token.LParen, token.Ident, token.Percent, token.Ident, token.RParen,
		token.Slash, token.CharLit, token.Semicolon)
	expectTokens(t, "void v; char w;", token.KwVoid, token.Ident, token.Semicolon, token.KwChar, token.Ident, token.Semicolon)
}

func TestCommentsAndWhitespace(t *testing.T) {
	expectTokens(t, "// leading\nint a; // trailing\r\n\t// only comment", token.KwInt, token.Ident, token.Semicolon)
	expectTokens(t, "a / b", token.Ident, token.Slash, token.Ident)
	expectTokens(t, "")
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"0", token.IntLit},
		{"2147483648", token.IntLit},
		{"1.5", token.FloatLit},
		{".5", token.FloatLit},
		{"3.", token.FloatLit},
		{"1e3", token.FloatLit},
		{"2.5E-2", token.FloatLit},
	}
	for _, tc := range cases {
		lx, reporter := makeTestLexer(tc.in)
		tok := lx.Next()
		if tok.Kind != tc.kind || tok.Text != tc.in {
			t.Errorf("%q: got %v %q", tc.in, tok.Kind, tok.Text)
		}
		if len(reporter.diagnostics) != 0 {
			t.Errorf("%q: unexpected diagnostics %v", tc.in, reporter.messages())
		}
	}
}

func TestMalformedNumbers(t *testing.T) {
	for _, in := range []string{"12ab", "1e", "1.2.3", "4e+"} {
		lx, reporter := makeTestLexer(in + ";")
		tok := lx.Next()
		if tok.Kind != token.Invalid || tok.Text != in {
			t.Errorf("%q: got %v %q", in, tok.Kind, tok.Text)
		}
		if diff := cmp.Diff([]diag.Code{diag.LexBadNumber}, reporter.codes()); diff != "" {
			t.Errorf("%q: codes mismatch (-want +got):\n%s", in, diff)
		}
		if next := lx.Next(); next.Kind != token.Semicolon {
			t.Errorf("%q: lexing must resume after the bad literal, got %v", in, next.Kind)
		}
	}
}

func TestCharLiterals(t *testing.T) {
	good := map[string]byte{
		`'A'`: 'A', `'0'`: '0', `'\n'`: '\n', `'\t'`: '\t',
		`'\0'`: 0, `'\\'`: '\\', `'\''`: '\'', `' '`: ' ',
	}
	for in, want := range good {
		lx, reporter := makeTestLexer(in)
		tok := lx.Next()
		if tok.Kind != token.CharLit || tok.Text != in {
			t.Errorf("%s: got %v %q (%v)", in, tok.Kind, tok.Text, reporter.messages())
			continue
		}
		if got, ok := lexer.DecodeChar(tok.Text); !ok || got != want {
			t.Errorf("%s: decoded %d %v, want %d", in, got, ok, want)
		}
	}

	bad := []struct {
		in   string
		code diag.Code
	}{
		{`''`, diag.LexBadChar},
		{`'ab'`, diag.LexBadChar},
		{`'\q'`, diag.LexBadChar},
		{"'é'", diag.LexBadChar},
		{`'a`, diag.LexUnterminated},
		{"'a\n'", diag.LexUnterminated},
	}
	for _, tc := range bad {
		lx, reporter := makeTestLexer(tc.in)
		if tok := lx.Next(); tok.Kind != token.Invalid {
			t.Errorf("%q: expected Invalid, got %v", tc.in, tok.Kind)
		}
		if len(reporter.diagnostics) == 0 || reporter.diagnostics[0].Code != tc.code {
			t.Errorf("%q: expected %v, got %v", tc.in, tc.code, reporter.messages())
		}
	}
}

func TestIdentifiers(t *testing.T) {
	for _, in := range []string{"x", "_tmp", "a1_b2", "caf\u00e9", "cafe\u0301", "жук"} {
		lx, reporter := makeTestLexer(in)
		tok := lx.Next()
		if tok.Kind != token.Ident || tok.Text != in {
			t.Errorf("%q: got %v %q (%v)", in, tok.Kind, tok.Text, reporter.messages())
		}
	}
}

func TestUnknownCharacters(t *testing.T) {
	lx, reporter := makeTestLexer("a $ b §")
	got := kindsOf(lx.All())
	want := []token.Kind{token.Ident, token.Invalid, token.Ident, token.Invalid, token.EOF}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("tokens mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]diag.Code{diag.LexUnknownChar, diag.LexUnknownChar}, reporter.codes()); diff != "" {
		t.Fatalf("codes mismatch (-want +got):\n%s", diff)
	}
}

func TestSpansMatchText(t *testing.T) {
	input := "int  value = 42;"
	lx, _ := makeTestLexer(input)
	for _, tok := range lx.All() {
		if got := input[tok.Span.Start:tok.Span.End]; got != tok.Text {
			t.Fatalf("span %v covers %q, token text %q", tok.Span, got, tok.Text)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("x;")
	if lx.Peek().Kind != token.Ident || lx.Peek().Kind != token.Ident {
		t.Fatalf("Peek must be idempotent")
	}
	if lx.Next().Kind != token.Ident || lx.Next().Kind != token.Semicolon {
		t.Fatalf("Next after Peek returned the wrong sequence")
	}
	for range 3 {
		if lx.Next().Kind != token.EOF {
			t.Fatalf("EOF must be sticky")
		}
	}
}
