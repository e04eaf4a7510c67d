package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"clukc/internal/diag"
	"clukc/internal/lexer"
	"clukc/internal/source"
)

func TestPrettyPlain(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("src/prog.ck", []byte("int x;\ny = x + 1;\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaUnresolvedSymbol, source.Span{File: fileID, Start: 7, End: 8}, `undefined name "y"`).
		WithNote(source.Span{File: fileID, Start: 4, End: 5}, "did you mean x?"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	want := strings.Join([]string{
		`src/prog.ck:2:1: error[SEM3001]: undefined name "y"`,
		"   2 | y = x + 1;",
		"     | ^",
		"  note: src/prog.ck:1:5: did you mean x?",
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrettyCaretWidthCountsCells(t *testing.T) {
	fs := source.NewFileSet()
	// the identifier is two wide runes, four cells
	content := "print 世界 + 1;\n"
	fileID := fs.AddVirtual("w.ck", []byte(content))
	start := uint32(strings.Index(content, "世"))
	end := start + uint32(len("世界"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaUnresolvedSymbol, source.Span{File: fileID, Start: start, End: end}, "undefined"))

	var buf bytes.Buffer
	if err := Pretty(&buf, bag, fs, PrettyOpts{}); err != nil {
		t.Fatalf("Pretty: %v", err)
	}
	lines := strings.Split(buf.String(), "\n")
	if got, want := lines[2], "     |       ^~~~"; got != want {
		t.Fatalf("caret line = %q, want %q", got, want)
	}
}

func TestPrettyColorAndDropped(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("c.ck", []byte("$"))
	bag := diag.NewBag(1)
	sp := source.Span{File: fileID, Start: 0, End: 1}
	bag.Add(diag.NewError(diag.LexUnknownChar, sp, "unexpected character '$'"))
	bag.Add(diag.NewError(diag.LexUnknownChar, sp, "dropped"))

	var plain, colored bytes.Buffer
	if err := Pretty(&plain, bag, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	if err := Pretty(&colored, bag, fs, PrettyOpts{Color: true}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output contains escape codes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escape codes: %q", colored.String())
	}
	if !strings.Contains(plain.String(), "... 1 more diagnostics not shown") {
		t.Fatalf("dropped count missing:\n%s", plain.String())
	}
}

func TestPathModes(t *testing.T) {
	if got := formatPath("/home/user/project/src/a.ck", PathModeBasename, ""); got != "a.ck" {
		t.Fatalf("basename = %q", got)
	}
	if got := formatPath("/home/user/project/src/a.ck", PathModeRelative, "/home/user/project"); got != "src/a.ck" {
		t.Fatalf("relative = %q", got)
	}
	if got := formatPath("src/a.ck", PathModeAuto, ""); got != "src/a.ck" {
		t.Fatalf("auto = %q", got)
	}
}

func TestJSON(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("j.ck", []byte("int a;\nfloat a;\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.SemaRedeclared, source.Span{File: fileID, Start: 13, End: 14}, `"a" is already declared in this scope`).
		WithNote(source.Span{File: fileID, Start: 4, End: 5}, "previous declaration is here"))

	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludeNotes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	want := DiagnosticsOutput{
		Count: 1,
		Diagnostics: []DiagnosticJSON{{
			Severity: "warning",
			Code:     "SEM3002",
			Message:  `"a" is already declared in this scope`,
			Location: LocationJSON{File: "j.ck", StartByte: 13, EndByte: 14, StartLine: 2, StartCol: 7, EndLine: 2, EndCol: 8},
			Notes: []NoteJSON{{
				Message:  "previous declaration is here",
				Location: LocationJSON{File: "j.ck", StartByte: 4, EndByte: 5, StartLine: 1, StartCol: 5, EndLine: 1, EndCol: 6},
			}},
		}},
	}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("JSON mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("t.ck", []byte("print 1;"))
	tokens := lexer.New(fs.Get(fileID), lexer.Options{}).All()

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`  1: print           "print" at 1:1-1:6`,
		`  2: int literal     "1" at 1:7-1:8`,
		`  3: ;               ";" at 1:8-1:9`,
		`  4: EOF             at 1:9-1:9`,
		"",
	}, "\n")
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, tokens); err != nil {
		t.Fatal(err)
	}
	var decoded []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil || len(decoded) != 4 || decoded[0].Kind != "print" {
		t.Fatalf("unexpected JSON tokens %v (%v)", decoded, err)
	}
}
