package parser

import (
	"fmt"
	"strings"
	"testing"

	"clukc/internal/diag"
	"clukc/internal/lexer"
	"clukc/internal/source"
	"clukc/internal/symbols"
)

type parsed struct {
	res   Result
	bag   *diag.Bag
	fs    *source.FileSet
	table *symbols.Table
}

func parseSource(t *testing.T, input string, opts Options) parsed {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.ck", []byte(input))
	bag := diag.NewBag(50)
	opts.Reporter = diag.BagReporter{Bag: bag}

	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: opts.Reporter})
	table := symbols.NewTable(symbols.Options{})
	res := ParseFile(lx, table, opts)
	if table.Depth() != 1 {
		t.Fatalf("scope depth after parse = %d, want 1", table.Depth())
	}
	return parsed{res: res, bag: bag, fs: fs, table: table}
}

func (p parsed) golden() string {
	return diag.FormatGoldenDiagnostics(p.bag.Items(), p.fs, true)
}

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}
