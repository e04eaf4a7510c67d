package diag

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"clukc/internal/source"
)

// goldenLine is one rendered row of FormatGoldenDiagnostics.
type goldenLine struct {
	sev  string
	code string
	path string
	line uint32
	col  uint32
	msg  string
}

func compareGolden(a, b goldenLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.msg, b.msg),
	)
}

// FormatGoldenDiagnostics renders diagnostics one per line, sorted by
// position, as "severity CODE path:line:col message". Notes become rows
// with severity "note" when includeNotes is set. Tests compare against it.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rows := make([]goldenLine, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		if row, ok := goldenRow(fs, d.Primary, d.Severity.Label(), d.Code, d.Message); ok {
			rows = append(rows, row)
		}
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			if row, ok := goldenRow(fs, note.Span, "note", d.Code, note.Msg); ok {
				rows = append(rows, row)
			}
		}
	}
	slices.SortStableFunc(rows, compareGolden)

	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d %s", r.sev, r.code, r.path, r.line, r.col, r.msg)
	}
	return b.String()
}

// goldenRow resolves sp; spans pointing outside fs are skipped.
func goldenRow(fs *source.FileSet, sp source.Span, sev string, code Code, msg string) (goldenLine, bool) {
	if int(sp.File) >= fs.Len() {
		return goldenLine{}, false
	}
	start, _ := fs.Resolve(sp)
	return goldenLine{
		sev:  sev,
		code: code.ID(),
		path: fs.Get(sp.File).Path,
		line: start.Line,
		col:  start.Col,
		msg:  strings.TrimSpace(strings.NewReplacer("\r\n", " ", "\n", " ").Replace(msg)),
	}, true
}
