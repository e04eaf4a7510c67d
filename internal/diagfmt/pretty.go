package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"clukc/internal/diag"
	"clukc/internal/source"
)

type palette struct {
	err, warn, info, note, loc, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgBlue, color.Bold),
		loc:    color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.loc, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty writes the diagnostics of bag in the order they are stored (call
// bag.Sort first for a stable order). Each one is printed as
//
//	<path>:<line>:<col>: <severity>[<CODE>]: <message>
//
// followed by the source line and a caret underline of the primary span.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	if bag == nil || fs == nil {
		return nil
	}
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		if err := prettyOne(w, d, fs, opts, pal); err != nil {
			return err
		}
	}
	if n := bag.Dropped(); n > 0 {
		if _, err := fmt.Fprintf(w, "... %d more diagnostics not shown\n", n); err != nil {
			return err
		}
	}
	return nil
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) error {
	var sb strings.Builder
	sb.WriteString(pal.loc.Sprint(location(fs, d.Primary, opts)))
	sb.WriteString(": ")
	sb.WriteString(pal.severity(d.Severity).Sprintf("%s[%s]", d.Severity.Label(), d.Code.ID()))
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	sb.WriteByte('\n')
	writeSnippet(&sb, fs, d.Primary, pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			sb.WriteString("  ")
			sb.WriteString(pal.note.Sprint("note"))
			sb.WriteString(": ")
			sb.WriteString(location(fs, n.Span, opts))
			sb.WriteString(": ")
			sb.WriteString(n.Msg)
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func location(fs *source.FileSet, sp source.Span, opts PrettyOpts) string {
	if int(sp.File) >= fs.Len() {
		return "<unknown>"
	}
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f.Path, opts.PathMode, opts.BaseDir), start.Line, start.Col)
}

// writeSnippet prints the first line of sp with a caret underline. Widths
// are measured in terminal cells so wide runes stay aligned.
func writeSnippet(sb *strings.Builder, fs *source.FileSet, sp source.Span, pal palette) {
	if int(sp.File) >= fs.Len() {
		return
	}
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)

	from := min(int(start.Col)-1, len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col)-1, len(line))
	}
	to = max(to, from)

	gutter := fmt.Sprintf("%4d | ", start.Line)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	sb.WriteString(pal.gutter.Sprint(gutter))
	sb.WriteString(line)
	sb.WriteByte('\n')

	sb.WriteString(pal.gutter.Sprint(blank))
	sb.WriteString(padding(line[:from]))
	width := max(runewidth.StringWidth(line[from:to]), 1)
	sb.WriteString(pal.caret.Sprint("^" + strings.Repeat("~", width-1)))
	sb.WriteByte('\n')
}

// padding blanks out prefix cell by cell, keeping tabs so the caret lines up
// with the tab-expanded source line.
func padding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
