package driver

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"clukc/internal/diag"
	"clukc/internal/lexer"
	"clukc/internal/parser"
	"clukc/internal/source"
	"clukc/internal/symbols"
	"clukc/internal/tac"
	"clukc/internal/trace"
)

// CompileFile compiles one loaded file. Every call builds its own symbol
// table and address arena, so calls for different files may run in
// parallel. The FileSet is only read.
func CompileFile(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) *Unit {
	file := fs.Get(fileID)
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeUnit, "unit:"+file.Path, trace.CurrentSpan(ctx))
	defer span.End("")

	unit := &Unit{Path: file.Path, FileID: fileID}

	started := time.Now()
	emit(opts.Progress, Event{File: file.Path, Stage: StageLoad, Status: StatusWorking})
	key := unitKey(file.Content, opts)
	if cached, ok := loadCached(opts.Cache, key, fileID, opts.MaxDiagnostics); ok {
		cached.Path = file.Path
		span.WithExtra("cached", "true")
		emit(opts.Progress, Event{File: file.Path, Stage: StageEmit, Status: StatusCached, Elapsed: time.Since(started)})
		return cached
	}
	emit(opts.Progress, Event{File: file.Path, Stage: StageLoad, Status: StatusDone, Elapsed: time.Since(started)})

	unit.Bag = diag.NewBag(opts.MaxDiagnostics)
	reporter := newUnitReporter(unit.Bag)

	started = time.Now()
	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: StatusWorking})
	parseSpan := trace.Begin(tracer, trace.ScopePass, "parse", span.ID())
	table := symbols.NewTable(symbols.Options{
		Hints:  symbols.Hints{Addresses: uint(len(file.Content) / 2)},
		Tracer: tracer,
	})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	res := parser.ParseFile(lx, table, parser.Options{
		MaxErrors: opts.maxErrors(),
		Reporter:  reporter,
		Redeclare: opts.Redeclare,
	})
	parseSpan.WithExtra("errors", strconv.FormatUint(uint64(res.Errors), 10)).End("")
	emit(opts.Progress, Event{File: file.Path, Stage: StageParse, Status: statusFor(unit.Bag), Elapsed: time.Since(started)})

	started = time.Now()
	emit(opts.Progress, Event{File: file.Path, Stage: StageEmit, Status: StatusWorking})
	emitSpan := trace.Begin(tracer, trace.ScopePass, "emit", span.ID())
	unit.Code = res.Program.Code
	unit.Globals = globalsOf(table)
	unit.Stats = Stats{
		Temps:        table.Arena().Temps(),
		Addresses:    table.Arena().Len(),
		MaxDepth:     table.MaxDepth(),
		Instructions: tac.Lines(unit.Code),
	}
	unit.Bag.Sort()
	emitSpan.WithExtra("instructions", strconv.Itoa(unit.Stats.Instructions)).End("")

	if err := storeCached(opts.Cache, key, unit); err != nil {
		diag.ReportWarning(reporter, diag.IOCacheError, source.Span{File: fileID}, fmt.Sprintf("cannot write cache entry: %v", err)).Emit()
	}
	emit(opts.Progress, Event{File: file.Path, Stage: StageEmit, Status: statusFor(unit.Bag), Elapsed: time.Since(started)})
	return unit
}

// CompileSource compiles in-memory content, for tests and stdin.
func CompileSource(ctx context.Context, name string, content []byte, opts Options) (*source.FileSet, *Unit) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return fs, CompileFile(ctx, fs, id, opts)
}

// newUnitReporter collapses repeats: after a resync the lexer and the
// parser may both report the same problem at the same span.
func newUnitReporter(bag *diag.Bag) diag.Reporter {
	return diag.NewDedupReporter(diag.BagReporter{Bag: bag})
}

func globalsOf(table *symbols.Table) []Global {
	syms := table.Scope(0)
	out := make([]Global, 0, len(syms))
	for _, sym := range syms {
		out = append(out, Global{Name: sym.Name, Type: sym.Type.String(), Location: sym.Location.Name()})
	}
	return out
}

func statusFor(bag *diag.Bag) Status {
	if bag.HasErrors() {
		return StatusError
	}
	return StatusDone
}
