package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"clukc/internal/diag"
	"clukc/internal/source"
	"clukc/internal/trace"
)

// SourceExt is the extension of compilable files.
const SourceExt = ".ck"

// ListSourceFiles returns every *.ck file under dir in lexical order.
func ListSourceFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CompileDir compiles every source file under dir in parallel. Results are
// in file order regardless of scheduling. A file that cannot be read yields
// a unit carrying an IOLoadFileError diagnostic; the returned error is
// reserved for walking the directory and for cancellation.
func CompileDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*Unit, error) {
	files, err := ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}
	return CompileFiles(ctx, files, opts)
}

// CompileFiles loads the given paths and compiles them in parallel.
func CompileFiles(ctx context.Context, files []string, opts Options) (*source.FileSet, []*Unit, error) {
	fileSet := source.NewFileSet()
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "compile", trace.CurrentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span.ID())

	// the FileSet is filled up front; workers only read it
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		id, err := fileSet.Load(path)
		if err != nil {
			// an empty placeholder gives the diagnostic a file to point at
			id = fileSet.AddVirtual(path, nil)
			loadErrors[path] = err
		}
		fileIDs[path] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// each goroutine writes only its own index
	results := make([]*Unit, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if loadErr, failed := loadErrors[path]; failed {
				bag := diag.NewBag(opts.MaxDiagnostics)
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: fileIDs[path]}, loadErr.Error()))
				results[i] = &Unit{Path: path, FileID: fileIDs[path], Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}
			results[i] = CompileFile(gctx, fileSet, fileIDs[path], opts)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
