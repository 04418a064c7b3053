package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tiger/internal/diag"
	"tiger/internal/source"
	"tiger/internal/trace"
)

// SourceExt is the extension of Tiger sources.
const SourceExt = ".tig"

// ListSources returns the .tig files under dir as slash-separated paths
// relative to dir, sorted. A pattern in exclude matches either the
// relative path or the base name.
func ListSources(dir string, exclude []string) ([]string, error) {
	for _, pat := range exclude {
		if _, err := path.Match(pat, ""); err != nil {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pat, err)
		}
	}
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, SourceExt) {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if excluded(rel, exclude) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

func excluded(rel string, patterns []string) bool {
	for _, pat := range patterns {
		if ok, _ := path.Match(pat, rel); ok {
			return true
		}
		if ok, _ := path.Match(pat, path.Base(rel)); ok {
			return true
		}
	}
	return false
}

// ParseDir parses every source under dir in parallel. Results follow the
// sorted file order. Files that fail to load get a result whose Bag holds an
// IO diagnostic; the returned error is reserved for walk failures and
// cancellation.
func ParseDir(ctx context.Context, dir string, opts Options) (*source.FileSet, []*ParseResult, error) {
	ctx, span := trace.StartSpan(ctx, trace.ScopeDriver, "parse-dir")
	defer span.End(dir)

	files, err := ListSources(dir, opts.Exclude)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	// FileSet is not safe for concurrent Add, so every file is loaded up
	// front; workers only touch their own File afterwards.
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, rel := range files {
		ids[i], loadErrs[i] = fileSet.Load(filepath.Join(dir, filepath.FromSlash(rel)))
		if loadErrs[i] != nil {
			ids[i] = fileSet.AddVirtual(filepath.Join(dir, filepath.FromSlash(rel)), nil)
		}
		opts.emit(Event{File: rel, Stage: StageLoad, Status: StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*ParseResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			file := fileSet.Get(ids[i])
			unitOpts := opts
			if opts.UnitReporter != nil {
				unitOpts.Reporter = opts.UnitReporter(rel)
			}

			var res *ParseResult
			if loadErrs[i] != nil {
				res = loadFailure(file, loadErrs[i], unitOpts)
			} else {
				opts.emit(Event{File: rel, Stage: StageParse, Status: StatusWorking})
				res = parseCached(gctx, file, unitOpts)
			}
			res.Path, res.FileSet = rel, fileSet
			results[i] = res

			status := StatusDone
			switch {
			case !res.OK():
				status = StatusError
			case res.Cached:
				status = StatusCached
			}
			opts.emit(Event{File: rel, Stage: StageParse, Status: status, Elapsed: time.Since(start)})
			return nil
		})
	}
	err = g.Wait()
	opts.emit(Event{Stage: StageParse, Status: StatusDone})
	return fileSet, results, err
}

func loadFailure(file *source.File, err error, opts Options) *ParseResult {
	bag := diag.NewBag(opts.maxDiagnostics())
	diag.ReportError(opts.reporterFor(bag), diag.IOLoadFileError,
		source.Span{File: file.ID}, source.Position{Line: 1},
		"failed to load file: "+err.Error(),
	).Emit()
	return &ParseResult{File: file, Bag: bag, LoadErr: err}
}

func parseCached(ctx context.Context, file *source.File, opts Options) *ParseResult {
	if opts.Cache == nil {
		return parseFile(ctx, file, opts)
	}
	key := opts.Cache.Key(file, opts)
	var payload DiskPayload
	if ok, err := opts.Cache.Get(key, &payload); err == nil && ok && payload.ContentHash == file.Hash {
		trace.Point(trace.FromContext(ctx), trace.ScopeUnit, "cache-hit", file.Path, trace.ParentSpan(ctx))
		return replay(file, &payload, opts)
	}
	res := parseFile(ctx, file, opts)
	res.Path = file.Path
	if err := opts.Cache.Put(key, payloadFromResult(res)); err != nil {
		trace.Point(trace.FromContext(ctx), trace.ScopeUnit, "cache-put-failed", err.Error(), trace.ParentSpan(ctx))
	}
	return res
}
