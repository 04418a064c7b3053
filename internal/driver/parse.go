package driver

import (
	"context"
	"fmt"
	"time"

	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/lexer"
	"tiger/internal/observ"
	"tiger/internal/parser"
	"tiger/internal/source"
	"tiger/internal/token"
	"tiger/internal/trace"
)

// ParseResult is the outcome of parsing one unit.
type ParseResult struct {
	// Path is the file path, relative to the directory for ParseDir.
	Path    string
	FileSet *source.FileSet
	File    *source.File
	// Exp is nil when parsing failed or the result came from the cache.
	Exp     ast.Exp
	Err     *parser.ParseError
	LexErr  error
	LoadErr error
	Bag     *diag.Bag
	Tokens  int
	Timing  observ.Report
	Cached  bool

	cachedFailure bool
}

// OK reports whether the unit parsed without error diagnostics.
func (r *ParseResult) OK() bool {
	return r.Err == nil && r.LexErr == nil && r.LoadErr == nil &&
		!r.cachedFailure && !r.Bag.HasErrors()
}

// Parse loads path and parses it as one unit.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	res := parseFile(ctx, fs.Get(id), opts)
	res.Path, res.FileSet = path, fs
	return res, nil
}

// ParseSource parses content as a virtual file called name.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) *ParseResult {
	fs := source.NewFileSet()
	res := parseFile(ctx, fs.Get(fs.AddVirtual(name, content)), opts)
	res.Path, res.FileSet = name, fs
	return res
}

// countingSource measures the time the parser spends waiting on the lexer.
type countingSource struct {
	lx  *lexer.Lexer
	n   int
	dur time.Duration
}

func (c *countingSource) Next() (token.Token, bool) {
	start := time.Now()
	tok, ok := c.lx.Next()
	c.dur += time.Since(start)
	if ok {
		c.n++
	}
	return tok, ok
}

func (c *countingSource) File() *source.File { return c.lx.File() }

// parseFile runs index, lex and parse over file. It touches no state
// outside file and the returned result.
func parseFile(ctx context.Context, file *source.File, opts Options) *ParseResult {
	ctx, unit := trace.StartSpan(ctx, trace.ScopeUnit, "unit:"+file.Path)
	tracer := trace.FromContext(ctx)
	timer := observ.NewTimer()
	bag := diag.NewBag(opts.maxDiagnostics())
	rep := opts.reporterFor(bag)

	_, span := trace.StartSpan(ctx, trace.ScopePass, "index")
	idx := timer.Begin("index")
	lx := lexer.New(file, lexer.Options{Reporter: rep, CharColumns: opts.CharColumns})
	lines := fmt.Sprintf("%d lines", file.Lines.LineCount())
	timer.End(idx, lines)
	span.End(lines)

	src := &countingSource{lx: lx}
	_, span = trace.StartSpan(ctx, trace.ScopePass, "parse")
	start := time.Now()
	exp, perr := parser.Parse(src, parser.Options{Reporter: rep})
	total := time.Since(start)
	timer.Record("lex", src.dur, fmt.Sprintf("%d tokens", src.n))
	timer.Record("parse", total-src.dur, "")
	trace.Point(tracer, trace.ScopePass, "lex", fmt.Sprintf("%d tokens in %s", src.n, src.dur), unit.ID())
	if perr != nil {
		span.End(perr.Error())
	} else {
		span.End("ok")
	}

	res := &ParseResult{
		File:   file,
		Exp:    exp,
		Err:    perr,
		LexErr: lx.Err(),
		Bag:    bag,
		Tokens: src.n,
		Timing: timer.Report(),
	}
	if res.OK() {
		unit.End("ok")
	} else {
		unit.End("failed")
	}
	return res
}
