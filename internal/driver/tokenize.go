package driver

import (
	"context"
	"fmt"

	"tiger/internal/diag"
	"tiger/internal/lexer"
	"tiger/internal/source"
	"tiger/internal/token"
	"tiger/internal/trace"
)

// TokenizeResult is the token stream of one unit.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	// Err is set when scanning stopped early (integer overflow).
	Err error
}

// Tokenize loads path and scans it to the end.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tokenizeFile(ctx, fs, fs.Get(id), opts), nil
}

// TokenizeSource scans content as a virtual file called name.
func TokenizeSource(ctx context.Context, name string, content []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenizeFile(ctx, fs, fs.Get(fs.AddVirtual(name, content)), opts)
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *TokenizeResult {
	_, span := trace.StartSpan(ctx, trace.ScopePass, "lex")
	bag := diag.NewBag(opts.maxDiagnostics())
	lx := lexer.New(file, lexer.Options{Reporter: opts.reporterFor(bag), CharColumns: opts.CharColumns})

	var toks []token.Token
	for tok := range lx.All() {
		toks = append(toks, tok)
	}
	span.WithExtra("tokens", fmt.Sprint(len(toks))).End(file.Path)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  toks,
		Bag:     bag,
		Err:     lx.Err(),
	}
}
