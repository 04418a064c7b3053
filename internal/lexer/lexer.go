package lexer

import (
	"errors"
	"iter"

	"tiger/internal/source"
	"tiger/internal/token"
)

// ErrIntOverflow is returned by Err after an integer literal did not fit
// 64 bits. The token stream ends at that literal.
var ErrIntOverflow = errors.New("integer literal overflows uint64")

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead
	err    error
}

// New builds a lexer over file. The file's line index is rebuilt from its
// content so every position the lexer stamps belongs to this unit.
func New(file *source.File, opts Options) *Lexer {
	file.Lines.Index(file.Content)
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token. Comments and whitespace are
// skipped. ok is false once the input is exhausted or a fatal lexical
// error stopped the stream; every later call returns false as well.
func (lx *Lexer) Next() (tok token.Token, ok bool) {
	if lx.look != nil {
		tok = *lx.look
		lx.look = nil
		return tok, true
	}
	if lx.err != nil {
		return token.Token{}, false
	}

	if sp, bad := lx.skipTrivia(); bad {
		tok = lx.invalid(sp)
		tok.Pos = lx.position(sp.Start)
		return tok, true
	}
	if lx.cursor.EOF() {
		return token.Token{}, false
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanOperatorOrPunct()
	}
	tok.Pos = lx.position(tok.Span.Start)
	return tok, true
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() (token.Token, bool) {
	if lx.look != nil {
		return *lx.look, true
	}
	t, ok := lx.Next()
	if ok {
		lx.look = &t
	}
	return t, ok
}

// All yields the remaining tokens lazily.
func (lx *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok, ok := lx.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Err reports the fatal condition that ended the stream early, if any.
func (lx *Lexer) Err() error {
	return lx.err
}

// File returns the unit being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

// Tokenize scans the whole file eagerly.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var toks []token.Token
	for tok := range lx.All() {
		toks = append(toks, tok)
	}
	return toks
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

func (lx *Lexer) invalid(sp source.Span) token.Token {
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
