package lexer

import (
	"tiger/internal/diag"
	"tiger/internal/source"
)

// skipTrivia consumes whitespace and block comments before the next token.
// Comments do not nest: the first "*/" closes the comment, and a '*' not
// followed by '/' is ordinary comment text. When a comment runs to the end
// of input, its span is returned with ok set so Next can hand out an
// Invalid token for it.
func (lx *Lexer) skipTrivia() (source.Span, bool) {
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if isSpace(b) {
			lx.cursor.Bump()
			continue
		}
		if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '/' && b1 == '*' {
			if sp, closed := lx.skipBlockComment(); !closed {
				return sp, true
			}
			continue
		}
		break
	}
	return source.Span{}, false
}

func (lx *Lexer) skipBlockComment() (source.Span, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '/'
	lx.cursor.Bump() // '*'
	for !lx.cursor.EOF() {
		if lx.try2('*', '/') {
			return lx.cursor.SpanFrom(start), true
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	end := source.Span{File: sp.File, Start: sp.End, End: sp.End}
	diag.ReportError(lx.opts.Reporter, diag.LexUnterminatedBlockComment, sp, lx.position(sp.Start), "unterminated comment").
		WithNote(end, lx.position(end.Start), "comment still open at end of input").
		Emit()
	return sp, false
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
