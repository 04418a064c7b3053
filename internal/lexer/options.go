package lexer

import (
	"tiger/internal/diag"
	"tiger/internal/source"
)

type Options struct {
	Reporter diag.Reporter // may be nil: diagnostics are dropped, lexing goes on
	// CharColumns stamps tokens with code-point columns instead of byte columns.
	CharColumns bool
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter == nil {
		return
	}
	lx.opts.Reporter.Report(code, diag.SevError, sp, lx.position(sp.Start), msg, nil)
}

func (lx *Lexer) position(off uint32) source.Position {
	pos := lx.file.Lines.PositionOf(off)
	if lx.opts.CharColumns {
		pos.Col = lx.file.Lines.CharColumn(lx.file.Content, off)
	}
	return pos
}
