package parser

import (
	"errors"
	"fmt"
	"strings"

	"tiger/internal/diag"
	"tiger/internal/source"
	"tiger/internal/token"
)

// ErrSyntax is matched by every *ParseError.
var ErrSyntax = errors.New("syntax error")

// ParseError describes the first syntax error of a unit.
type ParseError struct {
	Token    token.Token // offending token; zero when EOF
	Expected []token.Kind
	Msg      string
	EOF      bool
	Pos      source.Position
	Code     diag.Code
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%s", e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrSyntax
}

// fail records the first error and reports it. Later calls are ignored so
// one unit yields one syntax diagnostic.
func (p *Parser) fail(code diag.Code, detail string, expected ...token.Kind) {
	if p.err != nil {
		return
	}
	tok := p.peek()
	perr := &ParseError{Expected: expected, Code: code}
	var span source.Span
	if p.atEOF {
		perr.EOF = true
		perr.Code = diag.SynUnexpectedEOF
		perr.Pos = p.eofPos()
		span = source.Span{File: p.last.Span.File, Start: p.last.Span.End, End: p.last.Span.End}
	} else {
		if tok.Kind == token.Invalid {
			perr.Code = diag.SynInvalidToken
		}
		perr.Token = tok
		perr.Pos = tok.Pos
		span = tok.Span
	}
	perr.Msg = errorMessage(perr, detail)
	p.err = perr

	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(perr.Code, diag.SevError, span, perr.Pos, perr.Msg, nil)
	}
}

func (p *Parser) eofPos() source.Position {
	if fs, ok := p.src.(fileSource); ok && fs.File() != nil && fs.File().Lines.Indexed() {
		return fs.File().Position(p.last.Span.End)
	}
	if !p.last.Pos.IsValid() {
		return source.Position{Line: 1}
	}
	return p.last.Pos
}

func errorMessage(e *ParseError, detail string) string {
	var b strings.Builder
	b.WriteString("syntax error: unexpected ")
	if e.EOF {
		b.WriteString("end of input")
	} else {
		b.WriteString(describe(e.Token))
	}
	if detail != "" {
		b.WriteByte(' ')
		b.WriteString(detail)
	}
	if len(e.Expected) > 0 {
		b.WriteString(", expected ")
		for i, k := range e.Expected {
			switch {
			case i == 0:
			case i == len(e.Expected)-1:
				b.WriteString(" or ")
			default:
				b.WriteString(", ")
			}
			b.WriteString(describeKind(k))
		}
	}
	return b.String()
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.Ident:
		return "identifier " + tok.Text
	case token.IntLit:
		return "integer " + tok.Text
	case token.StringLit:
		return "string " + tok.Text
	case token.Invalid:
		return "wrong token: " + tok.Text
	}
	return describeKind(tok.Kind)
}

func describeKind(k token.Kind) string {
	switch k {
	case token.Ident, token.IntLit, token.StringLit, token.Invalid, token.Comment:
		return k.Spelling()
	}
	return "'" + k.Spelling() + "'"
}
