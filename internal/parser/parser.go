package parser

import (
	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/source"
	"tiger/internal/token"
)

// TokenSource yields tokens until it reports false. *lexer.Lexer is one.
type TokenSource interface {
	Next() (token.Token, bool)
}

// fileSource is implemented by sources that can resolve offsets, which
// gives end-of-input errors an exact position.
type fileSource interface {
	File() *source.File
}

type Options struct {
	Reporter diag.Reporter // may be nil
}

// Parser holds the state for one compilation unit.
type Parser struct {
	src     TokenSource
	opts    Options
	look    token.Token
	hasLook bool
	atEOF   bool
	last    token.Token // last consumed token
	err     *ParseError
}

// Parse reads one expression, which must cover the whole input.
func Parse(src TokenSource, opts Options) (ast.Exp, *ParseError) {
	p := &Parser{src: src, opts: opts}
	exp := p.parseExp()
	if p.err == nil && !p.eof() {
		p.fail(diag.SynTrailingInput, "after expression")
	}
	if p.err != nil {
		return nil, p.err
	}
	return exp, nil
}

func (p *Parser) peek() token.Token {
	if !p.hasLook {
		tok, ok := p.src.Next()
		p.look, p.atEOF, p.hasLook = tok, !ok, true
	}
	return p.look
}

func (p *Parser) eof() bool {
	p.peek()
	return p.atEOF
}

func (p *Parser) at(k token.Kind) bool {
	tok := p.peek()
	return !p.atEOF && tok.Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.peek()
	if !p.atEOF {
		p.hasLook = false
		p.last = tok
	}
	return tok
}

// accept consumes the next token when it has kind k.
func (p *Parser) accept(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes a token of kind k or records a syntax error.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.fail(diag.SynUnexpectedToken, "", k)
	return token.Token{}, false
}

func (p *Parser) failed() bool {
	return p.err != nil
}

func (p *Parser) parseIdent() (ast.Ident, bool) {
	tok, ok := p.accept(token.Ident)
	if !ok {
		p.fail(diag.SynExpectIdentifier, "", token.Ident)
		return ast.Ident{}, false
	}
	return ast.Ident{Name: tok.Text, Pos: tok.Pos}, true
}
