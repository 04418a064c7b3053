package parser

import (
	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/token"
)

// meta := int | string | nil | ( expseq ) | let decs in expseq end
//       | id | id ( args ) | lvalue-ref
func (p *Parser) parseMeta() ast.Meta {
	tok := p.peek()
	if p.atEOF {
		p.fail(diag.SynUnexpectedEOF, "", metaStarters...)
		return nil
	}
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return &ast.IntLit{At: tok.Pos, Raw: tok.Text, Value: tok.Int}
	case token.StringLit:
		p.advance()
		return &ast.StringLit{At: tok.Pos, Raw: tok.Text, Value: tok.Str}
	case token.KwNil:
		p.advance()
		return &ast.NilLit{At: tok.Pos}
	case token.LParen:
		return p.parseSeq()
	case token.KwLet:
		return p.parseLet()
	case token.Ident:
		p.advance()
		return p.parseNamed(ast.Ident{Name: tok.Text, Pos: tok.Pos})
	}
	p.fail(diag.SynUnexpectedToken, "", metaStarters...)
	return nil
}

var metaStarters = []token.Kind{token.Ident, token.IntLit, token.StringLit, token.KwNil, token.LParen, token.KwLet}

// parseNamed continues after an identifier that was already consumed.
func (p *Parser) parseNamed(name ast.Ident) ast.Meta {
	switch {
	case p.at(token.LParen):
		return p.parseCall(name)
	case p.at(token.Dot):
		dot := p.advance()
		field, ok := p.parseIdent()
		if !ok {
			return nil
		}
		return p.parseRefTail(&ast.FieldRef{Root: name, Dot: dot.Pos, Field: field})
	case p.at(token.LBracket):
		lb := p.advance()
		index := p.parseExp()
		if p.failed() {
			return nil
		}
		if _, ok := p.expect(token.RBracket); !ok {
			return nil
		}
		return p.parseRefTail(&ast.IndexRef{Root: name, Lbrack: lb.Pos, Index: index})
	}
	return &ast.IdentExp{Name: name}
}

// parseRefTail extends ref with any further .field or [index] links.
func (p *Parser) parseRefTail(ref ast.Refer) ast.Meta {
	for {
		switch {
		case p.at(token.Dot):
			dot := p.advance()
			field, ok := p.parseIdent()
			if !ok {
				return nil
			}
			ref = &ast.ChainFieldRef{Base: ref, Dot: dot.Pos, Field: field}
		case p.at(token.LBracket):
			lb := p.advance()
			index := p.parseExp()
			if p.failed() {
				return nil
			}
			if _, ok := p.expect(token.RBracket); !ok {
				return nil
			}
			ref = &ast.ChainIndexRef{Base: ref, Lbrack: lb.Pos, Index: index}
		default:
			return &ast.RefExp{Ref: ref}
		}
	}
}

func (p *Parser) parseCall(name ast.Ident) ast.Meta {
	p.advance() // (
	args, ok := p.parseList(token.Comma, token.RParen)
	if !ok {
		return nil
	}
	return &ast.CallExp{Func: name, Args: args}
}

func (p *Parser) parseSeq() ast.Meta {
	lp := p.advance()
	exps, ok := p.parseList(token.Semicolon, token.RParen)
	if !ok {
		return nil
	}
	return &ast.SeqExp{Lparen: lp.Pos, Exps: exps}
}

// parseList parses [exp {sep exp}] close, consuming close.
func (p *Parser) parseList(sep, closing token.Kind) ([]ast.Exp, bool) {
	var out []ast.Exp
	if _, ok := p.accept(closing); ok {
		return out, true
	}
	for {
		e := p.parseExp()
		if p.failed() {
			return nil, false
		}
		out = append(out, e)
		if _, ok := p.accept(sep); ok {
			continue
		}
		if _, ok := p.accept(closing); ok {
			return out, true
		}
		p.fail(diag.SynUnexpectedToken, "", sep, closing)
		return nil, false
	}
}

func (p *Parser) parseRecord(name ast.Ident) ast.Slice {
	p.advance() // {
	rec := &ast.RecordExp{Type: name}
	if _, ok := p.accept(token.RBrace); ok {
		return rec
	}
	for {
		field, ok := p.parseIdent()
		if !ok {
			return nil
		}
		if _, ok := p.expect(token.Eq); !ok {
			return nil
		}
		v := p.parseExp()
		if p.failed() {
			return nil
		}
		rec.Fields = append(rec.Fields, ast.FieldInit{Name: field, Value: v})
		if _, ok := p.accept(token.Comma); ok {
			continue
		}
		if _, ok := p.accept(token.RBrace); ok {
			return rec
		}
		p.fail(diag.SynUnexpectedToken, "", token.Comma, token.RBrace)
		return nil
	}
}

// let decs in [exp {; exp}] end
func (p *Parser) parseLet() ast.Meta {
	kw := p.advance()
	decs, ok := p.parseDecs()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.KwIn); !ok {
		return nil
	}
	body, ok := p.parseList(token.Semicolon, token.KwEnd)
	if !ok {
		return nil
	}
	return &ast.LetExp{Kw: kw.Pos, Decs: decs, Body: body}
}
