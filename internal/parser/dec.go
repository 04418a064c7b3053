package parser

import (
	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/token"
)

func (p *Parser) parseDecs() ([]ast.Dec, bool) {
	var decs []ast.Dec
	for {
		var d ast.Dec
		switch {
		case p.at(token.KwType):
			d = p.parseTypeDec()
		case p.at(token.KwVar):
			d = p.parseVarDec()
		case p.at(token.KwFunction):
			d = p.parseFunDec()
		default:
			return decs, true
		}
		if p.failed() {
			return nil, false
		}
		decs = append(decs, d)
	}
}

// type id = ty
func (p *Parser) parseTypeDec() ast.Dec {
	kw := p.advance()
	name, ok := p.parseIdent()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.Eq); !ok {
		return nil
	}
	ty := p.parseTy()
	if p.failed() {
		return nil
	}
	return &ast.TypeDec{Kw: kw.Pos, Name: name, Ty: ty}
}

// ty := id | { tyfields } | array of id
func (p *Parser) parseTy() ast.Ty {
	switch {
	case p.at(token.Ident):
		name, _ := p.parseIdent()
		return &ast.NameTy{Name: name}
	case p.at(token.LBrace):
		lb := p.advance()
		fields, ok := p.parseTyFields(token.RBrace)
		if !ok {
			return nil
		}
		return &ast.RecordTy{Lbrace: lb.Pos, Fields: fields}
	case p.at(token.KwArray):
		kw := p.advance()
		if _, ok := p.expect(token.KwOf); !ok {
			return nil
		}
		elem, ok := p.parseIdent()
		if !ok {
			return nil
		}
		return &ast.ArrayTy{Kw: kw.Pos, Elem: elem}
	}
	p.fail(diag.SynUnexpectedToken, "", token.Ident, token.LBrace, token.KwArray)
	return nil
}

// tyfields := [id : id {, id : id}] followed by closing, which is consumed.
func (p *Parser) parseTyFields(closing token.Kind) ([]ast.Field, bool) {
	var fields []ast.Field
	if _, ok := p.accept(closing); ok {
		return fields, true
	}
	for {
		name, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.Colon); !ok {
			return nil, false
		}
		typ, ok := p.parseIdent()
		if !ok {
			return nil, false
		}
		fields = append(fields, ast.Field{Name: name, Type: typ})
		if _, ok := p.accept(token.Comma); ok {
			continue
		}
		if _, ok := p.accept(closing); ok {
			return fields, true
		}
		p.fail(diag.SynUnexpectedToken, "", token.Comma, closing)
		return nil, false
	}
}

// var id [: id] := exp
func (p *Parser) parseVarDec() ast.Dec {
	kw := p.advance()
	name, ok := p.parseIdent()
	if !ok {
		return nil
	}
	d := &ast.VarDec{Kw: kw.Pos, Name: name}
	if _, ok := p.accept(token.Colon); ok {
		typ, ok := p.parseIdent()
		if !ok {
			return nil
		}
		d.Type = &typ
	}
	if _, ok := p.expect(token.Assign); !ok {
		return nil
	}
	d.Init = p.parseExp()
	if p.failed() {
		return nil
	}
	return d
}

// function id ( tyfields ) [: id] = exp
func (p *Parser) parseFunDec() ast.Dec {
	kw := p.advance()
	name, ok := p.parseIdent()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.LParen); !ok {
		return nil
	}
	params, ok := p.parseTyFields(token.RParen)
	if !ok {
		return nil
	}
	d := &ast.FunDec{Kw: kw.Pos, Name: name, Params: params}
	if _, ok := p.accept(token.Colon); ok {
		res, ok := p.parseIdent()
		if !ok {
			return nil
		}
		d.Result = &res
	}
	if _, ok := p.expect(token.Eq); !ok {
		return nil
	}
	d.Body = p.parseExp()
	if p.failed() {
		return nil
	}
	return d
}
