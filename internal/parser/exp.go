package parser

import (
	"fmt"

	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/token"
)

// parseExp parses any expression, closed or open.
//
//	exp := if exp then exp [else exp]
//	     | while exp do exp
//	     | for id := exp to exp do exp
//	     | break
//	     | lvalue := slice
//	     | slice
func (p *Parser) parseExp() ast.Exp {
	switch {
	case p.at(token.KwIf):
		return p.parseIf()
	case p.at(token.KwWhile):
		return p.parseWhile()
	case p.at(token.KwFor):
		return p.parseFor()
	case p.at(token.KwBreak):
		kw := p.advance()
		return &ast.Break{Kw: kw.Pos}
	}
	return p.parseSliceOrAssign()
}

func (p *Parser) parseIf() ast.Exp {
	kw := p.advance()
	cond := p.parseExp()
	if p.failed() {
		return nil
	}
	if _, ok := p.expect(token.KwThen); !ok {
		return nil
	}
	then := p.parseExp()
	if p.failed() {
		return nil
	}
	if !p.at(token.KwElse) {
		return &ast.IfThen{Kw: kw.Pos, Cond: cond, Then: then}
	}

	// The else belongs to this if; a then branch that is still open would
	// have taken it already.
	thenClosed, ok := then.(ast.Closed)
	if !ok {
		p.fail(diag.SynUnexpectedToken, "after open conditional")
		return nil
	}
	p.advance()
	els := p.parseExp()
	if p.failed() {
		return nil
	}
	switch e := els.(type) {
	case ast.Closed:
		return &ast.IfThenElse{Kw: kw.Pos, Cond: cond, Then: thenClosed, Else: e}
	case ast.Open:
		return &ast.IfThenElseOpen{Kw: kw.Pos, Cond: cond, Then: thenClosed, Else: e}
	}
	panic(fmt.Sprintf("parser: expression %T is neither closed nor open", els))
}

func (p *Parser) parseWhile() ast.Exp {
	kw := p.advance()
	cond := p.parseExp()
	if p.failed() {
		return nil
	}
	if _, ok := p.expect(token.KwDo); !ok {
		return nil
	}
	body := p.parseExp()
	if p.failed() {
		return nil
	}
	switch b := body.(type) {
	case ast.Closed:
		return &ast.While{Kw: kw.Pos, Cond: cond, Body: b}
	case ast.Open:
		return &ast.WhileOpen{Kw: kw.Pos, Cond: cond, Body: b}
	}
	panic(fmt.Sprintf("parser: expression %T is neither closed nor open", body))
}

func (p *Parser) parseFor() ast.Exp {
	kw := p.advance()
	v, ok := p.parseIdent()
	if !ok {
		return nil
	}
	if _, ok := p.expect(token.Assign); !ok {
		return nil
	}
	lo := p.parseExp()
	if p.failed() {
		return nil
	}
	if _, ok := p.expect(token.KwTo); !ok {
		return nil
	}
	hi := p.parseExp()
	if p.failed() {
		return nil
	}
	if _, ok := p.expect(token.KwDo); !ok {
		return nil
	}
	body := p.parseExp()
	if p.failed() {
		return nil
	}
	switch b := body.(type) {
	case ast.Closed:
		return &ast.For{Kw: kw.Pos, Var: v, Lo: lo, Hi: hi, Body: b}
	case ast.Open:
		return &ast.ForOpen{Kw: kw.Pos, Var: v, Lo: lo, Hi: hi, Body: b}
	}
	panic(fmt.Sprintf("parser: expression %T is neither closed nor open", body))
}

// parseSliceOrAssign parses a slice and, when ":=" follows an assignable
// slice, the assignment it starts.
func (p *Parser) parseSliceOrAssign() ast.Exp {
	s := p.parseSlice()
	if p.failed() {
		return nil
	}
	if !p.at(token.Assign) {
		return s
	}
	target := toLValue(s)
	if target == nil {
		p.fail(diag.SynUnexpectedToken, "after non-assignable expression")
		return nil
	}
	op := p.advance()
	value := p.parseSlice()
	if p.failed() {
		return nil
	}
	return &ast.Assign{Target: target, OpPos: op.Pos, Value: value}
}

func toLValue(s ast.Slice) ast.LValue {
	switch e := s.(type) {
	case *ast.IdentExp:
		return &ast.IdentLV{Name: e.Name}
	case *ast.RefExp:
		return e.Ref
	}
	return nil
}
