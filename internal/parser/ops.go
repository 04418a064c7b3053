package parser

import (
	"tiger/internal/ast"
	"tiger/internal/diag"
	"tiger/internal/token"
)

// parseSlice parses the top operator tier plus the two constructs that
// only live there:
//
//	slice := id [ exp ] of slice
//	       | id { [id = exp {, id = exp}] }
//	       | sheet
//
// "id [ exp ]" is also how an element read starts, so the decision is
// taken after the closing bracket.
func (p *Parser) parseSlice() ast.Slice {
	if !p.at(token.Ident) {
		return p.parseSheet(nil)
	}
	tok := p.advance()
	name := ast.Ident{Name: tok.Text, Pos: tok.Pos}

	switch {
	case p.at(token.LBrace):
		return p.parseRecord(name)
	case p.at(token.LBracket):
		lb := p.advance()
		index := p.parseExp()
		if p.failed() {
			return nil
		}
		if _, ok := p.expect(token.RBracket); !ok {
			return nil
		}
		if _, ok := p.accept(token.KwOf); ok {
			init := p.parseSlice()
			if p.failed() {
				return nil
			}
			return &ast.ArrayExp{Type: name, Len: index, Init: init}
		}
		first := p.parseRefTail(&ast.IndexRef{Root: name, Lbrack: lb.Pos, Index: index})
		if p.failed() {
			return nil
		}
		return p.parseSheet(first)
	}

	first := p.parseNamed(name)
	if p.failed() {
		return nil
	}
	return p.parseSheet(first)
}

// The tier functions below take an optional first operand that the caller
// already parsed; nil means start from the next token.

// sheet := sheet | piece
func (p *Parser) parseSheet(first ast.Meta) ast.Sheet {
	var x ast.Sheet = p.parsePiece(first)
	if p.failed() {
		return nil
	}
	for p.at(token.Or) {
		op := p.advance()
		y := p.parsePiece(nil)
		if p.failed() {
			return nil
		}
		x = &ast.OrExp{X: x, OpPos: op.Pos, Y: y}
	}
	return x
}

// piece := piece & bit
func (p *Parser) parsePiece(first ast.Meta) ast.Piece {
	var x ast.Piece = p.parseBit(first)
	if p.failed() {
		return nil
	}
	for p.at(token.And) {
		op := p.advance()
		y := p.parseBit(nil)
		if p.failed() {
			return nil
		}
		x = &ast.AndExp{X: x, OpPos: op.Pos, Y: y}
	}
	return x
}

// bit := item [cmp item]; comparisons do not associate.
func (p *Parser) parseBit(first ast.Meta) ast.Bit {
	x := p.parseItem(first)
	if p.failed() {
		return nil
	}
	if !p.atCompare() {
		return x
	}
	op := p.advance()
	y := p.parseItem(nil)
	if p.failed() {
		return nil
	}
	if p.atCompare() {
		p.fail(diag.SynNonAssociative, "(comparison operators do not associate)")
		return nil
	}
	return &ast.CompareExp{Op: op.Kind, X: x, OpPos: op.Pos, Y: y}
}

func (p *Parser) atCompare() bool {
	return p.at(token.Eq) || p.at(token.Neq) ||
		p.at(token.Lt) || p.at(token.Le) ||
		p.at(token.Gt) || p.at(token.Ge)
}

// item := item (+|-) term
func (p *Parser) parseItem(first ast.Meta) ast.Item {
	var x ast.Item = p.parseTerm(first)
	if p.failed() {
		return nil
	}
	for p.at(token.Plus) || p.at(token.Minus) {
		op := p.advance()
		y := p.parseTerm(nil)
		if p.failed() {
			return nil
		}
		x = &ast.AddExp{Op: op.Kind, X: x, OpPos: op.Pos, Y: y}
	}
	return x
}

// term := term (*|/) factor
func (p *Parser) parseTerm(first ast.Meta) ast.Term {
	var x ast.Term = p.parseFactor(first)
	if p.failed() {
		return nil
	}
	for p.at(token.Times) || p.at(token.Divide) {
		op := p.advance()
		y := p.parseFactor(nil)
		if p.failed() {
			return nil
		}
		x = &ast.MulExp{Op: op.Kind, X: x, OpPos: op.Pos, Y: y}
	}
	return x
}

// factor := - meta | meta
func (p *Parser) parseFactor(first ast.Meta) ast.Factor {
	if first != nil {
		return first
	}
	if minus, ok := p.accept(token.Minus); ok {
		m := p.parseMeta()
		if p.failed() {
			return nil
		}
		return &ast.NegExp{Minus: minus.Pos, X: m}
	}
	m := p.parseMeta()
	if p.failed() {
		return nil
	}
	return m
}
