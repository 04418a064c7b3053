package ast

import (
	"tiger/internal/source"
	"tiger/internal/token"
)

// ArrayExp: Type [Len] of Init
type ArrayExp struct {
	sliceMark
	Type Ident
	Len  Exp
	Init Slice
}

// FieldInit is one "name = value" of a record literal.
type FieldInit struct {
	Name  Ident
	Value Exp
}

// RecordExp: Type { f1 = e1, ... }
type RecordExp struct {
	sliceMark
	Type   Ident
	Fields []FieldInit
}

// OrExp: X | Y
type OrExp struct {
	sheetMark
	X     Sheet
	OpPos source.Position
	Y     Piece
}

// AndExp: X & Y
type AndExp struct {
	pieceMark
	X     Piece
	OpPos source.Position
	Y     Bit
}

// CompareExp: X op Y with op one of = <> < <= > >=. Comparisons do not
// chain, hence both operands are Items.
type CompareExp struct {
	bitMark
	Op    token.Kind
	X     Item
	OpPos source.Position
	Y     Item
}

// AddExp: X + Y or X - Y
type AddExp struct {
	itemMark
	Op    token.Kind
	X     Item
	OpPos source.Position
	Y     Term
}

// MulExp: X * Y or X / Y
type MulExp struct {
	termMark
	Op    token.Kind
	X     Term
	OpPos source.Position
	Y     Factor
}

// NegExp: -X. Negation does not repeat: X is a Meta.
type NegExp struct {
	factorMark
	Minus source.Position
	X     Meta
}

func (e *ArrayExp) Pos() source.Position   { return e.Type.Pos }
func (e *RecordExp) Pos() source.Position  { return e.Type.Pos }
func (e *OrExp) Pos() source.Position      { return e.X.Pos() }
func (e *AndExp) Pos() source.Position     { return e.X.Pos() }
func (e *CompareExp) Pos() source.Position { return e.X.Pos() }
func (e *AddExp) Pos() source.Position     { return e.X.Pos() }
func (e *MulExp) Pos() source.Position     { return e.X.Pos() }
func (e *NegExp) Pos() source.Position     { return e.Minus }
