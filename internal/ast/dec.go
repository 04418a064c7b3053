package ast

import "tiger/internal/source"

// Field is a "name : type" pair in a record type or parameter list.
type Field struct {
	Name Ident
	Type Ident
}

// TypeDec: type Name = Ty
type TypeDec struct {
	decMark
	Kw   source.Position
	Name Ident
	Ty   Ty
}

// VarDec: var Name [: Type] := Init
type VarDec struct {
	decMark
	Kw   source.Position
	Name Ident
	Type *Ident // nil when the type is inferred
	Init Exp
}

// FunDec: function Name(Params) [: Result] = Body
type FunDec struct {
	decMark
	Kw     source.Position
	Name   Ident
	Params []Field
	Result *Ident // nil for procedures
	Body   Exp
}

func (d *TypeDec) Pos() source.Position { return d.Kw }
func (d *VarDec) Pos() source.Position  { return d.Kw }
func (d *FunDec) Pos() source.Position  { return d.Kw }

// NameTy aliases another type.
type NameTy struct {
	tyMark
	Name Ident
}

// RecordTy: { f1 : t1, ... }
type RecordTy struct {
	tyMark
	Lbrace source.Position
	Fields []Field
}

// ArrayTy: array of Elem
type ArrayTy struct {
	tyMark
	Kw   source.Position
	Elem Ident
}

func (t *NameTy) Pos() source.Position   { return t.Name.Pos }
func (t *RecordTy) Pos() source.Position { return t.Lbrace }
func (t *ArrayTy) Pos() source.Position  { return t.Kw }
