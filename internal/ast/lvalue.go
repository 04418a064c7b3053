package ast

import "tiger/internal/source"

// IdentLV is a plain variable target.
type IdentLV struct {
	lvalueMark
	Name Ident
}

// FieldRef: Root.Field
type FieldRef struct {
	referMark
	Root  Ident
	Dot   source.Position
	Field Ident
}

// ChainFieldRef: Base.Field where Base is itself a reference.
type ChainFieldRef struct {
	referMark
	Base  Refer
	Dot   source.Position
	Field Ident
}

// IndexRef: Root[Index]
type IndexRef struct {
	referMark
	Root   Ident
	Lbrack source.Position
	Index  Exp
}

// ChainIndexRef: Base[Index]
type ChainIndexRef struct {
	referMark
	Base   Refer
	Lbrack source.Position
	Index  Exp
}

func (l *IdentLV) Pos() source.Position       { return l.Name.Pos }
func (r *FieldRef) Pos() source.Position      { return r.Root.Pos }
func (r *ChainFieldRef) Pos() source.Position { return r.Base.Pos() }
func (r *IndexRef) Pos() source.Position      { return r.Root.Pos }
func (r *ChainIndexRef) Pos() source.Position { return r.Base.Pos() }
