package ast

import "tiger/internal/source"

type IntLit struct {
	metaMark
	At    source.Position
	Raw   string
	Value uint64
}

// StringLit carries the decoded value; Raw is the literal as written.
type StringLit struct {
	metaMark
	At    source.Position
	Raw   string
	Value string
}

type NilLit struct {
	metaMark
	At source.Position
}

type IdentExp struct {
	metaMark
	Name Ident
}

// RefExp reads a field or array element.
type RefExp struct {
	metaMark
	Ref Refer
}

// SeqExp: ( e1; e2; ... ). The empty sequence is "()".
type SeqExp struct {
	metaMark
	Lparen source.Position
	Exps   []Exp
}

// CallExp: Func(args)
type CallExp struct {
	metaMark
	Func Ident
	Args []Exp
}

// LetExp: let Decs in Body end
type LetExp struct {
	metaMark
	Kw   source.Position
	Decs []Dec
	Body []Exp
}

func (e *IntLit) Pos() source.Position    { return e.At }
func (e *StringLit) Pos() source.Position { return e.At }
func (e *NilLit) Pos() source.Position    { return e.At }
func (e *IdentExp) Pos() source.Position  { return e.Name.Pos }
func (e *RefExp) Pos() source.Position    { return e.Ref.Pos() }
func (e *SeqExp) Pos() source.Position    { return e.Lparen }
func (e *CallExp) Pos() source.Position   { return e.Func.Pos }
func (e *LetExp) Pos() source.Position    { return e.Kw }
