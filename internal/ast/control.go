package ast

import "tiger/internal/source"

// Closed control forms.
type (
	// IfThenElse with both branches closed.
	IfThenElse struct {
		closedMark
		Kw   source.Position
		Cond Exp
		Then Closed
		Else Closed
	}
	While struct {
		closedMark
		Kw   source.Position
		Cond Exp
		Body Closed
	}
	For struct {
		closedMark
		Kw     source.Position
		Var    Ident
		Lo, Hi Exp
		Body   Closed
	}
	// Assign stores a Slice. Control forms on the right need parentheses.
	Assign struct {
		closedMark
		Target LValue
		OpPos  source.Position
		Value  Slice
	}
	Break struct {
		closedMark
		Kw source.Position
	}
)

// Open control forms.
type (
	IfThen struct {
		openMark
		Kw   source.Position
		Cond Exp
		Then Exp
	}
	// IfThenElseOpen has a closed then branch and an open else branch.
	IfThenElseOpen struct {
		openMark
		Kw   source.Position
		Cond Exp
		Then Closed
		Else Open
	}
	WhileOpen struct {
		openMark
		Kw   source.Position
		Cond Exp
		Body Open
	}
	ForOpen struct {
		openMark
		Kw     source.Position
		Var    Ident
		Lo, Hi Exp
		Body   Open
	}
)

func (e *IfThenElse) Pos() source.Position     { return e.Kw }
func (e *While) Pos() source.Position          { return e.Kw }
func (e *For) Pos() source.Position            { return e.Kw }
func (e *Assign) Pos() source.Position         { return e.Target.Pos() }
func (e *Break) Pos() source.Position          { return e.Kw }
func (e *IfThen) Pos() source.Position         { return e.Kw }
func (e *IfThenElseOpen) Pos() source.Position { return e.Kw }
func (e *WhileOpen) Pos() source.Position      { return e.Kw }
func (e *ForOpen) Pos() source.Position        { return e.Kw }
