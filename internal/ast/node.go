package ast

import "tiger/internal/source"

// Node is implemented by every tree node.
type Node interface {
	Pos() source.Position
	node()
}

// Ident is a name with the position it was written at.
type Ident struct {
	Name string
	Pos  source.Position
}

type (
	// Exp is any expression.
	Exp interface {
		Node
		expNode()
	}
	// Closed is an expression in which every if has an else.
	Closed interface {
		Exp
		closedNode()
	}
	// Open is an expression whose rightmost conditional lacks an else.
	Open interface {
		Exp
		openNode()
	}

	Slice interface {
		Closed
		sliceNode()
	}
	Sheet interface {
		Slice
		sheetNode()
	}
	Piece interface {
		Sheet
		pieceNode()
	}
	Bit interface {
		Piece
		bitNode()
	}
	Item interface {
		Bit
		itemNode()
	}
	Term interface {
		Item
		termNode()
	}
	Factor interface {
		Term
		factorNode()
	}
	Meta interface {
		Factor
		metaNode()
	}

	// Dec is a declaration inside let.
	Dec interface {
		Node
		decNode()
	}
	// Ty is the right-hand side of a type declaration.
	Ty interface {
		Node
		tyNode()
	}
	// LValue is an assignable location.
	LValue interface {
		Node
		lvalueNode()
	}
	// Refer is a field or element access, rooted at a name or chained.
	Refer interface {
		LValue
		referNode()
	}
)

// Embedded markers. Each tier embeds the one above it so a node picks up
// all the interfaces it belongs to.
type (
	expMark    struct{}
	closedMark struct{ expMark }
	openMark   struct{ expMark }
	sliceMark  struct{ closedMark }
	sheetMark  struct{ sliceMark }
	pieceMark  struct{ sheetMark }
	bitMark    struct{ pieceMark }
	itemMark   struct{ bitMark }
	termMark   struct{ itemMark }
	factorMark struct{ termMark }
	metaMark   struct{ factorMark }

	decMark    struct{}
	tyMark     struct{}
	lvalueMark struct{}
	referMark  struct{ lvalueMark }
)

func (expMark) node()          {}
func (expMark) expNode()       {}
func (closedMark) closedNode() {}
func (openMark) openNode()     {}
func (sliceMark) sliceNode()   {}
func (sheetMark) sheetNode()   {}
func (pieceMark) pieceNode()   {}
func (bitMark) bitNode()       {}
func (itemMark) itemNode()     {}
func (termMark) termNode()     {}
func (factorMark) factorNode() {}
func (metaMark) metaNode()     {}
func (decMark) node()          {}
func (decMark) decNode()       {}
func (tyMark) node()           {}
func (tyMark) tyNode()         {}
func (lvalueMark) node()       {}
func (lvalueMark) lvalueNode() {}
func (referMark) referNode()   {}
