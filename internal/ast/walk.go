package ast

import "fmt"

// Children returns the direct child nodes of n in source order.
// Identifiers are attributes, not children.
func Children(n Node) []Node {
	var out []Node
	add := func(ns ...Node) {
		for _, c := range ns {
			if c != nil {
				out = append(out, c)
			}
		}
	}
	switch n := n.(type) {
	case *TypeDec:
		add(n.Ty)
	case *VarDec:
		add(n.Init)
	case *FunDec:
		add(n.Body)
	case *NameTy, *RecordTy, *ArrayTy:
	case *IfThenElse:
		add(n.Cond, n.Then, n.Else)
	case *While:
		add(n.Cond, n.Body)
	case *For:
		add(n.Lo, n.Hi, n.Body)
	case *Assign:
		add(n.Target, n.Value)
	case *Break:
	case *IfThen:
		add(n.Cond, n.Then)
	case *IfThenElseOpen:
		add(n.Cond, n.Then, n.Else)
	case *WhileOpen:
		add(n.Cond, n.Body)
	case *ForOpen:
		add(n.Lo, n.Hi, n.Body)
	case *ArrayExp:
		add(n.Len, n.Init)
	case *RecordExp:
		for _, f := range n.Fields {
			add(f.Value)
		}
	case *OrExp:
		add(n.X, n.Y)
	case *AndExp:
		add(n.X, n.Y)
	case *CompareExp:
		add(n.X, n.Y)
	case *AddExp:
		add(n.X, n.Y)
	case *MulExp:
		add(n.X, n.Y)
	case *NegExp:
		add(n.X)
	case *IntLit, *StringLit, *NilLit, *IdentExp:
	case *RefExp:
		add(n.Ref)
	case *SeqExp:
		for _, e := range n.Exps {
			add(e)
		}
	case *CallExp:
		for _, e := range n.Args {
			add(e)
		}
	case *LetExp:
		for _, d := range n.Decs {
			add(d)
		}
		for _, e := range n.Body {
			add(e)
		}
	case *IdentLV, *FieldRef:
	case *ChainFieldRef:
		add(n.Base)
	case *IndexRef:
		add(n.Index)
	case *ChainIndexRef:
		add(n.Base, n.Index)
	default:
		panic(fmt.Sprintf("ast.Children: unexpected node %T", n))
	}
	return out
}

// Inspect traverses the tree rooted at n in depth-first pre-order. When f
// returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// KindName returns the node's grammar name, e.g. "IfThenElse".
func KindName(n Node) string {
	switch n.(type) {
	case *TypeDec:
		return "TypeDec"
	case *VarDec:
		return "VarDec"
	case *FunDec:
		return "FunDec"
	case *NameTy:
		return "NameTy"
	case *RecordTy:
		return "RecordTy"
	case *ArrayTy:
		return "ArrayTy"
	case *IfThenElse:
		return "IfThenElse"
	case *While:
		return "While"
	case *For:
		return "For"
	case *Assign:
		return "Assign"
	case *Break:
		return "Break"
	case *IfThen:
		return "IfThen"
	case *IfThenElseOpen:
		return "IfThenElseOpen"
	case *WhileOpen:
		return "WhileOpen"
	case *ForOpen:
		return "ForOpen"
	case *ArrayExp:
		return "ArrayExp"
	case *RecordExp:
		return "RecordExp"
	case *OrExp:
		return "OrExp"
	case *AndExp:
		return "AndExp"
	case *CompareExp:
		return "CompareExp"
	case *AddExp:
		return "AddExp"
	case *MulExp:
		return "MulExp"
	case *NegExp:
		return "NegExp"
	case *IntLit:
		return "IntLit"
	case *StringLit:
		return "StringLit"
	case *NilLit:
		return "NilLit"
	case *IdentExp:
		return "IdentExp"
	case *RefExp:
		return "RefExp"
	case *SeqExp:
		return "SeqExp"
	case *CallExp:
		return "CallExp"
	case *LetExp:
		return "LetExp"
	case *IdentLV:
		return "IdentLV"
	case *FieldRef:
		return "FieldRef"
	case *ChainFieldRef:
		return "ChainFieldRef"
	case *IndexRef:
		return "IndexRef"
	case *ChainIndexRef:
		return "ChainIndexRef"
	}
	return fmt.Sprintf("%T", n)
}
