// Package ast defines the syntax tree of a Tiger program.
//
// Every grammar category is a sealed interface: only types in this package
// implement it. Control-flow expressions come in two families. Closed forms
// have every nested conditional fully bracketed by an else branch; Open
// forms end in a then-only conditional. Fields that must hold a closed form
// are typed Closed, so a tree where an else could attach to an outer if
// cannot be represented at all.
//
// The operator tiers nest the same way: a Meta is a Factor, a Factor is a
// Term, and so on up to Slice, which is Closed. A node may therefore stand
// wherever one of its enclosing tiers is expected without a wrapper node.
//
// Trees are built once by the parser and never mutated afterwards.
package ast
