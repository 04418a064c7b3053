// Package parser builds the syntax tree of one Tiger expression from a token
// stream.
//
// The grammar is parsed by recursive descent with one token of lookahead.
// An else always binds to the nearest open if; the parser picks the Closed
// or Open node for every conditional and loop from the shape of its last
// branch, so the result never places an open form where a closed one is
// required.
//
// Parsing stops at the first syntax error. The error is reported once
// through Options.Reporter and returned as a *ParseError.
package parser
