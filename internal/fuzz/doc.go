// Package fuzztests houses Go fuzz harnesses for the scanner and the parser.
// They feed arbitrary bytes through a FileSet, the lexer and the parser and
// fail on panics, hangs, or trees whose positions break the structural
// invariants checked by testkit.
package fuzztests
