// Package lexer turns the bytes of one compilation unit into tokens.
//
// The lexer is pull-based: the parser calls Next until it reports false.
// Block comments and whitespace never reach the caller. Lexical errors are
// reported through Options.Reporter and surface as token.Invalid so the
// consumer decides what an error token means; scanning carries on after
// them. The one exception is an integer literal wider than 64 bits, which
// ends the stream (see Err).
//
// New rebuilds the unit's line index before the first token, so positions
// stamped on tokens always refer to the text being scanned.
package lexer
