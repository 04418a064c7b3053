// Package token defines lexical token kinds for the Tiger front end.
// Invariants:
//   - Token.Text is the raw source slice; Token.Span matches it exactly.
//   - Token.Pos is the line/column of Span.Start in the unit's line index.
//   - Keyword spellings are never Ident tokens.
//   - Comment tokens are internal to the lexer and never reach a consumer.
//   - There is no EOF kind: the end of input is the end of the stream.
package token
