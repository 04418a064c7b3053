package lexer

import (
	"fmt"
	"strconv"

	"tiger/internal/diag"
	"tiger/internal/token"
)

// scanNumber reads [0-9]+ as an unsigned 64-bit value. A literal that does
// not fit is reported, returned as Invalid, and ends the stream: the lexer
// fast-forwards to EOF and Err returns ErrIntOverflow.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) && !lx.cursor.EOF() {
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		lx.errLex(diag.LexIntOverflow, sp, fmt.Sprintf("integer literal out of range: %s", text))
		lx.err = fmt.Errorf("%s: %w", lx.position(sp.Start), ErrIntOverflow)
		lx.cursor.SkipToEOF()
		return lx.invalid(sp)
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text, Int: v}
}
