package lexer

import (
	"fmt"
	"unicode/utf8"

	"tiger/internal/diag"
	"tiger/internal/token"
)

// Greedy: two-byte operators first, then their one-byte prefixes.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	switch {
	case lx.try2(':', '='):
		return emit(token.Assign)
	case lx.try2('<', '>'):
		return emit(token.Neq)
	case lx.try2('<', '='):
		return emit(token.Le)
	case lx.try2('>', '='):
		return emit(token.Ge)
	}

	switch lx.cursor.Bump() {
	case ',':
		return emit(token.Comma)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '.':
		return emit(token.Dot)
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Times)
	case '/':
		return emit(token.Divide)
	case '=':
		return emit(token.Eq)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case '&':
		return emit(token.And)
	case '|':
		return emit(token.Or)
	}

	// Unknown input: consume exactly one rune so the error stays local.
	lx.cursor.Reset(start)
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("wrong token: %s", lx.text(sp)))
	return lx.invalid(sp)
}

// bumpRune advances past one UTF-8 sequence; malformed bytes count as one.
func (lx *Lexer) bumpRune() {
	_, sz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
	for range max(sz, 1) {
		lx.cursor.Bump()
	}
}
