package lexer

import (
	"fmt"
	"strings"

	"tiger/internal/diag"
	"tiger/internal/token"
)

// scanString reads a double-quoted literal and stores its decoded value in
// Token.Str. Supported escapes:
//
//	\"  \\  \n  \t
//	\^c      control character (c in @A-Z[\]^_ or a-z; \^? is DEL)
//	\ddd     octal code, first digit 0 or 1
//	\ ... \  whitespace run between backslashes, removed from the value
//
// A bad escape, a raw line break or EOF inside the literal is reported and
// turns the literal into an Invalid token; scanning resumes after it.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'

	var val strings.Builder
	bad := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case '"':
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			if bad {
				return lx.invalid(sp)
			}
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp), Str: val.String()}
		case '\n', '\r':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexNewlineInString, sp, "newline in string literal")
			return lx.invalid(sp)
		case '\\':
			if !lx.scanEscape(&val) {
				bad = true
			}
		default:
			val.WriteByte(lx.cursor.Bump())
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return lx.invalid(sp)
}

// scanEscape decodes one escape starting at '\' into val.
func (lx *Lexer) scanEscape(val *strings.Builder) bool {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if lx.cursor.EOF() {
		return true // unterminated literal is reported by the caller
	}

	b := lx.cursor.Peek()
	switch {
	case b == '"' || b == '\\':
		val.WriteByte(lx.cursor.Bump())
		return true
	case b == 'n':
		lx.cursor.Bump()
		val.WriteByte('\n')
		return true
	case b == 't':
		lx.cursor.Bump()
		val.WriteByte('\t')
		return true
	case b == '^':
		lx.cursor.Bump()
		if c, ok := controlChar(lx.cursor.Peek()); ok && !lx.cursor.EOF() {
			lx.cursor.Bump()
			val.WriteByte(c)
			return true
		}
	case b == '0' || b == '1':
		if c, ok := lx.octalEscape(); ok {
			val.WriteByte(c)
			return true
		}
	case isSpace(b):
		for isSpace(lx.cursor.Peek()) && !lx.cursor.EOF() {
			lx.cursor.Bump()
		}
		if lx.cursor.Eat('\\') {
			return true
		}
	default:
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadEscape, sp, fmt.Sprintf("invalid escape sequence: %s", lx.text(sp)))
	return false
}

// octalEscape reads three octal digits; the caller checked the first.
func (lx *Lexer) octalEscape() (byte, bool) {
	var v byte
	for range 3 {
		d := lx.cursor.Peek()
		if !isOctal(d) || lx.cursor.EOF() {
			return 0, false
		}
		lx.cursor.Bump()
		v = v*8 + (d - '0')
	}
	return v, true
}

func controlChar(c byte) (byte, bool) {
	switch {
	case c >= '@' && c <= '_':
		return c - '@', true
	case c >= 'a' && c <= 'z':
		return c - 'a' + 1, true
	case c == '?':
		return 0x7f, true
	}
	return 0, false
}
