package token

import (
	"fmt"

	"tiger/internal/source"
)

// Token represents a single source token.
type Token struct {
	Kind Kind
	Span source.Span
	Pos  source.Position
	Text string
	Int  uint64 // IntLit value
	Str  string // StringLit value after escape normalization
}

// IsLiteral reports whether the token is an integer or string literal.
func (t Token) IsLiteral() bool {
	return t.Kind == IntLit || t.Kind == StringLit
}

// IsPunctOrOp reports whether the token is punctuation or an operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Comma && t.Kind <= Assign
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwArray && t.Kind < kindCount
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// String renders the token the way token dumps print it.
func (t Token) String() string {
	switch t.Kind {
	case Ident:
		return fmt.Sprintf("Id : %s", t.Text)
	case IntLit:
		return fmt.Sprintf("Int : %d", t.Int)
	case StringLit:
		return fmt.Sprintf("String : %s", t.Str)
	case Invalid:
		return "error"
	default:
		return t.Kind.Spelling()
	}
}
