package token_test

import (
	"testing"

	"tiger/internal/source"
	"tiger/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.StringLit} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwNil, token.Plus, token.LParen} {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsPunctOrOp(t *testing.T) {
	ops := []token.Kind{
		token.Comma, token.Colon, token.Semicolon, token.LParen, token.RParen,
		token.LBracket, token.RBracket, token.LBrace, token.RBrace, token.Dot,
		token.Plus, token.Minus, token.Times, token.Divide,
		token.Eq, token.Neq, token.Lt, token.Le, token.Gt, token.Ge,
		token.And, token.Or, token.Assign,
	}
	for _, k := range ops {
		if !tok(k).IsPunctOrOp() {
			t.Fatalf("%v should be punct/op", k)
		}
	}
	for _, k := range []token.Kind{token.Ident, token.KwIf, token.IntLit, token.Invalid} {
		if tok(k).IsPunctOrOp() {
			t.Fatalf("%v must NOT be punct/op", k)
		}
	}
}

func TestIsKeyword(t *testing.T) {
	if !tok(token.KwType).IsKeyword() || !tok(token.KwArray).IsKeyword() {
		t.Fatalf("keyword kinds must report IsKeyword")
	}
	for _, k := range []token.Kind{token.Ident, token.Assign, token.StringLit} {
		if tok(k).IsKeyword() {
			t.Fatalf("%v must NOT be keyword", k)
		}
	}
}

func TestKindStrings(t *testing.T) {
	tests := map[token.Kind][2]string{
		token.Assign:  {"Assign", ":="},
		token.Neq:     {"Neq", "<>"},
		token.KwWhile: {"KwWhile", "while"},
		token.Ident:   {"Ident", "identifier"},
		token.Invalid: {"Invalid", "invalid token"},
	}
	for k, want := range tests {
		if got := k.String(); got != want[0] {
			t.Errorf("String() = %q, want %q", got, want[0])
		}
		if got := k.Spelling(); got != want[1] {
			t.Errorf("Spelling() = %q, want %q", got, want[1])
		}
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  token.Token
		want string
	}{
		{token.Token{Kind: token.Ident, Text: "abc"}, "Id : abc"},
		{token.Token{Kind: token.IntLit, Text: "42", Int: 42}, "Int : 42"},
		{token.Token{Kind: token.StringLit, Text: `"a\n"`, Str: "a\n"}, "String : a\n"},
		{token.Token{Kind: token.Le, Text: "<="}, "<="},
		{token.Token{Kind: token.Invalid, Text: "@"}, "error"},
	}
	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
