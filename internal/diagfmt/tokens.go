package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"tiger/internal/source"
	"tiger/internal/token"
)

// TokenOutput is one token in the JSON dump.
type TokenOutput struct {
	Kind  string      `json:"kind"`
	Class string      `json:"class"`
	Text  string      `json:"text,omitempty"`
	Value any         `json:"value,omitempty"`
	Pos   string      `json:"pos"`
	Span  source.Span `json:"span"`
}

// FormatTokensPretty prints one token per line: index, position, kind and
// the token's display form ("Id : x", "Int : 3", ":=").
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%4d  %-8s %-10s %s\n", i+1, tok.Pos, tok.Kind, tok); err != nil {
			return err
		}
	}
	return nil
}

// BuildTokensOutput converts tokens to their JSON form.
func BuildTokensOutput(tokens []token.Token) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		to := TokenOutput{
			Kind:  tok.Kind.String(),
			Class: tokenClass(tok),
			Text:  tok.Text,
			Pos:   tok.Pos.String(),
			Span:  tok.Span,
		}
		switch tok.Kind {
		case token.IntLit:
			to.Value = tok.Int
		case token.StringLit:
			to.Value = tok.Str
		}
		out = append(out, to)
	}
	return out
}

func tokenClass(tok token.Token) string {
	switch {
	case tok.IsKeyword():
		return "keyword"
	case tok.IsIdent():
		return "ident"
	case tok.IsLiteral():
		return "literal"
	case tok.IsPunctOrOp():
		return "punct"
	}
	return "invalid"
}

// FormatTokensJSON writes tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildTokensOutput(tokens))
}
