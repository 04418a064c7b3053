package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid marks an unrecognized or malformed slice.
	Invalid Kind = iota
	// Comment is a block comment; the lexer consumes it internally.
	Comment

	// Ident represents an identifier token.
	Ident
	// IntLit represents an unsigned decimal integer literal.
	IntLit
	// StringLit represents a string literal; Token.Str holds its value.
	StringLit

	Comma     // ,
	Colon     // :
	Semicolon // ;
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	LBrace    // {
	RBrace    // }
	Dot       // .
	Plus      // +
	Minus     // -
	Times     // *
	Divide    // /
	Eq        // =
	Neq       // <>
	Lt        // <
	Le        // <=
	Gt        // >
	Ge        // >=
	And       // &
	Or        // |
	Assign    // :=

	KwArray    // array
	KwIf       // if
	KwThen     // then
	KwElse     // else
	KwWhile    // while
	KwFor      // for
	KwTo       // to
	KwDo       // do
	KwLet      // let
	KwIn       // in
	KwEnd      // end
	KwOf       // of
	KwBreak    // break
	KwNil      // nil
	KwFunction // function
	KwVar      // var
	KwType     // type

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:   "Invalid",
	Comment:   "Comment",
	Ident:     "Ident",
	IntLit:    "IntLit",
	StringLit: "StringLit",

	Comma:     "Comma",
	Colon:     "Colon",
	Semicolon: "Semicolon",
	LParen:    "LParen",
	RParen:    "RParen",
	LBracket:  "LBracket",
	RBracket:  "RBracket",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
	Dot:       "Dot",
	Plus:      "Plus",
	Minus:     "Minus",
	Times:     "Times",
	Divide:    "Divide",
	Eq:        "Eq",
	Neq:       "Neq",
	Lt:        "Lt",
	Le:        "Le",
	Gt:        "Gt",
	Ge:        "Ge",
	And:       "And",
	Or:        "Or",
	Assign:    "Assign",

	KwArray:    "KwArray",
	KwIf:       "KwIf",
	KwThen:     "KwThen",
	KwElse:     "KwElse",
	KwWhile:    "KwWhile",
	KwFor:      "KwFor",
	KwTo:       "KwTo",
	KwDo:       "KwDo",
	KwLet:      "KwLet",
	KwIn:       "KwIn",
	KwEnd:      "KwEnd",
	KwOf:       "KwOf",
	KwBreak:    "KwBreak",
	KwNil:      "KwNil",
	KwFunction: "KwFunction",
	KwVar:      "KwVar",
	KwType:     "KwType",
}

var kindSpellings = [kindCount]string{
	Comma: ",", Colon: ":", Semicolon: ";",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]", LBrace: "{", RBrace: "}",
	Dot: ".", Plus: "+", Minus: "-", Times: "*", Divide: "/",
	Eq: "=", Neq: "<>", Lt: "<", Le: "<=", Gt: ">", Ge: ">=",
	And: "&", Or: "|", Assign: ":=",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Spelling returns the fixed source spelling of punctuation and keyword
// kinds, or a descriptive name for the open classes.
func (k Kind) Spelling() string {
	if k >= kindCount {
		return "?"
	}
	if s := kindSpellings[k]; s != "" {
		return s
	}
	if k >= KwArray {
		return keywordSpellings[k]
	}
	switch k {
	case Ident:
		return "identifier"
	case IntLit:
		return "integer"
	case StringLit:
		return "string"
	case Comment:
		return "comment"
	default:
		return "invalid token"
	}
}
