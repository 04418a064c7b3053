package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexIntOverflow              Code = 1004
	LexBadEscape                Code = 1005
	LexNewlineInString          Code = 1006

	// syntactic
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynUnexpectedEOF    Code = 2002
	SynExpectIdentifier Code = 2003
	SynNonAssociative   Code = 2004
	SynInvalidToken     Code = 2005
	SynTrailingInput    Code = 2006

	// io
	IOLoadFileError Code = 4001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexIntOverflow:              "Integer literal overflows 64 bits",
		LexBadEscape:                "Invalid escape sequence",
		LexNewlineInString:          "Newline in string literal",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnexpectedEOF:            "Unexpected end of input",
		SynExpectIdentifier:         "Expected identifier",
		SynNonAssociative:           "Comparison operators do not associate",
		SynInvalidToken:             "Invalid token in input",
		SynTrailingInput:            "Unexpected input after expression",
		IOLoadFileError:             "Failed to load file",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
