package token

var keywords = map[string]Kind{
	"array":    KwArray,
	"if":       KwIf,
	"then":     KwThen,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"to":       KwTo,
	"do":       KwDo,
	"let":      KwLet,
	"in":       KwIn,
	"end":      KwEnd,
	"of":       KwOf,
	"break":    KwBreak,
	"nil":      KwNil,
	"function": KwFunction,
	"var":      KwVar,
	"type":     KwType,
}

var keywordSpellings = func() map[Kind]string {
	out := make(map[Kind]string, len(keywords))
	for s, k := range keywords {
		out[k] = s
	}
	return out
}()

// LookupKeyword reports whether ident is a reserved word and returns its kind.
// Keywords are case-sensitive: only the lowercase spellings are reserved.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
