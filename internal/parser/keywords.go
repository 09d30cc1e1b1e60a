package parser

var KEYWORDS = map[string]TokenType{
	"function": FUNCTION,
	"let":      LET,
	"const":    CONST,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"for":      FOR,
	"return":   RETURN,
	"import":   IMPORT,
	"export":   EXPORT,
	"class":    CLASS,
	"lang":     LANG,
	"true":     TRUE,
	"false":    FALSE,
	"null":     NULL,
}

func lookupIdentifier(text string) TokenType {
	if t, ok := KEYWORDS[text]; ok {
		return t
	}
	return IDENTIFIER
}
