package parser

import "utopia/internal/ast"

// ParseSource lexes and parses source in one step. The returned error is a
// *LexError or a *ParseError.
func ParseSource(source string) (*ast.Program, error) {
	tokens, err := Tokenize(source)
	if err != nil {
		return nil, err
	}
	return Parse(tokens)
}
