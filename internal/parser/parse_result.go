package parser

import "utopia/internal/ast"

// ParseResult keeps the token stream next to the program so that editor
// tooling can map offsets back to both.
type ParseResult struct {
	Source  string
	Tokens  []Token
	Program *ast.Program
	Err     error
}

// ParseSourceWithTokens is ParseSource for callers that also need tokens.
// Tokens is nil when lexing failed; Program is nil when either stage failed.
func ParseSourceWithTokens(source string) *ParseResult {
	result := &ParseResult{Source: source}
	result.Tokens, result.Err = Tokenize(source)
	if result.Err != nil {
		return result
	}
	result.Program, result.Err = Parse(result.Tokens)
	return result
}

// LexError returns the lexing failure, if that is what stopped the parse.
func (pr *ParseResult) LexError() *LexError {
	if e, ok := pr.Err.(*LexError); ok {
		return e
	}
	return nil
}

// ParseError returns the parsing failure, if that is what stopped the parse.
func (pr *ParseResult) ParseError() *ParseError {
	if e, ok := pr.Err.(*ParseError); ok {
		return e
	}
	return nil
}

// TokenAt returns the token covering offset, skipping newlines.
func (pr *ParseResult) TokenAt(offset int) (Token, bool) {
	for _, tok := range pr.Tokens {
		if tok.Type == NEWLINE || tok.Type == EOF {
			continue
		}
		if tok.Span.Start <= offset && offset < tok.Span.End {
			return tok, true
		}
		if tok.Span.Start > offset {
			break
		}
	}
	return Token{}, false
}

// PathTo returns the chain of nodes enclosing offset, outermost first.
func (pr *ParseResult) PathTo(offset int) []ast.Node {
	if pr.Program == nil {
		return nil
	}
	return ast.PathTo(pr.Program, offset)
}
