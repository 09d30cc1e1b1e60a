package parser

import (
	"utopia/internal/ast"
)

// Parser is a single-pass recursive-descent parser. It stops at the first
// error; there is no recovery.
type Parser struct {
	tokens  []Token
	current int
	last    Token
}

// NewParser prepares a parser over tokens. A missing EOF token is added.
func NewParser(tokens []Token) *Parser {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != EOF {
		var end ast.Span
		if len(tokens) > 0 {
			prev := tokens[len(tokens)-1].Span
			end = ast.NewSpan(prev.End, prev.End, prev.Line, prev.Column+prev.Len())
		} else {
			end = ast.NewSpan(0, 0, 1, 1)
		}
		tokens = append(tokens[:len(tokens):len(tokens)], Token{Type: EOF, Span: end})
	}
	p := &Parser{tokens: tokens}
	p.skipComments()
	return p
}

// Parse builds a Program from a token sequence.
func Parse(tokens []Token) (*ast.Program, error) {
	return NewParser(tokens).ParseProgram()
}

func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{}

	p.skipNewlines()
	for !p.isAtEnd() {
		if p.check(AT) && p.peekAt(1).Type == LANG {
			block, err := p.parseLanguageBlock()
			if err != nil {
				return nil, err
			}
			program.AddLanguageBlock(block)
		} else {
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			program.Statements = append(program.Statements, stmt)
		}
		p.skipNewlines()
	}

	eof := p.peek()
	program.Span = ast.NewSpan(0, eof.Span.End, 1, 1)
	program.RefreshMetadata()
	return program, nil
}
