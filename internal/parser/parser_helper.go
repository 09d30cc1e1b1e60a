package parser

import (
	"fmt"

	"utopia/internal/ast"
)

// advance consumes the current token and skips any comments that follow,
// so peek never returns a COMMENT.
func (p *Parser) advance() Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	p.skipComments()
	p.last = tok
	return tok
}

func (p *Parser) skipComments() {
	for p.current < len(p.tokens)-1 && p.tokens[p.current].Type == COMMENT {
		p.current++
	}
}

func (p *Parser) skipNewlines() {
	for p.check(NEWLINE) {
		p.advance()
	}
}

func (p *Parser) check(tt TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) match(types ...TokenType) bool {
	for _, tt := range types {
		if p.check(tt) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(tt TokenType, what string) (Token, error) {
	if p.check(tt) {
		return p.advance(), nil
	}
	return Token{}, p.expected(what, ExpectedToken)
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

// peekAt looks n syntactic tokens ahead, ignoring comments.
func (p *Parser) peekAt(n int) Token {
	i := p.current
	for n > 0 && i < len(p.tokens)-1 {
		i++
		if p.tokens[i].Type != COMMENT {
			n--
		}
	}
	return p.tokens[i]
}

// peekPastNewlines returns the next token that is not a newline.
func (p *Parser) peekPastNewlines() Token {
	for n := 0; ; n++ {
		tok := p.peekAt(n)
		if tok.Type != NEWLINE {
			return tok
		}
	}
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == EOF
}

// spanFrom covers from the start of first to the end of the last consumed
// token.
func (p *Parser) spanFrom(first ast.Span) ast.Span {
	return ast.NewSpan(first.Start, p.last.Span.End, first.Line, first.Column)
}

func (p *Parser) errorAt(tok Token, kind ParseErrorKind, message string) *ParseError {
	if tok.Type == EOF {
		kind = UnexpectedEOF
	}
	return &ParseError{
		Kind:    kind,
		Message: fmt.Sprintf("%s at line %d, column %d", message, tok.Span.Line, tok.Span.Column),
		Token:   tok,
		Span:    tok.Span,
	}
}

// expected reports that what was required at the current token.
func (p *Parser) expected(what string, kind ParseErrorKind) *ParseError {
	tok := p.peek()
	return p.errorAt(tok, kind, fmt.Sprintf("expected %s, found %s", what, describe(tok)))
}
