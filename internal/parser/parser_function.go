package parser

import (
	"utopia/internal/ast"
	"utopia/internal/types"
)

// parseLanguageBlock parses `@lang name { (function | statement)* }`.
func (p *Parser) parseLanguageBlock() (*ast.LanguageBlock, error) {
	start := p.advance() // @
	if _, err := p.consume(LANG, "'lang'"); err != nil {
		return nil, err
	}
	name, err := p.consume(IDENTIFIER, "language name after '@lang'")
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.consume(LEFT_BRACE, "'{' to open the language block"); err != nil {
		return nil, err
	}

	block := &ast.LanguageBlock{Language: name.Lexeme}
	for {
		p.skipNewlines()
		if p.check(RIGHT_BRACE) || p.isAtEnd() {
			break
		}
		if p.startsFunction() {
			fn, err := p.parseFunction(block.Language)
			if err != nil {
				return nil, err
			}
			block.Functions = append(block.Functions, fn)
			p.match(SEMICOLON)
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}

	if _, err := p.consume(RIGHT_BRACE, "'}' to close the language block"); err != nil {
		return nil, err
	}
	block.Span = p.spanFrom(start.Span)
	return block, nil
}

func (p *Parser) startsFunction() bool {
	return p.check(FUNCTION) || (p.check(EXPORT) && p.peekAt(1).Type == FUNCTION)
}

// parseFunction parses `[export] function name(params) [-> type] { body }`.
func (p *Parser) parseFunction(language string) (*ast.Function, error) {
	start := p.peek()
	exported := p.match(EXPORT)
	if _, err := p.consume(FUNCTION, "'function'"); err != nil {
		return nil, err
	}
	name, err := p.consume(IDENTIFIER, "function name")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(LEFT_PAREN, "'(' after function name"); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}

	var ret types.Type
	if p.match(ARROW) {
		if ret, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	p.skipNewlines()
	body, err := p.parseBraceBody("function body")
	if err != nil {
		return nil, err
	}

	return &ast.Function{
		Name:       name.Lexeme,
		Parameters: params,
		ReturnType: ret,
		Body:       body,
		IsExported: exported,
		Language:   language,
		Span:       p.spanFrom(start.Span),
	}, nil
}

// parseParameters parses `name [: type] [= default], ... )` after the '('.
func (p *Parser) parseParameters() ([]*ast.Parameter, error) {
	params := []*ast.Parameter{}

	p.skipNewlines()
	if p.match(RIGHT_PAREN) {
		return params, nil
	}

	for {
		p.skipNewlines()
		name, err := p.consume(IDENTIFIER, "parameter name")
		if err != nil {
			return nil, err
		}
		param := &ast.Parameter{Name: name.Lexeme}
		if p.match(COLON) {
			if param.Type, err = p.parseType(); err != nil {
				return nil, err
			}
		}
		if p.match(EQUAL) {
			p.skipNewlines()
			if param.Default, err = p.parseExpression(); err != nil {
				return nil, err
			}
		}
		param.Span = p.spanFrom(name.Span)
		params = append(params, param)

		p.skipNewlines()
		if p.match(COMMA) {
			continue
		}
		if _, err := p.consume(RIGHT_PAREN, "',' or ')' in parameter list"); err != nil {
			return nil, err
		}
		return params, nil
	}
}

// parseType maps the five reserved spellings to primitives. Any other name
// is tagged with the host language until a later pass resolves it.
func (p *Parser) parseType() (types.Type, error) {
	var tok Token
	switch {
	case p.check(IDENTIFIER), p.check(NULL):
		tok = p.advance()
	default:
		return nil, p.expected("type name", ExpectedToken)
	}
	if t, ok := types.PrimitiveByName(tok.Lexeme); ok {
		return t, nil
	}
	return types.LanguageSpecific{Language: types.HostLanguage, Name: tok.Lexeme}, nil
}
