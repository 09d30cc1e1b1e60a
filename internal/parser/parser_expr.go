package parser

import (
	"errors"
	"strconv"

	"utopia/internal/ast"
)

var binaryOperators = map[TokenType]ast.BinaryOp{
	OR:            ast.Or,
	AND:           ast.And,
	EQUAL_EQUAL:   ast.Eq,
	BANG_EQUAL:    ast.NotEq,
	LESS:          ast.Less,
	LESS_EQUAL:    ast.LessEq,
	GREATER:       ast.Greater,
	GREATER_EQUAL: ast.GreaterEq,
	PLUS:          ast.Add,
	MINUS:         ast.Sub,
	STAR:          ast.Mul,
	SLASH:         ast.Div,
	PERCENT:       ast.Mod,
}

var unaryOperators = map[TokenType]ast.UnaryOp{
	BANG:  ast.Not,
	MINUS: ast.Neg,
	PLUS:  ast.Plus,
}

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseBinary(1)
}

// parseAssignExpr allows a single, non-chained `target = value`. It is used
// where an assignment has to be an expression: parentheses and the for
// update clause.
func (p *Parser) parseAssignExpr() (ast.Expr, error) {
	start := p.peek()
	target, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.match(EQUAL) {
		return target, nil
	}
	p.skipNewlines()
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.AssignExpr{Target: target, Value: value, Span: p.spanFrom(start.Span)}, nil
}

// parseBinary is precedence climbing over binaryOperators. Every level is
// left-associative.
func (p *Parser) parseBinary(minPrec int) (ast.Expr, error) {
	start := p.peek()
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := binaryOperators[p.peek().Type]
		if !ok || op.Precedence() < minPrec {
			return left, nil
		}
		p.advance()
		p.skipNewlines()

		right, err := p.parseBinary(op.Precedence() + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Left: left, Op: op, Right: right, Span: p.spanFrom(start.Span)}
	}
}

func (p *Parser) parseUnary() (ast.Expr, error) {
	op, ok := unaryOperators[p.peek().Type]
	if !ok {
		return p.parseCall()
	}
	start := p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: op, Operand: operand, Span: p.spanFrom(start.Span)}, nil
}

// parseCall applies calls, member access, indexing and postfix ++/-- to a
// primary. A cross-call ends the chain.
func (p *Parser) parseCall() (ast.Expr, error) {
	start := p.peek()
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if _, ok := expr.(*ast.CrossCallExpr); ok && start.Type == IDENTIFIER {
		return expr, nil
	}

	for {
		switch {
		case p.match(LEFT_PAREN):
			args, err := p.parseArguments(RIGHT_PAREN, "')' after arguments", ExpectedToken)
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{Callee: expr, Args: args, Span: p.spanFrom(start.Span)}
		case p.match(DOT):
			name, err := p.consume(IDENTIFIER, "property name after '.'")
			if err != nil {
				return nil, err
			}
			expr = &ast.MemberExpr{Object: expr, Member: name.Lexeme, Span: p.spanFrom(start.Span)}
		case p.match(LEFT_BRACKET):
			p.skipNewlines()
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			p.skipNewlines()
			if _, err := p.consume(RIGHT_BRACKET, "']' after index"); err != nil {
				return nil, err
			}
			expr = &ast.IndexExpr{Object: expr, Index: index, Span: p.spanFrom(start.Span)}
		case p.match(INCREMENT):
			expr = &ast.PostfixExpr{Operand: expr, Op: ast.Increment, Span: p.spanFrom(start.Span)}
		case p.match(DECREMENT):
			expr = &ast.PostfixExpr{Operand: expr, Op: ast.Decrement, Span: p.spanFrom(start.Span)}
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parsePrimary() (ast.Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case NUMBER:
		p.advance()
		value, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil && errors.Is(err, strconv.ErrSyntax) {
			return nil, p.errorAt(tok, MalformedLiteral, "malformed number "+tok.Lexeme)
		}
		// out-of-range values saturate to ±Inf
		return &ast.LiteralExpr{Kind: ast.NumberLiteral, Raw: tok.Lexeme, Number: value, Span: tok.Span}, nil
	case STRING:
		p.advance()
		return &ast.LiteralExpr{Kind: ast.StringLiteral, Raw: tok.Lexeme, Text: tok.Literal, Span: tok.Span}, nil
	case TRUE, FALSE:
		p.advance()
		return &ast.LiteralExpr{Kind: ast.BoolLiteral, Raw: tok.Lexeme, Bool: tok.Type == TRUE, Span: tok.Span}, nil
	case NULL:
		p.advance()
		return &ast.LiteralExpr{Kind: ast.NullLiteral, Raw: tok.Lexeme, Span: tok.Span}, nil
	case IDENTIFIER:
		if p.peekAt(1).Type == DOUBLE_COLON {
			return p.parseCrossCall()
		}
		p.advance()
		return &ast.IdentExpr{Name: tok.Lexeme, Span: tok.Span}, nil
	case LEFT_PAREN:
		p.advance()
		p.skipNewlines()
		expr, err := p.parseAssignExpr()
		if err != nil {
			return nil, err
		}
		p.skipNewlines()
		if _, err := p.consume(RIGHT_PAREN, "')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case LEFT_BRACKET:
		return p.parseArray()
	case LEFT_BRACE:
		return p.parseObject()
	case EOF:
		return nil, p.errorAt(tok, UnexpectedEOF, "unexpected end of input, expected expression")
	}
	return nil, p.errorAt(tok, UnexpectedToken, "unexpected token "+describe(tok))
}

// parseCrossCall parses `language::function(args)`. Any identifier followed
// by '::' commits to a cross-call.
func (p *Parser) parseCrossCall() (ast.Expr, error) {
	lang := p.advance()
	p.advance() // ::

	fn := p.peek()
	if fn.Type != IDENTIFIER {
		return nil, p.expected("function name after '"+lang.Lexeme+"::'", MalformedCrossCall)
	}
	p.advance()
	if !p.match(LEFT_PAREN) {
		return nil, p.expected("'(' after '"+lang.Lexeme+"::"+fn.Lexeme+"'", MalformedCrossCall)
	}
	args, err := p.parseArguments(RIGHT_PAREN, "')' to close the cross-call", MalformedCrossCall)
	if err != nil {
		return nil, err
	}
	return &ast.CrossCallExpr{
		Language: lang.Lexeme,
		Function: fn.Lexeme,
		Args:     args,
		Span:     p.spanFrom(lang.Span),
	}, nil
}

// parseArguments parses a comma-separated list after its opening delimiter,
// through close. Newlines and a trailing comma are allowed.
func (p *Parser) parseArguments(close TokenType, what string, kind ParseErrorKind) ([]ast.Expr, error) {
	args := []ast.Expr{}
	for {
		p.skipNewlines()
		if p.match(close) {
			return args, nil
		}
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		p.skipNewlines()
		if p.match(COMMA) {
			continue
		}
		if p.match(close) {
			return args, nil
		}
		return nil, p.expected("',' or "+what, kind)
	}
}

func (p *Parser) parseArray() (ast.Expr, error) {
	start := p.advance()
	elems, err := p.parseArguments(RIGHT_BRACKET, "']' to close the array", MalformedLiteral)
	if err != nil {
		return nil, err
	}
	return &ast.ArrayExpr{Elements: elems, Span: p.spanFrom(start.Span)}, nil
}

// parseObject parses `{ key: value, ... }` with bare identifier keys. A
// repeated key keeps the last value.
func (p *Parser) parseObject() (ast.Expr, error) {
	start := p.advance()
	fields := map[string]ast.Expr{}
	for {
		p.skipNewlines()
		if p.match(RIGHT_BRACE) {
			break
		}
		key := p.peek()
		if key.Type != IDENTIFIER {
			return nil, p.expected("field name in object literal", MalformedLiteral)
		}
		p.advance()
		if !p.match(COLON) {
			return nil, p.expected("':' after field name", MalformedLiteral)
		}
		p.skipNewlines()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fields[key.Lexeme] = value

		p.skipNewlines()
		if p.match(COMMA) {
			continue
		}
		if !p.match(RIGHT_BRACE) {
			return nil, p.expected("',' or '}' in object literal", MalformedLiteral)
		}
		break
	}
	return &ast.ObjectExpr{Fields: fields, Span: p.spanFrom(start.Span)}, nil
}
