package parser

import (
	"utopia/internal/ast"
)

// parseStatement parses one statement and its optional trailing ';'.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	stmt, err := p.parseStatementBody()
	if err != nil {
		return nil, err
	}
	p.match(SEMICOLON)
	return stmt, nil
}

func (p *Parser) parseStatementBody() (ast.Stmt, error) {
	switch p.peek().Type {
	case LET, CONST:
		return p.parseVarDecl()
	case IF:
		return p.parseIf()
	case WHILE:
		return p.parseWhile()
	case FOR:
		return p.parseFor()
	case RETURN:
		return p.parseReturn()
	case IMPORT:
		return p.parseImport()
	case EXPORT:
		if p.peekAt(1).Type == FUNCTION {
			return p.parseFunctionDecl()
		}
		return p.parseExport()
	case FUNCTION:
		return p.parseFunctionDecl()
	case LEFT_BRACE:
		return p.parseBlock()
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseVarDecl() (ast.Stmt, error) {
	start := p.advance()
	name, err := p.consume(IDENTIFIER, "variable name")
	if err != nil {
		return nil, err
	}

	decl := &ast.VarDecl{Name: name.Lexeme, IsConst: start.Type == CONST}
	if p.match(COLON) {
		if decl.Type, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	if p.match(EQUAL) {
		p.skipNewlines()
		if decl.Value, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	decl.Span = p.spanFrom(start.Span)
	return decl, nil
}

func (p *Parser) parseIf() (ast.Stmt, error) {
	start := p.advance()
	cond, err := p.parseCondition("if")
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStmt{Cond: cond, Then: then}
	if p.peekPastNewlines().Type == ELSE {
		p.skipNewlines()
		p.advance()
		p.skipNewlines()
		if p.check(IF) {
			elseStart := p.peek()
			nested, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt.Else = &ast.BlockStmt{Stmts: []ast.Stmt{nested}, Span: p.spanFrom(elseStart.Span)}
		} else if stmt.Else, err = p.parseBlock(); err != nil {
			return nil, err
		}
	}
	stmt.Span = p.spanFrom(start.Span)
	return stmt, nil
}

func (p *Parser) parseWhile() (ast.Stmt, error) {
	start := p.advance()
	cond, err := p.parseCondition("while")
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileStmt{Cond: cond, Body: body, Span: p.spanFrom(start.Span)}, nil
}

// parseCondition parses the parenthesised condition of if/while.
func (p *Parser) parseCondition(keyword string) (ast.Expr, error) {
	if _, err := p.consume(LEFT_PAREN, "'(' after '"+keyword+"'"); err != nil {
		return nil, err
	}
	p.skipNewlines()
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.consume(RIGHT_PAREN, "')' after condition"); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseFor parses `for (init?; cond?; update?) block`. Both separators are
// required; the init clause never consumes its own ';'.
func (p *Parser) parseFor() (ast.Stmt, error) {
	start := p.advance()
	if _, err := p.consume(LEFT_PAREN, "'(' after 'for'"); err != nil {
		return nil, err
	}

	stmt := &ast.ForStmt{}
	var err error

	p.skipNewlines()
	if !p.check(SEMICOLON) {
		if stmt.Init, err = p.parseSimpleStatement(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(SEMICOLON, "';' after for initializer"); err != nil {
		return nil, err
	}

	p.skipNewlines()
	if !p.check(SEMICOLON) {
		if stmt.Cond, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(SEMICOLON, "';' after for condition"); err != nil {
		return nil, err
	}

	p.skipNewlines()
	if !p.check(RIGHT_PAREN) {
		if stmt.Update, err = p.parseAssignExpr(); err != nil {
			return nil, err
		}
	}
	p.skipNewlines()
	if _, err := p.consume(RIGHT_PAREN, "')' after for clauses"); err != nil {
		return nil, err
	}

	p.skipNewlines()
	if stmt.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	stmt.Span = p.spanFrom(start.Span)
	return stmt, nil
}

// parseSimpleStatement is the subset allowed in a for initializer.
func (p *Parser) parseSimpleStatement() (ast.Stmt, error) {
	if p.check(LET) || p.check(CONST) {
		return p.parseVarDecl()
	}
	return p.parseExpressionStatement()
}

// parseReturn takes a value unless the statement ends right away.
func (p *Parser) parseReturn() (ast.Stmt, error) {
	start := p.advance()
	stmt := &ast.ReturnStmt{}
	switch p.peek().Type {
	case SEMICOLON, NEWLINE, RIGHT_BRACE, EOF:
	default:
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		stmt.Value = value
	}
	stmt.Span = p.spanFrom(start.Span)
	return stmt, nil
}

func (p *Parser) parseImport() (ast.Stmt, error) {
	start := p.advance()
	name, err := p.consume(IDENTIFIER, "module name after 'import'")
	if err != nil {
		return nil, err
	}
	return &ast.ImportStmt{Module: name.Lexeme, Span: p.spanFrom(start.Span)}, nil
}

func (p *Parser) parseExport() (ast.Stmt, error) {
	start := p.advance()
	name, err := p.consume(IDENTIFIER, "name after 'export'")
	if err != nil {
		return nil, err
	}
	return &ast.ExportStmt{Name: name.Lexeme, Span: p.spanFrom(start.Span)}, nil
}

// parseFunctionDecl handles a function declared outside any language block.
func (p *Parser) parseFunctionDecl() (ast.Stmt, error) {
	start := p.peek()
	fn, err := p.parseFunction("")
	if err != nil {
		return nil, err
	}
	return &ast.FunctionDecl{Function: fn, Span: p.spanFrom(start.Span)}, nil
}

func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	start := p.peek()
	stmts, err := p.parseBraceBody("block")
	if err != nil {
		return nil, err
	}
	return &ast.BlockStmt{Stmts: stmts, Span: p.spanFrom(start.Span)}, nil
}

// parseBraceBody parses `{ statement* }`.
func (p *Parser) parseBraceBody(what string) ([]ast.Stmt, error) {
	if _, err := p.consume(LEFT_BRACE, "'{' to open "+what); err != nil {
		return nil, err
	}
	stmts := []ast.Stmt{}
	for {
		p.skipNewlines()
		if p.check(RIGHT_BRACE) || p.isAtEnd() {
			break
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(RIGHT_BRACE, "'}' to close "+what); err != nil {
		return nil, err
	}
	return stmts, nil
}

// parseExpressionStatement turns `expr = value` into an assignment and
// anything else into an expression statement.
func (p *Parser) parseExpressionStatement() (ast.Stmt, error) {
	start := p.peek()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.match(EQUAL) {
		p.skipNewlines()
		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Target: expr, Value: value, Span: p.spanFrom(start.Span)}, nil
	}
	return &ast.ExprStmt{Expr: expr, Span: p.spanFrom(start.Span)}, nil
}
