package parser

import (
	"fmt"

	"utopia/internal/ast"
)

type TokenType int

const (
	// Special tokens
	ILLEGAL TokenType = iota
	EOF
	NEWLINE
	COMMENT
	INLINE_CODE // reserved for reverse-compiled guest code; never scanned

	// Identifiers + literals
	IDENTIFIER
	NUMBER
	STRING

	// Keywords
	FUNCTION
	LET
	CONST
	IF
	ELSE
	WHILE
	FOR
	RETURN
	IMPORT
	EXPORT
	CLASS
	LANG
	TRUE
	FALSE
	NULL

	// Operators
	PLUS
	INCREMENT
	MINUS
	DECREMENT
	STAR
	SLASH
	PERCENT
	EQUAL
	EQUAL_EQUAL
	BANG
	BANG_EQUAL
	LESS
	LESS_EQUAL
	GREATER
	GREATER_EQUAL
	AND
	OR
	ARROW

	// Delimiters
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	LEFT_BRACKET
	RIGHT_BRACKET
	COMMA
	SEMICOLON
	COLON
	DOUBLE_COLON
	DOT
	AT
)

var tokenTypeNames = [...]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "EOF",
	NEWLINE:       "NEWLINE",
	COMMENT:       "COMMENT",
	INLINE_CODE:   "INLINE_CODE",
	IDENTIFIER:    "IDENTIFIER",
	NUMBER:        "NUMBER",
	STRING:        "STRING",
	FUNCTION:      "FUNCTION",
	LET:           "LET",
	CONST:         "CONST",
	IF:            "IF",
	ELSE:          "ELSE",
	WHILE:         "WHILE",
	FOR:           "FOR",
	RETURN:        "RETURN",
	IMPORT:        "IMPORT",
	EXPORT:        "EXPORT",
	CLASS:         "CLASS",
	LANG:          "LANG",
	TRUE:          "TRUE",
	FALSE:         "FALSE",
	NULL:          "NULL",
	PLUS:          "PLUS",
	INCREMENT:     "INCREMENT",
	MINUS:         "MINUS",
	DECREMENT:     "DECREMENT",
	STAR:          "STAR",
	SLASH:         "SLASH",
	PERCENT:       "PERCENT",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	AND:           "AND",
	OR:            "OR",
	ARROW:         "ARROW",
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	LEFT_BRACKET:  "LEFT_BRACKET",
	RIGHT_BRACKET: "RIGHT_BRACKET",
	COMMA:         "COMMA",
	SEMICOLON:     "SEMICOLON",
	COLON:         "COLON",
	DOUBLE_COLON:  "DOUBLE_COLON",
	DOT:           "DOT",
	AT:            "AT",
}

func (t TokenType) String() string {
	if int(t) >= 0 && int(t) < len(tokenTypeNames) && tokenTypeNames[t] != "" {
		return tokenTypeNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// IsKeyword reports whether t is one of the reserved words.
func (t TokenType) IsKeyword() bool {
	return t >= FUNCTION && t <= NULL
}

// IsOperator reports whether t is an operator token.
func (t TokenType) IsOperator() bool {
	return t >= PLUS && t <= ARROW
}

// Token is one lexeme. Lexeme is the exact source slice; Literal holds the
// decoded value of string tokens and the body of comments.
type Token struct {
	Type    TokenType
	Lexeme  string
	Literal string
	Span    ast.Span
}

func (t Token) String() string {
	switch t.Type {
	case IDENTIFIER, NUMBER:
		return fmt.Sprintf("%s(%s)", t.Type, t.Lexeme)
	case STRING, COMMENT:
		return fmt.Sprintf("%s(%q)", t.Type, t.Literal)
	}
	return t.Type.String()
}

// describe names a token for error messages.
func describe(t Token) string {
	switch t.Type {
	case EOF:
		return "end of input"
	case NEWLINE:
		return "newline"
	case STRING:
		return "string literal"
	}
	return fmt.Sprintf("'%s'", t.Lexeme)
}
