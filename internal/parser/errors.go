package parser

import (
	"fmt"

	"utopia/internal/ast"
)

type LexErrorKind int

const (
	UnexpectedCharacter LexErrorKind = iota
	UnterminatedString
	UnterminatedChar
	UnterminatedTemplate
)

func (k LexErrorKind) String() string {
	switch k {
	case UnexpectedCharacter:
		return "unexpected character"
	case UnterminatedString:
		return "unterminated string literal"
	case UnterminatedChar:
		return "unterminated character literal"
	case UnterminatedTemplate:
		return "unterminated template literal"
	}
	return "lex error"
}

// LexError stops scanning at the first offending character.
type LexError struct {
	Kind    LexErrorKind
	Message string
	Char    rune // offending character for UnexpectedCharacter
	Span    ast.Span
}

func (e *LexError) Error() string {
	return e.Message
}

type ParseErrorKind int

const (
	ExpectedToken ParseErrorKind = iota
	UnexpectedToken
	MalformedCrossCall
	MalformedLiteral
	UnexpectedEOF
)

func (k ParseErrorKind) String() string {
	switch k {
	case ExpectedToken:
		return "expected token"
	case UnexpectedToken:
		return "unexpected token"
	case MalformedCrossCall:
		return "malformed cross-call"
	case MalformedLiteral:
		return "malformed literal"
	case UnexpectedEOF:
		return "unexpected end of input"
	}
	return "parse error"
}

// ParseError stops parsing at the first token that does not fit.
type ParseError struct {
	Kind    ParseErrorKind
	Message string
	Token   Token
	Span    ast.Span
}

func (e *ParseError) Error() string {
	return e.Message
}

func lexErrorf(kind LexErrorKind, span ast.Span, format string, args ...any) *LexError {
	return &LexError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}
