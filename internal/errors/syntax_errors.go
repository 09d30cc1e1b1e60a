package errors

import (
	"utopia/internal/ast"
	"utopia/internal/parser"
)

// FromLexError converts a scanner failure into a diagnostic.
func FromLexError(e *parser.LexError) CompilerError {
	code := ErrorUnterminatedLiteral
	builder := NewSemanticError(code, e.Message, e.Span)
	switch e.Kind {
	case parser.UnexpectedCharacter:
		builder.err.Code = ErrorUnexpectedCharacter
		switch e.Char {
		case '&':
			builder = builder.WithSuggestion("use '&&' for logical and")
		case '|':
			builder = builder.WithSuggestion("use '||' for logical or")
		}
	case parser.UnterminatedString:
		builder = builder.WithSuggestion("close the string with '\"'")
	case parser.UnterminatedChar:
		builder = builder.WithNote("character literals hold exactly one character")
	case parser.UnterminatedTemplate:
		builder = builder.WithSuggestion("close the template with '`'")
	}
	return builder.Build()
}

// FromParseError converts a parser failure into a diagnostic.
func FromParseError(e *parser.ParseError) CompilerError {
	var code string
	switch e.Kind {
	case parser.UnexpectedToken:
		code = ErrorUnexpectedToken
	case parser.MalformedCrossCall:
		code = ErrorMalformedCrossCall
	case parser.MalformedLiteral:
		code = ErrorMalformedLiteral
	case parser.UnexpectedEOF:
		code = ErrorUnexpectedEOF
	default:
		code = ErrorExpectedToken
	}

	builder := NewSemanticError(code, e.Message, e.Span)
	if e.Kind == parser.MalformedCrossCall {
		builder = builder.WithHelp("cross-calls are written language::function(arguments)")
	}
	return builder.Build()
}

// FromError converts a lexer or parser error; anything else becomes a
// generic error at the start of the file.
func FromError(err error) CompilerError {
	switch e := err.(type) {
	case *parser.LexError:
		return FromLexError(e)
	case *parser.ParseError:
		return FromParseError(e)
	case CompilerError:
		return e
	}
	return CompilerError{Level: Error, Message: err.Error(), Span: ast.NewSpan(0, 0, 1, 1)}
}
