package errors

import (
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utopia/internal/ast"
	"utopia/internal/parser"
	"utopia/internal/types"
)

func init() {
	color.NoColor = true
}

func TestErrorReporter(t *testing.T) {
	source := `@lang python {
    function add(a, b) { return a + b }
}
let x = pyton::add(1, 2)`

	reporter := NewErrorReporter("main.utopia", source)

	span := ast.NewSpan(strings.Index(source, "pyton"), strings.Index(source, "pyton")+len("pyton::add(1, 2)"), 4, 9)
	err := UnknownLanguage("pyton", span, []string{"python"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+ErrorUnknownLanguage+"]")
	assert.Contains(t, formatted, "main.utopia:4:9")
	assert.Contains(t, formatted, "did you mean 'python'?")
	assert.Contains(t, formatted, "languages in this program: python")
	assert.Contains(t, formatted, "        ^^^^^^^^^^^^^^^^")
	// previous line is shown for context
	assert.Contains(t, formatted, "  3 │ }")
}

func TestMarkerStopsAtLineEnd(t *testing.T) {
	source := "let a = {\n  b: 1\n}"
	reporter := NewErrorReporter("x", source)

	err := NewSemanticError(ErrorTypeMismatch, "bad", ast.NewSpan(8, len(source), 1, 9)).Build()
	formatted := reporter.FormatError(err)
	assert.Contains(t, formatted, "        ^\n")
	assert.NotContains(t, formatted, "^^")
}

func TestUndefinedFunctionError(t *testing.T) {
	span := ast.NewSpan(0, 3, 1, 1)

	err := UndefinedFunction("python", "ad", span, []string{"add", "and", "multiply"})
	assert.Equal(t, ErrorUndefinedFunction, err.Code)
	assert.Equal(t, Error, err.Level)
	require.Len(t, err.Suggestions, 1)
	assert.Equal(t, "did you mean one of: 'add', 'and'?", err.Suggestions[0].Message)
	assert.Contains(t, err.Notes[0], "add, and, multiply")

	err = UndefinedFunction("python", "zzzzzz", span, []string{"add"})
	assert.Empty(t, err.Suggestions)
}

func TestArityMismatch(t *testing.T) {
	span := ast.NewSpan(0, 1, 1, 1)
	assert.Equal(t, "python::f expects 2 argument(s), got 3", ArityMismatch("python", "f", 2, 2, 3, span).Message)
	assert.Equal(t, "python::f expects 1 to 3 arguments, got 0", ArityMismatch("python", "f", 1, 3, 0, span).Message)
}

func TestArgumentTypeMismatch(t *testing.T) {
	err := ArgumentTypeMismatch("rust", "len", "s", types.String, types.Number, "String", ast.NewSpan(0, 1, 1, 1))
	assert.Equal(t, ErrorArgumentType, err.Code)
	assert.Equal(t, "argument 's' of rust::len expects string, found number", err.Message)
	assert.Equal(t, []string{"'string' is spelled String in rust"}, err.Notes)
}

func TestWarnings(t *testing.T) {
	err := DisabledLanguage("java", ast.NewSpan(0, 1, 1, 1))
	assert.Equal(t, Warning, err.Level)
	assert.True(t, IsWarning(err.Code))

	err = UnresolvedType("go", "chan", ast.NewSpan(0, 1, 1, 1))
	assert.Equal(t, Warning, err.Level)
	assert.Equal(t, "Warning", GetErrorCategory(err.Code))
}

func TestSimilarNames(t *testing.T) {
	assert.Equal(t, []string{"python"}, SimilarNames("pyhton", []string{"python", "rust", "java"}))
	assert.Equal(t, []string{"add", "and"}, SimilarNames("ad", []string{"and", "add", "multiply"}))
	assert.Empty(t, SimilarNames("go", []string{"go"}))
	assert.Empty(t, SimilarNames("x", []string{"c"}))
}

func TestLevenshteinDistance(t *testing.T) {
	assert.Equal(t, 0, levenshteinDistance("rust", "rust"))
	assert.Equal(t, 1, levenshteinDistance("rust", "rest"))
	assert.Equal(t, 2, levenshteinDistance("pyhton", "python"))
	assert.Equal(t, 3, levenshteinDistance("", "abc"))
}

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, "Lexer", GetErrorCategory(ErrorUnexpectedCharacter))
	assert.Equal(t, "Parser", GetErrorCategory(ErrorMalformedCrossCall))
	assert.Equal(t, "Type System", GetErrorCategory(ErrorTypeMismatch))
	assert.Equal(t, "Cross-Language", GetErrorCategory(ErrorArityMismatch))
	assert.Equal(t, "Unknown", GetErrorCategory("X1"))
	assert.False(t, IsWarning(""))
	assert.Equal(t, "Unknown error code", GetErrorDescription("E9999"))
	assert.NotEqual(t, "Unknown error code", GetErrorDescription(ErrorDuplicateFunction))
}

func TestFromSyntaxErrors(t *testing.T) {
	_, err := parser.ParseSource("let a = b & c")
	diag := FromError(err)
	assert.Equal(t, ErrorUnexpectedCharacter, diag.Code)
	assert.Equal(t, 11, diag.Span.Column)
	require.Len(t, diag.Suggestions, 1)
	assert.Contains(t, diag.Suggestions[0].Message, "&&")

	_, err = parser.ParseSource(`let s = "open`)
	assert.Equal(t, ErrorUnterminatedLiteral, FromError(err).Code)

	_, err = parser.ParseSource("python::(1)")
	diag = FromError(err)
	assert.Equal(t, ErrorMalformedCrossCall, diag.Code)
	assert.NotEmpty(t, diag.HelpText)

	_, err = parser.ParseSource("let = 1")
	assert.Equal(t, ErrorExpectedToken, FromError(err).Code)

	_, err = parser.ParseSource("let x =")
	assert.Equal(t, ErrorUnexpectedEOF, FromError(err).Code)
}

func TestCompilerErrorString(t *testing.T) {
	err := DuplicateFunction("go", "f", ast.NewSpan(10, 11, 2, 3), ast.NewSpan(0, 1, 1, 1))
	assert.Equal(t, "2:3: error[E0404]: function 'f' is already declared in language 'go'", err.Error())
	assert.Equal(t, []string{"first declared at 1:1"}, err.Notes)
}

func TestFormatSummary(t *testing.T) {
	reporter := NewErrorReporter("main.utopia", "")
	span := ast.NewSpan(0, 1, 1, 1)

	assert.Empty(t, reporter.FormatSummary(nil))
	assert.Equal(t, "main.utopia: 1 warning\n",
		reporter.FormatSummary([]CompilerError{DisabledLanguage("java", span)}))
	assert.Equal(t, "main.utopia: 2 errors, 1 warning\n", reporter.FormatSummary([]CompilerError{
		TypeMismatch("v", types.Number, types.String, span),
		DisabledLanguage("java", span),
		UnknownLanguage("x", span, nil),
	}))
}
