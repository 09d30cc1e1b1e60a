package grammar_test

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utopia/grammar"
	"utopia/internal/types"
)

func TestParsePrimitives(t *testing.T) {
	tests := map[string]types.Type{
		"number":  types.Number,
		"string":  types.String,
		"boolean": types.Boolean,
		"null":    types.Null,
		"void":    types.Void,
		"unknown": types.Unknown,
		"T":       types.Generic{Name: "T"},
	}
	for source, expected := range tests {
		got, err := grammar.ParseType(source)
		require.NoError(t, err, source)
		assert.True(t, types.Equal(expected, got), "%s: got %s", source, got)
	}
}

func TestParseCompositeTypes(t *testing.T) {
	tests := []struct {
		source   string
		expected types.Type
	}{
		{"number[]", types.Array{Elem: types.Number}},
		{"string?", types.Optional{Inner: types.String}},
		{"number[][]", types.Array{Elem: types.Array{Elem: types.Number}}},
		{"number?[]", types.Array{Elem: types.Optional{Inner: types.Number}}},
		{"number | string", types.Union{Members: []types.Type{types.Number, types.String}}},
		{"(number | null)[]", types.Array{Elem: types.Union{Members: []types.Type{types.Number, types.Null}}}},
		{"{ name: string, age: number }", types.Object{Fields: map[string]types.Type{"name": types.String, "age": types.Number}}},
		{"{}", types.Object{Fields: map[string]types.Type{}}},
		{"(number, string) -> boolean", types.Function{Params: []types.Type{types.Number, types.String}, Return: types.Boolean}},
		{"() -> void", types.Function{Return: types.Void}},
		{"() -> number | string", types.Function{Return: types.Union{Members: []types.Type{types.Number, types.String}}}},
		{"((number) -> string)?", types.Optional{Inner: types.Function{Params: []types.Type{types.Number}, Return: types.String}}},
		{"python::dict", types.LanguageSpecific{Language: "python", Name: "dict"}},
		{"cpp::std::string", types.LanguageSpecific{Language: "cpp", Name: "std::string"}},
		{"c::char*", types.LanguageSpecific{Language: "c", Name: "char*"}},
		{"rust::Vec<number>", types.LanguageSpecific{Language: "rust", Name: "Vec", Args: []types.Type{types.Number}}},
		{"java::Map<string, python::list<number>>", types.LanguageSpecific{
			Language: "java",
			Name:     "Map",
			Args:     []types.Type{types.String, types.LanguageSpecific{Language: "python", Name: "list", Args: []types.Type{types.Number}}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got, err := grammar.ParseType(tt.source)
			require.NoError(t, err)
			assert.True(t, types.Equal(tt.expected, got), "got %s, want %s", got, tt.expected)
		})
	}
}

func TestStringFormParsesBack(t *testing.T) {
	samples := []types.Type{
		types.Array{Elem: types.Union{Members: []types.Type{types.Number, types.String}}},
		types.Optional{Inner: types.Function{Params: []types.Type{types.Number}, Return: types.Void}},
		types.Object{Fields: map[string]types.Type{"xs": types.Array{Elem: types.Optional{Inner: types.Number}}}},
		types.Union{Members: []types.Type{types.Function{Return: types.Number}, types.Null}},
		types.LanguageSpecific{Language: "go", Name: "map", Args: []types.Type{types.String, types.Boolean}},
		types.Function{Params: []types.Type{types.Union{Members: []types.Type{types.Number, types.Null}}}, Return: types.String},
	}

	for _, sample := range samples {
		t.Run(sample.String(), func(t *testing.T) {
			got, err := grammar.ParseType(sample.String())
			require.NoError(t, err)
			assert.True(t, types.Equal(sample, got), "got %s", got)
		})
	}
}

func TestParseTypeErrors(t *testing.T) {
	for _, source := range []string{
		"",
		"number |",
		"(number, string)",
		"()",
		"List<number>",
		"{ a: number, a: string }",
		"python::",
		"number[",
	} {
		_, err := grammar.ParseType(source)
		assert.Error(t, err, source)
	}
}

func TestSyntaxTreePositions(t *testing.T) {
	expr, err := grammar.Parse("number | python::list<string>")
	require.NoError(t, err)
	require.Len(t, expr.Members, 2)

	named := expr.Members[1].Atom.Named
	require.NotNil(t, named)
	assert.Equal(t, []string{"python", "list"}, named.Path)
	assert.Equal(t, 10, named.Pos.Column)
}

func TestMustParseTypePanics(t *testing.T) {
	assert.Equal(t, types.Number, grammar.MustParseType("number"))
	assert.Panics(t, func() { grammar.MustParseType("number |") })
}

func TestReportError(t *testing.T) {
	color.NoColor = true
	source := "(number, string)?"
	_, err := grammar.ParseType("(number, string)")
	require.Error(t, err)

	var buf bytes.Buffer
	grammar.ReportError(&buf, source, err)
	assert.Contains(t, buf.String(), "line 1, column 1")
	assert.Contains(t, buf.String(), "^")

	buf.Reset()
	_, err = grammar.ParseType("number |")
	grammar.ReportError(&buf, "number |", err)
	assert.Contains(t, buf.String(), "syntax error in type")
}
