package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpCarriesNodeAndSpan(t *testing.T) {
	program := sampleProgram()
	out := Dump(program)

	assert.Equal(t, "Program", out["node"])
	assert.Equal(t, map[string]int{"start": 0, "end": 72, "line": 1, "column": 1}, out["span"])
	assert.Equal(t, []string{"python"}, out["languages"])

	blocks := out["language_blocks"].([]any)
	require.Len(t, blocks, 1)
	fns := blocks[0].(map[string]any)["functions"].([]any)
	fn := fns[0].(map[string]any)
	assert.Equal(t, "f", fn["name"])
	assert.Nil(t, fn["return_type"])
}

func TestDumpLiterals(t *testing.T) {
	assert.Equal(t, 1.5, Dump(num("1.5", 1.5))["value"])
	assert.Equal(t, "1.5", Dump(num("1.5", 1.5))["raw"])
	assert.Equal(t, "hi", Dump(str("hi"))["value"])
	assert.Nil(t, Dump(&LiteralExpr{Kind: NullLiteral})["value"])
	assert.Nil(t, Dump(nil))
}

func TestMarshalJSONIsValid(t *testing.T) {
	data, err := MarshalJSON(sampleProgram())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Program", decoded["node"])

	stmts := decoded["statements"].([]any)
	decl := stmts[0].(map[string]any)
	assert.Equal(t, "VarDecl", decl["node"])
	value := decl["value"].(map[string]any)
	assert.Equal(t, "ArrayExpr", value["node"])
}
