package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utopia/internal/ast"
	"utopia/internal/parser"
	"utopia/internal/types"
)

// parseExpr parses `let v = <src>` and returns the initializer.
func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	program, err := parser.ParseSource("let v = " + src)
	require.NoError(t, err)
	require.Len(t, program.Statements, 1)
	decl, ok := program.Statements[0].(*ast.VarDecl)
	require.True(t, ok, "expected a variable declaration")
	return decl.Value
}

func TestInferType(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`42`, "number"},
		{`"a"`, "string"},
		{`true`, "boolean"},
		{`null`, "null"},
		{`1 + 2 * 3`, "number"},
		{`1 + "a"`, "unknown"},
		{`x + 1`, "unknown"},
		{`1 < 2`, "boolean"},
		{`a == b`, "boolean"},
		{`a && b`, "boolean"},
		{`!x`, "boolean"},
		{`-5`, "number"},
		{`-x`, "unknown"},
		{`[1, 2]`, "number[]"},
		{`[[1], [2]]`, "number[][]"},
		{`[1, "a"]`, "unknown[]"},
		{`[]`, "unknown[]"},
		{`{ b: "s", a: 1 }`, "{ a: number, b: string }"},
		{`{}`, "{}"},
		{`(x = 5)`, "number"},
		{`x`, "unknown"},
		{`f(1)`, "unknown"},
		{`o.x`, "unknown"},
		{`a[0]`, "unknown"},
		{`python::f(1)`, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			assert.Equal(t, tt.want, InferType(parseExpr(t, tt.src)).String())
		})
	}
}

func TestInferTypeNil(t *testing.T) {
	assert.Equal(t, types.Unknown, InferType(nil))
}

func TestInferrerUsesEnvironment(t *testing.T) {
	env := types.NewEnvironment()
	env.Define("n", types.Number)
	child := env.NewChild()
	child.Define("s", types.String)

	in := &Inferrer{Env: child}
	assert.Equal(t, types.Number, in.Infer(parseExpr(t, "n + 1")))
	assert.Equal(t, types.String, in.Infer(parseExpr(t, "s")))
	assert.Equal(t, "number[]", in.Infer(parseExpr(t, "[n, 2]")).String())
	assert.Equal(t, types.Unknown, in.Infer(parseExpr(t, "missing")))
}

func TestInferrerUsesLookup(t *testing.T) {
	in := &Inferrer{
		Lookup: func(language, name string) (types.Function, bool) {
			if language == "python" && name == "size" {
				return types.Function{Params: []types.Type{types.String}, Return: types.Number}, true
			}
			return types.Function{}, false
		},
	}
	assert.Equal(t, types.Number, in.Infer(parseExpr(t, `python::size("x")`)))
	assert.Equal(t, types.Number, in.Infer(parseExpr(t, `python::size("x") * 2`)))
	assert.Equal(t, types.Unknown, in.Infer(parseExpr(t, `python::other()`)))
}

func TestInferLambda(t *testing.T) {
	lambda := &ast.LambdaExpr{Params: []*ast.Parameter{{Name: "a", Type: types.Number}, {Name: "b"}}}
	assert.Equal(t, "(number, unknown) -> unknown", InferType(lambda).String())
}

func TestMetadataLookup(t *testing.T) {
	program, err := parser.ParseSource(`
@lang python {
    function parse(s: str, n) -> int {}
}
@lang lua {
    function f(x: Foo) -> Bar {}
}
`)
	require.NoError(t, err)
	lookup := MetadataLookup(program.Metadata, types.NewDefaultRegistry())

	fn, ok := lookup("python", "parse")
	require.True(t, ok)
	assert.Equal(t, "(string, unknown) -> number", fn.String())

	fn, ok = lookup("lua", "f")
	require.True(t, ok)
	assert.Equal(t, "(unknown) -> unknown", fn.String(), "no adapter, so names are erased")

	_, ok = lookup("python", "missing")
	assert.False(t, ok)

	fn, ok = MetadataLookup(program.Metadata, nil)("python", "parse")
	require.True(t, ok)
	assert.Equal(t, "(unknown, unknown) -> unknown", fn.String())
}
