package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utopia/internal/errors"
	"utopia/internal/parser"
	"utopia/internal/types"
)

func check(t *testing.T, source string, opts ...Option) []errors.CompilerError {
	t.Helper()
	program, err := parser.ParseSource(source)
	require.NoError(t, err)
	return NewChecker(types.NewDefaultRegistry(), opts...).Check(program)
}

func codes(diags []errors.CompilerError) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Code
	}
	return out
}

func TestCheckCleanProgram(t *testing.T) {
	diags := check(t, `
@lang python {
    function add(a: int, b: int) -> int {
        return a + b
    }
}

@lang javascript {
    function shout(s: string) -> string {
        return s
    }
}

let total: number = python::add(1, 2)
let loud = javascript::shout("hi")
`)
	assert.Empty(t, diags)
}

func TestCheckUnknownLanguage(t *testing.T) {
	diags := check(t, `
@lang python {
    function f() {}
}
pyhton::f()
`)
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, errors.ErrorUnknownLanguage, d.Code)
	assert.Equal(t, errors.Error, d.Level)
	assert.Equal(t, 5, d.Span.Line)
	require.NotEmpty(t, d.Suggestions)
	assert.Equal(t, "did you mean 'python'?", d.Suggestions[0].Message)
	assert.Contains(t, d.Notes, "languages in this program: python")
}

func TestCheckUndefinedFunction(t *testing.T) {
	diags := check(t, `
@lang python {
    function add(a, b) {}
    function and(a, b) {}
}
python::ad(1, 2)
`)
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, errors.ErrorUndefinedFunction, d.Code)
	assert.Equal(t, "function 'ad' is not defined in language 'python'", d.Message)
	require.NotEmpty(t, d.Suggestions)
	assert.Equal(t, "did you mean one of: 'add', 'and'?", d.Suggestions[0].Message)
	assert.Contains(t, d.Notes, "functions in 'python': add, and")
}

func TestCheckEmptyBlockKnowsItsLanguage(t *testing.T) {
	diags := check(t, `
@lang ruby {
}
ruby::run()
`)
	require.Len(t, diags, 1)
	assert.Equal(t, errors.ErrorUndefinedFunction, diags[0].Code)
}

func TestCheckArityWithDefaults(t *testing.T) {
	diags := check(t, `
@lang python {
    function greet(name: str, greeting: str = "hi") -> str {
        return greeting + name
    }
}
python::greet()
python::greet("a")
python::greet("a", "b")
python::greet("a", "b", "c")
`)
	require.Len(t, diags, 2)
	assert.Equal(t, []string{errors.ErrorArityMismatch, errors.ErrorArityMismatch}, codes(diags))
	assert.Equal(t, "python::greet expects 1 to 2 arguments, got 0", diags[0].Message)
	assert.Equal(t, "python::greet expects 1 to 2 arguments, got 3", diags[1].Message)
	assert.Equal(t, 7, diags[0].Span.Line)
	assert.Equal(t, 10, diags[1].Span.Line)
}

func TestCheckDefaultBeforeRequiredParameter(t *testing.T) {
	diags := check(t, `
@lang python {
    function f(a = 1, b) {
        return b
    }
}
let r = python::f(5)
let s = python::f(5, 6)
`)
	require.Len(t, diags, 1)
	assert.Equal(t, errors.ErrorArityMismatch, diags[0].Code)
	assert.Equal(t, "python::f expects 2 argument(s), got 1", diags[0].Message)
	assert.Equal(t, 7, diags[0].Span.Line)
}

func TestCheckArgumentTypes(t *testing.T) {
	diags := check(t, `
@lang python {
    function scale(x: float) -> float {
        return x * 2
    }
}
let n = 3
let s = "big"
python::scale(n)
python::scale("big")
python::scale(s)
python::scale(unknownThing)
`)
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, errors.ErrorArgumentType, d.Code)
		assert.Equal(t, "argument 'x' of python::scale expects number, found string", d.Message)
		assert.Contains(t, d.Notes, "'number' is spelled float in python")
	}
	assert.Equal(t, 10, diags[0].Span.Line)
	assert.Equal(t, 15, diags[0].Span.Column)
	assert.Equal(t, 11, diags[1].Span.Line)
}

func TestCheckArgumentUsesParameterScope(t *testing.T) {
	diags := check(t, `
@lang python {
    function scale(x: float) -> float {
        return x
    }
    function run(label: str) {
        python::scale(label)
    }
}
`)
	require.Len(t, diags, 1)
	assert.Equal(t, errors.ErrorArgumentType, diags[0].Code)
	assert.Equal(t, 7, diags[0].Span.Line)
}

func TestCheckVariableTypeMismatch(t *testing.T) {
	diags := check(t, `
let ok: number = 1 + 2
let bad: number = "hello"
let maybe: string = null
@lang python {
    let y: int = "s"
}
`)
	require.Len(t, diags, 3)
	assert.Equal(t, []string{errors.ErrorTypeMismatch, errors.ErrorTypeMismatch, errors.ErrorTypeMismatch}, codes(diags))
	// blocks are checked first, diagnostics still come out in source order
	assert.Equal(t, "cannot initialize 'bad' of type number with a value of type string", diags[0].Message)
	assert.Equal(t, "cannot initialize 'maybe' of type string with a value of type null", diags[1].Message)
	assert.Equal(t, "cannot initialize 'y' of type number with a value of type string", diags[2].Message)
}

func TestCheckCrossCallReturnTypes(t *testing.T) {
	diags := check(t, `
@lang python {
    function scale(x: float) -> float {
        return x
    }
    function untyped() {}
}
let a: string = python::scale(1)
let b: string = python::untyped()
let c: number = python::scale(1) + 1
`)
	require.Len(t, diags, 1)
	assert.Equal(t, errors.ErrorTypeMismatch, diags[0].Code)
	assert.Equal(t, 8, diags[0].Span.Line)
}

func TestCheckDuplicateFunction(t *testing.T) {
	diags := check(t, `
@lang python {
    function f() {}
    function f() {}
}
@lang ruby {
    function f() {}
}
`)
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, errors.ErrorDuplicateFunction, d.Code)
	assert.Equal(t, 4, d.Span.Line)
	assert.Contains(t, d.Notes, "first declared at 3:5")
}

func TestCheckHostFunctions(t *testing.T) {
	diags := check(t, `
function helper(a) {}
utopia::helper(1, 2)
utopia::nope()
`)
	require.Len(t, diags, 2)
	assert.Equal(t, []string{errors.ErrorArityMismatch, errors.ErrorUndefinedFunction}, codes(diags))
	assert.Equal(t, "utopia::helper expects 1 argument(s), got 2", diags[0].Message)
}

func TestCheckDisabledLanguage(t *testing.T) {
	source := `
@lang ruby {
    function f() {}
}
@lang python {
    function g() {}
}
`
	assert.Empty(t, check(t, source))

	diags := check(t, source, WithDisabledLanguages("ruby"))
	require.Len(t, diags, 1)
	assert.Equal(t, errors.WarningDisabledLanguage, diags[0].Code)
	assert.Equal(t, errors.Warning, diags[0].Level)
	assert.Equal(t, 2, diags[0].Span.Line)
}

func TestCheckUnresolvedAnnotations(t *testing.T) {
	diags := check(t, `
@lang python {
    function load(path: str, data: ndarray) -> frame {}
}
@lang lua {
    function g(x: Table) {}
}
`)
	require.Len(t, diags, 2)
	assert.Equal(t, []string{errors.WarningUnresolvedType, errors.WarningUnresolvedType}, codes(diags))
	messages := []string{diags[0].Message, diags[1].Message}
	assert.Contains(t, messages, "type 'frame' is not known to the python adapter")
	assert.Contains(t, messages, "type 'ndarray' is not known to the python adapter")
}

func TestCheckUnregisteredLanguageErasesPlaceholders(t *testing.T) {
	diags := check(t, `
@lang lua {
    function g(x: Table) -> Table {}
}
let v: number = lua::g(1)
let w: Thing = 5
`)
	assert.Empty(t, diags)
}

func TestCheckNestedScopes(t *testing.T) {
	diags := check(t, `
@lang python {
    function scale(x: float) {}
}
let s = "x"
if (true) {
    let s = 1
    python::scale(s)
}
for (let i = 0; i < 3; i++) {
    python::scale(i)
}
python::scale(s)
`)
	require.Len(t, diags, 1)
	assert.Equal(t, errors.ErrorArgumentType, diags[0].Code)
	assert.Equal(t, 13, diags[0].Span.Line)
}

func TestCheckNilProgram(t *testing.T) {
	assert.Nil(t, NewChecker(nil).Check(nil))
}
