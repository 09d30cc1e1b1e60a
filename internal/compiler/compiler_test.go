package compiler

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"utopia/internal/config"
	"utopia/internal/errors"
	"utopia/internal/parser"
	"utopia/internal/types"
)

const program = `
@lang python {
    function scale(x: float) -> float {
        return x * 2
    }
}

@lang ruby {
    function shout(s: Text) {}
}

let y = python::scale(21)
ruby::shout(y)
`

func newCompiler(t *testing.T, cfg *config.Config, opts ...Option) *Compiler {
	t.Helper()
	c, err := New(cfg, opts...)
	require.NoError(t, err)
	return c
}

func TestAnalyzeCleanSource(t *testing.T) {
	c := newCompiler(t, nil)

	result, err := c.Analyze("main.utopia", program)
	require.NoError(t, err)
	require.NotNil(t, result.Program)
	assert.Equal(t, "main.utopia", result.Name)
	assert.NotEmpty(t, result.Tokens)
	assert.Equal(t, parser.EOF, result.Tokens[len(result.Tokens)-1].Type)
	assert.Empty(t, result.Diagnostics)
	assert.False(t, result.HasErrors())
	assert.True(t, c.Validate("main.utopia", program))
}

func TestAnalyzeParseFailure(t *testing.T) {
	c := newCompiler(t, nil)

	result, err := c.Analyze("bad.utopia", "let = 5")
	require.Error(t, err)

	var perr *parser.ParseError
	require.True(t, stderrors.As(err, &perr))
	assert.Contains(t, err.Error(), "bad.utopia: ")

	require.NotNil(t, result)
	assert.Nil(t, result.Program)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, errors.ErrorExpectedToken, result.Diagnostics[0].Code)
	assert.True(t, result.HasErrors())
	assert.False(t, c.Validate("bad.utopia", "let = 5"))
}

func TestAnalyzeLexFailure(t *testing.T) {
	c := newCompiler(t, nil)

	result, err := c.Analyze("bad.utopia", `let s = "open`)
	require.Error(t, err)
	var lerr *parser.LexError
	require.True(t, stderrors.As(err, &lerr))
	assert.Nil(t, result.Tokens)
	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, errors.ErrorUnterminatedLiteral, result.Diagnostics[0].Code)
}

func TestAnalyzeReportsCheckerFindings(t *testing.T) {
	c := newCompiler(t, nil)

	result, err := c.Analyze("main.utopia", `
@lang python {
    function scale(x: float) -> float {
        return x
    }
}
python::scale("a", 2)
python::scael(1)
`)
	require.NoError(t, err, "checker findings are not failures")
	assert.Equal(t, []string{errors.ErrorArityMismatch, errors.ErrorUndefinedFunction},
		[]string{result.Diagnostics[0].Code, result.Diagnostics[1].Code})
	errs, warnings := result.Count()
	assert.Equal(t, 2, errs)
	assert.Equal(t, 0, warnings)
	assert.False(t, c.Validate("main.utopia", `python::scale(1)`))
}

func TestConfigDrivesTheChecker(t *testing.T) {
	cfg, err := config.Parse([]byte(`
languages:
  ruby:
    enabled: false
    types:
      Text: string
`))
	require.NoError(t, err)
	c := newCompiler(t, cfg)

	ruby, ok := c.Registry().Adapter("ruby")
	require.True(t, ok)
	got, ok := ruby.NativeToCanonical("Text")
	require.True(t, ok)
	assert.Equal(t, types.String, got)

	result, err := c.Analyze("main.utopia", program)
	require.NoError(t, err)
	require.Len(t, result.Diagnostics, 2)

	assert.Equal(t, errors.WarningDisabledLanguage, result.Diagnostics[0].Code)
	assert.Equal(t, errors.ErrorArgumentType, result.Diagnostics[1].Code)
	assert.Equal(t, "argument 's' of ruby::shout expects string, found number", result.Diagnostics[1].Message)

	errs, warnings := result.Count()
	assert.Equal(t, 1, errs)
	assert.Equal(t, 1, warnings)
}

func TestWithoutChecks(t *testing.T) {
	c := newCompiler(t, nil, WithoutChecks())
	result, err := c.Analyze("main.utopia", `python::missing()`)
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
}

func TestWithRegistry(t *testing.T) {
	registry := types.NewRegistry()
	c := newCompiler(t, nil, WithRegistry(registry))
	assert.Same(t, registry, c.Registry())
	assert.Equal(t, "native", c.Config().Target)
}

func TestAnalyzeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.utopia")
	require.NoError(t, os.WriteFile(path, []byte(program), 0o644))

	c := newCompiler(t, nil)
	result, err := c.AnalyzeFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, result.Name)

	_, err = c.AnalyzeFile(filepath.Join(t.TempDir(), "missing.utopia"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, os.ErrNotExist))
}

func TestMetadata(t *testing.T) {
	c := newCompiler(t, nil)
	meta, err := c.Metadata(program)
	require.NoError(t, err)
	assert.Equal(t, []string{"python", "ruby"}, meta.Languages)
	assert.Len(t, meta.CrossCalls, 2)
}
