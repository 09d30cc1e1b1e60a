package repl

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

const session = `@lang python {
    function add(a: number, b: number) -> number {
        return a + b
    }
}
let x = python::add(1, 2)
x + 1
python::nope()
:functions
:languages
:bogus
:quit
let ignored = 1
`

func TestStart(t *testing.T) {
	var out bytes.Buffer
	Start(strings.NewReader(session), &out, nil)
	got := out.String()

	assert.Contains(t, got, CONTINUATION, "an open block continues on the next line")
	assert.Contains(t, got, "@lang python: 1 function(s)\n  python::add(a: number, b: number) -> number\n")
	assert.Contains(t, got, "x : number\n")
	assert.Contains(t, got, "x + 1 : number\n")
	assert.Contains(t, got, "error[E0402]: function 'nope' is not defined in language 'python'")
	assert.Contains(t, got, PROMPT+"python\n")
	assert.Contains(t, got, "unknown command :bogus (try :help)")
	assert.NotContains(t, got, "ignored")
	assert.Equal(t, 2, strings.Count(got, "python::add(a: number, b: number) -> number"))
}

func TestEvalKeepsOnlyCleanInput(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(nil, &out)

	assert.True(t, s.Eval("let a = 1\n"))
	assert.False(t, s.Eval("let = 5\n"))
	assert.Contains(t, out.String(), "error[E0201]")
	assert.False(t, s.Eval("ruby::missing()\n"))
	assert.Contains(t, out.String(), "error[E0401]")

	out.Reset()
	assert.True(t, s.Command(":source"))
	assert.Equal(t, "let a = 1\n", out.String())

	out.Reset()
	assert.True(t, s.Eval("a * 2\n"))
	assert.Equal(t, "a * 2 : number\n", out.String())
}

func TestCommands(t *testing.T) {
	var out bytes.Buffer
	s := NewSession(nil, &out)

	assert.True(t, s.Command(":functions"))
	assert.True(t, s.Command(":languages"))
	assert.True(t, s.Command(":help"))
	assert.Contains(t, out.String(), "no functions declared\nno language blocks\n")
	assert.Contains(t, out.String(), ":reset")

	s.Eval("@lang go {\n    function id(v) {}\n}\n")
	out.Reset()
	assert.True(t, s.Command(":reset"))
	assert.True(t, s.Command(":functions"))
	assert.Equal(t, "session cleared\nno functions declared\n", out.String())

	assert.False(t, s.Command(":quit"))
	assert.False(t, s.Command(":q"))
}

func TestDepth(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"let a = 1", 0},
		{"@lang python {", 1},
		{"function f(a, b) {\n  g([1, 2]", 2},
		{`let s = "{("`, 0},
		{"let s = 'it\\'s {'", 0},
		{"f() // {\n", 0},
		{"}", -1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, depth(tt.src), tt.src)
	}
}
