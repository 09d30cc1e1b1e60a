// SPDX-License-Identifier: Apache-2.0

// Package repl is an interactive session over the Utopia front end. Input
// accumulates across entries, so functions declared in one entry can be
// cross-called from the next.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"utopia/internal/ast"
	"utopia/internal/compiler"
	"utopia/internal/errors"
	"utopia/internal/semantic"
	"utopia/internal/types"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
	sourceName   = "<repl>"
)

const help = `:functions   list the functions declared so far
:languages   list the languages with a block
:source      print the accepted input
:reset       forget everything
:quit        leave the session
`

// Session holds the input accepted so far.
type Session struct {
	compiler *compiler.Compiler
	out      io.Writer
	source   string
	program  *ast.Program
	env      *types.Environment
}

// NewSession creates a session that writes to out. A nil c uses the default
// configuration.
func NewSession(c *compiler.Compiler, out io.Writer) *Session {
	if c == nil {
		c, _ = compiler.New(nil)
	}
	return &Session{compiler: c, out: out, env: types.NewEnvironment()}
}

// Start reads entries from in until it is exhausted or `:quit` is entered.
// An entry ends at the first line where brackets balance.
func Start(in io.Reader, out io.Writer, c *compiler.Compiler) {
	s := NewSession(c, out)
	scanner := bufio.NewScanner(in)

	var pending strings.Builder
	for {
		if pending.Len() == 0 {
			fmt.Fprint(out, PROMPT)
		} else {
			fmt.Fprint(out, CONTINUATION)
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		line := scanner.Text()

		if pending.Len() == 0 {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ":") {
				if !s.Command(trimmed) {
					return
				}
				continue
			}
		}

		pending.WriteString(line)
		pending.WriteByte('\n')
		if depth(pending.String()) > 0 {
			continue
		}
		s.Eval(pending.String())
		pending.Reset()
	}
}

// Command runs a colon command and reports whether the session goes on.
func (s *Session) Command(cmd string) bool {
	switch cmd {
	case ":quit", ":q", ":exit":
		return false
	case ":help", ":h":
		fmt.Fprint(s.out, help)
	case ":functions":
		if s.program == nil || len(s.program.Metadata.Functions) == 0 {
			fmt.Fprintln(s.out, "no functions declared")
			break
		}
		for _, fi := range s.program.Metadata.Functions {
			fmt.Fprintln(s.out, fi.Signature())
		}
	case ":languages":
		if s.program == nil || len(s.program.Metadata.Languages) == 0 {
			fmt.Fprintln(s.out, "no language blocks")
			break
		}
		fmt.Fprintln(s.out, strings.Join(s.program.Metadata.Languages, ", "))
	case ":source":
		fmt.Fprint(s.out, s.source)
	case ":reset":
		s.source, s.program, s.env = "", nil, types.NewEnvironment()
		fmt.Fprintln(s.out, "session cleared")
	default:
		color.New(color.FgRed).Fprintf(s.out, "unknown command %s", cmd)
		fmt.Fprintln(s.out, " (try :help)")
	}
	return true
}

// Eval analyzes input in the context of everything accepted so far and
// describes what it adds. Input with errors is reported and dropped.
func (s *Session) Eval(input string) bool {
	combined := s.source + input
	result, err := s.compiler.Analyze(sourceName, combined)
	reporter := errors.NewErrorReporter(sourceName, combined)
	if err != nil {
		fmt.Fprint(s.out, reporter.FormatAll(result.Diagnostics))
		return false
	}

	var fresh []errors.CompilerError
	failed := false
	for _, d := range result.Diagnostics {
		if d.Span.Start < len(s.source) {
			continue
		}
		fresh = append(fresh, d)
		failed = failed || d.Level == errors.Error
	}
	if len(fresh) > 0 {
		fmt.Fprint(s.out, reporter.FormatAll(fresh))
	}
	if failed {
		return false
	}

	offset := len(s.source)
	s.source, s.program = combined, result.Program
	s.describe(offset)
	return true
}

func (s *Session) describe(offset int) {
	lang := color.New(color.FgCyan).SprintFunc()
	typ := color.New(color.FgGreen).SprintFunc()
	inferrer := &semantic.Inferrer{
		Env:    s.env,
		Lookup: semantic.MetadataLookup(s.program.Metadata, s.compiler.Registry()),
	}

	for _, block := range s.program.LanguageBlocks {
		if block.Span.Start < offset {
			continue
		}
		fmt.Fprintf(s.out, "@lang %s: %d function(s)\n", lang(block.Language), len(block.Functions))
		for _, fi := range s.program.Metadata.FunctionsIn(block.Language) {
			if fi.Span.Start >= offset {
				fmt.Fprintf(s.out, "  %s\n", fi.Signature())
			}
		}
	}

	for _, stmt := range s.program.Statements {
		if stmt.NodeSpan().Start < offset {
			continue
		}
		switch n := stmt.(type) {
		case *ast.ExprStmt:
			fmt.Fprintf(s.out, "%s : %s\n", n.Expr, typ(inferrer.Infer(n.Expr)))
		case *ast.VarDecl:
			t := n.Type
			if t == nil {
				t = inferrer.Infer(n.Value)
			}
			s.env.Define(n.Name, t)
			fmt.Fprintf(s.out, "%s : %s\n", n.Name, typ(t))
		default:
			fmt.Fprintln(s.out, ast.Print(stmt))
		}
	}
}

// depth is the bracket nesting left open at the end of src, ignoring
// brackets inside string literals and line comments.
func depth(src string) int {
	d := 0
	for i := 0; i < len(src); i++ {
		switch c := src[i]; c {
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				for i < len(src) && src[i] != '\n' {
					i++
				}
			}
		case '"', '\'', '`':
			for i++; i < len(src) && src[i] != c; i++ {
				if src[i] == '\\' {
					i++
				}
			}
		case '{', '(', '[':
			d++
		case '}', ')', ']':
			d--
		}
	}
	return d
}
