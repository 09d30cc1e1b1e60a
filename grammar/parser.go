package grammar

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/fatih/color"

	"utopia/internal/types"
)

var typeParser = participle.MustBuild[TypeExpr](
	participle.Lexer(TypeLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(2),
)

// Parse parses a type annotation into its syntax tree.
func Parse(source string) (*TypeExpr, error) {
	return typeParser.ParseString("", source)
}

// ParseType parses a type annotation and converts it to a canonical type.
func ParseType(source string) (types.Type, error) {
	expr, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return expr.Type()
}

// MustParseType is ParseType for static tables; it panics on error.
func MustParseType(source string) types.Type {
	t, err := ParseType(source)
	if err != nil {
		panic(fmt.Sprintf("grammar: %q: %v", source, err))
	}
	return t
}

// ReportError writes a caret-style description of a type syntax error.
func ReportError(w io.Writer, source string, err error) {
	var pe participle.Error
	if !errors.As(err, &pe) {
		fmt.Fprintln(w, color.RedString("error: %s", err))
		return
	}

	pos := pe.Position()
	lines := strings.Split(source, "\n")
	if pos.Line <= 0 || pos.Line > len(lines) {
		fmt.Fprintln(w, color.RedString("syntax error at unknown location: %s", err))
		return
	}

	column := pos.Column
	if column < 1 {
		column = 1
	}
	fmt.Fprintln(w, color.RedString("syntax error in type at line %d, column %d:", pos.Line, pos.Column))
	fmt.Fprintln(w, lines[pos.Line-1])
	fmt.Fprintln(w, color.HiRedString(strings.Repeat(" ", column-1)+"^"))
	fmt.Fprintf(w, "→ %s\n", pe.Message())
}
